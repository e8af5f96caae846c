package model

// Kind is the closed set of record variants.
type Kind int

const (
	KindCategory Kind = iota
	KindProduct
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindCategory:
		return "category"
	case KindProduct:
		return "product"
	default:
		return "unknown"
	}
}

// Field names shared by every variant.
const (
	IDField   = "id"
	NameField = "наименование"
)

// Category field names, in the order of the category file columns.
const (
	CategoryParentField   = "родитель"
	CategoryTemplateField = "формат описания товаров"
	CategoryInheritField  = "наследовать дочерним"
)

// Product field names.
const (
	ProductParentField = "категория"
	ProductPriceField  = "цена"
)

// InheritFlagValue marks a category whose template is pushed to its subtree.
const InheritFlagValue = "1"

// BaseSchema holds the fields every variant shares.
var BaseSchema = NewPropertyMap(Field{Name: IDField, Index: 0})

// Variant describes how one Kind stores and links its records.
type Variant struct {
	Kind Kind

	// Schema is the built-in property map records start with.
	Schema PropertyMap

	// ParentIDField holds the key of the parent category.
	ParentIDField string

	// TemplateField, when set, is copied into a record's own template as
	// soon as the record is populated.
	TemplateField string

	// InheritField holds the flag that requests a template push.
	InheritField string
}

// CategoryVariant is the category file layout.
var CategoryVariant = Variant{
	Kind: KindCategory,
	Schema: BaseSchema.Extend(
		Field{Name: NameField, Index: 1},
		Field{Name: CategoryParentField, Index: 2},
		Field{Name: CategoryTemplateField, Index: 3},
		Field{Name: CategoryInheritField, Index: 4},
	),
	ParentIDField: CategoryParentField,
	TemplateField: CategoryTemplateField,
	InheritField:  CategoryInheritField,
}

// ProductVariant is the product file layout before its header is applied.
var ProductVariant = Variant{
	Kind: KindProduct,
	Schema: BaseSchema.Extend(
		Field{Name: ProductParentField, Index: 1},
		Field{Name: NameField, Index: 2},
		Field{Name: ProductPriceField, Index: 3},
	),
	ParentIDField: ProductParentField,
}
