// =============================================================================
// Catalog to HTML Converter - Record
// =============================================================================
//
// A Record is one parsed row wrapped with schema-aware property access and
// the fields the tree needs (parent, children, level, own template).
//
// STORAGE:
//   Values are kept sparsely by slot index. A slot that was never written,
//   or that was cleared, is "unset": Get reports ok == false and renderers
//   treat it as missing. An empty string is a value like any other.
//
// TREE FIELDS:
//   Parent and children are NodeIDs into the Tree arena that owns the
//   record. They are maintained by Tree.AddChild / Tree.SetParent and are
//   read-only from the outside.
//
// =============================================================================

package model

// NodeID addresses a record inside a Tree.
type NodeID int

// NoNode is the parent of a record that has none.
const NoNode NodeID = -1

// Record is a schema-flexible property store for one catalog entity.
type Record struct {
	variant  Variant
	schema   PropertyMap
	values   map[int]string
	id       NodeID
	parent   NodeID
	children []NodeID
	level    int
	template string
}

// NewRecord returns an empty record using the variant's base schema.
func NewRecord(variant Variant) *Record {
	return &Record{
		variant: variant,
		schema:  variant.Schema,
		values:  make(map[int]string),
		id:      NoNode,
		parent:  NoNode,
	}
}

// NewCategory returns an empty category record.
func NewCategory() *Record {
	return NewRecord(CategoryVariant)
}

// NewProduct returns an empty product record.
func NewProduct() *Record {
	return NewRecord(ProductVariant)
}

// =============================================================================
// SCHEMA
// =============================================================================

// Kind returns the record's variant.
func (r *Record) Kind() Kind {
	return r.variant.Kind
}

// Variant returns the variant descriptor.
func (r *Record) Variant() Variant {
	return r.variant
}

// Schema returns the live property map.
func (r *Record) Schema() PropertyMap {
	return r.schema
}

// SetSchema reconciles incoming with the current schema. On success every
// stored value that has a field name moves to that name's slot in the merged
// map; values in unnamed slots are dropped. On conflict nothing changes.
func (r *Record) SetSchema(incoming PropertyMap) error {
	merged, err := Reconcile(r.schema, incoming)
	if err != nil {
		return err
	}

	values := make(map[int]string, len(r.values))
	for _, f := range r.schema.fields {
		value, ok := r.values[f.Index]
		if !ok {
			continue
		}
		if idx, ok := merged.Index(f.Name); ok {
			values[idx] = value
		}
	}

	r.schema = merged
	r.values = values
	return nil
}

// =============================================================================
// PROPERTY ACCESS
// =============================================================================

// Get returns the value of the named field. Unknown and unset fields both
// report ok == false.
func (r *Record) Get(name string) (string, bool) {
	idx, ok := r.schema.Index(name)
	if !ok {
		return "", false
	}
	return r.GetByIndex(idx)
}

// Set stores value in the named field. Unknown names are ignored.
func (r *Record) Set(name, value string) {
	if idx, ok := r.schema.Index(name); ok {
		r.SetByIndex(idx, value)
	}
}

// Clear unsets the named field.
func (r *Record) Clear(name string) {
	if idx, ok := r.schema.Index(name); ok {
		r.ClearByIndex(idx)
	}
}

// GetByIndex returns the value in slot index.
func (r *Record) GetByIndex(index int) (string, bool) {
	value, ok := r.values[index]
	return value, ok
}

// SetByIndex stores value in slot index.
func (r *Record) SetByIndex(index int, value string) {
	r.values[index] = value
}

// ClearByIndex unsets slot index.
func (r *Record) ClearByIndex(index int) {
	delete(r.values, index)
}

// Len returns the number of set slots.
func (r *Record) Len() int {
	return len(r.values)
}

// SetData populates slots from a raw row; cell i goes to slot i. Slots past
// the end of a short row stay unset. For variants with a template field the
// record's own template is taken from that field afterwards.
func (r *Record) SetData(row []string) {
	for i, cell := range row {
		r.SetByIndex(i, cell)
	}

	if r.variant.TemplateField != "" {
		r.template, _ = r.Get(r.variant.TemplateField)
	}
}

// ID returns the identifier value.
func (r *Record) ID() (string, bool) {
	return r.Get(IDField)
}

// ParentKey returns the value of the variant's parent-key field.
func (r *Record) ParentKey() (string, bool) {
	return r.Get(r.variant.ParentIDField)
}

// Inherits reports whether the record asks for its template to be pushed
// down its subtree.
func (r *Record) Inherits() bool {
	if r.variant.InheritField == "" {
		return false
	}
	flag, _ := r.Get(r.variant.InheritField)
	return flag == InheritFlagValue
}

// =============================================================================
// TREE FIELDS
// =============================================================================

// NodeID returns the record's address in its tree, or NoNode.
func (r *Record) NodeID() NodeID {
	return r.id
}

// Parent returns the parent's NodeID, or NoNode.
func (r *Record) Parent() NodeID {
	return r.parent
}

// Children returns the child NodeIDs in insertion order.
func (r *Record) Children() []NodeID {
	out := make([]NodeID, len(r.children))
	copy(out, r.children)
	return out
}

// HasChildren reports whether the record owns any child.
func (r *Record) HasChildren() bool {
	return len(r.children) != 0
}

// Level returns the depth computed by the last level propagation.
func (r *Record) Level() int {
	return r.level
}

// OwnTemplate returns the template stored on this record, without looking
// at ancestors.
func (r *Record) OwnTemplate() string {
	return r.template
}
