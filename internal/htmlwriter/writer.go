// =============================================================================
// Catalog to HTML Converter - HTML Writer Module
// =============================================================================
//
// This module renders a linked record tree as a nested list fragment.
//
// OUTPUT STRUCTURE:
//   <ul>                                  <!-- one container for all roots -->
//     <li><h1>Tools</h1>                  <!-- root category, level 1 -->
//       <ul>
//         <li><h2>Hammers</h2>            <!-- subcategory, level 2 -->
//           <ul>
//             <li><b>Claw hammer</b></li> <!-- product body from template -->
//           </ul>
//         </li>
//       </ul>
//     </li>
//   </ul>
//
//   The real output carries no whitespace between tags.
//
// NODE RENDERING:
//   open wrapper + body + [<ul> children </ul>] + close wrapper
//
//   | Kind     | Open      | Close      | Body                               |
//   |----------|-----------|------------|------------------------------------|
//   | category | <li>      | </li>      | <hN>name</hN>, N = level           |
//   | product  | <li><b>   | </b></li>  | resolved template, substituted     |
//
// TEMPLATES:
//   A template is free text with %field% placeholders. Every distinct
//   placeholder is resolved once against the node's own properties; unset
//   fields become UNDEFINED. Substituted text is not scanned again.
//
// =============================================================================

package htmlwriter

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/ginjaninja78/catalog-html-converter/internal/model"
)

// UndefinedText replaces placeholders whose field is unset.
const UndefinedText = "UNDEFINED"

// placeholderPattern matches %field%; the field name may be empty.
var placeholderPattern = regexp.MustCompile(`%(.*?)%`)

// =============================================================================
// RENDER OPTIONS
// =============================================================================

// CategoryBody selects how a category's own body is produced.
type CategoryBody string

const (
	// CategoryBodyHeading renders <hN>name</hN>.
	CategoryBodyHeading CategoryBody = "heading"

	// CategoryBodyTemplate substitutes the category's resolved template and
	// falls back to the heading when none resolves.
	CategoryBodyTemplate CategoryBody = "template"
)

// Options contains options for rendering.
//
// By default a category renders as a heading of its name even when it has a
// template; the template only formats the products below it. Set
// CategoryBody to CategoryBodyTemplate to render a category through its own
// template, with the heading as the fallback.
type Options struct {
	// CategoryBody selects the category body.
	// Default: CategoryBodyHeading
	CategoryBody CategoryBody
}

// DefaultOptions returns the default render options.
func DefaultOptions() Options {
	return Options{
		CategoryBody: CategoryBodyHeading,
	}
}

// =============================================================================
// WRITER
// =============================================================================

// Writer renders records of one tree.
type Writer struct {
	tree    *model.Tree
	options Options
}

// New creates a Writer over tree.
func New(tree *model.Tree, options Options) *Writer {
	if options.CategoryBody == "" {
		options.CategoryBody = CategoryBodyHeading
	}
	return &Writer{
		tree:    tree,
		options: options,
	}
}

// Generate renders the category collection as one document.
//
// RETURNS:
//   - "" when the collection is empty.
//   - <ul> + every level-1 category in collection order + </ul> otherwise.
func Generate(categories *model.Collection, options Options) string {
	return New(categories.Tree(), options).Document(categories.IDs())
}

// Document renders the level-1 records among ids under one list container.
func (w *Writer) Document(ids []model.NodeID) string {
	if len(ids) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<ul>")
	for _, id := range ids {
		if w.tree.Node(id).Level() != 1 {
			continue
		}
		w.writeNode(&b, id)
	}
	b.WriteString("</ul>")

	return b.String()
}

// Node renders one record and its subtree.
func (w *Writer) Node(id model.NodeID) string {
	var b strings.Builder
	w.writeNode(&b, id)
	return b.String()
}

func (w *Writer) writeNode(b *strings.Builder, id model.NodeID) {
	node := w.tree.Node(id)
	open, closing := wrappers(node.Kind())

	b.WriteString(open)
	b.WriteString(w.Body(id))

	if node.HasChildren() {
		b.WriteString("<ul>")
		for _, child := range node.Children() {
			w.writeNode(b, child)
		}
		b.WriteString("</ul>")
	}

	b.WriteString(closing)
}

// wrappers returns the opening and closing fragments of kind.
func wrappers(kind model.Kind) (string, string) {
	switch kind {
	case model.KindCategory:
		return "<li>", "</li>"
	case model.KindProduct:
		return "<li><b>", "</b></li>"
	default:
		return "", ""
	}
}

// Body renders the formatted body of one record, without wrappers or
// children.
func (w *Writer) Body(id model.NodeID) string {
	node := w.tree.Node(id)

	switch node.Kind() {
	case model.KindCategory:
		if w.options.CategoryBody == CategoryBodyTemplate {
			if template, ok := w.tree.Template(id); ok {
				return Substitute(template, node)
			}
		}
		return heading(node)
	default:
		template, _ := w.tree.Template(id)
		return Substitute(template, node)
	}
}

// heading renders <hN>name</hN> with the escaped name of a category.
func heading(node *model.Record) string {
	name, _ := node.Get(model.NameField)
	level := node.Level()
	return fmt.Sprintf("<h%d>%s</h%d>", level, html.EscapeString(name), level)
}

// =============================================================================
// PLACEHOLDER SUBSTITUTION
// =============================================================================

// Properties is the lookup a template is resolved against.
type Properties interface {
	Get(name string) (string, bool)
}

// Substitute replaces every %field% in template with props.Get(field), or
// with UndefinedText when the field is unset.
func Substitute(template string, props Properties) string {
	if template == "" {
		return ""
	}

	resolved := make(map[string]string)
	return placeholderPattern.ReplaceAllStringFunc(template, func(placeholder string) string {
		if value, ok := resolved[placeholder]; ok {
			return value
		}

		value, ok := props.Get(placeholder[1 : len(placeholder)-1])
		if !ok {
			value = UndefinedText
		}
		resolved[placeholder] = value
		return value
	})
}
