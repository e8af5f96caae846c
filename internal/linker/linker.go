// =============================================================================
// Catalog to HTML Converter - Tree Linker
// =============================================================================
//
// The linker turns two flat collections into one forest.
//
// LINKING PIPELINE:
//   1. LinkProducts    - attach each product under the category named by
//                        its parent key. Unknown keys leave the product
//                        orphaned; orphans are counted, not reported.
//   2. LinkCategories  - fixed-point iteration: scan all categories again
//                        and again, attaching any still parentless category
//                        whose parent key names a known category, until a
//                        pass attaches nothing. Input order does not matter
//                        and chains of any depth resolve.
//   3. FinalizeRoots   - every category whose parent key is missing, empty,
//                        "0" or unknown becomes a root: level 1, template
//                        taken from its own template field and pushed down
//                        the subtree when the root's inherit flag is set.
//
// CYCLES:
//   Categories whose parent keys point at each other attach to each other
//   and form a ring that no root reaches. They are not roots, keep level 0
//   and are never rendered. Stats.Unrooted counts them.
//
// =============================================================================

package linker

import "github.com/ginjaninja78/catalog-html-converter/internal/model"

// noParentKey is the parent key value that explicitly means "no parent".
const noParentKey = "0"

// Stats describes the outcome of one Link call.
type Stats struct {
	// Categories and Products are the collection sizes.
	Categories int
	Products   int

	// LinkedProducts found their category; OrphanProducts did not.
	LinkedProducts int
	OrphanProducts int

	// LinkedCategories were attached under another category.
	LinkedCategories int

	// Passes is the number of fixed-point scans, including the final
	// scan that changed nothing.
	Passes int

	// Roots is the number of level-1 categories.
	Roots int

	// Unrooted categories are linked but unreachable from any root.
	Unrooted int
}

// Link runs the full pipeline over categories and products, which must
// share one tree.
func Link(categories, products *model.Collection) Stats {
	stats := Stats{
		Categories: categories.Len(),
		Products:   products.Len(),
	}

	stats.LinkedProducts, stats.OrphanProducts = LinkProducts(categories, products)
	stats.LinkedCategories, stats.Passes = LinkCategories(categories)

	roots := FinalizeRoots(categories)
	stats.Roots = len(roots)
	stats.Unrooted = countUnrooted(categories)

	return stats
}

// LinkProducts attaches every product whose parent key names a known
// category.
func LinkProducts(categories, products *model.Collection) (linked, orphans int) {
	tree := products.Tree()

	for _, id := range products.IDs() {
		parent, ok := resolveParent(categories, tree.Node(id))
		if !ok {
			orphans++
			continue
		}
		tree.Attach(parent, id)
		linked++
	}

	return linked, orphans
}

// LinkCategories attaches categories under their parents until a full scan
// changes nothing.
func LinkCategories(categories *model.Collection) (linked, passes int) {
	tree := categories.Tree()

	for {
		passes++
		changed := false

		for _, id := range categories.IDs() {
			node := tree.Node(id)
			if node.Parent() != model.NoNode {
				continue
			}

			parent, ok := resolveParent(categories, node)
			if !ok {
				continue
			}

			tree.Attach(parent, id)
			linked++
			changed = true
		}

		if !changed {
			return linked, passes
		}
	}
}

// FinalizeRoots fixes level and template of every root category and
// returns the roots in collection order.
func FinalizeRoots(categories *model.Collection) []model.NodeID {
	tree := categories.Tree()
	var roots []model.NodeID

	for _, id := range categories.IDs() {
		node := tree.Node(id)
		if _, ok := resolveParent(categories, node); ok {
			continue
		}

		tree.SetLevel(id, 1)
		tree.SetTemplate(id, node.Variant().TemplateField, node.Inherits())
		roots = append(roots, id)
	}

	return roots
}

// resolveParent looks up the category named by node's parent key.
func resolveParent(categories *model.Collection, node *model.Record) (model.NodeID, bool) {
	key, ok := node.ParentKey()
	if !ok || key == "" || key == noParentKey {
		return model.NoNode, false
	}
	return categories.Lookup(key)
}

// countUnrooted counts categories that have a parent but no root above them.
func countUnrooted(categories *model.Collection) int {
	tree := categories.Tree()
	count := 0
	for _, id := range categories.IDs() {
		if tree.Node(id).Level() == 0 {
			count++
		}
	}
	return count
}
