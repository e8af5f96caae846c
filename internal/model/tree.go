// =============================================================================
// Catalog to HTML Converter - Record Tree
// =============================================================================
//
// Tree is the arena every record of one run lives in. Edges are stored as
// NodeIDs on both ends (parent on the child, child list on the parent), so
// the structure never holds pointer cycles even when the input describes a
// parent cycle.
//
// TEMPLATE INHERITANCE:
//   Two distinct operations touch a record's template:
//     Template     - read-time walk up the parent chain, recomputed on
//                    every call, never cached.
//     SetTemplate  - explicit one-shot push of a resolved value down the
//                    subtree when inherit is requested.
//
// LEVELS:
//   SetLevel / ResetLevel propagate depth top-down. They must be invoked
//   from the roots once linking is complete.
//
// Every walk stops at a node it has already visited, so detached parent
// rings never hang a caller.
//
// =============================================================================

package model

import "fmt"

// Tree owns the records of one catalog.
type Tree struct {
	nodes []*Record
}

// NewTree returns an empty arena.
func NewTree() *Tree {
	return &Tree{}
}

// Add places r in the arena and returns its address.
func (t *Tree) Add(r *Record) NodeID {
	id := NodeID(len(t.nodes))
	r.id = id
	t.nodes = append(t.nodes, r)
	return id
}

// Replace puts r at an existing address. The previous record is dropped
// together with its edges; r starts unlinked.
func (t *Tree) Replace(id NodeID, r *Record) {
	t.mustContain(id)
	r.id = id
	t.nodes[id] = r
}

// Node returns the record at id, or nil when id is out of range.
func (t *Tree) Node(id NodeID) *Record {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Len returns the number of addresses in use.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) mustContain(id NodeID) {
	if t.Node(id) == nil {
		panic(fmt.Sprintf("model: node %d not in tree", id))
	}
}

// =============================================================================
// EDGES
// =============================================================================

// AddChild appends child to parent's child list. The caller keeps the back
// reference consistent with SetParent, or uses Attach.
func (t *Tree) AddChild(parent, child NodeID) {
	t.mustContain(parent)
	t.mustContain(child)
	p := t.nodes[parent]
	p.children = append(p.children, child)
}

// SetParent sets child's back reference. NoNode detaches it.
func (t *Tree) SetParent(child, parent NodeID) {
	t.mustContain(child)
	if parent != NoNode {
		t.mustContain(parent)
	}
	t.nodes[child].parent = parent
}

// Attach links child under parent on both sides.
func (t *Tree) Attach(parent, child NodeID) {
	t.AddChild(parent, child)
	t.SetParent(child, parent)
}

// =============================================================================
// TEMPLATES
// =============================================================================

// Template resolves the display template of id: its own template when
// non-empty, otherwise the nearest ancestor's. ok is false when no record on
// the chain defines one.
func (t *Tree) Template(id NodeID) (string, bool) {
	seen := make(map[NodeID]bool)
	for cur := id; cur != NoNode && !seen[cur]; {
		seen[cur] = true
		node := t.Node(cur)
		if node == nil {
			break
		}
		if node.template != "" {
			return node.template, true
		}
		cur = node.parent
	}
	return "", false
}

// SetTemplate stores the value of field as the own template of id. With
// inherit set, that value overwrites the own template of every descendant.
func (t *Tree) SetTemplate(id NodeID, field string, inherit bool) {
	t.mustContain(id)
	node := t.nodes[id]
	node.template, _ = node.Get(field)

	if inherit {
		t.pushTemplate(node, node.template, map[NodeID]bool{id: true})
	}
}

func (t *Tree) pushTemplate(node *Record, template string, seen map[NodeID]bool) {
	for _, childID := range node.children {
		if seen[childID] {
			continue
		}
		seen[childID] = true
		child := t.nodes[childID]
		child.template = template
		t.pushTemplate(child, template, seen)
	}
}

// =============================================================================
// LEVELS
// =============================================================================

// SetLevel assigns level to id and level+1, level+2, ... to its subtree.
func (t *Tree) SetLevel(id NodeID, level int) {
	t.mustContain(id)
	t.propagateLevel(id, level, make(map[NodeID]bool))
}

// ResetLevel recomputes the level of id from its parent (parent level + 1,
// or 0 without a parent) and propagates it to the subtree.
func (t *Tree) ResetLevel(id NodeID) {
	t.mustContain(id)
	level := 0
	if parent := t.Node(t.nodes[id].parent); parent != nil {
		level = parent.level + 1
	}
	t.propagateLevel(id, level, make(map[NodeID]bool))
}

func (t *Tree) propagateLevel(id NodeID, level int, seen map[NodeID]bool) {
	if seen[id] {
		return
	}
	seen[id] = true
	node := t.nodes[id]
	node.level = level
	for _, child := range node.children {
		t.propagateLevel(child, level+1, seen)
	}
}
