package model

// Collection indexes the records of one source file by identifier, in the
// order identifiers were first seen. Records without an identifier share the
// empty key.
type Collection struct {
	tree  *Tree
	order []string
	byKey map[string]NodeID
}

// NewCollection returns an empty collection whose records live in tree.
func NewCollection(tree *Tree) *Collection {
	return &Collection{
		tree:  tree,
		byKey: make(map[string]NodeID),
	}
}

// Put stores r under its identifier. A record with an identifier already
// present replaces the earlier one in place and keeps its position.
func (c *Collection) Put(r *Record) NodeID {
	key, _ := r.ID()
	if id, ok := c.byKey[key]; ok {
		c.tree.Replace(id, r)
		return id
	}

	id := c.tree.Add(r)
	c.byKey[key] = id
	c.order = append(c.order, key)
	return id
}

// Lookup returns the record stored under key.
func (c *Collection) Lookup(key string) (NodeID, bool) {
	id, ok := c.byKey[key]
	return id, ok
}

// IDs returns the stored NodeIDs in collection order.
func (c *Collection) IDs() []NodeID {
	ids := make([]NodeID, len(c.order))
	for i, key := range c.order {
		ids[i] = c.byKey[key]
	}
	return ids
}

// Len returns the number of distinct identifiers.
func (c *Collection) Len() int {
	return len(c.order)
}

// Tree returns the arena backing the collection.
func (c *Collection) Tree() *Tree {
	return c.tree
}
