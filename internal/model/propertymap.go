// =============================================================================
// Catalog to HTML Converter - Property Map and Schema Reconciler
// =============================================================================
//
// A PropertyMap is the schema of a Record: it maps field names to the
// positional slots their values are stored in. Each variant has a built-in
// base map (identifier and relationship fields at fixed positions). The
// product file additionally supplies its own map through its header row,
// and the two are merged by Reconcile.
//
// RECONCILIATION RULES:
//   - A field present in both maps must have the same index in both.
//   - Any disagreement is a SchemaConflictError; nothing is merged.
//   - Otherwise the result is the union: existing fields first (in their
//     order), then fields only the incoming map knows (in its order).
//
// =============================================================================

package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchemaConflict is matched by every SchemaConflictError.
var ErrSchemaConflict = errors.New("schema conflict")

// SchemaConflictError reports a field that two property maps place at
// different slots.
type SchemaConflictError struct {
	Field    string
	Existing int
	Incoming int
}

// Error implements the error interface.
func (e *SchemaConflictError) Error() string {
	return fmt.Sprintf("schema conflict: field %q is at index %d, header places it at %d",
		e.Field, e.Existing, e.Incoming)
}

// Is makes errors.Is(err, ErrSchemaConflict) succeed.
func (e *SchemaConflictError) Is(target error) bool {
	return target == ErrSchemaConflict
}

// =============================================================================
// PROPERTY MAP
// =============================================================================

// Field is one name -> slot association.
type Field struct {
	Name  string
	Index int
}

// PropertyMap is an ordered, immutable field name -> slot index mapping.
// The zero value is an empty map.
type PropertyMap struct {
	fields []Field
	byName map[string]int
}

// NewPropertyMap builds a map from fields in the given order. A repeated
// name keeps its first position in the order and takes the last index.
func NewPropertyMap(fields ...Field) PropertyMap {
	m := PropertyMap{byName: make(map[string]int, len(fields))}
	for _, f := range fields {
		m = m.with(f)
	}
	return m
}

// FromHeader turns a header row into a map: each column name points at its
// own position. Later duplicates win, as when flipping the row. Columns with
// a blank name are skipped.
func FromHeader(header []string) PropertyMap {
	fields := make([]Field, 0, len(header))
	for i, name := range header {
		if strings.TrimSpace(name) == "" {
			continue
		}
		fields = append(fields, Field{Name: name, Index: i})
	}
	return NewPropertyMap(fields...)
}

func (m PropertyMap) with(f Field) PropertyMap {
	if pos, ok := m.byName[f.Name]; ok {
		m.fields[pos].Index = f.Index
		return m
	}
	m.byName[f.Name] = len(m.fields)
	m.fields = append(m.fields, f)
	return m
}

// Index returns the slot for name.
func (m PropertyMap) Index(name string) (int, bool) {
	pos, ok := m.byName[name]
	if !ok {
		return 0, false
	}
	return m.fields[pos].Index, true
}

// Name returns the first field mapped to index.
func (m PropertyMap) Name(index int) (string, bool) {
	for _, f := range m.fields {
		if f.Index == index {
			return f.Name, true
		}
	}
	return "", false
}

// Fields returns a copy of the fields in map order.
func (m PropertyMap) Fields() []Field {
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return out
}

// Len returns the number of named fields.
func (m PropertyMap) Len() int {
	return len(m.fields)
}

// Equal reports whether both maps hold the same associations, ignoring order.
func (m PropertyMap) Equal(other PropertyMap) bool {
	if m.Len() != other.Len() {
		return false
	}
	for _, f := range m.fields {
		idx, ok := other.Index(f.Name)
		if !ok || idx != f.Index {
			return false
		}
	}
	return true
}

// Extend returns the union of m and more without any conflict check; later
// fields overwrite earlier ones. It is used to assemble variant schemas.
func (m PropertyMap) Extend(more ...Field) PropertyMap {
	return NewPropertyMap(append(m.Fields(), more...)...)
}

// =============================================================================
// RECONCILER
// =============================================================================

// Reconcile merges incoming into existing.
//
// RETURNS:
//   - The union of both maps when every shared field agrees on its index.
//   - A *SchemaConflictError naming the first disagreeing field (in the
//     existing map's order) otherwise. The returned map is then empty.
func Reconcile(existing, incoming PropertyMap) (PropertyMap, error) {
	for _, f := range existing.fields {
		idx, ok := incoming.Index(f.Name)
		if ok && idx != f.Index {
			return PropertyMap{}, &SchemaConflictError{
				Field:    f.Name,
				Existing: f.Index,
				Incoming: idx,
			}
		}
	}

	return NewPropertyMap(append(existing.Fields(), incoming.fields...)...), nil
}
