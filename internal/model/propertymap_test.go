package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyMapLookup(t *testing.T) {
	m := NewPropertyMap(Field{"id", 0}, Field{"name", 2})

	idx, ok := m.Index("name")
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = m.Index("missing")
	assert.False(t, ok)

	name, ok := m.Name(0)
	require.True(t, ok)
	assert.Equal(t, "id", name)

	_, ok = m.Name(1)
	assert.False(t, ok)
	assert.Equal(t, 2, m.Len())
}

func TestPropertyMapZeroValue(t *testing.T) {
	var m PropertyMap
	_, ok := m.Index("id")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
	assert.True(t, m.Equal(NewPropertyMap()))
}

func TestFromHeader(t *testing.T) {
	m := FromHeader([]string{"id", "категория", "наименование", "цена"})
	assert.True(t, m.Equal(ProductVariant.Schema))

	t.Run("later duplicate wins", func(t *testing.T) {
		m := FromHeader([]string{"a", "b", "a"})
		idx, ok := m.Index("a")
		require.True(t, ok)
		assert.Equal(t, 2, idx)
		assert.Equal(t, 2, m.Len())
	})

	t.Run("blank names skipped", func(t *testing.T) {
		m := FromHeader([]string{"id", "", "цена", " "})
		assert.Equal(t, 2, m.Len())
		idx, ok := m.Index("цена")
		require.True(t, ok)
		assert.Equal(t, 2, idx)
		_, ok = m.Index("")
		assert.False(t, ok)
	})
}

func TestReconcile(t *testing.T) {
	base := NewPropertyMap(Field{"id", 0}, Field{"parent", 1})

	tests := []struct {
		name       string
		incoming   PropertyMap
		want       PropertyMap
		wantField  string
		wantsError bool
	}{
		{
			name:     "identical maps",
			incoming: NewPropertyMap(Field{"id", 0}, Field{"parent", 1}),
			want:     base,
		},
		{
			name:     "header adds fields",
			incoming: NewPropertyMap(Field{"id", 0}, Field{"parent", 1}, Field{"color", 4}),
			want:     NewPropertyMap(Field{"id", 0}, Field{"parent", 1}, Field{"color", 4}),
		},
		{
			name:     "header omits base fields",
			incoming: NewPropertyMap(Field{"color", 2}),
			want:     NewPropertyMap(Field{"id", 0}, Field{"parent", 1}, Field{"color", 2}),
		},
		{
			name:     "empty header",
			incoming: NewPropertyMap(),
			want:     base,
		},
		{
			name:       "shared field moved",
			incoming:   NewPropertyMap(Field{"parent", 0}, Field{"id", 1}),
			wantField:  "id",
			wantsError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reconcile(base, tt.incoming)
			if tt.wantsError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrSchemaConflict))
				var conflict *SchemaConflictError
				require.ErrorAs(t, err, &conflict)
				assert.Equal(t, tt.wantField, conflict.Field)
				assert.Equal(t, 0, got.Len())
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got.Fields())
		})
	}
}

func TestReconcileCommutesOnAgreement(t *testing.T) {
	a := NewPropertyMap(Field{"id", 0}, Field{"x", 1})
	b := NewPropertyMap(Field{"x", 1}, Field{"y", 2})

	ab, err := Reconcile(a, b)
	require.NoError(t, err)
	ba, err := Reconcile(b, a)
	require.NoError(t, err)
	assert.True(t, ab.Equal(ba))
}

func TestReconcileConflictIsDeterministic(t *testing.T) {
	a := NewPropertyMap(Field{"id", 0}, Field{"x", 1}, Field{"y", 2})
	b := NewPropertyMap(Field{"y", 5}, Field{"x", 7})

	for range 5 {
		_, err := Reconcile(a, b)
		var conflict *SchemaConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "x", conflict.Field)
		assert.Equal(t, 1, conflict.Existing)
		assert.Equal(t, 7, conflict.Incoming)
	}
}

func TestReconcileKeepsOrder(t *testing.T) {
	a := NewPropertyMap(Field{"id", 0}, Field{"b", 1})
	b := NewPropertyMap(Field{"z", 3}, Field{"b", 1}, Field{"c", 2})

	got, err := Reconcile(a, b)
	require.NoError(t, err)
	assert.Equal(t, []Field{{"id", 0}, {"b", 1}, {"z", 3}, {"c", 2}}, got.Fields())
}
