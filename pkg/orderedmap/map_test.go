// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package orderedmap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamlprep/yamlprep/pkg/orderedmap"
)

func TestMapKeepsInsertionOrder(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("c", 3)
	m.Set("a", 1)
	m.Set("b", 2)

	require.Equal(t, []interface{}{"c", "a", "b"}, m.Keys())

	m.Set("a", 10)
	require.Equal(t, []interface{}{"c", "a", "b"}, m.Keys(), "update must not move a key")

	val, found := m.Get("a")
	require.True(t, found)
	require.Equal(t, 10, val)
}

func TestMapInsertDoesNotOverwrite(t *testing.T) {
	m := orderedmap.NewMap()
	require.True(t, m.Insert("key", 1))
	require.False(t, m.Insert("key", 2))

	val, _ := m.Get("key")
	require.Equal(t, 1, val)
}

func TestMapDelete(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("a", 1)
	m.Set("b", 2)

	require.True(t, m.Delete("a"))
	require.False(t, m.Delete("a"))
	require.Equal(t, 1, m.Len())
	require.False(t, m.Contains("a"))
}

func TestMapDistinctKeyTypes(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("1", "string key")
	m.Set(1, "int key")

	require.Equal(t, 2, m.Len())

	val, _ := m.Get(1)
	require.Equal(t, "int key", val)
}

func TestMapPointerKeysAreDistinct(t *testing.T) {
	type marker struct{ id int }
	k1, k2 := &marker{1}, &marker{1}

	m := orderedmap.NewMap()
	m.Set(k1, "first")
	m.Set(k2, "second")

	require.Equal(t, 2, m.Len())
}

func TestMapShallowCopyIsIndependent(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("a", 1)

	copied := m.ShallowCopy()
	copied.Set("b", 2)

	require.Equal(t, 1, m.Len())
	require.Equal(t, 2, copied.Len())
}

func TestConversionRoundTrip(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("b", []interface{}{1, 2})
	inner := orderedmap.NewMap()
	inner.Set("x", true)
	m.Set("a", inner)

	plain := orderedmap.Conversion{Object: m}.AsUnorderedStringMaps()
	require.Equal(t, map[string]interface{}{
		"b": []interface{}{1, 2},
		"a": map[string]interface{}{"x": true},
	}, plain)

	back := orderedmap.Conversion{Object: plain}.FromUnorderedMaps().(*orderedmap.Map)
	require.Equal(t, []interface{}{"a", "b"}, back.Keys(), "converted keys come back sorted")
}
