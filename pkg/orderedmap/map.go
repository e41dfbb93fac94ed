// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"reflect"
)

// Map is an insertion-ordered map. It is the mapping type used throughout
// the preprocessor: YAML mappings keep their authored key order all the way
// to the output, and pointer identity is what the recursive processor uses
// to signal "nothing changed".
type Map struct {
	items []MapItem
}

type MapItem struct {
	Key   interface{}
	Value interface{}
}

func NewMap() *Map {
	return &Map{}
}

func NewMapWithItems(items []MapItem) *Map {
	return &Map{items}
}

// Set adds the pair, replacing the value of an existing equal key in place.
func (m *Map) Set(key, value interface{}) {
	for i, item := range m.items {
		if keysEq(item.Key, key) {
			m.items[i].Value = value
			return
		}
	}
	m.items = append(m.items, MapItem{key, value})
}

// Insert adds the pair only when the key is not already present. Reports
// whether the pair was added. Merge-key and package-merge semantics
// ("explicit keys win") are built on this.
func (m *Map) Insert(key, value interface{}) bool {
	if m.Contains(key) {
		return false
	}
	m.items = append(m.items, MapItem{key, value})
	return true
}

func (m *Map) Get(key interface{}) (interface{}, bool) {
	for _, item := range m.items {
		if keysEq(item.Key, key) {
			return item.Value, true
		}
	}
	return nil, false
}

func (m *Map) Contains(key interface{}) bool {
	_, found := m.Get(key)
	return found
}

func (m *Map) Delete(key interface{}) bool {
	for i, item := range m.items {
		if keysEq(item.Key, key) {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Map) Keys() (keys []interface{}) {
	m.Iterate(func(k, _ interface{}) {
		keys = append(keys, k)
	})
	return
}

// Items returns the backing entries. Callers must not mutate the slice.
func (m *Map) Items() []MapItem {
	return m.items
}

func (m *Map) Iterate(iterFunc func(k, v interface{})) {
	for _, item := range m.items {
		iterFunc(item.Key, item.Value)
	}
}

func (m *Map) IterateErr(iterFunc func(k, v interface{}) error) error {
	for _, item := range m.items {
		err := iterFunc(item.Key, item.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Map) Len() int { return len(m.items) }

// ShallowCopy returns a new Map with the same entries.
func (m *Map) ShallowCopy() *Map {
	items := make([]MapItem, len(m.items))
	copy(items, m.items)
	return &Map{items}
}

// keysEq compares keys. Most keys are plain comparable scalars; reflection
// only kicks in for composite keys (e.g. placeholder keys).
func keysEq(key1, key2 interface{}) bool {
	if key1 == nil || key2 == nil {
		return key1 == key2
	}
	t1, t2 := reflect.TypeOf(key1), reflect.TypeOf(key2)
	if t1 != t2 {
		return false
	}
	if t1.Comparable() {
		return key1 == key2
	}
	return reflect.DeepEqual(key1, key2)
}
