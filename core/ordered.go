package core

import (
	"iter"
	"slices"
)

// OrderedMap is a string-keyed map that enumerates keys in insertion order.
// Overwriting an existing key keeps its original position.
type OrderedMap[V any] struct {
	keys  []string
	items map[string]V
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{items: make(map[string]V)}
}

// Set stores v under key.
func (m *OrderedMap[V]) Set(key string, v V) {
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = v
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Keys returns a copy of the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	return slices.Clone(m.keys)
}

// Len returns the number of keys.
func (m *OrderedMap[V]) Len() int {
	return len(m.keys)
}

// All iterates key/value pairs in insertion order.
func (m *OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.items[k]) {
				return
			}
		}
	}
}
