// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package keylist implements an ordered list of values with a
// map from keys to indexes for fast lookup by name. It backs the
// interface sets, class registries and scopes of the scene graph,
// all of which need both insertion order and name lookup.
package keylist

import (
	"fmt"
	"slices"
)

// List is an ordered list of Values with a parallel list of Keys.
// The zero value is ready to use.
type List[K comparable, V any] struct {

	// Values is the ordered slice of items.
	Values []V

	// Keys is the ordered list of keys, in the same order as Values.
	Keys []K

	indexes map[K]int
}

// New returns a new empty [List].
func New[K comparable, V any]() *List[K, V] {
	return &List[K, V]{}
}

func (kl *List[K, V]) reindex() {
	kl.indexes = make(map[K]int, len(kl.Keys))
	for i, k := range kl.Keys {
		kl.indexes[k] = i
	}
}

// Reset removes all of the items.
func (kl *List[K, V]) Reset() {
	kl.Values = nil
	kl.Keys = nil
	kl.indexes = nil
}

// Set sets the value for the given key, appending it if the key is
// new and replacing the existing value in place otherwise.
func (kl *List[K, V]) Set(key K, val V) {
	if kl.indexes == nil {
		kl.reindex()
	}
	if idx, ok := kl.indexes[key]; ok {
		kl.Values[idx] = val
		return
	}
	kl.indexes[key] = len(kl.Values)
	kl.Values = append(kl.Values, val)
	kl.Keys = append(kl.Keys, key)
}

// Add appends the value with the given key. It returns an error
// if the key is already on the list.
func (kl *List[K, V]) Add(key K, val V) error {
	if kl.indexes == nil {
		kl.reindex()
	}
	if _, ok := kl.indexes[key]; ok {
		return fmt.Errorf("keylist.Add: key %v is already on the list", key)
	}
	kl.Set(key, val)
	return nil
}

// At returns the value for the given key, or the zero value.
func (kl *List[K, V]) At(key K) V {
	v, _ := kl.AtTry(key)
	return v
}

// AtTry returns the value for the given key and whether it exists.
func (kl *List[K, V]) AtTry(key K) (V, bool) {
	if kl != nil {
		if idx, ok := kl.indexes[key]; ok {
			return kl.Values[idx], true
		}
	}
	var zv V
	return zv, false
}

// IndexByKey returns the index of the given key, or -1.
func (kl *List[K, V]) IndexByKey(key K) int {
	if kl == nil {
		return -1
	}
	if idx, ok := kl.indexes[key]; ok {
		return idx
	}
	return -1
}

// Len returns the number of items in the list.
func (kl *List[K, V]) Len() int {
	if kl == nil {
		return 0
	}
	return len(kl.Values)
}

// DeleteByKey deletes the item with the given key,
// returning false if it is not on the list.
func (kl *List[K, V]) DeleteByKey(key K) bool {
	idx := kl.IndexByKey(key)
	if idx < 0 {
		return false
	}
	kl.Keys = slices.Delete(kl.Keys, idx, idx+1)
	kl.Values = slices.Delete(kl.Values, idx, idx+1)
	kl.reindex()
	return true
}

// Clone returns a shallow copy of the list.
func (kl *List[K, V]) Clone() *List[K, V] {
	cp := &List[K, V]{Values: slices.Clone(kl.Values), Keys: slices.Clone(kl.Keys)}
	cp.reindex()
	return cp
}
