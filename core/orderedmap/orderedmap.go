/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package orderedmap provides a map that remembers insertion order.
package orderedmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Map is a map that preserves the order of insertion.
// A nil *Map is a valid empty map for all read operations.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// New creates a new ordered map
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		keys:   make([]K, 0),
		values: make(map[K]V),
	}
}

// FromMap builds an ordered map from a plain map, ordering keys with less.
// Plain Go maps carry no order, so callers must pick one.
func FromMap[K comparable, V any](m map[K]V, less func(a, b K) bool) *Map[K, V] {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })

	om := New[K, V]()
	for _, k := range keys {
		om.Set(k, m[k])
	}
	return om
}

// Set adds or updates a key-value pair
func (om *Map[K, V]) Set(key K, value V) *Map[K, V] {
	if om.values == nil {
		om.values = make(map[K]V)
	}
	if _, exists := om.values[key]; !exists {
		om.keys = append(om.keys, key)
	}
	om.values[key] = value
	return om
}

// Get retrieves a value by key
func (om *Map[K, V]) Get(key K) (V, bool) {
	if om == nil {
		var zero V
		return zero, false
	}
	val, exists := om.values[key]
	return val, exists
}

// Delete removes a key-value pair
func (om *Map[K, V]) Delete(key K) {
	if om == nil {
		return
	}
	if _, exists := om.values[key]; exists {
		delete(om.values, key)
		for i, k := range om.keys {
			if k == key {
				om.keys = append(om.keys[:i], om.keys[i+1:]...)
				break
			}
		}
	}
}

// Keys returns all keys in insertion order
func (om *Map[K, V]) Keys() []K {
	if om == nil {
		return nil
	}
	result := make([]K, len(om.keys))
	copy(result, om.keys)
	return result
}

// Values returns all values in insertion order
func (om *Map[K, V]) Values() []V {
	if om == nil {
		return nil
	}
	result := make([]V, len(om.keys))
	for i, k := range om.keys {
		result[i] = om.values[k]
	}
	return result
}

// Len returns the number of key-value pairs
func (om *Map[K, V]) Len() int {
	if om == nil {
		return 0
	}
	return len(om.keys)
}

// Range iterates over the map in insertion order.
// If f returns false, iteration stops.
func (om *Map[K, V]) Range(f func(key K, value V) bool) {
	if om == nil {
		return
	}
	for _, k := range om.keys {
		if !f(k, om.values[k]) {
			break
		}
	}
}

// Has checks if a key exists
func (om *Map[K, V]) Has(key K) bool {
	if om == nil {
		return false
	}
	_, exists := om.values[key]
	return exists
}

// Clone returns a shallow copy. Cloning nil yields an empty map.
func (om *Map[K, V]) Clone() *Map[K, V] {
	clone := New[K, V]()
	om.Range(func(k K, v V) bool {
		clone.Set(k, v)
		return true
	})
	return clone
}

// Merge returns a new map holding om's entries overlaid with each of others
// in turn. Keys keep the position of their first appearance.
func (om *Map[K, V]) Merge(others ...*Map[K, V]) *Map[K, V] {
	merged := om.Clone()
	for _, other := range others {
		other.Range(func(k K, v V) bool {
			merged.Set(k, v)
			return true
		})
	}
	return merged
}

// MarshalJSON encodes the map as a JSON object with keys in insertion order.
func (om *Map[K, V]) MarshalJSON() ([]byte, error) {
	if om == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range om.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fmt.Sprint(k))
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(om.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
