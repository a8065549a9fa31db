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

package orderedmap

import (
	"strings"
	"testing"
)

func TestMap(t *testing.T) {
	om := New[string, int]()

	om.Set("first", 1)
	om.Set("second", 2)
	om.Set("third", 3)

	if om.Len() != 3 {
		t.Errorf("Expected length 3, got %d", om.Len())
	}

	if val, ok := om.Get("second"); !ok || val != 2 {
		t.Errorf("Expected Get('second') to return 2, got %d", val)
	}

	// Keys preserve insertion order
	keys := om.Keys()
	expected := []string{"first", "second", "third"}
	if !equalKeys(keys, expected) {
		t.Errorf("Expected keys %v, got %v", expected, keys)
	}

	// Updating an existing key doesn't change order
	om.Set("first", 10)
	if keys = om.Keys(); keys[0] != "first" {
		t.Errorf("Updating value should not change key order")
	}

	om.Delete("second")
	expected = []string{"first", "third"}
	if keys = om.Keys(); !equalKeys(keys, expected) {
		t.Errorf("After delete, expected keys %v, got %v", expected, keys)
	}

	var visited []string
	om.Range(func(k string, v int) bool {
		visited = append(visited, k)
		return false
	})
	if len(visited) != 1 || visited[0] != "first" {
		t.Errorf("Range should stop after first callback returning false, visited %v", visited)
	}
}

func TestMap_NilReceiver(t *testing.T) {
	var om *Map[string, string]

	if om.Len() != 0 {
		t.Errorf("nil map Len() = %d, want 0", om.Len())
	}
	if _, ok := om.Get("x"); ok {
		t.Error("nil map Get() should report missing")
	}
	if om.Has("x") {
		t.Error("nil map Has() should be false")
	}
	om.Delete("x")
	if keys := om.Keys(); len(keys) != 0 {
		t.Errorf("nil map Keys() = %v, want empty", keys)
	}
	if clone := om.Clone(); clone == nil || clone.Len() != 0 {
		t.Error("Clone() of nil map should be an empty map")
	}
}

func TestMap_Merge(t *testing.T) {
	base := New[string, string]().Set("class", "btn").Set("title", "View")
	extra := New[string, string]().Set("title", "Show").Set("target", "_blank")

	merged := base.Merge(extra)

	expected := []string{"class", "title", "target"}
	if keys := merged.Keys(); !equalKeys(keys, expected) {
		t.Errorf("Merge() keys = %v, want %v", keys, expected)
	}
	if v, _ := merged.Get("title"); v != "Show" {
		t.Errorf("Merge() title = %q, want later value %q", v, "Show")
	}
	if v, _ := base.Get("title"); v != "View" {
		t.Errorf("Merge() must not modify the receiver, title = %q", v)
	}
}

func TestFromMap(t *testing.T) {
	om := FromMap(map[string]int{"b": 2, "c": 3, "a": 1}, func(a, b string) bool {
		return strings.Compare(a, b) < 0
	})

	expected := []string{"a", "b", "c"}
	if keys := om.Keys(); !equalKeys(keys, expected) {
		t.Errorf("FromMap() keys = %v, want %v", keys, expected)
	}
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMap_MarshalJSON(t *testing.T) {
	om := New[string, any]().Set("z", 1).Set("a", "two").Set("m", New[string, any]().Set("y", true).Set("b", nil))

	got, err := om.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}
	want := `{"z":1,"a":"two","m":{"y":true,"b":null}}`
	if string(got) != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}
}
