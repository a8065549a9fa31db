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

package data

import (
	"errors"
	"testing"
	"time"
)

type author struct {
	Name  string
	Email string `json:"email_address,omitempty"`
}

type post struct {
	ID        int     `grid:"id"`
	Title     string
	Author    *author
	Tags      []string
	CreatedAt time.Time
	secret    string
}

func (p post) Slug() string { return "post-" + p.Title }

func (p *post) Broken() (string, error) { return "", errors.New("boom") }

func TestLookup(t *testing.T) {
	p := &post{
		ID:        7,
		Title:     "hello",
		Author:    &author{Name: "Ann", Email: "ann@example.com"},
		Tags:      []string{"go", "html"},
		CreatedAt: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
		secret:    "x",
	}
	rec := NewRecord("id", 1, "user", map[string]any{"name": "Bob"}, "nothing", nil)

	tests := []struct {
		name   string
		model  any
		path   string
		want   any
		wantOK bool
	}{
		{"record key", rec, "id", 1, true},
		{"record nested map", rec, "user.name", "Bob", true},
		{"record nil value", rec, "nothing", nil, true},
		{"record missing", rec, "missing", nil, false},
		{"through nil", rec, "nothing.deeper", nil, false},
		{"plain map", map[string]any{"a": map[string]string{"b": "c"}}, "a.b", "c", true},
		{"struct tag", p, "id", 7, true},
		{"struct field", p, "Title", "hello", true},
		{"snake case field", p, "created_at", p.CreatedAt, true},
		{"pointer field", p, "author.name", "Ann", true},
		{"json tag", p, "author.email_address", "ann@example.com", true},
		{"slice index", p, "tags.1", "html", true},
		{"slice out of range", p, "tags.5", nil, false},
		{"method", p, "slug", "post-hello", true},
		{"method on field value", p, "created_at.year", 2024, true},
		{"method error", p, "broken", nil, false},
		{"unexported field", p, "secret", nil, false},
		{"empty path", p, "", nil, false},
		{"nil model", nil, "a", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(tt.model, tt.path)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestFields(t *testing.T) {
	rec := NewRecord("b", 1, "a", 2)
	if got := fieldNames(Fields(rec)); !equal(got, []string{"b", "a"}) {
		t.Errorf("record fields = %v", got)
	}

	m := map[string]any{"z": 1, "y": 2}
	if got := fieldNames(Fields(m)); !equal(got, []string{"y", "z"}) {
		t.Errorf("map fields = %v", got)
	}

	p := post{ID: 1}
	want := []string{"id", "Title", "Author", "Tags", "CreatedAt"}
	if got := fieldNames(Fields(&p)); !equal(got, want) {
		t.Errorf("struct fields = %v, want %v", got, want)
	}

	if Fields(nil) != nil {
		t.Error("Fields(nil) should be nil")
	}
}

func TestIsScalar(t *testing.T) {
	scalars := []any{nil, "s", 1, uint8(2), 3.5, true, time.Now()}
	for _, v := range scalars {
		if !IsScalar(v) {
			t.Errorf("IsScalar(%#v) = false", v)
		}
	}
	for _, v := range []any{[]string{"a"}, map[string]any{}, struct{}{}} {
		if IsScalar(v) {
			t.Errorf("IsScalar(%#v) = true", v)
		}
	}
}

func TestCamelize(t *testing.T) {
	if got := Camelize("first_name"); got != "FirstName" {
		t.Errorf("Camelize() = %q", got)
	}
	if got := Camelize("created-at"); got != "CreatedAt" {
		t.Errorf("Camelize() = %q", got)
	}
}

func fieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func equal(a, b []string) bool {
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
