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

// Package data defines the row sources a grid renders from.
package data

import (
	"github.com/google/gridview/core/orderedmap"
	"github.com/google/gridview/core/query"
	"github.com/google/safehtml"
)

// Provider supplies the rows of the current page.
type Provider interface {
	// Models returns the row records of the current page.
	Models() []any
	// Keys returns one key per model. A key is a scalar or a
	// map[string]any for composite keys.
	Keys() []any
	// Count is the number of rows on the current page.
	Count() int
	// Pagination returns nil when the provider is not paginated.
	Pagination() *Pagination
}

// LinkRenderer is implemented by providers that render their own pager.
type LinkRenderer interface {
	RenderLinks(q *query.Query) (safehtml.HTML, error)
}

// Record is an ordered row of named values.
type Record = orderedmap.Map[string, any]

// NewRecord builds a record from alternating name/value pairs.
// It panics on an odd number of arguments or a non-string name.
func NewRecord(pairs ...any) *Record {
	if len(pairs)%2 != 0 {
		panic("data.NewRecord: odd number of arguments")
	}
	r := orderedmap.New[string, any]()
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic("data.NewRecord: field name is not a string")
		}
		r.Set(name, pairs[i+1])
	}
	return r
}

// Pagination is the paging metadata of a provider.
type Pagination struct {
	CurrentPage int // 1-based
	PerPage     int
	Total       int
}

// PageCount returns the number of pages, at least 1.
func (p *Pagination) PageCount() int {
	if p == nil || p.PerPage < 1 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// HasPages reports whether a pager is worth rendering.
func (p *Pagination) HasPages() bool {
	if p == nil {
		return false
	}
	return p.PageCount() > 1 || p.CurrentPage > 1
}

// Offset returns the zero-based index of the first row on the current page.
func (p *Pagination) Offset() int {
	if p == nil || p.CurrentPage < 1 || p.PerPage < 1 {
		return 0
	}
	return (p.CurrentPage - 1) * p.PerPage
}
