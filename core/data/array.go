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
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/google/gridview/core/query"
	"github.com/shopspring/decimal"
)

// ArrayProvider serves rows held in memory.
//
// With PageSize zero the provider is not paginated and every row is on
// the single page. Page applies a request's filters, sort and page.
type ArrayProvider struct {
	// Rows are the full, unfiltered row set.
	Rows []any
	// KeyField names the field holding each row's key. When empty and
	// KeyFields is empty the zero-based row position is the key.
	KeyField string
	// KeyFields make composite keys: each key is a map[string]any.
	KeyFields []string
	// PageSize is the number of rows per page.
	PageSize int
	// CurrentPage is the 1-based page served by Models.
	CurrentPage int

	// window is the row range after filtering and sorting.
	window  []indexedRow
	total   int
	applied bool
}

type indexedRow struct {
	pos   int
	model any
}

// NewArrayProvider creates an unpaginated provider over rows.
func NewArrayProvider(rows []any) *ArrayProvider {
	return &ArrayProvider{Rows: rows}
}

// Page returns a copy of p with the filters, sort and page of q applied.
// A per-page override in q replaces PageSize.
func (p *ArrayProvider) Page(q *query.Query) *ArrayProvider {
	next := *p
	next.applied = true
	next.window = nil

	rows := make([]indexedRow, 0, len(p.Rows))
	for i, m := range p.Rows {
		if matchesFilters(m, q) {
			rows = append(rows, indexedRow{pos: i, model: m})
		}
	}

	if attr, dir := q.SortKey(); attr != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			a, _ := Lookup(rows[i].model, attr)
			b, _ := Lookup(rows[j].model, attr)
			c := Compare(a, b)
			if dir == query.Descending {
				return c > 0
			}
			return c < 0
		})
	}

	if q != nil && q.PerPage > 0 {
		next.PageSize = q.PerPage
	}
	next.total = len(rows)
	next.CurrentPage = q.CurrentPage()
	if next.PageSize > 0 {
		pages := (len(rows) + next.PageSize - 1) / next.PageSize
		if pages < 1 {
			pages = 1
		}
		if next.CurrentPage > pages {
			next.CurrentPage = pages
		}
		start := (next.CurrentPage - 1) * next.PageSize
		end := start + next.PageSize
		if end > len(rows) {
			end = len(rows)
		}
		rows = rows[start:end]
	}
	next.window = rows
	return &next
}

func (p *ArrayProvider) rows() []indexedRow {
	if p.applied {
		return p.window
	}
	rows := make([]indexedRow, 0, len(p.Rows))
	for i, m := range p.Rows {
		rows = append(rows, indexedRow{pos: i, model: m})
	}
	if p.PageSize > 0 {
		page := p.CurrentPage
		if page < 1 {
			page = 1
		}
		start := (page - 1) * p.PageSize
		if start > len(rows) {
			start = len(rows)
		}
		end := start + p.PageSize
		if end > len(rows) {
			end = len(rows)
		}
		rows = rows[start:end]
	}
	return rows
}

// Models implements Provider.
func (p *ArrayProvider) Models() []any {
	rows := p.rows()
	models := make([]any, len(rows))
	for i, r := range rows {
		models[i] = r.model
	}
	return models
}

// Keys implements Provider.
func (p *ArrayProvider) Keys() []any {
	rows := p.rows()
	keys := make([]any, len(rows))
	for i, r := range rows {
		keys[i] = p.key(r)
	}
	return keys
}

func (p *ArrayProvider) key(r indexedRow) any {
	if len(p.KeyFields) > 0 {
		composite := make(map[string]any, len(p.KeyFields))
		for _, f := range p.KeyFields {
			composite[f], _ = Lookup(r.model, f)
		}
		return composite
	}
	if p.KeyField != "" {
		if v, ok := Lookup(r.model, p.KeyField); ok {
			return v
		}
	}
	return r.pos
}

// Count implements Provider.
func (p *ArrayProvider) Count() int {
	return len(p.rows())
}

// TotalCount returns the number of rows across all pages.
func (p *ArrayProvider) TotalCount() int {
	if p.applied {
		return p.total
	}
	return len(p.Rows)
}

// Pagination implements Provider.
func (p *ArrayProvider) Pagination() *Pagination {
	if p.PageSize < 1 {
		return nil
	}
	page := p.CurrentPage
	if page < 1 {
		page = 1
	}
	return &Pagination{
		CurrentPage: page,
		PerPage:     p.PageSize,
		Total:       p.TotalCount(),
	}
}

// matchesFilters keeps rows whose filtered attributes contain the filter
// value, ignoring case. Boolean-like filters "1" and "0" match truthiness.
func matchesFilters(model any, q *query.Query) bool {
	if q == nil {
		return true
	}
	for attr, want := range q.Filters {
		got, ok := Lookup(model, attr)
		if !ok {
			return false
		}
		if b, isBool := got.(bool); isBool {
			switch strings.ToLower(want) {
			case "1", "true", "yes":
				if !b {
					return false
				}
			case "0", "false", "no":
				if b {
					return false
				}
			default:
				return false
			}
			continue
		}
		if !strings.Contains(strings.ToLower(fmt.Sprint(got)), strings.ToLower(want)) {
			return false
		}
	}
	return true
}

// Compare orders two cell values. Numbers compare numerically, times
// chronologically and everything else by string. nil sorts first.
func Compare(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	if da, ok := a.(decimal.Decimal); ok {
		if db, ok := b.(decimal.Decimal); ok {
			return da.Cmp(db)
		}
	}
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return compareFloat64s(fa, fb)
		}
	}
	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			return compareBools(ba, bb)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// compareBools compares two bool values (false < true)
func compareBools(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

// compareFloat64s compares two float64 values with NaN handling.
// NaN values are considered greater than all other values (sort to end).
func compareFloat64s(a, b float64) int {
	aNaN := math.IsNaN(a)
	bNaN := math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
