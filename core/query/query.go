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

package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/google/safehtml"
)

// Request parameter names.
const (
	SortParam    = "sort"
	PageParam    = "page"
	PerPageParam = "per-page"
	FilterPrefix = "filter_"
)

// Direction is the sort direction of one attribute.
type Direction int

const (
	// Unsorted means the attribute is not the current sort key.
	Unsorted Direction = iota
	Ascending
	Descending
)

// Query represents the parsed state of a grid URL
type Query struct {
	// Base path (e.g., "/grids/users")
	Path string

	Sort    string            // Sort attribute, prefixed with "-" for descending
	Filters map[string]string // Filter values (attribute -> value)
	Page    int               // 1-based page number (0 = not set)
	PerPage int               // Page size override (0 = provider default)

	// Params holds every other parameter so generated links keep them.
	Params url.Values
}

// NewQuery creates a Query from a URL
func NewQuery(u *url.URL) *Query {
	state := &Query{
		Path:    u.Path,
		Filters: make(map[string]string),
		Params:  make(url.Values),
	}

	q := u.Query()
	for key, values := range q {
		if len(values) == 0 {
			continue
		}
		switch {
		case key == SortParam:
			state.Sort = values[0]
		case key == PageParam:
			if page, err := strconv.Atoi(values[0]); err == nil && page > 0 {
				state.Page = page
			}
		case key == PerPageParam:
			if perPage, err := strconv.Atoi(values[0]); err == nil && perPage > 0 {
				state.PerPage = perPage
			}
		case strings.HasPrefix(key, FilterPrefix):
			attr := strings.TrimPrefix(key, FilterPrefix)
			if attr != "" && values[0] != "" {
				state.Filters[attr] = values[0]
			}
		default:
			state.Params[key] = append([]string(nil), values...)
		}
	}
	return state
}

// Clone creates a deep copy of the Query
func (s *Query) Clone() *Query {
	clone := &Query{
		Path:    s.Path,
		Sort:    s.Sort,
		Filters: make(map[string]string, len(s.Filters)),
		Page:    s.Page,
		PerPage: s.PerPage,
		Params:  make(url.Values, len(s.Params)),
	}
	for attr, value := range s.Filters {
		clone.Filters[attr] = value
	}
	for key, values := range s.Params {
		clone.Params[key] = append([]string(nil), values...)
	}
	return clone
}

// CurrentPage returns the requested page, defaulting to 1.
func (s *Query) CurrentPage() int {
	if s == nil || s.Page < 1 {
		return 1
	}
	return s.Page
}

// Filter returns the filter value for attr, or "" when unset.
func (s *Query) Filter(attr string) string {
	if s == nil {
		return ""
	}
	return s.Filters[attr]
}

// SortDirection reports how attr takes part in the current sort.
func (s *Query) SortDirection(attr string) Direction {
	if s == nil || attr == "" {
		return Unsorted
	}
	switch s.Sort {
	case attr:
		return Ascending
	case "-" + attr:
		return Descending
	}
	return Unsorted
}

// SortKey splits the sort parameter into attribute and direction.
func (s *Query) SortKey() (string, Direction) {
	if s == nil || s.Sort == "" || s.Sort == "-" {
		return "", Unsorted
	}
	if strings.HasPrefix(s.Sort, "-") {
		return s.Sort[1:], Descending
	}
	return s.Sort, Ascending
}

// WithSort returns a URL sorted by key ("attr" or "-attr").
func (s *Query) WithSort(key string) safehtml.URL {
	newState := s.Clone()
	newState.Sort = key
	return newState.ToSafeURL()
}

// WithSortToggled returns the URL a sortable header links to: ascending
// unless attr is already sorted ascending.
func (s *Query) WithSortToggled(attr string) safehtml.URL {
	if s.SortDirection(attr) == Ascending {
		return s.WithSort("-" + attr)
	}
	return s.WithSort(attr)
}

// WithPage returns a URL pointing at page.
func (s *Query) WithPage(page int) safehtml.URL {
	newState := s.Clone()
	newState.Page = page
	return newState.ToSafeURL()
}

// WithFilter returns a URL with the filter for attr set, or removed when
// value is empty. The page is reset because the row set changes.
func (s *Query) WithFilter(attr, value string) safehtml.URL {
	newState := s.Clone()
	if value == "" {
		delete(newState.Filters, attr)
	} else {
		newState.Filters[attr] = value
	}
	newState.Page = 0
	return newState.ToSafeURL()
}

// WithoutFilters returns a URL with every filter removed.
func (s *Query) WithoutFilters() safehtml.URL {
	newState := s.Clone()
	newState.Filters = make(map[string]string)
	newState.Page = 0
	return newState.ToSafeURL()
}

// Values encodes the query state as URL parameters.
func (s *Query) Values() url.Values {
	q := make(url.Values)
	for key, values := range s.Params {
		q[key] = append([]string(nil), values...)
	}
	if s.Sort != "" {
		q.Set(SortParam, s.Sort)
	}
	for attr, value := range s.Filters {
		if value != "" {
			q.Set(FilterPrefix+attr, value)
		}
	}
	if s.Page > 0 {
		q.Set(PageParam, strconv.Itoa(s.Page))
	}
	if s.PerPage > 0 {
		q.Set(PerPageParam, strconv.Itoa(s.PerPage))
	}
	return q
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path:     s.Path,
		RawQuery: s.Values().Encode(),
	}
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}

// FilterNames returns the filtered attributes in sorted order.
func (s *Query) FilterNames() []string {
	names := make([]string, 0, len(s.Filters))
	for attr := range s.Filters {
		names = append(names, attr)
	}
	sort.Strings(names)
	return names
}
