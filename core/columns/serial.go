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

package columns

import (
	"strconv"
	"strings"

	"github.com/google/gridview/core/html"
	"github.com/google/safehtml"
)

// SerialColumn numbers the rows across pages, starting at 1.
type SerialColumn struct {
	Base
}

// Number returns the serial number of row.
func (c *SerialColumn) Number(rc *RenderContext, row Row) int {
	if p := rc.Pagination; p != nil && p.PerPage >= 1 {
		page := p.CurrentPage
		if page < 1 {
			page = 1
		}
		return (page-1)*p.PerPage + row.Index + 1
	}
	return row.Index + 1
}

// HeaderCellContent renders Header or "#".
func (c *SerialColumn) HeaderCellContent(rc *RenderContext) safehtml.HTML {
	if strings.TrimSpace(c.Header) != "" {
		return html.Text(c.Header)
	}
	return html.Text("#")
}

// DataCellContent renders the row number.
func (c *SerialColumn) DataCellContent(rc *RenderContext, row Row) (safehtml.HTML, error) {
	if c.Content != nil {
		return c.Content(row)
	}
	return html.Text(strconv.Itoa(c.Number(rc, row))), nil
}
