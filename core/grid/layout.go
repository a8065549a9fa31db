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

package grid

import "regexp"

var sectionToken = regexp.MustCompile(`\{(\w+)\}`)

// segment is a piece of a layout: literal text or a section token name.
type segment struct {
	text  string
	token bool
}

func parseLayout(layout string) []segment {
	var segs []segment
	last := 0
	for _, m := range sectionToken.FindAllStringSubmatchIndex(layout, -1) {
		if m[0] > last {
			segs = append(segs, segment{text: layout[last:m[0]]})
		}
		segs = append(segs, segment{text: layout[m[2]:m[3]], token: true})
		last = m[1]
	}
	if last < len(layout) {
		segs = append(segs, segment{text: layout[last:]})
	}
	return segs
}
