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

package html

import (
	"fmt"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
)

// voidElements have no content and no closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Trusted converts markup assembled by this module into safehtml.HTML.
// Every literal and attribute that goes into s must already be escaped.
func Trusted(s string) safehtml.HTML {
	return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(s)
}

// Tag renders a complete element. Void elements ignore content.
func Tag(name string, content safehtml.HTML, attrs *Attributes) safehtml.HTML {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(name)
	sb.WriteString(RenderTagAttributes(attrs))
	sb.WriteString(">")
	if voidElements[strings.ToLower(name)] {
		return Trusted(sb.String())
	}
	sb.WriteString(content.String())
	sb.WriteString("</")
	sb.WriteString(name)
	sb.WriteString(">")
	return Trusted(sb.String())
}

// BeginTag renders the opening part of an element.
func BeginTag(name string, attrs *Attributes) safehtml.HTML {
	return Trusted("<" + name + RenderTagAttributes(attrs) + ">")
}

// EndTag renders the closing part of an element.
func EndTag(name string) safehtml.HTML {
	return Trusted("</" + name + ">")
}

// Text escapes plain text into HTML.
func Text(s string) safehtml.HTML {
	return safehtml.HTMLEscaped(s)
}

// Join concatenates fragments with a literal separator.
func Join(sep string, parts ...safehtml.HTML) safehtml.HTML {
	strs := make([]string, len(parts))
	for i, p := range parts {
		strs[i] = p.String()
	}
	return Trusted(strings.Join(strs, Encode(sep)))
}

// Input renders an <input> element. Type, name and value come first and
// attrs may override any of them.
func Input(typ, name string, value any, attrs *Attributes) safehtml.HTML {
	base := Attrs("type", typ)
	if name != "" {
		base.Set("name", name)
	}
	if value != nil {
		base.Set("value", fmt.Sprint(value))
	}
	return Tag("input", safehtml.HTML{}, base.Merge(attrs))
}

// Anchor renders a hyperlink. An empty url omits href.
func Anchor(content safehtml.HTML, url safehtml.URL, attrs *Attributes) safehtml.HTML {
	base := NewAttributes()
	if s := url.String(); s != "" {
		base.Set("href", s)
	}
	return Tag("a", content, base.Merge(attrs))
}
