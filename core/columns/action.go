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
	"regexp"
	"strings"

	"github.com/google/gridview/core/html"
	"github.com/google/safehtml"
)

// ButtonFunc renders one action button linking to url.
type ButtonFunc func(rc *RenderContext, url safehtml.URL, row Row) safehtml.HTML

// DefaultTemplate lists the buttons an ActionColumn renders by default.
const DefaultTemplate = "{view} {edit} {delete}"

var buttonToken = regexp.MustCompile(`\{([\w\-\/]+)\}`)

// ActionColumn renders a group of per-row buttons from Template.
//
// Each {name} token in Template is replaced by the output of Buttons[name].
// Tokens without a button, or whose VisibleButtons entry resolves to
// false, render nothing. Buttons for view, edit and delete are created by
// Init when the template uses them and none were supplied.
type ActionColumn struct {
	Base

	Template string
	Buttons  map[string]ButtonFunc
	// VisibleButtons hides buttons. Buttons without an entry are visible.
	VisibleButtons map[string]Resolver[bool]
	// URLCreator overrides the router when set.
	URLCreator func(action string, row Row) safehtml.URL
	// Controller routes actions through Router.Action.
	Controller    string
	ButtonOptions *html.Attributes
	// Icons overrides or adds to DefaultIcons. Values are trusted markup.
	Icons map[string]string

	initialized bool
}

// NewActionColumn returns an initialized action column using template.
func NewActionColumn(template string) *ActionColumn {
	c := &ActionColumn{Template: template}
	c.Init()
	return c
}

// Init fills in defaults and synthesizes the default buttons. It runs once.
func (c *ActionColumn) Init() error {
	if c.initialized {
		return nil
	}
	c.initialized = true
	if c.Template == "" {
		c.Template = DefaultTemplate
	}
	if c.HeaderOptions == nil {
		c.HeaderOptions = html.Attrs("class", "action-column")
	}
	if c.Buttons == nil {
		c.Buttons = make(map[string]ButtonFunc)
	}
	c.initDefaultButton("view", "eye-open", nil)
	c.initDefaultButton("edit", "pencil", nil)
	c.initDefaultButton("delete", "trash", func(rc *RenderContext) *html.Attributes {
		return html.Attrs(
			"data-confirm", rc.T("Are you sure you want to delete this item?"),
			"data-method", "post",
		)
	})
	return nil
}

func (c *ActionColumn) initDefaultButton(name, icon string, extra func(*RenderContext) *html.Attributes) {
	if _, ok := c.Buttons[name]; ok || !strings.Contains(c.Template, "{"+name+"}") {
		return
	}
	c.Buttons[name] = func(rc *RenderContext, url safehtml.URL, row Row) safehtml.HTML {
		title := buttonTitle(rc, name)
		attrs := html.Attrs("title", title, "aria-label", title)
		if extra != nil {
			attrs = attrs.Merge(extra(rc))
		}
		attrs = attrs.Merge(c.ButtonOptions)
		return html.Anchor(html.Trusted(iconHTML(c.Icons, icon)), url, attrs)
	}
}

func buttonTitle(rc *RenderContext, name string) string {
	switch name {
	case "view":
		return rc.T("View")
	case "edit":
		return rc.T("Edit")
	case "delete":
		return rc.T("Delete")
	}
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// HeaderCellContent renders Header or the localized "Actions".
func (c *ActionColumn) HeaderCellContent(rc *RenderContext) safehtml.HTML {
	if strings.TrimSpace(c.Header) != "" {
		return html.Text(c.Header)
	}
	return html.Text(rc.T("Actions"))
}

// CreateURL returns the URL the button for action links to.
func (c *ActionColumn) CreateURL(rc *RenderContext, action string, row Row) safehtml.URL {
	if c.URLCreator != nil {
		return c.URLCreator(action, row)
	}
	params := keyParams(row.Key)
	if c.Controller != "" {
		return rc.router().Action(c.Controller, strings.ReplaceAll(action, "-", "_"), params)
	}
	return rc.router().Route(action, params)
}

func keyParams(key any) map[string]any {
	if composite, ok := key.(map[string]any); ok {
		params := make(map[string]any, len(composite))
		for k, v := range composite {
			params[k] = v
		}
		return params
	}
	return map[string]any{"id": key}
}

// DataCellContent expands Template for row.
func (c *ActionColumn) DataCellContent(rc *RenderContext, row Row) (safehtml.HTML, error) {
	if c.Content != nil {
		return c.Content(row)
	}
	if err := c.Init(); err != nil {
		return safehtml.HTML{}, err
	}

	var sb strings.Builder
	last := 0
	for _, m := range buttonToken.FindAllStringSubmatchIndex(c.Template, -1) {
		sb.WriteString(html.Encode(c.Template[last:m[0]]))
		name := c.Template[m[2]:m[3]]
		sb.WriteString(c.renderButton(rc, name, row).String())
		last = m[1]
	}
	sb.WriteString(html.Encode(c.Template[last:]))
	return html.Trusted(sb.String()), nil
}

func (c *ActionColumn) renderButton(rc *RenderContext, name string, row Row) safehtml.HTML {
	if v, ok := c.VisibleButtons[name]; ok && v.IsSet() && !v.Resolve(row) {
		return safehtml.HTML{}
	}
	button, ok := c.Buttons[name]
	if !ok || button == nil {
		return safehtml.HTML{}
	}
	return button(rc, c.CreateURL(rc, name, row), row)
}
