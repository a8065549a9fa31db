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

package rendering

import (
	"embed"
	"io"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
)

//go:embed templates/*
var templateFS embed.FS

// PageViewModel is the data of a page holding one grid.
type PageViewModel struct {
	Title    string
	Subtitle string
	// GridID is the id of the grid container, used by the page script.
	GridID string
	Grid   safehtml.HTML
	// HomeURL links back to the landing page. Empty hides the link.
	HomeURL      safehtml.URL
	RenderTimeMs string
}

// GridLink is one entry of the landing page.
type GridLink struct {
	Name  string
	Title string
	URL   safehtml.URL
}

// LandingViewModel lists the grids a server offers.
type LandingViewModel struct {
	Title    string
	Subtitle string
	Grids    []GridLink
}

// PageRenderer renders grids into complete HTML pages
type PageRenderer struct {
	pageTemplate    *template.Template
	landingTemplate *template.Template
}

// NewPageRenderer parses the embedded page templates.
func NewPageRenderer() (*PageRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	pageTemplate, err := template.New("page.html").ParseFS(trustedFS, "templates/page.html")
	if err != nil {
		return nil, err
	}

	landingTemplate, err := template.New("landing.html").ParseFS(trustedFS, "templates/landing.html")
	if err != nil {
		return nil, err
	}

	return &PageRenderer{
		pageTemplate:    pageTemplate,
		landingTemplate: landingTemplate,
	}, nil
}

// Render renders a grid page to the provided writer
func (r *PageRenderer) Render(w io.Writer, vm PageViewModel) error {
	return r.pageTemplate.Execute(w, vm)
}

// RenderLanding renders a LandingViewModel to the provided writer
func (r *PageRenderer) RenderLanding(w io.Writer, vm LandingViewModel) error {
	return r.landingTemplate.Execute(w, vm)
}
