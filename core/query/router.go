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
	"fmt"
	"net/url"
	"strings"

	"github.com/google/safehtml"
)

// Router generates the URLs action buttons link to.
type Router interface {
	// Route resolves a named route such as "users.show".
	Route(name string, params map[string]any) safehtml.URL
	// Action resolves a controller action.
	Action(controller, action string, params map[string]any) safehtml.URL
}

// PathRouter maps routes onto paths below Base. The route "users.show"
// becomes Base+"/users/show" and params become URL parameters.
type PathRouter struct {
	Base string
}

// Route implements Router.
func (r PathRouter) Route(name string, params map[string]any) safehtml.URL {
	return r.build(strings.ReplaceAll(name, ".", "/"), params)
}

// Action implements Router.
func (r PathRouter) Action(controller, action string, params map[string]any) safehtml.URL {
	return r.build(controller+"/"+action, params)
}

func (r PathRouter) build(path string, params map[string]any) safehtml.URL {
	u := &url.URL{Path: strings.TrimSuffix(r.Base, "/") + "/" + strings.TrimPrefix(path, "/")}
	if len(params) > 0 {
		q := make(url.Values, len(params))
		for k, v := range params {
			q.Set(k, fmt.Sprint(v))
		}
		u.RawQuery = q.Encode()
	}
	return safehtml.URLSanitized(u.String())
}
