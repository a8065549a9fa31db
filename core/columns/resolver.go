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

// Resolver holds an option that is either a static value or computed per row.
// The zero Resolver is unset and resolves to the zero value of T.
type Resolver[T any] struct {
	value T
	fn    func(Row) T
	set   bool
}

// Static returns a resolver that always yields v.
func Static[T any](v T) Resolver[T] {
	return Resolver[T]{value: v, set: true}
}

// Computed returns a resolver that calls fn for each row.
func Computed[T any](fn func(Row) T) Resolver[T] {
	return Resolver[T]{fn: fn, set: fn != nil}
}

// IsSet reports whether the resolver was given a value or function.
func (r Resolver[T]) IsSet() bool { return r.set }

// Resolve returns the option value for row.
func (r Resolver[T]) Resolve(row Row) T {
	if r.fn != nil {
		return r.fn(row)
	}
	return r.value
}
