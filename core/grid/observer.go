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

import (
	"time"

	"github.com/google/gridview/core/columns"
)

// Observer is notified about renders and failed cells.
type Observer interface {
	ObserveRender(grid string, rows int, elapsed time.Duration)
	ObserveCellError(grid string, err *columns.CellError)
}

type nopObserver struct{}

func (nopObserver) ObserveRender(string, int, time.Duration) {}
func (nopObserver) ObserveCellError(string, *columns.CellError) {}
