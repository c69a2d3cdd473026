/*
 * Copyright (c) 2026 Firefly Software Solutions Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cursor

import "math"

// InvalidPageNumber marks a RowId that does not refer to a real page.
const InvalidPageNumber int32 = -1

// MaxPageNumber bounds the page number space; LastRowID parks here so it
// sorts after every real row id.
const MaxPageNumber int32 = math.MaxInt32

// InvalidRowNumber marks a RowId that does not refer to a real row slot.
const InvalidRowNumber int16 = -1

// RowId identifies one row by its page and row-slot number. It is a plain
// value type: immutable, cheap to copy, compared field-wise.
type RowId struct {
	PageNumber int32
	RowNumber  int16
}

// FirstRowID is the sentinel a cursor is seated on before any forward
// traversal has occurred, and after a reverse traversal has run off the
// start of the table.
var FirstRowID = RowId{PageNumber: InvalidPageNumber, RowNumber: InvalidRowNumber}

// LastRowID is the sentinel a cursor is seated on after a forward
// traversal has run off the end of the table, and before a reverse
// traversal starts.
var LastRowID = RowId{PageNumber: MaxPageNumber, RowNumber: InvalidRowNumber}

// IsValidRow reports whether r identifies a real row rather than a
// sentinel position.
func (r RowId) IsValidRow() bool {
	return r.RowNumber >= 0
}

// IsSentinel reports whether r is exactly FirstRowID or LastRowID.
func (r RowId) IsSentinel() bool {
	return r == FirstRowID || r == LastRowID
}
