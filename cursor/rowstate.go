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

// Row is a column-name-to-value projection of one table row.
type Row map[string]any

// RowState is the cursor's mutable scratch space: the page buffer it last
// loaded and the row slot within it. FinalPage/FinalRowNumber let a Table
// implementation record that a row is an overflow pointer resolved to a
// different page/slot, without the cursor's traversal logic needing to
// know about overflow at all.
type RowState struct {
	Buffer []byte
	Page   int32
	Row    int16

	FinalPage      int32
	FinalRowNumber int16
}

// Reset drops the buffer and sets the page and row fields to
// InvalidPageNumber and InvalidRowNumber. Called on every directional move;
// it has no on-disk side effects.
func (rs *RowState) Reset() {
	rs.Buffer = nil
	rs.Page = InvalidPageNumber
	rs.Row = InvalidRowNumber
	rs.FinalPage = InvalidPageNumber
	rs.FinalRowNumber = InvalidRowNumber
}
