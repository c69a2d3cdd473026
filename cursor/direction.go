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

// PageOwnershipIterator walks the pages a table owns, in either direction.
// NextPage/PreviousPage return InvalidPageNumber once exhausted.
type PageOwnershipIterator interface {
	NextPage() int32
	PreviousPage() int32
	Reset(moveForward bool)
}

// direction bundles the four primitives that differ between a forward and
// a reverse scan. It carries no state of its own - the same forwardDirection
// and reverseDirection values are shared by every cursor.
type direction struct {
	beginning        RowId
	end              RowId
	rowIncrement     int16
	anotherPage      func(pages PageOwnershipIterator) int32
	initialRowNumber func(rowsOnPage int16) int16
}

// Beginning is the sentinel a Reset in this direction seats the cursor on.
func (d direction) Beginning() RowId { return d.beginning }

// End is the sentinel that signals the traversal in this direction is done.
func (d direction) End() RowId { return d.end }

// RowIncrement is +1 for a forward scan, -1 for a reverse scan.
func (d direction) RowIncrement() int16 { return d.rowIncrement }

// AnotherPage asks the page-ownership iterator for the next page to visit
// in this direction.
func (d direction) AnotherPage(pages PageOwnershipIterator) int32 {
	return d.anotherPage(pages)
}

// InitialRowNumber is the row slot to seat on when a page is freshly
// loaded, chosen so the loop's next increment lands on the first valid
// slot for this direction.
func (d direction) InitialRowNumber(rowsOnPage int16) int16 {
	return d.initialRowNumber(rowsOnPage)
}

var forwardDirection = direction{
	beginning:    FirstRowID,
	end:          LastRowID,
	rowIncrement: 1,
	anotherPage: func(pages PageOwnershipIterator) int32 {
		return pages.NextPage()
	},
	initialRowNumber: func(rowsOnPage int16) int16 {
		return InvalidRowNumber
	},
}

var reverseDirection = direction{
	beginning:    LastRowID,
	end:          FirstRowID,
	rowIncrement: -1,
	anotherPage: func(pages PageOwnershipIterator) int32 {
		return pages.PreviousPage()
	},
	initialRowNumber: func(rowsOnPage int16) int16 {
		return rowsOnPage
	},
}
