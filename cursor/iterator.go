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

import jeterrors "jetdb/internal/errors"

// RowIterator is a pre-fetching forward iterator over a Cursor's
// remaining rows. It pre-fetches the next row on construction and after
// every Next, so HasNext never itself has to perform I/O.
type RowIterator struct {
	cursor *Cursor

	hasNext   bool
	nextRow   Row
	fetchErr  error
	lastRowID RowId // the row Next most recently returned, for Remove
	haveLast  bool
}

func newRowIterator(c *Cursor) *RowIterator {
	it := &RowIterator{cursor: c}
	it.advance()
	return it
}

// advance pre-fetches the next row, if any, recording a fetch failure so
// the next Next() call can surface it.
func (it *RowIterator) advance() {
	row, ok, err := it.cursor.NextRow()
	if err != nil {
		it.hasNext = false
		it.fetchErr = jeterrors.IteratorIOFailure(err)
		return
	}
	it.hasNext = ok
	it.nextRow = row
}

// HasNext reports whether Next will return a row.
func (it *RowIterator) HasNext() bool {
	return it.hasNext
}

// Next returns the pre-fetched row and advances the pre-fetch for the
// following call. It fails if HasNext is false.
func (it *RowIterator) Next() (Row, error) {
	if !it.hasNext {
		if it.fetchErr != nil {
			err := it.fetchErr
			it.fetchErr = nil
			return nil, err
		}
		return nil, jeterrors.IteratorExhausted()
	}

	row := it.nextRow
	it.lastRowID = it.cursor.currentRowID
	it.haveLast = true

	it.advance()
	return row, nil
}

// Remove deletes the row most recently returned by Next - the
// previously-returned row, not the pre-fetched one the cursor may have
// already moved past.
func (it *RowIterator) Remove() error {
	if !it.haveLast {
		return jeterrors.InvalidCursorPosition("Remove")
	}
	return it.cursor.deleteRowID(it.lastRowID)
}
