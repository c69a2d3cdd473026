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

/*
Package cursor implements forward and reverse scans over a table's data
pages.

A Cursor holds no index; it walks the pages a table owns in page order,
skipping rows marked deleted, and exposes the position as a RowId a caller
can read back, delete, or step away from. The traversal algorithm
(findAnotherRowID) is one method for both directions, fed a direction
value (forwardDirection or reverseDirection) that supplies the five
primitives that differ between the two.
*/
package cursor

import (
	"encoding/binary"

	jeterrors "jetdb/internal/errors"
	"jetdb/internal/pageio"
)

// Cursor scans a Table's rows in page order, forward or reverse. It is not
// safe for concurrent use from multiple goroutines.
type Cursor struct {
	table Table

	rowState *RowState
	pages    PageOwnershipIterator

	currentRowID RowId
	matcher      ColumnMatcher
	lastMoveErr  error
}

// NewScanCursor creates an un-indexed scan cursor over t, seated before the
// first row.
func NewScanCursor(t Table) *Cursor {
	c := &Cursor{
		table:   t,
		matcher: DefaultMatcher,
	}
	c.Reset()
	return c
}

// SetColumnMatcher swaps the ColumnMatcher FindRow/FindRowByPattern use.
func (c *Cursor) SetColumnMatcher(m ColumnMatcher) {
	c.matcher = m
}

// Reset seats the cursor before the first row; equivalent to BeforeFirst.
func (c *Cursor) Reset() {
	c.BeforeFirst()
}

// BeforeFirst seats the cursor at FirstRowID and resets the page iterator
// for a forward scan.
func (c *Cursor) BeforeFirst() {
	c.rowState = c.table.NewRowState()
	c.pages = c.table.OwnedPages()
	c.pages.Reset(true)
	c.currentRowID = FirstRowID
}

// AfterLast seats the cursor at LastRowID and resets the page iterator for
// a reverse scan.
func (c *Cursor) AfterLast() {
	c.rowState = c.table.NewRowState()
	c.pages = c.table.OwnedPages()
	c.pages.Reset(false)
	c.currentRowID = LastRowID
}

// IsCurrentRowValid reports whether the cursor is seated on a real row
// rather than a sentinel position.
func (c *Cursor) IsCurrentRowValid() bool {
	return c.currentRowID.IsValidRow() && !c.currentRowID.IsSentinel()
}

// MoveToNextRow advances one non-deleted row forward. Returns false if no
// such row exists, in which case the cursor is seated at LastRowID.
func (c *Cursor) MoveToNextRow() bool {
	return c.move(forwardDirection)
}

// MoveToPreviousRow advances one non-deleted row in reverse. Returns false
// if no such row exists, in which case the cursor is seated at
// FirstRowID.
func (c *Cursor) MoveToPreviousRow() bool {
	return c.move(reverseDirection)
}

func (c *Cursor) move(dir direction) bool {
	c.lastMoveErr = nil
	next, err := c.findAnotherRowID(c.currentRowID, dir)
	if err != nil {
		// An I/O failure during traversal leaves the cursor parked at
		// the direction's end sentinel; MoveToNextRow/MoveToPreviousRow
		// report it as plain exhaustion (false) since neither returns an
		// error, but NextRow/PreviousRow recover lastMoveErr and
		// propagate it to callers that need to tell the two cases apart.
		c.lastMoveErr = err
		c.currentRowID = dir.End()
		return false
	}
	c.currentRowID = next
	return next != dir.End()
}

// NextRow advances forward and returns the new current row, projected to
// columnNames. The bool result is false (with a zero Row) once the table
// is exhausted.
func (c *Cursor) NextRow(columnNames ...string) (Row, bool, error) {
	if !c.MoveToNextRow() {
		return nil, false, c.lastMoveErr
	}
	row, err := c.CurrentRow(columnNames...)
	return row, err == nil, err
}

// PreviousRow is NextRow's reverse-direction counterpart.
func (c *Cursor) PreviousRow(columnNames ...string) (Row, bool, error) {
	if !c.MoveToPreviousRow() {
		return nil, false, c.lastMoveErr
	}
	row, err := c.CurrentRow(columnNames...)
	return row, err == nil, err
}

// CurrentRow returns the row at the cursor's current position, projected
// to columnNames (all columns if empty). It fails if the cursor is seated
// on a sentinel.
func (c *Cursor) CurrentRow(columnNames ...string) (Row, error) {
	if !c.IsCurrentRowValid() {
		return nil, jeterrors.InvalidCursorPosition("CurrentRow")
	}
	return c.table.Row(c.rowState, columnNames...)
}

// CurrentRowValue projects a single column from the cursor's current
// position. It fails under the same precondition as CurrentRow.
func (c *Cursor) CurrentRowValue(column string) (any, error) {
	if !c.IsCurrentRowValid() {
		return nil, jeterrors.InvalidCursorPosition("CurrentRowValue")
	}
	return c.table.RowValue(c.rowState, column)
}

// DeleteCurrentRow marks the row at the cursor's current position deleted
// on disk. The cursor's position is not moved. It fails if the cursor is
// seated on a sentinel or the row is already deleted.
func (c *Cursor) DeleteCurrentRow() error {
	if !c.IsCurrentRowValid() {
		return jeterrors.InvalidCursorPosition("DeleteCurrentRow")
	}
	return c.deleteRowID(c.currentRowID)
}

// deleteRowID marks id deleted on disk regardless of the cursor's current
// position, reloading id's page into a scratch RowState rather than
// assuming c.rowState already reflects it. Used directly by
// DeleteCurrentRow (where it happens to coincide) and by
// RowIterator.Remove (where it deletes a row the cursor has since moved
// past).
func (c *Cursor) deleteRowID(id RowId) error {
	format := c.table.Format()
	channel := c.table.PageChannel()

	scratch := c.table.NewRowState()
	buf, err := channel.ReadPage(id.PageNumber)
	if err != nil {
		return err
	}
	scratch.Buffer = buf
	scratch.Page = id.PageNumber
	scratch.Row = id.RowNumber

	offset := format.RowStartOffset(id.RowNumber)
	if offset >= 0 && offset+2 <= len(buf) {
		raw := binary.LittleEndian.Uint16(buf[offset : offset+2])
		if c.table.IsDeletedRow(raw) {
			return jeterrors.RowAlreadyDeleted()
		}
	}

	channel.StartExclusiveWrite()
	defer channel.FinishWrite()

	return c.table.DeleteRow(scratch, id)
}

// FindRow seats the cursor to before-first, then steps forward until
// matcher reports equality for columnName against value, or the table is
// exhausted. On a hit, the cursor is left seated on the matching row and
// true is returned; on a miss, the cursor ends at a sentinel and false is
// returned.
func (c *Cursor) FindRow(columnName string, matcher ColumnMatcher, value any) (bool, error) {
	if matcher == nil {
		matcher = c.matcher
	}
	c.BeforeFirst()
	for c.MoveToNextRow() {
		rowValue, err := c.table.RowValue(c.rowState, columnName)
		if err != nil {
			return false, err
		}
		if matcher.Matches(c.table, columnName, value, rowValue) {
			return true, nil
		}
	}
	return false, nil
}

// FindRowByPattern is FindRow generalized to many columns: it seats on the
// first row matching every column in pattern under the cursor's current
// matcher.
func (c *Cursor) FindRowByPattern(pattern map[string]any) (bool, error) {
	c.BeforeFirst()
	for c.MoveToNextRow() {
		matched := true
		for columnName, want := range pattern {
			got, err := c.table.RowValue(c.rowState, columnName)
			if err != nil {
				return false, err
			}
			if !c.matcher.Matches(c.table, columnName, want, got) {
				matched = false
				break
			}
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// SkipNextRows steps forward up to n times, stopping early if the table is
// exhausted. It returns the number of rows actually stepped.
func (c *Cursor) SkipNextRows(n int) (int, error) {
	return c.skip(n, forwardDirection)
}

// SkipPreviousRows is SkipNextRows's reverse-direction counterpart.
func (c *Cursor) SkipPreviousRows(n int) (int, error) {
	return c.skip(n, reverseDirection)
}

func (c *Cursor) skip(n int, dir direction) (int, error) {
	stepped := 0
	for stepped < n {
		if !c.move(dir) {
			break
		}
		stepped++
	}
	return stepped, nil
}

// Rows returns a pre-fetching RowIterator starting at the cursor's current
// position, scanning forward.
func (c *Cursor) Rows() *RowIterator {
	return newRowIterator(c)
}

// findAnotherRowID is the central traversal algorithm: given the current
// position and a direction, it returns the next non-deleted row id, or
// dir.End() if no such row exists among the table's owned pages.
func (c *Cursor) findAnotherRowID(currentRowID RowId, dir direction) (RowId, error) {
	c.rowState.Reset()

	currentPageNumber := currentRowID.PageNumber
	currentRowNumber := currentRowID.RowNumber

	format := c.table.Format()
	channel := c.table.PageChannel()

	if currentPageNumber == InvalidPageNumber || currentPageNumber == MaxPageNumber {
		// Sentinel position: there is no "current page" to resume from,
		// so the first page to inspect comes from the page iterator.
		next := dir.AnotherPage(c.pages)
		if next == InvalidPageNumber {
			return dir.End(), nil
		}
		currentPageNumber = next
		currentRowNumber = InvalidRowNumber
	}

	buf, err := channel.ReadPage(currentPageNumber)
	if err != nil {
		return RowId{}, err
	}
	c.rowState.Buffer = buf
	c.rowState.Page = currentPageNumber

	rowsOnPage := readRowsOnPage(buf, format)
	if currentRowNumber == InvalidRowNumber {
		currentRowNumber = dir.InitialRowNumber(rowsOnPage)
	}

	rowInc := dir.RowIncrement()
	for {
		currentRowNumber += rowInc

		if currentRowNumber >= 0 && currentRowNumber < rowsOnPage {
			c.rowState.Row = currentRowNumber
			offset := format.RowStartOffset(currentRowNumber)
			if offset < 0 || offset+2 > len(buf) {
				return RowId{}, jeterrors.ShortRead(currentPageNumber, len(buf), offset+2)
			}
			raw := binary.LittleEndian.Uint16(buf[offset : offset+2])
			if c.table.IsDeletedRow(raw) {
				continue
			}
			return RowId{PageNumber: currentPageNumber, RowNumber: currentRowNumber}, nil
		}

		currentRowNumber = InvalidRowNumber
		nextPage := dir.AnotherPage(c.pages)
		if nextPage == InvalidPageNumber {
			return dir.End(), nil
		}

		buf, err = channel.ReadPage(nextPage)
		if err != nil {
			return RowId{}, err
		}
		c.rowState.Buffer = buf
		c.rowState.Page = nextPage
		currentPageNumber = nextPage
		rowsOnPage = readRowsOnPage(buf, format)
		currentRowNumber = dir.InitialRowNumber(rowsOnPage)
	}
}

// readRowsOnPage inspects a page's header, returning the row count if it
// is a data page and 0 otherwise.
func readRowsOnPage(buf []byte, format pageio.FormatDescriptor) int16 {
	if len(buf) == 0 || pageio.PageType(buf[0]) != pageio.PageTypeData {
		return 0
	}
	off := format.OffsetNumRowsOnDataPage
	if off < 0 || off+2 > len(buf) {
		return 0
	}
	return int16(binary.LittleEndian.Uint16(buf[off : off+2]))
}
