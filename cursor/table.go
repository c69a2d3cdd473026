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

import "jetdb/internal/pageio"

// Table is the collaborator a Cursor scans. It is defined here, at the
// point of use, so that package table can depend on cursor without cursor
// depending back on table; table.Table is a type alias for this interface.
type Table interface {
	// NewRowState returns a fresh, empty RowState for a new cursor.
	NewRowState() *RowState

	// Row reads the row at rs's current position, projected to
	// columnNames (all columns if columnNames is empty).
	Row(rs *RowState, columnNames ...string) (Row, error)

	// RowValue reads a single column's value at rs's current position.
	RowValue(rs *RowState, column string) (any, error)

	// DeleteRow marks id deleted on disk. The caller (Cursor) holds the
	// page channel's exclusive-write latch for the duration of the call;
	// implementations do not acquire it themselves.
	DeleteRow(rs *RowState, id RowId) error

	// OwnedPages returns a fresh page-ownership iterator over this
	// table's data pages.
	OwnedPages() PageOwnershipIterator

	// Format returns the on-disk layout constants for this table's file.
	Format() pageio.FormatDescriptor

	// PageChannel returns the shared page channel backing this table.
	PageChannel() *pageio.Channel

	// IsDeletedRow reports whether a raw row-start offset (as read from
	// the row-start slot table) has the deleted bit set.
	IsDeletedRow(rowStart uint16) bool
}
