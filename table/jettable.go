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

package table

import (
	"encoding/binary"
	"strings"
	"sync"

	"jetdb/cursor"
	"jetdb/internal/coltype"
	jeterrors "jetdb/internal/errors"
	"jetdb/internal/pageio"
	"jetdb/relationship"
)

// Table is cursor.Table, aliased so callers can write table.Table per this
// library's external-interfaces contract without cursor importing table
// (which would cycle back through relationship's own Table/Database
// interfaces - see cursor/table.go).
type Table = cursor.Table

// JetTable is the minimal concrete Table implementation used by tests and
// the demo tooling. It satisfies both cursor.Table (row traversal) and
// relationship.Table (schema/index introspection) structurally - neither
// interface is imported here by name beyond relationship.Database, which
// Database() must return exactly.
type JetTable struct {
	name    string
	db      *Database
	channel *pageio.Channel
	format  pageio.FormatDescriptor
	pages   []int32

	columns map[string]Column

	mu      sync.Mutex
	rows    map[cursor.RowId]cursor.Row
	indexes []Index
}

// NewJetTable constructs a JetTable. pages must be in ascending ownership
// order; rows supplies the column values for every live row id the table's
// pages contain (row content is an external-collaborator concern per this
// package's doc comment).
func NewJetTable(name string, db *Database, channel *pageio.Channel, pages []int32, columns []Column, rows map[cursor.RowId]cursor.Row) *JetTable {
	columnIndex := make(map[string]Column, len(columns))
	for _, c := range columns {
		columnIndex[c.Name] = c
	}
	rowCopy := make(map[cursor.RowId]cursor.Row, len(rows))
	for id, row := range rows {
		rowCopy[id] = row
	}
	t := &JetTable{
		name:    name,
		db:      db,
		channel: channel,
		format:  channel.Format(),
		pages:   pages,
		columns: columnIndex,
		rows:    rowCopy,
	}
	if db != nil {
		db.registerTable(t)
	}
	return t
}

// --- cursor.Table ---

func (t *JetTable) NewRowState() *cursor.RowState {
	return &cursor.RowState{Page: cursor.InvalidPageNumber, Row: cursor.InvalidRowNumber}
}

func (t *JetTable) Row(rs *cursor.RowState, columnNames ...string) (cursor.Row, error) {
	full, ok := t.lookupRow(rs)
	if !ok {
		return nil, jeterrors.InvalidCursorPosition("Row")
	}
	if len(columnNames) == 0 {
		out := make(cursor.Row, len(full))
		for k, v := range full {
			out[k] = v
		}
		return out, nil
	}
	out := make(cursor.Row, len(columnNames))
	for _, name := range columnNames {
		out[name] = full[name]
	}
	return out, nil
}

func (t *JetTable) RowValue(rs *cursor.RowState, column string) (any, error) {
	full, ok := t.lookupRow(rs)
	if !ok {
		return nil, jeterrors.InvalidCursorPosition("RowValue")
	}
	return full[column], nil
}

func (t *JetTable) lookupRow(rs *cursor.RowState) (cursor.Row, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[cursor.RowId{PageNumber: rs.Page, RowNumber: rs.Row}]
	return row, ok
}

// DeleteRow marks id's row-start slot deleted on disk. The caller
// (cursor.Cursor) already holds the page channel's exclusive-write latch
// for the duration of this call.
func (t *JetTable) DeleteRow(rs *cursor.RowState, id cursor.RowId) error {
	buf, err := t.channel.ReadPage(id.PageNumber)
	if err != nil {
		return err
	}
	offset := t.format.RowStartOffset(id.RowNumber)
	if offset < 0 || offset+2 > len(buf) {
		return jeterrors.ShortRead(id.PageNumber, len(buf), offset+2)
	}
	raw := binary.LittleEndian.Uint16(buf[offset : offset+2])
	raw |= pageio.DeletedRowMask
	binary.LittleEndian.PutUint16(buf[offset:offset+2], raw)
	return t.channel.WritePage(id.PageNumber, buf)
}

func (t *JetTable) OwnedPages() cursor.PageOwnershipIterator {
	return NewPageIterator(t.pages)
}

func (t *JetTable) Format() pageio.FormatDescriptor { return t.format }
func (t *JetTable) PageChannel() *pageio.Channel    { return t.channel }
func (t *JetTable) IsDeletedRow(rowStart uint16) bool {
	return pageio.IsDeletedOffset(rowStart)
}

// --- relationship.Table ---

func (t *JetTable) Name() string { return t.name }

func (t *JetTable) Database() relationship.Database { return t.db }

func (t *JetTable) Column(name string) (coltype.Type, bool) {
	c, ok := t.columns[name]
	if !ok {
		return 0, false
	}
	return c.Type, true
}

// --- index bookkeeping ---

func (t *JetTable) HasIndex(columns []string, unique bool) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, idx := range t.indexes {
		if idx.Unique == unique && sameColumns(idx.Columns, columns) {
			return idx.Name, true
		}
	}
	return "", false
}

func (t *JetTable) CreateIndex(columns []string, name string, unique bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.indexes = append(t.indexes, Index{Name: name, Columns: append([]string(nil), columns...), Unique: unique})
	return nil
}

// IndexNames returns every index name this table currently carries,
// satisfying relationship's indexNameLister so NextPrimaryIndexName and
// NextSecondaryIndexName can check against real collisions.
func (t *JetTable) IndexNames() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	names := make([]string, len(t.indexes))
	for i, idx := range t.indexes {
		names[i] = idx.Name
	}
	return names
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}
