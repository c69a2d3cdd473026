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
	"os"
	"path/filepath"
	"testing"

	"jetdb/cursor"
	"jetdb/internal/coltype"
	"jetdb/internal/pageio"
	"jetdb/relationship"
)

type seedRow struct {
	deleted bool
	data    cursor.Row
}

func openSeededChannel(t *testing.T, pageRows map[int32][]seedRow) *pageio.Channel {
	t.Helper()
	format := pageio.Jet4Format

	var maxPage int32
	for p := range pageRows {
		if p > maxPage {
			maxPage = p
		}
	}
	buf := make([]byte, (int(maxPage)+1)*format.PageSize)
	for pageNum, rows := range pageRows {
		base := int(pageNum) * format.PageSize
		buf[base] = byte(pageio.PageTypeData)
		binary.LittleEndian.PutUint16(buf[base+format.OffsetNumRowsOnDataPage:], uint16(len(rows)))
		for i, r := range rows {
			off := base + format.RowStartOffset(int16(i))
			raw := uint16(200 + i*4)
			if r.deleted {
				raw |= pageio.DeletedRowMask
			}
			binary.LittleEndian.PutUint16(buf[off:off+2], raw)
		}
	}

	path := filepath.Join(t.TempDir(), "jettable.accdb")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("failed to seed channel file: %v", err)
	}
	ch, err := pageio.Open(path, format, false)
	if err != nil {
		t.Fatalf("failed to open channel: %v", err)
	}
	t.Cleanup(func() { ch.Close() })
	return ch
}

func rowsMap(pageRows map[int32][]seedRow) map[cursor.RowId]cursor.Row {
	out := map[cursor.RowId]cursor.Row{}
	for pageNum, rows := range pageRows {
		for i, r := range rows {
			out[cursor.RowId{PageNumber: pageNum, RowNumber: int16(i)}] = r.data
		}
	}
	return out
}

func TestJetTableScanViaCursor(t *testing.T) {
	pageRows := map[int32][]seedRow{
		4: {
			{data: cursor.Row{"ID": 1}},
			{deleted: true, data: cursor.Row{"ID": 2}},
			{data: cursor.Row{"ID": 3}},
		},
	}
	ch := openSeededChannel(t, pageRows)
	db := NewDatabase("test.accdb", ch)
	tbl := NewJetTable("Customers", db, ch, []int32{4}, []Column{{Name: "ID", Type: coltype.LongInteger}}, rowsMap(pageRows))

	c := cursor.NewScanCursor(tbl)
	var ids []int
	for {
		row, ok, err := c.NextRow()
		if err != nil {
			t.Fatalf("NextRow failed: %v", err)
		}
		if !ok {
			break
		}
		ids = append(ids, row["ID"].(int))
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Errorf("expected [1 3], got %v", ids)
	}
}

func TestJetTableDeleteRowPersists(t *testing.T) {
	pageRows := map[int32][]seedRow{
		4: {{data: cursor.Row{"ID": 1}}, {data: cursor.Row{"ID": 2}}},
	}
	ch := openSeededChannel(t, pageRows)
	db := NewDatabase("test.accdb", ch)
	tbl := NewJetTable("Customers", db, ch, []int32{4}, []Column{{Name: "ID", Type: coltype.LongInteger}}, rowsMap(pageRows))

	c := cursor.NewScanCursor(tbl)
	c.MoveToNextRow()
	if err := c.DeleteCurrentRow(); err != nil {
		t.Fatalf("DeleteCurrentRow failed: %v", err)
	}

	rescan := cursor.NewScanCursor(tbl)
	var ids []int
	for {
		row, ok, err := rescan.NextRow()
		if err != nil || !ok {
			break
		}
		ids = append(ids, row["ID"].(int))
	}
	if len(ids) != 1 || ids[0] != 2 {
		t.Errorf("expected only [2] after deleting row 1, got %v", ids)
	}
}

func TestDatabaseTableLookupIsCaseInsensitive(t *testing.T) {
	ch := openSeededChannel(t, nil)
	db := NewDatabase("test.accdb", ch)
	NewJetTable("Customers", db, ch, nil, nil, nil)

	if _, ok := db.Table("customers"); !ok {
		t.Error("expected case-insensitive table lookup to find Customers")
	}
	if _, ok := db.Table("Orders"); ok {
		t.Error("expected lookup of an unregistered table to fail")
	}
}

func TestDatabaseWriteRelationshipEndToEnd(t *testing.T) {
	ch := openSeededChannel(t, nil)
	db := NewDatabase("test.accdb", ch)
	customers := NewJetTable("Customers", db, ch, nil, []Column{{Name: "ID", Type: coltype.LongInteger}}, nil)
	orders := NewJetTable("Orders", db, ch, nil, []Column{{Name: "CustomerID", Type: coltype.LongInteger}}, nil)

	rec, err := relationship.NewCreator(relationship.Builder{
		Name:           "CustomersOrders",
		PrimaryTable:   customers,
		SecondaryTable: orders,
		PrimaryCols:    []string{"ID"},
		SecondaryCols:  []string{"CustomerID"},
		Flags:          relationship.FlagEnforceIntegrity,
	}).Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rec.Name != "CustomersOrders" {
		t.Errorf("expected relationship name to round trip, got %q", rec.Name)
	}
	if len(customers.IndexNames()) != 1 {
		t.Errorf("expected a unique index created on Customers, got %d", len(customers.IndexNames()))
	}
	if len(orders.IndexNames()) != 1 {
		t.Errorf("expected a non-unique index created on Orders, got %d", len(orders.IndexNames()))
	}
	if len(db.Relationships()) != 1 {
		t.Errorf("expected the database to retain the persisted relationship, got %d", len(db.Relationships()))
	}
}

func TestDatabaseWriteRelationshipRejectsCrossDatabase(t *testing.T) {
	chA := openSeededChannel(t, nil)
	chB := openSeededChannel(t, nil)
	dbA := NewDatabase("a.accdb", chA)
	dbB := NewDatabase("b.accdb", chB)
	customers := NewJetTable("Customers", dbA, chA, nil, []Column{{Name: "ID", Type: coltype.LongInteger}}, nil)
	orders := NewJetTable("Orders", dbB, chB, nil, []Column{{Name: "CustomerID", Type: coltype.LongInteger}}, nil)

	_, err := relationship.NewCreator(relationship.Builder{
		PrimaryTable:   customers,
		SecondaryTable: orders,
		PrimaryCols:    []string{"ID"},
		SecondaryCols:  []string{"CustomerID"},
	}).Create()
	if err == nil {
		t.Fatal("expected an error creating a relationship across two databases")
	}
}
