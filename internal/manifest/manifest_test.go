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

package manifest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"jetdb/cursor"
	"jetdb/internal/pageio"
)

const sampleManifest = `{
  "database": "Northwind.accdb",
  "tables": {
    "Customers": {
      "pages": [4],
      "columns": [{"name": "ID", "type": "LONG"}, {"name": "Name", "type": "TEXT"}],
      "rows": {
        "4:0": {"ID": 1, "Name": "Acme"},
        "4:1": {"ID": 2, "Name": "Globex"}
      }
    }
  }
}`

func writeSampleManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := os.WriteFile(path, []byte(sampleManifest), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func seedChannel(t *testing.T) *pageio.Channel {
	t.Helper()
	format := pageio.Jet4Format
	buf := make([]byte, 5*format.PageSize)
	base := 4 * format.PageSize
	buf[base] = byte(pageio.PageTypeData)
	binary.LittleEndian.PutUint16(buf[base+format.OffsetNumRowsOnDataPage:], 2)
	binary.LittleEndian.PutUint16(buf[base+format.RowStartOffset(0):base+format.RowStartOffset(0)+2], 200)
	binary.LittleEndian.PutUint16(buf[base+format.RowStartOffset(1):base+format.RowStartOffset(1)+2], 220)

	path := filepath.Join(t.TempDir(), "northwind.accdb")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}
	ch, err := pageio.Open(path, format, true)
	if err != nil {
		t.Fatalf("failed to open channel: %v", err)
	}
	t.Cleanup(func() { ch.Close() })
	return ch
}

func TestLoadParsesManifest(t *testing.T) {
	m, err := Load(writeSampleManifest(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Database != "Northwind.accdb" {
		t.Errorf("expected database name to round trip, got %q", m.Database)
	}
	tbl, ok := m.Tables["Customers"]
	if !ok {
		t.Fatal("expected a Customers table")
	}
	if len(tbl.Columns) != 2 || len(tbl.Rows) != 2 {
		t.Errorf("expected 2 columns and 2 rows, got %d and %d", len(tbl.Columns), len(tbl.Rows))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error loading a missing manifest")
	}
}

func TestBuildDatabaseRegistersTablesAndRows(t *testing.T) {
	m, err := Load(writeSampleManifest(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	ch := seedChannel(t)

	db, err := m.BuildDatabase(ch)
	if err != nil {
		t.Fatalf("BuildDatabase failed: %v", err)
	}
	tbl, ok := db.Table("Customers")
	if !ok {
		t.Fatal("expected Customers to be registered")
	}
	c := cursor.NewScanCursor(tbl)
	row, ok, err := c.NextRow("ID", "Name")
	if err != nil {
		t.Fatalf("NextRow failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a first row")
	}
	// JSON numbers decode as float64.
	if row["ID"] != float64(1) {
		t.Errorf("expected row 0's ID to be 1, got %v", row["ID"])
	}
	if row["Name"] != "Acme" {
		t.Errorf("expected row 0's Name to be Acme, got %v", row["Name"])
	}
}

func TestBuildDatabaseRejectsUnknownColumnType(t *testing.T) {
	m := &Manifest{
		Database: "bad.accdb",
		Tables: map[string]Table{
			"Bad": {Columns: []Column{{Name: "X", Type: "NOTATYPE"}}},
		},
	}
	ch := seedChannel(t)
	if _, err := m.BuildDatabase(ch); err == nil {
		t.Fatal("expected an error for an unrecognized column type")
	}
}

func TestBuildDatabaseRejectsMalformedRowKey(t *testing.T) {
	m := &Manifest{
		Database: "bad.accdb",
		Tables: map[string]Table{
			"Bad": {
				Columns: []Column{{Name: "ID", Type: "LONG"}},
				Rows:    map[string]map[string]any{"not-a-key": {"ID": 1}},
			},
		},
	}
	ch := seedChannel(t)
	if _, err := m.BuildDatabase(ch); err == nil {
		t.Fatal("expected an error for a malformed row key")
	}
}
