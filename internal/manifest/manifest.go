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
Package manifest loads the sidecar JSON file jetdump and jetshell use to
stand up a table.Database over a jet file.

jetdb does not parse a database's catalog of tables or decode column
values out of a row's fixed/variable-length sections - both are named
out of scope for the core library. The command-line tools still need a
table's page list, column names/types, and row content to drive a cursor
over something, so they read it from a manifest instead of the file's
table-definition pages:

	{
	  "database": "Northwind.accdb",
	  "tables": {
	    "Customers": {
	      "pages": [4, 5],
	      "columns": [{"name": "ID", "type": "LONG"}, {"name": "Name", "type": "TEXT"}],
	      "rows": {"4:0": {"ID": 1, "Name": "Acme"}, "4:1": {"ID": 2, "Name": "Globex"}}
	    }
	  }
	}

The page bytes themselves - row slot tables, deletion bits - still come
from the real file through internal/pageio; only the column schema and
cell values are manifest-supplied.
*/
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"jetdb/cursor"
	"jetdb/internal/coltype"
	"jetdb/internal/pageio"
	"jetdb/table"
)

// Column describes one column of a manifest table.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Table describes one table's pages, schema, and row content.
type Table struct {
	Pages   []int32                  `json:"pages"`
	Columns []Column                 `json:"columns"`
	Rows    map[string]map[string]any `json:"rows"`
}

// Manifest describes every table a jetdump/jetshell invocation can open.
type Manifest struct {
	Database string           `json:"database"`
	Tables   map[string]Table `json:"tables"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// TableNames returns the manifest's table names, for error messages,
// jetshell's \l listing and its \t table picker.
func (m *Manifest) TableNames() []string {
	names := make([]string, 0, len(m.Tables))
	for name := range m.Tables {
		names = append(names, name)
	}
	return names
}

// parseRowKey parses a manifest row key of the form "page:row" into a
// cursor.RowId.
func parseRowKey(key string) (cursor.RowId, error) {
	parts := strings.SplitN(key, ":", 2)
	if len(parts) != 2 {
		return cursor.RowId{}, fmt.Errorf("row key %q: expected PAGE:ROW", key)
	}
	page, err := strconv.ParseInt(parts[0], 10, 32)
	if err != nil {
		return cursor.RowId{}, fmt.Errorf("row key %q: invalid page number: %w", key, err)
	}
	row, err := strconv.ParseInt(parts[1], 10, 16)
	if err != nil {
		return cursor.RowId{}, fmt.Errorf("row key %q: invalid row number: %w", key, err)
	}
	return cursor.RowId{PageNumber: int32(page), RowNumber: int16(row)}, nil
}

// BuildDatabase registers every manifest table as a table.JetTable against
// a single table.Database backed by channel.
func (m *Manifest) BuildDatabase(channel *pageio.Channel) (*table.Database, error) {
	db := table.NewDatabase(m.Database, channel)
	for name, tbl := range m.Tables {
		columns := make([]table.Column, 0, len(tbl.Columns))
		for _, c := range tbl.Columns {
			colType, ok := coltype.ParseType(c.Type)
			if !ok {
				return nil, fmt.Errorf("table %s: unknown column type %q for column %s", name, c.Type, c.Name)
			}
			columns = append(columns, table.Column{Name: c.Name, Type: colType})
		}

		rows := make(map[cursor.RowId]cursor.Row, len(tbl.Rows))
		for key, values := range tbl.Rows {
			rowID, err := parseRowKey(key)
			if err != nil {
				return nil, fmt.Errorf("table %s: %w", name, err)
			}
			row := make(cursor.Row, len(values))
			for col, val := range values {
				row[col] = val
			}
			rows[rowID] = row
		}

		table.NewJetTable(name, db, channel, tbl.Pages, columns, rows)
	}
	return db, nil
}
