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

package main

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jetdb/cursor"
	"jetdb/internal/compression"
	"jetdb/internal/coltype"
	"jetdb/internal/pageio"
	"jetdb/pkg/cli"
	"jetdb/table"
)

func TestParseFormat(t *testing.T) {
	if fd, err := parseFormat("jet3"); err != nil || fd.PageSize != 2048 {
		t.Errorf("parseFormat(jet3) = %+v, %v", fd, err)
	}
	if fd, err := parseFormat("jet4"); err != nil || fd.PageSize != 4096 {
		t.Errorf("parseFormat(jet4) = %+v, %v", fd, err)
	}
	if _, err := parseFormat("jet5"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]compression.Level{
		"fast":    compression.LevelFastest,
		"default": compression.LevelDefault,
		"":        compression.LevelDefault,
		"best":    compression.LevelBest,
	}
	for in, want := range cases {
		got, err := parseLevel(in)
		if err != nil || got != want {
			t.Errorf("parseLevel(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := parseLevel("ludicrous"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestFormatRowCount(t *testing.T) {
	if got := formatRowCount(1); got != "1 row" {
		t.Errorf("formatRowCount(1) = %q, want %q", got, "1 row")
	}
	if got := formatRowCount(0); got != "0 rows" {
		t.Errorf("formatRowCount(0) = %q, want %q", got, "0 rows")
	}
	if got := formatRowCount(42); got != "42 rows" {
		t.Errorf("formatRowCount(42) = %q, want %q", got, "42 rows")
	}
}

func TestWriteFramedBlockRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("compressed-bytes")
	if err := writeFramedBlock(&buf, compression.AlgorithmZstd, payload); err != nil {
		t.Fatalf("writeFramedBlock failed: %v", err)
	}

	algo := compression.Algorithm(buf.Bytes()[0])
	length := binary.BigEndian.Uint32(buf.Bytes()[1:5])
	got := buf.Bytes()[5:]
	if algo != compression.AlgorithmZstd {
		t.Errorf("expected algo byte to round trip, got %v", algo)
	}
	if int(length) != len(payload) || string(got) != string(payload) {
		t.Errorf("expected payload to round trip, got %q (len %d)", got, length)
	}
}

func seedTestChannel(t *testing.T) *pageio.Channel {
	t.Helper()
	format := pageio.Jet4Format
	buf := make([]byte, 5*format.PageSize)
	base := 4 * format.PageSize
	buf[base] = byte(pageio.PageTypeData)
	binary.LittleEndian.PutUint16(buf[base+format.OffsetNumRowsOnDataPage:], 3)
	for i, raw := range []uint16{200, 220, 240} {
		off := base + format.RowStartOffset(int16(i))
		binary.LittleEndian.PutUint16(buf[off:off+2], raw)
	}

	path := filepath.Join(t.TempDir(), "test.accdb")
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

func testTable(t *testing.T) *table.JetTable {
	t.Helper()
	ch := seedTestChannel(t)
	db := table.NewDatabase("test.accdb", ch)
	rows := map[cursor.RowId]cursor.Row{
		{PageNumber: 4, RowNumber: 0}: {"ID": 1},
		{PageNumber: 4, RowNumber: 1}: {"ID": 2},
		{PageNumber: 4, RowNumber: 2}: {"ID": 3},
	}
	return table.NewJetTable("Customers", db, ch, []int32{4}, []table.Column{{Name: "ID", Type: coltype.LongInteger}}, rows)
}

func TestDumpTablePlain(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	count, err := dumpTable(testTable(t), w, compression.Config{Algorithm: compression.AlgorithmNone}, 10, cli.NewSpinner(""))
	w.Flush()
	if err != nil {
		t.Fatalf("dumpTable failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 rows dumped, got %d", count)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 output lines, got %d", len(lines))
	}
	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("expected valid JSON, got error: %v", err)
	}
	if first["ID"] != float64(1) {
		t.Errorf("expected first row's ID to be 1, got %v", first["ID"])
	}
}

func TestDumpTableCompressedRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	cfg := compression.Config{Algorithm: compression.AlgorithmSnappy, Level: compression.LevelDefault}
	count, err := dumpTable(testTable(t), &buf, cfg, 2, cli.NewSpinner(""))
	if err != nil {
		t.Fatalf("dumpTable failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 rows dumped, got %d", count)
	}

	// Two batches: 2 rows then 1 row, since batchSize is 2.
	data := buf.Bytes()
	batch := compression.NewBatchCompressor(cfg)
	var decoded [][]byte
	for len(data) > 0 {
		algo := compression.Algorithm(data[0])
		length := binary.BigEndian.Uint32(data[1:5])
		payload := data[5 : 5+length]
		entries, err := batch.DecompressBatch(payload, algo)
		if err != nil {
			t.Fatalf("DecompressBatch failed: %v", err)
		}
		decoded = append(decoded, entries...)
		data = data[5+length:]
	}
	if len(decoded) != 3 {
		t.Errorf("expected 3 decoded rows across batches, got %d", len(decoded))
	}
}
