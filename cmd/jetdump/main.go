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
jetdump - scan a jet table and write its live rows out as newline-delimited
JSON, optionally compressed.

Usage:

    jetdump -file Northwind.accdb -schema northwind.json -table Customers
    jetdump -file Northwind.accdb -schema northwind.json -table Orders \
        -compress zstd -out orders.jsonz

jetdump does not parse the file's own catalog of tables, so -schema points
at a sidecar manifest (see internal/manifest) describing which pages belong
to the table and what its columns and row values are. The scan itself -
page reads, deletion-bit skipping, forward traversal - goes through the real
cursor over the real page channel.
*/
package main

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"jetdb/cursor"
	"jetdb/internal/compression"
	"jetdb/internal/config"
	"jetdb/internal/logging"
	"jetdb/internal/manifest"
	"jetdb/internal/pageio"
	"jetdb/pkg/cli"
)

var (
	filePath   = flag.String("file", "", "path to the .mdb/.accdb file")
	schemaPath = flag.String("schema", "", "path to the table manifest (see internal/manifest)")
	tableName  = flag.String("table", "", "table to dump")
	outPath    = flag.String("out", "-", "output path, or - for stdout")
	format     = flag.String("format", "jet4", "on-disk format: jet3 or jet4")
	compress   = flag.String("compress", "none", "compression algorithm: none, gzip, lz4, snappy, zstd")
	level      = flag.String("level", "default", "compression level: fast, default, best")
	batchSize  = flag.Int("batch", 200, "rows per compressed batch (ignored for -compress none)")
	configPath = flag.String("config", "", "optional config file (see internal/config); environment variables still override it")
)

var log = logging.NewLogger("jetdump")

func usage() *cli.HelpFormatter {
	h := cli.NewHelpFormatter("jetdump", "1.0.0")
	h.AddCommand(cli.Command{
		Name:        "jetdump",
		Description: "scan a jet table and write its live rows out as JSON, optionally compressed",
		Usage:       "jetdump -file <path> -schema <manifest.json> -table <name> [-compress algo] [-out path]",
		Examples: []cli.Example{
			{Description: "dump a table to stdout", Command: "jetdump -file Northwind.accdb -schema northwind.json -table Customers"},
			{Description: "dump compressed to a file", Command: "jetdump -file Northwind.accdb -schema northwind.json -table Orders -compress zstd -out orders.jsonz"},
		},
	})
	return h
}

func main() {
	flag.Usage = func() { usage().PrintUsage() }
	flag.Parse()

	mgr := config.NewManager()
	if *configPath != "" {
		if err := mgr.LoadFromFile(*configPath); err != nil {
			cli.NewCLIError(err.Error()).Exit()
		}
	}
	mgr.LoadFromEnv()
	cfg := mgr.Get()
	logging.SetGlobalLevel(logging.ParseLevel(cfg.LogLevel))
	logging.SetJSONMode(cfg.LogJSON)

	if *filePath == "" || *schemaPath == "" || *tableName == "" {
		cli.PrintError("missing required flags")
		flag.Usage()
		os.Exit(2)
	}

	fd, err := parseFormat(*format)
	if err != nil {
		cli.NewCLIError(err.Error()).WithSuggestion("use -format jet3 or -format jet4").Exit()
	}

	algo, err := compression.ParseAlgorithm(*compress)
	if err != nil {
		cli.NewCLIError(err.Error()).Exit()
	}
	lvl, err := parseLevel(*level)
	if err != nil {
		cli.NewCLIError(err.Error()).Exit()
	}

	log.Debug("opening database file", "path", *filePath, "format", *format)
	channel, err := pageio.Open(*filePath, fd, true)
	if err != nil {
		cli.ErrFileNotFound(*filePath, err).Exit()
	}
	defer channel.Close()

	m, err := manifest.Load(*schemaPath)
	if err != nil {
		cli.NewCLIError(err.Error()).Exit()
	}
	db, err := m.BuildDatabase(channel)
	if err != nil {
		cli.NewCLIError(err.Error()).Exit()
	}

	tbl, ok := db.Table(*tableName)
	if !ok {
		cli.ErrUnknownTable(*tableName, m.TableNames()).Exit()
	}
	log.Info("starting scan", "table", *tableName, "compress", *compress)

	cli.KeyValue("File", *filePath, 10)
	cli.KeyValue("Table", *tableName, 10)
	cli.KeyValue("Compress", *compress, 10)

	out, closeOut, err := openOutput(*outPath)
	if err != nil {
		cli.NewCLIError(err.Error()).Exit()
	}
	defer closeOut()

	w := bufio.NewWriter(out)
	defer w.Flush()

	spinner := cli.NewSpinner(fmt.Sprintf("scanning %s", *tableName))
	spinner.Start()

	count, err := dumpTable(tbl, w, compression.Config{Algorithm: algo, Level: lvl, MinSize: 0}, *batchSize, spinner)
	if err != nil {
		log.Error("scan failed", "table", *tableName, "error", err.Error())
		spinner.StopWithError(err.Error())
		os.Exit(1)
	}
	log.Info("scan complete", "table", *tableName, "rows", fmt.Sprint(count))
	if count == 0 {
		spinner.StopWithWarning(fmt.Sprintf("%s has no live rows", *tableName))
		return
	}
	spinner.StopWithSuccess(fmt.Sprintf("wrote %s from %s", formatRowCount(count), *tableName))
}

func parseFormat(s string) (pageio.FormatDescriptor, error) {
	switch s {
	case "jet3":
		return pageio.Jet3Format, nil
	case "jet4", "":
		return pageio.Jet4Format, nil
	default:
		return pageio.FormatDescriptor{}, fmt.Errorf("unknown format: %s", s)
	}
}

func parseLevel(s string) (compression.Level, error) {
	switch s {
	case "fast":
		return compression.LevelFastest, nil
	case "default", "":
		return compression.LevelDefault, nil
	case "best":
		return compression.LevelBest, nil
	default:
		return 0, fmt.Errorf("unknown compression level: %s", s)
	}
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "-" || path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	if _, err := os.Stat(path); err == nil {
		if !cli.Confirm(fmt.Sprintf("%s already exists and will be overwritten.", path)) {
			return nil, nil, fmt.Errorf("aborted: %s already exists", path)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, f.Close, nil
}

func formatRowCount(n int) string {
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}

// progressInterval is how many rows pass between spinner message updates.
const progressInterval = 500

// dumpTable scans every live row of tbl through a cursor and writes it to
// w as JSON. With compression enabled, rows are grouped into batches of
// batchSize and each batch is written as one framed, compressed block;
// with AlgorithmNone, rows are written one JSON object per line. spinner's
// message is refreshed every progressInterval rows with a running count.
func dumpTable(tbl cursor.Table, w io.Writer, cfg compression.Config, batchSize int, spinner *cli.Spinner) (int, error) {
	c := cursor.NewScanCursor(tbl)
	rows := c.Rows()

	if cfg.Algorithm == compression.AlgorithmNone {
		return dumpPlain(rows, w, spinner)
	}
	return dumpCompressed(rows, w, cfg, batchSize, spinner)
}

func dumpPlain(rows *cursor.RowIterator, w io.Writer, spinner *cli.Spinner) (int, error) {
	enc := json.NewEncoder(w)
	count := 0
	for rows.HasNext() {
		row, err := rows.Next()
		if err != nil {
			return count, err
		}
		if err := enc.Encode(row); err != nil {
			return count, fmt.Errorf("encoding row: %w", err)
		}
		count++
		if count%progressInterval == 0 {
			spinner.UpdateMessage(fmt.Sprintf("scanning (%d rows)", count))
		}
	}
	return count, nil
}

func dumpCompressed(rows *cursor.RowIterator, w io.Writer, cfg compression.Config, batchSize int, spinner *cli.Spinner) (int, error) {
	batch := compression.NewBatchCompressor(cfg)
	count := 0
	pending := 0

	flush := func() error {
		if pending == 0 {
			return nil
		}
		block, err := batch.Flush()
		if err != nil {
			return fmt.Errorf("compressing batch: %w", err)
		}
		if err := writeFramedBlock(w, cfg.Algorithm, block); err != nil {
			return err
		}
		pending = 0
		return nil
	}

	for rows.HasNext() {
		row, err := rows.Next()
		if err != nil {
			return count, err
		}
		encoded, err := json.Marshal(row)
		if err != nil {
			return count, fmt.Errorf("encoding row: %w", err)
		}
		batch.Add(encoded)
		pending++
		count++
		if count%progressInterval == 0 {
			spinner.UpdateMessage(fmt.Sprintf("scanning (%d rows)", count))
		}
		if pending >= batchSize {
			if err := flush(); err != nil {
				return count, err
			}
		}
	}
	if err := flush(); err != nil {
		return count, err
	}
	return count, nil
}

// writeFramedBlock writes one compressed batch as [algo byte][uint32 BE
// length][payload], so a reader can tell compressed blocks apart without
// needing a fixed batch size.
func writeFramedBlock(w io.Writer, algo compression.Algorithm, payload []byte) error {
	var header [5]byte
	header[0] = byte(algo)
	binary.BigEndian.PutUint32(header[1:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("writing batch header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("writing batch payload: %w", err)
	}
	return nil
}
