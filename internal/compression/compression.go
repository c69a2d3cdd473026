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
Package compression provides configurable compression for jetdump's table
exports.

Overview:
=========

jetdump scans a table through a cursor and writes the rows it visits to an
output stream; on large memo/OLE-heavy tables that stream benefits from
compression the same way the wider example pack compresses WAL batches
before they hit disk. This package does not touch the page channel or the
jet file itself — jetdb never writes to the database beyond deleting rows —
it only compresses the dump output.

Supported Algorithms:
=====================

 1. LZ4: fast compression/decompression, moderate ratio
 2. Snappy: very fast, lower ratio
 3. Zstd: best ratio, configurable speed/ratio tradeoff
 4. Gzip: stdlib fallback, kept for dumps consumed by tools that only
    understand gzip

Batch Compression:
==================

BatchCompressor accumulates several rows before compressing, which gives
LZ4/Snappy/Zstd more context to work with than compressing each row alone:

 1. Collect entries into a batch
 2. Compress the entire batch as one block, length-prefixing each entry
 3. Store/transmit the compressed batch
 4. Decompress and split back into entries on read
*/
package compression

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm represents a compression algorithm.
type Algorithm int

const (
	AlgorithmNone Algorithm = iota
	AlgorithmGzip
	AlgorithmLZ4
	AlgorithmSnappy
	AlgorithmZstd
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNone:
		return "none"
	case AlgorithmGzip:
		return "gzip"
	case AlgorithmLZ4:
		return "lz4"
	case AlgorithmSnappy:
		return "snappy"
	case AlgorithmZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// ParseAlgorithm parses a compression algorithm from its flag/config name.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "none", "":
		return AlgorithmNone, nil
	case "gzip":
		return AlgorithmGzip, nil
	case "lz4":
		return AlgorithmLZ4, nil
	case "snappy":
		return AlgorithmSnappy, nil
	case "zstd":
		return AlgorithmZstd, nil
	default:
		return AlgorithmNone, fmt.Errorf("unknown compression algorithm: %s", s)
	}
}

// Level represents a compression level, used by the Gzip and Zstd paths;
// LZ4 and Snappy do not expose a level knob.
type Level int

const (
	LevelFastest Level = 1
	LevelDefault Level = 5
	LevelBest    Level = 9
)

// Config holds compression configuration.
type Config struct {
	Algorithm Algorithm
	Level     Level
	// MinSize is the smallest input Compress will bother compressing;
	// below it the data is returned as an uncompressed copy.
	MinSize int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Algorithm: AlgorithmZstd,
		Level:     LevelDefault,
		MinSize:   256,
	}
}

// Errors returned by this package.
var (
	ErrInvalidHeader    = errors.New("invalid compression header")
	ErrUnsupportedAlgo  = errors.New("unsupported compression algorithm")
	ErrDecompressFailed = errors.New("decompression failed")
)

// Compressor compresses and decompresses dump output with one configured
// algorithm.
type Compressor struct {
	config Config
}

// NewCompressor creates a Compressor for the given config.
func NewCompressor(config Config) *Compressor {
	return &Compressor{config: config}
}

// Compress compresses data with the configured algorithm. Input shorter
// than config.MinSize is returned as an uncompressed copy, as with
// AlgorithmNone; the output carries no marker of which algorithm was used.
func (c *Compressor) Compress(data []byte) ([]byte, error) {
	algo := c.config.Algorithm
	if len(data) < c.config.MinSize {
		algo = AlgorithmNone
	}
	return compressWith(algo, data, c.config.Level)
}

// Decompress reverses Compress for the given algorithm.
func (c *Compressor) Decompress(data []byte, algo Algorithm) ([]byte, error) {
	return decompressWith(algo, data)
}

func compressWith(algo Algorithm, data []byte, level Level) ([]byte, error) {
	switch algo {
	case AlgorithmNone:
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil

	case AlgorithmGzip:
		var buf bytes.Buffer
		gzLevel := int(level)
		if gzLevel < gzip.HuffmanOnly || gzLevel > gzip.BestCompression {
			gzLevel = gzip.DefaultCompression
		}
		w, err := gzip.NewWriterLevel(&buf, gzLevel)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return buf.Bytes(), nil

	case AlgorithmLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		return buf.Bytes(), nil

	case AlgorithmSnappy:
		return snappy.Encode(nil, data), nil

	case AlgorithmZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstdLevel(level)))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil

	default:
		return nil, ErrUnsupportedAlgo
	}
}

func decompressWith(algo Algorithm, data []byte) ([]byte, error) {
	switch algo {
	case AlgorithmNone:
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil

	case AlgorithmGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressFailed, err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressFailed, err)
		}
		return out, nil

	case AlgorithmLZ4:
		r := lz4.NewReader(bytes.NewReader(data))
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressFailed, err)
		}
		return out, nil

	case AlgorithmSnappy:
		out, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressFailed, err)
		}
		return out, nil

	case AlgorithmZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressFailed, err)
		}
		return out, nil

	default:
		return nil, ErrUnsupportedAlgo
	}
}

func zstdLevel(l Level) zstd.EncoderLevel {
	switch {
	case l <= LevelFastest:
		return zstd.SpeedFastest
	case l >= LevelBest:
		return zstd.SpeedBestCompression
	default:
		return zstd.SpeedDefault
	}
}

// BatchCompressor accumulates dump entries and compresses them together as
// one block.
type BatchCompressor struct {
	config  Config
	entries [][]byte
}

// NewBatchCompressor creates a BatchCompressor for the given config.
func NewBatchCompressor(config Config) *BatchCompressor {
	return &BatchCompressor{config: config}
}

// Add appends one entry to the pending batch.
func (b *BatchCompressor) Add(entry []byte) {
	cp := make([]byte, len(entry))
	copy(cp, entry)
	b.entries = append(b.entries, cp)
}

// Flush compresses every pending entry into one block and clears the
// batch. The block is a sequence of uint32-length-prefixed entries,
// compressed as a whole.
func (b *BatchCompressor) Flush() ([]byte, error) {
	var raw bytes.Buffer
	for _, entry := range b.entries {
		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(entry)))
		raw.Write(lenBuf[:])
		raw.Write(entry)
	}
	b.entries = nil

	compressor := NewCompressor(Config{Algorithm: b.config.Algorithm, Level: b.config.Level, MinSize: 0})
	return compressor.Compress(raw.Bytes())
}

// DecompressBatch reverses Flush, splitting the decompressed block back
// into its original entries.
func (b *BatchCompressor) DecompressBatch(data []byte, algo Algorithm) ([][]byte, error) {
	compressor := NewCompressor(Config{})
	raw, err := compressor.Decompress(data, algo)
	if err != nil {
		return nil, err
	}

	var entries [][]byte
	for len(raw) > 0 {
		if len(raw) < 4 {
			return nil, ErrInvalidHeader
		}
		n := binary.BigEndian.Uint32(raw[:4])
		raw = raw[4:]
		if uint32(len(raw)) < n {
			return nil, ErrInvalidHeader
		}
		entries = append(entries, raw[:n])
		raw = raw[n:]
	}
	return entries, nil
}
