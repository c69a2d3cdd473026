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
Package pageio reads and writes the fixed-size pages a jet file is built
from.

Layout:
=======

A jet database file is a flat sequence of fixed-size pages, addressed by
page number starting at 0. The first byte of every page identifies its
type (PageTypeData for a table data page, among others the format defines
but this package does not otherwise interpret). A FormatDescriptor carries
the handful of offsets that differ between the Jet3 and Jet4 on-disk
formats: the page size itself, where a data page stores its row count, and
how to compute the byte offset of a given row's start-offset slot.

Concurrency:
============

Reads never block each other; Channel hands out independent page copies.
Mutating operations — today only DeleteRow reaches this package, since
jetdb does not implement inserts or updates — must bracket themselves with
StartExclusiveWrite/FinishWrite. The latch is a single weighted semaphore
slot, acquired for the duration of one logical operation and never held
across a return to the caller, mirroring how the wider example pack uses
golang.org/x/sync/semaphore to bound a single in-flight writer rather than
a reader/writer count.
*/
package pageio

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	jeterrors "jetdb/internal/errors"
)

// PageType identifies the structural role of a page.
type PageType byte

const (
	PageTypeData     PageType = 0x01
	PageTypeTable    PageType = 0x02
	PageTypeIndex    PageType = 0x03
	PageTypeUsageMap PageType = 0x04
)

// FormatDescriptor carries the on-disk layout constants that differ
// between Jet3 and Jet4 database files.
type FormatDescriptor struct {
	// PageSize is the size in bytes of every page in the file (2048 for
	// Jet3, 4096 for Jet4).
	PageSize int
	// OffsetNumRowsOnDataPage is the byte offset, within a data page, of
	// the uint16 row count.
	OffsetNumRowsOnDataPage int
	// rowStartOffsetBase is the byte offset of the first row's start-offset
	// slot; each slot is 2 bytes and the table grows backward from the end
	// of the page.
	RowStartOffsetBase int
	// RowStartOffsetSize is the width in bytes of one row-start slot (2 for
	// both Jet3 and Jet4).
	RowStartOffsetSize int
}

// Jet3Format and Jet4Format are the two FormatDescriptor values jetdb
// recognizes.
var (
	Jet3Format = FormatDescriptor{PageSize: 2048, OffsetNumRowsOnDataPage: 8, RowStartOffsetBase: 2046, RowStartOffsetSize: 2}
	Jet4Format = FormatDescriptor{PageSize: 4096, OffsetNumRowsOnDataPage: 12, RowStartOffsetBase: 4094, RowStartOffsetSize: 2}
)

// RowStartOffset returns the byte offset, within a page, of the 2-byte
// slot holding rowNumber's row-start offset. Slots grow downward from the
// end of the page as more rows are added.
func (f FormatDescriptor) RowStartOffset(rowNumber int16) int {
	return f.RowStartOffsetBase - int(rowNumber)*f.RowStartOffsetSize
}

// DeletedRowMask marks a row-start offset as belonging to a deleted row.
const DeletedRowMask uint16 = 0x8000

// IsDeletedOffset reports whether a raw row-start offset value has the
// deleted bit set.
func IsDeletedOffset(raw uint16) bool {
	return raw&DeletedRowMask != 0
}

// RowStartValue strips the deleted bit, returning the real byte offset.
func RowStartValue(raw uint16) int {
	return int(raw &^ DeletedRowMask)
}

// Stats reports page channel activity, mirroring the counters the wider
// example pack's storage layer exposes for monitoring.
type Stats struct {
	PageReads  uint64
	PageWrites uint64
}

// Channel provides synchronous page-level access to one open database
// file plus the single exclusive-write latch DeleteCurrentRow and
// relationship persistence serialize on.
type Channel struct {
	format FormatDescriptor
	file   *os.File
	mu     sync.RWMutex
	latch  *semaphore.Weighted

	reads  atomic.Uint64
	writes atomic.Uint64
}

// Open opens path for page access using the given format.
func Open(path string, format FormatDescriptor, readOnly bool) (*Channel, error) {
	flag := os.O_RDWR
	if readOnly {
		flag = os.O_RDONLY
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, jeterrors.FileOpenFailed(path, err)
	}
	return &Channel{
		format: format,
		file:   f,
		latch:  semaphore.NewWeighted(1),
	}, nil
}

// Format returns the FormatDescriptor this channel was opened with.
func (c *Channel) Format() FormatDescriptor {
	return c.format
}

// ReadPage returns a copy of pageNumber's bytes.
func (c *Channel) ReadPage(pageNumber int32) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	buf := make([]byte, c.format.PageSize)
	n, err := c.file.ReadAt(buf, int64(pageNumber)*int64(c.format.PageSize))
	if err != nil {
		return nil, jeterrors.NewIOError(fmt.Sprintf("read page %d", pageNumber), err)
	}
	if n != c.format.PageSize {
		return nil, jeterrors.ShortRead(pageNumber, n, c.format.PageSize)
	}
	c.reads.Add(1)
	return buf, nil
}

// WritePage persists data as pageNumber. Callers must hold the exclusive
// write latch for the duration of the logical operation this write is
// part of.
func (c *Channel) WritePage(pageNumber int32, data []byte) error {
	if len(data) != c.format.PageSize {
		return jeterrors.ShortWrite(pageNumber, len(data), c.format.PageSize)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := c.file.WriteAt(data, int64(pageNumber)*int64(c.format.PageSize))
	if err != nil {
		return jeterrors.NewIOError(fmt.Sprintf("write page %d", pageNumber), err)
	}
	if n != c.format.PageSize {
		return jeterrors.ShortWrite(pageNumber, n, c.format.PageSize)
	}
	c.writes.Add(1)
	return nil
}

// PageType returns the type byte of pageNumber without reading the whole
// page twice; callers that already hold the page should prefer indexing
// into it directly.
func (c *Channel) PageType(pageNumber int32) (PageType, error) {
	page, err := c.ReadPage(pageNumber)
	if err != nil {
		return 0, err
	}
	if len(page) == 0 {
		return 0, jeterrors.ShortRead(pageNumber, 0, c.format.PageSize)
	}
	return PageType(page[0]), nil
}

// StartExclusiveWrite blocks until the single write latch is free and
// acquires it. It must be paired with FinishWrite.
func (c *Channel) StartExclusiveWrite() {
	_ = c.latch.Acquire(context.Background(), 1)
}

// FinishWrite releases the exclusive write latch.
func (c *Channel) FinishWrite() {
	c.latch.Release(1)
}

// Stats returns a snapshot of page read/write counters.
func (c *Channel) Stats() Stats {
	return Stats{
		PageReads:  c.reads.Load(),
		PageWrites: c.writes.Load(),
	}
}

// Close closes the underlying file.
func (c *Channel) Close() error {
	return c.file.Close()
}
