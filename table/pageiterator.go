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

import "jetdb/cursor"

// PageIterator yields a fixed, pre-computed sequence of page numbers in
// either direction. Real jet files derive this sequence by walking a
// table's page-ownership usage map; since that map's format is out of
// scope here, PageIterator takes the sequence directly, in ascending
// (first-owned-page-first) order.
type PageIterator struct {
	pages []int32
	// idx is the position of the page most recently returned: -1 before
	// the first page, len(pages) after the last.
	idx int
}

// NewPageIterator wraps pages, which must already be in the table's
// natural ownership order.
func NewPageIterator(pages []int32) *PageIterator {
	return &PageIterator{pages: pages, idx: -1}
}

var _ cursor.PageOwnershipIterator = (*PageIterator)(nil)

// NextPage returns the next page number in forward order, or
// cursor.InvalidPageNumber once exhausted.
func (p *PageIterator) NextPage() int32 {
	if p.idx+1 >= len(p.pages) {
		p.idx = len(p.pages)
		return cursor.InvalidPageNumber
	}
	p.idx++
	return p.pages[p.idx]
}

// PreviousPage returns the next page number in reverse order, or
// cursor.InvalidPageNumber once exhausted.
func (p *PageIterator) PreviousPage() int32 {
	if p.idx-1 < 0 {
		p.idx = -1
		return cursor.InvalidPageNumber
	}
	p.idx--
	return p.pages[p.idx]
}

// Reset seats the iterator at the start of a forward scan (moveForward
// true) or the start of a reverse scan (moveForward false).
func (p *PageIterator) Reset(moveForward bool) {
	if moveForward {
		p.idx = -1
	} else {
		p.idx = len(p.pages)
	}
}
