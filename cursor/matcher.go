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

import "jetdb/internal/collation"

// ColumnMatcher decides whether a row's value for columnName matches a
// caller-supplied pattern value. Implementations are pure values, swapped
// per cursor via Cursor.SetColumnMatcher.
type ColumnMatcher interface {
	Matches(t Table, columnName string, patternValue, rowValue any) bool
}

// defaultMatcher implements "null-safe object equality": two nils match,
// nil never matches non-nil, otherwise values compare equal with ==
// where comparable, falling back to a byte-slice-aware comparison for
// BLOB columns.
type defaultMatcher struct{}

func (defaultMatcher) Matches(_ Table, _ string, pattern, value any) bool {
	return nullSafeEqual(pattern, value)
}

func nullSafeEqual(pattern, value any) bool {
	if pattern == nil || value == nil {
		return pattern == nil && value == nil
	}
	if pb, ok := pattern.([]byte); ok {
		if vb, ok := value.([]byte); ok {
			return bytesEqual(pb, vb)
		}
		return false
	}
	return pattern == value
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// DefaultMatcher is the null-safe equality matcher FindRow uses when no
// matcher is explicitly set.
var DefaultMatcher ColumnMatcher = defaultMatcher{}

// collatingMatcher compares string values under a collation.Collator and
// falls back to null-safe equality for every other type.
type collatingMatcher struct {
	collator collation.Collator
}

// NewCollatingMatcher builds a ColumnMatcher that compares text values
// using collator, and every other column type with plain equality.
func NewCollatingMatcher(collator collation.Collator) ColumnMatcher {
	return collatingMatcher{collator: collator}
}

func (m collatingMatcher) Matches(_ Table, _ string, pattern, value any) bool {
	ps, pok := pattern.(string)
	vs, vok := value.(string)
	if pok && vok {
		return m.collator.Equal(ps, vs)
	}
	return nullSafeEqual(pattern, value)
}
