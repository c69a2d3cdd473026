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
Package collation defines how text column values are compared by the cursor's
column matcher.

Collation determines whether "Alice" matches "alice" when FindRow searches a
text column, and how two text values order relative to each other when a
Collator backs an index comparison. jetdb supports three collations:

  - Binary (default): byte-by-byte comparison, locale-independent
  - CaseInsensitive: case-folded comparison
  - Unicode: locale-aware comparison via golang.org/x/text/collate, for
    databases created under a non-English Windows code page

The jet format itself stores a per-database sort order id; this package does
not parse that id, it only exposes the three comparison strategies a column
matcher chooses between once the sort order has been resolved by the caller.
*/
package collation

import (
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collation identifies which comparison strategy a Collator implements.
type Collation string

const (
	// Binary compares strings byte-by-byte. This is the default and the
	// fastest option.
	Binary Collation = "binary"
	// CaseInsensitive folds case before comparing.
	CaseInsensitive Collation = "nocase"
	// Unicode compares strings using locale-aware Unicode collation rules.
	Unicode Collation = "unicode"
)

// Collator compares text values for a column's collation.
type Collator interface {
	// Compare returns -1, 0, or 1 as a is less than, equal to, or greater
	// than b.
	Compare(a, b string) int
	// Equal reports whether a and b are equal under this collation.
	Equal(a, b string) bool
}

// BinaryCollator compares strings byte-by-byte.
type BinaryCollator struct{}

func (BinaryCollator) Compare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (BinaryCollator) Equal(a, b string) bool { return a == b }

// NocaseCollator compares strings after case-folding.
type NocaseCollator struct{}

func (NocaseCollator) Compare(a, b string) int {
	al, bl := strings.ToLower(a), strings.ToLower(b)
	switch {
	case al < bl:
		return -1
	case al > bl:
		return 1
	default:
		return 0
	}
}

func (NocaseCollator) Equal(a, b string) bool { return strings.EqualFold(a, b) }

// UnicodeCollator compares strings using a locale's collation rules.
type UnicodeCollator struct {
	collator *collate.Collator
	locale   string
}

// NewUnicodeCollator builds a UnicodeCollator for the given locale (e.g.
// "en_US", "de_DE"). An unrecognized or empty locale falls back to English.
func NewUnicodeCollator(locale string) *UnicodeCollator {
	tag := language.Make(strings.ReplaceAll(locale, "_", "-"))
	if tag == language.Und {
		tag = language.English
	}
	return &UnicodeCollator{
		collator: collate.New(tag, collate.Loose),
		locale:   locale,
	}
}

func (c *UnicodeCollator) Compare(a, b string) int { return c.collator.CompareString(a, b) }
func (c *UnicodeCollator) Equal(a, b string) bool  { return c.collator.CompareString(a, b) == 0 }

// Get returns the Collator for the given collation and locale. locale is
// only consulted for Unicode.
func Get(c Collation, locale string) Collator {
	switch c {
	case CaseInsensitive:
		return NocaseCollator{}
	case Unicode:
		return NewUnicodeCollator(locale)
	default:
		return BinaryCollator{}
	}
}

// Normalize maps s to a normalized form for the given collation: unchanged
// for Binary, lower-cased for CaseInsensitive. For Unicode it only replaces
// each whitespace rune with a space; it does not apply the locale's
// collation rules.
func Normalize(s string, c Collation) string {
	switch c {
	case CaseInsensitive:
		return strings.ToLower(s)
	case Unicode:
		return strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return ' '
			}
			return r
		}, s)
	default:
		return s
	}
}
