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

package collation

import (
	"fmt"
	"testing"
)

func TestBinaryCollator(t *testing.T) {
	c := BinaryCollator{}
	if c.Equal("Alice", "alice") {
		t.Error("binary collation should be case sensitive")
	}
	if c.Compare("A", "B") >= 0 {
		t.Error("expected A < B under binary collation")
	}
	if !c.Equal("same", "same") {
		t.Error("expected identical strings to be equal")
	}
}

func TestNocaseCollator(t *testing.T) {
	c := NocaseCollator{}
	if !c.Equal("Alice", "alice") {
		t.Error("expected case-insensitive equality")
	}
	if c.Compare("alice", "ALICE") != 0 {
		t.Error("expected case-insensitive ordering to treat alice == ALICE")
	}
}

func TestUnicodeCollator(t *testing.T) {
	c := NewUnicodeCollator("en_US")
	if !c.Equal("cafe", "cafe") {
		t.Error("expected identical strings to be equal")
	}
	if c.Compare("a", "b") >= 0 {
		t.Error("expected a < b under unicode collation")
	}
}

func TestUnicodeCollatorUnknownLocaleFallsBack(t *testing.T) {
	c := NewUnicodeCollator("not-a-real-locale")
	if c.locale != "not-a-real-locale" {
		t.Error("expected locale field to retain the requested value")
	}
	if c.Compare("a", "a") != 0 {
		t.Error("expected fallback collator to still compare equal strings as equal")
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		collation Collation
		wantType  string
	}{
		{Binary, "collation.BinaryCollator"},
		{CaseInsensitive, "collation.NocaseCollator"},
		{Unicode, "*collation.UnicodeCollator"},
		{Collation("bogus"), "collation.BinaryCollator"},
	}
	for _, tt := range tests {
		got := Get(tt.collation, "en_US")
		if got == nil {
			t.Errorf("Get(%s) returned nil", tt.collation)
		}
		if gotType := fmt.Sprintf("%T", got); gotType != tt.wantType {
			t.Errorf("Get(%s) returned %s, want %s", tt.collation, gotType, tt.wantType)
		}
	}
}

func TestNormalize(t *testing.T) {
	if Normalize("Alice", CaseInsensitive) != "alice" {
		t.Error("expected CaseInsensitive normalization to lowercase")
	}
	if Normalize("Alice", Binary) != "Alice" {
		t.Error("expected Binary normalization to be a no-op")
	}
	if got := Normalize("a\tb", Unicode); got != "a b" {
		t.Errorf("expected Unicode normalization to fold whitespace, got %q", got)
	}
}
