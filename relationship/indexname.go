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

package relationship

import (
	"fmt"
	"strings"

	"jetdb/internal/coltype"
)

func compatible(a, b coltype.Type) bool {
	return a == b
}

func normalizeNames(existing map[string]bool) map[string]bool {
	out := make(map[string]bool, len(existing))
	for n := range existing {
		out[strings.ToUpper(n)] = true
	}
	return out
}

// NextPrimaryIndexName returns the first name in the ".rC", ".rD", ...,
// ".rZ", ".ra", ".rb", ... sequence that does not collide
// case-insensitively with a name in existing.
func NextPrimaryIndexName(existing map[string]bool) string {
	taken := normalizeNames(existing)
	for c := byte('C'); ; c = advancePrimarySuffix(c) {
		name := ".r" + string(rune(c))
		if !taken[strings.ToUpper(name)] {
			return name
		}
	}
}

// advancePrimarySuffix steps c to the next ASCII character, wrapping from
// the character immediately after 'Z' ('[') to 'a' rather than passing
// through it.
func advancePrimarySuffix(c byte) byte {
	c++
	if c == '[' {
		return 'a'
	}
	return c
}

// NextSecondaryIndexName returns primaryName+secondaryName, or that base
// with a numeric suffix ("1", "2", ...) if the base collides
// case-insensitively with a name in existing.
func NextSecondaryIndexName(primaryName, secondaryName string, existing map[string]bool) string {
	taken := normalizeNames(existing)
	base := primaryName + secondaryName
	if !taken[strings.ToUpper(base)] {
		return base
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s%d", base, i)
		if !taken[strings.ToUpper(name)] {
			return name
		}
	}
}
