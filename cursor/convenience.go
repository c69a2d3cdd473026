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

// FindRow creates a throwaway scan cursor over t and seats it on the
// first row matching every column in pattern.
func FindRow(t Table, pattern map[string]any) (Row, bool, error) {
	c := NewScanCursor(t)
	found, err := c.FindRowByPattern(pattern)
	if err != nil || !found {
		return nil, found, err
	}
	row, err := c.CurrentRow()
	return row, true, err
}

// FindValue creates a throwaway scan cursor over t and seats it on the
// first row whose column equals pattern.
func FindValue(t Table, column string, pattern any) (Row, bool, error) {
	c := NewScanCursor(t)
	found, err := c.FindRow(column, DefaultMatcher, pattern)
	if err != nil || !found {
		return nil, found, err
	}
	row, err := c.CurrentRow()
	return row, true, err
}
