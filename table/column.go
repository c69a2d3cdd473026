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
Package table supplies the Table/Database collaborators the cursor and
relationship packages are built against, plus a minimal concrete
implementation (JetTable, Database) used by tests and the demo tooling.

It deliberately stops short of parsing a jet file's table-definition page:
column-type decoding beyond the logical enum in internal/coltype, catalog
reading, and index B-tree traversal are all out of scope. JetTable's row
content is supplied by its constructor rather than decoded from the fixed-
and variable-length data sections a real table-definition page describes;
only the structural bytes a cursor scan actually reads - page type, row
count, row-start offsets, the deleted bit - are read through the page
channel for real.
*/
package table

import "jetdb/internal/coltype"

// Column describes one column of a JetTable's schema.
type Column struct {
	Name string
	Type coltype.Type
}
