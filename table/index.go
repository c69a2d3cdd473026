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

// Index is a named ordered-column index over a JetTable. JetTable tracks
// indexes by name only - it does not build or maintain a B-tree, since
// index traversal is out of scope; it exists so relationship.Creator's
// HasIndex/CreateIndex/index-name-collision logic has somewhere real to
// read from and write to.
type Index struct {
	Name    string
	Columns []string
	Unique  bool
}
