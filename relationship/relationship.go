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
Package relationship validates and persists referential constraints between
two tables: matching column counts and types, optional referential-integrity
enforcement backed by a unique index on the primary side, and a non-unique
index on the secondary side.

Table and Database are declared here, at the point of use, the same way
cursor declares its own Table — this package never imports package table;
table's concrete types satisfy these interfaces structurally.
*/
package relationship

import "jetdb/internal/coltype"

// Table is the subset of a table's identity and index-management surface
// the relationship creator needs. It is distinct from cursor.Table (which
// is about row traversal) because a relationship never scans rows.
type Table interface {
	// Name returns the table's name as recorded in the database catalog.
	Name() string
	// Database identifies which database this table belongs to, so the
	// creator can reject a relationship across two different files.
	Database() Database
	// Column looks up a column's logical type by name.
	Column(name string) (coltype.Type, bool)
	// HasIndex reports whether an index already exists over columns with
	// the given uniqueness, returning its name if so.
	HasIndex(columns []string, unique bool) (string, bool)
	// CreateIndex creates a new index over columns with the given name and
	// uniqueness.
	CreateIndex(columns []string, name string, unique bool) error
}

// Database is the persistence boundary a Creator writes a finished Record
// through.
type Database interface {
	WriteRelationship(c *Creator) (*Record, error)
}

// Flags is a bitfield of relationship options, mirroring the flag byte a
// jet file's relationship catalog entry stores.
type Flags uint32

const (
	// FlagEnforceIntegrity requires a unique index on the primary columns
	// and a non-unique index on the secondary columns, creating either if
	// missing.
	FlagEnforceIntegrity Flags = 1 << iota
	// FlagCascadeUpdates propagates a primary key update to matching
	// secondary rows. Recorded on the Record; not enforced by this package,
	// since jetdb does not implement row updates.
	FlagCascadeUpdates
	// FlagCascadeDeletes propagates a primary key delete to matching
	// secondary rows. Recorded on the Record; not enforced by this package
	// for the same reason as FlagCascadeUpdates.
	FlagCascadeDeletes
)

// Has reports whether f includes flag.
func (f Flags) Has(flag Flags) bool {
	return f&flag != 0
}

// Record is a persisted relationship between two tables.
type Record struct {
	Name           string
	PrimaryTable   Table
	SecondaryTable Table
	Flags          Flags
	PrimaryCols    []string
	SecondaryCols  []string
}

// Builder collects the inputs to Creator.Create before validation.
type Builder struct {
	Name           string
	PrimaryTable   Table
	SecondaryTable Table
	PrimaryCols    []string
	SecondaryCols  []string
	Flags          Flags
}
