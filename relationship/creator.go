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
	jeterrors "jetdb/internal/errors"
)

// Creator validates a Builder and persists the resulting Record through a
// Database, creating whatever indexes referential-integrity enforcement
// requires.
type Creator struct {
	builder Builder
}

// NewCreator wraps b for validation and persistence.
func NewCreator(b Builder) *Creator {
	return &Creator{builder: b}
}

// Builder returns the builder this creator was constructed with, so a
// Database implementation can read back what it is being asked to persist.
func (c *Creator) Builder() Builder {
	return c.builder
}

// Create validates c's builder and asks the primary table's database to
// persist it. On success it returns the Record the database wrote.
func (c *Creator) Create() (*Record, error) {
	b := c.builder

	if b.PrimaryTable == nil {
		return nil, jeterrors.NilTable("primary")
	}
	if b.SecondaryTable == nil {
		return nil, jeterrors.NilTable("secondary")
	}
	if b.PrimaryTable.Database() != b.SecondaryTable.Database() {
		return nil, jeterrors.DatabaseMismatch()
	}
	if len(b.PrimaryCols) == 0 || len(b.PrimaryCols) != len(b.SecondaryCols) {
		return nil, jeterrors.ColumnCountMismatch(len(b.PrimaryCols), len(b.SecondaryCols))
	}

	for i := range b.PrimaryCols {
		primaryCol := b.PrimaryCols[i]
		secondaryCol := b.SecondaryCols[i]

		primaryType, ok := b.PrimaryTable.Column(primaryCol)
		if !ok {
			return nil, jeterrors.InvalidArgument("primary column " + primaryCol + " does not exist")
		}
		// The deviation fixed here (see DESIGN.md): a naive port reads
		// PrimaryCols[i] against itself, making this check vacuous. The
		// parallel secondary column is what must match.
		secondaryType, ok := b.SecondaryTable.Column(secondaryCol)
		if !ok {
			return nil, jeterrors.InvalidArgument("secondary column " + secondaryCol + " does not exist")
		}
		if !compatible(primaryType, secondaryType) {
			return nil, jeterrors.ColumnTypeMismatch(i, primaryCol, secondaryCol, primaryType, secondaryType)
		}
	}

	// Index creation for referential integrity is deferred to the Database
	// implementation's WriteRelationship, so it runs inside the same
	// exclusive-write latch as the record write rather than before it.
	db := b.PrimaryTable.Database()
	return db.WriteRelationship(c)
}

// EnsureIndexes creates the unique primary-side index and non-unique
// secondary-side index referential integrity requires, if they do not
// already exist. Database implementations call this from within
// WriteRelationship, under the page channel's exclusive-write latch, when
// b.Flags.Has(FlagEnforceIntegrity).
func EnsureIndexes(b Builder) error {
	if _, ok := b.PrimaryTable.HasIndex(b.PrimaryCols, true); !ok {
		name := NextPrimaryIndexName(existingIndexNames(b.PrimaryTable))
		if err := b.PrimaryTable.CreateIndex(b.PrimaryCols, name, true); err != nil {
			return jeterrors.IndexRequired(err.Error())
		}
	}

	if _, ok := b.SecondaryTable.HasIndex(b.SecondaryCols, false); !ok {
		name := NextSecondaryIndexName(b.PrimaryTable.Name(), b.SecondaryTable.Name(), existingIndexNames(b.SecondaryTable))
		// createSecondaryIndex builds over SecondaryCols, not PrimaryCols -
		// the other half of the deviation fixed here (see DESIGN.md).
		if err := b.SecondaryTable.CreateIndex(b.SecondaryCols, name, false); err != nil {
			return jeterrors.IndexRequired(err.Error())
		}
	}

	return nil
}

// indexNameLister is satisfied by any Table whose concrete type also
// exposes the full set of index names it carries; table.JetTable does.
type indexNameLister interface {
	IndexNames() []string
}

func existingIndexNames(t Table) map[string]bool {
	names := map[string]bool{}
	if lister, ok := t.(indexNameLister); ok {
		for _, n := range lister.IndexNames() {
			names[n] = true
		}
	}
	return names
}
