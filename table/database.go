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

import (
	"strings"
	"sync"

	"jetdb/internal/pageio"
	"jetdb/relationship"
)

// Database is the minimal concrete relationship.Database: one open jet
// file, its page channel, and the tables registered against it. Table
// identity for relationship.Creator's "same database" check is pointer
// identity on *Database.
type Database struct {
	name    string
	channel *pageio.Channel

	mu            sync.Mutex
	tables        map[string]*JetTable
	relationships []*relationship.Record
}

// NewDatabase wraps an already-open page channel.
func NewDatabase(name string, channel *pageio.Channel) *Database {
	return &Database{
		name:    name,
		channel: channel,
		tables:  map[string]*JetTable{},
	}
}

// Channel returns the page channel backing this database, for tooling that
// needs direct access (jetdump, jetshell).
func (d *Database) Channel() *pageio.Channel { return d.channel }

func (d *Database) registerTable(t *JetTable) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tables[strings.ToUpper(t.Name())] = t
}

// Table looks up a registered table by name, case-insensitively.
func (d *Database) Table(name string) (*JetTable, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.tables[strings.ToUpper(name)]
	return t, ok
}

// TableNames returns every registered table's name.
func (d *Database) TableNames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, 0, len(d.tables))
	for _, t := range d.tables {
		names = append(names, t.Name())
	}
	return names
}

// Relationships returns every relationship record persisted so far.
func (d *Database) Relationships() []*relationship.Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*relationship.Record, len(d.relationships))
	copy(out, d.relationships)
	return out
}

// WriteRelationship persists c's builder as a Record under the page
// channel's exclusive-write latch, creating whatever indexes
// referential-integrity enforcement requires inside the same latch.
func (d *Database) WriteRelationship(c *relationship.Creator) (*relationship.Record, error) {
	b := c.Builder()

	d.channel.StartExclusiveWrite()
	defer d.channel.FinishWrite()

	if b.Flags.Has(relationship.FlagEnforceIntegrity) {
		if err := relationship.EnsureIndexes(b); err != nil {
			return nil, err
		}
	}

	rec := &relationship.Record{
		Name:           b.Name,
		PrimaryTable:   b.PrimaryTable,
		SecondaryTable: b.SecondaryTable,
		Flags:          b.Flags,
		PrimaryCols:    b.PrimaryCols,
		SecondaryCols:  b.SecondaryCols,
	}

	d.mu.Lock()
	d.relationships = append(d.relationships, rec)
	d.mu.Unlock()

	return rec, nil
}
