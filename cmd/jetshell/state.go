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

package main

import (
	"fmt"

	"jetdb/cursor"
	"jetdb/internal/collation"
	"jetdb/internal/manifest"
	"jetdb/table"
)

// shellState holds the REPL's current table and cursor; every \-command
// acts against it. It carries no readline or terminal concerns so it can
// be driven directly from tests.
type shellState struct {
	db       *table.Database
	manifest *manifest.Manifest

	tableName string
	cur       *cursor.Cursor
}

func newShellState(db *table.Database, m *manifest.Manifest) *shellState {
	return &shellState{db: db, manifest: m}
}

// useTable switches the active table, starting a fresh cursor positioned
// before the first row.
func (s *shellState) useTable(name string) error {
	tbl, ok := s.db.Table(name)
	if !ok {
		return fmt.Errorf("unknown table: %s (known: %v)", name, s.manifest.TableNames())
	}
	c := cursor.NewScanCursor(tbl)
	c.SetColumnMatcher(cursor.NewCollatingMatcher(collation.NocaseCollator{}))
	s.tableName = name
	s.cur = c
	return nil
}

func (s *shellState) requireCursor() error {
	if s.cur == nil {
		return fmt.Errorf("no table selected; use \\t <table> first")
	}
	return nil
}

// next advances the cursor n rows and returns the row landed on.
func (s *shellState) next(n int) (cursor.Row, bool, error) {
	if err := s.requireCursor(); err != nil {
		return nil, false, err
	}
	moved, err := s.cur.SkipNextRows(n - 1)
	if err != nil {
		return nil, false, err
	}
	if moved < n-1 {
		return nil, false, nil
	}
	return s.cur.NextRow()
}

// previous steps the cursor n rows backward and returns the row landed on.
func (s *shellState) previous(n int) (cursor.Row, bool, error) {
	if err := s.requireCursor(); err != nil {
		return nil, false, err
	}
	moved, err := s.cur.SkipPreviousRows(n - 1)
	if err != nil {
		return nil, false, err
	}
	if moved < n-1 {
		return nil, false, nil
	}
	return s.cur.PreviousRow()
}

// find seats the cursor before the first row and scans forward for the
// first row whose column matches value under a case-insensitive collating
// matcher.
func (s *shellState) find(column string, value any) (cursor.Row, bool, error) {
	if err := s.requireCursor(); err != nil {
		return nil, false, err
	}
	found, err := s.cur.FindRow(column, cursor.NewCollatingMatcher(collation.NocaseCollator{}), value)
	if err != nil || !found {
		return nil, found, err
	}
	row, err := s.cur.CurrentRow()
	return row, true, err
}

func (s *shellState) currentRow() (cursor.Row, error) {
	if err := s.requireCursor(); err != nil {
		return nil, err
	}
	return s.cur.CurrentRow()
}

func (s *shellState) deleteCurrent() error {
	if err := s.requireCursor(); err != nil {
		return err
	}
	return s.cur.DeleteCurrentRow()
}
