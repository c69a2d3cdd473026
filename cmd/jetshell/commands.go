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
	"sort"
	"strconv"
	"strings"

	"jetdb/cursor"
	"jetdb/pkg/cli"
)

// parseCommand splits a line of shell input into a backslash command and
// its arguments. "\f Name Acme" parses to ("f", ["Name", "Acme"]). A line
// that does not start with a backslash parses to ("", nil).
func parseCommand(line string) (string, []string) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "\\") {
		return "", nil
	}
	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// formatRow renders a row as aligned "key: value" lines, sorted by key.
func formatRow(row cursor.Row) string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "  %-20s %v\n", k+":", row[k])
	}
	return b.String()
}

// dispatch runs one parsed command against state and returns the text to
// print, or an error describing why it failed. quit is true for \q, telling
// the caller to end the REPL loop.
func dispatch(state *shellState, cmd string, args []string) (output string, quit bool, err error) {
	switch cmd {
	case "q", "quit":
		return "", true, nil

	case "h", "help":
		return helpText(), false, nil

	case "l", "list":
		names := state.manifest.TableNames()
		sort.Strings(names)
		t := cli.NewTable("Table")
		for _, n := range names {
			t.AddRow(n)
		}
		t.Print()
		return "", false, nil

	case "t", "table":
		name, err := resolveTableName(state, args)
		if err != nil {
			return "", false, err
		}
		if err := state.useTable(name); err != nil {
			return "", false, err
		}
		return cli.Success(fmt.Sprintf("now scanning %s", name)), false, nil

	case "n", "next":
		n, err := parseCount(args, 1)
		if err != nil {
			return "", false, err
		}
		row, ok, err := state.next(n)
		if err != nil {
			return "", false, err
		}
		if !ok {
			return cli.Warning("end of table"), false, nil
		}
		return formatRow(row), false, nil

	case "p", "prev", "previous":
		n, err := parseCount(args, 1)
		if err != nil {
			return "", false, err
		}
		row, ok, err := state.previous(n)
		if err != nil {
			return "", false, err
		}
		if !ok {
			return cli.Warning("start of table"), false, nil
		}
		return formatRow(row), false, nil

	case "c", "current":
		row, err := state.currentRow()
		if err != nil {
			return "", false, err
		}
		return formatRow(row), false, nil

	case "f", "find":
		if len(args) < 2 {
			return "", false, fmt.Errorf("usage: \\f <column> <value>")
		}
		column := args[0]
		value := strings.Join(args[1:], " ")
		row, ok, err := state.find(column, value)
		if err != nil {
			return "", false, err
		}
		if !ok {
			return cli.Warning(fmt.Sprintf("no row with %s = %s", column, value)), false, nil
		}
		return formatRow(row), false, nil

	case "d", "delete":
		if err := state.deleteCurrent(); err != nil {
			return "", false, err
		}
		return cli.Success("row deleted"), false, nil

	default:
		return "", false, fmt.Errorf("unknown command: \\%s (try \\h)", cmd)
	}
}

// resolveTableName returns the table named by args, or - when \t is given no
// name - prompts the user to pick one from the manifest via PromptSelect.
func resolveTableName(state *shellState, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if len(args) > 1 {
		return "", fmt.Errorf("usage: \\t [table]")
	}
	names := state.manifest.TableNames()
	if len(names) == 0 {
		return "", fmt.Errorf("no tables in manifest")
	}
	sort.Strings(names)
	idx := cli.PromptSelect("Choose a table:", names, 0)
	return names[idx], nil
}

func parseCount(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("expected a positive row count, got %q", args[0])
	}
	return n, nil
}

func helpText() string {
	return strings.Join([]string{
		"\\t [table]          switch the active table (prompts if omitted)",
		"\\l                  list tables known to the manifest",
		"\\n [count]          step forward (default 1 row)",
		"\\p [count]          step backward (default 1 row)",
		"\\c                  show the current row",
		"\\f <column> <value> find the first row matching column = value",
		"\\d                  delete the current row",
		"\\h                  show this help",
		"\\q                  quit",
	}, "\n")
}
