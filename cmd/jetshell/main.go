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
jetshell - an interactive REPL for stepping through and searching a jet
table's live rows.

Usage:

    jetshell -file Northwind.accdb -schema northwind.json

    jetdb> \t Customers
    jetdb> \n
    jetdb> \f Name Acme
    jetdb> \q

Like jetdump, jetshell has no catalog parser to read a file's own table
list from, so -schema points at a manifest describing the tables it can
open (see internal/manifest). Everything the REPL does after that - \n,
\p, \f, \d - runs through a real cursor.Cursor over the real page channel.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"jetdb/internal/config"
	"jetdb/internal/logging"
	"jetdb/internal/manifest"
	"jetdb/internal/pageio"
	"jetdb/pkg/cli"
)

var (
	filePath    = flag.String("file", "", "path to the .mdb/.accdb file")
	schemaPath  = flag.String("schema", "", "path to the table manifest (see internal/manifest)")
	format      = flag.String("format", "jet4", "on-disk format: jet3 or jet4")
	historyPath = flag.String("history", "", "readline history file (defaults to no history)")
	configPath  = flag.String("config", "", "optional config file (see internal/config); environment variables still override it")
)

var log = logging.NewLogger("jetshell")

func usage() *cli.HelpFormatter {
	h := cli.NewHelpFormatter("jetshell", "1.0.0")
	h.AddCommand(cli.Command{
		Name:        "jetshell",
		Description: "interactive REPL for stepping through and searching a jet table's rows",
		Usage:       "jetshell -file <path> -schema <manifest.json>",
		Examples: []cli.Example{
			{Description: "open a shell against a database", Command: "jetshell -file Northwind.accdb -schema northwind.json"},
		},
	})
	return h
}

func main() {
	flag.Usage = func() { usage().PrintUsage() }
	flag.Parse()

	mgr := config.NewManager()
	if *configPath != "" {
		if err := mgr.LoadFromFile(*configPath); err != nil {
			cli.NewCLIError(err.Error()).Exit()
		}
	}
	mgr.LoadFromEnv()
	cfg := mgr.Get()
	logging.SetGlobalLevel(logging.ParseLevel(cfg.LogLevel))
	logging.SetJSONMode(cfg.LogJSON)

	if *filePath == "" || *schemaPath == "" {
		cli.PrintError("missing required flags")
		flag.Usage()
		os.Exit(2)
	}

	fd, err := parseFormat(*format)
	if err != nil {
		cli.NewCLIError(err.Error()).WithSuggestion("use -format jet3 or -format jet4").Exit()
	}

	log.Debug("opening database file", "path", *filePath, "format", *format)
	channel, err := pageio.Open(*filePath, fd, false)
	if err != nil {
		cli.ErrFileNotFound(*filePath, err).Exit()
	}
	defer channel.Close()

	m, err := manifest.Load(*schemaPath)
	if err != nil {
		cli.NewCLIError(err.Error()).Exit()
	}
	db, err := m.BuildDatabase(channel)
	if err != nil {
		cli.NewCLIError(err.Error()).Exit()
	}

	state := newShellState(db, m)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      cli.Highlight("jetdb> "),
		HistoryFile: *historyPath,
	})
	if err != nil {
		cli.NewCLIError(fmt.Sprintf("starting readline: %v", err)).Exit()
	}
	defer rl.Close()

	cli.Box("jetshell", fmt.Sprintf("%s\n%d table(s) available; \\l to list, \\h for help", *filePath, len(m.TableNames())))
	runREPL(rl, state)
}

func parseFormat(s string) (pageio.FormatDescriptor, error) {
	switch s {
	case "jet3":
		return pageio.Jet3Format, nil
	case "jet4", "":
		return pageio.Jet4Format, nil
	default:
		return pageio.FormatDescriptor{}, fmt.Errorf("unknown format: %s", s)
	}
}

// runREPL reads lines from rl until EOF, Ctrl-C on an empty line, or \q.
func runREPL(rl *readline.Instance, state *shellState) {
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(strings.TrimSpace(line)) == 0 {
				return
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			cli.PrintError("%v", err)
			return
		}

		cmd, args := parseCommand(line)
		if cmd == "" {
			if strings.TrimSpace(line) != "" {
				cli.PrintWarning("commands start with \\ - try \\h for help")
			}
			continue
		}

		if cmd == "d" || cmd == "delete" {
			if !cli.ConfirmDestructive("this marks the current row deleted on disk.", "DELETE") {
				cli.PrintInfo("cancelled")
				continue
			}
			log.Warn("deleting current row", "table", state.tableName)
		}

		output, quit, err := dispatch(state, cmd, args)
		if err != nil {
			log.Error("command failed", "cmd", cmd, "error", err.Error())
			cli.PrintError("%v", err)
			continue
		}
		if output != "" {
			fmt.Println(output)
		}
		if quit {
			return
		}
	}
}
