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
Package config holds the options used to open a jetdb database file.

jetdb is an embedded library with no server process, so this package is
deliberately small: it holds options for opening the local file (path,
read-only, buffer pool sizing, locale) and for the ambient logger, not ports
or cluster roles. Of these, the cmd tools apply only the logger options. Configuration can come from defaults, a simple "key = value" file (the
same flat format the wider example pack's server config uses), environment
variables, or direct struct construction, with environment variables taking
precedence over the file.
*/
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Environment variable names recognized by LoadFromEnv.
const (
	EnvDataPath        = "JETDB_DATA_PATH"
	EnvReadOnly        = "JETDB_READ_ONLY"
	EnvBufferPoolPages = "JETDB_BUFFER_POOL_PAGES"
	EnvLocale          = "JETDB_LOCALE"
	EnvLogLevel        = "JETDB_LOG_LEVEL"
	EnvLogJSON         = "JETDB_LOG_JSON"
)

// Config holds the options used to open a database file.
type Config struct {
	// DataPath is the path to the .mdb/.accdb file on disk.
	DataPath string
	// ReadOnly records whether the file is to be opened read-only. It is
	// loaded and validated here; pageio.Open takes its own read-only flag
	// and does not consult this field.
	ReadOnly bool
	// BufferPoolPages is a page-cache size, checked by Validate to be
	// positive. pageio.Channel keeps no page cache and does not read it.
	BufferPoolPages int
	// Locale names a collation locale for string columns, e.g. "en_US", ""
	// for binary comparison. The column matchers do not read it.
	Locale string
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string
	// LogJSON switches the ambient logger to JSON output.
	LogJSON bool

	// ConfigFile records which file (if any) populated this Config.
	ConfigFile string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataPath:        "jetdb.accdb",
		ReadOnly:        false,
		BufferPoolPages: 256,
		Locale:          "",
		LogLevel:        "info",
		LogJSON:         false,
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return fmt.Errorf("data_path must not be empty")
	}
	if c.BufferPoolPages <= 0 {
		return fmt.Errorf("buffer_pool_pages must be positive, got %d", c.BufferPoolPages)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	return nil
}

// String returns a human-readable summary of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf(
		"DataPath: %s, ReadOnly: %v, BufferPoolPages: %d, Locale: %q, LogLevel: %s",
		c.DataPath, c.ReadOnly, c.BufferPoolPages, c.Locale, c.LogLevel,
	)
}

// ToTOML renders the configuration as a flat "key = value" document.
func (c *Config) ToTOML() string {
	var b strings.Builder
	fmt.Fprintf(&b, "data_path = %q\n", c.DataPath)
	fmt.Fprintf(&b, "read_only = %v\n", c.ReadOnly)
	fmt.Fprintf(&b, "buffer_pool_pages = %d\n", c.BufferPoolPages)
	fmt.Fprintf(&b, "locale = %q\n", c.Locale)
	fmt.Fprintf(&b, "log_level = %q\n", c.LogLevel)
	fmt.Fprintf(&b, "log_json = %v\n", c.LogJSON)
	return b.String()
}

// SaveToFile writes the configuration to path, creating parent directories
// as needed.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(c.ToTOML()), 0o644)
}

// Manager owns the active Config, reload callbacks, and the path it was
// last loaded from.
type Manager struct {
	cfg      *Config
	path     string
	onReload []func(*Config)
}

// NewManager creates a Manager seeded with DefaultConfig.
func NewManager() *Manager {
	return &Manager{cfg: DefaultConfig()}
}

// Get returns the currently active configuration.
func (m *Manager) Get() *Config {
	return m.cfg
}

// OnReload registers a callback invoked after Reload successfully replaces
// the active configuration.
func (m *Manager) OnReload(fn func(*Config)) {
	m.onReload = append(m.onReload, fn)
}

// LoadFromFile parses a flat "key = value" config file, overlaying it on top
// of the current configuration.
func (m *Manager) LoadFromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg := *m.cfg
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"`)
		applyKey(&cfg, key, value)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.ConfigFile = path
	m.cfg = &cfg
	m.path = path
	return nil
}

// LoadFromEnv overlays recognized environment variables on top of the
// current configuration.
func (m *Manager) LoadFromEnv() {
	cfg := *m.cfg
	if v := os.Getenv(EnvDataPath); v != "" {
		cfg.DataPath = v
	}
	if v := os.Getenv(EnvReadOnly); v != "" {
		cfg.ReadOnly = v == "true" || v == "1"
	}
	if v := os.Getenv(EnvBufferPoolPages); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BufferPoolPages = n
		}
	}
	if v := os.Getenv(EnvLocale); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogJSON); v != "" {
		cfg.LogJSON = v == "true" || v == "1"
	}
	m.cfg = &cfg
}

// Reload re-parses the file this manager was last loaded from and invokes
// any registered reload callbacks.
func (m *Manager) Reload() error {
	if m.path == "" {
		return fmt.Errorf("manager was not loaded from a file")
	}
	if err := m.LoadFromFile(m.path); err != nil {
		return err
	}
	for _, fn := range m.onReload {
		fn(m.cfg)
	}
	return nil
}

func applyKey(cfg *Config, key, value string) {
	switch key {
	case "data_path":
		cfg.DataPath = value
	case "read_only":
		cfg.ReadOnly = value == "true" || value == "1"
	case "buffer_pool_pages":
		if n, err := strconv.Atoi(value); err == nil {
			cfg.BufferPoolPages = n
		}
	case "locale":
		cfg.Locale = value
	case "log_level":
		cfg.LogLevel = value
	case "log_json":
		cfg.LogJSON = value == "true" || value == "1"
	}
}

var global *Manager

// Global returns the process-wide Manager, creating it on first use.
func Global() *Manager {
	if global == nil {
		global = NewManager()
	}
	return global
}
