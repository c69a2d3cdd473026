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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DataPath != "jetdb.accdb" {
		t.Errorf("Expected DataPath 'jetdb.accdb', got %s", cfg.DataPath)
	}
	if cfg.ReadOnly {
		t.Error("Expected ReadOnly false by default")
	}
	if cfg.BufferPoolPages != 256 {
		t.Errorf("Expected BufferPoolPages 256, got %d", cfg.BufferPoolPages)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel 'info', got %s", cfg.LogLevel)
	}
	if cfg.LogJSON {
		t.Error("Expected LogJSON false by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid default", func(c *Config) {}, false},
		{"empty data path", func(c *Config) { c.DataPath = "" }, true},
		{"zero buffer pool", func(c *Config) { c.BufferPoolPages = 0 }, true},
		{"negative buffer pool", func(c *Config) { c.BufferPoolPages = -1 }, true},
		{"invalid log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"warning alias accepted", func(c *Config) { c.LogLevel = "warning" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigString(t *testing.T) {
	cfg := DefaultConfig()
	s := cfg.String()
	if !strings.Contains(s, "jetdb.accdb") {
		t.Errorf("Expected String() to contain data path, got: %s", s)
	}
}

func TestConfigToTOML(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Locale = "en_US"
	toml := cfg.ToTOML()

	for _, want := range []string{"data_path", "read_only", "buffer_pool_pages", "locale", "log_level", "log_json", "en_US"} {
		if !strings.Contains(toml, want) {
			t.Errorf("Expected ToTOML() to contain %q, got: %s", want, toml)
		}
	}
}

func TestConfigSaveAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "jetdb.conf")

	cfg := DefaultConfig()
	cfg.DataPath = "/data/accounts.accdb"
	cfg.BufferPoolPages = 1024
	cfg.Locale = "en_US"

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	mgr := NewManager()
	if err := mgr.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	got := mgr.Get()
	if got.DataPath != "/data/accounts.accdb" {
		t.Errorf("Expected DataPath '/data/accounts.accdb', got %s", got.DataPath)
	}
	if got.BufferPoolPages != 1024 {
		t.Errorf("Expected BufferPoolPages 1024, got %d", got.BufferPoolPages)
	}
	if got.Locale != "en_US" {
		t.Errorf("Expected Locale 'en_US', got %s", got.Locale)
	}
}

func TestConfigLoadFromFileMissing(t *testing.T) {
	mgr := NewManager()
	if err := mgr.LoadFromFile(filepath.Join(t.TempDir(), "missing.conf")); err == nil {
		t.Error("Expected error loading a missing config file")
	}
}

func TestConfigLoadFromEnv(t *testing.T) {
	t.Setenv(EnvDataPath, "/env/path.mdb")
	t.Setenv(EnvReadOnly, "true")
	t.Setenv(EnvBufferPoolPages, "42")
	t.Setenv(EnvLocale, "fr_FR")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogJSON, "1")

	mgr := NewManager()
	mgr.LoadFromEnv()
	cfg := mgr.Get()

	if cfg.DataPath != "/env/path.mdb" {
		t.Errorf("Expected DataPath from env, got %s", cfg.DataPath)
	}
	if !cfg.ReadOnly {
		t.Error("Expected ReadOnly true from env")
	}
	if cfg.BufferPoolPages != 42 {
		t.Errorf("Expected BufferPoolPages 42, got %d", cfg.BufferPoolPages)
	}
	if cfg.Locale != "fr_FR" {
		t.Errorf("Expected Locale 'fr_FR', got %s", cfg.Locale)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel 'debug', got %s", cfg.LogLevel)
	}
	if !cfg.LogJSON {
		t.Error("Expected LogJSON true from env")
	}
}

func TestManagerReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jetdb.conf")

	if err := os.WriteFile(path, []byte("data_path = \"/first.accdb\"\n"), 0o644); err != nil {
		t.Fatalf("failed to seed config file: %v", err)
	}

	mgr := NewManager()
	if err := mgr.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	var reloaded *Config
	mgr.OnReload(func(c *Config) { reloaded = c })

	if err := os.WriteFile(path, []byte("data_path = \"/second.accdb\"\n"), 0o644); err != nil {
		t.Fatalf("failed to rewrite config file: %v", err)
	}
	if err := mgr.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	if mgr.Get().DataPath != "/second.accdb" {
		t.Errorf("Expected DataPath '/second.accdb' after reload, got %s", mgr.Get().DataPath)
	}
	if reloaded == nil || reloaded.DataPath != "/second.accdb" {
		t.Error("Expected OnReload callback to observe the reloaded config")
	}
}

func TestManagerReloadWithoutFile(t *testing.T) {
	mgr := NewManager()
	if err := mgr.Reload(); err == nil {
		t.Error("Expected Reload to fail when the manager was never loaded from a file")
	}
}

func TestGlobalManager(t *testing.T) {
	g1 := Global()
	g2 := Global()
	if g1 != g2 {
		t.Error("Expected Global() to return the same Manager instance")
	}
}
