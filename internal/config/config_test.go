package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", cfg.Version, CurrentVersion)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Server.Addr() != "localhost:8000" {
		t.Errorf("Server.Addr() = %q, want %q", cfg.Server.Addr(), "localhost:8000")
	}
	if len(cfg.Server.CorsOrigins) != 1 || cfg.Server.CorsOrigins[0] != "*" {
		t.Errorf("Server.CorsOrigins = %v, want [*]", cfg.Server.CorsOrigins)
	}

	// Initial snapshot values
	snap := cfg.Snapshot
	if snap.Health != 85 || snap.Security != 92 || snap.Maintainability != 78 {
		t.Errorf("Snapshot scores = %d/%d/%d, want 85/92/78", snap.Health, snap.Security, snap.Maintainability)
	}
	if snap.IssuesOpen != 23 || snap.IssuesFixed != 142 {
		t.Errorf("Snapshot issues = %d/%d, want 23/142", snap.IssuesOpen, snap.IssuesFixed)
	}
	if snap.Complexity != "O(n)" {
		t.Errorf("Snapshot.Complexity = %q, want %q", snap.Complexity, "O(n)")
	}

	if cfg.Analysis.MaxCodeBytes != 1<<20 {
		t.Errorf("Analysis.MaxCodeBytes = %d, want %d", cfg.Analysis.MaxCodeBytes, 1<<20)
	}

	if !cfg.Journal.Enabled || cfg.Journal.Path != ":memory:" {
		t.Errorf("Journal = %+v, want enabled in-memory", cfg.Journal)
	}

	// Auth is opt-in
	if cfg.Auth.Enabled {
		t.Error("Auth should be disabled by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfig_ValidateIsDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Snapshot.Health = 0
	cfg.Snapshot.Security = 0
	cfg.Snapshot.Maintainability = 0

	for i := 0; i < 50; i++ {
		err := cfg.Validate()
		cfgErr, ok := err.(*ConfigError)
		if !ok || cfgErr.Field != "snapshot.health" {
			t.Fatalf("run %d: Validate() = %v, want snapshot.health every time", i, err)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unsupported version", func(c *Config) { c.Version = 0 }, "version"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"json log format", func(c *Config) { c.Logging.Format = "json" }, ""},
		{"zero code limit", func(c *Config) { c.Analysis.MaxCodeBytes = 0 }, "analysis.maxCodeBytes"},
		{"negative analysis latency", func(c *Config) { c.Analysis.SimulatedLatencyMs = -1 }, "analysis.simulatedLatencyMs"},
		{"negative chat latency", func(c *Config) { c.Chat.SimulatedLatencyMs = -1 }, "chat.simulatedLatencyMs"},
		{"health below floor", func(c *Config) { c.Snapshot.Health = 5 }, "snapshot.health"},
		{"security above ceiling", func(c *Config) { c.Snapshot.Security = 101 }, "snapshot.security"},
		{"maintainability out of range", func(c *Config) { c.Snapshot.Maintainability = 0 }, "snapshot.maintainability"},
		{"every score out of range", func(c *Config) {
			c.Snapshot.Health = 0
			c.Snapshot.Security = 0
			c.Snapshot.Maintainability = 0
		}, "snapshot.health"},
		{"security and maintainability out of range", func(c *Config) {
			c.Snapshot.Security = 200
			c.Snapshot.Maintainability = 200
		}, "snapshot.security"},
		{"negative issues", func(c *Config) { c.Snapshot.IssuesFixed = -1 }, "snapshot.issues"},
		{"auth without hash", func(c *Config) { c.Auth.Enabled = true }, "auth.tokenHash"},
		{"auth with hash", func(c *Config) {
			c.Auth.Enabled = true
			c.Auth.TokenHash = "$2a$10$abc"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() returned unexpected error: %v", err)
				}
				return
			}

			cfgErr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("Validate() error type = %T, want *ConfigError", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.wantField)
			}
		})
	}
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{
		Field:   "version",
		Message: "unsupported config version",
	}

	got := err.Error()
	want := "config error in field 'version': unsupported config version"

	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLoadConfig_Default(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d (default)", cfg.Version, CurrentVersion)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Snapshot.IssuesFixed != 142 {
		t.Errorf("Snapshot.IssuesFixed = %d, want 142", cfg.Snapshot.IssuesFixed)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json",
			file: "config.json",
			content: `{
				"version": 1,
				"server": {"port": 9100, "corsOrigins": ["http://localhost:3000"]},
				"journal": {"enabled": false},
				"analysis": {"maxCodeBytes": 2048}
			}`,
		},
		{
			name: "toml",
			file: "config.toml",
			content: `version = 1

[server]
port = 9100
corsOrigins = ["http://localhost:3000"]

[journal]
enabled = false

[analysis]
maxCodeBytes = 2048
`,
		},
		{
			name: "yaml",
			file: "config.yaml",
			content: `version: 1
server:
  port: 9100
  corsOrigins:
    - http://localhost:3000
journal:
  enabled: false
analysis:
  maxCodeBytes: 2048
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			dir := filepath.Join(tmpDir, DirName)
			if err := os.MkdirAll(dir, 0755); err != nil {
				t.Fatalf("Failed to create %s dir: %v", DirName, err)
			}
			if err := os.WriteFile(filepath.Join(dir, tt.file), []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}

			cfg, err := LoadConfig(tmpDir)
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}

			if cfg.Server.Port != 9100 {
				t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
			}
			if len(cfg.Server.CorsOrigins) != 1 || cfg.Server.CorsOrigins[0] != "http://localhost:3000" {
				t.Errorf("Server.CorsOrigins = %v", cfg.Server.CorsOrigins)
			}
			if cfg.Journal.Enabled {
				t.Error("Journal should be disabled per config")
			}
			if cfg.Analysis.MaxCodeBytes != 2048 {
				t.Errorf("Analysis.MaxCodeBytes = %d, want 2048", cfg.Analysis.MaxCodeBytes)
			}

			// Keys absent from the file keep their defaults
			if cfg.Server.Host != "localhost" {
				t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
			}
			if cfg.Snapshot.Health != 85 {
				t.Errorf("Snapshot.Health = %d, want default 85", cfg.Snapshot.Health)
			}
		})
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, DirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(tmpDir); err == nil {
		t.Error("LoadConfig() should fail on malformed config")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "port override",
			envVars: map[string]string{"LUMINA_SERVER_PORT": "9200"},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Server.Port != 9200 {
					t.Errorf("Server.Port = %d, want 9200", cfg.Server.Port)
				}
			},
		},
		{
			name:    "logging level override",
			envVars: map[string]string{"LUMINA_LOGGING_LEVEL": "debug"},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
				}
			},
		},
		{
			name: "multiple overrides",
			envVars: map[string]string{
				"LUMINA_JOURNAL_ENABLED": "false",
				"LUMINA_AUTH_ENABLED":    "true",
				"LUMINA_AUTH_TOKENHASH":  "hash",
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Journal.Enabled {
					t.Error("Journal.Enabled should be false")
				}
				if !cfg.Auth.Enabled || cfg.Auth.TokenHash != "hash" {
					t.Errorf("Auth = %+v, want enabled with hash", cfg.Auth)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig(t.TempDir())
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			tt.validate(t, cfg)
		})
	}
}

func TestConfig_Save(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Server.Port = 9300
	cfg.Chat.RulesFile = "rules.toml"

	if err := cfg.Save(tmpDir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(Path(tmpDir))
	if err != nil {
		t.Fatalf("Config file was not created: %v", err)
	}
	if !strings.Contains(string(data), "[server]") {
		t.Errorf("saved config is not TOML:\n%s", data)
	}

	loaded, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig() after save error = %v", err)
	}

	if loaded.Server.Port != 9300 {
		t.Errorf("Loaded Server.Port = %d, want 9300", loaded.Server.Port)
	}
	if loaded.Chat.RulesFile != "rules.toml" {
		t.Errorf("Loaded Chat.RulesFile = %q, want %q", loaded.Chat.RulesFile, "rules.toml")
	}
	if loaded.Snapshot.Complexity != "O(n)" {
		t.Errorf("Loaded Snapshot.Complexity = %q, want %q", loaded.Snapshot.Complexity, "O(n)")
	}
}
