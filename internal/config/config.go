package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// CurrentVersion is the config schema version this build understands.
const CurrentVersion = 1

// DirName is the per-project directory holding config, logs and data.
const DirName = ".lumina"

// FileName is the config file base name; the extension selects the format.
const FileName = "config"

// EnvPrefix prefixes environment overrides, e.g. LUMINA_SERVER_PORT.
const EnvPrefix = "LUMINA"

// Config represents the complete Lumina configuration
type Config struct {
	Version int `json:"version" toml:"version" yaml:"version" mapstructure:"version"`

	Server   ServerConfig   `json:"server" toml:"server" yaml:"server" mapstructure:"server"`
	Logging  LoggingConfig  `json:"logging" toml:"logging" yaml:"logging" mapstructure:"logging"`
	Analysis AnalysisConfig `json:"analysis" toml:"analysis" yaml:"analysis" mapstructure:"analysis"`
	Snapshot SnapshotConfig `json:"snapshot" toml:"snapshot" yaml:"snapshot" mapstructure:"snapshot"`
	Chat     ChatConfig     `json:"chat" toml:"chat" yaml:"chat" mapstructure:"chat"`
	Journal  JournalConfig  `json:"journal" toml:"journal" yaml:"journal" mapstructure:"journal"`
	Auth     AuthConfig     `json:"auth" toml:"auth" yaml:"auth" mapstructure:"auth"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string   `json:"host" toml:"host" yaml:"host" mapstructure:"host"`
	Port            int      `json:"port" toml:"port" yaml:"port" mapstructure:"port"`
	ReadTimeoutSec  int      `json:"readTimeoutSec" toml:"readTimeoutSec" yaml:"readTimeoutSec" mapstructure:"readTimeoutSec"`
	WriteTimeoutSec int      `json:"writeTimeoutSec" toml:"writeTimeoutSec" yaml:"writeTimeoutSec" mapstructure:"writeTimeoutSec"`
	IdleTimeoutSec  int      `json:"idleTimeoutSec" toml:"idleTimeoutSec" yaml:"idleTimeoutSec" mapstructure:"idleTimeoutSec"`
	CorsOrigins     []string `json:"corsOrigins" toml:"corsOrigins" yaml:"corsOrigins" mapstructure:"corsOrigins"`
	Compress        bool     `json:"compress" toml:"compress" yaml:"compress" mapstructure:"compress"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format     string `json:"format" toml:"format" yaml:"format" mapstructure:"format"` // human or json
	Level      string `json:"level" toml:"level" yaml:"level" mapstructure:"level"`
	File       string `json:"file" toml:"file" yaml:"file" mapstructure:"file"` // empty writes to stderr
	MaxSize    string `json:"maxSize" toml:"maxSize" yaml:"maxSize" mapstructure:"maxSize"`
	MaxBackups int    `json:"maxBackups" toml:"maxBackups" yaml:"maxBackups" mapstructure:"maxBackups"`
}

// AnalysisConfig contains host-side limits around the analysis engine
type AnalysisConfig struct {
	SimulatedLatencyMs int `json:"simulatedLatencyMs" toml:"simulatedLatencyMs" yaml:"simulatedLatencyMs" mapstructure:"simulatedLatencyMs"`
	MaxCodeBytes       int `json:"maxCodeBytes" toml:"maxCodeBytes" yaml:"maxCodeBytes" mapstructure:"maxCodeBytes"`
}

// SnapshotConfig seeds the project snapshot at start-up
type SnapshotConfig struct {
	Health          int    `json:"health" toml:"health" yaml:"health" mapstructure:"health"`
	Security        int    `json:"security" toml:"security" yaml:"security" mapstructure:"security"`
	Maintainability int    `json:"maintainability" toml:"maintainability" yaml:"maintainability" mapstructure:"maintainability"`
	IssuesOpen      int    `json:"issuesOpen" toml:"issuesOpen" yaml:"issuesOpen" mapstructure:"issuesOpen"`
	IssuesFixed     int    `json:"issuesFixed" toml:"issuesFixed" yaml:"issuesFixed" mapstructure:"issuesFixed"`
	Complexity      string `json:"complexity" toml:"complexity" yaml:"complexity" mapstructure:"complexity"`
}

// ChatConfig contains canned chat responder settings
type ChatConfig struct {
	SimulatedLatencyMs int    `json:"simulatedLatencyMs" toml:"simulatedLatencyMs" yaml:"simulatedLatencyMs" mapstructure:"simulatedLatencyMs"`
	RulesFile          string `json:"rulesFile" toml:"rulesFile" yaml:"rulesFile" mapstructure:"rulesFile"`
}

// JournalConfig contains analysis journal settings
type JournalConfig struct {
	Enabled      bool   `json:"enabled" toml:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Path         string `json:"path" toml:"path" yaml:"path" mapstructure:"path"` // ":memory:" keeps it in-process
	HistoryLimit int    `json:"historyLimit" toml:"historyLimit" yaml:"historyLimit" mapstructure:"historyLimit"`
}

// AuthConfig contains bearer-token settings for mutating endpoints
type AuthConfig struct {
	Enabled   bool   `json:"enabled" toml:"enabled" yaml:"enabled" mapstructure:"enabled"`
	TokenHash string `json:"tokenHash" toml:"tokenHash" yaml:"tokenHash" mapstructure:"tokenHash"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8000,
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 15,
			IdleTimeoutSec:  60,
			CorsOrigins:     []string{"*"},
			Compress:        true,
		},
		Logging: LoggingConfig{
			Format:     "human",
			Level:      "info",
			MaxBackups: 3,
		},
		Analysis: AnalysisConfig{
			SimulatedLatencyMs: 0,
			MaxCodeBytes:       1 << 20,
		},
		Snapshot: SnapshotConfig{
			Health:          85,
			Security:        92,
			Maintainability: 78,
			IssuesOpen:      23,
			IssuesFixed:     142,
			Complexity:      "O(n)",
		},
		Chat: ChatConfig{
			SimulatedLatencyMs: 0,
		},
		Journal: JournalConfig{
			Enabled:      true,
			Path:         ":memory:",
			HistoryLimit: 50,
		},
		Auth: AuthConfig{
			Enabled: false,
		},
	}
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// setDefaults registers every default with viper so that env overrides work
// for keys absent from the config file.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.readTimeoutSec", d.Server.ReadTimeoutSec)
	v.SetDefault("server.writeTimeoutSec", d.Server.WriteTimeoutSec)
	v.SetDefault("server.idleTimeoutSec", d.Server.IdleTimeoutSec)
	v.SetDefault("server.corsOrigins", d.Server.CorsOrigins)
	v.SetDefault("server.compress", d.Server.Compress)

	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.maxSize", d.Logging.MaxSize)
	v.SetDefault("logging.maxBackups", d.Logging.MaxBackups)

	v.SetDefault("analysis.simulatedLatencyMs", d.Analysis.SimulatedLatencyMs)
	v.SetDefault("analysis.maxCodeBytes", d.Analysis.MaxCodeBytes)

	v.SetDefault("snapshot.health", d.Snapshot.Health)
	v.SetDefault("snapshot.security", d.Snapshot.Security)
	v.SetDefault("snapshot.maintainability", d.Snapshot.Maintainability)
	v.SetDefault("snapshot.issuesOpen", d.Snapshot.IssuesOpen)
	v.SetDefault("snapshot.issuesFixed", d.Snapshot.IssuesFixed)
	v.SetDefault("snapshot.complexity", d.Snapshot.Complexity)

	v.SetDefault("chat.simulatedLatencyMs", d.Chat.SimulatedLatencyMs)
	v.SetDefault("chat.rulesFile", d.Chat.RulesFile)

	v.SetDefault("journal.enabled", d.Journal.Enabled)
	v.SetDefault("journal.path", d.Journal.Path)
	v.SetDefault("journal.historyLimit", d.Journal.HistoryLimit)

	v.SetDefault("auth.enabled", d.Auth.Enabled)
	v.SetDefault("auth.tokenHash", d.Auth.TokenHash)
}

// LoadConfig loads configuration from <root>/.lumina/config.{json,toml,yaml}.
// A missing file yields the defaults; LUMINA_* environment variables
// override both.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigName(FileName)
	v.AddConfigPath(filepath.Join(root, DirName))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}

// Path returns the TOML config path written by Save.
func Path(root string) string {
	return filepath.Join(root, DirName, FileName+".toml")
}

// Save writes the configuration to <root>/.lumina/config.toml
func (c *Config) Save(root string) error {
	path := Path(root)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "must be between 0 and 65535"}
	}
	switch c.Logging.Format {
	case "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be 'human' or 'json'"}
	}
	if c.Analysis.MaxCodeBytes <= 0 {
		return &ConfigError{Field: "analysis.maxCodeBytes", Message: "must be positive"}
	}
	if c.Analysis.SimulatedLatencyMs < 0 {
		return &ConfigError{Field: "analysis.simulatedLatencyMs", Message: "must not be negative"}
	}
	if c.Chat.SimulatedLatencyMs < 0 {
		return &ConfigError{Field: "chat.simulatedLatencyMs", Message: "must not be negative"}
	}
	scores := []struct {
		field string
		value int
	}{
		{"snapshot.health", c.Snapshot.Health},
		{"snapshot.security", c.Snapshot.Security},
		{"snapshot.maintainability", c.Snapshot.Maintainability},
	}
	for _, sc := range scores {
		if sc.value < 10 || sc.value > 100 {
			return &ConfigError{Field: sc.field, Message: "must be between 10 and 100"}
		}
	}
	if c.Snapshot.IssuesOpen < 0 || c.Snapshot.IssuesFixed < 0 {
		return &ConfigError{Field: "snapshot.issues", Message: "must not be negative"}
	}
	if c.Auth.Enabled && c.Auth.TokenHash == "" {
		return &ConfigError{Field: "auth.tokenHash", Message: "required when auth is enabled"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
