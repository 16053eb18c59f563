// Package config handles configuration loading and management for somind.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete somind configuration.
type Config struct {
	Model   ModelConfig   `mapstructure:"model"`
	Teams   TeamsConfig   `mapstructure:"teams"`
	Gate    GateConfig    `mapstructure:"gate"`
	Limits  LimitsConfig  `mapstructure:"limits"`
	Results ResultsConfig `mapstructure:"results"`
	State   StateConfig   `mapstructure:"state"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ModelConfig contains language-model backend settings.
type ModelConfig struct {
	// APIKey authenticates against the model provider. Required at startup.
	APIKey string `mapstructure:"api_key"`
	// Name is the model identifier passed to the provider.
	Name string `mapstructure:"name"`
	// Temperature controls sampling randomness.
	Temperature float64 `mapstructure:"temperature"`
	// MaxTokens caps the response length per completion.
	MaxTokens int `mapstructure:"max_tokens"`
	// TimeoutSeconds bounds a single model call.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// Timeout returns the per-call timeout as a duration.
func (m ModelConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// TeamsConfig bounds the shape of the organization.
type TeamsConfig struct {
	// MaxInnerTeams is the most inner teams a run may execute.
	MaxInnerTeams int `mapstructure:"max_inner_teams"`
	// MaxAgentsPerTeam is the most agents any single team may hold.
	MaxAgentsPerTeam int `mapstructure:"max_agents_per_team"`
}

// GateConfig controls human intervention gates.
type GateConfig struct {
	// Mode selects the responder: auto, console, or file.
	Mode string `mapstructure:"mode"`
	// Dir is the exchange directory used by the file responder.
	Dir string `mapstructure:"dir"`
	// TimeoutSeconds is how long a gate waits for a human response
	// before applying the default decision.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// Timeout returns the gate wait as a duration.
func (g GateConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// LimitsConfig bounds workflow phases.
type LimitsConfig struct {
	// MaxProcessingSeconds bounds a single inner team's execution.
	MaxProcessingSeconds int `mapstructure:"max_processing_seconds"`
	// MaxCoordinationSeconds bounds the outer coordination phase.
	MaxCoordinationSeconds int `mapstructure:"max_coordination_seconds"`
}

// ProcessingTimeout returns the per-team bound as a duration.
func (l LimitsConfig) ProcessingTimeout() time.Duration {
	return time.Duration(l.MaxProcessingSeconds) * time.Second
}

// CoordinationTimeout returns the coordination bound as a duration.
func (l LimitsConfig) CoordinationTimeout() time.Duration {
	return time.Duration(l.MaxCoordinationSeconds) * time.Second
}

// ResultsConfig controls where run artifacts are written.
type ResultsConfig struct {
	// Dir is the directory for demo result JSON files.
	Dir string `mapstructure:"dir"`
}

// StateConfig controls the run-history store.
type StateConfig struct {
	// Enabled toggles persistence of run history to SQLite.
	Enabled bool `mapstructure:"enabled"`
	// Path is the SQLite database file. Empty means the XDG default.
	Path string `mapstructure:"path"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	// DebugFile receives verbose engine logs when set.
	DebugFile string `mapstructure:"debug_file"`
}

// Gate modes accepted by Validate.
const (
	GateModeAuto    = "auto"
	GateModeConsole = "console"
	GateModeFile    = "file"
)

// Load reads configuration from all sources and returns the merged config.
// Priority (highest to lowest): env vars, project config, user config, defaults.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Environment variables override everything
	v.SetEnvPrefix("SOMIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	// User config: ~/.config/somind/config.yaml
	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	// Read user config (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Project config: .somind.yaml in current directory or parents
	projectConfig := findProjectConfig()
	if projectConfig != "" {
		v.SetConfigFile(projectConfig)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("reading project config %s: %w", projectConfig, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Model.APIKey = expandEnv(cfg.Model.APIKey)
	return &cfg, nil
}

// LoadFromPath loads configuration from a specific file path.
// Used primarily for testing.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Model.APIKey = expandEnv(cfg.Model.APIKey)
	return &cfg, nil
}

// bindLegacyEnv maps the historical flat environment names onto their
// config keys so both SOMIND_* and the original names work.
func bindLegacyEnv(v *viper.Viper) {
	v.BindEnv("model.api_key", "SOMIND_MODEL_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("model.name", "SOMIND_MODEL_NAME", "MODEL_NAME")
	v.BindEnv("model.timeout_seconds", "SOMIND_MODEL_TIMEOUT_SECONDS", "DEFAULT_TIMEOUT")
	v.BindEnv("teams.max_inner_teams", "SOMIND_TEAMS_MAX_INNER_TEAMS", "MAX_INNER_TEAMS")
	v.BindEnv("teams.max_agents_per_team", "SOMIND_TEAMS_MAX_AGENTS_PER_TEAM", "MAX_AGENTS_PER_TEAM")
	v.BindEnv("gate.timeout_seconds", "SOMIND_GATE_TIMEOUT_SECONDS", "HUMAN_INTERVENTION_TIMEOUT")
	v.BindEnv("limits.max_processing_seconds", "SOMIND_LIMITS_MAX_PROCESSING_SECONDS", "MAX_PROCESSING_TIME")
	v.BindEnv("limits.max_coordination_seconds", "SOMIND_LIMITS_MAX_COORDINATION_SECONDS", "MAX_COORDINATION_TIME")
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Model defaults
	v.SetDefault("model.name", "gpt-4-turbo-preview")
	v.SetDefault("model.temperature", 0.1)
	v.SetDefault("model.max_tokens", 2000)
	v.SetDefault("model.timeout_seconds", 120)

	// Team shape defaults
	v.SetDefault("teams.max_inner_teams", 5)
	v.SetDefault("teams.max_agents_per_team", 10)

	// Gate defaults
	v.SetDefault("gate.mode", GateModeAuto)
	v.SetDefault("gate.dir", filepath.Join(".somind", "gate"))
	v.SetDefault("gate.timeout_seconds", 300)

	// Phase limits
	v.SetDefault("limits.max_processing_seconds", 300)
	v.SetDefault("limits.max_coordination_seconds", 180)

	// Artifact locations
	v.SetDefault("results.dir", ".")
	v.SetDefault("state.enabled", true)
	v.SetDefault("state.path", "")

	// Logging
	v.SetDefault("logging.debug_file", "")
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Model.APIKey == "" {
		return fmt.Errorf("model API key is required: set SOMIND_MODEL_API_KEY or OPENAI_API_KEY, or model.api_key in config")
	}
	if c.Teams.MaxInnerTeams < 1 {
		return fmt.Errorf("teams.max_inner_teams must be at least 1, got %d", c.Teams.MaxInnerTeams)
	}
	if c.Teams.MaxAgentsPerTeam < 1 {
		return fmt.Errorf("teams.max_agents_per_team must be at least 1, got %d", c.Teams.MaxAgentsPerTeam)
	}
	switch c.Gate.Mode {
	case GateModeAuto, GateModeConsole, GateModeFile:
	default:
		return fmt.Errorf("gate.mode must be one of auto, console, file; got %q", c.Gate.Mode)
	}
	if c.Gate.TimeoutSeconds < 1 {
		return fmt.Errorf("gate.timeout_seconds must be at least 1, got %d", c.Gate.TimeoutSeconds)
	}
	return nil
}

// StatePath returns the configured state database path, falling back to
// the XDG data directory when unset.
func (c *Config) StatePath() string {
	if c.State.Path != "" {
		return expandEnv(c.State.Path)
	}
	return filepath.Join(getUserDataDir(), "somind.db")
}

// Save writes the configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(userConfigDir, "config.yaml"))

	v.Set("model", cfg.Model)
	v.Set("teams", cfg.Teams)
	v.Set("gate", cfg.Gate)
	v.Set("limits", cfg.Limits)
	v.Set("results", cfg.Results)
	v.Set("state", cfg.State)
	v.Set("logging", cfg.Logging)

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Name:           "gpt-4-turbo-preview",
			Temperature:    0.1,
			MaxTokens:      2000,
			TimeoutSeconds: 120,
		},
		Teams: TeamsConfig{
			MaxInnerTeams:    5,
			MaxAgentsPerTeam: 10,
		},
		Gate: GateConfig{
			Mode:           GateModeAuto,
			Dir:            filepath.Join(".somind", "gate"),
			TimeoutSeconds: 300,
		},
		Limits: LimitsConfig{
			MaxProcessingSeconds:   300,
			MaxCoordinationSeconds: 180,
		},
		Results: ResultsConfig{
			Dir: ".",
		},
		State: StateConfig{
			Enabled: true,
		},
	}
}

// getUserConfigDir returns the user configuration directory for somind.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/somind.
func getUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "somind")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".somind"
	}
	return filepath.Join(home, ".config", "somind")
}

// getUserDataDir returns the user data directory for somind.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share/somind.
func getUserDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "somind")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".somind"
	}
	return filepath.Join(home, ".local", "share", "somind")
}

// findProjectConfig looks for .somind.yaml in the current directory
// and parent directories up to the filesystem root.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(dir, ".somind.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string using the environment.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}
