package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/societymind/somind/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify somind configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/somind/config.yaml
Project-specific overrides can be placed in .somind.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	fmt.Printf("model.api_key: %s\n", config.MaskAPIKey(cfg.Model.APIKey))
	fmt.Printf("model.name: %s\n", cfg.Model.Name)
	fmt.Printf("model.temperature: %g\n", cfg.Model.Temperature)
	fmt.Printf("model.max_tokens: %d\n", cfg.Model.MaxTokens)
	fmt.Printf("model.timeout_seconds: %d\n", cfg.Model.TimeoutSeconds)
	fmt.Printf("teams.max_inner_teams: %d\n", cfg.Teams.MaxInnerTeams)
	fmt.Printf("teams.max_agents_per_team: %d\n", cfg.Teams.MaxAgentsPerTeam)
	fmt.Printf("gate.mode: %s\n", cfg.Gate.Mode)
	fmt.Printf("gate.dir: %s\n", cfg.Gate.Dir)
	fmt.Printf("gate.timeout_seconds: %d\n", cfg.Gate.TimeoutSeconds)
	fmt.Printf("limits.max_processing_seconds: %d\n", cfg.Limits.MaxProcessingSeconds)
	fmt.Printf("limits.max_coordination_seconds: %d\n", cfg.Limits.MaxCoordinationSeconds)
	fmt.Printf("results.dir: %s\n", cfg.Results.Dir)
	fmt.Printf("state.enabled: %t\n", cfg.State.Enabled)
	fmt.Printf("state.path: %s\n", cfg.StatePath())
	fmt.Printf("logging.debug_file: %s\n", cfg.Logging.DebugFile)
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "model.api_key":
		return fmt.Sprintf("%s (%s)", config.MaskAPIKey(cfg.Model.APIKey), config.GetAPIKeySource(cfg)), nil
	case "model.name":
		return cfg.Model.Name, nil
	case "model.temperature":
		return strconv.FormatFloat(cfg.Model.Temperature, 'g', -1, 64), nil
	case "model.max_tokens":
		return strconv.Itoa(cfg.Model.MaxTokens), nil
	case "model.timeout_seconds":
		return strconv.Itoa(cfg.Model.TimeoutSeconds), nil
	case "teams.max_inner_teams":
		return strconv.Itoa(cfg.Teams.MaxInnerTeams), nil
	case "teams.max_agents_per_team":
		return strconv.Itoa(cfg.Teams.MaxAgentsPerTeam), nil
	case "gate.mode":
		return cfg.Gate.Mode, nil
	case "gate.dir":
		return cfg.Gate.Dir, nil
	case "gate.timeout_seconds":
		return strconv.Itoa(cfg.Gate.TimeoutSeconds), nil
	case "limits.max_processing_seconds":
		return strconv.Itoa(cfg.Limits.MaxProcessingSeconds), nil
	case "limits.max_coordination_seconds":
		return strconv.Itoa(cfg.Limits.MaxCoordinationSeconds), nil
	case "results.dir":
		return cfg.Results.Dir, nil
	case "state.enabled":
		return strconv.FormatBool(cfg.State.Enabled), nil
	case "state.path":
		return cfg.StatePath(), nil
	case "logging.debug_file":
		return cfg.Logging.DebugFile, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "model.api_key":
		cfg.Model.APIKey = value
	case "model.name":
		cfg.Model.Name = value
	case "model.temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid temperature %q: %w", value, err)
		}
		cfg.Model.Temperature = f
	case "model.max_tokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid max_tokens %q: %w", value, err)
		}
		cfg.Model.MaxTokens = n
	case "model.timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", value, err)
		}
		cfg.Model.TimeoutSeconds = n
	case "teams.max_inner_teams":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid max_inner_teams %q: %w", value, err)
		}
		cfg.Teams.MaxInnerTeams = n
	case "teams.max_agents_per_team":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid max_agents_per_team %q: %w", value, err)
		}
		cfg.Teams.MaxAgentsPerTeam = n
	case "gate.mode":
		switch value {
		case config.GateModeAuto, config.GateModeConsole, config.GateModeFile:
			cfg.Gate.Mode = value
		default:
			return fmt.Errorf("invalid gate mode %q: must be auto, console, or file", value)
		}
	case "gate.dir":
		cfg.Gate.Dir = value
	case "gate.timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", value, err)
		}
		cfg.Gate.TimeoutSeconds = n
	case "limits.max_processing_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid max_processing_seconds %q: %w", value, err)
		}
		cfg.Limits.MaxProcessingSeconds = n
	case "limits.max_coordination_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid max_coordination_seconds %q: %w", value, err)
		}
		cfg.Limits.MaxCoordinationSeconds = n
	case "results.dir":
		cfg.Results.Dir = value
	case "state.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid state.enabled %q: %w", value, err)
		}
		cfg.State.Enabled = b
	case "state.path":
		cfg.State.Path = value
	case "logging.debug_file":
		cfg.Logging.DebugFile = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
