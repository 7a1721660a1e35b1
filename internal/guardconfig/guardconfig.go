// Package guardconfig loads configuration from the TOML file, environment
// variables, and CLI flags, merging them with CLI > env > file > defaults
// precedence (spec.md §3/§6). It never fails the process on a bad config
// file — errors fall back to defaults and are reported through the
// diagnostic logger, per spec.md §7.
package guardconfig

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/victorarias/guardrails/internal/rule"
)

// Config is the fully merged, effective configuration for one run.
type Config struct {
	SafetyLevel    rule.Severity
	AuditLog       bool
	AuditPath      string
	Wrappers       []string
	BlockVariableCommands bool
	BlockPipeToShell      bool
	ProtectedPatterns     []string

	AuditMaxSizeMB   int
	AuditMaxBackups  int
	AuditMaxAgeDays  int
	LogLevel         string

	AllowlistPath string
	Disabled      bool
	WarnOnly      bool
	DryRun        bool
}

// fileConfig is the raw TOML shape, per SPEC_FULL.md §6.
type fileConfig struct {
	General struct {
		SafetyLevel     string `toml:"safety_level"`
		AuditLog        *bool  `toml:"audit_log"`
		AuditPath       string `toml:"audit_path"`
		AuditMaxSizeMB  int    `toml:"audit_max_size_mb"`
		AuditMaxBackups int    `toml:"audit_max_backups"`
		AuditMaxAgeDays int    `toml:"audit_max_age_days"`
	} `toml:"general"`
	Bash struct {
		Wrappers              []string `toml:"wrappers"`
		BlockVariableCommands *bool    `toml:"block_variable_commands"`
		BlockPipeToShell      *bool    `toml:"block_pipe_to_shell"`
	} `toml:"bash"`
	Files struct {
		ProtectedPatterns []string `toml:"protected_patterns"`
	} `toml:"files"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".claude", "guardrails")
}

// DefaultConfigPath returns ~/.claude/guardrails/config.toml.
func DefaultConfigPath() string {
	return filepath.Join(defaultConfigDir(), "config.toml")
}

// DefaultAllowlistPath returns ~/.claude/guardrails/allow.toml.
func DefaultAllowlistPath() string {
	return filepath.Join(defaultConfigDir(), "allow.toml")
}

// defaults returns the built-in defaults, applied before any file/env/CLI
// layer is merged in.
func defaults() Config {
	return Config{
		SafetyLevel:      rule.High,
		AuditLog:         true,
		AuditPath:        filepath.Join(defaultConfigDir(), "audit.log"),
		Wrappers:         nil,
		BlockVariableCommands: true,
		BlockPipeToShell:      true,
		AuditMaxSizeMB:   10,
		AuditMaxBackups:  5,
		AuditMaxAgeDays:  30,
		LogLevel:         "warn",
		AllowlistPath:    DefaultAllowlistPath(),
	}
}

// CLIOverrides carries the subset of flags cmd/guardrails parses; zero values
// mean "not set" (flags that need a true zero, like --dry-run, use bools
// defaulting false and are only ever additive).
type CLIOverrides struct {
	ConfigPath   string
	SafetyLevel  string
	DryRun       bool
	DryRunSet    bool
}

// Load builds the effective Config: defaults, then the TOML file (if it
// exists and parses), then environment variables, then CLI overrides.
func Load(cli CLIOverrides, logger zerolog.Logger) Config {
	cfg := defaults()

	configPath := cli.ConfigPath
	if configPath == "" {
		configPath = os.Getenv("GUARDRAILS_CONFIG")
	}
	if configPath == "" {
		configPath = DefaultConfigPath()
	}

	if data, err := os.ReadFile(configPath); err == nil {
		var fc fileConfig
		if _, decErr := toml.Decode(string(data), &fc); decErr != nil {
			logger.Warn().Err(decErr).Str("path", configPath).Msg("config file is not valid TOML, using defaults")
		} else {
			applyFileConfig(&cfg, fc)
		}
	} else if !os.IsNotExist(err) {
		logger.Warn().Err(err).Str("path", configPath).Msg("could not read config file, using defaults")
	}

	applyEnv(&cfg)

	if cli.SafetyLevel != "" {
		if lvl, ok := rule.ParseSeverity(cli.SafetyLevel); ok {
			cfg.SafetyLevel = lvl
		} else {
			logger.Warn().Str("value", cli.SafetyLevel).Msg("unrecognized --safety-level, keeping current value")
		}
	}
	if cli.DryRunSet {
		cfg.DryRun = cli.DryRun
	}

	return cfg
}

func applyFileConfig(cfg *Config, fc fileConfig) {
	if fc.General.SafetyLevel != "" {
		if lvl, ok := rule.ParseSeverity(fc.General.SafetyLevel); ok {
			cfg.SafetyLevel = lvl
		}
	}
	if fc.General.AuditLog != nil {
		cfg.AuditLog = *fc.General.AuditLog
	}
	if fc.General.AuditPath != "" {
		cfg.AuditPath = fc.General.AuditPath
	}
	if fc.General.AuditMaxSizeMB > 0 {
		cfg.AuditMaxSizeMB = fc.General.AuditMaxSizeMB
	}
	if fc.General.AuditMaxBackups > 0 {
		cfg.AuditMaxBackups = fc.General.AuditMaxBackups
	}
	if fc.General.AuditMaxAgeDays > 0 {
		cfg.AuditMaxAgeDays = fc.General.AuditMaxAgeDays
	}
	if len(fc.Bash.Wrappers) > 0 {
		cfg.Wrappers = fc.Bash.Wrappers
	}
	if fc.Bash.BlockVariableCommands != nil {
		cfg.BlockVariableCommands = *fc.Bash.BlockVariableCommands
	}
	if fc.Bash.BlockPipeToShell != nil {
		cfg.BlockPipeToShell = *fc.Bash.BlockPipeToShell
	}
	if len(fc.Files.ProtectedPatterns) > 0 {
		cfg.ProtectedPatterns = fc.Files.ProtectedPatterns
	}
	if fc.Log.Level != "" {
		cfg.LogLevel = fc.Log.Level
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GUARDRAILS_DISABLED"); v != "" {
		cfg.Disabled = truthy(v)
	}
	if v := os.Getenv("GUARDRAILS_WARN_ONLY"); v != "" {
		cfg.WarnOnly = truthy(v)
	}
	if v := os.Getenv("GUARDRAILS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func truthy(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return v == "1"
	}
	return b
}
