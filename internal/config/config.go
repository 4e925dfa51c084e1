package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// AgentConfig holds coding-agent CLI configuration.
type AgentConfig struct {
	Command     string   `toml:"command"`     // agent binary, default "claude"
	Args        []string `toml:"args"`        // extra args passed on every invocation
	Concurrency int      `toml:"concurrency"` // default fan-out limit
}

// LLMConfig holds chat-completion endpoint configuration used for
// commit-message and PR-description generation.
type LLMConfig struct {
	BaseURL  string `toml:"base_url"`  // e.g. "https://api.openai.com/v1"
	Model    string `toml:"model"`     // model name sent in the request body
	TokenEnv string `toml:"token_env"` // env var holding the bearer token
}

// VaultConfig holds Azure Key Vault configuration for secret import.
type VaultConfig struct {
	Name   string `toml:"name"`   // key vault name passed to az --vault-name
	Prefix string `toml:"prefix"` // only import secrets with this prefix
}

// Config holds the dx configuration.
type Config struct {
	RepoDir string      `toml:"repo_dir"` // directory scanned by dx status
	Agent   AgentConfig `toml:"agent"`
	LLM     LLMConfig   `toml:"llm"`
	Vault   VaultConfig `toml:"vault"`
}

// DefaultConcurrency is the fan-out limit used when the config doesn't set one.
const DefaultConcurrency = 5

// Default returns the default configuration.
func Default() Config {
	return Config{
		Agent: AgentConfig{
			Command:     "claude",
			Concurrency: DefaultConcurrency,
		},
		LLM: LLMConfig{
			TokenEnv: "DX_LLM_TOKEN",
		},
	}
}

// ValidatePath checks that the path is absolute or starts with ~.
// Returns an error if the path is relative (like "." or "..").
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// configPath returns the path to the config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "dx", "config.toml"), nil
}

// Load reads config from ~/.config/dx/config.toml.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse parses TOML config data, applying defaults for unset fields.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidatePath(cfg.RepoDir, "repo_dir"); err != nil {
		return Default(), err
	}

	// Expand ~ in repo_dir (shell doesn't expand in config files)
	if cfg.RepoDir != "" {
		expanded, err := ExpandPath(cfg.RepoDir)
		if err != nil {
			return Default(), fmt.Errorf("expand repo_dir: %w", err)
		}
		cfg.RepoDir = expanded
	}

	if cfg.Agent.Command == "" {
		return Default(), fmt.Errorf("agent.command must not be empty")
	}
	if cfg.Agent.Concurrency < 1 {
		return Default(), fmt.Errorf("agent.concurrency must be at least 1, got %d", cfg.Agent.Concurrency)
	}
	if cfg.LLM.TokenEnv == "" {
		cfg.LLM.TokenEnv = "DX_LLM_TOKEN"
	}

	return cfg, nil
}

// Token returns the bearer token for the LLM endpoint from the configured
// environment variable. Empty when unset.
func (c *LLMConfig) Token() string {
	return os.Getenv(c.TokenEnv)
}
