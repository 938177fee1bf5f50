// Package config provides repository configuration management,
// reading and writing the rebasebot configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// RepoConfig represents the repository configuration
type RepoConfig struct {
	Remote    *string `json:"remote,omitempty"`
	Trunk     *string `json:"trunk,omitempty"`
	MaxPasses *int    `json:"maxPasses,omitempty"`
}

// configPath returns the location of the config file inside the repository
func configPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", ".rebasebot_config")
}

// GetRepoConfig reads the repository configuration.
// A missing file yields the zero config, not an error.
func GetRepoConfig(repoRoot string) (*RepoConfig, error) {
	data, err := os.ReadFile(configPath(repoRoot))
	if err != nil {
		return &RepoConfig{}, nil
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

// WriteRepoConfig writes the repository configuration
func WriteRepoConfig(repoRoot string, config *RepoConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal repo config: %w", err)
	}

	if err := os.WriteFile(configPath(repoRoot), data, 0644); err != nil {
		return fmt.Errorf("failed to write repo config: %w", err)
	}

	return nil
}

// GetRemote returns the configured remote name, or "origin" as default
func GetRemote(repoRoot string) (string, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return "", err
	}

	if config.Remote != nil && *config.Remote != "" {
		return *config.Remote, nil
	}

	return "origin", nil
}

// GetTrunk returns the configured trunk branch name, or "" when the default
// branch reported by the code host should be used
func GetTrunk(repoRoot string) (string, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return "", err
	}

	if config.Trunk != nil {
		return *config.Trunk, nil
	}

	return "", nil
}
