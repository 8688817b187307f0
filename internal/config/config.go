package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Role constants for worker pools. Telecaller, HR and Sales workers are
// interchangeable within their pool; Manager is the elevated role.
const (
	RoleTelecaller = "telecaller"
	RoleHR         = "hr"
	RoleSales      = "sales"
	RoleManager    = "manager"
)

// Config represents the flat HRM configuration holding the local actor identity.
type Config struct {
	Version  string `json:"version"`
	ActorID  int64  `json:"actor_id"`
	Role     string `json:"role"` // "telecaller", "hr", "sales" or "manager"
	DBPath   string `json:"db_path,omitempty"`
	Nickname string `json:"nickname,omitempty"`
}

// ValidRole reports whether role is one of the known pool tags.
func ValidRole(role string) bool {
	switch role {
	case RoleTelecaller, RoleHR, RoleSales, RoleManager:
		return true
	}
	return false
}

// IsElevated returns true if the role may reassign leads and edit
// identity-like fields.
func IsElevated(role string) bool {
	return role == RoleManager
}

// LoadConfig reads .hrm/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".hrm", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	hrmDir := filepath.Join(dir, ".hrm")
	if err := os.MkdirAll(hrmDir, 0755); err != nil {
		return fmt.Errorf("failed to create .hrm dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(hrmDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
