// Package settings manages persistent user settings for the netwalker CLI.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds persistent user preferences
type Settings struct {
	// ConfigPath is the run configuration used when --config is not specified
	ConfigPath string `json:"config_path,omitempty"`

	// ExportDir overrides the default CSV export directory
	ExportDir string `json:"export_dir,omitempty"`

	// StorePath overrides the default SQLite store location
	StorePath string `json:"store_path,omitempty"`
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "netwalker_settings.json"
	}
	return filepath.Join(home, ".netwalker", "settings.json")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty settings if file doesn't exist
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetExportDir returns the export directory (with fallback)
func (s *Settings) GetExportDir() string {
	if s.ExportDir != "" {
		return s.ExportDir
	}
	return "netwalker-out"
}

// GetStorePath returns the SQLite store path (with fallback)
func (s *Settings) GetStorePath() string {
	if s.StorePath != "" {
		return s.StorePath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "netwalker.db"
	}
	return filepath.Join(home, ".netwalker", "netwalker.db")
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}
