package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/jsonc"
)

// Config is ~/.deskfolio/config.json. The file may contain comments and trailing commas.
type Config struct {
	// Theme is light|dark|auto. The prefs db wins once the user toggles in the TUI.
	Theme string `json:"theme,omitempty"`

	// Sidebar selects what a Finder sidebar click does: "switch" changes the folder
	// in place, "jump" closes the window and opens the folder's own window.
	Sidebar string `json:"sidebar,omitempty"`

	// CellWidth/CellHeight are the assumed pixel size of one terminal cell, used for
	// mobile/tablet/desktop classification.
	CellWidth  int `json:"cellWidth,omitempty"`
	CellHeight int `json:"cellHeight,omitempty"`

	// Catalog is an optional path to a catalog YAML replacing the embedded one.
	Catalog string `json:"catalog,omitempty"`

	// DeviceID is a stable per-machine identifier.
	DeviceID string `json:"deviceId,omitempty"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.deskfolio).
	if v := strings.TrimSpace(os.Getenv("DESKFOLIO_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".deskfolio"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(jsonc.ToJSON(b), &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

// SaveConfig writes the config as plain JSON. Comments in a hand-edited file are not
// preserved; the previous file is kept as config.json.bak.
func SaveConfig(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// EnsureDeviceID assigns and saves a device id on first use.
func EnsureDeviceID(cfg *Config) (string, error) {
	if cfg == nil {
		return "", errors.New("nil config")
	}
	if id := strings.TrimSpace(cfg.DeviceID); id != "" {
		return id, nil
	}
	cfg.DeviceID = uuid.NewString()
	if err := SaveConfig(cfg); err != nil {
		return "", err
	}
	return cfg.DeviceID, nil
}
