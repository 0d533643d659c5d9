package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const configDirName = ".navcard"

// GlobalConfig holds machine-wide preferences, outside any store directory.
type GlobalConfig struct {
	// CurrentStore, when set, points commands at a store directory without
	// needing --dir or NAVCARD_DIR.
	CurrentStore string `json:"currentStore,omitempty"`

	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// ShowURLs renders URLs inline in tree rows for pages cards.
	ShowURLs bool `json:"showUrls,omitempty"`
}

// ConfigDir resolves the global config directory. NAVCARD_CONFIG_HOME
// overrides the default under the home directory (handy in tests).
func ConfigDir() (string, error) {
	if env := strings.TrimSpace(os.Getenv("NAVCARD_CONFIG_HOME")); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName), nil
}

func configPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadGlobalConfig is best effort: a missing or unreadable file yields the
// zero config.
func LoadGlobalConfig() (*GlobalConfig, error) {
	path, err := configPath()
	if err != nil {
		return &GlobalConfig{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return &GlobalConfig{}, nil
	}
	return &cfg, nil
}

func SaveGlobalConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(dir, "config.json"), b)
}
