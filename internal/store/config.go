package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configFileName = "config.json"
	logFileName    = "scriptpad.log"

	// DefaultRunTimeout bounds a single script run unless the config says otherwise.
	DefaultRunTimeout = 5 * time.Second
)

type GlobalConfig struct {
	// StoreDir overrides the default store directory (~/.scriptpad/store).
	StoreDir string `json:"storeDir,omitempty"`

	// RunTimeoutMs bounds script execution. Zero means DefaultRunTimeout; negative disables the bound.
	RunTimeoutMs int `json:"runTimeoutMs,omitempty"`

	// LogFile is where the diagnostic log goes. "off" disables logging.
	LogFile string `json:"logFile,omitempty"`

	// TUI holds optional user preferences for the interactive screen.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Theme is one of: light|dark|auto.
	Theme string `json:"theme,omitempty"`
	// Glyphs selects the glyph set ("unicode", "ascii").
	Glyphs string `json:"glyphs,omitempty"`
}

// RunTimeout resolves the configured script timeout. A zero result means unbounded.
func (c *GlobalConfig) RunTimeout() time.Duration {
	if c == nil || c.RunTimeoutMs == 0 {
		return DefaultRunTimeout
	}
	if c.RunTimeoutMs < 0 {
		return 0
	}
	return time.Duration(c.RunTimeoutMs) * time.Millisecond
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.scriptpad).
	if v := strings.TrimSpace(os.Getenv("SCRIPTPAD_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".scriptpad"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// DefaultLogPath is the log file used when neither the flag nor the config names one.
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, logFileName), nil
}

// DefaultDir resolves the store directory: config storeDir, else <configDir>/store.
func DefaultDir(cfg *GlobalConfig) (string, error) {
	if cfg != nil && strings.TrimSpace(cfg.StoreDir) != "" {
		return filepath.Clean(strings.TrimSpace(cfg.StoreDir)), nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "store"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
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
		return nil, err
	}
	return &cfg, nil
}

func SaveConfig(cfg *GlobalConfig) error {
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
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
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
