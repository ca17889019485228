package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultStudioBaseURL = "http://127.0.0.1:8000"

type CoreConfig struct {
	Studio  CoreStudioConfig  `toml:"studio"`
	Logging CoreLoggingConfig `toml:"logging"`
}

type CoreStudioConfig struct {
	BaseURL   string `toml:"base_url"`
	TokenPath string `toml:"token_path"`
}

type CoreLoggingConfig struct {
	Level string `toml:"level"`
}

type UIConfig struct {
	StartCollapsed bool                `toml:"start_collapsed"`
	Keybindings    UIKeybindingsConfig `toml:"keybindings"`
}

type UIKeybindingsConfig struct {
	Path string `toml:"path"`
}

func DefaultCoreConfig() CoreConfig {
	return CoreConfig{
		Studio: CoreStudioConfig{
			BaseURL: defaultStudioBaseURL,
		},
		Logging: CoreLoggingConfig{
			Level: "info",
		},
	}
}

func LoadCoreConfig() (CoreConfig, error) {
	path, err := CoreConfigPath()
	if err != nil {
		return CoreConfig{}, err
	}
	return loadCoreConfigFromPath(path)
}

// StudioBaseURL returns the studio API base URL without a trailing slash.
// A bare host:port gains an http scheme.
func (c CoreConfig) StudioBaseURL() string {
	raw := strings.TrimSpace(c.Studio.BaseURL)
	if raw == "" {
		return defaultStudioBaseURL
	}
	raw = strings.TrimRight(raw, "/")
	if raw == "" {
		return defaultStudioBaseURL
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	return raw
}

func (c CoreConfig) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

// ResolveTokenPath returns the configured token file path, falling back to
// the default location under the data directory.
func (c CoreConfig) ResolveTokenPath() (string, error) {
	path := strings.TrimSpace(c.Studio.TokenPath)
	if path == "" {
		return TokenPath()
	}
	return resolveConfigPath(path)
}

func DefaultUIConfig() UIConfig {
	return UIConfig{}
}

func LoadUIConfig() (UIConfig, error) {
	path, err := UIConfigPath()
	if err != nil {
		return UIConfig{}, err
	}
	return loadUIConfigFromPath(path)
}

func (c UIConfig) ResolveKeybindingsPath() (string, error) {
	defaultPath, err := KeybindingsPath()
	if err != nil {
		return "", err
	}
	path := strings.TrimSpace(c.Keybindings.Path)
	if path == "" {
		return defaultPath, nil
	}
	path, err = resolveConfigPath(path)
	if err != nil {
		return "", err
	}
	return path, nil
}

func loadCoreConfigFromPath(path string) (CoreConfig, error) {
	cfg := DefaultCoreConfig()
	if err := readTOML(path, &cfg); err != nil {
		return CoreConfig{}, err
	}
	return cfg, nil
}

func loadUIConfigFromPath(path string) (UIConfig, error) {
	cfg := DefaultUIConfig()
	if err := readTOML(path, &cfg); err != nil {
		return UIConfig{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

func resolveConfigPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, path), nil
}
