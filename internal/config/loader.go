package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var userHomeDir = os.UserHomeDir

// GlobalDir is ~/.skinwell, or "" when no home directory is known.
func GlobalDir() string {
	home, err := userHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, DirName)
}

func defaultStorePath() string {
	if dir := GlobalDir(); dir != "" {
		return filepath.Join(dir, DefaultStoreFile)
	}
	return filepath.Join(DirName, DefaultStoreFile)
}

func LoadGlobalConfig() (RawConfig, bool, error) {
	path, ok := globalConfigPath()
	if !ok {
		return RawConfig{}, false, nil
	}
	return loadConfigFile(path)
}

func LoadProjectConfig(projectRoot string) (RawConfig, bool, error) {
	if projectRoot == "" {
		return RawConfig{}, false, nil
	}
	return loadConfigFile(projectConfigPath(projectRoot))
}

// LoadConfig reads global and project configs and returns the resolved config.
// Precedence per key: project > global > defaults.
func LoadConfig(projectRoot string) (ResolvedConfig, error) {
	globalCfg, _, err := LoadGlobalConfig()
	if err != nil {
		return ResolvedConfig{}, err
	}
	projectCfg, _, err := LoadProjectConfig(projectRoot)
	if err != nil {
		return ResolvedConfig{}, err
	}
	return ResolveConfig(projectCfg, globalCfg), nil
}

// loadConfigFile treats malformed files and unknown schema versions as absent.
func loadConfigFile(path string) (RawConfig, bool, error) {
	cfg, present, warning, err := loadConfigFileDetailed(path)
	if err != nil || warning != nil {
		return RawConfig{}, false, err
	}
	return cfg, present, nil
}

func loadConfigFileDetailed(path string) (RawConfig, bool, *LayerWarningKind, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, false, nil, nil
		}
		return RawConfig{}, false, nil, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))

	var cfg RawConfig
	if err := dec.Decode(&cfg); err != nil {
		return RawConfig{}, false, warningPtr(LayerWarningInvalidJSON), nil
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return RawConfig{}, false, warningPtr(LayerWarningInvalidJSON), nil
	}
	if !isSupportedSchemaVersion(cfg.SchemaVersion) {
		return RawConfig{}, false, warningPtr(LayerWarningUnsupportedSchema), nil
	}

	return cfg, true, nil, nil
}

func isSupportedSchemaVersion(version *int) bool {
	if version == nil {
		return true
	}
	return *version == SchemaVersion
}

func projectConfigPath(projectRoot string) string {
	if projectRoot == "" {
		return ""
	}
	return filepath.Join(projectRoot, DirName, FileName)
}

func globalConfigPath() (string, bool) {
	dir := GlobalDir()
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, FileName), true
}

// ProjectConfigPath is where `config init` writes the project layer.
func ProjectConfigPath(projectRoot string) string {
	return projectConfigPath(projectRoot)
}

// GlobalConfigPath is where `config init --global` writes.
func GlobalConfigPath() (string, bool) {
	return globalConfigPath()
}

func warningPtr(kind LayerWarningKind) *LayerWarningKind {
	return &kind
}
