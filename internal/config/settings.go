package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type RawOptionValue struct {
	Int    *int
	Bool   *bool
	String *string
}

func (v RawOptionValue) set() int {
	n := 0
	if v.Int != nil {
		n++
	}
	if v.Bool != nil {
		n++
	}
	if v.String != nil {
		n++
	}
	return n
}

// Display renders the value for listings.
func (v RawOptionValue) Display() string {
	switch {
	case v.Int != nil:
		return fmt.Sprintf("%d", *v.Int)
	case v.Bool != nil:
		return fmt.Sprintf("%t", *v.Bool)
	case v.String != nil:
		if *v.String == "" {
			return `""`
		}
		return *v.String
	default:
		return ""
	}
}

// RawOptionValues extracts known raw option values from a config layer.
func RawOptionValues(cfg RawConfig) map[string]RawOptionValue {
	values := map[string]RawOptionValue{}

	if cfg.Store != nil && cfg.Store.Path != nil {
		values[keyStorePath] = RawOptionValue{String: copyString(*cfg.Store.Path)}
	}
	if cfg.TUI != nil && cfg.TUI.Mouse != nil {
		values[keyTUIMouse] = RawOptionValue{Bool: copyBool(*cfg.TUI.Mouse)}
	}
	if cfg.Chart != nil {
		if cfg.Chart.Rounded != nil {
			values[keyChartRounded] = RawOptionValue{Bool: copyBool(*cfg.Chart.Rounded)}
		}
		if cfg.Chart.SizePx != nil {
			values[keyChartSizePx] = RawOptionValue{Int: copyInt(*cfg.Chart.SizePx)}
		}
	}
	if cfg.Log != nil {
		if cfg.Log.Level != nil {
			values[keyLogLevel] = RawOptionValue{String: copyString(*cfg.Log.Level)}
		}
		if cfg.Log.File != nil {
			values[keyLogFile] = RawOptionValue{String: copyString(*cfg.Log.File)}
		}
	}
	if cfg.Server != nil && cfg.Server.ListenAddr != nil {
		values[keyServerListenAddr] = RawOptionValue{String: copyString(*cfg.Server.ListenAddr)}
	}

	return values
}

// SaveConfigValues writes the provided raw option values to disk.
// The file includes schemaVersion and only set keys; empty layers remove the file.
func SaveConfigValues(path string, values map[string]RawOptionValue) error {
	if path == "" {
		return errors.New("config path is empty")
	}

	cfg, hasValues, err := buildRawConfig(values)
	if err != nil {
		return err
	}
	if !hasValues {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove config %s: %w", path, err)
		}
		return nil
	}

	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	b = append(b, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := WriteFileAtomic(path, b, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func buildRawConfig(values map[string]RawOptionValue) (RawConfig, bool, error) {
	var cfg RawConfig
	hasValues := false

	for key, value := range values {
		switch value.set() {
		case 0:
			continue
		case 1:
		default:
			return RawConfig{}, false, fmt.Errorf("config key %q has more than one value", key)
		}

		switch key {
		case keyStorePath:
			if value.String == nil {
				return RawConfig{}, false, fmt.Errorf("config key %q expects string value", key)
			}
			cfg.Store = &RawStore{Path: copyString(*value.String)}
		case keyTUIMouse:
			if value.Bool == nil {
				return RawConfig{}, false, fmt.Errorf("config key %q expects bool value", key)
			}
			cfg.TUI = &RawTUI{Mouse: copyBool(*value.Bool)}
		case keyChartRounded:
			if value.Bool == nil {
				return RawConfig{}, false, fmt.Errorf("config key %q expects bool value", key)
			}
			if cfg.Chart == nil {
				cfg.Chart = &RawChart{}
			}
			cfg.Chart.Rounded = copyBool(*value.Bool)
		case keyChartSizePx:
			if value.Int == nil {
				return RawConfig{}, false, fmt.Errorf("config key %q expects int value", key)
			}
			if cfg.Chart == nil {
				cfg.Chart = &RawChart{}
			}
			cfg.Chart.SizePx = copyInt(*value.Int)
		case keyLogLevel, keyLogFile:
			if value.String == nil {
				return RawConfig{}, false, fmt.Errorf("config key %q expects string value", key)
			}
			if cfg.Log == nil {
				cfg.Log = &RawLog{}
			}
			if key == keyLogLevel {
				cfg.Log.Level = copyString(*value.String)
			} else {
				cfg.Log.File = copyString(*value.String)
			}
		case keyServerListenAddr:
			if value.String == nil {
				return RawConfig{}, false, fmt.Errorf("config key %q expects string value", key)
			}
			cfg.Server = &RawServer{ListenAddr: copyString(*value.String)}
		default:
			return RawConfig{}, false, fmt.Errorf("unknown config key %q", key)
		}
		hasValues = true
	}

	if !hasValues {
		return RawConfig{}, false, nil
	}
	version := SchemaVersion
	cfg.SchemaVersion = &version
	return cfg, true, nil
}

// DefaultOptionValues returns every option at its default, the content
// written by `config init`.
func DefaultOptionValues() map[string]RawOptionValue {
	values := map[string]RawOptionValue{}
	for _, option := range OptionRegistry() {
		values[option.KeyPath] = defaultOptionValue(option)
	}
	return values
}

func copyInt(v int) *int {
	return &v
}

func copyBool(v bool) *bool {
	return &v
}

func copyString(v string) *string {
	return &v
}
