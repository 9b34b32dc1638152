package config

type ConfigSource string

const (
	ConfigSourceLocal   ConfigSource = "local"
	ConfigSourceGlobal  ConfigSource = "global"
	ConfigSourceDefault ConfigSource = "default"
)

type LayerWarningKind string

const (
	LayerWarningInvalidJSON       LayerWarningKind = "invalid_json"
	LayerWarningUnsupportedSchema LayerWarningKind = "unsupported_schema"
)

type OptionWarningKind string

const (
	OptionWarningOutOfRange    OptionWarningKind = "out_of_range"
	OptionWarningInvalidChoice OptionWarningKind = "invalid_choice"
)

type LayerWarning struct {
	Source ConfigSource
	Kind   LayerWarningKind
}

type OptionWarning struct {
	Source     ConfigSource
	KeyPath    string
	Kind       OptionWarningKind
	ClampedInt *int
}

type AppliedOption struct {
	Value  RawOptionValue
	Source ConfigSource
}

type SettingsLayer struct {
	Available bool
	Path      string
	Present   bool
	Values    map[string]RawOptionValue
}

type SettingsResolution struct {
	Project        SettingsLayer
	Global         SettingsLayer
	Applied        map[string]AppliedOption
	OptionWarnings []OptionWarning
	LayerWarnings  []LayerWarning
}

// ResolveSettings loads local/global config values and computes applied values with warnings.
func ResolveSettings(projectRoot string) (SettingsResolution, error) {
	projectLayer, projectRaw, projectWarning, err := loadLayer(projectRoot != "", projectConfigPath(projectRoot))
	if err != nil {
		return SettingsResolution{}, err
	}
	globalPath, globalAvailable := globalConfigPath()
	globalLayer, globalRaw, globalWarning, err := loadLayer(globalAvailable, globalPath)
	if err != nil {
		return SettingsResolution{}, err
	}

	var layerWarnings []LayerWarning
	if projectWarning != nil {
		layerWarnings = append(layerWarnings, LayerWarning{Source: ConfigSourceLocal, Kind: *projectWarning})
	}
	if globalWarning != nil {
		layerWarnings = append(layerWarnings, LayerWarning{Source: ConfigSourceGlobal, Kind: *globalWarning})
	}

	resolvedValues := ResolvedOptionValues(ResolveConfig(projectRaw, globalRaw))

	applied := map[string]AppliedOption{}
	for _, option := range OptionRegistry() {
		key := option.KeyPath
		value, ok := resolvedValues[key]
		if !ok {
			value = defaultOptionValue(option)
		}
		source := ConfigSourceDefault
		if _, ok := projectLayer.Values[key]; ok {
			source = ConfigSourceLocal
		} else if _, ok := globalLayer.Values[key]; ok {
			source = ConfigSourceGlobal
		}
		applied[key] = AppliedOption{
			Value:  value,
			Source: source,
		}
	}

	optionWarnings := append(
		collectOptionWarnings(ConfigSourceLocal, projectLayer.Values),
		collectOptionWarnings(ConfigSourceGlobal, globalLayer.Values)...,
	)

	return SettingsResolution{
		Project:        projectLayer,
		Global:         globalLayer,
		Applied:        applied,
		OptionWarnings: optionWarnings,
		LayerWarnings:  layerWarnings,
	}, nil
}

func loadLayer(available bool, path string) (SettingsLayer, RawConfig, *LayerWarningKind, error) {
	layer := SettingsLayer{
		Available: available,
		Path:      path,
		Values:    map[string]RawOptionValue{},
	}
	if !available {
		return layer, RawConfig{}, nil, nil
	}
	cfg, present, warning, err := loadConfigFileDetailed(path)
	if err != nil {
		return SettingsLayer{}, RawConfig{}, nil, err
	}
	if warning != nil || !present {
		return layer, RawConfig{}, warning, nil
	}
	layer.Present = true
	layer.Values = RawOptionValues(cfg)
	return layer, cfg, nil, nil
}

func ResolvedOptionValues(cfg ResolvedConfig) map[string]RawOptionValue {
	return map[string]RawOptionValue{
		keyStorePath:        {String: copyString(cfg.Store.Path)},
		keyTUIMouse:         {Bool: copyBool(cfg.TUI.Mouse)},
		keyChartRounded:     {Bool: copyBool(cfg.Chart.Rounded)},
		keyChartSizePx:      {Int: copyInt(cfg.Chart.SizePx)},
		keyLogLevel:         {String: copyString(cfg.Log.Level)},
		keyLogFile:          {String: copyString(cfg.Log.File)},
		keyServerListenAddr: {String: copyString(cfg.Server.ListenAddr)},
	}
}

func defaultOptionValue(option OptionMetadata) RawOptionValue {
	switch option.Type {
	case OptionTypeInt:
		return RawOptionValue{Int: copyInt(option.DefaultInt)}
	case OptionTypeString:
		return RawOptionValue{String: copyString(option.DefaultString)}
	default:
		return RawOptionValue{Bool: copyBool(option.DefaultBool)}
	}
}

func collectOptionWarnings(source ConfigSource, values map[string]RawOptionValue) []OptionWarning {
	warnings := []OptionWarning{}
	for key, value := range values {
		switch {
		case value.Int != nil && key == keyChartSizePx:
			clamped := clampInt(*value.Int, MinChartSizePx, MaxChartSizePx)
			if clamped != *value.Int {
				warnings = append(warnings, OptionWarning{
					Source:     source,
					KeyPath:    key,
					Kind:       OptionWarningOutOfRange,
					ClampedInt: copyInt(clamped),
				})
			}
		case value.String != nil && key == keyLogLevel:
			if _, ok := normalizeLogLevel(value.String); !ok {
				warnings = append(warnings, OptionWarning{
					Source:  source,
					KeyPath: key,
					Kind:    OptionWarningInvalidChoice,
				})
			}
		}
	}
	return warnings
}
