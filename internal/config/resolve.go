package config

import (
	"slices"
	"strings"
)

// ResolveConfig merges project/global configs with built-in defaults.
// Precedence per key: project > global > defaults, then clamp ints to bounds.
func ResolveConfig(project RawConfig, global RawConfig) ResolvedConfig {
	defaults := DefaultResolvedConfig()

	storePath := resolveString(
		valueFromStore(project), valueFromStore(global),
		defaults.Store.Path,
	)
	mouse := resolveBool(
		valueFromTUI(project), valueFromTUI(global),
		defaults.TUI.Mouse,
	)
	rounded := resolveBool(
		valueFromChart(project, func(c RawChart) *bool { return c.Rounded }),
		valueFromChart(global, func(c RawChart) *bool { return c.Rounded }),
		defaults.Chart.Rounded,
	)
	sizePx := resolveIntWithBounds(
		valueFromChartInt(project, func(c RawChart) *int { return c.SizePx }),
		valueFromChartInt(global, func(c RawChart) *int { return c.SizePx }),
		defaults.Chart.SizePx,
		MinChartSizePx,
		MaxChartSizePx,
	)
	level := resolveLogLevel(
		valueFromLog(project, func(l RawLog) *string { return l.Level }),
		valueFromLog(global, func(l RawLog) *string { return l.Level }),
		defaults.Log.Level,
	)
	logFile := resolveString(
		valueFromLog(project, func(l RawLog) *string { return l.File }),
		valueFromLog(global, func(l RawLog) *string { return l.File }),
		defaults.Log.File,
	)
	listenAddr := resolveString(
		valueFromServer(project), valueFromServer(global),
		defaults.Server.ListenAddr,
	)

	return ResolvedConfig{
		SchemaVersion: SchemaVersion,
		Store:         ResolvedStore{Path: storePath},
		TUI:           ResolvedTUI{Mouse: mouse},
		Chart: ResolvedChart{
			Rounded: rounded,
			SizePx:  sizePx,
		},
		Log: ResolvedLog{
			Level: level,
			File:  logFile,
		},
		Server: ResolvedServer{ListenAddr: listenAddr},
	}
}

func valueFromStore(cfg RawConfig) *string {
	if cfg.Store == nil {
		return nil
	}
	return cfg.Store.Path
}

func valueFromTUI(cfg RawConfig) *bool {
	if cfg.TUI == nil {
		return nil
	}
	return cfg.TUI.Mouse
}

func valueFromChart(cfg RawConfig, pick func(RawChart) *bool) *bool {
	if cfg.Chart == nil {
		return nil
	}
	return pick(*cfg.Chart)
}

func valueFromChartInt(cfg RawConfig, pick func(RawChart) *int) *int {
	if cfg.Chart == nil {
		return nil
	}
	return pick(*cfg.Chart)
}

func valueFromLog(cfg RawConfig, pick func(RawLog) *string) *string {
	if cfg.Log == nil {
		return nil
	}
	return pick(*cfg.Log)
}

func valueFromServer(cfg RawConfig) *string {
	if cfg.Server == nil {
		return nil
	}
	return cfg.Server.ListenAddr
}

func resolveLogLevel(projectVal *string, globalVal *string, defaultVal string) string {
	if level, ok := normalizeLogLevel(projectVal); ok {
		return level
	}
	if level, ok := normalizeLogLevel(globalVal); ok {
		return level
	}
	return defaultVal
}

func normalizeLogLevel(value *string) (string, bool) {
	if value == nil {
		return "", false
	}
	level := strings.ToLower(strings.TrimSpace(*value))
	if slices.Contains(logLevels, level) {
		return level, true
	}
	return "", false
}

func resolveString(projectVal *string, globalVal *string, defaultVal string) string {
	if value := normalizeString(projectVal); value != "" {
		return value
	}
	if value := normalizeString(globalVal); value != "" {
		return value
	}
	return defaultVal
}

func resolveBool(projectVal *bool, globalVal *bool, defaultVal bool) bool {
	if projectVal != nil {
		return *projectVal
	}
	if globalVal != nil {
		return *globalVal
	}
	return defaultVal
}

func resolveIntWithBounds(projectVal *int, globalVal *int, defaultVal int, min int, max int) int {
	if projectVal != nil {
		return clampInt(*projectVal, min, max)
	}
	if globalVal != nil {
		return clampInt(*globalVal, min, max)
	}
	return clampInt(defaultVal, min, max)
}

func clampInt(value int, min int, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func normalizeString(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
