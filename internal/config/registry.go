package config

type OptionType string

const (
	OptionTypeBool   OptionType = "bool"
	OptionTypeInt    OptionType = "int"
	OptionTypeString OptionType = "string"
)

const (
	keyStorePath        = "store.path"
	keyTUIMouse         = "tui.mouse"
	keyChartRounded     = "chart.rounded"
	keyChartSizePx      = "chart.sizePx"
	keyLogLevel         = "log.level"
	keyLogFile          = "log.file"
	keyServerListenAddr = "server.listenAddr"
)

type IntBounds struct {
	Min int
	Max int
}

type OptionMetadata struct {
	KeyPath       string
	DisplayName   string
	Type          OptionType
	DefaultInt    int
	DefaultBool   bool
	DefaultString string
	Bounds        *IntBounds
	Choices       []string
	Description   string
}

// OptionRegistry returns the known config options in display order.
func OptionRegistry() []OptionMetadata {
	defaults := DefaultResolvedConfig()

	return []OptionMetadata{
		newStringOption(keyStorePath, "Store Path", defaults.Store.Path, nil,
			"SQLite database holding sessions and assessments"),
		newBoolOption(keyTUIMouse, "TUI Mouse", defaults.TUI.Mouse,
			"Capture mouse clicks on the chart"),
		newBoolOption(keyChartRounded, "Chart Rounded Corners", defaults.Chart.Rounded,
			"Fillet wedge corners"),
		newIntOption(keyChartSizePx, "Chart Size (px)", defaults.Chart.SizePx, MinChartSizePx, MaxChartSizePx,
			"Rendered SVG width in pixels"),
		newStringOption(keyLogLevel, "Log Level", defaults.Log.Level, logLevels,
			"Minimum level written to the log file"),
		newStringOption(keyLogFile, "Log File", defaults.Log.File, nil,
			"Log file path; empty disables logging"),
		newStringOption(keyServerListenAddr, "Server Listen Address", defaults.Server.ListenAddr, nil,
			"Address for skinwell serve"),
	}
}

func newIntOption(keyPath string, displayName string, defaultValue int, min int, max int, description string) OptionMetadata {
	return OptionMetadata{
		KeyPath:     keyPath,
		DisplayName: displayName,
		Type:        OptionTypeInt,
		DefaultInt:  defaultValue,
		Bounds: &IntBounds{
			Min: min,
			Max: max,
		},
		Description: description,
	}
}

func newBoolOption(keyPath string, displayName string, defaultValue bool, description string) OptionMetadata {
	return OptionMetadata{
		KeyPath:     keyPath,
		DisplayName: displayName,
		Type:        OptionTypeBool,
		DefaultBool: defaultValue,
		Description: description,
	}
}

func newStringOption(keyPath string, displayName string, defaultValue string, choices []string, description string) OptionMetadata {
	return OptionMetadata{
		KeyPath:       keyPath,
		DisplayName:   displayName,
		Type:          OptionTypeString,
		DefaultString: defaultValue,
		Choices:       choices,
		Description:   description,
	}
}
