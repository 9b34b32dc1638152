package config

const (
	SchemaVersion = 1

	DirName  = ".skinwell"
	FileName = "config.json"

	DefaultStoreFile     = "skinwell.db"
	DefaultTUIMouse      = true
	DefaultChartRounded  = true
	DefaultChartSizePx   = 720
	DefaultLogLevel      = "info"
	DefaultServerAddress = "127.0.0.1:8742"

	MinChartSizePx = 240
	MaxChartSizePx = 2048
)

var logLevels = []string{"debug", "info", "warn", "error"}

type RawConfig struct {
	SchemaVersion *int       `json:"schemaVersion,omitempty"`
	Store         *RawStore  `json:"store,omitempty"`
	TUI           *RawTUI    `json:"tui,omitempty"`
	Chart         *RawChart  `json:"chart,omitempty"`
	Log           *RawLog    `json:"log,omitempty"`
	Server        *RawServer `json:"server,omitempty"`
}

type RawStore struct {
	Path *string `json:"path,omitempty"`
}

type RawTUI struct {
	Mouse *bool `json:"mouse,omitempty"`
}

type RawChart struct {
	Rounded *bool `json:"rounded,omitempty"`
	SizePx  *int  `json:"sizePx,omitempty"`
}

type RawLog struct {
	Level *string `json:"level,omitempty"`
	File  *string `json:"file,omitempty"`
}

type RawServer struct {
	ListenAddr *string `json:"listenAddr,omitempty"`
}

type ResolvedConfig struct {
	SchemaVersion int            `json:"schemaVersion"`
	Store         ResolvedStore  `json:"store"`
	TUI           ResolvedTUI    `json:"tui"`
	Chart         ResolvedChart  `json:"chart"`
	Log           ResolvedLog    `json:"log"`
	Server        ResolvedServer `json:"server"`
}

type ResolvedStore struct {
	Path string `json:"path"`
}

type ResolvedTUI struct {
	Mouse bool `json:"mouse"`
}

type ResolvedChart struct {
	Rounded bool `json:"rounded"`
	SizePx  int  `json:"sizePx"`
}

// ResolvedLog with an empty File disables logging.
type ResolvedLog struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type ResolvedServer struct {
	ListenAddr string `json:"listenAddr"`
}

func DefaultResolvedConfig() ResolvedConfig {
	return ResolvedConfig{
		SchemaVersion: SchemaVersion,
		Store: ResolvedStore{
			Path: defaultStorePath(),
		},
		TUI: ResolvedTUI{
			Mouse: DefaultTUIMouse,
		},
		Chart: ResolvedChart{
			Rounded: DefaultChartRounded,
			SizePx:  DefaultChartSizePx,
		},
		Log: ResolvedLog{
			Level: DefaultLogLevel,
		},
		Server: ResolvedServer{
			ListenAddr: DefaultServerAddress,
		},
	}
}
