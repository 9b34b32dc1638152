package config

import (
	"path/filepath"
	"testing"
)

func TestResolveSettingsPrecedenceAndSource(t *testing.T) {
	homeDir := withHome(t)
	projectDir := t.TempDir()

	writeConfig(t, filepath.Join(homeDir, ".skinwell", "config.json"), `{"schemaVersion":1,"chart":{"sizePx":600}}`)
	writeConfig(t, filepath.Join(projectDir, ".skinwell", "config.json"), `{"schemaVersion":1,"tui":{"mouse":false}}`)

	resolution, err := ResolveSettings(projectDir)
	if err != nil {
		t.Fatalf("resolve settings: %v", err)
	}

	assertAppliedInt(t, resolution, keyChartSizePx, 600, ConfigSourceGlobal)
	assertAppliedBool(t, resolution, keyTUIMouse, false, ConfigSourceLocal)
	assertAppliedBool(t, resolution, keyChartRounded, DefaultChartRounded, ConfigSourceDefault)
	if !resolution.Project.Present || !resolution.Global.Present {
		t.Fatalf("expected both layers present")
	}
}

func TestResolveSettingsWarnings(t *testing.T) {
	homeDir := withHome(t)
	projectDir := t.TempDir()

	writeConfig(t, filepath.Join(homeDir, ".skinwell", "config.json"), `not json`)
	writeConfig(t, filepath.Join(projectDir, ".skinwell", "config.json"),
		`{"schemaVersion":1,"chart":{"sizePx":5},"log":{"level":"loud"}}`)

	resolution, err := ResolveSettings(projectDir)
	if err != nil {
		t.Fatalf("resolve settings: %v", err)
	}
	if len(resolution.LayerWarnings) != 1 || resolution.LayerWarnings[0].Kind != LayerWarningInvalidJSON {
		t.Fatalf("layer warnings = %#v", resolution.LayerWarnings)
	}
	if resolution.LayerWarnings[0].Source != ConfigSourceGlobal {
		t.Fatalf("layer warning source = %s, want global", resolution.LayerWarnings[0].Source)
	}

	kinds := map[string]OptionWarning{}
	for _, w := range resolution.OptionWarnings {
		kinds[w.KeyPath] = w
	}
	size, ok := kinds[keyChartSizePx]
	if !ok || size.Kind != OptionWarningOutOfRange || size.ClampedInt == nil || *size.ClampedInt != MinChartSizePx {
		t.Fatalf("size warning = %#v", size)
	}
	if kinds[keyLogLevel].Kind != OptionWarningInvalidChoice {
		t.Fatalf("level warning = %#v", kinds[keyLogLevel])
	}
	assertAppliedInt(t, resolution, keyChartSizePx, MinChartSizePx, ConfigSourceLocal)
}

func TestResolveSettingsUnsupportedSchema(t *testing.T) {
	withHome(t)
	projectDir := t.TempDir()
	writeConfig(t, filepath.Join(projectDir, ".skinwell", "config.json"), `{"schemaVersion":9}`)

	resolution, err := ResolveSettings(projectDir)
	if err != nil {
		t.Fatalf("resolve settings: %v", err)
	}
	if len(resolution.LayerWarnings) != 1 || resolution.LayerWarnings[0].Kind != LayerWarningUnsupportedSchema {
		t.Fatalf("layer warnings = %#v", resolution.LayerWarnings)
	}
	if resolution.Project.Present {
		t.Fatalf("project present = true, want false")
	}
}

func assertAppliedInt(t *testing.T, resolution SettingsResolution, key string, want int, wantSource ConfigSource) {
	t.Helper()
	option, ok := resolution.Applied[key]
	if !ok {
		t.Fatalf("missing applied value for %s", key)
	}
	if option.Source != wantSource {
		t.Fatalf("applied source for %s = %s, want %s", key, option.Source, wantSource)
	}
	if option.Value.Int == nil || *option.Value.Int != want {
		t.Fatalf("applied value for %s = %v, want %d", key, option.Value.Int, want)
	}
}

func assertAppliedBool(t *testing.T, resolution SettingsResolution, key string, want bool, wantSource ConfigSource) {
	t.Helper()
	option, ok := resolution.Applied[key]
	if !ok {
		t.Fatalf("missing applied value for %s", key)
	}
	if option.Source != wantSource {
		t.Fatalf("applied source for %s = %s, want %s", key, option.Source, wantSource)
	}
	if option.Value.Bool == nil || *option.Value.Bool != want {
		t.Fatalf("applied value for %s = %v, want %t", key, option.Value.Bool, want)
	}
}
