package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveConfigValuesRoundTrip(t *testing.T) {
	withHome(t)
	projectDir := t.TempDir()
	path := ProjectConfigPath(projectDir)

	size := 512
	rounded := false
	level := "debug"
	values := map[string]RawOptionValue{
		keyChartSizePx:  {Int: &size},
		keyChartRounded: {Bool: &rounded},
		keyLogLevel:     {String: &level},
	}
	if err := SaveConfigValues(path, values); err != nil {
		t.Fatalf("save: %v", err)
	}

	cfg, present, err := LoadProjectConfig(projectDir)
	if err != nil || !present {
		t.Fatalf("load: present=%v err=%v", present, err)
	}
	if cfg.SchemaVersion == nil || *cfg.SchemaVersion != SchemaVersion {
		t.Fatalf("schemaVersion = %v", cfg.SchemaVersion)
	}
	got := RawOptionValues(cfg)
	if len(got) != 3 {
		t.Fatalf("values = %d, want 3", len(got))
	}
	if *got[keyChartSizePx].Int != 512 || *got[keyChartRounded].Bool || *got[keyLogLevel].String != "debug" {
		t.Fatalf("unexpected values %#v", got)
	}
}

func TestSaveConfigValuesEmptyRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".skinwell", "config.json")
	mouse := true
	if err := SaveConfigValues(path, map[string]RawOptionValue{keyTUIMouse: {Bool: &mouse}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := SaveConfigValues(path, map[string]RawOptionValue{}); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("stat err = %v, want not exist", err)
	}
}

func TestSaveConfigValuesRejectsBadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	n := 3
	b := true

	if err := SaveConfigValues(path, map[string]RawOptionValue{"nope": {Int: &n}}); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if err := SaveConfigValues(path, map[string]RawOptionValue{keyChartSizePx: {Bool: &b}}); err == nil {
		t.Fatalf("expected type error")
	}
	if err := SaveConfigValues(path, map[string]RawOptionValue{keyChartSizePx: {Int: &n, Bool: &b}}); err == nil {
		t.Fatalf("expected multiple value error")
	}
	if err := SaveConfigValues("", nil); err == nil {
		t.Fatalf("expected empty path error")
	}
}

func TestDefaultOptionValuesResolveToDefaults(t *testing.T) {
	withHome(t)
	projectDir := t.TempDir()
	if err := SaveConfigValues(ProjectConfigPath(projectDir), DefaultOptionValues()); err != nil {
		t.Fatalf("save defaults: %v", err)
	}
	resolved, err := LoadConfig(projectDir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if resolved != DefaultResolvedConfig() {
		t.Fatalf("resolved = %#v, want defaults", resolved)
	}
}

func TestRawOptionValueDisplay(t *testing.T) {
	n := 720
	b := false
	s := ""
	cases := []struct {
		value RawOptionValue
		want  string
	}{
		{RawOptionValue{Int: &n}, "720"},
		{RawOptionValue{Bool: &b}, "false"},
		{RawOptionValue{String: &s}, `""`},
		{RawOptionValue{}, ""},
	}
	for _, tc := range cases {
		if got := tc.value.Display(); got != tc.want {
			t.Fatalf("Display() = %q, want %q", got, tc.want)
		}
	}
}
