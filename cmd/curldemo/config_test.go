package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/curl"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "curldemo.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(nil)
	if err != nil {
		t.Fatalf("parseConfig() error = %v", err)
	}
	if cfg != defaultConfig() {
		t.Errorf("parseConfig() = %+v, want defaults", cfg)
	}
	if cfg.viewMode() != curl.DoublePage {
		t.Errorf("viewMode() = %v, want double", cfg.viewMode())
	}
	if cfg.interval() != 16*time.Millisecond {
		t.Errorf("interval() = %v", cfg.interval())
	}
}

func TestParseConfigFileAndFlags(t *testing.T) {
	path := writeConfig(t, `
width = 640
height = 480
mode = "single"
pages = 3
background = "#102030"
lang = "de"
`)
	cfg, err := parseConfig([]string{"-config", path, "-width", "320", "-v"})
	if err != nil {
		t.Fatalf("parseConfig() error = %v", err)
	}
	if cfg.Width != 320 {
		t.Errorf("Width = %d, want flag value 320", cfg.Width)
	}
	if cfg.Height != 480 || cfg.Pages != 3 || cfg.Background != "#102030" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.language().String() != "de" {
		t.Errorf("language() = %v, want de", cfg.language())
	}
	if cfg.viewMode() != curl.SinglePage {
		t.Errorf("viewMode() = %v, want single", cfg.viewMode())
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
	if cfg.Frames != defaultConfig().Frames {
		t.Errorf("Frames = %d, want default", cfg.Frames)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args func(t *testing.T) []string
	}{
		{"bad mode", func(*testing.T) []string { return []string{"-mode", "triple"} }},
		{"zero width", func(*testing.T) []string { return []string{"-width", "0"} }},
		{"no pages", func(*testing.T) []string { return []string{"-pages", "0"} }},
		{"negative frames", func(*testing.T) []string { return []string{"-frames", "-1"} }},
		{"bad language", func(*testing.T) []string { return []string{"-lang", "not a tag"} }},
		{"missing file", func(t *testing.T) []string {
			return []string{"-config", filepath.Join(t.TempDir(), "none.toml")}
		}},
		{"unknown key", func(t *testing.T) []string {
			return []string{"-config", writeConfig(t, "colour = 1\n")}
		}},
		{"malformed file", func(t *testing.T) []string {
			return []string{"-config", writeConfig(t, "width = \n")}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseConfig(tt.args(t)); err == nil {
				t.Error("parseConfig() error = nil")
			}
		})
	}
}
