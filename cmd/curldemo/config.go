package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gogpu/curl"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// config holds the demo settings. Values come from the defaults, then an
// optional TOML file, then explicitly set flags.
type config struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Mode       string `toml:"mode"`
	Pages      int    `toml:"pages"`
	Frames     int    `toml:"frames"`
	IntervalMS int    `toml:"interval_ms"`
	TurnEvery  int    `toml:"turn_every"`
	Background string `toml:"background"`
	Lang       string `toml:"lang"`
	Output     string `toml:"output"`
	Trace      string `toml:"trace"`
	Verbose    bool   `toml:"verbose"`
}

func defaultConfig() config {
	return config{
		Width:      800,
		Height:     400,
		Mode:       "double",
		Pages:      8,
		Frames:     12,
		IntervalMS: 16,
		TurnEvery:  3,
		Background: "#303030",
		Lang:       "en",
		Output:     "frame-%03d.png",
	}
}

// parseConfig parses args. A -config file is applied before the other
// flags so that flags given on the command line win.
func parseConfig(args []string) (config, error) {
	cfg := defaultConfig()
	fs := flag.NewFlagSet("curldemo", flag.ContinueOnError)
	path := fs.String("config", "", "TOML config file")
	width := fs.Int("width", cfg.Width, "surface width")
	height := fs.Int("height", cfg.Height, "surface height")
	mode := fs.String("mode", cfg.Mode, "view mode: single or double")
	pages := fs.Int("pages", cfg.Pages, "number of pages")
	frames := fs.Int("frames", cfg.Frames, "frames to render, 0 renders until interrupted")
	interval := fs.Int("interval", cfg.IntervalMS, "frame interval in milliseconds")
	turn := fs.Int("turn-every", cfg.TurnEvery, "frame intervals between page turns")
	background := fs.String("background", cfg.Background, "background color (#RRGGBB or #AARRGGBB)")
	lang := fs.String("lang", cfg.Lang, "BCP 47 language of the page labels")
	output := fs.String("output", cfg.Output, "PNG file pattern, receives the frame number; empty disables")
	trace := fs.String("trace", cfg.Trace, "write a GL command trace to this file")
	verbose := fs.Bool("v", cfg.Verbose, "debug logging")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if *path != "" {
		if err := loadConfigFile(*path, &cfg); err != nil {
			return config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "mode":
			cfg.Mode = *mode
		case "pages":
			cfg.Pages = *pages
		case "frames":
			cfg.Frames = *frames
		case "interval":
			cfg.IntervalMS = *interval
		case "turn-every":
			cfg.TurnEvery = *turn
		case "background":
			cfg.Background = *background
		case "lang":
			cfg.Lang = *lang
		case "output":
			cfg.Output = *output
		case "trace":
			cfg.Trace = *trace
		case "v":
			cfg.Verbose = *verbose
		}
	})
	return cfg, cfg.validate()
}

func loadConfigFile(path string, cfg *config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if _, ok := curl.ParseViewMode(c.Mode); !ok {
		return fmt.Errorf("unknown view mode %q", c.Mode)
	}
	if c.Pages <= 0 {
		return fmt.Errorf("invalid page count %d", c.Pages)
	}
	if c.Frames < 0 {
		return fmt.Errorf("invalid frame count %d", c.Frames)
	}
	if c.IntervalMS <= 0 {
		return fmt.Errorf("invalid interval %dms", c.IntervalMS)
	}
	if _, err := language.Parse(c.Lang); err != nil {
		return fmt.Errorf("invalid language %q: %w", c.Lang, err)
	}
	return nil
}

func (c config) language() language.Tag {
	tag, _ := language.Parse(c.Lang)
	return tag
}

func (c config) viewMode() curl.ViewMode {
	m, _ := curl.ParseViewMode(c.Mode)
	return m
}

func (c config) interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}
