// seehuhn.de/go/sketch - a raster drawing engine
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config holds the settings of a drawing editor.
//
// Settings are read from TOML files.  Every field which is missing from
// a file keeps its default value, and unknown fields are an error.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"seehuhn.de/go/sketch/canvas"
)

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete editor configuration.
type Config struct {
	// Width and Height give the drawing size in logical units.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// Resolution is the number of pixels per logical unit.
	Resolution float64 `toml:"resolution"`

	// Palette and PenSizes are the colour and size presets which a host
	// offers to the user, for example as swatches and buttons.  The
	// editor itself does not restrict Color or Size to these values.
	Palette  []string  `toml:"palette"`
	PenSizes []float64 `toml:"pen_sizes"`

	// LogLevel is one of "debug", "info", "warn" or "error".
	LogLevel string `toml:"log_level"`

	Pen        Pen        `toml:"pen"`
	Smoothing  Smoothing  `toml:"smoothing"`
	Preview    Preview    `toml:"preview"`
	Eyedropper Eyedropper `toml:"eyedropper"`
}

// Pen holds the initial pen settings.
type Pen struct {
	Color   string  `toml:"color"`
	Size    float64 `toml:"size"`
	Opacity float64 `toml:"opacity"`
}

// Smoothing controls the curve fitting of freehand strokes.
type Smoothing struct {
	Factor      float64 `toml:"factor"`
	MinDistance float64 `toml:"min_distance"`
}

// Preview controls the live stroke preview.
type Preview struct {
	// NeutralColor is used for previewing strokes of tools other than
	// the pen.
	NeutralColor string `toml:"neutral_color"`
}

// Eyedropper controls colour picking.
type Eyedropper struct {
	// Transparent selects what picking a fully transparent pixel does.
	Transparent TransparentPolicy `toml:"transparent"`
}

// TransparentPolicy selects how the eyedropper treats transparent pixels.
type TransparentPolicy string

const (
	// Preserve picks the pixel as it is, leading to an invisible pen.
	Preserve TransparentPolicy = "preserve"

	// White picks opaque white instead.
	White TransparentPolicy = "white"
)

// Default returns the default configuration.
func Default() Config {
	return Config{
		Width:      800,
		Height:     600,
		Resolution: 1,
		Palette: []string{
			"#000000", "#666666", "#0050CD", "#FFFFFF", "#AAAAAA", "#26C9FF",
			"#017420", "#990000", "#964112", "#11B03C", "#FF0013", "#FF7829",
			"#B0701C", "#99004E", "#CB5A57", "#FFC126", "#FF008F", "#FEAFA8",
		},
		PenSizes: []float64{2, 5, 10, 20, 30},
		LogLevel: "info",
		Pen: Pen{
			Color:   "#000000",
			Size:    5,
			Opacity: 1,
		},
		Smoothing: Smoothing{
			Factor:      0.2,
			MinDistance: 1,
		},
		Preview: Preview{
			NeutralColor: "white",
		},
		Eyedropper: Eyedropper{
			Transparent: Preserve,
		},
	}
}

// Load reads and validates a configuration file.
func Load(fname string) (Config, error) {
	f, err := os.Open(fname)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", fname, err)
	}
	return cfg, nil
}

// Parse reads a configuration in TOML format and validates it.
// Fields missing from the input keep their default values.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var missing *toml.StrictMissingError
		if errors.As(err, &missing) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalid, missing.String())
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration in TOML format.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate checks that all settings are within their valid range.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Width > 0 && c.Height > 0, "size %dx%d", c.Width, c.Height)
	check(c.Resolution > 0, "resolution %g", c.Resolution)
	check(c.Pen.Size > 0, "pen size %g", c.Pen.Size)
	check(c.Pen.Opacity >= 0 && c.Pen.Opacity <= 1, "pen opacity %g", c.Pen.Opacity)
	check(!slices.ContainsFunc(c.PenSizes, func(s float64) bool { return s <= 0 }),
		"pen sizes %v", c.PenSizes)
	check(c.Smoothing.Factor >= 0, "smoothing factor %g", c.Smoothing.Factor)
	check(c.Smoothing.MinDistance >= 0, "smoothing distance %g", c.Smoothing.MinDistance)
	check(c.Eyedropper.Transparent == Preserve || c.Eyedropper.Transparent == White,
		"eyedropper policy %q", c.Eyedropper.Transparent)

	var level slog.Level
	check(level.UnmarshalText([]byte(c.LogLevel)) == nil, "log level %q", c.LogLevel)

	for _, spec := range append([]string{c.Pen.Color, c.Preview.NeutralColor}, c.Palette...) {
		_, err := canvas.ParseColor(spec)
		check(err == nil, "color %q", spec)
	}

	return errors.Join(errs...)
}

// Level returns the configured log level.  Invalid settings give
// slog.LevelInfo.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
