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

// Package script reads and writes drawing scripts.
//
// A script is a list of drawing actions, stored as JSON or YAML, which
// can be replayed into a [sketch.Editor].  Scripts allow to render
// drawings without an interactive host.
//
// An example script in YAML format:
//
//	width: 200
//	height: 100
//	actions:
//	  - op: stroke
//	    points: [[10, 10], [100, 50], [190, 10]]
//	    color: "#0050CD"
//	    size: 5
//	  - op: fill
//	    points: [[5, 90]]
//	    color: yellow
//	  - op: undo
package script

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch"
	"seehuhn.de/go/sketch/config"
)

// Format selects the encoding of a script.
type Format int

// These are the supported script encodings.
const (
	JSON Format = iota
	YAML
)

// ErrFormat is returned for files whose name does not indicate a
// supported encoding.
var ErrFormat = errors.New("unknown script format")

// FormatForFile chooses the encoding from the extension of a file name.
func FormatForFile(fname string) (Format, error) {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrFormat, fname)
}

// Script is a drawing, given as a sequence of actions.
type Script struct {
	// Width and Height give the size of the drawing in logical units.
	// Zero values leave the configured size unchanged.
	Width  int `json:"width,omitempty" yaml:"width,omitempty"`
	Height int `json:"height,omitempty" yaml:"height,omitempty"`

	// Resolution is the number of pixels per logical unit.
	// Zero leaves the configured resolution unchanged.
	Resolution float64 `json:"resolution,omitempty" yaml:"resolution,omitempty"`

	Actions []Action `json:"actions" yaml:"actions"`
}

// Action is a single step of a script.
type Action struct {
	// Op is one of "stroke", "erase", "fill", "undo" and "redo".
	Op string `json:"op" yaml:"op"`

	// Points holds [x, y] pairs.  Fill actions use exactly one point.
	Points [][]float64 `json:"points,omitempty" yaml:"points,omitempty,flow"`

	Color string  `json:"color,omitempty" yaml:"color,omitempty"`
	Size  float64 `json:"size,omitempty" yaml:"size,omitempty"`

	// Opacity defaults to 1.
	Opacity *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
}

// Load reads a script from a file.  The encoding is chosen by the file
// name extension.
func Load(fname string) (*Script, error) {
	format, err := FormatForFile(fname)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return s, nil
}

// Decode reads a script.  Unknown fields are an error.
func Decode(r io.Reader, format Format) (*Script, error) {
	s := &Script{}
	switch format {
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(s); err != nil {
			return nil, err
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(s); err != nil && err != io.EOF {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrFormat, format)
	}
	return s, nil
}

// Encode writes the script to w.
func (s *Script) Encode(w io.Writer, format Format) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %d", ErrFormat, format)
}

// Configure returns a copy of cfg, with the size and resolution replaced
// by the values from the script, where these are set.
func (s *Script) Configure(cfg config.Config) config.Config {
	if s.Width > 0 {
		cfg.Width = s.Width
	}
	if s.Height > 0 {
		cfg.Height = s.Height
	}
	if s.Resolution > 0 {
		cfg.Resolution = s.Resolution
	}
	return cfg
}

// Apply replays the actions of the script into ed.
// Actions without a size use the current size of the editor.
func (s *Script) Apply(ed *sketch.Editor) error {
	for i, a := range s.Actions {
		if err := a.apply(ed); err != nil {
			return fmt.Errorf("action %d (%s): %w", i, a.Op, err)
		}
	}
	return nil
}

func (a Action) apply(ed *sketch.Editor) error {
	points, err := a.points()
	if err != nil {
		return err
	}
	size := a.Size
	if size == 0 {
		size = ed.Size
	}
	opacity := 1.0
	if a.Opacity != nil {
		opacity = *a.Opacity
	}

	switch a.Op {
	case "stroke":
		return ed.Commit(sketch.Stroke{
			Points:  points,
			Color:   a.Color,
			Size:    size,
			Opacity: opacity,
		})
	case "erase":
		return ed.Commit(sketch.Erase{Points: points, Size: size})
	case "fill":
		if len(points) != 1 {
			return fmt.Errorf("fill needs one point, got %d", len(points))
		}
		return ed.Commit(sketch.Fill{
			Point:   points[0],
			Color:   a.Color,
			Opacity: opacity,
		})
	case "undo":
		ed.Undo()
		return nil
	case "redo":
		ed.Redo()
		return nil
	}
	return fmt.Errorf("unknown operation %q", a.Op)
}

func (a Action) points() ([]vec.Vec2, error) {
	if len(a.Points) == 0 {
		return nil, nil
	}
	res := make([]vec.Vec2, len(a.Points))
	for i, p := range a.Points {
		if len(p) != 2 {
			return nil, fmt.Errorf("point %d: expected [x, y], got %v", i, p)
		}
		res[i] = vec.Vec2{X: p[0], Y: p[1]}
	}
	return res, nil
}

// FromCommands creates a script which draws the given commands.
func FromCommands(commands []sketch.Command) *Script {
	s := &Script{}
	for _, cmd := range commands {
		var a Action
		switch cmd := cmd.(type) {
		case sketch.Stroke:
			a = Action{Op: "stroke", Points: pairs(cmd.Points), Color: cmd.Color, Size: cmd.Size}
			a.Opacity = &cmd.Opacity
		case sketch.Erase:
			a = Action{Op: "erase", Points: pairs(cmd.Points), Size: cmd.Size}
		case sketch.Fill:
			a = Action{Op: "fill", Points: pairs([]vec.Vec2{cmd.Point}), Color: cmd.Color}
			a.Opacity = &cmd.Opacity
		default:
			continue
		}
		s.Actions = append(s.Actions, a)
	}
	return s
}

func pairs(points []vec.Vec2) [][]float64 {
	if len(points) == 0 {
		return nil
	}
	res := make([][]float64, len(points))
	for i, p := range points {
		res[i] = []float64{p.X, p.Y}
	}
	return res
}
