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

// Package scenes holds a catalogue of example drawings.
//
// The scenes exercise the stroke, erase and fill commands, together with
// undo and different resolutions.  They are used by tests and benchmarks,
// and the sketch command can render them to image files.
package scenes

import (
	"maps"
	"slices"

	"seehuhn.de/go/sketch"
	"seehuhn.de/go/sketch/config"
)

// Scene is a named drawing.
type Scene struct {
	Name       string           // lowercase a-z and _ only
	Width      int              // drawing width in logical units
	Height     int              // drawing height in logical units
	Resolution float64          // pixels per logical unit (zero means 1)
	Commands   []sketch.Command // committed in order
	Undo       int              // number of commands undone at the end
}

// All contains all scenes, grouped by category.
// The category name is used as a prefix in output file names.
var All = map[string][]Scene{
	"stroke":     strokeScenes,
	"erase":      eraseScenes,
	"fill":       fillScenes,
	"history":    historyScenes,
	"resolution": resolutionScenes,
}

// Categories returns the category names in sorted order.
func Categories() []string {
	return slices.Sorted(maps.Keys(All))
}

// FullName returns the name of a scene, prefixed by its category.
func FullName(category string, s Scene) string {
	return category + "_" + s.Name
}

// Config returns a copy of base, adjusted to the size and resolution of
// the scene.
func (s Scene) Config(base config.Config) config.Config {
	base.Width = s.Width
	base.Height = s.Height
	if s.Resolution > 0 {
		base.Resolution = s.Resolution
	}
	return base
}

// Editor creates an editor holding the scene.  The content canvas is
// rendered before the editor is returned.
func (s Scene) Editor(base config.Config) (*sketch.Editor, error) {
	ed, err := sketch.New(s.Config(base))
	if err != nil {
		return nil, err
	}
	for _, cmd := range s.Commands {
		if err := ed.Commit(cmd); err != nil {
			return nil, err
		}
	}
	for range s.Undo {
		ed.Undo()
	}
	ed.RenderContent()
	return ed, nil
}
