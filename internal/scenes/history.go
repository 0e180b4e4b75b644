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

package scenes

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch"
)

var historyScenes = []Scene{
	{
		Name:   "undo_last",
		Width:  64,
		Height: 64,
		Commands: []sketch.Command{
			sketch.Stroke{Points: []vec.Vec2{pt(8, 20), pt(56, 20)}, Color: "#000000", Size: 6, Opacity: 1},
			sketch.Stroke{Points: []vec.Vec2{pt(8, 44), pt(56, 44)}, Color: "#FF0013", Size: 6, Opacity: 1},
		},
		Undo: 1,
	},
	{
		Name:   "undo_erase",
		Width:  64,
		Height: 64,
		Commands: []sketch.Command{
			sketch.Fill{Point: pt(0, 0), Color: "#AAAAAA", Opacity: 1},
			sketch.Erase{Points: spiral(32, 32, 28, 2, 80), Size: 5},
		},
		Undo: 1,
	},
	{
		Name:   "undo_all",
		Width:  32,
		Height: 32,
		Commands: []sketch.Command{
			sketch.Fill{Point: pt(0, 0), Color: "#CB5A57", Opacity: 1},
			sketch.Stroke{Points: []vec.Vec2{pt(4, 4), pt(28, 28)}, Color: "#000000", Size: 3, Opacity: 1},
		},
		Undo: 2,
	},
}

var resolutionScenes = []Scene{
	{
		Name:       "retina_wave",
		Width:      64,
		Height:     32,
		Resolution: 2,
		Commands: []sketch.Command{
			sketch.Stroke{Points: wave(4, 60, 16, 10, 30, 40), Color: "#0050CD", Size: 3, Opacity: 1},
		},
	},
	{
		Name:       "retina_fill",
		Width:      48,
		Height:     48,
		Resolution: 2,
		Commands: []sketch.Command{
			sketch.Stroke{Points: arc(24, 24, 16, 0, 2*math.Pi, 40), Color: "#017420", Size: 2, Opacity: 1},
			sketch.Fill{Point: pt(24, 24), Color: "#FFC126", Opacity: 1},
		},
	},
	{
		Name:       "fractional",
		Width:      50,
		Height:     30,
		Resolution: 1.5,
		Commands: []sketch.Command{
			sketch.Stroke{Points: zigzag(5, 45, 5, 25, 5), Color: "#990000", Size: 2, Opacity: 0.8},
		},
	},
}
