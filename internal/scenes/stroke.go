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
	"seehuhn.de/go/sketch/config"
)

var strokeScenes = []Scene{
	{
		Name:   "dot",
		Width:  32,
		Height: 32,
		Commands: []sketch.Command{
			sketch.Stroke{Points: []vec.Vec2{pt(16, 16)}, Color: "#000000", Size: 10, Opacity: 1},
		},
	},
	{
		Name:   "line",
		Width:  64,
		Height: 32,
		Commands: []sketch.Command{
			sketch.Stroke{Points: []vec.Vec2{pt(8, 16), pt(56, 16)}, Color: "#0050CD", Size: 5, Opacity: 1},
		},
	},
	{
		Name:   "wave",
		Width:  128,
		Height: 64,
		Commands: []sketch.Command{
			sketch.Stroke{Points: wave(8, 120, 32, 20, 56, 60), Color: "#990000", Size: 5, Opacity: 1},
		},
	},
	{
		Name:   "zigzag",
		Width:  128,
		Height: 64,
		Commands: []sketch.Command{
			sketch.Stroke{Points: zigzag(10, 118, 12, 52, 12), Color: "#017420", Size: 10, Opacity: 1},
		},
	},
	{
		Name:   "spiral",
		Width:  96,
		Height: 96,
		Commands: []sketch.Command{
			sketch.Stroke{Points: spiral(48, 48, 42, 3, 200), Color: "#964112", Size: 2, Opacity: 1},
		},
	},
	{
		Name:   "shaky_circle",
		Width:  96,
		Height: 96,
		Commands: []sketch.Command{
			sketch.Stroke{Points: jitter(arc(48, 48, 36, 0, 2*math.Pi, 90), 0.8), Color: "#FF7829", Size: 5, Opacity: 1},
		},
	},
	{
		Name:   "translucent_overlap",
		Width:  96,
		Height: 96,
		Commands: []sketch.Command{
			sketch.Stroke{Points: []vec.Vec2{pt(10, 30), pt(86, 30)}, Color: "#FF0013", Size: 20, Opacity: 0.5},
			sketch.Stroke{Points: []vec.Vec2{pt(30, 10), pt(30, 86)}, Color: "#26C9FF", Size: 20, Opacity: 0.5},
			sketch.Stroke{Points: []vec.Vec2{pt(10, 70), pt(86, 70), pt(10, 60)}, Color: "#11B03C", Size: 20, Opacity: 0.5},
		},
	},
	{
		Name:   "sizes",
		Width:  128,
		Height: 96,
		Commands: func() []sketch.Command {
			var res []sketch.Command
			for i, size := range config.Default().PenSizes {
				x := 12 + 24*float64(i)
				res = append(res, sketch.Stroke{
					Points:  []vec.Vec2{pt(x, 20), pt(x, 76)},
					Color:   "#666666",
					Size:    size,
					Opacity: 1,
				})
			}
			return res
		}(),
	},
	{
		Name:   "palette",
		Width:  152,
		Height: 64,
		Commands: func() []sketch.Command {
			var res []sketch.Command
			for i, color := range config.Default().Palette {
				x := 8 + 8*float64(i)
				res = append(res, sketch.Stroke{
					Points:  []vec.Vec2{pt(x, 8), pt(x, 56)},
					Color:   color,
					Size:    6,
					Opacity: 1,
				})
			}
			return res
		}(),
	},
}

var eraseScenes = []Scene{
	{
		Name:   "cross",
		Width:  64,
		Height: 64,
		Commands: []sketch.Command{
			sketch.Stroke{Points: []vec.Vec2{pt(8, 32), pt(56, 32)}, Color: "#99004E", Size: 20, Opacity: 1},
			sketch.Erase{Points: []vec.Vec2{pt(32, 4), pt(32, 60)}, Size: 8},
		},
	},
	{
		Name:   "over_translucent",
		Width:  64,
		Height: 64,
		Commands: []sketch.Command{
			sketch.Stroke{Points: []vec.Vec2{pt(8, 32), pt(56, 32)}, Color: "#0050CD", Size: 30, Opacity: 0.6},
			sketch.Erase{Points: wave(4, 60, 32, 8, 28, 40), Size: 4},
		},
	},
	{
		Name:   "empty_canvas",
		Width:  32,
		Height: 32,
		Commands: []sketch.Command{
			sketch.Erase{Points: []vec.Vec2{pt(4, 4), pt(28, 28)}, Size: 10},
		},
	},
}
