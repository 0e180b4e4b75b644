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

var fillScenes = []Scene{
	{
		Name:   "empty",
		Width:  32,
		Height: 32,
		Commands: []sketch.Command{
			sketch.Fill{Point: pt(3, 3), Color: "#FFC126", Opacity: 1},
		},
	},
	{
		Name:   "inside_circle",
		Width:  96,
		Height: 96,
		Commands: []sketch.Command{
			sketch.Stroke{Points: arc(48, 48, 30, 0, 2*math.Pi, 60), Color: "#000000", Size: 4, Opacity: 1},
			sketch.Fill{Point: pt(48, 48), Color: "#FEAFA8", Opacity: 1},
		},
	},
	{
		Name:   "outside_star",
		Width:  96,
		Height: 96,
		Commands: []sketch.Command{
			sketch.Stroke{Points: starOutline(48, 50, 40, 16), Color: "#B0701C", Size: 3, Opacity: 1},
			sketch.Fill{Point: pt(2, 2), Color: "#26C9FF", Opacity: 0.5},
		},
	},
	{
		Name:   "refill",
		Width:  64,
		Height: 64,
		Commands: []sketch.Command{
			sketch.Fill{Point: pt(10, 10), Color: "#FF008F", Opacity: 1},
			sketch.Stroke{Points: []vec.Vec2{pt(32, 0), pt(32, 64)}, Color: "#FFFFFF", Size: 6, Opacity: 1},
			sketch.Fill{Point: pt(10, 10), Color: "#11B03C", Opacity: 1},
			sketch.Fill{Point: pt(10, 10), Color: "#11B03C", Opacity: 1},
		},
	},
}
