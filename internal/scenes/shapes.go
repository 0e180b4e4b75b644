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
)

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// arc samples a circular arc, the way a pointer tracing a circle would.
// Angles are in radians, measured clockwise on screen from the positive
// x-axis.
func arc(cx, cy, r, from, to float64, n int) []vec.Vec2 {
	res := make([]vec.Vec2, n+1)
	for i := range res {
		phi := from + (to-from)*float64(i)/float64(n)
		res[i] = pt(cx+r*math.Cos(phi), cy+r*math.Sin(phi))
	}
	return res
}

// spiral samples an Archimedean spiral with the given number of turns.
func spiral(cx, cy, r, turns float64, n int) []vec.Vec2 {
	res := make([]vec.Vec2, n+1)
	for i := range res {
		t := float64(i) / float64(n)
		phi := 2 * math.Pi * turns * t
		res[i] = pt(cx+r*t*math.Cos(phi), cy+r*t*math.Sin(phi))
	}
	return res
}

// wave samples a sine wave between x0 and x1.
func wave(x0, x1, y, amplitude, period float64, n int) []vec.Vec2 {
	res := make([]vec.Vec2, n+1)
	for i := range res {
		x := x0 + (x1-x0)*float64(i)/float64(n)
		res[i] = pt(x, y+amplitude*math.Sin(2*math.Pi*(x-x0)/period))
	}
	return res
}

// zigzag alternates between two heights with the given horizontal step.
func zigzag(x0, x1, yTop, yBottom, step float64) []vec.Vec2 {
	var res []vec.Vec2
	top := true
	for x := x0; x <= x1; x += step {
		y := yBottom
		if top {
			y = yTop
		}
		res = append(res, pt(x, y))
		top = !top
	}
	return res
}

// starOutline gives the closed outline of a five-pointed star.
func starOutline(cx, cy, outer, inner float64) []vec.Vec2 {
	res := make([]vec.Vec2, 0, 11)
	for i := range 11 {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		phi := -math.Pi/2 + float64(i)*math.Pi/5
		res = append(res, pt(cx+r*math.Cos(phi), cy+r*math.Sin(phi)))
	}
	return res
}

// jitter adds a deterministic wobble to points, imitating an unsteady
// hand.  Consecutive duplicates and near-duplicates are included, since
// real pointer input contains them.
func jitter(points []vec.Vec2, amount float64) []vec.Vec2 {
	res := make([]vec.Vec2, 0, 2*len(points))
	for i, p := range points {
		dx := amount * math.Sin(float64(i)*1.7)
		dy := amount * math.Cos(float64(i)*2.3)
		q := pt(p.X+dx, p.Y+dy)
		res = append(res, q, pt(q.X+0.1, q.Y))
	}
	return res
}
