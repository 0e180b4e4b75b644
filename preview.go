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

package sketch

import (
	"image/color"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/sketch/canvas"
)

// Geometry of the cursor, in logical units.
const (
	cursorTickGap    = 4
	cursorTickLength = 6
	cursorOuterWidth = 2
	cursorInnerWidth = 1
)

// kappa is the control point distance for approximating a quarter circle
// by a cubic Bézier curve.
const kappa = 0.5522847498307936

// RenderPreview redraws the preview canvas.  It shows the path of the
// current drag and, if the pointer position is known, the cursor.
//
// The path is drawn like a [Stroke] with the current settings.  For tools
// other than the pen it is drawn in the neutral preview colour.
func (e *Editor) RenderPreview() {
	e.preview.Clear()

	if len(e.points) > 0 {
		col := e.Color
		if e.Tool != ToolPen {
			col = e.cfg.Preview.NeutralColor
		}
		e.renderer.paint(e.preview, Stroke{
			Points:  e.points,
			Color:   col,
			Size:    e.Size,
			Opacity: e.Opacity,
		})
	}

	if e.hasCursor {
		shape := crosshair(e.cursor, e.Size/2)
		st := canvas.Style{
			Alpha: 1,
			Cap:   graphics.LineCapButt,
			Join:  graphics.LineJoinMiter,
			Scale: e.renderer.scale,
		}
		st.Paint, st.Width = color.NRGBA{R: 255, G: 255, B: 255, A: 255}, cursorOuterWidth
		e.preview.Stroke(shape, st)
		st.Paint, st.Width = color.NRGBA{A: 255}, cursorInnerWidth
		e.preview.Stroke(shape, st)
	}
}

// crosshair returns a circle of radius r around c, with short ticks
// pointing away from the circle in the four axis directions.
func crosshair(c vec.Vec2, r float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		buf := make([]vec.Vec2, 3)
		at := func(dx, dy float64) vec.Vec2 {
			return vec.Vec2{X: c.X + dx, Y: c.Y + dy}
		}

		buf[0] = at(r, 0)
		if !yield(path.CmdMoveTo, buf[:1]) {
			return
		}
		k := kappa * r
		quarters := [4][3]vec.Vec2{
			{at(r, k), at(k, r), at(0, r)},
			{at(-k, r), at(-r, k), at(-r, 0)},
			{at(-r, -k), at(-k, -r), at(0, -r)},
			{at(k, -r), at(r, -k), at(r, 0)},
		}
		for _, q := range quarters {
			copy(buf, q[:])
			if !yield(path.CmdCubeTo, buf) {
				return
			}
		}
		if !yield(path.CmdClose, nil) {
			return
		}

		inner := r + cursorTickGap
		outer := inner + cursorTickLength
		for _, dir := range []vec.Vec2{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}} {
			buf[0] = at(dir.X*inner, dir.Y*inner)
			if !yield(path.CmdMoveTo, buf[:1]) {
				return
			}
			buf[0] = at(dir.X*outer, dir.Y*outer)
			if !yield(path.CmdLineTo, buf[:1]) {
				return
			}
		}
	}
}
