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

// Package canvas implements the pixel buffers which drawings are rendered
// into.
//
// A [Canvas] owns a non-premultiplied RGBA image.  Paths are rasterised
// with the [raster] package and the resulting coverage is composited into
// the image, either painting over the existing content or erasing it.
package canvas

import (
	"image"
	"image/color"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/sketch/floodfill"
	"seehuhn.de/go/sketch/raster"
)

// Op is a compositing operator.
type Op uint8

const (
	// SourceOver paints on top of the existing content.
	SourceOver Op = iota

	// DestinationOut removes existing content where the shape is painted.
	// The colour of the paint is ignored, only its alpha matters.
	DestinationOut
)

// Style describes how a path is painted.
type Style struct {
	// Paint is the colour of the shape.
	Paint color.NRGBA

	// Alpha scales the alpha channel of Paint.
	Alpha float64

	// Op selects how the shape is combined with the existing content.
	Op Op

	// Width, Cap and Join are used for stroking.
	Width float64
	Cap   graphics.LineCapStyle
	Join  graphics.LineJoinStyle

	// Scale maps path coordinates to pixels.  Zero means 1.
	Scale float64
}

// Canvas is a pixel buffer which shapes can be painted on.
// The zero value is not usable; use [New] to create a Canvas.
// A Canvas is not safe for concurrent use.
type Canvas struct {
	img *image.NRGBA
	ras *raster.Rasteriser
}

// New allocates a transparent canvas of the given size in pixels.
func New(width, height int) *Canvas {
	bounds := image.Rect(0, 0, width, height)
	return &Canvas{
		img: image.NewNRGBA(bounds),
		ras: raster.NewRasteriser(clipRect(bounds)),
	}
}

func clipRect(b image.Rectangle) rect.Rect {
	return rect.Rect{
		LLx: float64(b.Min.X),
		LLy: float64(b.Min.Y),
		URx: float64(b.Max.X),
		URy: float64(b.Max.Y),
	}
}

// Width returns the width of the canvas in pixels.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the height of the canvas in pixels.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Bounds returns the pixel rectangle of the canvas.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Rect }

// Image gives direct access to the pixels.  The image stays valid until
// the next call to [Canvas.Resize].
func (c *Canvas) Image() *image.NRGBA { return c.img }

// Clear makes all pixels transparent black.
func (c *Canvas) Clear() {
	clear(c.img.Pix)
}

// Resize replaces the pixel buffer by a new, transparent one.
func (c *Canvas) Resize(width, height int) {
	c.img = image.NewNRGBA(image.Rect(0, 0, width, height))
}

// SampleAt returns the colour of the pixel at p.  Pixels outside the
// canvas are transparent black.
func (c *Canvas) SampleAt(p image.Point) color.NRGBA {
	if !p.In(c.img.Rect) {
		return color.NRGBA{}
	}
	return c.img.NRGBAAt(p.X, p.Y)
}

// Stroke paints the outline of p.
func (c *Canvas) Stroke(p path.Path, st Style) {
	r := c.setup(st)
	r.Width = st.Width
	r.Cap = st.Cap
	r.Join = st.Join
	r.Stroke(p, c.compositor(st))
}

// Fill paints the interior of p, using the nonzero winding rule.
func (c *Canvas) Fill(p path.Path, st Style) {
	r := c.setup(st)
	r.FillNonZero(p, c.compositor(st))
}

// FloodFill recolours the region of identical pixels around seed and
// returns the number of pixels changed.
func (c *Canvas) FloodFill(seed image.Point, target color.NRGBA) int {
	return floodfill.Fill(c.img, seed, target)
}

func (c *Canvas) setup(st Style) *raster.Rasteriser {
	c.ras.Reset(clipRect(c.img.Rect))
	if s := st.Scale; s != 0 && s != 1 {
		c.ras.CTM = matrix.Matrix{s, 0, 0, s, 0, 0}
	}
	return c.ras
}

func (c *Canvas) compositor(st Style) raster.EmitFunc {
	alpha := float64(st.Paint.A) / 255 * st.Alpha
	if alpha <= 0 {
		return func(int, int, []float32) {}
	}
	paint := [3]float64{float64(st.Paint.R), float64(st.Paint.G), float64(st.Paint.B)}

	img := c.img
	return func(y, xMin int, coverage []float32) {
		row := img.Pix[img.PixOffset(xMin, y):]
		for i, cov := range coverage {
			if cov <= 0 {
				continue
			}
			px := row[4*i : 4*i+4 : 4*i+4]
			sa := alpha * float64(cov)
			switch st.Op {
			case DestinationOut:
				erase(px, sa)
			default:
				over(px, paint, sa)
			}
		}
	}
}

// over composites a colour with alpha sa onto the pixel px.
func over(px []uint8, paint [3]float64, sa float64) {
	da := float64(px[3]) / 255
	oa := sa + da*(1-sa)
	a := toByte(oa * 255)
	if a == 0 {
		clear(px)
		return
	}
	k := da * (1 - sa)
	for ch := range 3 {
		px[ch] = toByte((paint[ch]*sa + float64(px[ch])*k) / oa)
	}
	px[3] = a
}

// erase reduces the alpha of px by the fraction sa.
func erase(px []uint8, sa float64) {
	a := toByte(float64(px[3]) * (1 - sa))
	if a == 0 {
		clear(px)
		return
	}
	px[3] = a
}

func toByte(v float64) uint8 {
	return uint8(max(0, min(255, math.Round(v))))
}
