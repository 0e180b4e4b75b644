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

// Package raster converts paths into anti-aliased pixel coverage.
//
// A [Rasteriser] walks a [path.Path], transforms it into device space and
// reports, for every pixel row touched by the shape, the fraction of each
// pixel which is covered.  Coverage is delivered through a callback so
// that callers can composite it into any pixel format.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of one pixel row.  coverage[i] is the
// coverage of pixel (xMin+i, y), in the range [0, 1].  The slice is only
// valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// Rasteriser converts paths to pixel coverage values.
//
// A Rasteriser is meant to be reused for many paths.  Internal buffers grow
// as needed and are kept between calls.  A Rasteriser is not safe for
// concurrent use.
type Rasteriser struct {
	// CTM maps user space to device space.  It must be non-singular.
	CTM matrix.Matrix

	// Clip is the output region in device coordinates.  The coordinates
	// must be integers.
	Clip rect.Rect

	// Flatness is the curve flattening tolerance in device pixels.
	Flatness float64

	// Width is the stroke width in user space units.
	Width float64

	// Cap is the shape used at the ends of open subpaths.
	Cap graphics.LineCapStyle

	// Join is the shape used where two segments meet.
	Join graphics.LineJoinStyle

	// MiterLimit bounds the length of miter joins, relative to the
	// stroke width.  Longer miters are replaced by bevels.
	MiterLimit float64

	cover     []float32
	area      []float32
	edges     []edge
	active    []int
	crossings []float64

	box bbox

	// stroking state
	segs       []segment
	subpaths   []subpath
	dots       []vec.Vec2
	outline    []vec.Vec2
	polyStarts []int
}

// edge is a line segment in device coordinates with y0 != y1.
type edge struct {
	x0, y0 float64
	dxdy   float64
	top    float64 // min(y0, y1)
	bottom float64 // max(y0, y1)
	sign   float32 // +1 if the edge points down, -1 if it points up
}

func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

// bbox tracks the device space extent of the collected edges.
type bbox struct {
	empty                  bool
	xMin, xMax, yMin, yMax float64
}

func (b *bbox) add(x, y float64) {
	if b.empty {
		b.xMin, b.xMax, b.yMin, b.yMax = x, x, y, y
		b.empty = false
		return
	}
	b.xMin = min(b.xMin, x)
	b.xMax = max(b.xMax, x)
	b.yMin = min(b.yMin, y)
	b.yMax = max(b.yMax, y)
}

// NewRasteriser returns a Rasteriser for the given device clip rectangle.
// All other parameters are set to their default values.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores all parameters to their default values and sets a new
// clip rectangle.  Buffer capacity is retained.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
}

// FillNonZero rasterises the interior of p using the nonzero winding rule.
// Open subpaths are closed implicitly.
func (r *Rasteriser) FillNonZero(p path.Path, emit EmitFunc) {
	r.startEdges()

	var cur, start vec.Vec2
	open := false
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if open && cur != start {
				r.addEdge(cur, start)
			}
			cur, start = pts[0], pts[0]
			open = true
		case path.CmdLineTo:
			r.addEdge(cur, pts[0])
			cur = pts[0]
		case path.CmdQuadTo:
			r.flattenQuadratic(cur, pts[0], pts[1], r.addEdge)
			cur = pts[1]
		case path.CmdCubeTo:
			r.flattenCubic(cur, pts[0], pts[1], pts[2], r.addEdge)
			cur = pts[2]
		case path.CmdClose:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = start
			open = false
		}
	}
	if open && cur != start {
		r.addEdge(cur, start)
	}

	r.scan(emit)
}

// linear applies the linear part of the CTM to v.
func (r *Rasteriser) linear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

func (r *Rasteriser) device(v vec.Vec2) (x, y float64) {
	return r.CTM[0]*v.X + r.CTM[2]*v.Y + r.CTM[4],
		r.CTM[1]*v.X + r.CTM[3]*v.Y + r.CTM[5]
}

// flattenQuadratic approximates the quadratic Bézier curve p0, p1, p2 by
// line segments, which are passed to emit.  The number of segments is
// chosen so that the error in device space stays below r.Flatness.
func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(a, b vec.Vec2)) {
	dev := r.linear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments.
// The segment count follows Wang's formula.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(a, b vec.Vec2)) {
	d1 := r.linear(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.linear(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		if f := math.Sqrt(3 * m / (4 * r.Flatness)); f > 1 {
			n = int(math.Ceil(f))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

func (r *Rasteriser) startEdges() {
	r.edges = r.edges[:0]
	r.box = bbox{empty: true}
}

// addEdge transforms the user space segment a-b to device space and adds
// it to the edge list.  Horizontal edges do not contribute to coverage and
// are dropped.
func (r *Rasteriser) addEdge(a, b vec.Vec2) {
	x0, y0 := r.device(a)
	x1, y1 := r.device(b)

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}

	e := edge{
		x0:     x0,
		y0:     y0,
		dxdy:   (x1 - x0) / dy,
		top:    min(y0, y1),
		bottom: max(y0, y1),
		sign:   1,
	}
	if dy < 0 {
		e.sign = -1
	}
	r.edges = append(r.edges, e)
	r.box.add(x0, y0)
	r.box.add(x1, y1)
}

// Coverage model:
//
// For every pixel of a row two values are accumulated.  cover is the
// signed vertical extent of all edge pieces inside the pixel column, and
// area is the same extent weighted by the fraction of the pixel lying to
// the right of the edge.  Scanning the row from the left, the coverage of
// pixel i is the running sum of cover over pixels 0, ..., i-1 plus area[i].
// Edge pieces left of the buffer are folded into pixel 0.

// scan sweeps the collected edges row by row, using an active edge list.
func (r *Rasteriser) scan(emit EmitFunc) {
	if len(r.edges) == 0 {
		return
	}

	xMin := max(int(math.Floor(r.box.xMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.box.xMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.box.yMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.box.yMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.top, b.top)
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		rowTop := float64(y)
		rowBottom := float64(y + 1)

		for next < len(r.edges) && r.edges[next].top < rowBottom {
			r.active = append(r.active, next)
			next++
		}
		r.active = slices.DeleteFunc(r.active, func(i int) bool {
			return r.edges[i].bottom <= rowTop
		})
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		for _, i := range r.active {
			r.accumulate(&r.edges[i], y, xMin, xMax)
		}
		integrateNonZero(r.cover, r.area)

		if row, offset := trimZeros(r.cover); row != nil {
			emit(y, xMin+offset, row)
		}
	}
}

// accumulate adds the part of e which lies inside row y to the cover and
// area buffers.  The buffers hold the pixels xMin, ..., xMax-1.
func (r *Rasteriser) accumulate(e *edge, y, xMin, xMax int) {
	yTop := max(float64(y), e.top)
	yBot := min(float64(y+1), e.bottom)
	if yBot <= yTop {
		return
	}

	xTop := e.xAt(yTop)
	xBot := e.xAt(yBot)
	pixLeft := int(math.Floor(min(xTop, xBot)))
	pixRight := int(math.Floor(max(xTop, xBot)))

	if pixLeft >= xMax {
		return
	}
	if pixLeft == pixRight || pixRight < xMin {
		r.deposit(e, yTop, yBot, xMin, xMax)
		return
	}

	// split the piece where it crosses vertical pixel boundaries
	r.crossings = append(r.crossings[:0], yTop, yBot)
	dydx := 1 / e.dxdy
	for x := pixLeft + 1; x <= pixRight; x++ {
		yx := e.y0 + dydx*(float64(x)-e.x0)
		if yx > yTop && yx < yBot {
			r.crossings = append(r.crossings, yx)
		}
	}
	slices.Sort(r.crossings)

	for i := 1; i < len(r.crossings); i++ {
		r.deposit(e, r.crossings[i-1], r.crossings[i], xMin, xMax)
	}
}

// deposit records the piece of e between y0 and y1, which must lie within a
// single pixel column.
func (r *Rasteriser) deposit(e *edge, y0, y1 float64, xMin, xMax int) {
	if y1 <= y0 {
		return
	}
	c := e.sign * float32(y1-y0)

	xMid := e.xAt((y0 + y1) / 2)
	pix := int(math.Floor(xMid))
	switch {
	case pix < xMin:
		r.cover[0] += c
		r.area[0] += c
	case pix < xMax:
		i := pix - xMin
		r.cover[i] += c
		r.area[i] += c * float32(1-(xMid-float64(pix)))
	}
}

// integrateNonZero turns the accumulated cover and area values of a row
// into coverage, in place.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// trimZeros returns the sub-slice of row between the first and last
// non-zero entries, together with its offset.  If all entries are zero,
// nil is returned.
func trimZeros(row []float32) ([]float32, int) {
	lo := 0
	for lo < len(row) && row[lo] == 0 {
		lo++
	}
	if lo == len(row) {
		return nil, 0
	}
	hi := len(row)
	for row[hi-1] == 0 {
		hi--
	}
	return row[lo:hi], lo
}

const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit turns joins with an interior angle below
	// about 11.5 degrees into bevels.
	defaultMiterLimit = 10.0
)

const (
	horizontalEdgeThreshold = 1e-10
	zeroLengthThreshold     = 1e-10
	collinearityThreshold   = 1e-6

	// cuspCosineThreshold detects segments which double back on themselves.
	// cos(179.43°) ≈ -0.9999
	cuspCosineThreshold = -0.9999
)
