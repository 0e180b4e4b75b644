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

package raster

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// segment is a flattened piece of a path in user space.
type segment struct {
	A, B vec.Vec2
	T    vec.Vec2 // unit tangent from A to B
	N    vec.Vec2 // T rotated by 90° counter-clockwise
}

// subpath is a run of r.segs.
type subpath struct {
	start, end int
	closed     bool
}

// Stroke rasterises the outline of p, using Width, Cap, Join and
// MiterLimit.
//
// The outline is the union of convex pieces: one quadrilateral per
// segment, one polygon for the outer side of every corner and one for
// every cap.  All pieces are given the same orientation and are filled
// together with the nonzero rule, so that overlapping parts of a stroke
// are covered exactly once and short segments at sharp turns leave no
// gaps.
//
// Subpaths without extent (for example a MoveTo followed by a LineTo to the
// same point) are drawn as dots if the cap style is round.
func (r *Rasteriser) Stroke(p path.Path, emit EmitFunc) {
	r.flatten(p)
	if len(r.subpaths) == 0 && len(r.dots) == 0 {
		return
	}

	r.outline = r.outline[:0]
	r.polyStarts = r.polyStarts[:0]
	d := r.Width / 2

	if r.Cap == graphics.LineCapRound {
		for _, pt := range r.dots {
			r.beginPolygon()
			r.addArc(pt, d, vec.Vec2{X: 1}, 2*math.Pi, true)
			r.endPolygon()
		}
	}

	for _, sp := range r.subpaths {
		segs := r.segs[sp.start:sp.end]
		for i := range segs {
			r.addBody(&segs[i], d)
			switch {
			case i+1 < len(segs):
				r.addCorner(&segs[i], &segs[i+1], d)
			case sp.closed:
				r.addCorner(&segs[i], &segs[0], d)
			}
		}
		if !sp.closed {
			first := segs[0]
			last := segs[len(segs)-1]
			r.addCapPolygon(first.A, first.T.Mul(-1), d)
			r.addCapPolygon(last.B, last.T, d)
		}
	}

	r.startEdges()
	for i, start := range r.polyStarts {
		end := len(r.outline)
		if i+1 < len(r.polyStarts) {
			end = r.polyStarts[i+1]
		}
		poly := r.outline[start:end]
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	}
	r.scan(emit)
}

func (r *Rasteriser) beginPolygon() {
	r.polyStarts = append(r.polyStarts, len(r.outline))
}

// endPolygon finishes the polygon just built.  Polygons which cannot
// enclose any area are dropped, and the others are oriented so that their
// signed area is positive.
func (r *Rasteriser) endPolygon() {
	start := r.polyStarts[len(r.polyStarts)-1]
	poly := r.outline[start:]
	if len(poly) < 3 {
		r.outline = r.outline[:start]
		r.polyStarts = r.polyStarts[:len(r.polyStarts)-1]
		return
	}

	var area float64
	prev := poly[len(poly)-1]
	for _, pt := range poly {
		area += cross(prev, pt)
		prev = pt
	}
	if area < 0 {
		slices.Reverse(poly)
	}
}

// flatten splits p into subpaths of straight segments, stored in r.segs
// and r.subpaths.  Subpaths which have drawing commands but no extent are
// recorded in r.dots.
func (r *Rasteriser) flatten(p path.Path) {
	r.segs = r.segs[:0]
	r.subpaths = r.subpaths[:0]
	r.dots = r.dots[:0]

	var cur, start vec.Vec2
	first := 0
	open := false
	drawn := false

	finish := func(closed bool) {
		switch {
		case len(r.segs) > first:
			r.subpaths = append(r.subpaths, subpath{start: first, end: len(r.segs), closed: closed})
		case drawn:
			r.dots = append(r.dots, start)
		}
		first = len(r.segs)
		open = false
		drawn = false
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				finish(false)
			}
			cur, start = pts[0], pts[0]
			first = len(r.segs)
			open = true
		case path.CmdLineTo:
			if !open {
				continue
			}
			drawn = true
			r.addSegment(cur, pts[0])
			cur = pts[0]
		case path.CmdQuadTo:
			if !open {
				continue
			}
			drawn = true
			r.flattenQuadratic(cur, pts[0], pts[1], r.addSegment)
			cur = pts[1]
		case path.CmdCubeTo:
			if !open {
				continue
			}
			drawn = true
			r.flattenCubic(cur, pts[0], pts[1], pts[2], r.addSegment)
			cur = pts[2]
		case path.CmdClose:
			if !open {
				continue
			}
			if cur != start {
				r.addSegment(cur, start)
			}
			drawn = true
			finish(true)
			cur = start
		}
	}
	if open {
		finish(false)
	}
}

func (r *Rasteriser) addSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	l := d.Length()
	if l < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / l)
	r.segs = append(r.segs, segment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
}

// addBody adds the rectangle covered by seg.
func (r *Rasteriser) addBody(seg *segment, d float64) {
	off := seg.N.Mul(d)
	r.beginPolygon()
	r.outline = append(r.outline,
		seg.A.Add(off), seg.B.Add(off), seg.B.Sub(off), seg.A.Sub(off))
	r.endPolygon()
}

// addCorner adds the join on the outer side of the corner at seg.B.  The
// inner side is covered by the bodies of the two segments.
func (r *Rasteriser) addCorner(seg, next *segment, d float64) {
	P := seg.B
	cosTheta := seg.T.Dot(next.T)
	sinTheta := cross(seg.T, next.T)
	switch {
	case math.Abs(sinTheta) < collinearityThreshold && cosTheta > 0:
		return
	case cosTheta < cuspCosineThreshold:
		r.addCapPolygon(P, seg.T, d)
		r.addCapPolygon(P, next.T.Mul(-1), d)
		return
	}

	T1, T2 := seg.T, next.T
	if sinTheta > 0 {
		// the outer side is -N, seen from the reversed path it is +N
		T1, T2 = next.T.Mul(-1), seg.T.Mul(-1)
	}
	N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
	N2 := vec.Vec2{X: -T2.Y, Y: T2.X}

	r.beginPolygon()
	r.outline = append(r.outline, P, P.Add(N1.Mul(d)))
	r.addJoin(P, T1, T2, d)
	if r.Join != graphics.LineJoinRound {
		r.outline = append(r.outline, P.Add(N2.Mul(d)))
	}
	r.endPolygon()
}

// addCapPolygon adds the cap at P as a separate polygon.  T points away
// from the stroke.
func (r *Rasteriser) addCapPolygon(P, T vec.Vec2, d float64) {
	if r.Cap != graphics.LineCapRound && r.Cap != graphics.LineCapSquare {
		return
	}
	N := vec.Vec2{X: -T.Y, Y: T.X}
	r.beginPolygon()
	r.addCap(P, T, d)
	if r.Cap == graphics.LineCapSquare {
		r.outline = append(r.outline, P.Sub(N.Mul(d)), P.Add(N.Mul(d)))
	}
	r.endPolygon()
}

// addCap adds the cap at P.  T points away from the stroke.
func (r *Rasteriser) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}
	switch r.Cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		r.outline = append(r.outline, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))
	case graphics.LineCapRound:
		// half circle from N through T to -N
		r.addArc(P, d, N, -math.Pi, true)
	}
}

// addJoin adds the join at P on the +N side of a corner whose tangent
// turns from T1 to T2.  The offset points of both segments are added by
// the caller, except that a round join ends with the offset point of T2.
func (r *Rasteriser) addJoin(P, T1, T2 vec.Vec2, d float64) {
	cosTheta := T1.Dot(T2)
	sinTheta := cross(T1, T2)
	if math.Abs(sinTheta) < collinearityThreshold {
		return
	}

	N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
	N2 := vec.Vec2{X: -T2.Y, Y: T2.X}
	switch r.Join {
	case graphics.LineJoinMiter:
		// The miter length relative to the width is 1/sin(φ/2), where φ is
		// the interior angle of the corner, and sin(φ/2) = cos(θ/2).
		sinHalf := math.Sqrt((1 + cosTheta) / 2)
		if sinHalf <= 0 || 1/sinHalf > r.MiterLimit+1e-10 {
			return // bevel
		}
		bisector := N1.Add(N2)
		if l := bisector.Length(); l > zeroLengthThreshold {
			r.outline = append(r.outline, P.Add(bisector.Mul(d/(l*sinHalf))))
		}
	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cosTheta)))
		if sinTheta < 0 {
			angle = -angle
		}
		r.addArc(P, d, N1, angle, false)
	}
}

// addArc adds the points of a circular arc around center to the outline.
// startDir is the unit vector from the center to the first point and sweep
// is the angle in radians, positive for counter-clockwise.
func (r *Rasteriser) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	devRadius := max(
		r.linear(vec.Vec2{X: radius}).Length(),
		r.linear(vec.Vec2{Y: radius}).Length())

	// A chord spanning the angle θ deviates from the circle by at most
	// radius·(1-cos(θ/2)).
	n := 1
	if devRadius >= r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		if step <= 0 || math.IsNaN(step) {
			step = math.Pi / 4
		}
		n = max(int(math.Ceil(math.Abs(sweep)/step)), 1)
	}

	i0 := 1
	if includeStart {
		i0 = 0
	}
	dt := sweep / float64(n)
	for i := i0; i <= n; i++ {
		sin, cos := math.Sincos(float64(i) * dt)
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		r.outline = append(r.outline, center.Add(dir.Mul(radius)))
	}
}

// cross returns the z component of the cross product of a and b.
func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}
