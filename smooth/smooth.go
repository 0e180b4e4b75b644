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

// Package smooth turns pointer samples into a smooth curve.
//
// The samples are first thinned out, so that consecutive points are at
// least a minimum distance apart.  The remaining points are then joined by
// cubic Bézier segments whose control points follow the direction of the
// neighbouring points.
package smooth

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

const (
	// DefaultSmoothing is the control point distance, as a fraction of
	// the distance between the neighbours of a point.
	DefaultSmoothing = 0.2

	// DefaultMinDistance is the minimum distance between kept samples.
	DefaultMinDistance = 1.0
)

// Options controls the curve fitting.
type Options struct {
	Smoothing   float64
	MinDistance float64
}

// Defaults returns the options used by [Smooth].
func Defaults() Options {
	return Options{Smoothing: DefaultSmoothing, MinDistance: DefaultMinDistance}
}

// Kind identifies the type of a [Segment].
type Kind uint8

// These are the segment kinds found in a [Curve].
const (
	MoveTo Kind = iota
	LineTo
	CubeTo
)

func (k Kind) String() string {
	switch k {
	case MoveTo:
		return "MoveTo"
	case LineTo:
		return "LineTo"
	case CubeTo:
		return "CubeTo"
	default:
		return "Kind(?)"
	}
}

// Segment is one element of a [Curve].
// MoveTo and LineTo use Pts[0].  CubeTo uses two control points in Pts[0]
// and Pts[1] and the end point in Pts[2].
type Segment struct {
	Kind Kind
	Pts  [3]vec.Vec2
}

// End returns the point where the segment ends.
func (s Segment) End() vec.Vec2 {
	if s.Kind == CubeTo {
		return s.Pts[2]
	}
	return s.Pts[0]
}

// Curve is a sequence of segments, starting with a MoveTo.
// The empty curve draws nothing.
type Curve []Segment

// Path returns the curve as a path, suitable for stroking.
func (c Curve) Path() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [3]vec.Vec2
		for _, seg := range c {
			buf = seg.Pts
			var ok bool
			switch seg.Kind {
			case MoveTo:
				ok = yield(path.CmdMoveTo, buf[:1])
			case LineTo:
				ok = yield(path.CmdLineTo, buf[:1])
			case CubeTo:
				ok = yield(path.CmdCubeTo, buf[:3])
			}
			if !ok {
				return
			}
		}
	}
}

// Decimate returns the points which are at least minDistance away from
// the previously kept point.  The first point is always kept and the order
// of the points is preserved.
func Decimate(points []vec.Vec2, minDistance float64) []vec.Vec2 {
	if len(points) == 0 {
		return nil
	}
	res := []vec.Vec2{points[0]}
	last := points[0]
	for _, p := range points[1:] {
		if p.Sub(last).Length() >= minDistance {
			res = append(res, p)
			last = p
		}
	}
	return res
}

// Smooth fits a curve through the given points, using the default minimum
// distance.
func Smooth(points []vec.Vec2, smoothing float64) Curve {
	return SmoothWith(points, Options{Smoothing: smoothing, MinDistance: DefaultMinDistance})
}

// SmoothWith fits a curve through the given points.
//
// The curve starts with a MoveTo and a LineTo to the first point, so that
// even a single point gives a visible dot when stroked with round caps.
// Every further point is reached by a cubic segment.  The control points
// near a point p_i lie on the line through p_i which is parallel to
// p_{i+1} - p_{i-1}, at a distance proportional to |p_{i+1} - p_{i-1}|.
func SmoothWith(points []vec.Vec2, opt Options) Curve {
	pts := Decimate(points, opt.MinDistance)
	if len(pts) == 0 {
		return nil
	}

	// neighbour at index i, or fallback if out of range
	at := func(i int, fallback vec.Vec2) vec.Vec2 {
		if i < 0 || i >= len(pts) {
			return fallback
		}
		return pts[i]
	}

	curve := make(Curve, 0, len(pts)+1)
	curve = append(curve,
		Segment{Kind: MoveTo, Pts: [3]vec.Vec2{pts[0]}},
		Segment{Kind: LineTo, Pts: [3]vec.Vec2{pts[0]}})
	for i := 1; i < len(pts); i++ {
		p := pts[i]
		prev := pts[i-1]
		c1 := control(prev, at(i-2, prev), p, opt.Smoothing, false)
		c2 := control(p, prev, at(i+1, p), opt.Smoothing, true)
		curve = append(curve, Segment{Kind: CubeTo, Pts: [3]vec.Vec2{c1, c2, p}})
	}
	return curve
}

// control returns p moved by |next-prev|·smoothing in the direction of
// next-prev, or in the opposite direction if reverse is set.
func control(p, prev, next vec.Vec2, smoothing float64, reverse bool) vec.Vec2 {
	d := next.Sub(prev)
	l := d.Length() * smoothing
	angle := math.Atan2(d.Y, d.X)
	if reverse {
		angle += math.Pi
	}
	sin, cos := math.Sincos(angle)
	return vec.Vec2{X: p.X + cos*l, Y: p.Y + sin*l}
}
