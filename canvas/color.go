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

package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// ErrUnknownColor is returned for colour specifications which cannot be
// parsed.
var ErrUnknownColor = errors.New("unknown color")

// ParseColor converts a colour specification into a colour value.
//
// The following forms are understood: "#rgb", "#rgba", "#rrggbb",
// "#rrggbbaa", "rgb(r, g, b)", "rgba(r, g, b, a)", the CSS colour names,
// and "transparent".  In rgb() and rgba(), the colour components are
// numbers in the range 0-255 or percentages, and the alpha value is a
// number in the range 0-1 or a percentage.
func ParseColor(spec string) (color.NRGBA, error) {
	s := strings.ToLower(strings.TrimSpace(spec))

	switch {
	case s == "transparent":
		return color.NRGBA{}, nil
	case strings.HasPrefix(s, "#"):
		if c, ok := parseHex(s); ok {
			return c, nil
		}
	case strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba("):
		if c, ok := parseFunctional(s); ok {
			return c, nil
		}
	default:
		if c, ok := colornames.Map[s]; ok {
			return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
		}
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, spec)
}

func parseHex(s string) (color.NRGBA, bool) {
	var rgb, alpha string
	switch len(s) {
	case 4, 7:
		rgb = s
	case 5:
		rgb, alpha = s[:4], s[4:]+s[4:]
	case 9:
		rgb, alpha = s[:7], s[7:]
	default:
		return color.NRGBA{}, false
	}

	if strings.Trim(s[1:], "0123456789abcdef") != "" {
		return color.NRGBA{}, false
	}
	c, err := colorful.Hex(rgb)
	if err != nil {
		return color.NRGBA{}, false
	}
	r, g, b := c.RGB255()
	res := color.NRGBA{R: r, G: g, B: b, A: 255}
	if alpha != "" {
		a, err := strconv.ParseUint(alpha, 16, 8)
		if err != nil {
			return color.NRGBA{}, false
		}
		res.A = uint8(a)
	}
	return res, true
}

func parseFunctional(s string) (color.NRGBA, bool) {
	open := strings.IndexByte(s, '(')
	if !strings.HasSuffix(s, ")") {
		return color.NRGBA{}, false
	}
	args := strings.Split(s[open+1:len(s)-1], ",")
	if len(args) != 3 && len(args) != 4 {
		return color.NRGBA{}, false
	}

	var ch [3]uint8
	for i := range 3 {
		v, ok := parseComponent(args[i], 255)
		if !ok {
			return color.NRGBA{}, false
		}
		ch[i] = toByte(v)
	}
	res := color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: 255}
	if len(args) == 4 {
		a, ok := parseComponent(args[3], 1)
		if !ok {
			return color.NRGBA{}, false
		}
		res.A = toByte(a * 255)
	}
	return res, true
}

// parseComponent parses a number or a percentage of full, and clamps the
// result to [0, full].
func parseComponent(arg string, full float64) (float64, bool) {
	arg = strings.TrimSpace(arg)
	pct, isPercent := strings.CutSuffix(arg, "%")
	v, err := strconv.ParseFloat(pct, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	if isPercent {
		v = v * full / 100
	}
	return max(0, min(full, v)), true
}

// Resolve determines the pixel value which painting with the given colour
// specification produces on a transparent canvas.  The colour is painted
// onto a small scratch canvas and read back, so that the result is
// quantised exactly like pixels of a real drawing.
func Resolve(spec string) (color.NRGBA, error) {
	paint, err := ParseColor(spec)
	if err != nil {
		return color.NRGBA{}, err
	}

	const size = 10
	scratch := New(size, size)
	square := func(yield func(path.Command, []vec.Vec2) bool) {
		corners := []vec.Vec2{{X: 0, Y: 0}, {X: size, Y: 0}, {X: size, Y: size}, {X: 0, Y: size}}
		if !yield(path.CmdMoveTo, corners[:1]) {
			return
		}
		for i := 1; i < len(corners); i++ {
			if !yield(path.CmdLineTo, corners[i:i+1]) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
	scratch.Fill(square, Style{Paint: paint, Alpha: 1})
	return scratch.SampleAt(image.Point{}), nil
}
