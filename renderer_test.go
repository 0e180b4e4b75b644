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
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch/canvas"
	"seehuhn.de/go/sketch/smooth"
)

func TestRendererResolution(t *testing.T) {
	c := canvas.New(20, 20)
	r := NewRenderer(c, RendererOptions{Resolution: 2, Smoothing: smooth.Defaults()})

	commands := []Command{
		Stroke{Points: line(3, 5, 7, 5), Color: "red", Size: 2, Opacity: 1},
	}
	r.Render(commands, 1)
	assert.Equal(t, red, c.SampleAt(image.Pt(10, 9)))
	assert.Equal(t, red, c.SampleAt(image.Pt(10, 10)))
	assert.Equal(t, color.NRGBA{}, c.SampleAt(image.Pt(10, 14)))

	// the fill seed is in device pixels
	commands = append(commands, Fill{Point: vec.Vec2{X: 5, Y: 9.9}, Color: "blue", Opacity: 1})
	r.Render(commands, 2)
	assert.Equal(t, blue, c.SampleAt(image.Pt(10, 19)))
	assert.Equal(t, blue, c.SampleAt(image.Pt(0, 0)))
	assert.Equal(t, red, c.SampleAt(image.Pt(10, 10)))
}

func TestRendererHead(t *testing.T) {
	c := canvas.New(10, 10)
	r := NewRenderer(c, RendererOptions{})
	commands := []Command{
		Fill{Color: "red", Opacity: 1},
		Fill{Color: "blue", Opacity: 1},
	}

	r.Render(commands, 2)
	assert.Equal(t, 2, r.RenderHead())
	assert.Equal(t, blue, c.SampleAt(image.Pt(5, 5)))

	r.Render(commands, 1)
	assert.Equal(t, 1, r.RenderHead())
	assert.Equal(t, red, c.SampleAt(image.Pt(5, 5)))

	r.Render(commands, 0)
	assert.Equal(t, 0, r.RenderHead())
	assert.Equal(t, color.NRGBA{}, c.SampleAt(image.Pt(5, 5)))

	// out of range heads are clamped
	r.Render(commands, 7)
	assert.Equal(t, 2, r.RenderHead())

	// content drawn behind the renderer's back survives until invalidated
	c.FloodFill(image.Pt(0, 0), red)
	r.Render(commands, 2)
	assert.Equal(t, red, c.SampleAt(image.Pt(5, 5)))
	r.Invalidate()
	r.Render(commands, 2)
	assert.Equal(t, blue, c.SampleAt(image.Pt(5, 5)))
}

func TestRendererSkipsBadColor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	c := canvas.New(10, 10)
	r := NewRenderer(c, RendererOptions{Logger: logger})
	commands := []Command{
		Stroke{Points: line(0, 5, 10, 5), Color: "blurple", Size: 4, Opacity: 1},
		Fill{Point: vec.Vec2{X: 1, Y: 1}, Color: "no such color", Opacity: 1},
		Erase{Points: line(0, 5, 10, 5), Size: 4},
	}
	r.Render(commands, len(commands))
	assert.Equal(t, 3, r.RenderHead())
	assert.True(t, isTransparent(c.Image()))

	out := buf.String()
	require.Contains(t, out, "skipping stroke")
	assert.Contains(t, out, "skipping fill")
	assert.Contains(t, out, "level=WARN")
}

func TestRendererColorCache(t *testing.T) {
	r := NewRenderer(canvas.New(1, 1), RendererOptions{})
	c1, err := r.resolve("rgba(255, 0, 0, 0.5)")
	require.NoError(t, err)
	c2, err := r.resolve("rgba(255, 0, 0, 0.5)")
	require.NoError(t, err)
	assert.Equal(t, c1, c2)
	assert.Len(t, r.colors, 1)

	_, err = r.resolve("blurple")
	assert.ErrorIs(t, err, canvas.ErrUnknownColor)
	assert.Len(t, r.colors, 1)
}

func TestRendererColorCacheLimit(t *testing.T) {
	r := NewRenderer(canvas.New(1, 1), RendererOptions{})
	for i := range 3 * maxCachedColors / 2 {
		spec := fmt.Sprintf("rgb(%d, %d, 0)", i%256, i/256)
		c, err := r.resolve(spec)
		require.NoError(t, err)
		assert.Equal(t, color.NRGBA{R: uint8(i % 256), G: uint8(i / 256), A: 255}, c)
		assert.LessOrEqual(t, len(r.colors), maxCachedColors)
	}
}
