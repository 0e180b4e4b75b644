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
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch/canvas"
	"seehuhn.de/go/sketch/config"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func newEditor(t *testing.T) *Editor {
	t.Helper()
	cfg := config.Default()
	cfg.Width, cfg.Height = 40, 30
	e, err := New(cfg)
	require.NoError(t, err)
	return e
}

func line(x0, y0, x1, y1 float64) []vec.Vec2 {
	return []vec.Vec2{{X: x0, Y: y0}, {X: x1, Y: y1}}
}

func pixels(e *Editor) []byte {
	return slices.Clone(e.Content().Image().Pix)
}

func isTransparent(img *image.NRGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			return false
		}
	}
	return true
}

func TestNewInvalid(t *testing.T) {
	cfg := config.Default()
	cfg.Width = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)

	cfg = config.Default()
	cfg.Width, cfg.Height, cfg.Resolution = 1, 1, 0.5
	_, err = New(cfg)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestDeviceSize(t *testing.T) {
	cfg := config.Default()
	cfg.Width, cfg.Height, cfg.Resolution = 40, 30, 1.5
	e, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, 60, e.Content().Width())
	assert.Equal(t, 45, e.Content().Height())
	assert.Equal(t, e.Content().Bounds(), e.Preview().Bounds())
}

func TestHistoryInvariants(t *testing.T) {
	e := newEditor(t)
	rng := rand.New(rand.NewPCG(3, 4))
	for range 500 {
		switch rng.IntN(3) {
		case 0:
			require.NoError(t, e.Commit(Fill{Color: "red", Opacity: 1}))
		case 1:
			e.Undo()
		case 2:
			e.Redo()
		}
		all, head := e.History()
		require.True(t, head >= 0 && head <= len(all))
		require.Equal(t, head > 0, e.CanUndo())
		require.Equal(t, head < len(all), e.CanRedo())
		require.Len(t, e.ActiveCommands(), head)
	}
}

func TestCommitDiscardsRedo(t *testing.T) {
	e := newEditor(t)
	a := Fill{Point: vec.Vec2{X: 1}, Color: "red", Opacity: 1}
	b := Fill{Point: vec.Vec2{X: 2}, Color: "red", Opacity: 1}
	c := Fill{Point: vec.Vec2{X: 3}, Color: "red", Opacity: 1}
	d := Fill{Point: vec.Vec2{X: 4}, Color: "red", Opacity: 1}
	for _, cmd := range []Command{a, b, c} {
		require.NoError(t, e.Commit(cmd))
	}
	require.True(t, e.Undo())
	require.True(t, e.Undo())
	require.NoError(t, e.Commit(d))

	all, head := e.History()
	assert.Equal(t, []Command{a, d}, all)
	assert.Equal(t, 2, head)
	assert.False(t, e.CanRedo())
	assert.False(t, e.Redo())
}

func TestUndoRedoOutOfRange(t *testing.T) {
	e := newEditor(t)
	assert.False(t, e.Undo())
	assert.False(t, e.Redo())

	require.NoError(t, e.Commit(Erase{Points: line(0, 0, 5, 5), Size: 3}))
	assert.False(t, e.Redo())
	all, head := e.History()
	assert.Len(t, all, 1)
	assert.Equal(t, 1, head)
}

func TestCommitInvalid(t *testing.T) {
	nan := math.NaN()
	tests := map[string]Command{
		"nil":           nil,
		"size":          Stroke{Points: line(0, 0, 1, 1), Color: "red", Opacity: 1},
		"negative size": Erase{Size: -1},
		"opacity":       Stroke{Color: "red", Size: 1, Opacity: 1.5},
		"color":         Stroke{Color: "blurple", Size: 1, Opacity: 1},
		"fill color":    Fill{Color: "#12", Opacity: 1},
		"fill opacity":  Fill{Color: "red", Opacity: -0.5},
		"point":         Erase{Points: []vec.Vec2{{X: nan}}, Size: 1},
	}
	for name, cmd := range tests {
		t.Run(name, func(t *testing.T) {
			e := newEditor(t)
			err := e.Commit(cmd)
			assert.ErrorIs(t, err, ErrInvalidCommand)
			assert.False(t, e.CanUndo())
		})
	}
}

func TestCommitCopiesPoints(t *testing.T) {
	e := newEditor(t)
	points := line(1, 1, 9, 9)
	require.NoError(t, e.Commit(Stroke{Points: points, Color: "red", Size: 2, Opacity: 1}))
	points[0] = vec.Vec2{X: 100, Y: 100}

	cmd := e.ActiveCommands()[0].(Stroke)
	assert.Equal(t, vec.Vec2{X: 1, Y: 1}, cmd.Points[0])
}

func TestEmptyStroke(t *testing.T) {
	e := newEditor(t)
	require.NoError(t, e.Commit(Stroke{Color: "black", Size: 5, Opacity: 1}))
	assert.True(t, e.CanUndo())

	e.RenderContent()
	assert.True(t, isTransparent(e.Content().Image()))
}

func TestRenderIdempotent(t *testing.T) {
	e := newEditor(t)
	require.NoError(t, e.Commit(Stroke{Points: line(5, 15, 35, 15), Color: "red", Size: 6, Opacity: 0.5}))
	require.NoError(t, e.Commit(Stroke{Points: line(20, 2, 20, 28), Color: "blue", Size: 4, Opacity: 0.5}))

	e.RenderContent()
	assert.Equal(t, 2, e.renderer.RenderHead())
	before := pixels(e)

	e.RenderContent()
	assert.Equal(t, before, pixels(e))
	assert.Equal(t, 2, e.renderer.RenderHead())
}

func TestUndoRedoPixelIdentical(t *testing.T) {
	commands := []Command{
		Stroke{Points: line(5, 15, 35, 15), Color: "red", Size: 6, Opacity: 0.7},
		Fill{Point: vec.Vec2{X: 1, Y: 1}, Color: "#0000ff", Opacity: 0.5},
		Erase{Points: line(20, 0, 20, 30), Size: 3},
		Stroke{Points: []vec.Vec2{{X: 2, Y: 2}, {X: 10, Y: 20}, {X: 30, Y: 5}}, Color: "green", Size: 2, Opacity: 1},
	}

	e := newEditor(t)
	for _, cmd := range commands {
		require.NoError(t, e.Commit(cmd))
		e.RenderContent()
	}
	want := pixels(e)

	require.True(t, e.Undo())
	e.RenderContent()
	assert.NotEqual(t, want, pixels(e))
	require.True(t, e.Redo())
	e.RenderContent()
	assert.Equal(t, want, pixels(e))

	// the same drawing, rendered in one go
	fresh := newEditor(t)
	for _, cmd := range commands {
		require.NoError(t, fresh.Commit(cmd))
	}
	fresh.RenderContent()
	assert.Equal(t, want, pixels(fresh))
}

func TestCommitAfterUndoWithoutRender(t *testing.T) {
	e := newEditor(t)
	require.NoError(t, e.Commit(Stroke{Points: line(5, 5, 35, 5), Color: "red", Size: 4, Opacity: 1}))
	require.NoError(t, e.Commit(Stroke{Points: line(5, 25, 35, 25), Color: "red", Size: 4, Opacity: 1}))
	e.RenderContent()

	e.Undo()
	require.NoError(t, e.Commit(Stroke{Points: line(20, 10, 20, 20), Color: "blue", Size: 4, Opacity: 1}))
	e.RenderContent()

	c := e.Content()
	assert.Equal(t, red, c.SampleAt(image.Pt(10, 5)))
	assert.Equal(t, color.NRGBA{}, c.SampleAt(image.Pt(10, 25)))
	assert.Equal(t, blue, c.SampleAt(image.Pt(20, 15)))
}

func TestEraser(t *testing.T) {
	e := newEditor(t)
	require.NoError(t, e.Commit(Stroke{Points: line(5, 15, 35, 15), Color: "red", Size: 10, Opacity: 1}))

	e.SetTool(ToolEraser)
	require.NoError(t, e.PointerDown(vec.Vec2{X: 20, Y: 0}))
	require.NoError(t, e.DragTo(vec.Vec2{X: 20, Y: 30}))
	require.NoError(t, e.EndDrag())
	e.RenderContent()

	c := e.Content()
	assert.Equal(t, color.NRGBA{}, c.SampleAt(image.Pt(20, 15)))
	assert.Equal(t, red, c.SampleAt(image.Pt(10, 15)))

	cmd, ok := e.ActiveCommands()[1].(Erase)
	require.True(t, ok)
	assert.Equal(t, e.Size, cmd.Size)
}

func TestDragLifecycle(t *testing.T) {
	e := newEditor(t)

	assert.ErrorIs(t, e.DragTo(vec.Vec2{}), ErrNoDrag)
	assert.ErrorIs(t, e.EndDrag(), ErrNoDrag)

	require.NoError(t, e.PointerDown(vec.Vec2{X: 1, Y: 1}))
	assert.True(t, e.Dragging())
	assert.ErrorIs(t, e.PointerDown(vec.Vec2{X: 2, Y: 2}), ErrDragActive)
	assert.ErrorIs(t, e.BeginDrag(vec.Vec2{X: 2, Y: 2}), ErrDragActive)

	e.CancelDrag()
	e.CancelDrag()
	assert.False(t, e.Dragging())
	assert.False(t, e.CanUndo())

	e.Color, e.Size, e.Opacity = "blue", 3, 0.5
	require.NoError(t, e.PointerDown(vec.Vec2{X: 1, Y: 1}))
	require.NoError(t, e.DragTo(vec.Vec2{X: 5, Y: 1}))
	require.NoError(t, e.DragTo(vec.Vec2{X: 5, Y: 5}))
	require.NoError(t, e.EndDrag())
	assert.False(t, e.Dragging())

	want := Stroke{
		Points:  []vec.Vec2{{X: 1, Y: 1}, {X: 5, Y: 1}, {X: 5, Y: 5}},
		Color:   "blue",
		Size:    3,
		Opacity: 0.5,
	}
	assert.Equal(t, []Command{want}, e.ActiveCommands())
}

func TestSetToolCancelsDrag(t *testing.T) {
	e := newEditor(t)
	require.NoError(t, e.PointerDown(vec.Vec2{X: 1, Y: 1}))
	require.NoError(t, e.DragTo(vec.Vec2{X: 10, Y: 10}))

	e.SetTool(ToolEraser)
	assert.False(t, e.Dragging())
	assert.ErrorIs(t, e.EndDrag(), ErrNoDrag)
	assert.False(t, e.CanUndo())

	e.RenderPreview()
	e.HideCursor()
	e.RenderPreview()
	assert.True(t, isTransparent(e.Preview().Image()))
}

func TestDragOtherTool(t *testing.T) {
	e := newEditor(t)
	e.Tool = ToolEyedropper
	require.NoError(t, e.BeginDrag(vec.Vec2{X: 1, Y: 1}))
	require.NoError(t, e.EndDrag())
	assert.False(t, e.CanUndo())
}

func TestFill(t *testing.T) {
	e := newEditor(t)
	require.NoError(t, e.Commit(Stroke{Points: line(5, 15, 35, 15), Color: "red", Size: 6, Opacity: 1}))

	e.SetTool(ToolFill)
	e.Color, e.Opacity = "#0000ff", 1
	require.NoError(t, e.PointerDown(vec.Vec2{X: 1.7, Y: 1.2}))
	require.Len(t, e.ActiveCommands(), 2)
	assert.Equal(t, Fill{Point: vec.Vec2{X: 1, Y: 1}, Color: "#0000ff", Opacity: 1}, e.ActiveCommands()[1])

	e.RenderContent()
	c := e.Content()
	assert.Equal(t, blue, c.SampleAt(image.Pt(1, 1)))
	assert.Equal(t, blue, c.SampleAt(image.Pt(39, 29)))
	assert.Equal(t, red, c.SampleAt(image.Pt(20, 15)))
}

func TestFillGuard(t *testing.T) {
	e := newEditor(t)
	e.SetTool(ToolFill)

	// zero opacity fills with transparent pixels, which the empty
	// canvas already has
	e.Color, e.Opacity = "red", 0
	require.NoError(t, e.PointerDown(vec.Vec2{X: 5, Y: 5}))
	assert.False(t, e.CanUndo())

	e.Opacity = 1
	require.NoError(t, e.PointerDown(vec.Vec2{X: 5, Y: 5}))
	require.NoError(t, e.PointerDown(vec.Vec2{X: 10, Y: 10}))
	assert.Len(t, e.ActiveCommands(), 1)

	// outside the canvas
	require.NoError(t, e.PointerDown(vec.Vec2{X: -3, Y: 5}))
	assert.Len(t, e.ActiveCommands(), 1)

	e.Color = "blurple"
	assert.ErrorIs(t, e.PointerDown(vec.Vec2{X: 5, Y: 5}), ErrInvalidCommand)
}

func TestFillReplayNoop(t *testing.T) {
	e := newEditor(t)
	fill := Fill{Point: vec.Vec2{X: 3, Y: 3}, Color: "red", Opacity: 1}
	require.NoError(t, e.Commit(fill))
	e.RenderContent()
	before := pixels(e)

	require.NoError(t, e.Commit(fill))
	e.RenderContent()
	assert.Equal(t, before, pixels(e))
}

func TestEyedropper(t *testing.T) {
	tests := []struct {
		policy      config.TransparentPolicy
		color       string
		opacity     float64
		transparent string
		transOp     float64
	}{
		{config.Preserve, "rgb(255, 0, 0)", 1, "rgb(0, 0, 0)", 0},
		{config.White, "rgb(255, 0, 0)", 1, "rgb(255, 255, 255)", 1},
	}
	for _, test := range tests {
		t.Run(string(test.policy), func(t *testing.T) {
			cfg := config.Default()
			cfg.Width, cfg.Height = 40, 30
			cfg.Eyedropper.Transparent = test.policy
			e, err := New(cfg)
			require.NoError(t, err)
			require.NoError(t, e.Commit(Stroke{Points: line(5, 15, 35, 15), Color: "#f00", Size: 6, Opacity: 1}))

			e.SetTool(ToolEyedropper)
			require.NoError(t, e.PointerDown(vec.Vec2{X: 20, Y: 15}))
			assert.Equal(t, test.color, e.Color)
			assert.Equal(t, test.opacity, e.Opacity)

			require.NoError(t, e.PointerDown(vec.Vec2{X: 20, Y: 2}))
			assert.Equal(t, test.transparent, e.Color)
			assert.Equal(t, test.transOp, e.Opacity)

			assert.False(t, e.Dragging())
			assert.Len(t, e.ActiveCommands(), 1)
		})
	}
}

func TestEyedropperPartialAlpha(t *testing.T) {
	e := newEditor(t)
	require.NoError(t, e.Commit(Fill{Color: "#00ff00", Opacity: 0.4}))

	e.SetTool(ToolEyedropper)
	require.NoError(t, e.PointerDown(vec.Vec2{X: 7, Y: 7}))
	assert.Equal(t, "rgb(0, 255, 0)", e.Color)
	assert.Equal(t, 102.0/255, e.Opacity)
}

func TestPreview(t *testing.T) {
	e := newEditor(t)
	e.Color, e.Size = "red", 6
	require.NoError(t, e.PointerDown(vec.Vec2{X: 5, Y: 15}))
	require.NoError(t, e.DragTo(vec.Vec2{X: 35, Y: 15}))
	e.HideCursor()
	e.RenderPreview()

	p := e.Preview()
	assert.Equal(t, red, p.SampleAt(image.Pt(20, 15)))
	assert.True(t, isTransparent(e.Content().Image()))

	e.CancelDrag()
	e.SetTool(ToolEraser)
	require.NoError(t, e.PointerDown(vec.Vec2{X: 5, Y: 15}))
	require.NoError(t, e.DragTo(vec.Vec2{X: 35, Y: 15}))
	e.HideCursor()
	e.RenderPreview()
	assert.Equal(t, white, p.SampleAt(image.Pt(20, 15)))

	e.CancelDrag()
	e.RenderPreview()
	assert.True(t, isTransparent(p.Image()))
}

func TestPreviewCursor(t *testing.T) {
	e := newEditor(t)
	e.Size = 10
	e.MoveCursor(vec.Vec2{X: 20, Y: 20})
	e.RenderPreview()

	p := e.Preview()
	assert.Equal(t, color.NRGBA{}, p.SampleAt(image.Pt(20, 20)))

	// upper tick, from y=11 to y=5 along x=20
	tick := p.SampleAt(image.Pt(20, 8))
	assert.Equal(t, uint8(255), tick.A)
	assert.Less(t, tick.R, uint8(255))
	assert.Greater(t, tick.R, uint8(0))
	assert.Equal(t, color.NRGBA{}, p.SampleAt(image.Pt(20, 12)))

	// circle
	assert.NotZero(t, p.SampleAt(image.Pt(25, 20)).A)

	e.HideCursor()
	e.RenderPreview()
	assert.True(t, isTransparent(p.Image()))
}

func TestResize(t *testing.T) {
	e := newEditor(t)
	require.NoError(t, e.Commit(Stroke{Points: line(5, 15, 35, 15), Color: "red", Size: 6, Opacity: 1}))
	e.RenderContent()

	require.NoError(t, e.Resize(50, 20))
	assert.Equal(t, 0, e.renderer.RenderHead())
	assert.Equal(t, image.Rect(0, 0, 50, 20), e.Content().Bounds())
	assert.Equal(t, image.Rect(0, 0, 50, 20), e.Preview().Bounds())
	assert.True(t, isTransparent(e.Content().Image()))

	e.RenderContent()
	assert.Equal(t, red, e.Content().SampleAt(image.Pt(20, 15)))
	assert.Equal(t, 50, e.Config().Width)

	assert.ErrorIs(t, e.Resize(0, 10), ErrInvalidSize)
	assert.ErrorIs(t, e.Resize(10, -1), ErrInvalidSize)
	assert.Equal(t, image.Rect(0, 0, 50, 20), e.Content().Bounds())
}

func TestExportEmpty(t *testing.T) {
	e := newEditor(t)
	var buf bytes.Buffer
	require.NoError(t, e.ExportContentAsImage(&buf, canvas.PNG))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 30), img.Bounds())
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			require.Zero(t, a)
		}
	}
}

func TestExport(t *testing.T) {
	e := newEditor(t)
	require.NoError(t, e.Commit(Fill{Color: "red", Opacity: 1}))

	var buf bytes.Buffer
	require.NoError(t, e.ExportContentAsImage(&buf, canvas.PNG))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBAModel.Convert(red), color.NRGBAModel.Convert(img.At(3, 3)))

	buf.Reset()
	err = e.ExportContentAsImage(&buf, canvas.Format("gif"))
	assert.ErrorIs(t, err, canvas.ErrUnknownFormat)
}

func TestSliderValue(t *testing.T) {
	tests := []struct {
		x, width, want float64
	}{
		{0, 100, 0},
		{50, 100, 0.5},
		{100, 100, 1},
		{-10, 100, 0},
		{150, 100, 1},
		{5, 0, 0},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, SliderValue(test.x, test.width))
	}
}

func TestTool(t *testing.T) {
	for _, tool := range []Tool{ToolPen, ToolEraser, ToolFill, ToolEyedropper} {
		got, err := ParseTool(tool.String())
		require.NoError(t, err)
		assert.Equal(t, tool, got)
	}
	_, err := ParseTool("brush")
	assert.Error(t, err)
	assert.Equal(t, "Tool(9)", Tool(9).String())
}

func TestSessionLogging(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	e := newEditor(t)
	require.NoError(t, e.Commit(Fill{Color: "red", Opacity: 1}))
	assert.Contains(t, buf.String(), "session="+e.Session().String())
	assert.Contains(t, buf.String(), "command=fill")
}
