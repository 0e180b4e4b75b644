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
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"
	"slices"

	"github.com/google/uuid"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch/canvas"
	"seehuhn.de/go/sketch/config"
	"seehuhn.de/go/sketch/history"
	"seehuhn.de/go/sketch/smooth"
)

// Editor is an interactive drawing surface.
//
// The editor owns two canvases of the same size: the content canvas shows
// the committed drawing, and the preview canvas shows the stroke which is
// currently being drawn together with the cursor.  Hosts forward pointer
// events to the editor, call [Editor.RenderContent] and
// [Editor.RenderPreview] after every change, and display the two canvases
// on top of each other.
//
// All coordinates are in logical units.  The canvases have
// [config.Config.Resolution] pixels per logical unit.
//
// An Editor is not safe for concurrent use.
type Editor struct {
	// Tool is the active tool.  Use [Editor.SetTool] to change tools
	// while a drag may be in progress.
	Tool Tool

	// Color, Size and Opacity are the settings used for new commands.
	Color   string
	Size    float64
	Opacity float64

	cfg      config.Config
	hist     history.Log[Command]
	content  *canvas.Canvas
	preview  *canvas.Canvas
	renderer *Renderer
	session  uuid.UUID

	dragging bool
	points   []vec.Vec2

	cursor    vec.Vec2
	hasCursor bool
}

// New creates an editor with an empty drawing.
func New(cfg config.Config) (*Editor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w, h, err := deviceSize(cfg.Width, cfg.Height, cfg.Resolution)
	if err != nil {
		return nil, err
	}

	e := &Editor{
		Tool:    ToolPen,
		Color:   cfg.Pen.Color,
		Size:    cfg.Pen.Size,
		Opacity: cfg.Pen.Opacity,

		cfg:     cfg,
		content: canvas.New(w, h),
		preview: canvas.New(w, h),
		session: uuid.New(),
	}
	e.renderer = NewRenderer(e.content, RendererOptions{
		Resolution: cfg.Resolution,
		Smoothing: smooth.Options{
			Smoothing:   cfg.Smoothing.Factor,
			MinDistance: cfg.Smoothing.MinDistance,
		},
	})
	e.log().Debug("new editor",
		"width", w,
		"height", h)
	return e, nil
}

// deviceSize converts a size in logical units into pixels.
func deviceSize(width, height int, resolution float64) (int, int, error) {
	w := int(math.Floor(float64(width) * resolution))
	h := int(math.Floor(float64(height) * resolution))
	if width <= 0 || height <= 0 || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return w, h, nil
}

func (e *Editor) log() *slog.Logger {
	return Logger().With("session", e.session.String())
}

// Session returns the identifier of the editor, which is attached to all
// log messages.
func (e *Editor) Session() uuid.UUID {
	return e.session
}

// Config returns the configuration of the editor.  The width and height
// reflect the most recent call to [Editor.Resize].
func (e *Editor) Config() config.Config {
	return e.cfg
}

// Content returns the canvas which holds the committed drawing.
func (e *Editor) Content() *canvas.Canvas {
	return e.content
}

// Preview returns the canvas which holds the stroke in progress and the
// cursor.
func (e *Editor) Preview() *canvas.Canvas {
	return e.preview
}

// Commit appends cmd to the history, discarding all commands which could
// be redone.  Commands with invalid settings are rejected with an error
// wrapping [ErrInvalidCommand].
func (e *Editor) Commit(cmd Command) error {
	if err := validate(cmd); err != nil {
		return err
	}
	if e.renderer.RenderHead() > e.hist.Head() {
		// the drawn commands are about to be replaced
		e.renderer.Invalidate()
	}
	e.hist.Commit(clone(cmd))
	e.log().Debug("commit",
		"command", commandName(cmd),
		"head", e.hist.Head())
	return nil
}

// Undo deactivates the most recent active command.
// It returns false, without any other effect, if there is nothing to undo.
func (e *Editor) Undo() bool {
	return e.hist.Undo()
}

// Redo re-activates the most recently undone command.
// It returns false, without any other effect, if there is nothing to redo.
func (e *Editor) Redo() bool {
	return e.hist.Redo()
}

// CanUndo reports whether [Editor.Undo] would have an effect.
func (e *Editor) CanUndo() bool {
	return e.hist.CanUndo()
}

// CanRedo reports whether [Editor.Redo] would have an effect.
func (e *Editor) CanRedo() bool {
	return e.hist.CanRedo()
}

// ActiveCommands returns a copy of the commands which make up the drawing.
func (e *Editor) ActiveCommands() []Command {
	return slices.Clone(e.hist.Active())
}

// History returns a copy of all commands, including the ones which have
// been undone, together with the number of active commands.
func (e *Editor) History() ([]Command, int) {
	return slices.Clone(e.hist.Items()), e.hist.Head()
}

// RenderContent updates the content canvas to show the active commands.
func (e *Editor) RenderContent() {
	e.renderer.Render(e.hist.Items(), e.hist.Head())
}

// Resize changes the size of the drawing surface, in logical units.
// Both canvases are reallocated and the next call to
// [Editor.RenderContent] redraws the whole drawing.
func (e *Editor) Resize(width, height int) error {
	w, h, err := deviceSize(width, height, e.cfg.Resolution)
	if err != nil {
		return err
	}
	e.cfg.Width = width
	e.cfg.Height = height
	e.content.Resize(w, h)
	e.preview.Resize(w, h)
	e.renderer.Invalidate()
	e.log().Debug("resize",
		"width", w,
		"height", h)
	return nil
}

// ExportContentAsImage writes the current drawing to w.
func (e *Editor) ExportContentAsImage(w io.Writer, format canvas.Format) error {
	e.RenderContent()
	if err := e.content.Encode(w, format); err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	e.log().Info("export",
		"format", string(format),
		"width", e.content.Width(),
		"height", e.content.Height())
	return nil
}

// device returns the pixel containing the logical point p.
func (e *Editor) device(p vec.Vec2) image.Point {
	return e.renderer.device(p)
}

// PointerDown handles a pointer press at p.
//
// With the eyedropper, the colour and opacity are picked from the
// drawing.  With the fill tool, a [Fill] command is committed unless the
// pixel under p already has the fill colour.  The pen and the eraser
// start a drag, which is continued by [Editor.DragTo] and finished by
// [Editor.EndDrag] or [Editor.CancelDrag].
func (e *Editor) PointerDown(p vec.Vec2) error {
	if e.dragging {
		return ErrDragActive
	}
	switch e.Tool {
	case ToolEyedropper:
		e.pick(p)
		return nil
	case ToolFill:
		return e.fill(p)
	default:
		return e.BeginDrag(p)
	}
}

// pick sets the colour and opacity from the pixel under p.
func (e *Editor) pick(p vec.Vec2) {
	e.RenderContent()
	c := e.content.SampleAt(e.device(p))
	if c.A == 0 && e.cfg.Eyedropper.Transparent == config.White {
		c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	e.Color = fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	e.Opacity = float64(c.A) / 255
	e.log().Debug("pick color",
		"color", e.Color,
		"opacity", e.Opacity)
}

// fill commits a flood fill at p.
func (e *Editor) fill(p vec.Vec2) error {
	p = vec.Vec2{X: math.Floor(p.X), Y: math.Floor(p.Y)}
	target, err := e.renderer.fillColor(e.Color, e.Opacity)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}

	e.RenderContent()
	seed := e.device(p)
	if !seed.In(e.content.Bounds()) || e.content.SampleAt(seed) == target {
		e.log().Debug("fill skipped", "seed", seed)
		return nil
	}
	return e.Commit(Fill{Point: p, Color: e.Color, Opacity: e.Opacity})
}

// BeginDrag starts collecting the points of a new path at p.
func (e *Editor) BeginDrag(p vec.Vec2) error {
	if e.dragging {
		return ErrDragActive
	}
	e.dragging = true
	e.points = append(e.points[:0], p)
	e.cursor, e.hasCursor = p, true
	e.log().Debug("begin drag", "tool", e.Tool.String())
	return nil
}

// DragTo adds p to the path of the current drag.
func (e *Editor) DragTo(p vec.Vec2) error {
	if !e.dragging {
		return ErrNoDrag
	}
	e.points = append(e.points, p)
	e.cursor, e.hasCursor = p, true
	return nil
}

// EndDrag finishes the current drag.  With the pen this commits a
// [Stroke], with the eraser an [Erase] command.  Drags of other tools
// commit nothing.
func (e *Editor) EndDrag() error {
	if !e.dragging {
		return ErrNoDrag
	}
	points := e.points
	e.dragging = false
	e.points = nil
	e.log().Debug("end drag",
		"tool", e.Tool.String(),
		"points", len(points))

	switch e.Tool {
	case ToolPen:
		return e.Commit(Stroke{
			Points:  points,
			Color:   e.Color,
			Size:    e.Size,
			Opacity: e.Opacity,
		})
	case ToolEraser:
		return e.Commit(Erase{
			Points: points,
			Size:   e.Size,
		})
	}
	return nil
}

// CancelDrag discards the current drag without committing anything.
// It does nothing if no drag is in progress.
func (e *Editor) CancelDrag() {
	if e.dragging {
		e.log().Debug("cancel drag")
	}
	e.dragging = false
	e.points = e.points[:0]
}

// Dragging reports whether a drag is in progress.
func (e *Editor) Dragging() bool {
	return e.dragging
}

// SetTool changes the active tool.  A drag in progress is cancelled.
func (e *Editor) SetTool(t Tool) {
	e.CancelDrag()
	e.Tool = t
}

// MoveCursor records the pointer position, for drawing the cursor in the
// preview.
func (e *Editor) MoveCursor(p vec.Vec2) {
	e.cursor, e.hasCursor = p, true
}

// HideCursor removes the cursor from the preview, for example when a
// touch ends.
func (e *Editor) HideCursor() {
	e.hasCursor = false
}

// SliderValue maps a horizontal pointer position x on a slider of the
// given width to a value in the range [0, 1].
func SliderValue(x, width float64) float64 {
	if !(width > 0) {
		return 0
	}
	return max(0, min(1, x/width))
}
