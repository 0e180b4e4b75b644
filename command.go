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

// Package sketch implements an editor for raster drawings.
//
// A drawing is a log of [Command] values.  The [Renderer] folds the active
// part of the log into a pixel buffer, and the [Editor] ties the log, the
// rendering and the interactive state (tools, drags, cursor) together.
package sketch

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch/canvas"
)

var (
	// ErrDragActive is returned when a drag is started while another one
	// is in progress.
	ErrDragActive = errors.New("drag already active")

	// ErrNoDrag is returned by drag operations when no drag is in progress.
	ErrNoDrag = errors.New("no active drag")

	// ErrInvalidSize is returned for surface sizes which are not positive.
	ErrInvalidSize = errors.New("invalid surface size")

	// ErrInvalidCommand is returned when a malformed command is committed.
	ErrInvalidCommand = errors.New("invalid command")
)

// Command is a completed drawing action.
// The implementations are [Stroke], [Erase] and [Fill].
//
// Commands are values and are never modified after they have been
// committed.
type Command interface {
	isCommand()
}

// Stroke is a freehand line drawn with the pen.
type Stroke struct {
	// Points are the pointer positions in logical units, in the order
	// they were recorded.
	Points []vec.Vec2

	Color   string
	Size    float64
	Opacity float64
}

// Erase removes content along a freehand line.
type Erase struct {
	Points []vec.Vec2
	Size   float64
}

// Fill recolours the region of identical pixels around Point.
type Fill struct {
	Point   vec.Vec2
	Color   string
	Opacity float64
}

func (Stroke) isCommand() {}
func (Erase) isCommand()  {}
func (Fill) isCommand()   {}

// Tool is one of the editor tools.
type Tool uint8

// These are the available tools.
const (
	ToolPen Tool = iota
	ToolEraser
	ToolFill
	ToolEyedropper
)

var toolNames = []string{"pen", "eraser", "fill", "eyedropper"}

func (t Tool) String() string {
	if int(t) < len(toolNames) {
		return toolNames[t]
	}
	return fmt.Sprintf("Tool(%d)", t)
}

// ParseTool converts a tool name, as returned by [Tool.String], into a Tool.
func ParseTool(name string) (Tool, error) {
	idx := slices.Index(toolNames, name)
	if idx < 0 {
		return 0, fmt.Errorf("unknown tool %q", name)
	}
	return Tool(idx), nil
}

// commandName returns a short name for the kind of cmd, for logging.
func commandName(cmd Command) string {
	switch cmd.(type) {
	case Stroke:
		return "stroke"
	case Erase:
		return "erase"
	case Fill:
		return "fill"
	}
	return fmt.Sprintf("%T", cmd)
}

// validate checks that cmd can be committed.
func validate(cmd Command) error {
	var err error
	switch cmd := cmd.(type) {
	case Stroke:
		err = errors.Join(
			checkPoints(cmd.Points),
			checkSize(cmd.Size),
			checkOpacity(cmd.Opacity),
			checkColor(cmd.Color))
	case Erase:
		err = errors.Join(
			checkPoints(cmd.Points),
			checkSize(cmd.Size))
	case Fill:
		err = errors.Join(
			checkPoints([]vec.Vec2{cmd.Point}),
			checkOpacity(cmd.Opacity),
			checkColor(cmd.Color))
	case nil:
		err = errors.New("nil command")
	default:
		err = fmt.Errorf("unsupported command type %T", cmd)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}
	return nil
}

func checkPoints(points []vec.Vec2) error {
	for _, p := range points {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return fmt.Errorf("point %v is not finite", p)
		}
	}
	return nil
}

func checkSize(size float64) error {
	if !(size > 0) || !isFinite(size) {
		return fmt.Errorf("size %g", size)
	}
	return nil
}

func checkOpacity(opacity float64) error {
	if !(opacity >= 0 && opacity <= 1) {
		return fmt.Errorf("opacity %g", opacity)
	}
	return nil
}

func checkColor(spec string) error {
	_, err := canvas.ParseColor(spec)
	return err
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// clone returns a copy of cmd which shares no memory with the original.
func clone(cmd Command) Command {
	switch cmd := cmd.(type) {
	case Stroke:
		cmd.Points = slices.Clone(cmd.Points)
		return cmd
	case Erase:
		cmd.Points = slices.Clone(cmd.Points)
		return cmd
	}
	return cmd
}
