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
	"image"
	"image/color"
	"log/slog"
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/sketch/canvas"
	"seehuhn.de/go/sketch/smooth"
)

// RendererOptions control how commands are drawn.
type RendererOptions struct {
	// Resolution is the number of pixels per logical unit.
	// Zero means 1.
	Resolution float64

	// Smoothing is applied to the points of strokes and erasures.
	Smoothing smooth.Options

	// Logger is used for log output.  If this is nil, the logger
	// set by [SetLogger] is used.
	Logger *slog.Logger
}

// Renderer draws the active part of a command log into a canvas.
//
// The renderer remembers how many commands are already reflected in the
// canvas, so that committing a new command only draws that command.
// Moving backwards in the log redraws everything from an empty canvas.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	content *canvas.Canvas
	painter

	renderHead int
}

// NewRenderer creates a renderer which draws into content.  The canvas
// must not be modified by other code, except through [Renderer.Invalidate].
func NewRenderer(content *canvas.Canvas, opt RendererOptions) *Renderer {
	scale := opt.Resolution
	if scale == 0 {
		scale = 1
	}
	return &Renderer{
		content: content,
		painter: painter{
			scale:     scale,
			smoothing: opt.Smoothing,
			logger:    opt.Logger,
			colors:    make(map[string]color.NRGBA),
		},
	}
}

// Render brings the canvas up to date with commands[:head].
func (r *Renderer) Render(commands []Command, head int) {
	head = max(0, min(head, len(commands)))

	if r.renderHead > head {
		r.renderHead = 0
	}
	full := r.renderHead == 0
	if full {
		r.content.Clear()
	}

	from := r.renderHead
	for _, cmd := range commands[from:head] {
		r.paint(r.content, cmd)
	}
	r.renderHead = head

	if from < head || full {
		r.log().Debug("render",
			"from", from,
			"to", head,
			"full", full)
	}
}

// Invalidate makes the next call to [Renderer.Render] redraw all commands,
// starting from an empty canvas.
func (r *Renderer) Invalidate() {
	r.renderHead = 0
}

// RenderHead returns the number of commands reflected in the canvas.
func (r *Renderer) RenderHead() int {
	return r.renderHead
}

// painter draws individual commands.
type painter struct {
	scale     float64
	smoothing smooth.Options
	logger    *slog.Logger

	// colors caches resolved colour specifications.  The cache is
	// emptied when it reaches maxCachedColors entries.
	colors map[string]color.NRGBA
}

func (p *painter) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return Logger()
}

// resolve converts a colour specification into the pixel value it
// produces on a transparent canvas.
func (p *painter) resolve(spec string) (color.NRGBA, error) {
	if c, ok := p.colors[spec]; ok {
		return c, nil
	}
	c, err := canvas.Resolve(spec)
	if err != nil {
		return color.NRGBA{}, err
	}
	if len(p.colors) >= maxCachedColors {
		clear(p.colors)
	}
	p.colors[spec] = c
	return c, nil
}

const maxCachedColors = 256

// paint draws a single command onto c.
func (p *painter) paint(c *canvas.Canvas, cmd Command) {
	switch cmd := cmd.(type) {
	case Stroke:
		paint, err := p.resolve(cmd.Color)
		if err != nil {
			p.log().Warn("skipping stroke", "error", err)
			return
		}
		curve := smooth.SmoothWith(cmd.Points, p.smoothing)
		c.Stroke(curve.Path(), canvas.Style{
			Paint: paint,
			Alpha: cmd.Opacity,
			Op:    canvas.SourceOver,
			Width: cmd.Size,
			Cap:   graphics.LineCapRound,
			Join:  graphics.LineJoinRound,
			Scale: p.scale,
		})

	case Erase:
		curve := smooth.SmoothWith(cmd.Points, p.smoothing)
		c.Stroke(curve.Path(), canvas.Style{
			Paint: color.NRGBA{A: 255},
			Alpha: 1,
			Op:    canvas.DestinationOut,
			Width: cmd.Size,
			Cap:   graphics.LineCapRound,
			Join:  graphics.LineJoinRound,
			Scale: p.scale,
		})

	case Fill:
		target, err := p.fillColor(cmd.Color, cmd.Opacity)
		if err != nil {
			p.log().Warn("skipping fill", "error", err)
			return
		}
		seed := p.device(cmd.Point)
		n := c.FloodFill(seed, target)
		p.log().Debug("flood fill",
			"seed", seed,
			"pixels", n)
	}
}

// fillColor gives the pixel value used for flood filling.
func (p *painter) fillColor(spec string, opacity float64) (color.NRGBA, error) {
	c, err := p.resolve(spec)
	if err != nil {
		return color.NRGBA{}, err
	}
	c.A = uint8(max(0, min(255, math.Round(opacity*255))))
	if c.A == 0 {
		return color.NRGBA{}, nil
	}
	return c, nil
}

// device returns the pixel containing the logical point q.
func (p *painter) device(q vec.Vec2) image.Point {
	return image.Point{
		X: int(math.Floor(q.X * p.scale)),
		Y: int(math.Floor(q.Y * p.scale)),
	}
}
