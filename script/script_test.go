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

package script

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch"
	"seehuhn.de/go/sketch/config"
)

const jsonScript = `{
  "width": 40,
  "height": 30,
  "actions": [
    {"op": "stroke", "points": [[5, 15], [35, 15]], "color": "red", "size": 6},
    {"op": "fill", "points": [[1, 1]], "color": "#0000ff", "opacity": 0.5},
    {"op": "erase", "points": [[20, 0], [20, 30]], "size": 4},
    {"op": "undo"}
  ]
}`

const yamlScript = `
width: 40
height: 30
actions:
  - op: stroke
    points: [[5, 15], [35, 15]]
    color: red
    size: 6
  - op: fill
    points: [[1, 1]]
    color: "#0000ff"
    opacity: 0.5
  - op: erase
    points:
      - [20, 0]
      - [20, 30]
    size: 4
  - op: undo
`

func TestJSONAndYAMLAgree(t *testing.T) {
	fromJSON, err := Decode(strings.NewReader(jsonScript), JSON)
	require.NoError(t, err)
	fromYAML, err := Decode(strings.NewReader(yamlScript), YAML)
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	assert.Len(t, fromJSON.Actions, 4)
	assert.Equal(t, 40, fromJSON.Width)
}

func TestDecodeUnknownField(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"actions": [], "colour": "red"}`), JSON)
	assert.Error(t, err)
	_, err = Decode(strings.NewReader("actions: []\ncolour: red\n"), YAML)
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	s, err := Decode(strings.NewReader(yamlScript), YAML)
	require.NoError(t, err)

	cfg := s.Configure(config.Default())
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
	assert.Equal(t, 1.0, cfg.Resolution)

	ed, err := sketch.New(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Apply(ed))

	want := []sketch.Command{
		sketch.Stroke{Points: []vec.Vec2{{X: 5, Y: 15}, {X: 35, Y: 15}}, Color: "red", Size: 6, Opacity: 1},
		sketch.Fill{Point: vec.Vec2{X: 1, Y: 1}, Color: "#0000ff", Opacity: 0.5},
	}
	assert.Equal(t, want, ed.ActiveCommands())
	assert.True(t, ed.CanRedo())

	ed.RenderContent()
	c := ed.Content()
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, c.SampleAt(image.Pt(20, 15)))
	assert.Equal(t, color.NRGBA{B: 255, A: 128}, c.SampleAt(image.Pt(1, 1)))
}

func TestApplyDefaultSize(t *testing.T) {
	s := &Script{Actions: []Action{{Op: "erase", Points: [][]float64{{0, 0}, {3, 4}}}}}
	ed, err := sketch.New(config.Default())
	require.NoError(t, err)
	ed.Size = 17
	require.NoError(t, s.Apply(ed))

	cmd := ed.ActiveCommands()[0].(sketch.Erase)
	assert.Equal(t, 17.0, cmd.Size)
}

func TestApplyErrors(t *testing.T) {
	tests := map[string]Action{
		"op":         {Op: "smudge"},
		"point":      {Op: "stroke", Points: [][]float64{{1, 2, 3}}, Color: "red"},
		"fill point": {Op: "fill", Points: [][]float64{{1, 2}, {3, 4}}, Color: "red"},
		"color":      {Op: "stroke", Points: [][]float64{{1, 2}}, Color: "blurple"},
	}
	for name, a := range tests {
		t.Run(name, func(t *testing.T) {
			ed, err := sketch.New(config.Default())
			require.NoError(t, err)
			s := &Script{Actions: []Action{{Op: "redo"}, a}}
			err = s.Apply(ed)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "action 1")
		})
	}
}

func TestFromCommands(t *testing.T) {
	commands := []sketch.Command{
		sketch.Stroke{Points: []vec.Vec2{{X: 1, Y: 2}, {X: 3, Y: 4}}, Color: "green", Size: 2, Opacity: 0.25},
		sketch.Erase{Points: []vec.Vec2{{X: 0, Y: 0}}, Size: 8},
		sketch.Fill{Point: vec.Vec2{X: 7, Y: 7}, Color: "white", Opacity: 1},
	}

	for _, format := range []Format{JSON, YAML} {
		var buf bytes.Buffer
		require.NoError(t, FromCommands(commands).Encode(&buf, format))

		s, err := Decode(&buf, format)
		require.NoError(t, err)
		ed, err := sketch.New(config.Default())
		require.NoError(t, err)
		require.NoError(t, s.Apply(ed))
		assert.Equal(t, commands, ed.ActiveCommands())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string]string{
		"drawing.json": jsonScript,
		"drawing.yml":  yamlScript,
	} {
		fname := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(fname, []byte(data), 0o644))
		s, err := Load(fname)
		require.NoError(t, err)
		assert.Len(t, s.Actions, 4)
	}

	_, err := Load(filepath.Join(dir, "drawing.txt"))
	assert.ErrorIs(t, err, ErrFormat)
	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
