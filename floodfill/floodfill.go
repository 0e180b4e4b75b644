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

// Package floodfill recolours connected regions of an image.
package floodfill

import (
	"image"
	"image/color"
)

// Fill replaces the colour of all pixels which are 4-connected to seed and
// have exactly the same RGBA value as seed, by target.  It returns the
// number of pixels changed.
//
// Nothing happens if seed lies outside the image, or if the seed pixel
// already has the target colour.
//
// The region is filled column by column, using an explicit stack of
// pixel positions, so that large regions cannot exhaust the call stack.
func Fill(img *image.NRGBA, seed image.Point, target color.NRGBA) int {
	b := img.Bounds()
	if !seed.In(b) {
		return 0
	}
	width, height := b.Dx(), b.Dy()
	pix := img.Pix
	stride := img.Stride

	// offset of pixel (x, y), relative to the image origin
	offset := func(x, y int) int {
		return y*stride + x*4
	}
	x0, y0 := seed.X-b.Min.X, seed.Y-b.Min.Y

	var source [4]uint8
	copy(source[:], pix[offset(x0, y0):])
	fill := [4]uint8{target.R, target.G, target.B, target.A}
	if source == fill {
		return 0
	}

	matches := func(i int) bool {
		return pix[i] == source[0] && pix[i+1] == source[1] &&
			pix[i+2] == source[2] && pix[i+3] == source[3]
	}
	paint := func(i int) {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = fill[0], fill[1], fill[2], fill[3]
	}

	count := 0
	stack := []int{x0, y0}
	for len(stack) > 0 {
		x, y := stack[len(stack)-2], stack[len(stack)-1]
		stack = stack[:len(stack)-2]

		// walk up to the top of the matching run in this column
		for y > 0 && matches(offset(x, y-1)) {
			y--
		}

		reachLeft, reachRight := false, false
		for ; y < height; y++ {
			i := offset(x, y)
			if !matches(i) {
				break
			}
			paint(i)
			count++

			if x > 0 {
				if matches(i - 4) {
					if !reachLeft {
						stack = append(stack, x-1, y)
						reachLeft = true
					}
				} else {
					reachLeft = false
				}
			}
			if x < width-1 {
				if matches(i + 4) {
					if !reachRight {
						stack = append(stack, x+1, y)
						reachRight = true
					}
				} else {
					reachRight = false
				}
			}
		}
	}
	return count
}
