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
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// ErrUnknownFormat is returned for unsupported image formats.
var ErrUnknownFormat = errors.New("unknown image format")

// Format is an image file format.
type Format string

// These are the supported export formats.  PNG, BMP and TIFF preserve
// the pixels exactly.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	PDF  Format = "pdf"
)

// jpegQuality is used for JPEG export.
const jpegQuality = 95

// ParseFormat converts a format name or file extension, for example
// "png" or ".jpg", into a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	case "pdf":
		return PDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatForFile chooses the format from the extension of a file name.
func FormatForFile(fname string) (Format, error) {
	return ParseFormat(filepath.Ext(fname))
}

// Encode writes the content of the canvas to w.
func (c *Canvas) Encode(w io.Writer, f Format) error {
	return Encode(w, c.img, f)
}

// Encode writes img to w in the given format.
//
// JPEG has no alpha channel, so images are flattened onto a white
// background first.  PDF output consists of a single page of the size of
// the image (one point per pixel), showing the image.
func Encode(w io.Writer, img *image.NRGBA, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, flatten(img), &jpeg.Options{Quality: jpegQuality})
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case PDF:
		return encodePDF(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// flatten composites img onto an opaque white background.
func flatten(img *image.NRGBA) *image.RGBA {
	b := img.Bounds()
	res := image.NewRGBA(b)
	draw.Draw(res, b, image.White, image.Point{}, draw.Src)
	draw.Draw(res, b, img, b.Min, draw.Over)
	return res
}

// Scale returns a copy of img resampled to the given size.
func Scale(img *image.NRGBA, width, height int) *image.NRGBA {
	res := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(res, res.Bounds(), img, img.Bounds(), draw.Src, nil)
	return res
}

func encodePDF(w io.Writer, img *image.NRGBA) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	b := img.Bounds()
	width, height := float64(b.Dx()), float64(b.Dy())
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	doc.SetCreator("seehuhn.de/go/sketch", true)
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("content", opt, &buf)
	doc.ImageOptions("content", 0, 0, width, height, false, opt, 0, "")
	return doc.Output(w)
}
