// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Package icons prepares the extension icons from a single source image.

# Pipeline

Each icon goes through the same steps:

	crop     The source is cropped to the bounding box of its
	         non-transparent pixels.
	resize   The cropped image is scaled to a square of the target size.
	         The aspect ratio is not preserved.
	enhance  Icons of 32 pixels and smaller get partially transparent
	         pixels boosted toward opaque and non-white pixels darkened
	         by 5 percent.
	center   The result is pasted onto a transparent canvas of the
	         target size.

See [Generate] for the batch that writes all icons of [DefaultSpecs].
*/
package icons

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Possible errors, used in tests.
var (
	// ErrSourceMissing is returned by Generate when the source image doesn't
	// exist.
	ErrSourceMissing = errors.New("source icon not found")
	errEmptyImage    = errors.New("image has no pixels")
	errUnknownFilter = errors.New("unknown resampling filter")
)

// Spec describes a single icon to generate.
type Spec struct {
	Size     int    // width and height in pixels
	Filename string // relative to the output directory
}

// DefaultSpecs are the icons required by the extension manifest.
var DefaultSpecs = []Spec{
	{Size: 16, Filename: "icon-16.png"},
	{Size: 32, Filename: "icon-32.png"},
	{Size: 48, Filename: "icon-48.png"},
	{Size: 128, Filename: "icon-128.png"},
}

// Filter is a resampling filter used when resizing.
type Filter int

const (
	// Lanczos is a Lanczos-3 windowed sinc filter.
	Lanczos Filter = iota
	// CatmullRom is a Catmull-Rom bicubic filter.
	CatmullRom
)

var filterNames = map[Filter]string{
	Lanczos:    "lanczos",
	CatmullRom: "catmullrom",
}

// String implements [flag.Value].
func (f Filter) String() string {
	if name, ok := filterNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// Set implements [flag.Value].
func (f *Filter) Set(s string) error {
	for filter, name := range filterNames {
		if strings.EqualFold(s, name) {
			*f = filter
			return nil
		}
	}
	return fmt.Errorf("%w: %q", errUnknownFilter, s)
}

// Enhancement constants.
const (
	alphaBoost     = 1.15
	alphaThreshold = 100
	darken         = 0.95
	enhanceMaxSize = 32
)

// ContentBounds returns the smallest rectangle containing all pixels of img
// with non-zero alpha. If img has no such pixels, it returns img.Bounds().
func ContentBounds(img *image.NRGBA) image.Rectangle {
	b := img.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X, b.Min.Y
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := b.Min.X; x < b.Max.X; x++ {
			if row[(x-b.Min.X)*4+3] == 0 {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x+1)
			minY, maxY = min(minY, y), max(maxY, y+1)
		}
	}
	if minX >= maxX || minY >= maxY {
		return b
	}
	return image.Rect(minX, minY, maxX, maxY)
}

// Crop copies the part of img inside r into a new image with the origin at
// (0, 0).
func Crop(img *image.NRGBA, r image.Rectangle) *image.NRGBA {
	return imaging.Crop(img, r)
}

// Resize scales img to a size×size square using filter. It panics if size is
// not positive.
func Resize(img *image.NRGBA, size int, filter Filter) *image.NRGBA {
	if size <= 0 {
		panic(fmt.Sprintf("icons: invalid size %d", size))
	}
	switch filter {
	case CatmullRom:
		dst := image.NewNRGBA(image.Rect(0, 0, size, size))
		draw.CatmullRom.Scale(dst, dst.Rect, img, img.Bounds(), draw.Src, nil)
		return dst
	default:
		return imaging.Resize(img, size, size, imaging.Lanczos)
	}
}

// CropAndResize crops img to r and scales the result to a size×size square.
func CropAndResize(img *image.NRGBA, r image.Rectangle, size int, filter Filter) *image.NRGBA {
	return Resize(Crop(img, r), size, filter)
}

// NeedsEnhance reports whether icons of the given size get enhanced.
func NeedsEnhance(size int) bool { return size <= enhanceMaxSize }

// Enhance modifies img in place to read better at small sizes. Calling it
// twice darkens the image twice.
func Enhance(img *image.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for end := i + b.Dx()*4; i < end; i += 4 {
			p := img.Pix[i : i+4 : i+4]
			if p[3] == 0 {
				continue
			}
			if p[3] > alphaThreshold && p[3] < 255 {
				p[3] = scale(p[3], alphaBoost)
			}
			if p[0] != 255 || p[1] != 255 || p[2] != 255 {
				p[0] = scale(p[0], darken)
				p[1] = scale(p[1], darken)
				p[2] = scale(p[2], darken)
			}
		}
	}
}

func scale(c uint8, factor float64) uint8 {
	return uint8(min(255, max(0, math.Round(float64(c)*factor))))
}

// Padding returns the margin in pixels intended around an icon of the given
// size.
//
// The resized icon already fills the whole canvas, so Center never insets it
// and the margin doesn't show up in the output.
func Padding(size int) int {
	if size <= enhanceMaxSize {
		return 1
	}
	return 2
}

// Center pastes img onto the middle of a transparent size×size canvas.
// Pixels with zero alpha are left transparent, others are copied unchanged.
// An img larger than the canvas is clipped, with the offset rounded toward
// negative infinity.
func Center(img *image.NRGBA, size int) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	b := img.Bounds()
	off := image.Pt(floorHalf(size-b.Dx()), floorHalf(size-b.Dy()))

	dr := b.Sub(b.Min).Add(off).Intersect(canvas.Rect)
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		for x := dr.Min.X; x < dr.Max.X; x++ {
			si := img.PixOffset(x-off.X+b.Min.X, y-off.Y+b.Min.Y)
			if img.Pix[si+3] == 0 {
				continue
			}
			di := canvas.PixOffset(x, y)
			copy(canvas.Pix[di:di+4], img.Pix[si:si+4])
		}
	}
	return canvas
}

func floorHalf(n int) int { return n >> 1 }

// Process produces a single size×size icon from src. It doesn't modify src.
func Process(src *image.NRGBA, size int, filter Filter) *image.NRGBA {
	resized := CropAndResize(src, ContentBounds(src), size, filter)
	if NeedsEnhance(size) {
		Enhance(resized)
	}
	return Center(resized, size)
}
