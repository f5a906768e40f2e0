// Package mandel renders images of the Mandelbrot set.
//
// The root package holds everything the binaries share: the complex-plane
// viewport and its pixel mapping, the escape-time iteration, the fixed
// grayscale shading, argument parsing and image file encoding, plus the
// wire messages of the distributed mode. The rendering loops live in
// package render; cmd/mandel renders locally, cmd/server and cmd/worker
// split the same render across machines.
package mandel

import "image"

// Viewport is the rectangular region of the complex plane mapped onto the
// output image. UpperLeft corresponds to pixel (0,0) and the imaginary
// part decreases with the pixel row, matching image row order. The two
// corners must not coincide; ParseViewport rejects that before any
// rendering starts.
type Viewport struct {
	UpperLeft  complex128
	LowerRight complex128
}

// PointAt maps pixel (col, row) of a width×height image onto the complex
// plane by interpolating each axis independently.
//
// The interpolation is exclusive: column col samples at col/width of the
// horizontal span, so column 0 samples the upper-left corner exactly and
// the lower-right corner lies one pixel step outside the image. With this
// convention a 1×1 image samples UpperLeft and no dimension needs a
// division-by-zero guard.
func (v Viewport) PointAt(col, row, width, height int) complex128 {
	re := real(v.UpperLeft) + float64(col)/float64(width)*(real(v.LowerRight)-real(v.UpperLeft))
	im := imag(v.UpperLeft) + float64(row)/float64(height)*(imag(v.LowerRight)-imag(v.UpperLeft))
	return complex(re, im)
}

// TileSize is the edge length of the render tiles handed to workers.
const TileSize = 64

// SplitTiles splits r into tiles of size tileW × tileH, row-major.
// Tiles at the right and bottom edges are smaller if r is not divisible.
func SplitTiles(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 {
		panic("tile dimensions must be positive")
	}

	w := r.Dx()
	h := r.Dy()

	var tiles []image.Rectangle

	for oy := 0; oy < h; oy += tileH {
		th := tileH
		if oy+th > h {
			th = h - oy
		}

		for ox := 0; ox < w; ox += tileW {
			tw := tileW
			if ox+tw > w {
				tw = w - ox
			}

			tile := image.Rect(
				r.Min.X+ox,
				r.Min.Y+oy,
				r.Min.X+ox+tw,
				r.Min.Y+oy+th,
			)
			tiles = append(tiles, tile)
		}
	}

	return tiles
}
