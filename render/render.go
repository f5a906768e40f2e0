// Package render runs the escape-time loop over pixel tiles and whole
// images. Both the local renderer and the distributed workers go through
// Tile, so a pixel is shaded identically no matter which binary computed
// it.
package render

import (
	"image"
	"runtime"
	"sync"

	"github.com/marben/mandel"
)

// Tile renders one tile of a width×height image into dst. The tile is in
// global image coordinates and dst.Bounds() must contain it; disjoint
// tiles of the same image may render concurrently.
func Tile(dst *image.Gray, tile image.Rectangle, vp mandel.Viewport, width, height int) {
	for py := tile.Min.Y; py < tile.Max.Y; py++ {
		for px := tile.Min.X; px < tile.Max.X; px++ {
			c := vp.PointAt(px, py, width, height)
			n := mandel.EscapeTime(c, mandel.MaxIterations)
			dst.SetGray(px, py, mandel.GrayShade(n, mandel.MaxIterations))
		}
	}
}

// Image renders the viewport into a new width×height grayscale image
// using the given number of goroutines. workers <= 0 means one per
// available CPU. The result does not depend on the worker count.
func Image(width, height int, vp mandel.Viewport, workers int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))

	tiles := mandel.SplitTiles(img.Bounds(), mandel.TileSize, mandel.TileSize)
	ch := make(chan image.Rectangle, len(tiles))
	for _, t := range tiles {
		ch <- t
	}
	close(ch)

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tile := range ch {
				Tile(img, tile, vp, width, height)
			}
		}()
	}
	wg.Wait()

	return img
}
