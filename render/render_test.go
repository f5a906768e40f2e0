package render

import (
	"bytes"
	"image"
	"testing"

	"github.com/marben/mandel"
)

func TestImage_Size(t *testing.T) {
	img := Image(100, 75, mandel.WholeSet, 0)

	want := image.Rect(0, 0, 100, 75)
	if img.Bounds() != want {
		t.Errorf("Bounds() = %s, want %s", img.Bounds(), want)
	}
}

func TestImage_WorkerCountIndependent(t *testing.T) {
	// Odd dimensions force uneven edge tiles.
	ref := Image(133, 57, mandel.WholeSet, 1)

	for _, workers := range []int{2, 3, 8, 16} {
		img := Image(133, 57, mandel.WholeSet, workers)
		if !bytes.Equal(img.Pix, ref.Pix) {
			t.Errorf("render with %d workers differs from single worker render", workers)
		}
	}
}

func TestImage_MatchesSingleTileRender(t *testing.T) {
	w, h := 100, 80
	vp := mandel.SeahorseValley

	ref := image.NewGray(image.Rect(0, 0, w, h))
	Tile(ref, ref.Bounds(), vp, w, h)

	img := Image(w, h, vp, 4)
	if !bytes.Equal(img.Pix, ref.Pix) {
		t.Error("tiled render differs from whole-frame render")
	}
}

func TestImage_MirrorSymmetry(t *testing.T) {
	// The set is symmetric about the real axis, so on a viewport
	// centered there row r mirrors row H-r.
	const w, h = 64, 64
	img := Image(w, h, mandel.WholeSet, 4)

	for r := 1; r < h; r++ {
		top := img.Pix[r*img.Stride : r*img.Stride+w]
		bottom := img.Pix[(h-r)*img.Stride : (h-r)*img.Stride+w]
		if !bytes.Equal(top, bottom) {
			t.Fatalf("row %d differs from row %d", r, h-r)
		}
	}
}

func TestImage_InsideAndOutsidePixels(t *testing.T) {
	// Pixel 0 samples c=-1 which never escapes; pixel 1 samples c=1
	// which escapes on the third iteration.
	vp := mandel.Viewport{UpperLeft: complex(-1, 0), LowerRight: complex(3, 0)}
	img := Image(2, 1, vp, 1)

	if img.Pix[0] != 0 {
		t.Errorf("pixel 0 = %d, want 0 (inside the set)", img.Pix[0])
	}
	if img.Pix[1] != 253 {
		t.Errorf("pixel 1 = %d, want 253 (escapes at count 2)", img.Pix[1])
	}
}

func TestImage_DegenerateViewport(t *testing.T) {
	// Both corners on the real axis: every sampled point is inside the
	// set, the whole strip renders black.
	vp := mandel.Viewport{UpperLeft: complex(-1, 0), LowerRight: complex(1, 0)}
	img := Image(2, 1, vp, 1)

	for i, p := range img.Pix {
		if p != 0 {
			t.Errorf("pixel %d = %d, want 0", i, p)
		}
	}
}

func TestTile_WritesOnlyItsTile(t *testing.T) {
	const w, h = 16, 16
	vp := mandel.WholeSet

	ref := image.NewGray(image.Rect(0, 0, w, h))
	Tile(ref, ref.Bounds(), vp, w, h)

	const fill = 7
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for i := range dst.Pix {
		dst.Pix[i] = fill
	}

	tile := image.Rect(4, 4, 12, 12)
	Tile(dst, tile, vp, w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			got := dst.GrayAt(x, y).Y
			if image.Pt(x, y).In(tile) {
				if want := ref.GrayAt(x, y).Y; got != want {
					t.Errorf("pixel (%d,%d) = %d, want %d", x, y, got, want)
				}
			} else if got != fill {
				t.Errorf("pixel (%d,%d) outside tile overwritten to %d", x, y, got)
			}
		}
	}
}

func TestTile_GlobalCoordinates(t *testing.T) {
	// A standalone tile image with a non-zero origin, as rendered by a
	// distributed worker, must match the same region of a full render.
	const w, h = 256, 256
	vp := mandel.SeahorseValley

	full := Image(w, h, vp, 1)

	tile := image.Rect(64, 64, 128, 128)
	tileImg := image.NewGray(tile)
	Tile(tileImg, tile, vp, w, h)

	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		fo := full.PixOffset(tile.Min.X, y)
		to := tileImg.PixOffset(tile.Min.X, y)
		if !bytes.Equal(full.Pix[fo:fo+tile.Dx()], tileImg.Pix[to:to+tile.Dx()]) {
			t.Fatalf("tile row %d differs from full render", y)
		}
	}
}

var benchSink *image.Gray

func BenchmarkImage(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		benchSink = Image(256, 256, mandel.SeahorseValley, 0)
	}
}

func BenchmarkImage_SingleWorker(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		benchSink = Image(256, 256, mandel.SeahorseValley, 1)
	}
}
