package mandel

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(37*x + 11*y)})
		}
	}
	return img
}

func checkPixels(t *testing.T, got, want image.Image) {
	t.Helper()
	if got.Bounds() != want.Bounds() {
		t.Fatalf("bounds = %s, want %s", got.Bounds(), want.Bounds())
	}
	b := want.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(got.At(x, y)).(color.Gray)
			w := color.GrayModel.Convert(want.At(x, y)).(color.Gray)
			if g != w {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, g, w)
			}
		}
	}
}

func TestWriteImageFile_RoundTrip(t *testing.T) {
	formats := []struct {
		ext    string
		decode func(io.Reader) (image.Image, error)
	}{
		{"png", png.Decode},
		{"bmp", bmp.Decode},
		{"tiff", tiff.Decode},
		{"tif", tiff.Decode},
	}

	src := testImage()
	for _, tt := range formats {
		t.Run(tt.ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out."+tt.ext)
			if err := WriteImageFile(path, src); err != nil {
				t.Fatalf("WriteImageFile: %v", err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer f.Close()

			got, err := tt.decode(f)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			checkPixels(t, got, src)
		})
	}
}

func TestWriteImageFile_PPM(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(0, 0, color.Gray{Y: 0})
	img.SetGray(1, 0, color.Gray{Y: 85})
	img.SetGray(0, 1, color.Gray{Y: 170})
	img.SetGray(1, 1, color.Gray{Y: 255})

	path := filepath.Join(t.TempDir(), "out.ppm")
	if err := WriteImageFile(path, img); err != nil {
		t.Fatalf("WriteImageFile: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	want := append([]byte("P6\n2 2\n255\n"),
		0, 0, 0,
		85, 85, 85,
		170, 170, 170,
		255, 255, 255,
	)
	if !bytes.Equal(got, want) {
		t.Errorf("ppm bytes = %v, want %v", got, want)
	}
}

func TestWriteImageFile_UppercaseExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "OUT.PNG")
	if err := WriteImageFile(path, testImage()); err != nil {
		t.Fatalf("WriteImageFile: %v", err)
	}
}

func TestWriteImageFile_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	if err := WriteImageFile(path, testImage()); err == nil {
		t.Fatal("WriteImageFile with .gif: want error")
	}

	// The bad extension must be caught before the file is created.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("stat %q after failed write: %v, want not exist", path, err)
	}
}

func TestWriteImageFile_NoExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")
	if err := WriteImageFile(path, testImage()); err == nil {
		t.Fatal("WriteImageFile without extension: want error")
	}
}

func TestWriteImageFile_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.png")
	if err := WriteImageFile(path, testImage()); err == nil {
		t.Fatal("WriteImageFile into missing directory: want error")
	}
}
