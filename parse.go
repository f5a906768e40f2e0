package mandel

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSize parses an image size argument of the form "1000x750".
// Both dimensions must be positive integers.
func ParseSize(s string) (width, height int, err error) {
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WIDTHxHEIGHT", s)
	}
	width, err = strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("width: %w", err)
	}
	height, err = strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("height: %w", err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("size %q: dimensions must be positive", s)
	}
	return width, height, nil
}

// ParseComplex parses a complex point argument of the form "-1.20,0.35".
func ParseComplex(s string) (complex128, error) {
	res, ims, ok := strings.Cut(s, ",")
	if !ok {
		return 0, fmt.Errorf("complex %q: want RE,IM", s)
	}
	re, err := strconv.ParseFloat(res, 64)
	if err != nil {
		return 0, fmt.Errorf("real part: %w", err)
	}
	im, err := strconv.ParseFloat(ims, 64)
	if err != nil {
		return 0, fmt.Errorf("imaginary part: %w", err)
	}
	return complex(re, im), nil
}

// ParseViewport parses the two corner arguments into a Viewport.
// Coincident corners are rejected; a viewport that is degenerate on one
// axis only still renders, each row or column just repeats.
func ParseViewport(upperLeft, lowerRight string) (Viewport, error) {
	ul, err := ParseComplex(upperLeft)
	if err != nil {
		return Viewport{}, fmt.Errorf("upper left: %w", err)
	}
	lr, err := ParseComplex(lowerRight)
	if err != nil {
		return Viewport{}, fmt.Errorf("lower right: %w", err)
	}
	if ul == lr {
		return Viewport{}, fmt.Errorf("viewport corners coincide at %v", ul)
	}
	return Viewport{UpperLeft: ul, LowerRight: lr}, nil
}
