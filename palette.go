package mandel

import "image/color"

// GrayShade maps an escape count to the fixed grayscale palette: points
// inside the set (n == limit) are black, and escaped points fade from
// near-white at n = 0 down towards black as n approaches the limit.
// Equal counts always produce equal shades, so repeated renders of the
// same viewport are byte-identical.
func GrayShade(n, limit int) color.Gray {
	if n >= limit {
		return color.Gray{}
	}
	return color.Gray{Y: uint8(255 - 255*n/limit)}
}
