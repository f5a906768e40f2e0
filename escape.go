package mandel

// MaxIterations is the escape-time iteration limit used by all renderers.
const MaxIterations = 255

// EscapeTime iterates z = z*z + c from z = 0 and returns the index of the
// first iteration after which |z| exceeds 2, so a point that escapes on
// the very first step yields 0. Points still bounded after limit
// iterations yield limit itself, which the shading maps to black.
func EscapeTime(c complex128, limit int) int {
	var z complex128
	for i := 0; i < limit; i++ {
		z = z*z + c
		if real(z)*real(z)+imag(z)*imag(z) > 4.0 {
			return i
		}
	}
	return limit
}
