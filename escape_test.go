package mandel

import "testing"

func TestEscapeTime(t *testing.T) {
	tests := []struct {
		name  string
		c     complex128
		limit int
		want  int
	}{
		{"origin stays bounded", 0, 255, 255},
		{"minus one cycles", complex(-1, 0), 255, 255},
		{"far point escapes immediately", complex(3, 0), 255, 0},
		{"outside radius two escapes immediately", complex(2.5, 0), 255, 0},
		{"diagonal outside escapes immediately", complex(2, 2), 255, 0},
		{"c=1 escapes on third step", complex(1, 0), 255, 2},
		{"boundary point hits the limit", complex(0.25, 0), 10, 10},
	}

	for _, tt := range tests {
		if got := EscapeTime(tt.c, tt.limit); got != tt.want {
			t.Errorf("%s: EscapeTime(%v, %d) = %d, want %d", tt.name, tt.c, tt.limit, got, tt.want)
		}
	}
}

func TestEscapeTime_WithinRange(t *testing.T) {
	// Sample a coarse grid; every count must land in [0, limit].
	for re := -2.0; re <= 2.0; re += 0.25 {
		for im := -2.0; im <= 2.0; im += 0.25 {
			n := EscapeTime(complex(re, im), MaxIterations)
			if n < 0 || n > MaxIterations {
				t.Fatalf("EscapeTime(%v) = %d, want within [0, %d]", complex(re, im), n, MaxIterations)
			}
		}
	}
}

func TestEscapeTime_ConjugateSymmetry(t *testing.T) {
	points := []complex128{
		complex(-0.75, 0.1),
		complex(0.3, 0.5),
		complex(-1.2, 0.35),
		complex(0.25, 0.005),
	}
	for _, c := range points {
		conj := complex(real(c), -imag(c))
		if a, b := EscapeTime(c, MaxIterations), EscapeTime(conj, MaxIterations); a != b {
			t.Errorf("EscapeTime(%v) = %d, EscapeTime(%v) = %d, want equal", c, a, conj, b)
		}
	}
}
