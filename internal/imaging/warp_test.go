package imaging

import (
	"testing"
)

func TestRoundedWarp_ZeroStrengthIsIdentity(t *testing.T) {
	sizes := []struct{ w, h int }{{1, 1}, {2, 3}, {7, 5}, {16, 16}, {25, 9}}

	for _, sz := range sizes {
		src := newPattern(t, sz.w, sz.h)
		out := RoundedWarp(src, 0)
		if !samePixels(src, out) {
			t.Errorf("%dx%d: strength 0 should reproduce the source", sz.w, sz.h)
		}
	}
}

func TestRoundedWarp_FixedPoints(t *testing.T) {
	src := newPattern(t, 11, 9)
	out := RoundedWarp(src, 1)

	// asin correction leaves 0, 0.5 and 1 in place
	points := [][2]int{{0, 0}, {10, 0}, {0, 8}, {10, 8}, {5, 4}, {5, 0}, {0, 4}}
	for _, pt := range points {
		if got, want := out.Pixel(pt[0], pt[1]), src.Pixel(pt[0], pt[1]); got != want {
			t.Errorf("pixel (%d,%d): got %v, want %v", pt[0], pt[1], got, want)
		}
	}
}

func TestRoundedWarp_FullStrength(t *testing.T) {
	src := newPattern(t, 11, 11)
	out := RoundedWarp(src, 1)

	// u = 0.1 -> 0.5 + asin(-0.8)/π ≈ 0.2048 -> column 2
	if got, want := out.Pixel(1, 5), src.Pixel(2, 5); got != want {
		t.Errorf("pixel (1,5): got %v, want source (2,5) %v", got, want)
	}
	// symmetric on the other side: u = 0.9 -> ≈ 0.7952 -> column 8
	if got, want := out.Pixel(9, 5), src.Pixel(8, 5); got != want {
		t.Errorf("pixel (9,5): got %v, want source (8,5) %v", got, want)
	}
	// and on the vertical axis
	if got, want := out.Pixel(5, 1), src.Pixel(5, 2); got != want {
		t.Errorf("pixel (5,1): got %v, want source (5,2) %v", got, want)
	}
}

func TestRoundedWarp_HalfStrength(t *testing.T) {
	src := newPattern(t, 21, 21)
	out := RoundedWarp(src, 0.5)

	// u = 0.1: lerp(0.1, 0.2048, 0.5) ≈ 0.1524 -> column 3
	if got, want := out.Pixel(2, 10), src.Pixel(3, 10); got != want {
		t.Errorf("pixel (2,10): got %v, want source (3,10) %v", got, want)
	}
}

func TestRoundedWarp_SolidStaysSolid(t *testing.T) {
	src := newSolid(t, 13, 7, blue, false)
	out := RoundedWarp(src, 1)

	for y := 0; y < 7; y++ {
		for x := 0; x < 13; x++ {
			if got := out.Pixel(x, y); got != blue {
				t.Fatalf("pixel (%d,%d): got %v, want blue", x, y, got)
			}
		}
	}
}

func TestRoundedWarp_NewImage(t *testing.T) {
	src := newPattern(t, 8, 8)
	before := src.Pixel(1, 1)

	out := RoundedWarp(src, 1)

	if out == src {
		t.Fatal("RoundedWarp must return a new image")
	}
	if src.Pixel(1, 1) != before {
		t.Error("RoundedWarp must not modify the source")
	}
	if out.Smoothing() != src.Smoothing() {
		t.Error("RoundedWarp should keep the smoothing flag")
	}
}
