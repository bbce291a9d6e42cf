package imaging

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// RoundedWarp remaps src so that content near the edge of a circular crop
// looks less squashed.
//
// For every pixel the normalized coordinate t on each axis is replaced by
//
//	lerp(t, 0.5 + asin(2t-1)/π, strength)
//
// and the source is sampled there (nearest pixel, wrapping). Strength 0 is
// the identity and 1 the full correction. Rows are processed in parallel;
// each output pixel depends only on src.
func RoundedWarp(src *PixelImage, strength float64) *PixelImage {
	output := src.BlankCopy()
	warp := func(t float64) float64 {
		s := 2*t - 1
		// Guard asin against rounding just past ±1.
		s = math.Max(-1, math.Min(1, s))
		corrected := 0.5 + math.Asin(s)/math.Pi
		return corrected*strength + t*(1-strength)
	}

	width := src.Width()
	parallel.Line(src.Height(), func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				u, v := src.ToUV(x, y)
				output.SetPixel(src.PixelUV(warp(u), warp(v)), x, y)
			}
		}
	})
	return output
}
