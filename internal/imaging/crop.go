package imaging

import (
	"image"
	"math"
)

// RoundedCrop clips src to an ellipse centered in the image.
//
// The horizontal and vertical radii are width*0.5*(1-size) and
// height*0.5*(1-size): size 0 gives the inscribed ellipse touching all four
// edges, size 1 shrinks it to nothing. Pixels outside the ellipse become
// fully transparent; pixels inside keep their source values. A pixel is
// inside when its center is.
//
// The result is a new image; src is not modified.
func RoundedCrop(src *PixelImage, size float64) *PixelImage {
	output := FromImage(src.img, src.smoothing)
	mask := ellipseMask(src.Width(), src.Height(), size)
	clearOutside(output, mask)
	return output
}

// clearOutside zeroes every pixel of p whose mask value is 0. Kept pixels
// are not touched, so translucent colors survive unchanged.
func clearOutside(p *PixelImage, mask *image.Alpha) {
	for y := 0; y < p.Height(); y++ {
		row := p.img.Pix[y*p.img.Stride : y*p.img.Stride+p.Width()*4]
		m := mask.Pix[y*mask.Stride:]
		for x := 0; x < p.Width(); x++ {
			if m[x] == 0 {
				copy(row[x*4:x*4+4], Transparent[:])
			}
		}
	}
}

// ellipseMask returns an opaque-inside, transparent-outside mask of the
// centered ellipse used by RoundedCrop.
func ellipseMask(width, height int, size float64) *image.Alpha {
	cx, cy := float64(width)/2, float64(height)/2
	rx := float64(width) * 0.5 * (1 - size)
	ry := float64(height) * 0.5 * (1 - size)
	if rx <= 0 || ry <= 0 {
		return image.NewAlpha(image.Rect(0, 0, width, height))
	}
	return newMask(width, height, func(px, py float64) bool {
		dx := (px - cx) / rx
		dy := (py - cy) / ry
		return dx*dx+dy*dy <= 1
	})
}

// halfPlaneMask returns the clip region of SplitImageOverlay: the part of a
// diagonal-sized square, rotated by angle radians around the canvas center,
// that lies left of the dividing line.
func halfPlaneMask(width, height int, angle float64) *image.Alpha {
	cx, cy := float64(width)/2, float64(height)/2
	length := math.Hypot(float64(width), float64(height))
	sin, cos := math.Sincos(angle)
	return newMask(width, height, func(px, py float64) bool {
		// Rotate the pixel into the clip rectangle's frame.
		dx, dy := px-cx, py-cy
		lx := dx*cos + dy*sin
		ly := -dx*sin + dy*cos
		return lx < 0 && lx >= -length/2 && math.Abs(ly) <= length/2
	})
}

// newMask builds a binary alpha mask by testing each pixel center.
func newMask(width, height int, inside func(px, py float64) bool) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+width]
		for x := range row {
			if inside(float64(x)+0.5, float64(y)+0.5) {
				row[x] = 0xff
			}
		}
	}
	return mask
}
