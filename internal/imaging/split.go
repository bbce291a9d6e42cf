package imaging

import "math"

// SplitImageOverlay combines two images into a width x height output split
// by a line through the center.
//
// right is stretched over the whole canvas first. left is then stretched
// over the canvas through a half-plane clip rotated by angleDegrees around
// the center, so at angle 0 the left half shows left and the right half
// shows right. Positive angles turn the dividing line clockwise. The clip
// is a square as long as the canvas diagonal, so no rotation exposes an
// unclipped corner.
func SplitImageOverlay(left, right *PixelImage, width, height int, angleDegrees float64) (*PixelImage, error) {
	output, err := WithSize(width, height, true)
	if err != nil {
		return nil, err
	}

	right.CompositeOnto(output)
	clip := halfPlaneMask(width, height, angleDegrees*math.Pi/180)
	left.compositeMasked(output, output.Bounds(), clip)
	return output, nil
}
