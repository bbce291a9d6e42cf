// Package imaging provides the pixel buffer and the image operations behind
// the flag profile-picture renderer.
//
// PixelImage is an owned RGBA buffer with explicit width and height. The
// operations RoundedWarp, RoundedCrop and SplitImageOverlay never modify
// their inputs; each returns a freshly allocated image.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Integer access wraps: x is taken modulo the width, y modulo the height
//
// UV coordinates are normalized to [0,1] using (dimension-1) as divisor, so
// UV 1.0 is the last pixel rather than one past it.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Operations are stateless
// and may be called concurrently on different images; a PixelImage being
// written must not be read at the same time.
//
// # Error Handling
//
// Functions return wrapped sentinel errors, checked with errors.Is:
//   - ErrInvalidDimension: non-positive width or height
//   - ErrDecode: the source could not be parsed as an image
//   - ErrInvalidCoordinate: a raw coordinate was not an integer
package imaging
