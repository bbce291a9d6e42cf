package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"math"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

var (
	// ErrInvalidDimension is returned when a width or height is not positive.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrDecode is returned when a source cannot be parsed as an image.
	ErrDecode = errors.New("failed to decode image")

	// ErrInvalidCoordinate is returned when a raw coordinate is not integral.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

// Pixel is a single non-premultiplied RGBA value, one byte per channel.
type Pixel [4]uint8

// Transparent is the zero pixel written by WithSize and BlankCopy.
var Transparent = Pixel{}

// PixelImage is an owned rectangular RGBA buffer.
//
// The buffer is always Width*Height*4 bytes, row-major, with the origin at
// the top-left corner. The smoothing flag decides whether resampling
// interpolates (true) or picks the nearest pixel (false).
//
// Integer pixel access wraps coordinates modulo the image size, so
// Pixel(-1, 0) reads the last column. This is a repeat/tile addressing policy,
// not an error.
//
// PixelImage implements image.Image, so it can be passed directly to
// encoders and to the draw packages.
type PixelImage struct {
	img       *image.NRGBA
	smoothing bool
}

// WithSize returns a fully transparent image of the given dimensions.
func WithSize(width, height int, smoothing bool) (*PixelImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	return &PixelImage{
		img:       image.NewNRGBA(image.Rect(0, 0, width, height)),
		smoothing: smoothing,
	}, nil
}

// FromImage copies any image.Image into a new PixelImage.
//
// The copy is rebased so that its top-left pixel is (0, 0), whatever the
// bounds of src were.
func FromImage(src image.Image, smoothing bool) *PixelImage {
	return &PixelImage{
		img:       imaging.Clone(src),
		smoothing: smoothing,
	}
}

// FromSource decodes an encoded image (PNG, JPEG, GIF, WebP, BMP or TIFF)
// into a PixelImage.
//
// If width and height are both zero the image keeps its intrinsic size;
// otherwise it is resampled to width x height using the smoothing flag.
// EXIF orientation is applied while decoding.
//
// Errors:
//   - ErrDecode if the data is not a recognizable image
//   - ErrInvalidDimension if only one target dimension is given or either is negative
func FromSource(r io.Reader, smoothing bool, width, height int) (*PixelImage, error) {
	if width < 0 || height < 0 || (width == 0) != (height == 0) {
		return nil, fmt.Errorf("%w: target %dx%d", ErrInvalidDimension, width, height)
	}

	decoded, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if decoded.Bounds().Empty() {
		return nil, fmt.Errorf("%w: image has no pixels", ErrDecode)
	}

	p := FromImage(decoded, smoothing)
	if width == 0 || (width == p.Width() && height == p.Height()) {
		return p, nil
	}
	return p.Resized(width, height)
}

// Width returns the image width in pixels.
func (p *PixelImage) Width() int { return p.img.Rect.Dx() }

// Height returns the image height in pixels.
func (p *PixelImage) Height() int { return p.img.Rect.Dy() }

// Smoothing reports whether resampling this image interpolates.
func (p *PixelImage) Smoothing() bool { return p.smoothing }

// NRGBA exposes the underlying buffer. Callers must not write to it while
// the image is held by a renderer cache.
func (p *PixelImage) NRGBA() *image.NRGBA { return p.img }

// ColorModel implements image.Image.
func (p *PixelImage) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (p *PixelImage) Bounds() image.Rectangle { return p.img.Rect }

// At implements image.Image. Unlike Pixel it does not wrap; points outside
// the bounds are transparent.
func (p *PixelImage) At(x, y int) color.Color { return p.img.At(x, y) }

// offset maps a (possibly out of range) coordinate to its byte offset using
// a non-negative remainder on each axis.
func (p *PixelImage) offset(x, y int) int {
	x = rem(x, p.Width())
	y = rem(y, p.Height())
	return y*p.img.Stride + x*4
}

// Pixel returns the pixel at (x, y), wrapping out-of-range coordinates.
func (p *PixelImage) Pixel(x, y int) Pixel {
	i := p.offset(x, y)
	s := p.img.Pix[i : i+4 : i+4]
	return Pixel{s[0], s[1], s[2], s[3]}
}

// SetPixel writes px at (x, y), wrapping out-of-range coordinates.
func (p *PixelImage) SetPixel(px Pixel, x, y int) {
	i := p.offset(x, y)
	copy(p.img.Pix[i:i+4], px[:])
}

// ToUV converts integer pixel coordinates to normalized [0,1] coordinates.
// The divisor is dimension-1, so the last pixel maps to exactly 1.0.
// A one-pixel axis always maps to 0.
func (p *PixelImage) ToUV(x, y int) (u, v float64) {
	return toUnit(x, p.Width()), toUnit(y, p.Height())
}

// ToXY converts normalized coordinates to the nearest integer pixel
// coordinates. Values outside [0,1] are not clamped; they wrap once used
// for pixel access.
func (p *PixelImage) ToXY(u, v float64) (x, y int) {
	return int(math.Round(u * float64(p.Width()-1))), int(math.Round(v * float64(p.Height()-1)))
}

// PixelUV returns the pixel nearest to the normalized coordinate (u, v).
func (p *PixelImage) PixelUV(u, v float64) Pixel {
	x, y := p.ToXY(u, v)
	return p.Pixel(x, y)
}

// SetPixelUV writes px at the pixel nearest to (u, v).
func (p *PixelImage) SetPixelUV(px Pixel, u, v float64) {
	x, y := p.ToXY(u, v)
	p.SetPixel(px, x, y)
}

// BlankCopy returns a transparent image with the same size and smoothing flag.
func (p *PixelImage) BlankCopy() *PixelImage {
	return &PixelImage{
		img:       image.NewNRGBA(image.Rect(0, 0, p.Width(), p.Height())),
		smoothing: p.smoothing,
	}
}

// Resized returns a new image stretched or shrunk to width x height.
// Smooth images use linear interpolation, others nearest neighbor.
func (p *PixelImage) Resized(width, height int) (*PixelImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	filter := imaging.NearestNeighbor
	if p.smoothing {
		filter = imaging.Linear
	}
	return &PixelImage{
		img:       imaging.Resize(p.img, width, height, filter),
		smoothing: p.smoothing,
	}, nil
}

// CompositeOnto draws this image over target, stretched to cover all of it.
// The target is modified; p is not.
func (p *PixelImage) CompositeOnto(target *PixelImage) {
	p.compositeMasked(target, target.Bounds(), nil)
}

// CompositeOntoAt draws this image over target at native resolution with
// its top-left corner at (x, y). Parts falling outside target are dropped.
func (p *PixelImage) CompositeOntoAt(target *PixelImage, x, y int) {
	dr := image.Rect(x, y, x+p.Width(), y+p.Height())
	p.compositeMasked(target, dr, nil)
}

// compositeMasked scales p into dr on target with the Over operator.
// A non-nil mask clips the drawing in target coordinates.
func (p *PixelImage) compositeMasked(target *PixelImage, dr image.Rectangle, mask image.Image) {
	var scaler xdraw.Scaler = xdraw.NearestNeighbor
	if p.smoothing {
		scaler = xdraw.BiLinear
	}
	var opts *xdraw.Options
	if mask != nil {
		opts = &xdraw.Options{DstMask: mask}
	}
	scaler.Scale(target.img, dr, p.img, p.img.Rect, xdraw.Over, opts)
}

// CheckedXY converts raw coordinates, such as JSON numbers, to integer pixel
// coordinates. Non-integral or non-finite values yield ErrInvalidCoordinate.
func CheckedXY(x, y float64) (int, int, error) {
	for _, c := range [2]float64{x, y} {
		if math.IsNaN(c) || math.IsInf(c, 0) || c != math.Trunc(c) {
			return 0, 0, fmt.Errorf("%w: (%v,%v) must be integers", ErrInvalidCoordinate, x, y)
		}
	}
	return int(x), int(y), nil
}

// rem returns the non-negative remainder of a / n.
func rem(a, n int) int {
	return ((a % n) + n) % n
}

func toUnit(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}
