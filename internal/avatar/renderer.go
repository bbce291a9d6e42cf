package avatar

import (
	"fmt"
	"sync"

	"github.com/ironsheep/flag-pfp-mcp/internal/imaging"
)

// Settings are the tunable parameters of a render.
type Settings struct {
	// Radius shrinks the profile photo crop: 0 touches the edges, 1 is nothing.
	Radius float64 `json:"radius"`

	// IsCropped clips the flag background to the inscribed ellipse.
	IsCropped bool `json:"is_cropped"`

	// WarpStrength blends the edge-correcting warp of the flags, 0 to 1.
	WarpStrength float64 `json:"warp_strength"`

	// Angle rotates the line between two flags, in degrees.
	Angle float64 `json:"angle"`
}

// DefaultSettings returns the settings of a new Renderer.
func DefaultSettings() Settings {
	return Settings{
		Radius:       0,
		IsCropped:    true,
		WarpStrength: 1.0,
		Angle:        0,
	}
}

// Stats counts render work, including calls answered from the cache.
type Stats struct {
	ForegroundRenders int `json:"foreground_renders"`
	ForegroundHits    int `json:"foreground_hits"`
	BackgroundRenders int `json:"background_renders"`
	BackgroundHits    int `json:"background_hits"`
}

// Renderer builds a profile picture from a photo and one or two flags.
//
// It owns three input layers (left flag, right flag, profile photo) and the
// Settings, and produces two derived layers: the background (flags, warped,
// split and cropped) and the foreground (photo cropped by Radius). Derived
// layers are cached per size; every setter invalidates the cached layer
// that depends on what it changed.
//
// Callers draw the background first and the foreground on top (see Compose).
// Images returned by the render methods are owned by the cache and must not
// be modified.
//
// A Renderer is safe for concurrent use; renders and setters are serialized.
type Renderer struct {
	mu sync.Mutex

	settings  Settings
	leftFlag  *imaging.PixelImage
	rightFlag *imaging.PixelImage
	pfp       *imaging.PixelImage

	cache LayerCache
	stats Stats
}

// NewRenderer returns a Renderer with DefaultSettings and no layers.
func NewRenderer() *Renderer {
	return &Renderer{settings: DefaultSettings()}
}

// Settings returns a snapshot of the current settings.
func (r *Renderer) Settings() Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

// Radius returns the foreground crop size.
func (r *Renderer) Radius() float64 { return r.Settings().Radius }

// IsCropped reports whether the background is cropped.
func (r *Renderer) IsCropped() bool { return r.Settings().IsCropped }

// WarpStrength returns the flag warp strength.
func (r *Renderer) WarpStrength() float64 { return r.Settings().WarpStrength }

// Angle returns the split angle in degrees.
func (r *Renderer) Angle() float64 { return r.Settings().Angle }

// Stats returns a snapshot of the render counters.
func (r *Renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// HasLayer reports whether the layer named by tag is set. Setting tags
// always report false.
func (r *Renderer) HasLayer(tag Tag) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch tag {
	case TagPfp:
		return r.pfp != nil
	case TagLeftFlag:
		return r.leftFlag != nil
	case TagRightFlag:
		return r.rightFlag != nil
	}
	return false
}

// SetRadius updates the radius, invalidating the foreground if it changed.
func (r *Renderer) SetRadius(radius float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if radius != r.settings.Radius {
		r.settings.Radius = radius
		r.cache.Invalidate(TagRadius)
	}
}

// SetCropped updates the crop flag, invalidating the background if it changed.
func (r *Renderer) SetCropped(cropped bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cropped != r.settings.IsCropped {
		r.settings.IsCropped = cropped
		r.cache.Invalidate(TagIsCropped)
	}
}

// SetWarpStrength updates the warp strength, invalidating the background
// if it changed.
func (r *Renderer) SetWarpStrength(strength float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if strength != r.settings.WarpStrength {
		r.settings.WarpStrength = strength
		r.cache.Invalidate(TagWarpStrength)
	}
}

// SetAngle updates the split angle, invalidating the background if it changed.
func (r *Renderer) SetAngle(degrees float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if degrees != r.settings.Angle {
		r.settings.Angle = degrees
		r.cache.Invalidate(TagAngle)
	}
}

// SetLeftFlag replaces the left flag; nil removes it. The background is
// always invalidated.
func (r *Renderer) SetLeftFlag(img *imaging.PixelImage) {
	r.setLayer(TagLeftFlag, &r.leftFlag, img)
}

// SetRightFlag replaces the right flag; nil removes it. The background is
// always invalidated.
func (r *Renderer) SetRightFlag(img *imaging.PixelImage) {
	r.setLayer(TagRightFlag, &r.rightFlag, img)
}

// SetPfp replaces the profile photo; nil removes it. The foreground is
// always invalidated.
func (r *Renderer) SetPfp(img *imaging.PixelImage) {
	r.setLayer(TagPfp, &r.pfp, img)
}

func (r *Renderer) setLayer(tag Tag, slot **imaging.PixelImage, img *imaging.PixelImage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Invalidate(tag)
	*slot = img
}

// RenderBackground returns the flag layer at width x height, or nil if no
// flag is set.
//
// With two flags, each is warped by WarpStrength (when non-zero) and the
// two are split along a line at Angle. With one flag, it is resized and
// warped. The result is cropped to an ellipse when IsCropped is set.
func (r *Renderer) RenderBackground(width, height int) (*imaging.PixelImage, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached := r.cache.Background(width, height); cached != nil {
		r.stats.BackgroundHits++
		return cached, nil
	}

	s := r.settings
	var background *imaging.PixelImage
	var err error

	switch {
	case r.leftFlag != nil && r.rightFlag != nil:
		left, right := r.leftFlag, r.rightFlag
		if s.WarpStrength != 0 {
			left = imaging.RoundedWarp(left, s.WarpStrength)
			right = imaging.RoundedWarp(right, s.WarpStrength)
		}
		background, err = imaging.SplitImageOverlay(left, right, width, height, s.Angle)
	case r.leftFlag != nil:
		background, err = r.leftFlag.Resized(width, height)
	case r.rightFlag != nil:
		background, err = r.rightFlag.Resized(width, height)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render background: %w", err)
	}

	// Only the split path has warped already.
	if r.leftFlag == nil || r.rightFlag == nil {
		background = imaging.RoundedWarp(background, s.WarpStrength)
	}
	if s.IsCropped {
		background = imaging.RoundedCrop(background, 0)
	}

	r.cache.SetBackground(background)
	r.stats.BackgroundRenders++
	return background, nil
}

// RenderForeground returns the profile photo at width x height cropped to
// an ellipse shrunk by Radius, or nil if no photo is set.
func (r *Renderer) RenderForeground(width, height int) (*imaging.PixelImage, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached := r.cache.Foreground(width, height); cached != nil {
		r.stats.ForegroundHits++
		return cached, nil
	}

	photo := r.pfp
	if photo == nil {
		return nil, nil
	}
	if photo.Width() != width || photo.Height() != height {
		var err error
		if photo, err = photo.Resized(width, height); err != nil {
			return nil, fmt.Errorf("failed to render foreground: %w", err)
		}
	}

	foreground := imaging.RoundedCrop(photo, r.settings.Radius)

	r.cache.SetForeground(foreground)
	r.stats.ForegroundRenders++
	return foreground, nil
}

func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", imaging.ErrInvalidDimension, width, height)
	}
	return nil
}
