package avatar

import "github.com/ironsheep/flag-pfp-mcp/internal/imaging"

// LayerCache remembers the last rendered foreground and background.
//
// A cached layer is valid only while no input it depends on has changed
// and the requested size equals the stored size. Both layers share one
// width/height pair, so storing a layer of a new size drops the other one.
//
// LayerCache is not safe for concurrent use; Renderer guards it.
type LayerCache struct {
	width, height int
	foreground    *imaging.PixelImage
	background    *imaging.PixelImage
}

// Invalidate clears the layer that depends on tag.
func (c *LayerCache) Invalidate(tag Tag) {
	switch tag.Layer() {
	case LayerForeground:
		c.foreground = nil
	case LayerBackground:
		c.background = nil
	}
}

// Foreground returns the cached foreground if it is valid for width x height.
func (c *LayerCache) Foreground(width, height int) *imaging.PixelImage {
	if !c.sizeMatches(width, height) {
		return nil
	}
	return c.foreground
}

// Background returns the cached background if it is valid for width x height.
func (c *LayerCache) Background(width, height int) *imaging.PixelImage {
	if !c.sizeMatches(width, height) {
		return nil
	}
	return c.background
}

// SetForeground stores img as the current foreground.
func (c *LayerCache) SetForeground(img *imaging.PixelImage) {
	c.resize(img)
	c.foreground = img
}

// SetBackground stores img as the current background.
func (c *LayerCache) SetBackground(img *imaging.PixelImage) {
	c.resize(img)
	c.background = img
}

// Reset drops both layers.
func (c *LayerCache) Reset() {
	*c = LayerCache{}
}

func (c *LayerCache) sizeMatches(width, height int) bool {
	return width == c.width && height == c.height
}

func (c *LayerCache) resize(img *imaging.PixelImage) {
	if c.sizeMatches(img.Width(), img.Height()) {
		return
	}
	c.foreground, c.background = nil, nil
	c.width, c.height = img.Width(), img.Height()
}
