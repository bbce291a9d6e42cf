package imaging

import (
	"bytes"
	"fmt"
	"os"
	"sync"
)

// ImageCache provides thread-safe caching of image sources read from disk.
//
// Decoded PixelImages are cached keyed by path, smoothing flag and target
// size, so loading the same upload twice for the same canvas does not decode
// it again. Cached images are never handed out directly; Load returns an
// owned copy, because layers must not be shared mutably between owners.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear(). Evict drops every variant of a path.
type ImageCache struct {
	mu     sync.RWMutex
	images map[cacheKey]*PixelImage
}

type cacheKey struct {
	path          string
	smoothing     bool
	width, height int
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[cacheKey]*PixelImage),
	}
}

// Load returns the image at path decoded with the given smoothing flag and
// resampled to width x height (both zero keeps the intrinsic size).
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns an error wrapping ErrDecode if the file is not a supported image
//   - Returns an error wrapping ErrInvalidDimension for a bad target size
func (c *ImageCache) Load(path string, smoothing bool, width, height int) (*PixelImage, error) {
	key := cacheKey{path: path, smoothing: smoothing, width: width, height: height}

	c.mu.RLock()
	if img, ok := c.images[key]; ok {
		c.mu.RUnlock()
		return img.clone(), nil
	}
	c.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	img, err := FromSource(bytes.NewReader(data), smoothing, width, height)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	c.mu.Lock()
	c.images[key] = img
	c.mu.Unlock()

	return img.clone(), nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[cacheKey]*PixelImage)
	c.mu.Unlock()
}

// Evict removes every cached variant of path.
//
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	for key := range c.images {
		if key.path == path {
			delete(c.images, key)
		}
	}
	c.mu.Unlock()
}

// Len returns the number of cached variants.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

func (p *PixelImage) clone() *PixelImage {
	out := p.BlankCopy()
	copy(out.img.Pix, p.img.Pix)
	return out
}
