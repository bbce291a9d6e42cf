package imaging

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// createTestImage writes a solid PNG into the test's temp dir and returns its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-image.png")
	if err := os.WriteFile(path, encodePNG(t, createInMemoryImage(width, height, c)), 0o644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	return path
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.images == nil {
		t.Fatal("NewImageCache did not initialize images map")
	}
	if cache.Len() != 0 {
		t.Errorf("new cache should be empty, has %d entries", cache.Len())
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 100, 80, color.RGBA{255, 0, 0, 255})

	// First load
	img1, err := cache.Load(imgPath, true, 0, 0)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img1.Width() != 100 || img1.Height() != 80 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x80", img1.Width(), img1.Height())
	}
	if !img1.Smoothing() {
		t.Error("smoothing flag should be kept")
	}

	// Second load is served from the cache
	img2, err := cache.Load(imgPath, true, 0, 0)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if cache.Len() != 1 {
		t.Errorf("cache entries: got %d, want 1", cache.Len())
	}
	if !samePixels(img1, img2) {
		t.Error("cached load should match the first load")
	}
}

func TestImageCache_Load_ReturnsCopies(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 10, 10, color.RGBA{0, 0, 255, 255})

	img1, err := cache.Load(imgPath, false, 0, 0)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	img1.SetPixel(white, 0, 0)

	img2, err := cache.Load(imgPath, false, 0, 0)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 == img2 {
		t.Fatal("Load must not hand out the cached image")
	}
	if got := img2.Pixel(0, 0); got != blue {
		t.Errorf("mutating a loaded image leaked into the cache: got %v", got)
	}
}

func TestImageCache_Load_Variants(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 10, 10, color.RGBA{0, 255, 0, 255})

	loads := []struct {
		smoothing     bool
		width, height int
	}{
		{true, 0, 0},
		{false, 0, 0},
		{true, 32, 16},
		{false, 32, 16},
		{true, 32, 16},
	}
	for _, l := range loads {
		img, err := cache.Load(imgPath, l.smoothing, l.width, l.height)
		if err != nil {
			t.Fatalf("Load(%v, %d, %d) failed: %v", l.smoothing, l.width, l.height, err)
		}
		if l.width != 0 && (img.Width() != l.width || img.Height() != l.height) {
			t.Errorf("dimensions: got %dx%d, want %dx%d", img.Width(), img.Height(), l.width, l.height)
		}
		if img.Smoothing() != l.smoothing {
			t.Errorf("smoothing: got %v, want %v", img.Smoothing(), l.smoothing)
		}
	}

	if cache.Len() != 4 {
		t.Errorf("cache entries: got %d, want 4", cache.Len())
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache()
	_, err := cache.Load("/nonexistent/path/to/image.png", true, 0, 0)
	if err == nil {
		t.Error("Load should fail for non-existent file")
	}
	if cache.Len() != 0 {
		t.Error("failed loads must not be cached")
	}
}

func TestImageCache_Load_InvalidImage(t *testing.T) {
	cache := NewImageCache()

	path := filepath.Join(t.TempDir(), "invalid-image.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := cache.Load(path, true, 0, 0)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("got %v, want ErrDecode", err)
	}
}

func TestImageCache_Load_InvalidSize(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 10, 10, color.White)

	_, err := cache.Load(imgPath, true, 10, 0)
	if !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("got %v, want ErrInvalidDimension", err)
	}
}

func TestImageCache_Clear(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 255, 0, 255})

	if _, err := cache.Load(imgPath, true, 0, 0); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Clear()

	if cache.Len() != 0 {
		t.Errorf("Clear did not empty cache: %d images remain", cache.Len())
	}
}

func TestImageCache_Evict(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 0, 255, 255})
	otherPath := filepath.Join(t.TempDir(), "other.png")
	if err := os.WriteFile(otherPath, encodePNG(t, createInMemoryImage(4, 4, color.White)), 0o644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}

	for _, smoothing := range []bool{true, false} {
		if _, err := cache.Load(imgPath, smoothing, 0, 0); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	}
	if _, err := cache.Load(otherPath, true, 0, 0); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Evict(imgPath)

	if cache.Len() != 1 {
		t.Errorf("Evict should remove every variant of the path: %d entries remain", cache.Len())
	}
}

func TestImageCache_Evict_NonExistent(t *testing.T) {
	cache := NewImageCache()
	// Should not panic
	cache.Evict("/nonexistent/path")
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	// Concurrent loads
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := cache.Load(imgPath, i%2 == 0, 0, 0); err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
	if cache.Len() != 2 {
		t.Errorf("cache entries: got %d, want 2", cache.Len())
	}
}
