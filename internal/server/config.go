package server

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultCanvasSize is the output width and height used when a tool call
// does not give one.
const DefaultCanvasSize = 512

// Options configures a Server.
type Options struct {
	// CanvasWidth and CanvasHeight are the default render size. Layers are
	// resampled to this size when loaded.
	CanvasWidth  int
	CanvasHeight int

	// Debug enables per-call logging.
	Debug bool
}

// DefaultOptions returns Options with a square DefaultCanvasSize canvas.
func DefaultOptions() Options {
	return Options{
		CanvasWidth:  DefaultCanvasSize,
		CanvasHeight: DefaultCanvasSize,
	}
}

// OptionsFromEnv reads FLAG_PFP_LOG_LEVEL and FLAG_PFP_CANVAS_SIZE on top of
// DefaultOptions.
func OptionsFromEnv() (Options, error) {
	opts := DefaultOptions()
	opts.Debug = os.Getenv("FLAG_PFP_LOG_LEVEL") == "debug"

	if v := os.Getenv("FLAG_PFP_CANVAS_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return opts, fmt.Errorf("invalid FLAG_PFP_CANVAS_SIZE %q: must be a positive integer", v)
		}
		opts.CanvasWidth, opts.CanvasHeight = size, size
	}
	return opts, nil
}
