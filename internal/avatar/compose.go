package avatar

import "github.com/ironsheep/flag-pfp-mcp/internal/imaging"

// Composition is a finished profile picture.
type Composition struct {
	Image         *imaging.PixelImage
	HasBackground bool
	HasForeground bool
}

// Empty reports whether neither layer was available, in which case Image
// holds the "no images added" placeholder.
func (c *Composition) Empty() bool {
	return !c.HasBackground && !c.HasForeground
}

// Compose renders both layers of r at width x height and draws them onto a
// new canvas, background first so the photo sits on top.
func Compose(r *Renderer, width, height int) (*Composition, error) {
	canvas, err := imaging.WithSize(width, height, true)
	if err != nil {
		return nil, err
	}

	background, err := r.RenderBackground(width, height)
	if err != nil {
		return nil, err
	}
	foreground, err := r.RenderForeground(width, height)
	if err != nil {
		return nil, err
	}

	if background != nil {
		background.CompositeOnto(canvas)
	}
	if foreground != nil {
		foreground.CompositeOnto(canvas)
	}

	c := &Composition{
		Image:         canvas,
		HasBackground: background != nil,
		HasForeground: foreground != nil,
	}
	if c.Empty() {
		imaging.DrawPlaceholder(canvas)
	}
	return c, nil
}
