package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// placeholderLines are drawn top to bottom, centered, when there is
// nothing to render.
var placeholderLines = []struct {
	text string
	hex  string
}{
	{"no", "#D60270"},
	{"images", "#9B4F96"},
	{"added", "#0038A8"},
}

// DrawPlaceholder writes a centered "no images added" notice onto target.
// It is what a caller shows instead of a blank canvas when neither layer
// could be rendered.
func DrawPlaceholder(target *PixelImage) {
	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil() + 4
	blockHeight := lineHeight * len(placeholderLines)
	top := (target.Height()-blockHeight)/2 + face.Metrics().Ascent.Ceil()

	for i, line := range placeholderLines {
		px, err := parseHexColor(line.hex)
		if err != nil {
			continue
		}
		d := &font.Drawer{
			Dst:  target.img,
			Src:  image.NewUniform(color.NRGBA{R: px[0], G: px[1], B: px[2], A: px[3]}),
			Face: face,
		}
		width := d.MeasureString(line.text).Ceil()
		d.Dot = fixed.P((target.Width()-width)/2, top+i*lineHeight)
		d.DrawString(line.text)
	}
}
