package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/disintegration/imaging"
)

// EncodedImage is a PixelImage serialized for transport.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Encode serializes p as a base64 PNG.
func Encode(p *PixelImage) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, p.img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &EncodedImage{
		Width:       p.Width(),
		Height:      p.Height(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Save writes p to path. The format follows the file extension
// (png, jpg, gif, tif, bmp).
func Save(p *PixelImage, path string) error {
	if err := imaging.Save(p.img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
