// Package image generates and decodes the illustrative dish photo.
package image

import (
	"bytes"
	"encoding/base64"
	"fmt"
	stdimage "image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Image is a decoded raster image held in memory.
type Image struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// MIMEType returns the content type matching Format.
func (i *Image) MIMEType() string {
	return "image/" + i.Format
}

// DataURI renders the image for inline display.
func (i *Image) DataURI() string {
	return "data:" + i.MIMEType() + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Decode validates data as a png, jpeg or gif image from its header. The
// bytes are kept as-is for display; pixels are never decoded.
func Decode(data []byte) (*Image, error) {
	cfg, format, err := stdimage.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return &Image{
		Data:   data,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// DecodeBase64 decodes inline base64 image data.
func DecodeBase64(encoded string) (*Image, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 image: %w", err)
	}
	return Decode(data)
}
