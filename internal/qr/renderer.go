// Package qr renders otpauth enrollment URIs as scannable PNG images.
package qr

import (
	"io"

	qrcode "github.com/skip2/go-qrcode"
)

// Renderer writes QR code PNGs to a sink
type Renderer struct {
	size int
}

// New creates a Renderer producing images of the given pixel size
func New(size int) *Renderer {
	if size <= 0 {
		size = 256
	}
	return &Renderer{size: size}
}

// Render encodes the content as a QR code and writes the PNG to w
func (r *Renderer) Render(w io.Writer, content string) error {
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return err
	}
	png, err := code.PNG(r.size)
	if err != nil {
		return err
	}
	_, err = w.Write(png)
	return err
}
