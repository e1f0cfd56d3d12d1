package display

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PNGSink draws the render into a gg context and encodes it as PNG on Present.
// It writes either to a file path or to an io.Writer.
type PNGSink struct {
	path string
	w    io.Writer
	dc   *gg.Context
}

// NewPNGSink creates a sink that saves to path, creating parent directories
func NewPNGSink(path string) *PNGSink {
	return &PNGSink{path: path}
}

// NewPNGWriterSink creates a sink that encodes to w
func NewPNGWriterSink(w io.Writer) *PNGSink {
	return &PNGSink{w: w}
}

func (s *PNGSink) Begin(width, height int) error {
	s.dc = gg.NewContext(width, height)
	return nil
}

func (s *PNGSink) SetPixel(row, col int, c core.Vec3) {
	c = c.Clamp(0, 1)
	s.dc.SetRGB(c.X, c.Y, c.Z)
	s.dc.SetPixel(col, row)
}

func (s *PNGSink) Present() error {
	if s.dc == nil {
		return fmt.Errorf("png sink: Present before Begin")
	}
	if s.w != nil {
		return s.dc.EncodePNG(s.w)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := s.dc.SavePNG(s.path); err != nil {
		return fmt.Errorf("failed to save %s: %w", s.path, err)
	}
	return nil
}

// Image returns the drawn image, or nil before Begin
func (s *PNGSink) Image() image.Image {
	if s.dc == nil {
		return nil
	}
	return s.dc.Image()
}
