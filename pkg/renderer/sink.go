package renderer

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sink receives a finished image. Begin is called once, then SetPixel
// exactly once per pixel in row order, then Present.
type Sink interface {
	Begin(width, height int) error
	SetPixel(row, col int, c core.Vec3)
	Present() error
}

// ToRGBA converts a color in [0,1] to 8-bit RGBA without gamma correction
func ToRGBA(c core.Vec3) color.RGBA {
	c = c.Clamp(0, 1)
	return color.RGBA{
		R: uint8(math.Round(c.X * 255)),
		G: uint8(math.Round(c.Y * 255)),
		B: uint8(math.Round(c.Z * 255)),
		A: 255,
	}
}

// ImageSink collects the render into an in-memory RGBA image
type ImageSink struct {
	Image *image.RGBA
}

// NewImageSink creates an empty image sink
func NewImageSink() *ImageSink {
	return &ImageSink{}
}

func (s *ImageSink) Begin(width, height int) error {
	s.Image = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

func (s *ImageSink) SetPixel(row, col int, c core.Vec3) {
	s.Image.SetRGBA(col, row, ToRGBA(c))
}

func (s *ImageSink) Present() error {
	return nil
}

// MultiSink fans every call out to several sinks
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a sink that forwards to each of sinks in order
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) Begin(width, height int) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Begin(width, height); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) SetPixel(row, col int, c core.Vec3) {
	for _, s := range m.sinks {
		s.SetPixel(row, col, c)
	}
}

func (m *MultiSink) Present() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Present(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
