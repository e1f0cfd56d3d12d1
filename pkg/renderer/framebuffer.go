package renderer

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Framebuffer holds one color per pixel in row-major order
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color at row, col
func (fb *Framebuffer) At(row, col int) core.Vec3 {
	return fb.Pixels[row*fb.Width+col]
}

// Row returns the pixels of a single row; rows never overlap
func (fb *Framebuffer) Row(row int) []core.Vec3 {
	start := row * fb.Width
	return fb.Pixels[start : start+fb.Width]
}

// ToneMap maps every pixel into [0,1] in place
func (fb *Framebuffer) ToneMap(policy ToneMap) {
	scale := 1.0
	if policy == ToneMapMaxNormalize {
		scale = 1 / fb.maxMagnitude()
	}

	for i, c := range fb.Pixels {
		fb.Pixels[i] = c.Multiply(scale).Clamp(0, 1)
	}
}

// maxMagnitude returns the largest pixel length, never less than 1
func (fb *Framebuffer) maxMagnitude() float64 {
	maxMag := 1.0
	for _, c := range fb.Pixels {
		if mag := c.Length(); mag > maxMag {
			maxMag = mag
		}
	}
	return maxMag
}
