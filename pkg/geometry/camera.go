package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera is a pinhole camera looking down -Z.
// The image plane sits FocalLength in front of the origin and spans FOV vertically.
type Camera struct {
	Origin      core.Vec3
	FOV         float64 // Vertical field of view in degrees
	FocalLength float64 // Distance from origin to the image plane
}

// NewCamera creates a camera
func NewCamera(origin core.Vec3, fov, focalLength float64) Camera {
	return Camera{
		Origin:      origin,
		FOV:         fov,
		FocalLength: focalLength,
	}
}

// PixelSize returns the world-space edge length of one pixel on the image plane
func (c Camera) PixelSize(height int) float64 {
	fovRads := c.FOV * math.Pi / 180
	planeHeight := 2 * c.FocalLength * math.Tan(fovRads/2)
	return planeHeight / float64(height)
}

// PixelCenter returns the image-plane point for pixel row i, column j.
// Halving uses integer division, so for even sizes pixel (h/2, w/2) lies on the view axis.
func (c Camera) PixelCenter(i, j, width, height int, pixelSize float64) core.Vec3 {
	px := float64(j-width/2) * pixelSize
	py := -float64(i-height/2) * pixelSize
	return core.NewVec3(px, py, c.Origin.Z-c.FocalLength)
}

// GetRay generates the primary ray through pixel row i, column j
func (c Camera) GetRay(i, j, width, height int) core.Ray {
	center := c.PixelCenter(i, j, width, height, c.PixelSize(height))
	return core.NewRay(c.Origin, center.Subtract(c.Origin))
}
