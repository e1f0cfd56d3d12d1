package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane represents an infinite one-sided plane {p : Normal·p = Offset}.
// It is visible only from the side its normal points toward.
type Plane struct {
	Normal core.Vec3 // Unit normal
	Offset float64   // Signed distance from the origin along Normal
}

// NewPlane creates a new plane
func NewPlane(normal core.Vec3, offset float64) Plane {
	return Plane{
		Normal: normal.Normalize(), // Ensure normal is normalized
		Offset: offset,
	}
}

// NewPlaneThroughPoint creates a plane with the given normal passing through point
func NewPlaneThroughPoint(point, normal core.Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, Offset: n.Dot(point)}
}

// Intersect tests if a ray hits the front face of the plane
func (p Plane) Intersect(ray core.Ray) float64 {
	// Calculate denominator: dot product of ray direction and plane normal
	denominator := p.Normal.Dot(ray.Direction)

	// Ray is parallel to the plane or travels away from its front face
	if denominator >= 0 || math.IsNaN(denominator) {
		return NoHit
	}

	t := (p.Offset - p.Normal.Dot(ray.Origin)) / denominator
	if t < 0 || math.IsNaN(t) {
		return NoHit
	}
	return t
}

// NormalAt returns the plane normal, which is the same everywhere
func (p Plane) NormalAt(point core.Vec3) core.Vec3 {
	return p.Normal
}

// Kind returns KindPlane
func (p Plane) Kind() Kind { return KindPlane }

func (Plane) sealed() {}
