package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) Sphere {
	return Sphere{
		Center: center,
		Radius: radius,
	}
}

// Intersect solves |o + t·d - c|² = r² and returns the nearest non-negative root.
// The full quadratic is used so the result is in the ray's own parameterization
// even when the direction is not unit length.
func (s Sphere) Intersect(ray core.Ray) float64 {
	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)

	// Ray has no direction
	if a == 0 {
		return NoHit
	}

	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 || math.IsNaN(discriminant) {
		return NoHit
	}

	// Tangent ray grazes the surface at a single point
	if discriminant == 0 {
		t := -b / (2 * a)
		if t < 0 {
			return NoHit
		}
		return t
	}

	sqrtD := math.Sqrt(discriminant)
	near := (-b - sqrtD) / (2 * a)
	far := (-b + sqrtD) / (2 * a)

	if near >= 0 {
		return near
	}
	// Origin is inside the sphere: the exit point is the only forward hit
	if far >= 0 {
		return far
	}
	return NoHit
}

// NormalAt returns the outward unit normal at a point on the sphere
func (s Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// Kind returns KindSphere
func (s Sphere) Kind() Kind { return KindSphere }

func (Sphere) sealed() {}
