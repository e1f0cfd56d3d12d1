package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NoHit is the ray parameter reported when a ray misses a primitive.
// Callers treat any negative parameter as a miss; zero is a valid hit.
const NoHit = -1.0

// Kind identifies one of the closed set of primitive shapes
type Kind int

const (
	KindPlane Kind = iota
	KindSphere
	KindParallelogram
)

func (k Kind) String() string {
	switch k {
	case KindPlane:
		return "plane"
	case KindSphere:
		return "sphere"
	case KindParallelogram:
		return "parallelogram"
	default:
		return "unknown"
	}
}

// Geometry is implemented only by Plane, Sphere and Parallelogram.
// The unexported method keeps the set closed so type switches over it stay exhaustive.
type Geometry interface {
	// Intersect returns the parameter of the nearest forward hit, or NoHit
	Intersect(ray core.Ray) float64
	// NormalAt returns the unit surface normal at a point on the surface
	NormalAt(point core.Vec3) core.Vec3
	Kind() Kind
	sealed()
}
