package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Parallelogram represents a flat quad spanned by two edge vectors from a corner
type Parallelogram struct {
	Origin core.Vec3 // One corner of the parallelogram
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
}

// NewParallelogram creates a new parallelogram from a corner and two edge vectors
func NewParallelogram(origin, u, v core.Vec3) Parallelogram {
	return Parallelogram{
		Origin: origin,
		U:      u,
		V:      v,
	}
}

// Coordinates solves [U V d]·(α, β, s) = o - Origin for a ray.
// A hit point is Origin + αU + βV = o + t·d, so the ray parameter is t = -s.
// ok is false when the system is singular (ray parallel to the quad's plane).
func (q Parallelogram) Coordinates(ray core.Ray) (alpha, beta, t float64, ok bool) {
	inverse, invertible := core.Mat3FromCols(q.U, q.V, ray.Direction).Inverse()
	if !invertible {
		return 0, 0, 0, false
	}

	uvt := inverse.MulVec(ray.Origin.Subtract(q.Origin))
	return uvt.X, uvt.Y, -uvt.Z, true
}

// Intersect tests if a ray hits the parallelogram from either side
func (q Parallelogram) Intersect(ray core.Ray) float64 {
	alpha, beta, t, ok := q.Coordinates(ray)
	if !ok {
		return NoHit
	}

	// Outside the quad's footprint
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return NoHit
	}

	if t < 0 || math.IsNaN(t) {
		return NoHit
	}
	return t
}

// NormalAt returns (U × V) normalized; the surface is flat so point is unused
func (q Parallelogram) NormalAt(point core.Vec3) core.Vec3 {
	return q.U.Cross(q.V).Normalize()
}

// Kind returns KindParallelogram
func (q Parallelogram) Kind() Kind { return KindParallelogram }

func (Parallelogram) sealed() {}
