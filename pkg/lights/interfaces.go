package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint LightType = "point"
)

// PointLight emits Color from a single position with no distance falloff
type PointLight struct {
	Position core.Vec3
	Color    core.Vec3 // Intensity and color combined
}

// NewPointLight creates a point light
func NewPointLight(position, color core.Vec3) PointLight {
	return PointLight{
		Position: position,
		Color:    color,
	}
}

// Type returns LightTypePoint
func (l PointLight) Type() LightType {
	return LightTypePoint
}

// DirectionFrom returns the unit direction from point toward the light.
// A point at the light's position gets the zero vector.
func (l PointLight) DirectionFrom(point core.Vec3) core.Vec3 {
	return l.Position.Subtract(point).Normalize()
}
