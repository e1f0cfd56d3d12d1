package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material holds the local reflectance coefficients of a surface.
// Diffusion and Specularity scale the diffuse and Blinn specular terms,
// Shininess is the specular exponent, and Reflectance weights the mirror bounce.
type Material struct {
	Diffusion   float64
	Specularity float64
	Shininess   float64
	Reflectance float64   // Fraction of the reflected ray's color added, in [0,1]
	Color       core.Vec3 // Albedo that tints all direct lighting
}

// NewMaterial creates a material
func NewMaterial(diffusion, specularity, shininess, reflectance float64, color core.Vec3) Material {
	return Material{
		Diffusion:   diffusion,
		Specularity: specularity,
		Shininess:   shininess,
		Reflectance: reflectance,
		Color:       color,
	}
}

// EvaluateLight returns the untinted contribution of one light:
// Diffusion·L·max(0, n·l) + Specularity·L·max(0, n·h)^Shininess,
// where h is the half vector between toViewer and toLight.
// All direction arguments must be unit length.
func (m Material) EvaluateLight(normal, toViewer, toLight, lightColor core.Vec3) core.Vec3 {
	diffusion := max(0, normal.Dot(toLight))

	half := toViewer.Add(toLight).Normalize()
	specularity := max(0, normal.Dot(half))

	weight := m.Diffusion*diffusion + m.Specularity*math.Pow(specularity, m.Shininess)
	return lightColor.Multiply(weight)
}

// IsReflective reports whether the surface spawns a mirror bounce
func (m Material) IsReflective() bool {
	return m.Reflectance > 0
}
