package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// NewMatte creates a purely diffuse, non-reflective material
func NewMatte(color core.Vec3) Material {
	return NewMaterial(1, 0, 0, 0, color)
}

// NewGlossy creates a diffuse material with a specular highlight and no mirror bounce
func NewGlossy(color core.Vec3, diffusion, specularity, shininess float64) Material {
	return NewMaterial(diffusion, specularity, shininess, 0, color)
}

// NewMirror creates a reflective material with a tight highlight
func NewMirror(color core.Vec3, reflectance float64) Material {
	return NewMaterial(0.3, 1, 50, reflectance, color)
}

// NewEmitterPanel creates the highlight-only material used for light fixtures
func NewEmitterPanel(color core.Vec3) Material {
	return NewMaterial(0, 1, 0, 0, color)
}
