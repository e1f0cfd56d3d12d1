package scene

import (
	"math"
	"math/rand"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// RandomSpheresConfig controls the random sphere field
type RandomSpheresConfig struct {
	NumSpheres int
	NumLights  int
	Seed       int64
}

// DefaultRandomSpheresConfig returns the settings used by the "random-spheres" preset
func DefaultRandomSpheresConfig() RandomSpheresConfig {
	return RandomSpheresConfig{
		NumSpheres: 12,
		NumLights:  3,
		Seed:       42,
	}
}

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

func lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// NewRandomSpheresScene creates a field of randomly placed spheres with random
// materials and lights in front of a camera at the origin.
// The same seed always produces the same scene.
func NewRandomSpheresScene(config RandomSpheresConfig) *Scene {
	rng := rand.New(rand.NewSource(config.Seed))
	b := NewBuilder()

	b.SetCamera(geometry.NewCamera(core.NewVec3(0, 0, 0), 45, 15))
	b.SetConfig(RecommendedConfig{
		Width:      400,
		Height:     400,
		MaxBounces: 8,
	})

	for i := 0; i < config.NumSpheres; i++ {
		center := core.NewVec3(
			lerp(-3, 3, rng.Float64()),
			lerp(-3, 3, rng.Float64()),
			lerp(-10, -6, rng.Float64()),
		)
		radius := lerp(0.25, 1, rng.Float64())

		// Hue spread gives a varied palette at uniform lightness
		color := oklchToRGB(0.7, lerp(0.05, 0.25, rng.Float64()), rng.Float64()*360)

		mat := material.NewMaterial(
			rng.Float64(),
			rng.Float64(),
			math.Floor(lerp(0, 100, rng.Float64())),
			rng.Float64(),
			color,
		)
		b.AddSphere(center, radius, mat)
	}

	for i := 0; i < config.NumLights; i++ {
		position := core.NewVec3(
			lerp(-4, 4, rng.Float64()),
			lerp(-4, 4, rng.Float64()),
			lerp(-14, -2, rng.Float64()),
		)
		color := core.NewVec3(rng.Float64(), rng.Float64(), rng.Float64())
		b.AddLight(position, color)
	}

	return b.Build()
}
