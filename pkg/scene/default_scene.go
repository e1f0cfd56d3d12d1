package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates a single white sphere resting on a floor, lit from above
func NewDefaultScene() *Scene {
	b := NewBuilder()

	b.SetCamera(geometry.NewCamera(core.NewVec3(0, 0, 10), 45, 15))
	b.SetConfig(RecommendedConfig{
		Width:      400,
		Height:     400,
		MaxBounces: 5,
	})

	white := core.NewVec3(1, 1, 1)
	floor := material.NewMaterial(1, 0, 0, 0.25, core.NewVec3(0.9, 0.8, 0.7))

	b.AddSphere(core.NewVec3(0, 0, 0), 1, material.NewGlossy(white, 0.8, 0.5, 30))
	b.AddPlane(core.NewVec3(0, 1, 0), -1, floor)

	b.AddLight(core.NewVec3(0, 5, 2), white)

	return b.Build()
}
