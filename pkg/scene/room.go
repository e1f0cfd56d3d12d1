package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewRoomScene creates a small box room with colored side walls, a mirror
// sphere, a red sphere and a ceiling light fixture
func NewRoomScene() *Scene {
	b := NewFixedBuilder(9, 1)

	b.SetCamera(geometry.NewCamera(core.NewVec3(0, 0, 10), 45, 15))
	b.SetConfig(RecommendedConfig{
		Width:      400,
		Height:     400,
		MaxBounces: 10,
	})
	b.SetAmbient(core.NewVec3(0.1, 0.1, 0.1))

	white := core.NewVec3(1, 1, 1)
	red := core.NewVec3(1, 0, 0)
	green := core.NewVec3(0, 1, 0)

	wall := material.NewMaterial(1, 0, 0, 0.25, core.NewVec3(0.9, 0.8, 0.7))
	redWall := material.NewMaterial(1, 0, 0, 0.5, red)
	greenWall := material.NewMaterial(1, 0, 0, 0.5, green)

	// Spheres
	b.AddSphere(core.NewVec3(-0.5, -0.5, 6), 0.5, material.NewMirror(white, 0.75))
	b.AddSphere(core.NewVec3(0.5, -0.75, 6), 0.25, material.NewMaterial(0.75, 0.25, 10, 0.2, red))

	// Walls, floor and ceiling
	b.AddPlane(core.NewVec3(0, 1, 0), -1, wall)         // floor
	b.AddPlane(core.NewVec3(1, 0, 0), -1.5, redWall)    // left
	b.AddPlane(core.NewVec3(-1, 0, 0), -1.5, greenWall) // right
	b.AddPlane(core.NewVec3(0, 0, 1), 5, wall)          // back
	b.AddPlane(core.NewVec3(0, 0, -1), 11, wall)        // front
	b.AddPlane(core.NewVec3(0, -1, 0), -1.2, wall)      // ceiling

	// Fixture just below the ceiling, with the light under it
	b.AddParallelogram(
		core.NewVec3(-0.5, 1, 6.3),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 0, 1),
		material.NewEmitterPanel(white),
	)
	b.AddLight(core.NewVec3(0, 1.17, 5.8), white)

	return b.Build()
}
