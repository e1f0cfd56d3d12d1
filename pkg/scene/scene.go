package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Mesh pairs a shape with its material; both are owned by value
type Mesh struct {
	Geometry geometry.Geometry
	Material material.Material
}

// Scene contains all the elements needed for rendering.
// It is built once and only read while rendering.
type Scene struct {
	Meshes  []Mesh              // Ordered; nearest hit wins, first on ties
	Lights  []lights.PointLight // Lights in the scene
	Ambient core.Vec3           // Flat ambient term, used only when the renderer enables it
	Camera  geometry.Camera     // Recommended camera
	Config  RecommendedConfig   // Recommended render settings
}

// RecommendedConfig carries the render settings a scene was designed for
type RecommendedConfig struct {
	Width      int // Image width
	Height     int // Image height
	MaxBounces int // Maximum reflection depth
}

// GetMeshCount returns the number of meshes in the scene
func (s *Scene) GetMeshCount() int {
	return len(s.Meshes)
}

// Builder assembles a Scene. A builder created with positive capacities
// refuses appends beyond them and reports false instead of growing.
type Builder struct {
	meshCapacity  int
	lightCapacity int
	meshes        []Mesh
	lights        []lights.PointLight
	ambient       core.Vec3
	camera        geometry.Camera
	config        RecommendedConfig
}

// NewBuilder creates a growable builder
func NewBuilder() *Builder {
	return &Builder{}
}

// NewFixedBuilder creates a builder that holds at most meshCapacity meshes and lightCapacity lights
func NewFixedBuilder(meshCapacity, lightCapacity int) *Builder {
	return &Builder{
		meshCapacity:  meshCapacity,
		lightCapacity: lightCapacity,
		meshes:        make([]Mesh, 0, max(meshCapacity, 0)),
		lights:        make([]lights.PointLight, 0, max(lightCapacity, 0)),
	}
}

// AddMesh appends a mesh, returning false if the builder is full
func (b *Builder) AddMesh(geom geometry.Geometry, mat material.Material) bool {
	if geom == nil {
		return false
	}
	if b.meshCapacity > 0 && len(b.meshes) >= b.meshCapacity {
		return false
	}
	b.meshes = append(b.meshes, Mesh{Geometry: geom, Material: mat})
	return true
}

// AddPlane appends a one-sided plane {p : normal·p = offset}
func (b *Builder) AddPlane(normal core.Vec3, offset float64, mat material.Material) bool {
	return b.AddMesh(geometry.NewPlane(normal, offset), mat)
}

// AddSphere appends a sphere
func (b *Builder) AddSphere(center core.Vec3, radius float64, mat material.Material) bool {
	return b.AddMesh(geometry.NewSphere(center, radius), mat)
}

// AddParallelogram appends a parallelogram spanned by u and v from origin
func (b *Builder) AddParallelogram(origin, u, v core.Vec3, mat material.Material) bool {
	return b.AddMesh(geometry.NewParallelogram(origin, u, v), mat)
}

// AddLight appends a point light, returning false if the builder is full
func (b *Builder) AddLight(position, color core.Vec3) bool {
	if b.lightCapacity > 0 && len(b.lights) >= b.lightCapacity {
		return false
	}
	b.lights = append(b.lights, lights.NewPointLight(position, color))
	return true
}

// SetAmbient sets the scene's ambient light
func (b *Builder) SetAmbient(color core.Vec3) *Builder {
	b.ambient = color
	return b
}

// SetCamera sets the recommended camera
func (b *Builder) SetCamera(camera geometry.Camera) *Builder {
	b.camera = camera
	return b
}

// SetConfig sets the recommended render settings
func (b *Builder) SetConfig(config RecommendedConfig) *Builder {
	b.config = config
	return b
}

// Build returns a scene holding copies of everything added so far
func (b *Builder) Build() *Scene {
	meshes := make([]Mesh, len(b.meshes))
	copy(meshes, b.meshes)
	pointLights := make([]lights.PointLight, len(b.lights))
	copy(pointLights, b.lights)

	return &Scene{
		Meshes:  meshes,
		Lights:  pointLights,
		Ambient: b.ambient,
		Camera:  b.camera,
		Config:  b.config,
	}
}
