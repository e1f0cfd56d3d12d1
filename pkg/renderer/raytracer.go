package renderer

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// reflectionOffset moves bounce origins off the surface they leave
const reflectionOffset = 1e-5

// Raytracer traces one ray per pixel through a read-only scene
type Raytracer struct {
	id     string
	scene  *scene.Scene
	camera geometry.Camera
	config Config
	logger core.Logger
}

// NewRaytracer creates a raytracer for a scene viewed through camera.
// Every log line is tagged with a fresh render ID.
func NewRaytracer(s *scene.Scene, camera geometry.Camera, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	id := uuid.NewString()
	return &Raytracer{
		id:     id,
		scene:  s,
		camera: camera,
		config: config,
		logger: &renderLogger{renderID: id, base: logger},
	}
}

// ID returns the render ID
func (rt *Raytracer) ID() string {
	return rt.id
}

// Hit describes the nearest intersection along a ray
type Hit struct {
	MeshIndex int
	T         float64
	Point     core.Vec3
	Normal    core.Vec3
}

// hitWorld scans every mesh and returns the index and t of the nearest
// forward hit. Earlier meshes win ties. Returns -1 on a miss.
func (rt *Raytracer) hitWorld(ray core.Ray) (int, float64) {
	nearest := -1
	minT := math.Inf(1)

	for i := range rt.scene.Meshes {
		t := rt.scene.Meshes[i].Geometry.Intersect(ray)
		if t >= 0 && t < minT {
			nearest = i
			minT = t
		}
	}
	return nearest, minT
}

// Intersect returns the nearest hit along ray, if any
func (rt *Raytracer) Intersect(ray core.Ray) (Hit, bool) {
	index, t := rt.hitWorld(ray)
	if index < 0 {
		return Hit{}, false
	}
	point := ray.At(t)
	return Hit{
		MeshIndex: index,
		T:         t,
		Point:     point,
		Normal:    rt.scene.Meshes[index].Geometry.NormalAt(point),
	}, true
}

// CastRay returns the unclamped radiance seen along ray, following at most
// bounces mirror reflections
func (rt *Raytracer) CastRay(ray core.Ray, bounces int) core.Vec3 {
	var stats RenderStats
	return rt.castRay(ray, bounces, 0, &stats)
}

func (rt *Raytracer) castRay(ray core.Ray, bouncesLeft, depth int, stats *RenderStats) core.Vec3 {
	stats.RaysCast++
	stats.MaxDepthReached = max(stats.MaxDepthReached, depth)

	hit, ok := rt.Intersect(ray)
	if !ok {
		return core.Vec3{}
	}
	if depth == 0 {
		stats.PrimaryHits++
	}

	mat := rt.scene.Meshes[hit.MeshIndex].Material
	toViewer := ray.Direction.Negate().Normalize()

	// Local shading summed over every light, no shadow rays
	var color core.Vec3
	for _, light := range rt.scene.Lights {
		toLight := light.DirectionFrom(hit.Point)
		color = color.Add(mat.EvaluateLight(hit.Normal, toViewer, toLight, light.Color))
	}
	if rt.config.Ambient {
		color = color.Add(rt.scene.Ambient.Multiply(mat.Diffusion))
	}
	color = color.MultiplyVec(mat.Color)

	if bouncesLeft > 0 && mat.Reflectance > 0 {
		reflected := ray.Direction.Reflect(hit.Normal).Normalize()
		origin := hit.Point.Add(reflected.Multiply(reflectionOffset))
		bounce := rt.castRay(core.NewRay(origin, reflected), bouncesLeft-1, depth+1, stats)
		color = color.Add(bounce.Multiply(mat.Reflectance))
	}

	return color
}

// RenderRow traces every pixel of image row i into out
func (rt *Raytracer) RenderRow(i int, out []core.Vec3) RenderStats {
	var stats RenderStats
	width, height := rt.config.Width, rt.config.Height
	pixelSize := rt.camera.PixelSize(height)

	for j := 0; j < width; j++ {
		center := rt.camera.PixelCenter(i, j, width, height, pixelSize)
		ray := core.NewRay(rt.camera.Origin, center.Subtract(rt.camera.Origin))
		out[j] = rt.castRay(ray, rt.config.MaxBounces, 0, &stats)
		stats.TotalPixels++
	}
	return stats
}

// Render traces the whole image, tone-maps it, and hands it to sink.
// The sink sees nothing unless every row finished.
func (rt *Raytracer) Render(ctx context.Context, sink Sink) (RenderStats, error) {
	var stats RenderStats
	if err := rt.config.Validate(); err != nil {
		return stats, err
	}
	if rt.scene == nil {
		return stats, fmt.Errorf("%w: nil scene", ErrInvalidConfig)
	}

	start := time.Now()
	width, height := rt.config.Width, rt.config.Height
	fb := NewFramebuffer(width, height)

	pool := NewWorkerPool(rt, fb, rt.config.NumWorkers)
	rt.logger.Printf("Rendering %dx%d, %d meshes, %d lights, %d bounces (using %d workers)...\n",
		width, height, len(rt.scene.Meshes), len(rt.scene.Lights), rt.config.MaxBounces, pool.GetNumWorkers())

	pool.Start(ctx)
	for i := 0; i < height; i++ {
		pool.SubmitTask(RowTask{Row: i})
	}
	pool.Stop()

	var renderErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil && renderErr == nil {
			renderErr = result.Error
		}
		stats.Merge(result.Stats)
	}
	if renderErr == nil {
		renderErr = ctx.Err()
	}
	if renderErr != nil {
		rt.logger.Printf("Render cancelled: %v\n", renderErr)
		return stats, renderErr
	}

	fb.ToneMap(rt.config.ToneMap)

	if err := present(fb, sink); err != nil {
		return stats, fmt.Errorf("display sink: %w", err)
	}

	stats.Duration = time.Since(start)
	rt.logger.Printf("Render completed in %v (%d rays, %d/%d primary hits, max depth %d)\n",
		stats.Duration, stats.RaysCast, stats.PrimaryHits, stats.TotalPixels, stats.MaxDepthReached)
	return stats, nil
}

// present delivers a finished framebuffer row by row
func present(fb *Framebuffer, sink Sink) error {
	if sink == nil {
		return nil
	}
	if err := sink.Begin(fb.Width, fb.Height); err != nil {
		return err
	}
	for i := 0; i < fb.Height; i++ {
		for j, c := range fb.Row(i) {
			sink.SetPixel(i, j, c)
		}
	}
	return sink.Present()
}

// Render traces scene through camera into sink using a stdout logger
func Render(ctx context.Context, s *scene.Scene, camera geometry.Camera, config Config, sink Sink) (RenderStats, error) {
	return NewRaytracer(s, camera, config, nil).Render(ctx, sink)
}
