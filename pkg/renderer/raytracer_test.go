package renderer

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// testLogger implements core.Logger for testing by discarding all output
type testLogger struct{}

var _ core.Logger = (*testLogger)(nil)

func (tl *testLogger) Printf(format string, args ...interface{}) {}

// recordingSink remembers every pixel it receives
type recordingSink struct {
	begun     bool
	presented bool
	width     int
	height    int
	counts    map[[2]int]int
	pixels    map[[2]int]core.Vec3
}

func newRecordingSink() *recordingSink {
	return &recordingSink{
		counts: make(map[[2]int]int),
		pixels: make(map[[2]int]core.Vec3),
	}
}

func (s *recordingSink) Begin(width, height int) error {
	s.begun = true
	s.width, s.height = width, height
	return nil
}

func (s *recordingSink) SetPixel(row, col int, c core.Vec3) {
	key := [2]int{row, col}
	s.counts[key]++
	s.pixels[key] = c
}

func (s *recordingSink) Present() error {
	s.presented = true
	return nil
}

func sphereOnFloor() *scene.Scene {
	b := scene.NewBuilder()
	white := core.NewVec3(1, 1, 1)
	b.AddSphere(core.NewVec3(0, 0, 0), 1, material.NewMatte(white))
	b.AddPlane(core.NewVec3(0, 1, 0), -1, material.NewMatte(white))
	b.AddLight(core.NewVec3(0, 5, 2), white)
	return b.Build()
}

func testCamera() geometry.Camera {
	return geometry.NewCamera(core.NewVec3(0, 0, 10), 45, 15)
}

func testConfig(width, height int) Config {
	config := DefaultConfig()
	config.Width = width
	config.Height = height
	config.MaxBounces = 3
	return config
}

func TestRender_SphereOnFloor(t *testing.T) {
	sink := newRecordingSink()
	rt := NewRaytracer(sphereOnFloor(), testCamera(), testConfig(40, 40), &testLogger{})

	stats, err := rt.Render(context.Background(), sink)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	center := sink.pixels[[2]int{20, 20}]
	if center.X <= 0 || center.Y <= 0 || center.Z <= 0 {
		t.Errorf("Expected lit center pixel, got %v", center)
	}

	corner := sink.pixels[[2]int{0, 0}]
	if !corner.IsZero() {
		t.Errorf("Expected black corner pixel, got %v", corner)
	}

	if stats.TotalPixels != 40*40 {
		t.Errorf("Expected %d pixels, got %d", 40*40, stats.TotalPixels)
	}
	if stats.PrimaryHits == 0 || stats.PrimaryHits >= stats.TotalPixels {
		t.Errorf("Expected some but not all camera rays to hit, got %d", stats.PrimaryHits)
	}
}

func TestRender_EveryPixelExactlyOnce(t *testing.T) {
	sink := newRecordingSink()
	config := testConfig(17, 9)
	config.NumWorkers = 4

	_, err := NewRaytracer(sphereOnFloor(), testCamera(), config, &testLogger{}).Render(context.Background(), sink)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !sink.begun || !sink.presented {
		t.Fatal("Expected Begin and Present to be called")
	}
	if sink.width != 17 || sink.height != 9 {
		t.Errorf("Expected 17x9, got %dx%d", sink.width, sink.height)
	}
	if len(sink.counts) != 17*9 {
		t.Errorf("Expected %d distinct pixels, got %d", 17*9, len(sink.counts))
	}
	for key, n := range sink.counts {
		if n != 1 {
			t.Errorf("Pixel %v delivered %d times", key, n)
		}
		c := sink.pixels[key]
		if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 || c.Z < 0 || c.Z > 1 {
			t.Errorf("Pixel %v out of range: %v", key, c)
		}
	}
}

func TestRender_WorkerCountDoesNotChangeImage(t *testing.T) {
	s := sphereOnFloor()

	render := func(workers int) *ImageSink {
		config := testConfig(32, 24)
		config.NumWorkers = workers
		sink := NewImageSink()
		if _, err := NewRaytracer(s, testCamera(), config, &testLogger{}).Render(context.Background(), sink); err != nil {
			t.Fatalf("Render with %d workers failed: %v", workers, err)
		}
		return sink
	}

	single := render(1)
	parallel := render(8)
	for i := range single.Image.Pix {
		if single.Image.Pix[i] != parallel.Image.Pix[i] {
			t.Fatalf("Images differ at byte %d", i)
		}
	}
}

func TestRender_CancelledContextLeavesSinkUntouched(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := newRecordingSink()
	_, err := NewRaytracer(sphereOnFloor(), testCamera(), testConfig(20, 20), &testLogger{}).Render(ctx, sink)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if sink.begun || len(sink.counts) > 0 || sink.presented {
		t.Error("Sink should receive nothing from a cancelled render")
	}
}

func TestRender_InvalidConfig(t *testing.T) {
	config := testConfig(0, 10)
	_, err := NewRaytracer(sphereOnFloor(), testCamera(), config, &testLogger{}).Render(context.Background(), newRecordingSink())
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}

	_, err = NewRaytracer(nil, testCamera(), testConfig(4, 4), &testLogger{}).Render(context.Background(), nil)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for nil scene, got %v", err)
	}
}

func TestCastRay_ZeroBouncesIsDirectLighting(t *testing.T) {
	b := scene.NewBuilder()
	mirror := material.NewMirror(core.NewVec3(0.9, 0.9, 0.9), 0.8)
	b.AddSphere(core.NewVec3(0, 0, 0), 1, mirror)
	b.AddPlane(core.NewVec3(0, 0, 1), -3, material.NewMatte(core.NewVec3(1, 0, 0)))
	light := core.NewVec3(0.5, 0.7, 1)
	b.AddLight(core.NewVec3(2, 3, 4), light)
	s := b.Build()

	rt := NewRaytracer(s, testCamera(), testConfig(10, 10), &testLogger{})
	ray := core.NewRay(core.NewVec3(0.3, 0.2, 10), core.NewVec3(0, 0, -1))

	hit, ok := rt.Intersect(ray)
	if !ok {
		t.Fatal("Expected the ray to hit the sphere")
	}
	toViewer := ray.Direction.Negate()
	toLight := s.Lights[0].DirectionFrom(hit.Point)
	expected := mirror.EvaluateLight(hit.Normal, toViewer, toLight, light).MultiplyVec(mirror.Color)

	got := rt.CastRay(ray, 0)
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected direct lighting %v, got %v", expected, got)
	}
}

func TestCastRay_SumsAllLights(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	build := func(lightPositions ...core.Vec3) *Raytracer {
		b := scene.NewBuilder()
		b.AddPlane(core.NewVec3(0, 0, 1), 0, material.NewMatte(white))
		for _, p := range lightPositions {
			b.AddLight(p, white)
		}
		return NewRaytracer(b.Build(), testCamera(), testConfig(4, 4), &testLogger{})
	}

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	a := build(core.NewVec3(0, 0, 3)).CastRay(ray, 0)
	c := build(core.NewVec3(3, 0, 3)).CastRay(ray, 0)
	both := build(core.NewVec3(0, 0, 3), core.NewVec3(3, 0, 3)).CastRay(ray, 0)

	if both.Subtract(a.Add(c)).Length() > 1e-9 {
		t.Errorf("Expected %v + %v, got %v", a, c, both)
	}
}

func TestCastRay_FirstMeshWinsTies(t *testing.T) {
	red := material.NewMatte(core.NewVec3(1, 0, 0))
	blue := material.NewMatte(core.NewVec3(0, 0, 1))

	build := func(first, second material.Material) *Raytracer {
		b := scene.NewBuilder()
		b.AddSphere(core.NewVec3(0, 0, 0), 1, first)
		b.AddSphere(core.NewVec3(0, 0, 0), 1, second)
		b.AddLight(core.NewVec3(0, 0, 5), core.NewVec3(1, 1, 1))
		return NewRaytracer(b.Build(), testCamera(), testConfig(4, 4), &testLogger{})
	}

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	got := build(red, blue).CastRay(ray, 0)
	if got.X <= 0 || got.Z != 0 {
		t.Errorf("Expected red from the first mesh, got %v", got)
	}

	got = build(blue, red).CastRay(ray, 0)
	if got.Z <= 0 || got.X != 0 {
		t.Errorf("Expected blue from the first mesh, got %v", got)
	}

	for i := 0; i < 10; i++ {
		index, _ := build(red, blue).hitWorld(ray)
		if index != 0 {
			t.Fatalf("Expected mesh 0, got %d", index)
		}
	}
}

func TestCastRay_FacingMirrorsBoundedByBounces(t *testing.T) {
	b := scene.NewBuilder()
	mirror := material.NewMaterial(0.5, 0, 0, 1, core.NewVec3(1, 1, 1))
	b.AddPlane(core.NewVec3(0, 0, 1), -5, mirror)  // z = -5, facing +z
	b.AddPlane(core.NewVec3(0, 0, -1), -5, mirror) // z = +5, facing -z
	b.AddLight(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	rt := NewRaytracer(b.Build(), testCamera(), testConfig(4, 4), &testLogger{})

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	tests := []int{0, 1, 7, MaxBouncesLimit}
	for _, bounces := range tests {
		var stats RenderStats
		color := rt.castRay(ray, bounces, 0, &stats)

		if !color.IsFinite() {
			t.Errorf("bounces=%d: expected finite color, got %v", bounces, color)
		}
		if stats.RaysCast != bounces+1 {
			t.Errorf("bounces=%d: expected %d rays, got %d", bounces, bounces+1, stats.RaysCast)
		}
		if stats.MaxDepthReached != bounces {
			t.Errorf("bounces=%d: expected depth %d, got %d", bounces, bounces, stats.MaxDepthReached)
		}
	}

	// Every extra bounce adds the same direct term again
	one := rt.CastRay(ray, 0)
	two := rt.CastRay(ray, 1)
	if math.Abs(two.X-2*one.X) > 1e-9 {
		t.Errorf("Expected one bounce to double the light, got %v then %v", one, two)
	}
}

func TestCastRay_Ambient(t *testing.T) {
	b := scene.NewBuilder()
	b.AddSphere(core.NewVec3(0, 0, 0), 1, material.NewMaterial(0.5, 0, 0, 0, core.NewVec3(1, 0.5, 0)))
	b.SetAmbient(core.NewVec3(0.2, 0.2, 0.2))
	s := b.Build()

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	config := testConfig(4, 4)
	if got := NewRaytracer(s, testCamera(), config, &testLogger{}).CastRay(ray, 0); !got.IsZero() {
		t.Errorf("Expected black without ambient, got %v", got)
	}

	config.Ambient = true
	got := NewRaytracer(s, testCamera(), config, &testLogger{}).CastRay(ray, 0)
	expected := core.NewVec3(0.1, 0.05, 0)
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v with ambient, got %v", expected, got)
	}
}

func TestCastRay_MissIsBlack(t *testing.T) {
	rt := NewRaytracer(sphereOnFloor(), testCamera(), testConfig(4, 4), &testLogger{})
	got := rt.CastRay(core.NewRay(core.NewVec3(0, 0, 10), core.NewVec3(0, 1, 0)), 5)
	if !got.IsZero() {
		t.Errorf("Expected black, got %v", got)
	}
}

func TestRender_PackageEntryPoint(t *testing.T) {
	sink := NewImageSink()
	_, err := Render(context.Background(), sphereOnFloor(), testCamera(), testConfig(8, 8), sink)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if sink.Image.Bounds().Dx() != 8 || sink.Image.Bounds().Dy() != 8 {
		t.Errorf("Expected 8x8 image, got %v", sink.Image.Bounds())
	}
}
