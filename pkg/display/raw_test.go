package display

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// discardLogger implements core.Logger by dropping all output
type discardLogger struct{}

func (discardLogger) Printf(format string, args ...interface{}) {}

func TestRawSink_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	sink := NewRawSink(&buf)

	colors := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0.5, 0.25),
		core.NewVec3(0.125, 0.75, 1),
		core.NewVec3(0.5, 0.5, 0.5),
		core.NewVec3(1, 1, 1),
		core.NewVec3(0, 0.0625, 0),
	}

	if err := sink.Begin(3, 2); err != nil {
		t.Fatal(err)
	}
	for i, c := range colors {
		sink.SetPixel(i/3, i%3, c)
	}
	if err := sink.Present(); err != nil {
		t.Fatalf("Present failed: %v", err)
	}

	fb, err := ReadRaw(&buf)
	if err != nil {
		t.Fatalf("ReadRaw failed: %v", err)
	}
	if fb.Width != 3 || fb.Height != 2 {
		t.Fatalf("Expected 3x2, got %dx%d", fb.Width, fb.Height)
	}
	for i, want := range colors {
		if fb.Pixels[i] != want {
			t.Errorf("Pixel %d: expected %v, got %v", i, want, fb.Pixels[i])
		}
	}
}

func TestReadRaw_BadHeader(t *testing.T) {
	compress := func(data []byte) *bytes.Buffer {
		var buf bytes.Buffer
		enc, err := zstd.NewWriter(&buf)
		if err != nil {
			t.Fatal(err)
		}
		enc.Write(data)
		enc.Close()
		return &buf
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"wrong magic", []byte("PNG!\x01\x00\x00\x00\x01\x00\x00\x00")},
		{"zero width", append(rawMagic[:], 0, 0, 0, 0, 1, 0, 0, 0)},
		{"truncated", rawMagic[:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRaw(compress(tt.data))
			if !errors.Is(err, ErrBadRawHeader) {
				t.Errorf("Expected ErrBadRawHeader, got %v", err)
			}
		})
	}
}

func TestRawFileSink_FullRender(t *testing.T) {
	b := scene.NewBuilder()
	b.AddSphere(core.NewVec3(0, 0, 0), 1, material.NewMatte(core.NewVec3(1, 1, 1)))
	b.AddLight(core.NewVec3(0, 5, 5), core.NewVec3(1, 1, 1))
	s := b.Build()

	config := renderer.DefaultConfig()
	config.Width, config.Height = 16, 12

	path := filepath.Join(t.TempDir(), "out", "render.rgbf.zst")
	image := renderer.NewImageSink()
	sink := renderer.NewMultiSink(image, NewRawFileSink(path))

	camera := geometry.NewCamera(core.NewVec3(0, 0, 10), 45, 15)
	rt := renderer.NewRaytracer(s, camera, config, discardLogger{})
	if _, err := rt.Render(context.Background(), sink); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	fb, err := ReadRawFile(path)
	if err != nil {
		t.Fatalf("ReadRawFile failed: %v", err)
	}
	if fb.Width != 16 || fb.Height != 12 {
		t.Fatalf("Expected 16x12, got %dx%d", fb.Width, fb.Height)
	}
	for row := 0; row < fb.Height; row++ {
		for col := 0; col < fb.Width; col++ {
			got := renderer.ToRGBA(fb.At(row, col))
			want := image.Image.RGBAAt(col, row)
			if absDiff(got.R, want.R) > 1 || absDiff(got.G, want.G) > 1 || absDiff(got.B, want.B) > 1 {
				t.Fatalf("Raw and image sinks disagree at (%d,%d): %v vs %v", row, col, got, want)
			}
		}
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
