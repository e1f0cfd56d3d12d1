package renderer

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestFramebuffer_ToneMap(t *testing.T) {
	tests := []struct {
		name     string
		policy   ToneMap
		pixels   []core.Vec3
		expected []core.Vec3
	}{
		{
			name:     "clamp per channel",
			policy:   ToneMapClamp,
			pixels:   []core.Vec3{{X: 2, Y: 0.5, Z: -1}, {X: 0.25, Y: 0.25, Z: 0.25}},
			expected: []core.Vec3{{X: 1, Y: 0.5, Z: 0}, {X: 0.25, Y: 0.25, Z: 0.25}},
		},
		{
			name:     "normalize by brightest magnitude",
			policy:   ToneMapMaxNormalize,
			pixels:   []core.Vec3{{X: 3, Y: 4, Z: 0}, {X: 1, Y: 0, Z: 0}},
			expected: []core.Vec3{{X: 0.6, Y: 0.8, Z: 0}, {X: 0.2, Y: 0, Z: 0}},
		},
		{
			name:     "normalize never brightens a dim image",
			policy:   ToneMapMaxNormalize,
			pixels:   []core.Vec3{{X: 0.5, Y: 0.5, Z: 0}, {X: 0.1, Y: 0, Z: 0}},
			expected: []core.Vec3{{X: 0.5, Y: 0.5, Z: 0}, {X: 0.1, Y: 0, Z: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFramebuffer(len(tt.pixels), 1)
			copy(fb.Pixels, tt.pixels)

			fb.ToneMap(tt.policy)

			for i, want := range tt.expected {
				if fb.Pixels[i].Subtract(want).Length() > 1e-9 {
					t.Errorf("Pixel %d: expected %v, got %v", i, want, fb.Pixels[i])
				}
			}
		})
	}
}

func TestFramebuffer_RowsAreDisjoint(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Row(1)[0] = core.NewVec3(1, 1, 1)

	if !fb.At(0, 0).IsZero() {
		t.Error("Writing row 1 should not touch row 0")
	}
	if fb.At(1, 0) != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected written pixel at (1,0), got %v", fb.At(1, 0))
	}
	if len(fb.Row(0)) != 3 {
		t.Errorf("Expected row length 3, got %d", len(fb.Row(0)))
	}
}
