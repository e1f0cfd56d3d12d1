package core

import (
	"math"
	"testing"
)

func TestVec3_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		incident Vec3
		normal   Vec3
		expected Vec3
	}{
		{
			name:     "45 degree bounce off floor",
			incident: NewVec3(1, -1, 0),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(1, 1, 0),
		},
		{
			name:     "head-on reverses direction",
			incident: NewVec3(0, 0, -1),
			normal:   NewVec3(0, 0, 1),
			expected: NewVec3(0, 0, 1),
		},
		{
			name:     "grazing ray is unchanged",
			incident: NewVec3(1, 0, 0),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(1, 0, 0),
		},
		{
			name:     "incident on the normal side still mirrors",
			incident: NewVec3(1, 1, 0),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(1, -1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.incident.Reflect(tt.normal)

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_ReflectPreservesAngle(t *testing.T) {
	normal := NewVec3(0, 1, 1).Normalize()
	incident := NewVec3(0.3, -0.8, 0.1).Normalize()

	reflected := incident.Reflect(normal)

	if math.Abs(reflected.Length()-1) > 1e-9 {
		t.Errorf("Expected unit reflection, got length %f", reflected.Length())
	}
	if math.Abs(reflected.Dot(normal)+incident.Dot(normal)) > 1e-9 {
		t.Errorf("Angle of incidence %f does not match angle of reflection %f",
			-incident.Dot(normal), reflected.Dot(normal))
	}
}

func TestVec3_NormalizeZeroVector(t *testing.T) {
	result := Vec3{}.Normalize()
	if !result.IsZero() {
		t.Errorf("Expected zero vector, got %v", result)
	}
	if !result.IsFinite() {
		t.Errorf("Normalizing zero produced non-finite components: %v", result)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 12)
	n := v.Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", n.Length())
	}
	if n.Subtract(NewVec3(3.0/13, 4.0/13, 12.0/13)).Length() > 1e-12 {
		t.Errorf("Unexpected direction %v", n)
	}
}

func TestVec3_Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	z := NewVec3(0, 0, 1)

	if got := x.Cross(y); got != z {
		t.Errorf("x × y: expected %v, got %v", z, got)
	}
	if got := x.Cross(z); got != y.Negate() {
		t.Errorf("x × z: expected %v, got %v", y.Negate(), got)
	}
	if got := x.Cross(x); !got.IsZero() {
		t.Errorf("x × x: expected zero, got %v", got)
	}
}

func TestVec3_Clamp(t *testing.T) {
	v := NewVec3(-0.5, 0.25, 3)
	got := v.Clamp(0, 1)
	if got != NewVec3(0, 0.25, 1) {
		t.Errorf("Expected (0, 0.25, 1), got %v", got)
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN component reported as finite")
	}
	if NewVec3(0, math.Inf(-1), 0).IsFinite() {
		t.Error("Inf component reported as finite")
	}
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Finite vector reported as non-finite")
	}
}

func TestRay_NewRayNormalizes(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -15))
	if ray.Direction != NewVec3(0, 0, -1) {
		t.Errorf("Expected unit direction, got %v", ray.Direction)
	}
	if got := ray.At(2); got != NewVec3(1, 2, 1) {
		t.Errorf("Expected point (1,2,1), got %v", got)
	}
}

func TestRay_ZeroDirection(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), Vec3{})
	if !ray.Direction.IsZero() {
		t.Errorf("Expected zero direction to stay zero, got %v", ray.Direction)
	}
	if got := ray.At(5); got != ray.Origin {
		t.Errorf("Expected At to stay at origin, got %v", got)
	}
}
