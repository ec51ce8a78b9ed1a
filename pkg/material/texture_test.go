package material

import (
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestCheckerTexture_Parity(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)
	checker := NewCheckerTexture(2, NewSolidColor(white), NewSolidColor(black))

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		{"origin cell", core.NewVec3(0.5, 0.5, 0.5), white},
		{"step in x", core.NewVec3(2.5, 0.5, 0.5), black},
		{"step in x and z", core.NewVec3(2.5, 0.5, 2.5), white},
		{"negative cell", core.NewVec3(-0.5, 0.5, 0.5), black},
		{"two negative cells", core.NewVec3(-0.5, -0.5, 0.5), white},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.Evaluate(core.Vec2{}, tt.point)
			if got != tt.expected {
				t.Errorf("Expected %v at %v, got %v", tt.expected, tt.point, got)
			}
		})
	}
}

func TestNewCheckerTexture_DefaultScale(t *testing.T) {
	checker := NewCheckerTexture(-3, NewSolidColor(core.Vec3{}), NewSolidColor(core.Vec3{}))
	if checker.Scale != 1 {
		t.Errorf("Expected scale 1, got %f", checker.Scale)
	}
}

func TestImageTexture_Evaluate(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	green := core.NewVec3(0, 1, 0)
	blue := core.NewVec3(0, 0, 1)
	white := core.NewVec3(1, 1, 1)

	// 2x2 image: top row red/green, bottom row blue/white
	texture := NewImageTexture(2, 2, []core.Vec3{red, green, blue, white})

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"bottom left", core.NewVec2(0.25, 0.25), blue},
		{"bottom right", core.NewVec2(0.75, 0.25), white},
		{"top left", core.NewVec2(0.25, 0.75), red},
		{"top right", core.NewVec2(0.75, 0.75), green},
		{"u=1 stays in range", core.NewVec2(0.999999, 0.75), green},
		{"wraps above 1", core.NewVec2(1.25, 1.75), red},
		{"wraps below 0", core.NewVec2(-0.25, -0.75), white},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texture.Evaluate(tt.uv, core.Vec3{})
			if got != tt.expected {
				t.Errorf("Expected %v at uv %v, got %v", tt.expected, tt.uv, got)
			}
		})
	}
}

func TestImageTexture_Invalid(t *testing.T) {
	texture := NewImageTexture(2, 2, []core.Vec3{{}})
	got := texture.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{})
	if got != core.NewVec3(0, 1, 1) {
		t.Errorf("Expected cyan for an invalid texture, got %v", got)
	}
}

func TestArena(t *testing.T) {
	arena := NewArena()
	red := NewLambertian(core.NewVec3(1, 0, 0))
	mirror := NewMetal(core.NewVec3(1, 1, 1), 0)

	redID := arena.Add(red)
	mirrorID := arena.AddNamed("mirror", mirror)

	if redID == mirrorID {
		t.Fatal("Distinct materials must get distinct handles")
	}
	if arena.Len() != 2 {
		t.Errorf("Expected 2 materials, got %d", arena.Len())
	}

	if m, ok := arena.Get(redID); !ok || m != Material(red) {
		t.Errorf("Get(%d) returned %v, %v", redID, m, ok)
	}
	if id, ok := arena.Lookup("mirror"); !ok || id != mirrorID {
		t.Errorf("Lookup(mirror) returned %d, %v", id, ok)
	}
	if _, ok := arena.Lookup("missing"); ok {
		t.Error("Lookup of an unknown name should fail")
	}

	for _, id := range []core.MaterialID{core.NoMaterial, 2, 100} {
		if _, ok := arena.Get(id); ok {
			t.Errorf("Get(%d) should fail", id)
		}
	}
}
