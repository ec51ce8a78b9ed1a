package material

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestDielectric_NormalIncidenceRefractsStraightThrough(t *testing.T) {
	glass := NewDielectric(1.5)

	// Reflectance at normal incidence is 0.04; a sample of 0.5 always refracts
	sampler := fixedSampler{v1: 0.5}
	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}

	scatter, ok := glass.Scatter(rayIn, hit, sampler)
	if !ok {
		t.Fatal("Dielectric should always scatter")
	}
	expected := core.NewVec3(0, 0, -1)
	if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected straight-through direction %v, got %v", expected, scatter.Scattered.Direction)
	}
	if scatter.Attenuation != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected white attenuation, got %v", scatter.Attenuation)
	}
	if !scatter.Specular {
		t.Error("Dielectric scattering should be specular")
	}
}

func TestDielectric_FresnelReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// A sample below the reflectance picks reflection
	sampler := fixedSampler{v1: 0.0}
	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := core.HitRecord{Normal: core.NewVec3(0, 0, 1), FrontFace: true}

	scatter, _ := glass.Scatter(rayIn, hit, sampler)
	expected := core.NewVec3(0, 0, 1)
	if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected reflected direction %v, got %v", expected, scatter.Scattered.Direction)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Inside the glass at 60 degrees: sin = 0.866, 1.5 * 0.866 > 1
	angle := 60.0 * math.Pi / 180.0
	dir := core.NewVec3(math.Sin(angle), -math.Cos(angle), 0)
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), dir)
	hit := core.HitRecord{
		Normal:    core.NewVec3(0, 1, 0), // already flipped against the ray
		FrontFace: false,
	}

	// Even the largest sample must not refract
	sampler := fixedSampler{v1: 0.999999}
	for i := 0; i < 10; i++ {
		scatter, ok := glass.Scatter(rayIn, hit, sampler)
		if !ok {
			t.Fatal("Dielectric should always scatter")
		}
		expected := core.Reflect(dir, hit.Normal)
		if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-9 {
			t.Fatalf("Expected total internal reflection %v, got %v", expected, scatter.Scattered.Direction)
		}
	}
}

func TestDielectric_OutgoingDirectionIsUnit(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewSeededSampler(9)
	hit := core.HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	for i := 0; i < 200; i++ {
		dir := core.NewVec3(sampler.Get1D()*2-1, -0.1-sampler.Get1D(), sampler.Get1D()*2-1)
		scatter, _ := glass.Scatter(core.NewRay(core.NewVec3(0, 1, 0), dir), hit, sampler)
		if math.Abs(scatter.Scattered.Direction.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit direction, got length %f", scatter.Scattered.Direction.Length())
		}
	}
}

func TestNewDielectric_NonPositiveIndex(t *testing.T) {
	if d := NewDielectric(0); d.RefractiveIndex != 1 {
		t.Errorf("Expected fallback index 1, got %f", d.RefractiveIndex)
	}
}
