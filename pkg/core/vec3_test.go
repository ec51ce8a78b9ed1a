package core

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func vecNear(a, b Vec3, tol float64) bool {
	return a.Subtract(b).Length() <= tol
}

func TestVec3_BasicOperations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(5, -3, 9)},
		{"subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"multiply vec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"lerp", NewVec3(0, 0, 0).Lerp(NewVec3(2, 4, 6), 0.5), NewVec3(1, 2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !vecNear(tt.got, tt.expected, tolerance) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if got := a.Dot(b); got != 12 {
		t.Errorf("Expected dot 12, got %f", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := NewVec3(3, 0, 4).Normalize()
	if math.Abs(n.Length()-1) > tolerance {
		t.Errorf("Expected unit length, got %f", n.Length())
	}
	if !vecNear(n, NewVec3(0.6, 0, 0.8), tolerance) {
		t.Errorf("Expected (0.6, 0, 0.8), got %v", n)
	}

	// Zero vector has no direction and stays zero rather than becoming NaN
	zero := NewVec3(0, 0, 0).Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Expected zero vector, got %v", zero)
	}
	if !zero.IsFinite() {
		t.Error("Normalized zero vector must be finite")
	}
}

func TestVec3_NearZeroAndFinite(t *testing.T) {
	if !NewVec3(1e-9, -1e-9, 0).NearZero() {
		t.Error("Expected tiny vector to be near zero")
	}
	if NewVec3(1e-3, 0, 0).NearZero() {
		t.Error("Expected 1e-3 component to not be near zero")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN component must not be finite")
	}
	if NewVec3(0, math.Inf(1), 0).IsFinite() {
		t.Error("Inf component must not be finite")
	}
}

func TestVec3_ClampAndGamma(t *testing.T) {
	c := NewVec3(-0.5, 0.25, 2).Clamp(0, 1)
	if c != NewVec3(0, 0.25, 1) {
		t.Errorf("Unexpected clamp result %v", c)
	}

	g := NewVec3(0.25, 1, 0).GammaCorrect(2.0)
	if !vecNear(g, NewVec3(0.5, 1, 0), tolerance) {
		t.Errorf("Expected sqrt gamma, got %v", g)
	}

	// Negative input must not produce NaN
	if !NewVec3(-1, 0, 0).GammaCorrect(2.0).IsFinite() {
		t.Error("Gamma of negative component produced non-finite value")
	}
}

func TestReflect(t *testing.T) {
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)
	r := Reflect(v, n)
	if !vecNear(r, NewVec3(1, 1, 0), tolerance) {
		t.Errorf("Expected (1, 1, 0), got %v", r)
	}
}

func TestRefract_IdentityWhenIndicesMatch(t *testing.T) {
	n := NewVec3(0, 1, 0)
	directions := []Vec3{
		NewVec3(0, -1, 0),
		NewVec3(1, -1, 0).Normalize(),
		NewVec3(0.3, -0.9, 0.2).Normalize(),
		NewVec3(-0.7, -0.1, 0.7).Normalize(),
	}

	for _, v := range directions {
		r, ok := Refract(v, n, 1.0)
		if !ok {
			t.Fatalf("Refraction with ratio 1 must always succeed for %v", v)
		}
		if !vecNear(r, v, 1e-9) {
			t.Errorf("Expected refract(v, n, 1) = %v, got %v", v, r)
		}
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	n := NewVec3(0, 1, 0)
	v := NewVec3(1, -1, 0).Normalize() // 45 degrees incidence
	eta := 1.0 / 1.5

	r, ok := Refract(v, n, eta)
	if !ok {
		t.Fatal("Expected refraction from air into glass")
	}
	if math.Abs(r.Length()-1) > 1e-9 {
		t.Errorf("Refracted unit vector should stay unit length, got %f", r.Length())
	}

	sinIn := math.Sin(math.Pi / 4)
	sinOut := math.Abs(r.X)
	if math.Abs(sinIn*eta-sinOut) > 1e-9 {
		t.Errorf("Snell's law violated: sin(in)*eta=%f, sin(out)=%f", sinIn*eta, sinOut)
	}
	if r.Y >= 0 {
		t.Errorf("Refracted ray should continue through the surface, got %v", r)
	}
}

func TestRefract_TotalInternalReflection(t *testing.T) {
	n := NewVec3(0, 1, 0)
	v := NewVec3(1, -0.1, 0).Normalize() // grazing, from glass into air

	if _, ok := Refract(v, n, 1.5); ok {
		t.Error("Expected total internal reflection to prevent refraction")
	}
}

func TestReflectance(t *testing.T) {
	// Normal incidence on glass: ((1-1.5)/(1+1.5))^2 = 0.04
	if r := Reflectance(1.0, 1.5); math.Abs(r-0.04) > 1e-12 {
		t.Errorf("Expected 0.04 at normal incidence, got %f", r)
	}
	// Grazing incidence is fully reflective
	if r := Reflectance(0.0, 1.5); math.Abs(r-1.0) > 1e-12 {
		t.Errorf("Expected 1.0 at grazing incidence, got %f", r)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, -2))
	if p := ray.At(1.5); p != NewVec3(1, 1, -2) {
		t.Errorf("Expected (1, 1, -2), got %v", p)
	}
}
