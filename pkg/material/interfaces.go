package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// Material decides how a ray continues after striking a surface.
// Scatter returns false when the ray is absorbed.
type Material interface {
	Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The outgoing ray
	Attenuation core.Vec3 // Color attenuation, each component in [0, 1]
	Specular    bool      // Mirror-like scattering; direct lighting does not apply
}

// Arena owns the immutable materials of a scene. Geometry refers to its
// entries through core.MaterialID handles. An arena must not be modified
// once rendering starts; lookups are then safe from any goroutine.
type Arena struct {
	materials []Material
	names     map[string]core.MaterialID
}

// NewArena creates an empty material arena
func NewArena() *Arena {
	return &Arena{names: make(map[string]core.MaterialID)}
}

// Add stores a material and returns its handle
func (a *Arena) Add(m Material) core.MaterialID {
	a.materials = append(a.materials, m)
	return core.MaterialID(len(a.materials) - 1)
}

// AddNamed stores a material under a name so scene files can share it
func (a *Arena) AddNamed(name string, m Material) core.MaterialID {
	id := a.Add(m)
	a.names[name] = id
	return id
}

// Lookup returns the handle registered under name
func (a *Arena) Lookup(name string) (core.MaterialID, bool) {
	id, ok := a.names[name]
	return id, ok
}

// Get returns the material for a handle
func (a *Arena) Get(id core.MaterialID) (Material, bool) {
	if id < 0 || int(id) >= len(a.materials) {
		return nil, false
	}
	return a.materials[id], true
}

// Len returns the number of stored materials
func (a *Arena) Len() int {
	return len(a.materials)
}
