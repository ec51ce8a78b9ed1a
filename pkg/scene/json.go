package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/lights"
	"github.com/df07/go-raytracer/pkg/loaders"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// vec3JSON is a vector written as [x, y, z]
type vec3JSON [3]float64

func (v vec3JSON) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// sceneFile is the on-disk JSON scene format
type sceneFile struct {
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	AspectRatio float64                    `json:"aspect_ratio"`
	Render      *renderDef                 `json:"render"`
	Camera      cameraDef                  `json:"camera"`
	Background  *backgroundDef             `json:"background"`
	Materials   map[string]json.RawMessage `json:"materials"`
	Lights      []lightDef                 `json:"lights"`
	Objects     []objectDef                `json:"objects"`
}

type renderDef struct {
	Width           int    `json:"width"`
	SamplesPerPixel int    `json:"samples_per_pixel"`
	MaxDepth        *int   `json:"max_depth"`
	Seed            *int64 `json:"seed"`
}

type cameraDef struct {
	LookFrom  vec3JSON  `json:"lookfrom"`
	LookAt    vec3JSON  `json:"lookat"`
	VUp       *vec3JSON `json:"vup"`
	VFov      float64   `json:"vfov"`
	Aperture  float64   `json:"aperture"`
	FocusDist float64   `json:"focus_dist"`
}

type backgroundDef struct {
	Top    vec3JSON `json:"top"`
	Bottom vec3JSON `json:"bottom"`
}

type lightDef struct {
	Type     string   `json:"type"`
	Position vec3JSON `json:"position"`
	Color    vec3JSON `json:"color"`
	Falloff  bool     `json:"falloff"`
}

type objectDef struct {
	Type     string          `json:"type"`
	Center   vec3JSON        `json:"center"`
	Radius   float64         `json:"radius"`
	Point    vec3JSON        `json:"point"`
	Normal   vec3JSON        `json:"normal"`
	Material json.RawMessage `json:"material"`

	// Mesh objects
	Path      string   `json:"path"`
	Scale     float64  `json:"scale"`
	Rotate    vec3JSON `json:"rotate"` // degrees
	Translate vec3JSON `json:"translate"`
}

type materialDef struct {
	Type              string      `json:"type"`
	Albedo            *vec3JSON   `json:"albedo"`
	Texture           *textureDef `json:"texture"`
	Fuzz              float64     `json:"fuzz"`
	IndexOfRefraction float64     `json:"index_of_refraction"`
}

type textureDef struct {
	Type       string      `json:"type"`
	Color      vec3JSON    `json:"color"`
	Scale      float64     `json:"scale"`
	Even       *textureDef `json:"even"`
	Odd        *textureDef `json:"odd"`
	Path       string      `json:"path"`
	Bottom     vec3JSON    `json:"bottom"`
	Top        vec3JSON    `json:"top"`
	Resolution int         `json:"resolution"`
}

// LoadJSONScene reads a scene file. Image texture and mesh paths are resolved
// relative to the file's directory.
func LoadJSONScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	s, err := ParseJSONScene(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// ParseJSONScene builds a scene from JSON. baseDir anchors relative texture and mesh paths.
func ParseJSONScene(data []byte, baseDir string) (*Scene, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var def sceneFile
	if err := decoder.Decode(&def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}

	b := &sceneBuilder{scene: NewScene(def.Name), baseDir: baseDir}
	if err := b.build(def); err != nil {
		return nil, err
	}

	b.scene.Preprocess()
	return b.scene, nil
}

// sceneBuilder turns parsed definitions into scene content
type sceneBuilder struct {
	scene   *Scene
	baseDir string
}

func (b *sceneBuilder) build(def sceneFile) error {
	s := b.scene
	config := &s.Config

	aspectRatio := def.AspectRatio
	if aspectRatio == 0 {
		aspectRatio = 16.0 / 9.0
	}

	up := core.NewVec3(0, 1, 0)
	if def.Camera.VUp != nil {
		up = def.Camera.VUp.vec()
	}
	config.Camera = renderer.CameraConfig{
		LookFrom:      def.Camera.LookFrom.vec(),
		LookAt:        def.Camera.LookAt.vec(),
		Up:            up,
		VFov:          def.Camera.VFov,
		AspectRatio:   aspectRatio,
		Aperture:      def.Camera.Aperture,
		FocusDistance: def.Camera.FocusDist,
	}

	width := config.Width
	if def.Render != nil {
		if def.Render.Width != 0 {
			width = def.Render.Width
		}
		if def.Render.SamplesPerPixel != 0 {
			config.SamplesPerPixel = def.Render.SamplesPerPixel
		}
		if def.Render.MaxDepth != nil {
			config.MaxDepth = *def.Render.MaxDepth
		}
		if def.Render.Seed != nil {
			config.Seed = *def.Render.Seed
		}
	}
	s.SetWidth(width)

	if def.Background != nil {
		config.BackgroundTop = def.Background.Top.vec()
		config.BackgroundBottom = def.Background.Bottom.vec()
	}

	// Named materials first so objects can refer to them; sorted for stable handles
	names := make([]string, 0, len(def.Materials))
	for name := range def.Materials {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		mat, err := b.parseMaterialDef(def.Materials[name])
		if err != nil {
			return fmt.Errorf("material %q: %w", name, err)
		}
		s.Materials.AddNamed(name, mat)
	}

	for i, light := range def.Lights {
		if light.Type != "point" {
			return fmt.Errorf("%w: light %d: unknown type %q", ErrInvalidScene, i, light.Type)
		}
		s.AddLight(&lights.PointLight{
			Position: light.Position.vec(),
			Color:    light.Color.vec(),
			Falloff:  light.Falloff,
		})
	}

	for i, obj := range def.Objects {
		object, err := b.parseObject(obj)
		if err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
		s.AddObject(object)
	}

	return nil
}

func (b *sceneBuilder) parseObject(obj objectDef) (core.Hittable, error) {
	id, err := b.resolveMaterial(obj.Material)
	if err != nil {
		return nil, err
	}

	switch obj.Type {
	case "sphere":
		return geometry.NewSphere(obj.Center.vec(), obj.Radius, id), nil
	case "plane":
		normal := obj.Normal.vec()
		if normal.NearZero() {
			return nil, fmt.Errorf("%w: plane normal must not be zero", ErrInvalidScene)
		}
		return geometry.NewPlane(obj.Point.vec(), normal, id), nil
	case "mesh":
		return b.parseMesh(obj, id)
	default:
		return nil, fmt.Errorf("%w: unknown object type %q", ErrInvalidScene, obj.Type)
	}
}

// parseMesh loads a PLY file and places it with scale, rotation and translation
func (b *sceneBuilder) parseMesh(obj objectDef, id core.MaterialID) (core.Hittable, error) {
	if obj.Path == "" {
		return nil, fmt.Errorf("%w: mesh needs a path", ErrInvalidScene)
	}
	if obj.Scale < 0 {
		return nil, fmt.Errorf("%w: mesh scale must not be negative", ErrInvalidScene)
	}

	data, err := loaders.LoadPLY(b.resolvePath(obj.Path))
	if err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}

	rotation := obj.Rotate.vec().Multiply(math.Pi / 180)
	mesh, err := geometry.NewTriangleMesh(data.Vertices, data.Faces, id, &geometry.TriangleMeshOptions{
		Normals:   data.Normals,
		TexCoords: data.TexCoords,
		Scale:     obj.Scale,
		Rotation:  rotation,
		Translate: obj.Translate.vec(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return mesh, nil
}

// resolvePath anchors relative asset paths at the scene file's directory
func (b *sceneBuilder) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(b.baseDir, path)
}

// resolveMaterial accepts either a material name or an inline definition
func (b *sceneBuilder) resolveMaterial(raw json.RawMessage) (core.MaterialID, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return core.NoMaterial, fmt.Errorf("%w: missing material", ErrInvalidScene)
	}

	if trimmed[0] == '"' {
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return core.NoMaterial, fmt.Errorf("%w: %v", ErrInvalidScene, err)
		}
		id, ok := b.scene.Materials.Lookup(name)
		if !ok {
			return core.NoMaterial, fmt.Errorf("%w: undefined material %q", ErrInvalidScene, name)
		}
		return id, nil
	}

	mat, err := b.parseMaterialDef(trimmed)
	if err != nil {
		return core.NoMaterial, err
	}
	return b.scene.Materials.Add(mat), nil
}

func (b *sceneBuilder) parseMaterialDef(raw json.RawMessage) (material.Material, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()

	var def materialDef
	if err := decoder.Decode(&def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}

	switch def.Type {
	case "lambertian":
		if def.Albedo != nil {
			return material.NewLambertian(def.Albedo.vec()), nil
		}
		if def.Texture == nil {
			return nil, fmt.Errorf("%w: lambertian needs an albedo or a texture", ErrInvalidScene)
		}
		texture, err := b.parseTexture(def.Texture)
		if err != nil {
			return nil, err
		}
		return material.NewTexturedLambertian(texture), nil

	case "metal":
		if def.Albedo != nil {
			return material.NewMetal(def.Albedo.vec(), def.Fuzz), nil
		}
		if def.Texture == nil {
			return nil, fmt.Errorf("%w: metal needs an albedo or a texture", ErrInvalidScene)
		}
		texture, err := b.parseTexture(def.Texture)
		if err != nil {
			return nil, err
		}
		return material.NewTexturedMetal(texture, def.Fuzz), nil

	case "dielectric":
		if def.IndexOfRefraction <= 0 {
			return nil, fmt.Errorf("%w: index of refraction %g must be positive", ErrInvalidScene, def.IndexOfRefraction)
		}
		return material.NewDielectric(def.IndexOfRefraction), nil

	default:
		return nil, fmt.Errorf("%w: unknown material type %q", ErrInvalidScene, def.Type)
	}
}

func (b *sceneBuilder) parseTexture(def *textureDef) (material.ColorSource, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: missing texture", ErrInvalidScene)
	}

	switch def.Type {
	case "solid_color":
		return material.NewSolidColor(def.Color.vec().Clamp(0, 1)), nil

	case "checker":
		even, err := b.parseTexture(def.Even)
		if err != nil {
			return nil, fmt.Errorf("checker even: %w", err)
		}
		odd, err := b.parseTexture(def.Odd)
		if err != nil {
			return nil, fmt.Errorf("checker odd: %w", err)
		}
		return material.NewCheckerTexture(def.Scale, even, odd), nil

	case "image":
		texture, err := loaders.LoadImageTexture(b.resolvePath(def.Path))
		if err != nil {
			return nil, fmt.Errorf("image texture: %w", err)
		}
		return texture, nil

	case "gradient":
		return material.NewGradientTexture(def.Resolution, def.Bottom.vec(), def.Top.vec()), nil

	case "uv_debug":
		return material.NewUVDebugTexture(def.Resolution), nil

	default:
		return nil, fmt.Errorf("%w: unknown texture type %q", ErrInvalidScene, def.Type)
	}
}
