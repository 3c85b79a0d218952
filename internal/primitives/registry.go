package primitives

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"model-viewer/internal/geometry"
	"model-viewer/internal/lighting"
	"model-viewer/internal/scene"
)

// fallbackSphereResolution is used for the teapot stand-in when its OBJ cannot be written.
const fallbackSphereResolution = 16

var upAxis = rl.NewVector3(0, 1, 0)

// Registry builds scene nodes for primitives. Models are created on first Draw so that GPU
// resources are allocated after the window/OpenGL context exists, then cached per kind.
type Registry struct {
	defs     map[Kind]PrimitiveDef
	cacheDir string
	log      *slog.Logger
	models   map[Kind]rl.Model
	lights   *lighting.Rig
}

// NewRegistry loads the built-in catalog. cacheDir receives generated mesh files (teapot OBJ).
// Models are shaded by lights, which the caller owns and unloads.
func NewRegistry(cacheDir string, lights *lighting.Rig, log *slog.Logger) (*Registry, error) {
	defs, err := Catalog()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		defs:     defs,
		cacheDir: cacheDir,
		log:      log,
		models:   make(map[Kind]rl.Model),
		lights:   lights,
	}, nil
}

// Primitive returns a new node showing kind. The drawable is shared with every other node of
// the same kind, so releasing the node keeps the cached model.
func (r *Registry) Primitive(kind Kind) *scene.Node {
	return &scene.Node{
		Name:     string(kind),
		Kind:     string(kind),
		Scale:    1,
		Tint:     rl.White,
		Drawable: &primitive{r: r, kind: kind},
	}
}

// Placeholder returns the red cube shown when an asset fails to load.
func (r *Registry) Placeholder() *scene.Node {
	return r.Primitive(Placeholder)
}

// Unload frees every cached model.
func (r *Registry) Unload() {
	for k, m := range r.models {
		rl.UnloadModel(m)
		delete(r.models, k)
	}
}

type primitive struct {
	r    *Registry
	kind Kind
}

func (p *primitive) Draw(t scene.Transform, tint rl.Color) { p.r.draw(p.kind, t, tint) }

// Unload is a no-op: the model stays cached in the registry.
func (p *primitive) Unload() {}

func (r *Registry) draw(kind Kind, t scene.Transform, tint rl.Color) {
	model, ok := r.ensure(kind)
	if !ok {
		return
	}
	if r.lights != nil {
		r.lights.SetSurface(r.defs[kind].surface())
	}
	rl.DrawModelEx(model, t.Position, upAxis, t.RotationY*rl.Rad2deg, rl.NewVector3(t.Scale, t.Scale, t.Scale), tint)
}

// ensure returns the cached model for kind, building it on first use.
func (r *Registry) ensure(kind Kind) (rl.Model, bool) {
	if m, ok := r.models[kind]; ok {
		return m, true
	}
	def, ok := r.defs[kind]
	if !ok {
		return rl.Model{}, false
	}
	var model rl.Model
	switch kind {
	case Cube, Placeholder:
		model = rl.LoadModelFromMesh(rl.GenMeshCube(def.Size[0], def.Size[1], def.Size[2]))
	case Sphere:
		model = rl.LoadModelFromMesh(rl.GenMeshSphere(def.Radius, def.Rings, def.Slices))
	case Torus:
		// raylib's torus has major radius size/2 and tube radius radius*size/2.
		model = rl.LoadModelFromMesh(rl.GenMeshTorus(def.Tube/def.Radius, 2*def.Radius, def.Slices, def.Rings))
	case Teapot:
		model = r.loadTeapot(def)
	default:
		return rl.Model{}, false
	}
	if !rl.IsModelValid(model) {
		r.log.Warn("primitive model invalid", "kind", kind)
		return rl.Model{}, false
	}
	r.applyMaterial(&model, def)
	r.models[kind] = model
	return model, true
}

// loadTeapot tessellates the teapot, writes it as OBJ under cacheDir and loads it back.
func (r *Registry) loadTeapot(def PrimitiveDef) rl.Model {
	path, err := writeTeapot(r.cacheDir, def)
	if err != nil {
		r.log.Warn("teapot mesh unavailable, drawing a sphere", "err", err)
		return rl.LoadModelFromMesh(rl.GenMeshSphere(def.Radius, fallbackSphereResolution, fallbackSphereResolution))
	}
	return rl.LoadModel(path)
}

func writeTeapot(dir string, def PrimitiveDef) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("primitives: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("teapot-%g-%d.obj", def.Radius, def.Segments))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("primitives: %w", err)
	}
	werr := geometry.WriteOBJ(f, "teapot", geometry.Teapot(def.Radius, def.Segments))
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return "", fmt.Errorf("primitives: %w", werr)
	}
	return path, nil
}

// applyMaterial gives every material of model the definition's color and the lit shader.
func (r *Registry) applyMaterial(model *rl.Model, def PrimitiveDef) {
	rgba, _ := def.RGBA()
	color := rl.NewColor(rgba[0], rgba[1], rgba[2], rgba[3])
	if r.lights != nil {
		r.lights.Light(model)
	}
	mats := model.GetMaterials()
	for i := range mats {
		if albedo := mats[i].GetMap(rl.MapAlbedo); albedo != nil {
			albedo.Color = color
		}
	}
}
