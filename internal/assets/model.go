package assets

import (
	"fmt"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"model-viewer/internal/lighting"
	"model-viewer/internal/scene"
)

// AssetKind is the scene.Node kind of loaded models.
const AssetKind = "asset"

var upAxis = rl.NewVector3(0, 1, 0)

// ModelBuilder parses resolved files into normalized scene nodes. It calls raylib and must
// run on the thread that owns the window.
type ModelBuilder struct {
	TargetSize float32
	// Lights shades the model like the primitives. Nil leaves raylib's default shader.
	Lights *lighting.Rig
}

// Build loads path, fits it to TargetSize around the origin and returns an owned node.
func (b ModelBuilder) Build(path string) (*scene.Node, error) {
	model := rl.LoadModel(path)
	if !rl.IsModelValid(model) || model.MeshCount == 0 {
		if rl.IsModelValid(model) {
			rl.UnloadModel(model)
		}
		return nil, &LoadError{Message: fmt.Sprintf("could not parse %s", filepath.Base(path))}
	}
	return b.node(filepath.Base(path), model, rl.GetModelBoundingBox(model)), nil
}

// node wraps a parsed model: it gets the lit shader and the fit for box.
func (b ModelBuilder) node(name string, model rl.Model, box rl.BoundingBox) *scene.Node {
	if b.Lights != nil {
		b.Lights.Light(&model)
	}
	fit := Normalize(box, b.TargetSize)
	return &scene.Node{
		Name:     name,
		Kind:     AssetKind,
		Loaded:   true,
		Scale:    fit.Scale,
		Offset:   fit.Offset,
		Tint:     rl.White,
		Drawable: &loadedModel{model: model, lights: b.Lights},
		Owned:    true,
	}
}

type loadedModel struct {
	model  rl.Model
	lights *lighting.Rig
}

func (m *loadedModel) Draw(t scene.Transform, tint rl.Color) {
	if m.lights != nil {
		m.lights.SetSurface(lighting.Matte)
	}
	rl.DrawModelEx(m.model, t.Position, upAxis, t.RotationY*rl.Rad2deg, rl.NewVector3(t.Scale, t.Scale, t.Scale), tint)
}

func (m *loadedModel) Unload() {
	rl.UnloadModel(m.model)
}
