package assets

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Fit is the uniform scale and translation that normalizes a model: scale first, then offset.
type Fit struct {
	Scale  float32
	Offset rl.Vector3
}

// Normalize fits box so its largest dimension becomes target and its center lands on the
// origin. A box with no extent keeps scale 1 and is only centered.
func Normalize(box rl.BoundingBox, target float32) Fit {
	size := rl.Vector3Subtract(box.Max, box.Min)
	center := rl.Vector3Scale(rl.Vector3Add(box.Min, box.Max), 0.5)
	maxDim := math32.Max(size.X, math32.Max(size.Y, size.Z))
	scale := float32(1)
	if maxDim > 0 && !math32.IsInf(maxDim, 0) {
		scale = target / maxDim
	}
	return Fit{Scale: scale, Offset: rl.Vector3Scale(center, -scale)}
}

// Apply returns box after the fit's scale and translation.
func (f Fit) Apply(box rl.BoundingBox) rl.BoundingBox {
	return rl.NewBoundingBox(
		rl.Vector3Add(rl.Vector3Scale(box.Min, f.Scale), f.Offset),
		rl.Vector3Add(rl.Vector3Scale(box.Max, f.Scale), f.Offset),
	)
}
