package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Transform places a drawable: uniform scale, then rotation about +Y, then translation.
type Transform struct {
	Position  rl.Vector3
	RotationY float32 // radians
	Scale     float32
}

// Drawable is something the GPU can render with a transform and a tint.
type Drawable interface {
	Draw(t Transform, tint rl.Color)
	Unload()
}

// Node is one displayable object.
type Node struct {
	Name string
	Kind string
	// Loaded marks assets loaded from a file. They keep the pose chosen by normalization
	// and are never auto-rotated.
	Loaded   bool
	Rotation float32
	Scale    float32
	Offset   rl.Vector3
	Tint     rl.Color
	Drawable Drawable
	// Owned drawables are released with the node; shared ones (cached primitives) are not.
	Owned bool
}

// Transform returns the node's placement for drawing.
func (n *Node) Transform() Transform {
	s := n.Scale
	if s == 0 {
		s = 1
	}
	return Transform{Position: n.Offset, RotationY: n.Rotation, Scale: s}
}

// Draw draws the node. Nodes without a drawable draw nothing.
func (n *Node) Draw() {
	if n.Drawable == nil {
		return
	}
	n.Drawable.Draw(n.Transform(), n.Tint)
}

// Release frees an owned drawable. It is safe to call more than once.
func (n *Node) Release() {
	if n == nil || !n.Owned || n.Drawable == nil {
		return
	}
	n.Drawable.Unload()
	n.Drawable = nil
}
