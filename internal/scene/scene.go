package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"model-viewer/internal/lighting"
)

const (
	groundSize      = 20
	groundY         = -2
	gridStep        = 1
	gridMajorStep   = 5
	gridMinorAlpha  = 40
	gridMajorAlpha  = 90
	defaultFovy     = 75
	groundLineInset = 0.001
)

var (
	// BackgroundColor is the clear color behind the scene (#1a1a2e).
	BackgroundColor = rl.NewColor(0x1a, 0x1a, 0x2e, 255)
	groundColor     = rl.NewColor(0x2a, 0x2a, 0x3e, 255)
)

// DefaultCameraPosition and DefaultCameraTarget are the pose restored by a camera reset.
var (
	DefaultCameraPosition = rl.NewVector3(0, 0, 5)
	DefaultCameraTarget   = rl.NewVector3(0, 0, 0)
)

// Lighting shades the 3D pass. The current node is drawn once into ShadowPass, then the ground
// and the node are drawn between BeginLit and EndLit.
type Lighting interface {
	ShadowPass(draw func())
	BeginLit(viewPos rl.Vector3)
	EndLit()
	Light(model *rl.Model)
	SetSurface(sf lighting.Surface)
}

// Scene holds the camera, the ground and the single displayed node.
// At most one node is attached at a time; Replace detaches the previous one.
type Scene struct {
	Camera        rl.Camera3D
	GroundVisible bool
	// Lighting is optional; without it everything is drawn unlit and the ground is a flat plane.
	Lighting Lighting
	current  *Node

	ground      rl.Model
	groundReady bool
}

// New returns a scene with a 75° perspective camera at (0,0,5) looking at the origin
// and the ground plane visible. Nothing is attached yet.
func New() *Scene {
	s := &Scene{GroundVisible: true}
	s.Camera.Position = DefaultCameraPosition
	s.Camera.Target = DefaultCameraTarget
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = defaultFovy
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// Current returns the attached node, or nil.
func (s *Scene) Current() *Node {
	return s.current
}

// Replace attaches n (which may be nil) and returns the node it displaced.
func (s *Scene) Replace(n *Node) (prev *Node) {
	prev = s.current
	s.current = n
	return prev
}

// Detach removes the attached node and returns it.
func (s *Scene) Detach() *Node {
	return s.Replace(nil)
}

// Attached returns the nodes currently in the scene graph: none or one.
func (s *Scene) Attached() []*Node {
	if s.current == nil {
		return nil
	}
	return []*Node{s.current}
}

// Draw renders the ground and the current node. Call between BeginDrawing and EndDrawing,
// after ClearBackground and before any 2D overlay. With Lighting set the node casts a
// shadow onto itself and the ground.
func (s *Scene) Draw() {
	if s.Lighting != nil && s.current != nil {
		s.Lighting.ShadowPass(s.current.Draw)
	}
	rl.BeginMode3D(s.Camera)
	if s.Lighting != nil {
		s.Lighting.BeginLit(s.Camera.Position)
	}
	if s.GroundVisible {
		s.drawGround()
	}
	if s.current != nil {
		s.current.Draw()
	}
	if s.Lighting != nil {
		s.Lighting.EndLit()
	}
	rl.EndMode3D()
}

// Unload frees the ground model. The attached node is left to its owner.
func (s *Scene) Unload() {
	if s.groundReady {
		rl.UnloadModel(s.ground)
		s.groundReady = false
	}
}

// drawGround draws the 20×20 floor at y=-2 with a faint grid on top of it.
func (s *Scene) drawGround() {
	if s.Lighting == nil {
		rl.DrawPlane(rl.NewVector3(0, groundY, 0), rl.NewVector2(groundSize, groundSize), groundColor)
	} else {
		if !s.groundReady {
			s.ground = rl.LoadModelFromMesh(rl.GenMeshPlane(groundSize, groundSize, 1, 1))
			if albedo := s.ground.GetMaterials()[0].GetMap(rl.MapAlbedo); albedo != nil {
				albedo.Color = groundColor
			}
			s.Lighting.Light(&s.ground)
			s.groundReady = true
		}
		s.Lighting.SetSurface(lighting.Matte)
		rl.DrawModel(s.ground, rl.NewVector3(0, groundY, 0), 1, rl.White)
	}

	minor := rl.NewColor(255, 255, 255, gridMinorAlpha)
	major := rl.NewColor(255, 255, 255, gridMajorAlpha)
	const half = groundSize / 2
	y := float32(groundY + groundLineInset)
	var start, end rl.Vector3
	for i := -half; i <= half; i += gridStep {
		c := minor
		if i%gridMajorStep == 0 {
			c = major
		}
		start.X, start.Y, start.Z = float32(i), y, -half
		end.X, end.Y, end.Z = float32(i), y, half
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = -half, y, float32(i)
		end.X, end.Y, end.Z = half, y, float32(i)
		rl.DrawLine3D(start, end, c)
	}
}
