package scene

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/require"

	"model-viewer/internal/lighting"
)

type fakeDrawable struct {
	draws    []Transform
	unloaded int
}

func (f *fakeDrawable) Draw(t Transform, _ rl.Color) { f.draws = append(f.draws, t) }
func (f *fakeDrawable) Unload()                      { f.unloaded++ }

func TestReplace_KeepsSingleAttachedNode(t *testing.T) {
	s := New()
	require.Empty(t, s.Attached())

	cube := &Node{Name: "cube"}
	sphere := &Node{Name: "sphere"}

	require.Nil(t, s.Replace(cube))
	require.Equal(t, []*Node{cube}, s.Attached())

	prev := s.Replace(sphere)
	require.Same(t, cube, prev)
	require.Equal(t, []*Node{sphere}, s.Attached())

	require.Same(t, sphere, s.Detach())
	require.Nil(t, s.Current())
	require.Empty(t, s.Attached())
}

func TestNew_DefaultCamera(t *testing.T) {
	s := New()
	require.Equal(t, DefaultCameraPosition, s.Camera.Position)
	require.Equal(t, DefaultCameraTarget, s.Camera.Target)
	require.Equal(t, float32(75), s.Camera.Fovy)
	require.True(t, s.GroundVisible)
	require.Nil(t, s.Lighting)
}

func TestScene_AcceptsLightingRig(t *testing.T) {
	s := New()
	var l Lighting = lighting.New(lighting.Options{Shadows: true})
	s.Lighting = l
	s.Unload()
	require.False(t, s.groundReady)
}

func TestNode_TransformAndRelease(t *testing.T) {
	d := &fakeDrawable{}
	n := &Node{Drawable: d, Rotation: 0.5, Offset: rl.NewVector3(1, 2, 3)}
	n.Draw()
	require.Equal(t, []Transform{{Position: rl.NewVector3(1, 2, 3), RotationY: 0.5, Scale: 1}}, d.draws)

	n.Release()
	require.Zero(t, d.unloaded, "shared drawables stay loaded")

	n.Owned = true
	n.Release()
	n.Release()
	require.Equal(t, 1, d.unloaded)
	require.Nil(t, n.Drawable)
	n.Draw()
}
