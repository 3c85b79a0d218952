package orbit

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/require"
)

func newCamera() *rl.Camera3D {
	return &rl.Camera3D{
		Position:   rl.NewVector3(0, 0, 5),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       75,
		Projection: rl.CameraPerspective,
	}
}

func defaultOptions() Options {
	return Options{Damping: 0.05, MinDistance: 2, MaxDistance: 20}
}

func requireVecNear(t *testing.T, want, got rl.Vector3, delta float64) {
	t.Helper()
	require.InDelta(t, want.X, got.X, delta)
	require.InDelta(t, want.Y, got.Y, delta)
	require.InDelta(t, want.Z, got.Z, delta)
}

func TestUpdate_IdleKeepsPose(t *testing.T) {
	cam := newCamera()
	c := New(cam, defaultOptions())
	c.Update()
	requireVecNear(t, rl.NewVector3(0, 0, 5), cam.Position, 1e-5)
	require.False(t, c.Moving())
}

func TestReset_RestoresDefaultAfterInteraction(t *testing.T) {
	cam := newCamera()
	c := New(cam, defaultOptions())

	for i := 0; i < 30; i++ {
		c.Apply(Input{Rotate: rl.NewVector2(40, -15), Pan: rl.NewVector2(5, 3), Wheel: 2}, 720)
		c.Update()
	}
	require.Greater(t, rl.Vector3Distance(cam.Position, rl.NewVector3(0, 0, 5)), float32(0.1))
	require.NotEqual(t, rl.Vector3{}, cam.Target)

	c.Reset()
	requireVecNear(t, rl.NewVector3(0, 0, 5), cam.Position, 1e-5)
	requireVecNear(t, rl.Vector3{}, cam.Target, 1e-6)
	require.False(t, c.Moving())

	c.Update()
	requireVecNear(t, rl.NewVector3(0, 0, 5), cam.Position, 1e-5)
}

func TestDamping_EasesOut(t *testing.T) {
	cam := newCamera()
	c := New(cam, defaultOptions())
	c.Apply(Input{Rotate: rl.NewVector2(100, 0)}, 720)

	c.Update()
	first := cam.Position
	require.True(t, c.Moving())

	for i := 0; i < 1000 && c.Moving(); i++ {
		c.Update()
	}
	require.False(t, c.Moving())
	require.InDelta(t, 5, rl.Vector3Length(cam.Position), 1e-3)
	// The first step moves only a damping fraction of the total turn.
	require.Less(t, rl.Vector3Distance(rl.NewVector3(0, 0, 5), first), rl.Vector3Distance(rl.NewVector3(0, 0, 5), cam.Position))
}

func TestUpdate_ClampsDistance(t *testing.T) {
	cam := newCamera()
	c := New(cam, Options{MinDistance: 2, MaxDistance: 20})

	c.Apply(Input{Wheel: 200}, 720)
	c.Update()
	require.InDelta(t, 2, rl.Vector3Length(cam.Position), 1e-4)

	c.Apply(Input{Wheel: -500}, 720)
	c.Update()
	require.InDelta(t, 20, rl.Vector3Length(cam.Position), 1e-3)
}

func TestUpdate_KeepsAwayFromPoles(t *testing.T) {
	cam := newCamera()
	c := New(cam, Options{MinDistance: 2, MaxDistance: 20})
	c.Apply(Input{Rotate: rl.NewVector2(0, 5000)}, 720)
	c.Update()
	require.Greater(t, cam.Position.Y, float32(4.99), "stops at the pole instead of flipping over")
	require.Greater(t, rl.Vector3Length(rl.NewVector3(cam.Position.X, 0, cam.Position.Z)), float32(0))
}

func TestSetPose(t *testing.T) {
	cam := newCamera()
	c := New(cam, defaultOptions())
	c.Apply(Input{Rotate: rl.NewVector2(50, 50)}, 720)

	c.SetPose(rl.NewVector3(0, 2, 8), rl.Vector3{})
	require.False(t, c.Moving())
	requireVecNear(t, rl.NewVector3(0, 2, 8), cam.Position, 1e-4)

	c.Reset()
	requireVecNear(t, rl.NewVector3(0, 0, 5), cam.Position, 1e-5)
}

func TestApply_IgnoresEmptyViewport(t *testing.T) {
	cam := newCamera()
	c := New(cam, defaultOptions())
	c.Apply(Input{Rotate: rl.NewVector2(10, 10)}, 0)
	require.False(t, c.Moving())
}
