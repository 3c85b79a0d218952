package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, css string, nodes ...*Node) *Engine {
	t.Helper()
	sheet, err := ParseCSS(css)
	require.NoError(t, err)
	e := New()
	e.SetStylesheet(sheet)
	e.SetNodes(nodes)
	return e
}

func TestLayout_PixelAndPercent(t *testing.T) {
	fixed := NewNode("panel", "fixed", "", "")
	centered := NewNode("label", "", "banner", "")
	e := newTestEngine(t, `
.fixed { left: 10px; top: 20px; width: 100px; height: 30px; }
#banner { left: 50%; top: 50%; width: 200px; height: 40px; }
`, fixed, centered)

	e.Layout(800, 600)
	require.Equal(t, rl.NewRectangle(10, 20, 100, 30), fixed.Bounds)
	require.Equal(t, rl.NewRectangle(300, 280, 200, 40), centered.Bounds)

	e.Layout(1000, 400)
	require.Equal(t, rl.NewRectangle(400, 180, 200, 40), centered.Bounds, "re-centered after resize")
}

func TestStyle_FollowsClassChanges(t *testing.T) {
	btn := NewNode("button", "btn", "cubeBtn", "Cube")
	e := newTestEngine(t, `.btn { width: 100px; } .btn.active { width: 120px; }`, btn)
	require.Equal(t, int32(100), e.Style(btn).Width)

	btn.Class = "btn active"
	require.Equal(t, int32(120), e.Style(btn).Width)

	btn.Class = "btn"
	e.Layout(800, 600)
	require.Equal(t, float32(100), btn.Bounds.Width)
}

func TestHitTest(t *testing.T) {
	back := NewNode("panel", "box", "back", "")
	front := NewNode("panel", "box", "front", "")
	anon := NewNode("panel", "box", "", "")
	e := newTestEngine(t, `.box { left: 0; top: 0; width: 50px; height: 50px; }`, back, front, anon)
	e.Layout(800, 600)

	require.Same(t, front, e.HitTest(rl.NewVector2(10, 10)), "topmost node with an id wins")
	front.Hidden = true
	require.Same(t, back, e.HitTest(rl.NewVector2(10, 10)))
	require.Nil(t, e.HitTest(rl.NewVector2(60, 10)))
}
