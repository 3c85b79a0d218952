package primitives

import (
	"os"
	"strings"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/require"

	"model-viewer/internal/lighting"
)

func TestRegistry_NodesShareDrawable(t *testing.T) {
	r, err := NewRegistry(t.TempDir(), lighting.New(lighting.Options{Shadows: true}), nil)
	require.NoError(t, err)

	a := r.Primitive(Torus)
	b := r.Primitive(Torus)
	require.NotSame(t, a, b)
	require.Equal(t, "torus", a.Kind)
	require.False(t, a.Loaded)
	require.False(t, a.Owned)
	require.Equal(t, float32(1), a.Scale)
	require.Equal(t, rl.White, a.Tint)

	p := r.Placeholder()
	require.Equal(t, string(Placeholder), p.Kind)
	require.NotNil(t, p.Drawable)
}

func TestWriteTeapot(t *testing.T) {
	dir := t.TempDir()
	defs, err := Catalog()
	require.NoError(t, err)

	path, err := writeTeapot(dir, defs[Teapot])
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(path, "teapot-1.2-10.obj"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "o teapot\n"))
	require.Contains(t, string(data), "\nf ")
}
