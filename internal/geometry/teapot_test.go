package geometry

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/require"
)

func TestTeapot_Topology(t *testing.T) {
	const segs = 10
	m := Teapot(1.2, segs)

	around := segs * 4
	rows := (4*segs + 1) + (3*segs + 1) + 2*(2*segs+1)
	require.Equal(t, around*rows, m.VertexCount())
	require.Len(t, m.Normals, len(m.Positions))
	require.Len(t, m.TexCoords, 2*m.VertexCount())
	require.Zero(t, len(m.Indices)%3)

	for _, i := range m.Indices {
		require.Less(t, int(i), m.VertexCount())
	}
	for i := 0; i < len(m.Normals); i += 3 {
		l := length(vec3{m.Normals[i], m.Normals[i+1], m.Normals[i+2]})
		require.InDelta(t, 1, l, 1e-4)
	}
}

func TestTeapot_CenteredAndScaled(t *testing.T) {
	const size = 1.2
	m := Teapot(size, 8)
	s := float32(size) / 1.575
	lo, hi := m.Bounds()

	require.InDelta(t, -size, lo[1], 1e-4)
	require.InDelta(t, size, hi[1], 1e-4)
	require.Greater(t, hi[0], 3.0*s, "spout reaches past the body")
	require.Less(t, lo[0], -2.5*s, "handle reaches past the body")
	require.InDelta(t, 2*s, hi[2], 1e-3)
	require.InDelta(t, -2*s, lo[2], 1e-3)
}

func TestTeapot_ComparableToOtherPrimitives(t *testing.T) {
	lo, hi := Teapot(1.2, 10).Bounds()
	// The sphere is 3 across and the torus 2.8; the body alone spans about 3 units.
	require.InDelta(t, 2.4, hi[1]-lo[1], 1e-3)
	require.InDelta(t, 3.05, hi[2]-lo[2], 0.01)
	require.Greater(t, hi[0]-lo[0], float32(4))
}

func TestTeapot_OutwardNormals(t *testing.T) {
	m := Teapot(3, 8)
	best := 0
	for i := 0; i < m.VertexCount(); i++ {
		if m.Positions[i*3+2] > m.Positions[best*3+2] {
			best = i
		}
	}
	require.Greater(t, m.Normals[best*3+2], float32(0.5))
}

func TestTeapot_ClampsSegments(t *testing.T) {
	m := Teapot(1, 0)
	require.Equal(t, Teapot(1, minTeapotSegments).VertexCount(), m.VertexCount())
}

func TestLathe_DiskNormalsFaceUp(t *testing.T) {
	m := lathe([]vec2{{0, 1}, {1, 1}}, 16)
	m.ComputeNormals()
	for i := 0; i < len(m.Normals); i += 3 {
		require.InDelta(t, 1, m.Normals[i+1], 1e-5)
	}
}

func TestWriteOBJ(t *testing.T) {
	m := lathe([]vec2{{0, 1}, {1, 1}, {1, 0}}, 4)
	m.ComputeNormals()
	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, "cup", m))

	counts := map[string]int{}
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		counts[strings.Fields(sc.Text())[0]]++
	}
	require.Equal(t, 1, counts["o"])
	require.Equal(t, 12, counts["v"])
	require.Equal(t, 12, counts["vt"])
	require.Equal(t, 12, counts["vn"])
	require.Equal(t, m.TriangleCount(), counts["f"])
}

func TestWriteOBJ_RejectsMismatchedAttributes(t *testing.T) {
	m := &Mesh{Positions: []float32{0, 0, 0}}
	require.Error(t, WriteOBJ(&bytes.Buffer{}, "bad", m))
}

func TestBezierEndpoints(t *testing.T) {
	c := teapotBody[1]
	require.Equal(t, c[0], bezier(c, 0))
	end := bezier(c, 1)
	require.InDelta(t, c[3][0], end[0], 1e-6)
	require.InDelta(t, c[3][1], end[1], 1e-6)
	d := bezierTangent(c, 0)
	require.InDelta(t, 3*(c[1][0]-c[0][0]), d[0], 1e-6)
	require.False(t, math32.IsNaN(d[1]))
}
