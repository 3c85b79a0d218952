// Package geometry builds indexed triangle meshes on the CPU and writes them as Wavefront OBJ,
// which raylib loads into GPU models. Nothing here touches the GL context.
package geometry

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chewxy/math32"
)

// Mesh is an indexed triangle list. Positions and Normals hold xyz triples, TexCoords uv pairs.
// Triangles are counter-clockwise when seen from outside.
type Mesh struct {
	Positions []float32
	Normals   []float32
	TexCoords []float32
	Indices   []uint32
}

func (m *Mesh) VertexCount() int   { return len(m.Positions) / 3 }
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Append adds o's vertices and triangles to m.
func (m *Mesh) Append(o *Mesh) {
	base := uint32(m.VertexCount())
	m.Positions = append(m.Positions, o.Positions...)
	m.Normals = append(m.Normals, o.Normals...)
	m.TexCoords = append(m.TexCoords, o.TexCoords...)
	for _, i := range o.Indices {
		m.Indices = append(m.Indices, base+i)
	}
}

// Bounds returns the axis-aligned extent of the positions.
func (m *Mesh) Bounds() (lo, hi [3]float32) {
	if m.VertexCount() == 0 {
		return lo, hi
	}
	for k := 0; k < 3; k++ {
		lo[k], hi[k] = m.Positions[k], m.Positions[k]
	}
	for i := 3; i < len(m.Positions); i += 3 {
		for k := 0; k < 3; k++ {
			v := m.Positions[i+k]
			lo[k] = math32.Min(lo[k], v)
			hi[k] = math32.Max(hi[k], v)
		}
	}
	return lo, hi
}

// Transform scales positions uniformly, then translates them by offset.
func (m *Mesh) Transform(scale float32, offset [3]float32) {
	for i := 0; i < len(m.Positions); i += 3 {
		for k := 0; k < 3; k++ {
			m.Positions[i+k] = m.Positions[i+k]*scale + offset[k]
		}
	}
}

// ComputeNormals sets smooth per-vertex normals from area-weighted face normals.
// Vertices touched only by degenerate triangles get +Y.
func (m *Mesh) ComputeNormals() {
	n := make([]float32, len(m.Positions))
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		pa, pb, pc := m.vertex(a), m.vertex(b), m.vertex(c)
		face := cross(sub(pb, pa), sub(pc, pa))
		for _, idx := range [3]uint32{a, b, c} {
			for k := 0; k < 3; k++ {
				n[int(idx)*3+k] += face[k]
			}
		}
	}
	for i := 0; i < len(n); i += 3 {
		v := normalize(vec3{n[i], n[i+1], n[i+2]})
		if v == (vec3{}) {
			v = vec3{0, 1, 0}
		}
		n[i], n[i+1], n[i+2] = v[0], v[1], v[2]
	}
	m.Normals = n
}

func (m *Mesh) vertex(i uint32) vec3 {
	j := int(i) * 3
	return vec3{m.Positions[j], m.Positions[j+1], m.Positions[j+2]}
}

// WriteOBJ writes m as a Wavefront OBJ with positions, texture coordinates and normals.
func WriteOBJ(w io.Writer, name string, m *Mesh) error {
	if len(m.Normals) != len(m.Positions) || len(m.TexCoords)/2 != m.VertexCount() {
		return fmt.Errorf("geometry: mesh %q has mismatched attribute lengths", name)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "o %s\n", name)
	for i := 0; i < len(m.Positions); i += 3 {
		fmt.Fprintf(bw, "v %g %g %g\n", m.Positions[i], m.Positions[i+1], m.Positions[i+2])
	}
	for i := 0; i < len(m.TexCoords); i += 2 {
		fmt.Fprintf(bw, "vt %g %g\n", m.TexCoords[i], m.TexCoords[i+1])
	}
	for i := 0; i < len(m.Normals); i += 3 {
		fmt.Fprintf(bw, "vn %g %g %g\n", m.Normals[i], m.Normals[i+1], m.Normals[i+2])
	}
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := m.Indices[t]+1, m.Indices[t+1]+1, m.Indices[t+2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	return bw.Flush()
}

type vec2 [2]float32
type vec3 [3]float32

func sub(a, b vec3) vec3 { return vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func add(a, b vec3) vec3 { return vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func scale(a vec3, s float32) vec3 {
	return vec3{a[0] * s, a[1] * s, a[2] * s}
}

func cross(a, b vec3) vec3 {
	return vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func length(a vec3) float32 { return math32.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2]) }

func normalize(a vec3) vec3 {
	l := length(a)
	if l < 1e-12 {
		return vec3{}
	}
	return scale(a, 1/l)
}
