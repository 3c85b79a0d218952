package geometry

import "github.com/chewxy/math32"

// Teapot outline in its modelling frame: Y up, spout toward +X, sitting on y=0, 3.15 tall.
// Body, lid and knob are revolved profiles (radius, height); spout and handle are tubes
// swept along center lines in the XY plane.
var (
	teapotBody = [][4]vec2{
		{{1.4, 2.4}, {1.3375, 2.53125}, {1.4375, 2.53125}, {1.5, 2.4}},
		{{1.5, 2.4}, {1.75, 1.875}, {2.0, 1.35}, {2.0, 0.9}},
		{{2.0, 0.9}, {2.0, 0.45}, {1.5, 0.225}, {1.5, 0.15}},
		{{1.5, 0.15}, {1.5, 0.075}, {1.0, 0}, {0, 0}},
	}
	teapotLid = [][4]vec2{
		{{0, 3.15}, {0.8, 3.15}, {0, 2.85}, {0.2, 2.7}},
		{{0.2, 2.7}, {0.4, 2.55}, {1.3, 2.55}, {1.3, 2.4}},
		{{1.3, 2.4}, {1.33, 2.4}, {1.37, 2.4}, {1.4, 2.4}},
	}
	teapotSpout = [][4]vec2{
		{{1.7, 1.275}, {2.6, 1.275}, {2.3, 1.95}, {2.7, 2.25}},
		{{2.7, 2.25}, {2.8, 2.325}, {3.0, 2.4}, {3.2, 2.4}},
	}
	teapotHandle = [][4]vec2{
		{{-1.6, 1.875}, {-2.3, 1.875}, {-2.7, 1.875}, {-2.7, 1.65}},
		{{-2.7, 1.65}, {-2.7, 1.425}, {-2.5, 0.975}, {-2.0, 0.75}},
	}
)

const (
	teapotHeight       = 3.15
	handleThickness    = 0.12
	handleWidth        = 0.3
	spoutBaseRadius    = 0.55
	spoutNeckRadius    = 0.2
	spoutTipRadius     = 0.25
	minTeapotSegments  = 2
	teapotAroundFactor = 4
)

// Teapot returns a closed-looking teapot centered on the origin, in Blinn's proportions.
// size is half the height: the outline is scaled by size/(3.15/2), so the body is about
// 2.5*size across. segments is the number of subdivisions per curve; around the axis
// there are 4*segments.
func Teapot(size float32, segments int) *Mesh {
	if segments < minTeapotSegments {
		segments = minTeapotSegments
	}
	around := segments * teapotAroundFactor

	m := &Mesh{}
	m.Append(lathe(sampleProfile(teapotBody, segments), around))
	m.Append(lathe(sampleProfile(teapotLid, segments), around))
	m.Append(tube(teapotSpout, segments, around, func(t float32) (float32, float32) {
		r := spoutTaper(t)
		return r, r
	}))
	m.Append(tube(teapotHandle, segments, around, func(float32) (float32, float32) {
		return handleThickness, handleWidth
	}))
	m.ComputeNormals()
	scale := size / (teapotHeight / 2)
	m.Transform(scale, [3]float32{0, -size, 0})
	return m
}

// spoutTaper narrows the spout from its base to the neck over the first half of the
// center line, then flares slightly toward the tip.
func spoutTaper(t float32) float32 {
	if t < 0.5 {
		return lerp(spoutBaseRadius, spoutNeckRadius, t*2)
	}
	return lerp(spoutNeckRadius, spoutTipRadius, (t-0.5)*2)
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

func bezier(c [4]vec2, t float32) vec2 {
	u := 1 - t
	b0, b1, b2, b3 := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return vec2{
		b0*c[0][0] + b1*c[1][0] + b2*c[2][0] + b3*c[3][0],
		b0*c[0][1] + b1*c[1][1] + b2*c[2][1] + b3*c[3][1],
	}
}

func bezierTangent(c [4]vec2, t float32) vec2 {
	u := 1 - t
	d0, d1, d2 := 3*u*u, 6*u*t, 3*t*t
	return vec2{
		d0*(c[1][0]-c[0][0]) + d1*(c[2][0]-c[1][0]) + d2*(c[3][0]-c[2][0]),
		d0*(c[1][1]-c[0][1]) + d1*(c[2][1]-c[1][1]) + d2*(c[3][1]-c[2][1]),
	}
}

// sampleProfile evaluates consecutive curves at steps+1 points each, dropping the shared joints.
func sampleProfile(curves [][4]vec2, steps int) []vec2 {
	pts := make([]vec2, 0, len(curves)*steps+1)
	for ci, c := range curves {
		start := 0
		if ci > 0 {
			start = 1
		}
		for s := start; s <= steps; s++ {
			pts = append(pts, bezier(c, float32(s)/float32(steps)))
		}
	}
	return pts
}

// lathe revolves profile (radius, height) around +Y. Rows follow the profile, columns wrap
// around the axis without a duplicated seam so normals stay smooth.
func lathe(profile []vec2, around int) *Mesh {
	m := &Mesh{}
	for i, p := range profile {
		v := float32(i) / float32(len(profile)-1)
		for j := 0; j < around; j++ {
			theta := 2 * math32.Pi * float32(j) / float32(around)
			m.Positions = append(m.Positions, p[0]*math32.Cos(theta), p[1], p[0]*math32.Sin(theta))
			m.TexCoords = append(m.TexCoords, float32(j)/float32(around), v)
		}
	}
	m.Indices = gridIndices(len(profile), around)
	return m
}

// tube sweeps an elliptical cross-section along planar curves in XY. radii(t) returns the
// half-axes in the curve plane and along Z for t in [0, 1] over the whole center line.
func tube(curves [][4]vec2, steps, around int, radii func(t float32) (float32, float32)) *Mesh {
	m := &Mesh{}
	rows := len(curves)*steps + 1
	row := 0
	for ci, c := range curves {
		start := 0
		if ci > 0 {
			start = 1
		}
		for s := start; s <= steps; s++ {
			t := float32(s) / float32(steps)
			p := bezier(c, t)
			d := bezierTangent(c, t)
			tangent := normalize(vec3{d[0], d[1], 0})
			normal := normalize(cross(tangent, vec3{0, 0, 1}))
			binormal := cross(tangent, normal)
			a, b := radii(float32(row) / float32(rows-1))
			center := vec3{p[0], p[1], 0}
			for j := 0; j < around; j++ {
				phi := 2 * math32.Pi * float32(j) / float32(around)
				off := add(scale(normal, a*math32.Cos(phi)), scale(binormal, b*math32.Sin(phi)))
				q := add(center, off)
				m.Positions = append(m.Positions, q[0], q[1], q[2])
				m.TexCoords = append(m.TexCoords, float32(j)/float32(around), float32(row)/float32(rows-1))
			}
			row++
		}
	}
	m.Indices = gridIndices(rows, around)
	return m
}

// gridIndices triangulates a rows x cols vertex grid whose columns wrap.
func gridIndices(rows, cols int) []uint32 {
	idx := make([]uint32, 0, (rows-1)*cols*6)
	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols; j++ {
			jn := (j + 1) % cols
			a := uint32(i*cols + j)
			b := uint32((i+1)*cols + j)
			c := uint32(i*cols + jn)
			d := uint32((i+1)*cols + jn)
			idx = append(idx, a, c, b, c, d, b)
		}
	}
	return idx
}
