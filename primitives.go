package kitchen3d

import "github.com/chewxy/math32"

// PyramidMesh returns a unit-base pyramid of height 1 standing on y = 0.
func PyramidMesh() *Mesh {
	apex := V3(0, 1, 0)
	fl := V3(-0.5, 0, 0.5)
	fr := V3(0.5, 0, 0.5)
	br := V3(0.5, 0, -0.5)
	bl := V3(-0.5, 0, -0.5)

	b := NewMeshBuilder()
	side := func(p1, p2 Vector3, n Vector3) {
		b.AddPolygon([]Vector3{p1, p2, apex}, []Vector3{n, n, n})
	}
	side(fl, fr, V3(0, 0.5, 0.8))
	side(fr, br, V3(0.8, 0.5, 0))
	side(br, bl, V3(0, 0.5, -0.8))
	side(bl, fl, V3(-0.8, 0.5, 0))

	down := V3(0, -1, 0)
	b.AddPolygon([]Vector3{fl, fr, br}, []Vector3{down, down, down})
	b.AddPolygon([]Vector3{fl, br, bl}, []Vector3{down, down, down})
	return b.Build()
}

// CubeMesh returns a unit cube centred on the origin with hard edges.
func CubeMesh() *Mesh {
	h := float32(0.5)
	faces := []struct {
		n       Vector3
		corners [4]Vector3
	}{
		{V3(0, 0, 1), [4]Vector3{V3(-h, -h, h), V3(h, -h, h), V3(h, h, h), V3(-h, h, h)}},
		{V3(0, 0, -1), [4]Vector3{V3(h, -h, -h), V3(-h, -h, -h), V3(-h, h, -h), V3(h, h, -h)}},
		{V3(1, 0, 0), [4]Vector3{V3(h, -h, h), V3(h, -h, -h), V3(h, h, -h), V3(h, h, h)}},
		{V3(-1, 0, 0), [4]Vector3{V3(-h, -h, -h), V3(-h, -h, h), V3(-h, h, h), V3(-h, h, -h)}},
		{V3(0, 1, 0), [4]Vector3{V3(-h, h, h), V3(h, h, h), V3(h, h, -h), V3(-h, h, -h)}},
		{V3(0, -1, 0), [4]Vector3{V3(-h, -h, -h), V3(h, -h, -h), V3(h, -h, h), V3(-h, -h, h)}},
	}

	b := NewMeshBuilder()
	for _, f := range faces {
		b.AddPolygon(f.corners[:], []Vector3{f.n, f.n, f.n, f.n})
	}
	return b.Build()
}

// SphereMesh returns a UV sphere of radius 0.5 centred on the origin with
// smooth normals.
func SphereMesh(slices, stacks int) *Mesh {
	if slices < 3 {
		slices = 3
	}
	if stacks < 2 {
		stacks = 2
	}

	point := func(stack, slice int) Vector3 {
		phi := math32.Pi * float32(stack) / float32(stacks)
		theta := 2 * math32.Pi * float32(slice) / float32(slices)
		return V3(
			math32.Sin(phi)*math32.Cos(theta),
			math32.Cos(phi),
			math32.Sin(phi)*math32.Sin(theta),
		)
	}

	b := NewMeshBuilder()
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			n00 := point(i, j)
			n01 := point(i, j+1)
			n10 := point(i+1, j)
			n11 := point(i+1, j+1)

			// the poles collapse one edge of the quad into a point
			switch {
			case i == 0:
				b.AddPolygon(scaleAll(0.5, n00, n11, n10), []Vector3{n00, n11, n10})
			case i == stacks-1:
				b.AddPolygon(scaleAll(0.5, n00, n01, n10), []Vector3{n00, n01, n10})
			default:
				b.AddPolygon(scaleAll(0.5, n00, n01, n11, n10), []Vector3{n00, n01, n11, n10})
			}
		}
	}
	return b.Build()
}

func scaleAll(s float32, vs ...Vector3) []Vector3 {
	out := make([]Vector3, len(vs))
	for i, v := range vs {
		out[i] = v.MulScalar(s)
	}
	return out
}
