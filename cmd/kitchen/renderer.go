package main

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/smasonuk/kitchen3d"
)

const (
	ambientLight = 0.25
	// nearW rejects geometry at or behind the camera plane.
	nearW = 0.01
)

var (
	lightDir       = kitchen3d.V3(0.577, 0.577, 0.577)
	selectionColor = color.RGBA{R: 255, G: 210, B: 60, A: 255}
)

type meshData struct {
	vertices []float32
	indices  []uint32
	lines    bool
}

// projectedTriangle is a triangle in screen space with its view depth.
type projectedTriangle struct {
	xs, ys   [3]float32
	depth    float32
	color    [3]float32
	selected bool
}

type projectedLine struct {
	x0, y0, x1, y1 float32
	color          color.RGBA
}

// softRenderer projects meshes on the CPU and paints them back to front.
// Draw only records work; Flush paints the frame.
type softRenderer struct {
	meshes map[kitchen3d.MeshHandle]*meshData
	next   kitchen3d.MeshHandle

	viewProj kitchen3d.Matrix4
	width    float32
	height   float32

	triangles []projectedTriangle
	lines     []projectedLine
	batch     triangleBatch
}

func newSoftRenderer() *softRenderer {
	return &softRenderer{meshes: make(map[kitchen3d.MeshHandle]*meshData)}
}

func (r *softRenderer) Upload(obj *kitchen3d.SceneObject) (kitchen3d.MeshHandle, error) {
	if len(obj.Indices) == 0 {
		return 0, fmt.Errorf("%s has an empty mesh", obj.Name)
	}
	r.next++
	r.meshes[r.next] = &meshData{
		vertices: obj.Vertices,
		indices:  obj.Indices,
		lines:    obj.Lines,
	}
	return r.next, nil
}

func (r *softRenderer) Release(h kitchen3d.MeshHandle) {
	delete(r.meshes, h)
}

// Begin starts a frame seen through cam on a viewport of the given size.
func (r *softRenderer) Begin(cam *kitchen3d.OrbitCamera, vp kitchen3d.Viewport) {
	r.viewProj = cam.ViewProjection(vp.Aspect())
	r.width = float32(vp.Width)
	r.height = float32(vp.Height)
	r.triangles = r.triangles[:0]
	r.lines = r.lines[:0]
}

func (r *softRenderer) Draw(h kitchen3d.MeshHandle, model kitchen3d.Matrix4, clr kitchen3d.Vector3, selected bool) {
	m, ok := r.meshes[h]
	if !ok {
		return
	}
	if m.lines {
		r.drawLines(m, model, clr)
		return
	}

	mvp := r.viewProj.Mul(model)
	for i := 0; i+2 < len(m.indices); i += 3 {
		var world [3]kitchen3d.Vector3
		var tri projectedTriangle
		visible := true
		for c := 0; c < 3; c++ {
			p := position(m.vertices, m.indices[i+c])
			world[c] = model.MulPoint(p)
			clip := kitchen3d.V4(p.X, p.Y, p.Z, 1).MulMatrix(mvp)
			if clip.W <= nearW {
				visible = false
				break
			}
			tri.xs[c], tri.ys[c] = r.toScreen(clip)
			tri.depth += clip.W
		}
		if !visible {
			continue
		}

		n := kitchen3d.FaceNormal(world[0], world[1], world[2])
		intensity := ambientLight + (1-ambientLight)*abs(n.Dot(lightDir))
		tri.color = [3]float32{clr.X * intensity, clr.Y * intensity, clr.Z * intensity}
		tri.depth /= 3
		tri.selected = selected
		r.triangles = append(r.triangles, tri)
	}
}

func (r *softRenderer) drawLines(m *meshData, model kitchen3d.Matrix4, clr kitchen3d.Vector3) {
	mvp := r.viewProj.Mul(model)
	lineColor := toRGBA(clr.X, clr.Y, clr.Z)
	for i := 0; i+1 < len(m.indices); i += 2 {
		a := position(m.vertices, m.indices[i])
		b := position(m.vertices, m.indices[i+1])
		ca := kitchen3d.V4(a.X, a.Y, a.Z, 1).MulMatrix(mvp)
		cb := kitchen3d.V4(b.X, b.Y, b.Z, 1).MulMatrix(mvp)

		ca, cb, ok := clipSegment(ca, cb)
		if !ok {
			continue
		}
		x0, y0 := r.toScreen(ca)
		x1, y1 := r.toScreen(cb)
		r.lines = append(r.lines, projectedLine{x0, y0, x1, y1, lineColor})
	}
}

// clipSegment trims a clip-space segment to the part in front of nearW.
func clipSegment(a, b kitchen3d.Vector4) (kitchen3d.Vector4, kitchen3d.Vector4, bool) {
	if a.W <= nearW && b.W <= nearW {
		return a, b, false
	}
	if a.W > nearW && b.W > nearW {
		return a, b, true
	}
	if a.W <= nearW {
		a, b = b, a
	}
	t := (a.W - nearW) / (a.W - b.W)
	b = kitchen3d.V4(
		a.X+(b.X-a.X)*t,
		a.Y+(b.Y-a.Y)*t,
		a.Z+(b.Z-a.Z)*t,
		nearW,
	)
	return a, b, true
}

func (r *softRenderer) toScreen(clip kitchen3d.Vector4) (float32, float32) {
	ndc := clip.DivideByW()
	return (ndc.X + 1) / 2 * r.width, (1 - ndc.Y) / 2 * r.height
}

// Flush paints the recorded frame: grid lines first, then triangles from
// farthest to nearest, then outlines of the selected object.
func (r *softRenderer) Flush(screen *ebiten.Image) {
	for _, l := range r.lines {
		drawLine(screen, l.x0, l.y0, l.x1, l.y1, l.color)
	}

	sort.SliceStable(r.triangles, func(i, j int) bool {
		return r.triangles[i].depth > r.triangles[j].depth
	})
	for _, t := range r.triangles {
		r.batch.add(t.xs, t.ys, t.color)
		if r.batch.full() {
			r.batch.flush(screen)
		}
	}
	r.batch.flush(screen)

	for _, t := range r.triangles {
		if t.selected {
			drawPolygonOutline(screen, t.xs[:], t.ys[:], 1, selectionColor)
		}
	}
}

func position(vertices []float32, index uint32) kitchen3d.Vector3 {
	o := int(index) * kitchen3d.VertexStride
	return kitchen3d.V3(vertices[o], vertices[o+1], vertices[o+2])
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
