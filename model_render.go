// model_render.go - Transform and draw models through the rasterizer

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

const (
	FACE_COLOR_BASE   = 16
	FACE_COLOR_RANGE  = 240
	FACE_COLOR_STRIDE = 37
)

// FaceColor picks a palette index for face i outside the fixed 16 colors
func FaceColor(i int) uint8 {
	return uint8(FACE_COLOR_BASE + (i*FACE_COLOR_STRIDE)%FACE_COLOR_RANGE)
}

type projectedVertex struct {
	view Vec3D
	x, y float64
	ok   bool
}

// DrawModel transforms each vertex by world, view and projection, then draws
// faces in declared order. There is no depth test. Faces with a vertex behind
// the camera are skipped; with CullBackFaces set, faces pointing away from
// camera are skipped too.
func (e *DrawEngine) DrawModel(screenW, screenH float64, camera Vec3D, model *Model, world, proj, view Mat4, filled, wireframe bool) {
	if model == nil {
		return
	}
	backend := e.transform
	verts := make([]projectedVertex, len(model.Vertices))
	for i, v := range model.Vertices {
		wv := backend.Transform(world, v)
		vv := backend.Transform(view, wv)
		pv := backend.Transform(proj, vv)
		x, y, ok := pv.ToScreen(screenW, screenH)
		verts[i] = projectedVertex{view: vv, x: x, y: y, ok: ok}
	}

	c := e.canvas
	for i, f := range model.Faces {
		a, b, t := verts[f[0]], verts[f[1]], verts[f[2]]
		if !a.ok || !b.ok || !t.ok {
			continue
		}
		if e.cfg.CullBackFaces && !facesCamera(a.view, b.view, t.view, camera) {
			continue
		}
		if filled {
			c.DrawFilledTriangle(a.x, a.y, b.x, b.y, t.x, t.y, FaceColor(i))
		}
		if wireframe && len(model.Edges) == 0 {
			c.DrawLine(a.x, a.y, b.x, b.y, e.cfg.WireColor)
			c.DrawLine(b.x, b.y, t.x, t.y, e.cfg.WireColor)
			c.DrawLine(t.x, t.y, a.x, a.y, e.cfg.WireColor)
		}
	}

	if (wireframe || len(model.Faces) == 0) && len(model.Edges) > 0 {
		for _, edge := range model.Edges {
			a, b := verts[edge[0]], verts[edge[1]]
			if a.ok && b.ok {
				c.DrawLine(a.x, a.y, b.x, b.y, e.cfg.WireColor)
			}
		}
	}
}

// facesCamera reports whether the triangle's front side points at camera
func facesCamera(a, b, c, camera Vec3D) bool {
	normal := b.Sub(a).Cross(c.Sub(a))
	return normal.Dot(a.Sub(camera)) < 0
}
