// model.go - Model tables and built-in meshes for Xosera Draw

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

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

// Face indexes three vertices of a triangle
type Face [3]int

// Edge indexes the two vertices of a line
type Edge [2]int

// Model is an immutable vertex/face table, borrowed by the renderer
type Model struct {
	Name     string
	Vertices []Vec3D
	Faces    []Face
	Edges    []Edge
}

// Validate checks every face and edge index against the vertex table
func (m *Model) Validate() error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("model %s: face %d references vertex %d of %d", m.Name, i, idx, n)
			}
		}
	}
	for i, e := range m.Edges {
		for _, idx := range e {
			if idx < 0 || idx >= n {
				return fmt.Errorf("model %s: edge %d references vertex %d of %d", m.Name, i, idx, n)
			}
		}
	}
	return nil
}

// Bounds returns the axis aligned bounding box of the vertices
func (m *Model) Bounds() (lo, hi Vec3D) {
	if len(m.Vertices) == 0 {
		return Vec3D{}, Vec3D{}
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		lo.X, hi.X = math.Min(lo.X, v.X), math.Max(hi.X, v.X)
		lo.Y, hi.Y = math.Min(lo.Y, v.Y), math.Max(hi.Y, v.Y)
		lo.Z, hi.Z = math.Min(lo.Z, v.Z), math.Max(hi.Z, v.Z)
	}
	return lo, hi
}

// normalize centers the model on the origin and scales its largest extent to 1
func (m *Model) normalize() {
	lo, hi := m.Bounds()
	cx, cy, cz := (lo.X+hi.X)/2, (lo.Y+hi.Y)/2, (lo.Z+hi.Z)/2
	extent := math.Max(hi.X-lo.X, math.Max(hi.Y-lo.Y, hi.Z-lo.Z))
	if extent == 0 {
		extent = 1
	}
	for i, v := range m.Vertices {
		m.Vertices[i] = Vec((v.X-cx)/extent, (v.Y-cy)/extent, (v.Z-cz)/extent)
	}
}

// NewCubeModel returns a unit cube centred on the origin with outward winding
func NewCubeModel() *Model {
	corners := [8][3]float64{
		{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0},
		{1, 1, 1}, {1, 0, 1}, {0, 1, 1}, {0, 0, 1},
	}
	m := &Model{Name: "cube"}
	for _, c := range corners {
		m.Vertices = append(m.Vertices, Vec(c[0]-0.5, c[1]-0.5, c[2]-0.5))
	}
	m.Faces = []Face{
		{0, 1, 2}, {0, 2, 3}, // south
		{3, 2, 4}, {3, 4, 5}, // east
		{5, 4, 6}, {5, 6, 7}, // north
		{7, 6, 1}, {7, 1, 0}, // west
		{1, 6, 4}, {1, 4, 2}, // top
		{5, 7, 0}, {5, 0, 3}, // bottom
	}
	m.Edges = []Edge{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{7, 6}, {6, 4}, {4, 5}, {5, 7},
		{0, 7}, {1, 6}, {2, 4}, {3, 5},
	}
	return m
}

// NewPyramidModel returns a square based pyramid centred on the origin
func NewPyramidModel() *Model {
	return &Model{
		Name: "pyramid",
		Vertices: []Vec3D{
			Vec(-0.5, -0.5, -0.5), Vec(0.5, -0.5, -0.5), Vec(0.5, -0.5, 0.5), Vec(-0.5, -0.5, 0.5),
			Vec(0, 0.5, 0),
		},
		Faces: []Face{
			{0, 1, 2}, {0, 2, 3},
			{0, 4, 1}, {1, 4, 2}, {2, 4, 3}, {3, 4, 0},
		},
		Edges: []Edge{
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			{0, 4}, {1, 4}, {2, 4}, {3, 4},
		},
	}
}

// NewSphereModel returns a UV sphere of diameter 1
func NewSphereModel(rings, segments int) *Model {
	rings = max(rings, 2)
	segments = max(segments, 3)
	m := &Model{Name: "sphere"}

	m.Vertices = append(m.Vertices, Vec(0, 0.5, 0))
	for r := 1; r < rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		y := 0.5 * math.Cos(phi)
		radius := 0.5 * math.Sin(phi)
		for s := 0; s < segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			m.Vertices = append(m.Vertices, Vec(radius*math.Cos(theta), y, radius*math.Sin(theta)))
		}
	}
	m.Vertices = append(m.Vertices, Vec(0, -0.5, 0))
	bottom := len(m.Vertices) - 1

	ring := func(r, s int) int {
		return 1 + (r-1)*segments + s%segments
	}
	for s := 0; s < segments; s++ {
		m.Faces = append(m.Faces, Face{0, ring(1, s), ring(1, s+1)})
	}
	for r := 1; r < rings-1; r++ {
		for s := 0; s < segments; s++ {
			m.Faces = append(m.Faces,
				Face{ring(r, s), ring(r+1, s), ring(r+1, s+1)},
				Face{ring(r, s), ring(r+1, s+1), ring(r, s+1)})
		}
	}
	for s := 0; s < segments; s++ {
		m.Faces = append(m.Faces, Face{bottom, ring(rings-1, s+1), ring(rings-1, s)})
	}
	m.orientOutward()
	return m
}

// orientOutward flips faces whose normal points towards the model centre
func (m *Model) orientOutward() {
	for i, f := range m.Faces {
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		normal := b.Sub(a).Cross(c.Sub(a))
		centroid := Vec3D{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3, Z: (a.Z + b.Z + c.Z) / 3}
		if normal.Dot(centroid) < 0 {
			m.Faces[i] = Face{f[0], f[2], f[1]}
		}
	}
}

// ModelLoader resolves model names to built-in meshes or glTF files
type ModelLoader struct {
	Dir string // Search directory for relative glTF paths
}

// BuiltinModels lists the names LoadModel resolves without touching disk
var BuiltinModels = []string{"cube", "pyramid", "sphere"}

// LoadModel returns a built-in model by name or loads a .gltf/.glb file
func (l ModelLoader) LoadModel(name string) (*Model, error) {
	switch strings.ToLower(name) {
	case "cube":
		return NewCubeModel(), nil
	case "pyramid":
		return NewPyramidModel(), nil
	case "sphere":
		return NewSphereModel(8, 12), nil
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".gltf" && ext != ".glb" {
		return nil, fmt.Errorf("model %q: not a built-in model or a .gltf/.glb file", name)
	}
	path := name
	if l.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(l.Dir, path)
	}
	return LoadGLTFModel(path)
}
