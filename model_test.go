package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func assertOutwardFaces(t *testing.T, m *Model) {
	t.Helper()
	for i, f := range m.Faces {
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		normal := b.Sub(a).Cross(c.Sub(a))
		centroid := Vec((a.X+b.X+c.X)/3, (a.Y+b.Y+c.Y)/3, (a.Z+b.Z+c.Z)/3)
		if normal.Dot(centroid) <= 0 {
			t.Fatalf("%s face %d %v points inward", m.Name, i, f)
		}
	}
}

func TestBuiltinModels_AreValidAndOutward(t *testing.T) {
	cases := []struct {
		model        *Model
		verts, faces int
	}{
		{NewCubeModel(), 8, 12},
		{NewPyramidModel(), 5, 6},
		{NewSphereModel(8, 12), 2 + 7*12, 2*12 + 2*6*12},
	}
	for _, tc := range cases {
		t.Run(tc.model.Name, func(t *testing.T) {
			if err := tc.model.Validate(); err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
			if len(tc.model.Vertices) != tc.verts || len(tc.model.Faces) != tc.faces {
				t.Fatalf("expected %d vertices and %d faces, got %d and %d",
					tc.verts, tc.faces, len(tc.model.Vertices), len(tc.model.Faces))
			}
			assertOutwardFaces(t, tc.model)
			lo, hi := tc.model.Bounds()
			if lo.Y != -0.5 || hi.Y != 0.5 {
				t.Fatalf("expected unit height centred on origin, got %v..%v", lo.Y, hi.Y)
			}
		})
	}
}

func TestNewSphereModel_ClampsResolution(t *testing.T) {
	m := NewSphereModel(0, 0)
	if err := m.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if len(m.Faces) != 2*3 {
		t.Fatalf("expected 6 faces at minimum resolution, got %d", len(m.Faces))
	}
}

func TestModel_ValidateRejectsBadIndices(t *testing.T) {
	m := &Model{Name: "bad", Vertices: []Vec3D{Vec(0, 0, 0)}, Faces: []Face{{0, 0, 1}}}
	if err := m.Validate(); err == nil || !strings.Contains(err.Error(), "face 0") {
		t.Fatalf("expected face error, got %v", err)
	}
	m = &Model{Name: "bad", Vertices: []Vec3D{Vec(0, 0, 0)}, Edges: []Edge{{-1, 0}}}
	if err := m.Validate(); err == nil || !strings.Contains(err.Error(), "edge 0") {
		t.Fatalf("expected edge error, got %v", err)
	}
}

func TestModel_BoundsEmpty(t *testing.T) {
	lo, hi := (&Model{}).Bounds()
	if lo != (Vec3D{}) || hi != (Vec3D{}) {
		t.Fatalf("expected zero bounds, got %v %v", lo, hi)
	}
}

func TestModelLoader_Builtins(t *testing.T) {
	var loader ModelLoader
	for _, name := range BuiltinModels {
		m, err := loader.LoadModel(strings.ToUpper(name))
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if m.Name != name {
			t.Fatalf("expected model %s, got %s", name, m.Name)
		}
	}
}

func TestModelLoader_RejectsUnknown(t *testing.T) {
	if _, err := (ModelLoader{}).LoadModel("teapot.obj"); err == nil {
		t.Fatal("expected unknown model to fail")
	}
}

func TestModelLoader_ResolvesRelativeToDir(t *testing.T) {
	loader := ModelLoader{Dir: "testdata"}
	m, err := loader.LoadModel("quad.gltf")
	if err != nil {
		t.Fatalf("load quad: %v", err)
	}
	if m.Name != "quad" {
		t.Fatalf("expected quad, got %s", m.Name)
	}

	abs, err := filepath.Abs(filepath.Join("testdata", "quad.gltf"))
	if err != nil {
		t.Fatalf("abs: %v", err)
	}
	if _, err := (ModelLoader{Dir: "elsewhere"}).LoadModel(abs); err != nil {
		t.Fatalf("expected absolute path to ignore dir, got %v", err)
	}
}
