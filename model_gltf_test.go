package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
)

func TestLoadGLTFModel_Quad(t *testing.T) {
	m, err := LoadGLTFModel(filepath.Join("testdata", "quad.gltf"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(m.Vertices) != 4 || len(m.Faces) != 2 {
		t.Fatalf("expected 4 vertices and 2 faces, got %d and %d", len(m.Vertices), len(m.Faces))
	}
	if m.Faces[1] != (Face{0, 2, 3}) {
		t.Fatalf("expected second face {0,2,3}, got %v", m.Faces[1])
	}
	for i, v := range m.Vertices {
		if math.Abs(math.Abs(v.X)-0.5) > 1e-9 || math.Abs(math.Abs(v.Y)-0.5) > 1e-9 || v.Z != 0 {
			t.Fatalf("vertex %d: expected corner of a unit square, got %v", i, v)
		}
	}
}

func TestLoadGLTFModel_MissingFile(t *testing.T) {
	if _, err := LoadGLTFModel(filepath.Join("testdata", "missing.gltf")); err == nil {
		t.Fatal("expected missing file to fail")
	}
}

func TestModelFromDocument_NoTriangles(t *testing.T) {
	doc := gltf.NewDocument()
	doc.Meshes = []*gltf.Mesh{{
		Name:       "points",
		Primitives: []*gltf.Primitive{{Mode: gltf.PrimitivePoints}},
	}}
	if _, err := modelFromDocument(doc, "points"); err == nil {
		t.Fatal("expected document without triangles to fail")
	}
}

func TestModelFromDocument_MissingPosition(t *testing.T) {
	doc := gltf.NewDocument()
	doc.Meshes = []*gltf.Mesh{{
		Name:       "empty",
		Primitives: []*gltf.Primitive{{Mode: gltf.PrimitiveTriangles}},
	}}
	if _, err := modelFromDocument(doc, "empty"); err == nil {
		t.Fatal("expected primitive without POSITION to fail")
	}
}
