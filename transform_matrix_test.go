package main

import (
	"math"
	"testing"
)

const transformEpsilon = 1e-9

func vecNear(a, b Vec3D, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps &&
		math.Abs(a.Z-b.Z) <= eps && math.Abs(a.W-b.W) <= eps
}

func TestMultiplyVector_Identity(t *testing.T) {
	v := Vec(1, -2, 3)
	if got := MultiplyVector(MakeIdentity(), v); got != v {
		t.Fatalf("expected %v, got %v", v, got)
	}
}

func TestMultiplyVector_Translation(t *testing.T) {
	got := MultiplyVector(MakeTranslation(1, 2, 3), Vec(1, 1, 1))
	if want := Vec(2, 3, 4); !vecNear(got, want, transformEpsilon) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMakeRotation_QuarterTurns(t *testing.T) {
	cases := []struct {
		name string
		m    Mat4
		in   Vec3D
		want Vec3D
	}{
		{"z", MakeRotationZ(math.Pi / 2), Vec(1, 0, 0), Vec(0, 1, 0)},
		{"x", MakeRotationX(math.Pi / 2), Vec(0, 1, 0), Vec(0, 0, 1)},
		{"y", MakeRotationY(math.Pi / 2), Vec(0, 0, 1), Vec(-1, 0, 0)},
	}
	for _, tc := range cases {
		if got := MultiplyVector(tc.m, tc.in); !vecNear(got, tc.want, 1e-12) {
			t.Fatalf("rotation %s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestMultiply_AppliesLeftFirst(t *testing.T) {
	m := Multiply(MakeRotationZ(math.Pi/2), MakeTranslation(10, 0, 0))
	got := MultiplyVector(m, Vec(1, 0, 0))
	if want := Vec(10, 1, 0); !vecNear(got, want, 1e-12) {
		t.Fatalf("expected rotate then translate %v, got %v", want, got)
	}
}

func TestProjection_OriginMapsToScreenCenter(t *testing.T) {
	world := MakeTranslation(0, 0, 3)
	proj := MakeProjection(320, 200, 60)
	v := MultiplyVector(proj, MultiplyVector(world, Vec(0, 0, 0)))
	x, y, ok := v.ToScreen(320, 200)
	if !ok {
		t.Fatal("expected point in front of the camera to project")
	}
	if math.Abs(x-160) > transformEpsilon || math.Abs(y-100) > transformEpsilon {
		t.Fatalf("expected (160,100), got (%v,%v)", x, y)
	}
	if v.W != 3 {
		t.Fatalf("expected W to carry view depth 3, got %v", v.W)
	}
}

func TestComposedPipeline_OriginMapsToScreenCenter(t *testing.T) {
	world := Multiply(MakeRotationZ(0), MakeRotationX(0))
	world = Multiply(world, MakeTranslation(0, 0, 3))
	mvp := Multiply(world, MakeProjection(320, 200, 60))

	v := MultiplyVector(mvp, Vec(0, 0, 0))
	x, y, ok := v.ToScreen(320, 200)
	if !ok {
		t.Fatal("expected the origin to project")
	}
	if math.Abs(x-160) > transformEpsilon || math.Abs(y-100) > transformEpsilon {
		t.Fatalf("expected (160,100), got (%v,%v)", x, y)
	}
	if math.Abs(v.W-3) > transformEpsilon {
		t.Fatalf("expected W 3, got %v", v.W)
	}
}

func TestProjection_AspectAndFOV(t *testing.T) {
	proj := MakeProjection(320, 200, 90)
	v := MultiplyVector(proj, Vec(1, 1, 1))
	x, y, ok := v.ToScreen(320, 200)
	if !ok {
		t.Fatal("expected projection to succeed")
	}
	// f = 1 at 90 degrees; x is squeezed by the 200/320 aspect
	if math.Abs(x-(0.625+1)*160) > 1e-9 || math.Abs(y-200) > 1e-9 {
		t.Fatalf("expected (260,200), got (%v,%v)", x, y)
	}
}

func TestToScreen_RejectsPointsBehindCamera(t *testing.T) {
	proj := MakeProjection(320, 200, 60)
	for _, z := range []float64{0, -1} {
		v := MultiplyVector(proj, Vec(0, 0, z))
		if _, _, ok := v.ToScreen(320, 200); ok {
			t.Fatalf("expected z=%v to be rejected", z)
		}
	}
}

func TestVectorOps(t *testing.T) {
	a, b := Vec(1, 0, 0), Vec(0, 1, 0)
	if got := a.Cross(b); !vecNear(got, Vec(0, 0, 1), 0) {
		t.Fatalf("expected x cross y = z, got %v", got)
	}
	if got := a.Dot(b); got != 0 {
		t.Fatalf("expected orthogonal dot 0, got %v", got)
	}
	if got := Vec(3, 4, 5).Sub(Vec(1, 1, 1)); !vecNear(got, Vec(2, 3, 4), 0) {
		t.Fatalf("expected (2,3,4), got %v", got)
	}
}
