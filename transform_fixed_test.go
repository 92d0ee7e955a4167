package main

import (
	"math"
	"testing"
)

func TestFX_RoundsAndSaturates(t *testing.T) {
	cases := []struct {
		in   float64
		want Fixed
	}{
		{1, FIXED_ONE},
		{-0.5, -FIXED_ONE / 2},
		{1e9, math.MaxInt32},
		{-1e9, math.MinInt32},
		{math.NaN(), 0},
	}
	for _, tc := range cases {
		if got := FX(tc.in); got != tc.want {
			t.Fatalf("FX(%v): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestFixed_MulSaturates(t *testing.T) {
	if got := FX(20000).Mul(FX(2)); got != math.MaxInt32 {
		t.Fatalf("expected MaxInt32, got %d", got)
	}
	if got := FX(-20000).Mul(FX(2)); got != math.MinInt32 {
		t.Fatalf("expected MinInt32, got %d", got)
	}
	if got := FX(16000).Mul(FX(2)).Float(); got != 32000 {
		t.Fatalf("expected 32000, got %v", got)
	}
}

func TestFixedMultiplyVector_Saturates(t *testing.T) {
	m := MakeIdentity()
	m[0][0] = 2
	got := FixedBackend{}.Transform(m, Vec(20000, -3, 1))
	if got.X < 32767 {
		t.Fatalf("expected X pinned near +32768, got %v", got.X)
	}
	if got.Y != -3 || got.Z != 1 {
		t.Fatalf("expected untouched Y and Z, got %v %v", got.Y, got.Z)
	}

	m[0][0] = -2
	if got := (FixedBackend{}).Transform(m, Vec(20000, 0, 0)); got.X > -32767 {
		t.Fatalf("expected X pinned near -32768, got %v", got.X)
	}
}

func TestFixed_Mul(t *testing.T) {
	if got := FX(1.5).Mul(FX(-2)).Float(); got != -3 {
		t.Fatalf("expected -3, got %v", got)
	}
	if got := FX(0.25).Mul(FX(0.25)).Float(); got != 0.0625 {
		t.Fatalf("expected 0.0625, got %v", got)
	}
}

func TestFixedBackend_TracksFloat(t *testing.T) {
	world := Multiply(Multiply(MakeRotationZ(0.7), MakeRotationX(0.3)), MakeTranslation(0, 0, 3))
	proj := MakeProjection(320, 200, 60)
	m := Multiply(world, proj)

	for _, v := range NewCubeModel().Vertices {
		want := FloatBackend{}.Transform(m, v)
		got := FixedBackend{}.Transform(m, v)
		if !vecNear(got, want, 1e-3) {
			t.Fatalf("vertex %v: fixed %v differs from float %v", v, got, want)
		}
		fx, fy, fok := got.ToScreen(320, 200)
		wx, wy, wok := want.ToScreen(320, 200)
		if fok != wok || math.Abs(fx-wx) > 0.5 || math.Abs(fy-wy) > 0.5 {
			t.Fatalf("vertex %v: fixed screen (%v,%v) vs float (%v,%v)", v, fx, fy, wx, wy)
		}
	}
}

func TestFixedBackend_Name(t *testing.T) {
	var b TransformBackend = FixedBackend{}
	if b.Name() != "fixed" {
		t.Fatalf("expected fixed, got %q", b.Name())
	}
}
