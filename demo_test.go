package main

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func shortDemoConfig() DemoConfig {
	cfg := DefaultDemoConfig()
	cfg.Rects = 3
	cfg.Triangles = 2
	cfg.RectIterations = 2
	cfg.TriangleIterations = 2
	cfg.CubeIterations = 1
	cfg.ModelIterations = 1
	cfg.HoldMs = 0
	cfg.Loops = 1
	cfg.Title = "T\n"
	return cfg
}

func newDemoTestRig(t *testing.T) *drawTestRig {
	t.Helper()
	cfg := DefaultEngineConfig()
	cfg.FadeSteps = 1
	cfg.FadeDelayMs = 0
	return newDrawTestRigWithConfig(t, cfg)
}

func TestDemo_RunOncePlaysEveryPhase(t *testing.T) {
	r := newDemoTestRig(t)
	d := NewDemo(r.engine, shortDemoConfig(), NewCubeModel(), NewPyramidModel())
	var phases []string
	d.OnPhase = func(p string) { phases = append(phases, p) }

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("demo failed: %v", err)
	}
	want := []string{PhaseTitle, PhaseLines, PhaseRects, PhaseTriangles, PhaseCube, PhaseModel}
	if !slices.Equal(phases, want) {
		t.Fatalf("expected phases %v, got %v", want, phases)
	}
	// lines 1, rectangles 1+2, triangles 1+2, cube 1+1, model 1+1
	if got := r.engine.Swap().Flips(); got != 11 {
		t.Fatalf("expected 11 flips, got %d", got)
	}
	if got := r.chip.PeekXR(XR_COPP_CTRL); got&COPP_CTRL_ENABLE != 0 {
		t.Fatalf("expected copper stopped after the demo, got 0x%04X", got)
	}
	if r.engine.Brightness() != 0 {
		t.Fatalf("expected the demo to end faded out, got %v", r.engine.Brightness())
	}
}

func TestDemo_TitlePrintsBanner(t *testing.T) {
	r := newDemoTestRig(t)
	d := NewDemo(r.engine, shortDemoConfig(), nil, nil)
	if err := d.Title(context.Background()); err != nil {
		t.Fatalf("title failed: %v", err)
	}
	if got := r.chip.PeekVRAM(0); got != uint16(DEFAULT_TEXT_COLOR)<<8|'T' {
		t.Fatalf("expected 'T' in the first cell, got 0x%04X", got)
	}
	if got := r.chip.PeekXR(XR_PA_GFX_CTRL); got != GFX_TEXT_2X {
		t.Fatalf("expected text mode, got 0x%04X", got)
	}
}

func TestDemo_LinesDrawsStarburst(t *testing.T) {
	r := newDemoTestRig(t)
	d := NewDemo(r.engine, shortDemoConfig(), nil, nil)
	drawn := r.engine.Swap().DrawBuffer()
	if err := d.Lines(context.Background()); err != nil {
		t.Fatalf("lines failed: %v", err)
	}
	if got := r.pixelAt(drawn, 240, 120); got < PALETTE_FIXED {
		t.Fatalf("expected a rainbow color at the starburst centre, got %d", got)
	}
	if got := r.pixelAt(drawn, 240+STARBURST_RADIUS-1, 120); got != PALETTE_FIXED {
		t.Fatalf("expected the first spoke to reach the right edge in color %d, got %d", PALETTE_FIXED, got)
	}
}

func TestDemo_CancelledContext(t *testing.T) {
	r := newDemoTestRig(t)
	cfg := shortDemoConfig()
	cfg.Loops = 0
	d := NewDemo(r.engine, cfg, NewCubeModel(), nil)
	called := false
	d.OnPhase = func(string) { called = true }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Fatal("expected no phase to start")
	}
}

func TestDemo_ModelSkipsNil(t *testing.T) {
	r := newDemoTestRig(t)
	d := NewDemo(r.engine, shortDemoConfig(), nil, nil)
	if err := d.Model(context.Background(), nil, 5, false); err != nil {
		t.Fatalf("expected nil model to be skipped, got %v", err)
	}
	if r.engine.Swap().Presents() != 0 {
		t.Fatal("expected no presents for a nil model")
	}
}

func TestParticle_StepBounces(t *testing.T) {
	p := Particle{X: 1, Y: 198, SpeedX: -3, SpeedY: 4}
	p.step(320, 200)
	if p.X != -2 || p.SpeedX != 3 {
		t.Fatalf("expected bounce off the left edge, got x=%d speed=%d", p.X, p.SpeedX)
	}
	if p.Y != 202 || p.SpeedY != -4 {
		t.Fatalf("expected bounce off the bottom edge, got y=%d speed=%d", p.Y, p.SpeedY)
	}
	p.step(320, 200)
	if p.X != 1 || p.Y != 198 {
		t.Fatalf("expected particle back inside, got (%d,%d)", p.X, p.Y)
	}
}

func TestDemo_NewParticlesIsSeeded(t *testing.T) {
	r := newDemoTestRig(t)
	a := NewDemo(r.engine, shortDemoConfig(), nil, nil).newParticles(4, true)
	b := NewDemo(r.engine, shortDemoConfig(), nil, nil).newParticles(4, true)
	if !slices.Equal(a, b) {
		t.Fatalf("expected the same seed to give the same particles")
	}
	for _, p := range a {
		if p.Radius < 5 || p.Radius > 14 || p.SpeedX < -5 || p.SpeedX > 4 {
			t.Fatalf("particle out of range: %+v", p)
		}
	}
}
