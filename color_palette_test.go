package main

import (
	"math"
	"testing"
)

func TestBuildRainbowPalette_Entries(t *testing.T) {
	p := BuildRainbowPalette()
	cases := []struct {
		index int
		want  [3]uint8
	}{
		{0, [3]uint8{0, 0, 0}},
		{5, [3]uint8{10, 0, 10}},
		{15, [3]uint8{15, 15, 15}},
		{16, [3]uint8{15, 5, 0}},
		{128, [3]uint8{0, 15, 15}},
		{255, [3]uint8{15, 0, 0}},
	}
	for _, tc := range cases {
		if p[tc.index] != tc.want {
			t.Fatalf("entry %d: expected %v, got %v", tc.index, tc.want, p[tc.index])
		}
	}
}

func TestBuildRainbowPalette_HueSweepIncreases(t *testing.T) {
	p := BuildRainbowPalette()
	prev := -1.0
	for i := PALETTE_FIXED; i < PALETTE_SIZE; i++ {
		hue := rainbowHue(i)
		if hue <= prev || hue >= 360 {
			t.Fatalf("entry %d: expected hue above %v and below 360, got %v", i, prev, hue)
		}
		prev = hue

		r, g, b := HSVToRGB(hue, 1, 1)
		want := [3]uint8{uint8(15 * r), uint8(15 * g), uint8(15 * b)}
		if p[i] != want {
			t.Fatalf("entry %d: expected %v for hue %v, got %v", i, want, hue, p[i])
		}
	}
}

func TestHSVToRGB_FullSaturationSweep(t *testing.T) {
	for h := 0.5; h < 360; h += 1.25 {
		r, g, b := HSVToRGB(h, 1, 1)
		ones, zeros := 0, 0
		for _, ch := range []float64{r, g, b} {
			switch ch {
			case 1:
				ones++
			case 0:
				zeros++
			}
		}
		if ones != 1 || zeros != 1 {
			t.Fatalf("hue %v: expected one channel at 1 and one at 0, got (%v,%v,%v)", h, r, g, b)
		}
	}
}

func TestHSVToRGB(t *testing.T) {
	cases := []struct {
		h, s, v float64
		r, g, b float64
	}{
		{0, 1, 1, 1, 0, 0},
		{120, 1, 1, 0, 1, 0},
		{240, 1, 1, 0, 0, 1},
		{360, 1, 1, 1, 0, 0},
		{-120, 1, 1, 0, 0, 1},
		{77, 0, 0.5, 0.5, 0.5, 0.5},
		{60, 1, 0.5, 0.5, 0.5, 0},
	}
	for _, tc := range cases {
		r, g, b := HSVToRGB(tc.h, tc.s, tc.v)
		if math.Abs(r-tc.r) > 1e-9 || math.Abs(g-tc.g) > 1e-9 || math.Abs(b-tc.b) > 1e-9 {
			t.Fatalf("HSV(%v,%v,%v): expected (%v,%v,%v), got (%v,%v,%v)", tc.h, tc.s, tc.v, tc.r, tc.g, tc.b, r, g, b)
		}
	}
}

func TestBuildGrayscalePalette(t *testing.T) {
	p := BuildGrayscalePalette()
	for _, i := range []int{0, 15, 16, 100, 255} {
		level := uint8(i >> 4)
		if p[i] != [3]uint8{level, level, level} {
			t.Fatalf("entry %d: expected level %d, got %v", i, level, p[i])
		}
	}
}

func TestPaletteWords_ScaleAndClamp(t *testing.T) {
	var p Palette
	p[1] = [3]uint8{15, 8, 1}

	full := p.Words(1)
	if full[1] != 0x0F81 {
		t.Fatalf("expected 0x0F81 at full scale, got 0x%04X", full[1])
	}
	half := p.Words(0.5)
	if half[1] != 0x0740 {
		t.Fatalf("expected truncated 0x0740 at half scale, got 0x%04X", half[1])
	}
	if over := p.Words(3); over[1] != 0x0F81 {
		t.Fatalf("expected scale clamped to 1, got 0x%04X", over[1])
	}
	if under := p.Words(-1); under[1] != 0 {
		t.Fatalf("expected scale clamped to 0, got 0x%04X", under[1])
	}
	if len(full) != PALETTE_SIZE {
		t.Fatalf("expected %d words, got %d", PALETTE_SIZE, len(full))
	}
}

func TestFadeScales(t *testing.T) {
	got := fadeScales(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-6 {
			t.Fatalf("step %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	down := fadeScales(1, 0, 3)
	if math.Abs(down[0]-1) > 1e-6 || math.Abs(down[2]) > 1e-6 {
		t.Fatalf("expected fade out from 1 to 0, got %v", down)
	}
	if one := fadeScales(0, 1, 1); len(one) != 1 || one[0] != 1 {
		t.Fatalf("expected single step at target, got %v", one)
	}
}

func TestDrawEngine_PushPaletteWritesColorMemory(t *testing.T) {
	r := newDrawTestRig(t)
	r.engine.SetPalette(BuildRainbowPalette())
	r.engine.PushPalette(1)

	if got := r.chip.PeekXR(XR_COLOR_ADDR + 16); got != 0x0F50 {
		t.Fatalf("expected color 16 = 0x0F50, got 0x%04X", got)
	}
	if got := r.chip.PeekXR(XR_COLOR_ADDR + 255); got != 0x0F00 {
		t.Fatalf("expected color 255 = 0x0F00, got 0x%04X", got)
	}
	if r.engine.Brightness() != 1 {
		t.Fatalf("expected brightness 1, got %v", r.engine.Brightness())
	}
}

func TestDrawEngine_PushGrayscalePalette(t *testing.T) {
	r := newDrawTestRig(t)
	r.engine.SetPalette(BuildGrayscalePalette())
	r.engine.PushPalette(1.0)

	if got := r.chip.PeekXR(XR_COLOR_ADDR + 128); got != 0x0888 {
		t.Fatalf("expected color 128 = 0x0888, got 0x%04X", got)
	}
	if got := r.chip.PeekXR(XR_COLOR_ADDR + 255); got != 0x0FFF {
		t.Fatalf("expected color 255 = 0x0FFF, got 0x%04X", got)
	}
}

func TestDrawEngine_PushPaletteZeroBlanksColorMemory(t *testing.T) {
	r := newDrawTestRig(t)
	r.engine.SetPalette(BuildRainbowPalette())
	r.engine.PushPalette(1)
	r.engine.PushPalette(0)

	for i := uint16(0); i < PALETTE_SIZE; i++ {
		if got := r.chip.PeekXR(XR_COLOR_ADDR + i); got != 0 {
			t.Fatalf("expected color %d = 0 after a zero push, got 0x%04X", i, got)
		}
	}
	if r.engine.Brightness() != 0 {
		t.Fatalf("expected brightness 0, got %v", r.engine.Brightness())
	}
}

func TestDrawEngine_FadeEndsAtTarget(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.FadeSteps = 3
	cfg.FadeDelayMs = 1
	r := newDrawTestRigWithConfig(t, cfg)
	r.engine.SetPalette(BuildGrayscalePalette())

	start := r.chip.HandleRead(XM_TIMER)
	if err := r.engine.FadeIn(); err != nil {
		t.Fatalf("fade in failed: %v", err)
	}
	if got := r.chip.PeekXR(XR_COLOR_ADDR + 255); got != 0x0FFF {
		t.Fatalf("expected white after fade in, got 0x%04X", got)
	}
	if elapsed := r.chip.HandleRead(XM_TIMER) - start; elapsed < 2*TIMER_TICKS_PER_MS {
		t.Fatalf("expected two fade delays, got %d ticks", elapsed)
	}

	if err := r.engine.FadeOut(); err != nil {
		t.Fatalf("fade out failed: %v", err)
	}
	if got := r.chip.PeekXR(XR_COLOR_ADDR + 255); got != 0 {
		t.Fatalf("expected black after fade out, got 0x%04X", got)
	}
	if r.engine.Brightness() != 0 {
		t.Fatalf("expected brightness 0, got %v", r.engine.Brightness())
	}
}
