package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newScriptTestHost(t *testing.T) (*drawTestRig, *ScriptHost, *bytes.Buffer) {
	t.Helper()
	r := newDrawTestRig(t)
	var out bytes.Buffer
	h := NewScriptHost(r.engine, ModelLoader{Dir: "testdata"}, &out)
	t.Cleanup(h.Close)
	return r, h, &out
}

func runLua(t *testing.T, h *ScriptHost, src string) {
	t.Helper()
	if err := h.RunString(context.Background(), src); err != nil {
		t.Fatalf("script failed: %v", err)
	}
}

func TestScriptHost_DrawAndPresent(t *testing.T) {
	r, h, out := newScriptTestHost(t)
	runLua(t, h, `
		clear()
		rect(10, 10, 20, 20, 5)
		pixel(0, 0, 7)
		present()
		print(flips())
	`)
	if got := strings.TrimSpace(out.String()); got != "1" {
		t.Fatalf("expected 1 flip, got %q", got)
	}
	if got := r.pixelAt(BUFFER_B_ADDR, 15, 15); got != 5 {
		t.Fatalf("expected rect color 5, got %d", got)
	}
	if got := r.pixelAt(BUFFER_B_ADDR, 0, 0); got != 7 {
		t.Fatalf("expected pixel color 7, got %d", got)
	}
}

func TestScriptHost_RegisterAccess(t *testing.T) {
	r, h, out := newScriptTestHost(t)
	runLua(t, h, `
		xreg_setw(XR.PA_LINE_LEN, 77)
		print(xreg_getw(XR.PA_LINE_LEN))
		vram_setw(0x100, 0x1234)
		print(vram_getw(0x100))
		xm_setw(XM.UNUSED_A, 42)
		print(xm_getw(XM.UNUSED_A))
		print(screen_size())
	`)
	want := "77\n4660\n42\n320\t200\n"
	if got := out.String(); got != want {
		t.Fatalf("expected output %q, got %q", want, got)
	}
	if got := r.chip.PeekVRAM(0x100); got != 0x1234 {
		t.Fatalf("expected VRAM 0x1234, got 0x%04X", got)
	}
}

func TestScriptHost_Palette(t *testing.T) {
	r, h, _ := newScriptTestHost(t)
	runLua(t, h, `palette("gray") push_palette()`)
	if got := r.chip.PeekXR(XR_COLOR_ADDR + 255); got != 0x0FFF {
		t.Fatalf("expected white at 255, got 0x%04X", got)
	}
	runLua(t, h, `push_palette(0)`)
	if got := r.chip.PeekXR(XR_COLOR_ADDR + 255); got != 0 {
		t.Fatalf("expected black at 255, got 0x%04X", got)
	}
}

func TestScriptHost_Model(t *testing.T) {
	r, h, _ := newScriptTestHost(t)
	runLua(t, h, `clear() model("cube", 0.3) model("quad.gltf", 0, true, true)`)
	if len(h.models) != 2 {
		t.Fatalf("expected 2 cached models, got %d", len(h.models))
	}
	if got := r.drawPixel(160, 100); got == 0 {
		t.Fatal("expected the models to cover the centre")
	}
}

func TestScriptHost_Errors(t *testing.T) {
	_, h, _ := newScriptTestHost(t)
	cases := map[string]string{
		"register range": `xm_getw(99)`,
		"unknown model":  `model("teapot", 0)`,
		"bad palette":    `palette("sepia")`,
		"syntax":         `rect(`,
	}
	for name, src := range cases {
		if err := h.RunString(context.Background(), src); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestScriptHost_RunFile(t *testing.T) {
	_, h, out := newScriptTestHost(t)
	path := filepath.Join(t.TempDir(), "hello.lua")
	if err := os.WriteFile(path, []byte(`print("hello", 1 + 2)`), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	if err := h.RunFile(context.Background(), path); err != nil {
		t.Fatalf("run file: %v", err)
	}
	if got := out.String(); got != "hello\t3\n" {
		t.Fatalf("expected %q, got %q", "hello\t3\n", got)
	}
	if err := h.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Fatal("expected missing script to fail")
	}
}

func TestScriptHost_CancelledContextStopsScript(t *testing.T) {
	_, h, _ := newScriptTestHost(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.RunString(ctx, `while true do end`); err == nil {
		t.Fatal("expected cancelled script to stop with an error")
	}
}
