package main

import "testing"

func TestHeadlessOutput_DisplayConfig(t *testing.T) {
	out := NewHeadlessVideoOutput()
	cfg := DisplayConfig{Width: 320, Height: 240, Scale: 2, Fullscreen: true}
	if err := out.SetDisplayConfig(cfg); err != nil {
		t.Fatalf("SetDisplayConfig returned error: %v", err)
	}
	got := out.GetDisplayConfig()
	if got.Scale != 2 || !got.Fullscreen {
		t.Fatalf("expected Scale=2, Fullscreen=true; got Scale=%d, Fullscreen=%v", got.Scale, got.Fullscreen)
	}
}

func TestHeadlessOutput_KeepsLastFrame(t *testing.T) {
	out := NewHeadlessVideoOutput()
	if err := out.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !out.IsStarted() {
		t.Fatal("expected output to be started")
	}
	_ = out.UpdateFrame([]byte{1, 2, 3, 4})
	frame := []byte{5, 6, 7, 8}
	_ = out.UpdateFrame(frame)
	frame[0] = 0

	last := out.LastFrame()
	if len(last) != 4 || last[0] != 5 {
		t.Fatalf("expected a copy of the last frame, got %v", last)
	}
	if out.GetFrameCount() != 2 {
		t.Fatalf("expected 2 frames, got %d", out.GetFrameCount())
	}
	_ = out.Close()
	if out.IsStarted() {
		t.Fatal("expected output to be stopped after Close")
	}
}

func TestNewVideoOutput_UnknownBackend(t *testing.T) {
	if _, err := NewVideoOutput("crt"); err == nil {
		t.Fatal("expected an error for an unknown backend")
	}
	out, err := NewVideoOutput(BACKEND_HEADLESS)
	if err != nil {
		t.Fatalf("NewVideoOutput: %v", err)
	}
	if _, ok := out.(*HeadlessVideoOutput); !ok {
		t.Fatalf("expected *HeadlessVideoOutput, got %T", out)
	}
}

func TestClampScale(t *testing.T) {
	cases := map[int]int{-3: 1, 0: 1, 1: 1, 3: 3, MAX_DISPLAY_SCALE: MAX_DISPLAY_SCALE, 99: MAX_DISPLAY_SCALE}
	for in, want := range cases {
		if got := ClampScale(in); got != want {
			t.Fatalf("ClampScale(%d): expected %d, got %d", in, want, got)
		}
	}
}
