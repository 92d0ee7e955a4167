package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderANSI_HalfBlocks(t *testing.T) {
	width, height := 8, 4
	frame := make([]byte, width*height*4)
	for i := 0; i < width*4; i += 4 {
		frame[i] = 255
	}

	var buf bytes.Buffer
	renderANSI(&buf, frame, width, height, 80, 23)
	out := buf.String()
	if !strings.HasPrefix(out, "\x1b[H") {
		t.Fatalf("expected cursor home prefix, got %q", out[:min(len(out), 8)])
	}
	if got := strings.Count(out, "▀"); got != width*height/2 {
		t.Fatalf("expected %d half blocks, got %d", width*height/2, got)
	}
	if !strings.Contains(out, "\x1b[38;2;255;0;0m") {
		t.Fatal("expected a red foreground for the top row")
	}
	if !strings.HasSuffix(out, "frame 8x4 scale 1/1") {
		t.Fatalf("unexpected status line in %q", out)
	}
}

func TestRenderANSI_ScalesDown(t *testing.T) {
	frame := make([]byte, VID_HSIZE*VID_VSIZE*4)
	var buf bytes.Buffer
	renderANSI(&buf, frame, VID_HSIZE, VID_VSIZE, 80, 23)
	if !strings.Contains(buf.String(), "scale 1/11") {
		t.Fatalf("expected scale 1/11, got %q", buf.String()[buf.Len()-24:])
	}
}

func TestRenderANSI_ShortFrameIgnored(t *testing.T) {
	var buf bytes.Buffer
	renderANSI(&buf, make([]byte, 8), 8, 4, 80, 23)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestTerminalOutput_StartStop(t *testing.T) {
	var buf bytes.Buffer
	out := NewTerminalVideoOutput(&buf)
	if err := out.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[?25l") {
		t.Fatalf("expected cursor hide, got %q", buf.String())
	}
	_ = out.SetDisplayConfig(DisplayConfig{Width: 2, Height: 2})
	if err := out.UpdateFrame(make([]byte, 16)); err != nil {
		t.Fatalf("UpdateFrame: %v", err)
	}
	if !strings.Contains(buf.String(), "frame 2x2") {
		t.Fatalf("expected a rendered frame, got %q", buf.String())
	}
	if out.GetFrameCount() != 1 {
		t.Fatalf("expected 1 frame, got %d", out.GetFrameCount())
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "\x1b[?25h\n") {
		t.Fatalf("expected cursor restore at the end, got %q", buf.String())
	}
}
