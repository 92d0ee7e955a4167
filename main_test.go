package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseUint16Flag(t *testing.T) {
	cases := map[string]uint16{"0": 0, "42": 42, "0x1F": 0x1F, "0xFFFF": 0xFFFF}
	for in, want := range cases {
		got, err := parseUint16Flag(in)
		if err != nil {
			t.Fatalf("parseUint16Flag(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("parseUint16Flag(%q): expected %d, got %d", in, want, got)
		}
	}
	for _, in := range []string{"0x10000", "-1", "abc", ""} {
		if _, err := parseUint16Flag(in); err == nil {
			t.Fatalf("parseUint16Flag(%q): expected an error", in)
		}
	}
}

func headlessRunConfig() Config {
	cfg := DefaultConfig()
	cfg.Backend = BACKEND_HEADLESS
	cfg.Realtime = false
	cfg.Engine.FadeSteps = 1
	cfg.Engine.FadeDelayMs = 0
	cfg.Demo = shortDemoConfig()
	cfg.Model = "pyramid"
	return cfg
}

func TestRun_HeadlessDemo(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), headlessRunConfig(), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "xosera: version") {
		t.Fatalf("expected a version banner, got %q", text)
	}
	if !strings.Contains(text, "11 flips") {
		t.Fatalf("expected 11 flips in the summary, got %q", text)
	}
}

func TestRun_HeadlessScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.lua")
	src := "clear()\nrect(0, 0, 10, 10, 3)\npresent()\nprint(flips())\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	cfg := headlessRunConfig()
	cfg.Script = path

	var out bytes.Buffer
	if err := run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "script: running") || !strings.HasSuffix(out.String(), "1\n") {
		t.Fatalf("unexpected script output %q", out.String())
	}
}

func TestRun_UnknownModel(t *testing.T) {
	cfg := headlessRunConfig()
	cfg.Model = "teapot"
	if err := run(context.Background(), cfg, &bytes.Buffer{}); err == nil {
		t.Fatal("expected an error for an unknown model")
	}
}
