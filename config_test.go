package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("xdraw", nil, nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Backend != BACKEND_EBITEN {
		t.Fatalf("expected backend %q, got %q", BACKEND_EBITEN, cfg.Backend)
	}
	if cfg.Engine.Width != DEFAULT_SCREEN_WIDTH || cfg.Engine.Height != DEFAULT_SCREEN_HEIGHT {
		t.Fatalf("expected %dx%d, got %dx%d", DEFAULT_SCREEN_WIDTH, DEFAULT_SCREEN_HEIGHT, cfg.Engine.Width, cfg.Engine.Height)
	}
	if cfg.Reconfigure != XOSERA_CONFIG_UNCHANGED {
		t.Fatalf("expected unchanged config, got %d", cfg.Reconfigure)
	}
	if cfg.Model != "sphere" || cfg.Script != "" {
		t.Fatalf("expected sphere model and no script, got %q %q", cfg.Model, cfg.Script)
	}
}

func TestEnvName(t *testing.T) {
	if got := envName("fade-delay"); got != "XDRAW_FADE_DELAY" {
		t.Fatalf("expected XDRAW_FADE_DELAY, got %q", got)
	}
}

func TestLoadConfig_FlagsOverrideEnvironment(t *testing.T) {
	env := map[string]string{
		"XDRAW_WIDTH":   "160",
		"XDRAW_BACKEND": "headless",
		"XDRAW_FIXED":   "true",
	}
	cfg, err := LoadConfig("xdraw", []string{"-width", "200", "-loops", "3"}, env)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Engine.Width != 200 {
		t.Fatalf("expected flag width 200, got %d", cfg.Engine.Width)
	}
	if cfg.Backend != BACKEND_HEADLESS {
		t.Fatalf("expected env backend headless, got %q", cfg.Backend)
	}
	if !cfg.Engine.FixedPoint {
		t.Fatal("expected env to enable fixed point")
	}
	if cfg.Demo.Loops != 3 {
		t.Fatalf("expected 3 loops, got %d", cfg.Demo.Loops)
	}
}

func TestLoadConfig_BadEnvironmentValue(t *testing.T) {
	_, err := LoadConfig("xdraw", nil, map[string]string{"XDRAW_WIDTH": "wide"})
	if err == nil || !strings.Contains(err.Error(), "XDRAW_WIDTH") {
		t.Fatalf("expected an XDRAW_WIDTH error, got %v", err)
	}
}

func TestLoadConfig_PositionalScript(t *testing.T) {
	cfg, err := LoadConfig("xdraw", []string{"-backend", "terminal", "demo.lua"}, nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Script != "demo.lua" {
		t.Fatalf("expected script demo.lua, got %q", cfg.Script)
	}
}

func TestLoadConfig_Help(t *testing.T) {
	_, err := LoadConfig("xdraw", []string{"-h"}, nil)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name string
		edit func(*Config)
	}{
		{"backend", func(c *Config) { c.Backend = "vga" }},
		{"config low", func(c *Config) { c.Reconfigure = -2 }},
		{"config high", func(c *Config) { c.Reconfigure = XOSERA_CONFIG_MAX + 1 }},
		{"retries", func(c *Config) { c.SyncRetries = 0 }},
		{"scale", func(c *Config) { c.Scale = 0 }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.edit(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected a validation error", tc.name)
		}
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestReadEnvironment_FileAndProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "XDRAW_WIDTH=240\nXDRAW_MODEL=cube\nOTHER_SETTING=1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("XDRAW_MODEL", "pyramid")

	env, err := ReadEnvironment(path, filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("ReadEnvironment: %v", err)
	}
	if env["XDRAW_WIDTH"] != "240" {
		t.Fatalf("expected width from file, got %q", env["XDRAW_WIDTH"])
	}
	if env["XDRAW_MODEL"] != "pyramid" {
		t.Fatalf("expected process env to win, got %q", env["XDRAW_MODEL"])
	}
	if _, ok := env["OTHER_SETTING"]; ok {
		t.Fatal("expected unprefixed keys to be ignored")
	}

	cfg, err := LoadConfig("xdraw", nil, env)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Engine.Width != 240 || cfg.Model != "pyramid" {
		t.Fatalf("expected width 240 and pyramid, got %d %q", cfg.Engine.Width, cfg.Model)
	}
}
