// config.go - Command line and environment configuration for Xosera Draw

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ENV_PREFIX    = "XDRAW_"
	ENV_FILE      = ".env"
	DEFAULT_SCALE = 1

	BACKEND_EBITEN   = "ebiten"
	BACKEND_HEADLESS = "headless"
	BACKEND_TERMINAL = "terminal"
)

// Config is everything main needs to build the chip, engine and harness
type Config struct {
	Engine EngineConfig
	Demo   DemoConfig

	Backend      string
	Scale        int
	SyncRetries  int
	AccessCycles int
	Reconfigure  int
	Realtime     bool
	Trace        bool

	Script      string
	Model       string
	ModelDir    string
	MonitorAddr string
	StatsAddr   string
}

// DefaultConfig returns the settings used when nothing is overridden
func DefaultConfig() Config {
	return Config{
		Engine:       DefaultEngineConfig(),
		Demo:         DefaultDemoConfig(),
		Backend:      BACKEND_EBITEN,
		Scale:        DEFAULT_SCALE,
		SyncRetries:  DEFAULT_SYNC_RETRIES,
		AccessCycles: DEFAULT_ACCESS_CYCLES,
		Reconfigure:  XOSERA_CONFIG_UNCHANGED,
		Realtime:     true,
		Model:        "sphere",
	}
}

func newFlagSet(name string, cfg *Config) *flag.FlagSet {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	flagSet.IntVar(&cfg.Engine.Width, "width", cfg.Engine.Width, "Drawing width in pixels")
	flagSet.IntVar(&cfg.Engine.Height, "height", cfg.Engine.Height, "Drawing height in pixels")
	flagSet.IntVar(&cfg.Engine.FadeSteps, "fade-steps", cfg.Engine.FadeSteps, "Palette fade steps")
	flagSet.IntVar(&cfg.Engine.FadeDelayMs, "fade-delay", cfg.Engine.FadeDelayMs, "Delay between fade steps in ms")
	flagSet.IntVar(&cfg.Engine.VSyncTimeoutMs, "vsync-timeout", cfg.Engine.VSyncTimeoutMs, "Flip confirmation timeout in ms")
	flagSet.BoolVar(&cfg.Engine.CullBackFaces, "cull", cfg.Engine.CullBackFaces, "Skip faces pointing away from the camera")
	flagSet.BoolVar(&cfg.Engine.FixedPoint, "fixed", cfg.Engine.FixedPoint, "Transform vertices in 16.16 fixed point")
	flagSet.Float64Var(&cfg.Engine.FOV, "fov", cfg.Engine.FOV, "Projection field of view in degrees")

	flagSet.IntVar(&cfg.Demo.Loops, "loops", cfg.Demo.Loops, "Demo passes, 0 loops forever")
	flagSet.IntVar(&cfg.Demo.HoldMs, "hold", cfg.Demo.HoldMs, "Still image hold time in ms")
	flagSet.IntVar(&cfg.Demo.RectIterations, "rect-frames", cfg.Demo.RectIterations, "Rectangle phase frames")
	flagSet.IntVar(&cfg.Demo.TriangleIterations, "triangle-frames", cfg.Demo.TriangleIterations, "Triangle phase frames")
	flagSet.IntVar(&cfg.Demo.CubeIterations, "cube-frames", cfg.Demo.CubeIterations, "Cube phase frames")
	flagSet.IntVar(&cfg.Demo.ModelIterations, "model-frames", cfg.Demo.ModelIterations, "Model phase frames")
	flagSet.Int64Var(&cfg.Demo.Seed, "seed", cfg.Demo.Seed, "Particle random seed")

	flagSet.StringVar(&cfg.Backend, "backend", cfg.Backend, "Video output: ebiten, headless or terminal")
	flagSet.IntVar(&cfg.Scale, "scale", cfg.Scale, "Window scale factor")
	flagSet.IntVar(&cfg.SyncRetries, "sync-retries", cfg.SyncRetries, "Device sync attempts")
	flagSet.IntVar(&cfg.AccessCycles, "access-cycles", cfg.AccessCycles, "Pixel clocks charged per register access")
	flagSet.IntVar(&cfg.Reconfigure, "config", cfg.Reconfigure, "Reboot into FPGA configuration 0-3 (-1 keeps current)")
	flagSet.BoolVar(&cfg.Realtime, "realtime", cfg.Realtime, "Pace frames at the video refresh rate")
	flagSet.BoolVar(&cfg.Trace, "trace", cfg.Trace, "Trace register accesses to stderr")

	flagSet.StringVar(&cfg.Script, "script", cfg.Script, "Run a Lua script instead of the demo")
	flagSet.StringVar(&cfg.Model, "model", cfg.Model, "Second demo model: cube, pyramid, sphere or a .gltf/.glb file")
	flagSet.StringVar(&cfg.ModelDir, "model-dir", cfg.ModelDir, "Directory for model files")
	flagSet.StringVar(&cfg.MonitorAddr, "monitor", cfg.MonitorAddr, "Monitor HTTP listen address, empty disables")
	flagSet.StringVar(&cfg.StatsAddr, "stats", cfg.StatsAddr, "Runtime stats viewer address (statsview builds)")
	return flagSet
}

// envName maps a flag name to its XDRAW_ environment variable
func envName(flagName string) string {
	return ENV_PREFIX + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// ReadEnvironment collects XDRAW_ settings from the given .env files and the
// process environment. Process variables win over file entries; missing files
// are skipped.
func ReadEnvironment(files ...string) (map[string]string, error) {
	env := make(map[string]string)
	for _, file := range files {
		values, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		for k, v := range values {
			if strings.HasPrefix(k, ENV_PREFIX) {
				env[k] = v
			}
		}
	}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, ENV_PREFIX) {
			env[k] = v
		}
	}
	return env, nil
}

// LoadConfig applies env over the defaults and then args over both.
// flag.ErrHelp is returned after printing usage for -h.
func LoadConfig(name string, args []string, env map[string]string) (Config, error) {
	cfg := DefaultConfig()
	flagSet := newFlagSet(name, &cfg)
	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Printf("Usage: %s [options]\n", name)
		flagSet.PrintDefaults()
		flagSet.SetOutput(io.Discard)
	}

	var envErr error
	flagSet.VisitAll(func(f *flag.Flag) {
		value, ok := env[envName(f.Name)]
		if !ok || envErr != nil {
			return
		}
		if err := flagSet.Set(f.Name, value); err != nil {
			envErr = fmt.Errorf("%s: %w", envName(f.Name), err)
		}
	})
	if envErr != nil {
		return cfg, envErr
	}

	if err := flagSet.Parse(args); err != nil {
		return cfg, err
	}
	if flagSet.NArg() > 0 && cfg.Script == "" {
		cfg.Script = flagSet.Arg(0)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the engine or harness cannot run with
func (c Config) Validate() error {
	switch c.Backend {
	case BACKEND_EBITEN, BACKEND_HEADLESS, BACKEND_TERMINAL:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.Reconfigure < XOSERA_CONFIG_UNCHANGED || c.Reconfigure > XOSERA_CONFIG_MAX {
		return fmt.Errorf("config %d out of range 0-%d", c.Reconfigure, XOSERA_CONFIG_MAX)
	}
	if c.SyncRetries < 1 {
		return fmt.Errorf("sync-retries must be at least 1")
	}
	if c.Scale < 1 {
		return fmt.Errorf("scale must be at least 1")
	}
	return nil
}
