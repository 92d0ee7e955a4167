// main.go - Xosera Draw entry point

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
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147m ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████\033[0m\n\033[38;2;255;50;147m▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀\033[0m\n\033[38;2;255;80;147m▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███\033[0m\n\033[38;2;255;110;147m░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄\033[0m\n\033[38;2;255;140;147m░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒\033[0m\n\033[38;2;255;170;147m░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░\033[0m\n\033[38;2;255;200;147m ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░\033[0m\n\033[38;2;255;230;147m ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░\033[0m\n\033[38;2;255;255;147m ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░\033[0m")
	fmt.Println("\nXosera Draw - lines, triangles, palettes and copper double buffering on a simulated Xosera.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	boilerPlate()

	env, err := ReadEnvironment(ENV_FILE)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := LoadConfig(os.Args[0], os.Args[1:], env)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// run builds the simulated chip, the video output and the draw engine, then
// plays the demo or a script until it ends or ctx is cancelled.
func run(ctx context.Context, cfg Config, out io.Writer) error {
	chip := NewXoseraChip()
	chip.SetAccessCycles(cfg.AccessCycles)
	chip.SetRealtime(cfg.Realtime && cfg.Backend != BACKEND_HEADLESS)

	output, err := NewVideoOutput(cfg.Backend)
	if err != nil {
		return err
	}
	display := DefaultDisplayConfig()
	display.Scale = ClampScale(cfg.Scale)
	if err := output.SetDisplayConfig(display); err != nil {
		return err
	}
	chip.AttachOutput(output)
	if err := output.Start(); err != nil {
		return &VideoError{Operation: "start", Details: cfg.Backend, Err: err}
	}
	defer output.Close()
	runtimeStatus.setChip(chip, cfg.Backend)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if dn, ok := output.(DoneNotifier); ok {
		go func() {
			select {
			case <-dn.Done():
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	port := NewXMPort(chip)
	port.SyncRetries = cfg.SyncRetries
	if cfg.Trace {
		port.SetTrace(os.Stderr)
	}
	if err := port.WaitSync(); err != nil {
		return err
	}
	if cfg.Reconfigure != XOSERA_CONFIG_UNCHANGED {
		if err := port.Reconfigure(cfg.Reconfigure); err != nil {
			return err
		}
	}
	version := port.XRGet(XR_VERSION)
	fmt.Fprintf(out, "xosera: version %X.%02X githash %04X%04X config #%d\n",
		version>>8&0xF, version&0xFF, port.XRGet(XR_GITHASH_H), port.XRGet(XR_GITHASH_L), chip.ConfigNumber())

	engine, err := NewDrawEngine(port, cfg.Engine)
	if err != nil {
		return err
	}
	if err := engine.Init(); err != nil {
		return err
	}

	if cfg.MonitorAddr != "" {
		monitor := NewMonitorServer(chip)
		if err := monitor.Start(cfg.MonitorAddr); err != nil {
			return err
		}
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), time.Second)
			defer done()
			_ = monitor.Shutdown(shutdownCtx)
		}()
	}
	if cfg.StatsAddr != "" {
		if statsViewAvailable() {
			launchStatsView(cfg.StatsAddr, out)
		} else {
			fmt.Fprintln(out, "stats: not available in this build (use -tags statsview)")
		}
	}

	loader := ModelLoader{Dir: cfg.ModelDir}
	var transform TransformBackend = FloatBackend{}
	if cfg.Engine.FixedPoint {
		transform = FixedBackend{}
	}

	if cfg.Script != "" {
		runtimeStatus.setEngine(transform.Name(), "", cfg.Script)
		host := NewScriptHost(engine, loader, out)
		defer host.Close()
		fmt.Fprintf(out, "script: running %s\n", cfg.Script)
		return host.RunFile(ctx, cfg.Script)
	}

	model, err := loader.LoadModel(cfg.Model)
	if err != nil {
		return err
	}
	runtimeStatus.setEngine(transform.Name(), model.Name, "")
	demo := NewDemo(engine, cfg.Demo, NewCubeModel(), model)
	demo.OnPhase = func(phase string) {
		runtimeStatus.setPhase(phase)
		if cfg.Trace {
			fmt.Fprintf(out, "demo: %s\n", phase)
		}
	}
	err = demo.Run(ctx)
	reads, writes := port.Stats()
	fmt.Fprintf(out, "xosera: %d frames, %d flips, %d reads, %d writes\n",
		chip.FrameCount(), engine.Swap().Flips(), reads, writes)
	return err
}

func parseUint16Flag(value string) (uint16, error) {
	parsed, err := strconv.ParseUint(value, 0, 16)
	if err != nil {
		return 0, err
	}
	if parsed > 0xFFFF {
		return 0, fmt.Errorf("value out of range: 0x%X", parsed)
	}
	return uint16(parsed), nil
}
