// draw_context.go - Draw engine context for Xosera Draw

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

/*
draw_context.go - Draw Engine Context

The DrawEngine owns the state of one draw session:
- the 256 entry palette and its current brightness
- the two framebuffers, the draw target and the visible buffer
- the copper program that flips buffers at vertical blank
- the text console cursor
- the numeric backend used by the transform pipeline

Every drawing call goes through the engine's XMPort, so all device access is
serialised on the calling goroutine.
*/

package main

import (
	"fmt"
)

const (
	DEFAULT_SCREEN_WIDTH  = 320
	DEFAULT_SCREEN_HEIGHT = 200
	DEFAULT_VSYNC_TIMEOUT = 100 // ms of device time
	BUFFER_A_ADDR         = 0x0000
	BUFFER_B_ADDR         = 0x8000
	BUFFER_MAX_WORDS      = 0x8000
	DRAW_BPP              = 8
	PIXELS_PER_WORD       = 2
	DISPLAY_TOP_LINE      = 40
	DISPLAY_BOTTOM_LINE   = 440
	DEFAULT_WIRE_COLOR    = 255
	DEFAULT_BACKGROUND    = 0
	TEXT_COLUMNS_2X       = VID_HSIZE / 2 / 8
)

// EngineConfig controls the draw engine
type EngineConfig struct {
	Width          int     // Canvas width in pixels
	Height         int     // Canvas height in pixels
	Background     uint8   // Color index used by Clear
	DoubleBuffer   bool    // Draw into a hidden buffer and flip at vblank
	FadeSteps      int     // Palette pushes per fade
	FadeDelayMs    int     // Device time between fade pushes
	VSyncTimeoutMs int     // Bound on a vsync wait
	WireColor      uint8   // Color index for wireframe edges
	CullBackFaces  bool    // Skip faces pointing away from the camera
	FixedPoint     bool    // Use the 16.16 transform backend
	FOV            float64 // Projection field of view in degrees
}

// DefaultEngineConfig returns the 320x200 double buffered demo setup
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Width:          DEFAULT_SCREEN_WIDTH,
		Height:         DEFAULT_SCREEN_HEIGHT,
		Background:     DEFAULT_BACKGROUND,
		DoubleBuffer:   true,
		FadeSteps:      DEFAULT_FADE_STEPS,
		FadeDelayMs:    DEFAULT_FADE_DELAY_MS,
		VSyncTimeoutMs: DEFAULT_VSYNC_TIMEOUT,
		WireColor:      DEFAULT_WIRE_COLOR,
		FOV:            60,
	}
}

// DrawEngine is the context shared by the palette, rasterizer, swap
// controller, console and model renderer.
type DrawEngine struct {
	port *XMPort
	cfg  EngineConfig

	palette    Palette
	brightness float64

	canvas    *Canvas
	swap      *SwapController
	console   *TextConsole
	transform TransformBackend
}

// NewDrawEngine creates an engine on top of an XMPort
func NewDrawEngine(port *XMPort, cfg EngineConfig) (*DrawEngine, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width%PIXELS_PER_WORD != 0 {
		return nil, fmt.Errorf("xosera: invalid canvas size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Width*cfg.Height/PIXELS_PER_WORD > BUFFER_MAX_WORDS {
		return nil, fmt.Errorf("xosera: canvas %dx%d does not fit a %d word buffer", cfg.Width, cfg.Height, BUFFER_MAX_WORDS)
	}
	if cfg.FadeSteps <= 0 {
		cfg.FadeSteps = DEFAULT_FADE_STEPS
	}
	if cfg.VSyncTimeoutMs <= 0 {
		cfg.VSyncTimeoutMs = DEFAULT_VSYNC_TIMEOUT
	}
	if cfg.FOV <= 0 {
		cfg.FOV = 60
	}

	e := &DrawEngine{
		port:    port,
		cfg:     cfg,
		palette: BuildRainbowPalette(),
	}
	e.canvas = newCanvas(port, cfg.Width, cfg.Height, BUFFER_A_ADDR)
	e.swap = newSwapController(e)
	e.console = newTextConsole(port)
	if cfg.FixedPoint {
		e.transform = FixedBackend{}
	} else {
		e.transform = FloatBackend{}
	}
	return e, nil
}

// Init programs the bitmap geometry and loads the buffer swap copper list
func (e *DrawEngine) Init() error {
	e.port.XRSet(XR_VID_CTRL, 0x0000)
	e.port.XRSet(XR_PA_DISP_ADDR, BUFFER_A_ADDR)
	e.port.XRSet(XR_PA_LINE_ADDR, BUFFER_A_ADDR)
	e.port.XRSet(XR_PA_LINE_LEN, uint16(e.cfg.Width/PIXELS_PER_WORD))
	return e.swap.Init()
}

// Port returns the register port the engine drives
func (e *DrawEngine) Port() *XMPort {
	return e.port
}

// Config returns the engine configuration
func (e *DrawEngine) Config() EngineConfig {
	return e.cfg
}

// Canvas returns the rasterizer bound to the current draw target
func (e *DrawEngine) Canvas() *Canvas {
	return e.canvas
}

// Swap returns the frame/swap controller
func (e *DrawEngine) Swap() *SwapController {
	return e.swap
}

// Console returns the text console
func (e *DrawEngine) Console() *TextConsole {
	return e.console
}

// Brightness returns the scale of the last palette push
func (e *DrawEngine) Brightness() float64 {
	return e.brightness
}

// Size returns the canvas size in pixels
func (e *DrawEngine) Size() (int, int) {
	return e.cfg.Width, e.cfg.Height
}

// SetTransformBackend selects the numeric backend for the transform pipeline
func (e *DrawEngine) SetTransformBackend(b TransformBackend) {
	e.transform = b
}

// EnableCopper starts or stops the copper
func (e *DrawEngine) EnableCopper(on bool) {
	if on {
		e.port.XRSet(XR_COPP_CTRL, COPP_CTRL_ENABLE)
	} else {
		e.port.XRSet(XR_COPP_CTRL, 0x0000)
	}
}

// TextMode switches playfield A to 2x tiled text, one screen wide
func (e *DrawEngine) TextMode() {
	e.port.XRSet(XR_PA_GFX_CTRL, GFX_TEXT_2X)
	e.port.XRSet(XR_PA_LINE_LEN, TEXT_COLUMNS_2X)
}
