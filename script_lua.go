// script_lua.go - Lua scripting harness for Xosera Draw

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
script_lua.go - Lua Script Host

Scripts drive the device and the draw engine directly. Register access:

	xm_setw(reg, value)      xm_getw(reg)
	xreg_setw(reg, value)    xreg_getw(reg)
	vram_setw(addr, value)   vram_getw(addr)

Drawing, presented through the swap copper list:

	clear()  present([vsync])  pixel(x, y, c)  line(x1, y1, x2, y2, c)
	rect(x0, y0, x1, y1, c)  triangle(x1, y1, x2, y2, x3, y3, c)
	text(x, y, str, c)  model(name, theta, [filled], [wire])

Palette and timing: palette("rainbow"|"gray"), push_palette(scale),
fade_in(), fade_out(), delay(ms), copper(on), text_mode(), cls(),
xprint(str), screen_size(), flips().

The XM and XR tables map register names to numbers (XM.SYS_CTRL,
XR.PA_GFX_CTRL, ...).
*/

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// ScriptHost runs Lua scripts against one draw engine
type ScriptHost struct {
	L      *lua.LState
	engine *DrawEngine
	loader ModelLoader
	models map[string]*Model
	out    io.Writer
}

var xrRegNames = map[string]uint16{
	"VID_CTRL":     XR_VID_CTRL,
	"COPP_CTRL":    XR_COPP_CTRL,
	"VID_LEFT":     XR_VID_LEFT,
	"VID_RIGHT":    XR_VID_RIGHT,
	"SCANLINE":     XR_SCANLINE,
	"VERSION":      XR_VERSION,
	"VID_HSIZE":    XR_VID_HSIZE,
	"VID_VSIZE":    XR_VID_VSIZE,
	"PA_GFX_CTRL":  XR_PA_GFX_CTRL,
	"PA_TILE_CTRL": XR_PA_TILE_CTRL,
	"PA_DISP_ADDR": XR_PA_DISP_ADDR,
	"PA_LINE_LEN":  XR_PA_LINE_LEN,
	"PA_LINE_ADDR": XR_PA_LINE_ADDR,
	"PB_GFX_CTRL":  XR_PB_GFX_CTRL,
	"COLOR_ADDR":   XR_COLOR_ADDR,
	"TILE_ADDR":    XR_TILE_ADDR,
	"COPPER_ADDR":  XR_COPPER_ADDR,
}

// NewScriptHost creates a Lua state with the device and draw bindings
// installed. Lua's print writes to out.
func NewScriptHost(e *DrawEngine, loader ModelLoader, out io.Writer) *ScriptHost {
	h := &ScriptHost{
		L:      lua.NewState(),
		engine: e,
		loader: loader,
		models: make(map[string]*Model),
		out:    out,
	}
	h.install()
	return h
}

// Close releases the Lua state
func (h *ScriptHost) Close() {
	h.L.Close()
}

// RunFile executes a script file; ctx cancellation stops the script
func (h *ScriptHost) RunFile(ctx context.Context, path string) error {
	h.L.SetContext(ctx)
	if err := h.L.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

// RunString executes a chunk of Lua source
func (h *ScriptHost) RunString(ctx context.Context, src string) error {
	h.L.SetContext(ctx)
	if err := h.L.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

func (h *ScriptHost) install() {
	L := h.L

	xm := L.NewTable()
	for i, name := range xmRegNames {
		L.SetField(xm, name, lua.LNumber(i))
	}
	L.SetGlobal("XM", xm)
	xr := L.NewTable()
	for name, addr := range xrRegNames {
		L.SetField(xr, name, lua.LNumber(addr))
	}
	L.SetGlobal("XR", xr)

	funcs := map[string]lua.LGFunction{
		"xm_setw":      h.xmSetw,
		"xm_getw":      h.xmGetw,
		"xreg_setw":    h.xregSetw,
		"xreg_getw":    h.xregGetw,
		"vram_setw":    h.vramSetw,
		"vram_getw":    h.vramGetw,
		"delay":        h.delay,
		"clear":        h.clear,
		"present":      h.present,
		"pixel":        h.pixel,
		"line":         h.line,
		"rect":         h.rect,
		"triangle":     h.triangle,
		"text":         h.text,
		"model":        h.model,
		"palette":      h.palette,
		"push_palette": h.pushPalette,
		"fade_in":      h.fadeIn,
		"fade_out":     h.fadeOut,
		"copper":       h.copper,
		"text_mode":    h.textMode,
		"cls":          h.cls,
		"xprint":       h.xprint,
		"screen_size":  h.screenSize,
		"flips":        h.flips,
		"print":        h.print,
	}
	for name, fn := range funcs {
		L.SetGlobal(name, L.NewFunction(fn))
	}
}

func checkWord(L *lua.LState, n int) uint16 {
	return uint16(L.CheckInt(n))
}

func checkColor(L *lua.LState, n int) uint8 {
	return uint8(L.CheckInt(n))
}

func checkFloat(L *lua.LState, n int) float64 {
	return float64(L.CheckNumber(n))
}

// raise converts a device error into a Lua error
func raise(L *lua.LState, err error) int {
	if err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (h *ScriptHost) xmSetw(L *lua.LState) int {
	reg := L.CheckInt(1)
	if reg < 0 || reg >= XM_REG_COUNT {
		L.ArgError(1, "register out of range")
	}
	h.engine.port.WriteRegister(uint8(reg), checkWord(L, 2))
	return 0
}

func (h *ScriptHost) xmGetw(L *lua.LState) int {
	reg := L.CheckInt(1)
	if reg < 0 || reg >= XM_REG_COUNT {
		L.ArgError(1, "register out of range")
	}
	L.Push(lua.LNumber(h.engine.port.ReadRegister(uint8(reg))))
	return 1
}

func (h *ScriptHost) xregSetw(L *lua.LState) int {
	h.engine.port.XRSet(checkWord(L, 1), checkWord(L, 2))
	return 0
}

func (h *ScriptHost) xregGetw(L *lua.LState) int {
	L.Push(lua.LNumber(h.engine.port.XRGet(checkWord(L, 1))))
	return 1
}

func (h *ScriptHost) vramSetw(L *lua.LState) int {
	vram := h.engine.port.VRAM()
	vram.SeekWrite(checkWord(L, 1))
	vram.Write(checkWord(L, 2))
	return 0
}

func (h *ScriptHost) vramGetw(L *lua.LState) int {
	vram := h.engine.port.VRAM()
	vram.SeekRead(checkWord(L, 1))
	L.Push(lua.LNumber(vram.Read()))
	return 1
}

func (h *ScriptHost) delay(L *lua.LState) int {
	return raise(L, h.engine.port.Delay(L.CheckInt(1)))
}

func (h *ScriptHost) clear(L *lua.LState) int {
	h.engine.Clear()
	return 0
}

func (h *ScriptHost) present(L *lua.LState) int {
	return raise(L, h.engine.Present(L.OptBool(1, true)))
}

func (h *ScriptHost) pixel(L *lua.LState) int {
	h.engine.canvas.SetPixel(L.CheckInt(1), L.CheckInt(2), checkColor(L, 3))
	return 0
}

func (h *ScriptHost) line(L *lua.LState) int {
	h.engine.canvas.DrawLine(checkFloat(L, 1), checkFloat(L, 2), checkFloat(L, 3), checkFloat(L, 4), checkColor(L, 5))
	return 0
}

func (h *ScriptHost) rect(L *lua.LState) int {
	h.engine.canvas.DrawFilledRectangle(checkFloat(L, 1), checkFloat(L, 2), checkFloat(L, 3), checkFloat(L, 4), checkColor(L, 5))
	return 0
}

func (h *ScriptHost) triangle(L *lua.LState) int {
	h.engine.canvas.DrawFilledTriangle(checkFloat(L, 1), checkFloat(L, 2), checkFloat(L, 3), checkFloat(L, 4),
		checkFloat(L, 5), checkFloat(L, 6), checkColor(L, 7))
	return 0
}

func (h *ScriptHost) text(L *lua.LState) int {
	h.engine.DrawText(L.CheckInt(1), L.CheckInt(2), L.CheckString(3), checkColor(L, 4))
	return 0
}

func (h *ScriptHost) model(L *lua.LState) int {
	name := L.CheckString(1)
	theta := checkFloat(L, 2)
	filled := L.OptBool(3, true)
	wire := L.OptBool(4, false)

	m, ok := h.models[name]
	if !ok {
		var err error
		if m, err = h.loader.LoadModel(name); err != nil {
			return raise(L, err)
		}
		h.models[name] = m
	}

	e := h.engine
	w, hgt := e.Size()
	world := Multiply(MakeRotationZ(theta), MakeRotationX(theta))
	world = Multiply(world, MakeTranslation(0, 0, MODEL_DISTANCE))
	proj := MakeProjection(float64(w), float64(hgt), e.cfg.FOV)
	e.DrawModel(float64(w), float64(hgt), Vec(0, 0, 0), m, world, proj, MakeIdentity(), filled, wire)
	return 0
}

func (h *ScriptHost) palette(L *lua.LState) int {
	switch strings.ToLower(L.OptString(1, "rainbow")) {
	case "rainbow":
		h.engine.SetPalette(BuildRainbowPalette())
	case "gray", "grey", "mono":
		h.engine.SetPalette(BuildGrayscalePalette())
	default:
		L.ArgError(1, "unknown palette")
	}
	return 0
}

func (h *ScriptHost) pushPalette(L *lua.LState) int {
	h.engine.PushPalette(float64(L.OptNumber(1, 1)))
	return 0
}

func (h *ScriptHost) fadeIn(L *lua.LState) int {
	return raise(L, h.engine.FadeIn())
}

func (h *ScriptHost) fadeOut(L *lua.LState) int {
	return raise(L, h.engine.FadeOut())
}

func (h *ScriptHost) copper(L *lua.LState) int {
	h.engine.EnableCopper(L.OptBool(1, true))
	return 0
}

func (h *ScriptHost) textMode(L *lua.LState) int {
	h.engine.TextMode()
	return 0
}

func (h *ScriptHost) cls(L *lua.LState) int {
	h.engine.console.Cls()
	return 0
}

func (h *ScriptHost) xprint(L *lua.LState) int {
	h.engine.console.Print(L.CheckString(1))
	return 0
}

func (h *ScriptHost) screenSize(L *lua.LState) int {
	w, hgt := h.engine.Size()
	L.Push(lua.LNumber(w))
	L.Push(lua.LNumber(hgt))
	return 2
}

func (h *ScriptHost) flips(L *lua.LState) int {
	L.Push(lua.LNumber(h.engine.swap.Flips()))
	return 1
}

func (h *ScriptHost) print(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	fmt.Fprintln(h.out, strings.Join(parts, "\t"))
	return 0
}
