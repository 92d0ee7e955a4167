// color_palette.go - HSV conversion, palette generation and fades for Xosera Draw

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
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	PALETTE_SIZE        = 256
	PALETTE_FIXED       = 16 // entries 0-15 always come from defaultColors
	PALETTE_CHANNEL_MAX = 15

	DEFAULT_FADE_STEPS    = 6
	DEFAULT_FADE_DELAY_MS = 17 // one 60 Hz frame
)

// Palette holds 256 entries of 4-bit R, G, B
type Palette [PALETTE_SIZE][3]uint8

// defaultColors is the fixed reference set for entries 0-15 (0x0RGB)
var defaultColors = [PALETTE_FIXED]uint16{
	0x0000, // black
	0x000A, // blue
	0x00A0, // green
	0x00AA, // cyan
	0x0A00, // red
	0x0A0A, // magenta
	0x0AA0, // brown
	0x0AAA, // light gray
	0x0555, // dark gray
	0x055F, // light blue
	0x05F5, // light green
	0x05FF, // light cyan
	0x0F55, // light red
	0x0F5F, // light magenta
	0x0FF5, // yellow
	0x0FFF, // white
}

// HSVToRGB converts hue in degrees and saturation/value in [0,1] to RGB in [0,1]
func HSVToRGB(h, s, v float64) (r, g, b float64) {
	if s <= 0 {
		return v, v, v
	}

	hh := math.Mod(h, 360)
	if hh < 0 {
		hh += 360
	}
	if hh >= 360 {
		hh = 0
	}
	hh /= 60
	i := int(hh)
	ff := hh - float64(i)
	p := v * (1 - s)
	q := v * (1 - s*ff)
	t := v * (1 - s*(1-ff))

	switch i {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

func (p *Palette) setWord(i int, rgb uint16) {
	p[i] = [3]uint8{uint8(rgb>>8&0xF), uint8(rgb>>4&0xF), uint8(rgb&0xF)}
}

// BuildRainbowPalette returns the reference colors followed by a hue sweep.
// Entry i has hue i*360/256 at full saturation and value.
func BuildRainbowPalette() Palette {
	var p Palette
	for i := 0; i < PALETTE_SIZE; i++ {
		if i < PALETTE_FIXED {
			p.setWord(i, defaultColors[i])
			continue
		}
		r, g, b := HSVToRGB(rainbowHue(i), 1, 1)
		p[i] = [3]uint8{
			uint8(PALETTE_CHANNEL_MAX * r),
			uint8(PALETTE_CHANNEL_MAX * g),
			uint8(PALETTE_CHANNEL_MAX * b),
		}
	}
	return p
}

// rainbowHue is the hue in degrees of rainbow entry i
func rainbowHue(i int) float64 {
	return float64(i) * 360 / PALETTE_SIZE
}

// BuildGrayscalePalette returns a 16 level ramp, each level repeated 16 times
func BuildGrayscalePalette() Palette {
	var p Palette
	for i := 0; i < PALETTE_SIZE; i++ {
		level := uint8(i >> 4)
		p[i] = [3]uint8{level, level, level}
	}
	return p
}

// Words returns the palette scaled by scale as 0x0RGB color words.
// scale is clamped to [0,1]; channels are truncated.
func (p *Palette) Words(scale float64) []uint16 {
	scale = math.Max(0, math.Min(1, scale))
	words := make([]uint16, PALETTE_SIZE)
	for i, c := range p {
		r := uint16(float64(c[0]) * scale)
		g := uint16(float64(c[1]) * scale)
		b := uint16(float64(c[2]) * scale)
		words[i] = r<<8 | g<<4 | b
	}
	return words
}

// WritePalette streams a scaled palette into the color table through xr
func WritePalette(xr IndirectRegisterPort, p *Palette, scale float64) {
	xr.Seek(XR_COLOR_ADDR)
	xr.WriteAutoIncrement(p.Words(scale))
}

// fadeScales returns the linear ramp of scales for a fade of n pushes
func fadeScales(from, to float64, n int) []float64 {
	if n < 2 {
		return []float64{to}
	}
	tween := gween.New(float32(from), float32(to), float32(n-1), ease.Linear)
	scales := make([]float64, n)
	for i := range scales {
		v, _ := tween.Set(float32(i))
		scales[i] = float64(v)
	}
	return scales
}

// -----------------------------------------------------------------------------
// Engine palette operations
// -----------------------------------------------------------------------------

// SetPalette replaces the engine palette without touching the hardware
func (e *DrawEngine) SetPalette(p Palette) {
	e.palette = p
}

// Palette returns a copy of the engine palette
func (e *DrawEngine) Palette() Palette {
	return e.palette
}

// PushPalette writes the engine palette scaled by scale to the color table
func (e *DrawEngine) PushPalette(scale float64) {
	WritePalette(e.port.XR(), &e.palette, scale)
	e.brightness = math.Max(0, math.Min(1, scale))
}

// Fade pushes the palette FadeSteps times along a linear ramp, waiting
// FadeDelayMs of device time between pushes.
func (e *DrawEngine) Fade(from, to float64) error {
	scales := fadeScales(from, to, e.cfg.FadeSteps)
	for i, scale := range scales {
		if i > 0 {
			if err := e.port.Delay(e.cfg.FadeDelayMs); err != nil {
				return err
			}
		}
		e.PushPalette(scale)
	}
	return nil
}

// FadeIn ramps the palette from black to full brightness
func (e *DrawEngine) FadeIn() error {
	return e.Fade(0, 1)
}

// FadeOut ramps the palette from full brightness to black
func (e *DrawEngine) FadeOut() error {
	return e.Fade(1, 0)
}
