// draw_text.go - Bitmap text drawn into the canvas with tinyfont

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
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// canvasDisplay lets tinyfont draw into a Canvas. The palette index travels
// in the red channel of the color passed to SetPixel.
type canvasDisplay struct {
	canvas *Canvas
}

var _ drivers.Displayer = (*canvasDisplay)(nil)

func (d *canvasDisplay) Size() (x, y int16) {
	w, h := d.canvas.Size()
	return int16(w), int16(h)
}

func (d *canvasDisplay) SetPixel(x, y int16, c color.RGBA) {
	if !d.canvas.inside(int(x), int(y)) {
		return
	}
	d.canvas.plot(int(x), int(y), c.R)
}

func (d *canvasDisplay) Display() error {
	d.canvas.port.SetWriteMask(WRMASK_ALL)
	return nil
}

// DrawText draws a line of text with its baseline at y using the TomThumb font
func (e *DrawEngine) DrawText(x, y int, text string, colorIndex uint8) {
	d := &canvasDisplay{canvas: e.canvas}
	tinyfont.WriteLine(d, &tinyfont.TomThumb, int16(x), int16(y), text, color.RGBA{R: colorIndex, A: 0xFF})
	_ = d.Display()
}

// TextWidth returns the width in pixels of text in the canvas font
func TextWidth(text string) int {
	_, w := tinyfont.LineWidth(&tinyfont.TomThumb, text)
	return int(w)
}
