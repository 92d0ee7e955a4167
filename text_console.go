// text_console.go - Tile mode text console for Xosera Draw

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
	"fmt"
)

const (
	DEFAULT_TEXT_COLOR = 0x02 // dark green on black
)

// TextConsole prints into playfield A while it is in tiled text mode.
// Each VRAM word holds the attribute in the high byte and the character in
// the low byte; the cursor wraps at the line length read from PA_LINE_LEN.
type TextConsole struct {
	port *XMPort

	screenAddr uint16
	columns    int
	rows       int
	h          int
	v          int
	color      uint8
}

func newTextConsole(port *XMPort) *TextConsole {
	return &TextConsole{port: port, color: DEFAULT_TEXT_COLOR, columns: 1, rows: 1}
}

// readSettings derives the text grid from the current playfield registers
func (t *TextConsole) readSettings() {
	vRepeat := int(t.port.XRGet(XR_PA_GFX_CTRL)&GFX_CTRL_V_MASK) + 1
	tileHeight := int(t.port.XRGet(XR_PA_TILE_CTRL)&0xF) + 1
	t.screenAddr = t.port.XRGet(XR_PA_DISP_ADDR)
	t.columns = max(int(t.port.XRGet(XR_PA_LINE_LEN)), 1)
	t.rows = max((int(t.port.XRGet(XR_VID_VSIZE))/vRepeat+tileHeight-1)/tileHeight, 1)
}

// Home re-reads the text grid and moves the cursor to the top left
func (t *TextConsole) Home() {
	t.readSettings()
	t.Pos(0, 0)
}

// Pos moves the cursor
func (t *TextConsole) Pos(h, v int) {
	t.h, t.v = h, v
}

// Cursor returns the cursor column and row
func (t *TextConsole) Cursor() (int, int) {
	return t.h, t.v
}

// Grid returns the text columns and rows
func (t *TextConsole) Grid() (int, int) {
	return t.columns, t.rows
}

// SetColor sets the attribute byte (background high nibble, foreground low)
func (t *TextConsole) SetColor(color uint8) {
	t.color = color
}

func (t *TextConsole) cell(ch byte) uint16 {
	return uint16(t.color)<<8 | uint16(ch)
}

func (t *TextConsole) cursorAddr() uint16 {
	return t.screenAddr + uint16(t.v*t.columns+t.h)
}

// Cls fills the text grid with spaces in the current color and homes the cursor
func (t *TextConsole) Cls() {
	t.Home()
	t.port.SetWriteMask(WRMASK_ALL)
	vram := t.port.VRAM()
	vram.SeekWrite(t.screenAddr)
	vram.Fill(t.cell(' '), t.columns*t.rows)
	vram.SeekWrite(t.screenAddr)
}

// Print writes text at the cursor. \r returns to column 0, \n moves down a
// row (sticking at the last row), \b moves back with wrap, \f clears.
func (t *TextConsole) Print(text string) {
	vram := t.port.VRAM()
	t.port.SetWriteMask(WRMASK_ALL)
	t.port.SetWriteIncrement(1)
	vram.SeekWrite(t.cursorAddr())

	for _, r := range text {
		if r >= ' ' {
			ch := byte('?')
			if r <= 0xFF {
				ch = byte(r)
			}
			vram.Write(t.cell(ch))
			t.h++
			if t.h >= t.columns {
				t.h = 0
				t.v++
				if t.v >= t.rows {
					t.v = 0
				}
				vram.SeekWrite(t.cursorAddr())
			}
			continue
		}

		switch r {
		case '\r':
			t.h = 0
			vram.SeekWrite(t.cursorAddr())
		case '\n':
			t.h = 0
			if t.v++; t.v >= t.rows {
				t.v = t.rows - 1
			}
			vram.SeekWrite(t.cursorAddr())
		case '\b':
			if t.h--; t.h < 0 {
				t.h = t.columns - 1
				if t.v--; t.v < 0 {
					t.v = 0
				}
			}
			vram.SeekWrite(t.cursorAddr())
		case '\f':
			t.Cls()
			t.port.SetWriteIncrement(1)
		}
	}
}

// Printf formats and prints
func (t *TextConsole) Printf(format string, args ...any) {
	t.Print(fmt.Sprintf(format, args...))
}
