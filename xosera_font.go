// xosera_font.go - Default 8x16 tile font for the Xosera text mode

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
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	TILE_FONT_WIDTH  = 8
	TILE_FONT_HEIGHT = 16
	TILE_FONT_WORDS  = TILE_FONT_HEIGHT / 2 // two glyph rows per tile word
	TILE_FONT_CHARS  = 256
	TILE_FONT_BASE   = 12 // baseline row inside the cell
)

// tileFont8x16 is the power-on content of tile memory: 256 glyphs of 8x16,
// rasterized from the x/image 7x13 face.
var tileFont8x16 = buildTileFont()

func buildTileFont() [XR_TILE_SIZE]uint16 {
	var tiles [XR_TILE_SIZE]uint16
	cell := image.NewAlpha(image.Rect(0, 0, TILE_FONT_WIDTH, TILE_FONT_HEIGHT))
	drawer := &font.Drawer{
		Dst:  cell,
		Src:  image.Opaque,
		Face: basicfont.Face7x13,
	}

	for ch := 0; ch < TILE_FONT_CHARS; ch++ {
		draw.Draw(cell, cell.Bounds(), image.Transparent, image.Point{}, draw.Src)
		if ch >= 0x20 && ch != 0x7F {
			drawer.Dot = fixed.P(0, TILE_FONT_BASE)
			drawer.DrawString(string(rune(ch)))
		}

		for y := 0; y < TILE_FONT_HEIGHT; y++ {
			var bits uint16
			for x := 0; x < TILE_FONT_WIDTH; x++ {
				if cell.AlphaAt(x, y).A >= 0x80 {
					bits |= 0x80 >> x
				}
			}
			idx := ch*TILE_FONT_WORDS + y/2
			if y&1 == 0 {
				tiles[idx] |= bits << 8
			} else {
				tiles[idx] |= bits
			}
		}
	}
	return tiles
}
