// draw_raster.go - Software rasterizer into Xosera VRAM

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
)

const (
	WRMASK_ALL   = 0xF // both pixels of a word
	WRMASK_LEFT  = 0xC // high byte, even x
	WRMASK_RIGHT = 0x3 // low byte, odd x
)

// Canvas rasterizes 8-bpp primitives into one VRAM framebuffer.
// Pixels outside the canvas are dropped, never reported.
type Canvas struct {
	port      *XMPort
	vram      *VRAMWindow
	width     int
	height    int
	lineWords int
	base      uint16
}

func newCanvas(port *XMPort, width, height int, base uint16) *Canvas {
	return &Canvas{
		port:      port,
		vram:      port.VRAM(),
		width:     width,
		height:    height,
		lineWords: width / PIXELS_PER_WORD,
		base:      base,
	}
}

// SetBase selects the framebuffer the canvas draws into
func (c *Canvas) SetBase(addr uint16) {
	c.base = addr
}

// Base returns the VRAM address of the current framebuffer
func (c *Canvas) Base() uint16 {
	return c.base
}

// Size returns the canvas dimensions
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

func (c *Canvas) wordAddr(x, y int) uint16 {
	return c.base + uint16(y*c.lineWords+x/PIXELS_PER_WORD)
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

func pixelWord(color uint8) uint16 {
	return uint16(color)<<8 | uint16(color)
}

// Clear fills the whole framebuffer with color
func (c *Canvas) Clear(color uint8) {
	c.port.SetWriteMask(WRMASK_ALL)
	c.vram.SeekWrite(c.base)
	c.vram.Fill(pixelWord(color), c.lineWords*c.height)
}

// SetPixel writes a single pixel using the nibble write mask
func (c *Canvas) SetPixel(x, y int, color uint8) {
	if !c.inside(x, y) {
		return
	}
	c.plot(x, y, color)
	c.port.SetWriteMask(WRMASK_ALL)
}

func (c *Canvas) plot(x, y int, color uint8) {
	if x&1 == 0 {
		c.port.SetWriteMask(WRMASK_LEFT)
	} else {
		c.port.SetWriteMask(WRMASK_RIGHT)
	}
	c.vram.SeekWrite(c.wordAddr(x, y))
	c.vram.Write(pixelWord(color))
}

// ReadPixel reads back a pixel through RD_ADDR/DATA; outside pixels read 0
func (c *Canvas) ReadPixel(x, y int) uint8 {
	if !c.inside(x, y) {
		return 0
	}
	c.vram.SeekRead(c.wordAddr(x, y))
	word := c.vram.Read()
	if x&1 == 0 {
		return uint8(word >> 8)
	}
	return uint8(word)
}

// clampPixel rounds v to the nearest pixel and pins it to the guard band
// one pixel outside [0, limit). Callers filter NaN first.
func clampPixel(v float64, limit int) int {
	return int(math.Max(-1, math.Min(math.Round(v), float64(limit))))
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// clipLine trims a segment to the canvas plus a one pixel guard band
// (Liang-Barsky). The trimmed ends stay on the original line; ok is false
// when nothing of the segment is left.
func (c *Canvas) clipLine(x1, y1, x2, y2 float64) (ax, ay, bx, by float64, ok bool) {
	dx, dy := x2-x1, y2-y1
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x1 + 1},
		{dx, float64(c.width) - x1},
		{-dy, y1 + 1},
		{dy, float64(c.height) - y1},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}

	ax, ay, bx, by = x1, y1, x2, y2
	if t0 > 0 {
		ax, ay = x1+t0*dx, y1+t0*dy
	}
	if t1 < 1 {
		bx, by = x1+t1*dx, y1+t1*dy
	}
	return ax, ay, bx, by, finite(ax, ay, bx, by)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// DrawLine draws a Bresenham line. The endpoints are put in a canonical
// order first so a line and its reverse cover the same pixels, and far
// endpoints are trimmed along the line before stepping.
func (c *Canvas) DrawLine(x1, y1, x2, y2 float64, color uint8) {
	if !finite(x1, y1, x2, y2) {
		return
	}
	if y2 < y1 || (y2 == y1 && x2 < x1) {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}
	fx1, fy1, fx2, fy2, ok := c.clipLine(x1, y1, x2, y2)
	if !ok {
		return
	}
	ax, ay := clampPixel(fx1, c.width), clampPixel(fy1, c.height)
	bx, by := clampPixel(fx2, c.width), clampPixel(fy2, c.height)
	if by < ay || (by == ay && bx < ax) {
		ax, ay, bx, by = bx, by, ax, ay
	}

	dx := absInt(bx - ax)
	dy := -absInt(by - ay)
	sx, sy := 1, 1
	if bx < ax {
		sx = -1
	}
	if by < ay {
		sy = -1
	}

	err := dx + dy
	for {
		if c.inside(ax, ay) {
			c.plot(ax, ay, color)
		}
		if ax == bx && ay == by {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ax += sx
		}
		if e2 <= dx {
			err += dx
			ay += sy
		}
	}
	c.port.SetWriteMask(WRMASK_ALL)
}

// hspan fills x0..x1 inclusive on row y; x0 <= x1
func (c *Canvas) hspan(x0, x1, y int, color uint8) {
	if y < 0 || y >= c.height || x1 < 0 || x0 >= c.width {
		return
	}
	x0 = max(x0, 0)
	x1 = min(x1, c.width-1)

	if x0&1 != 0 {
		c.plot(x0, y, color)
		x0++
	}
	if x1 >= x0 && x1&1 == 0 {
		c.plot(x1, y, color)
		x1--
	}
	if x1 > x0 {
		c.port.SetWriteMask(WRMASK_ALL)
		c.vram.SeekWrite(c.wordAddr(x0, y))
		c.vram.Fill(pixelWord(color), (x1-x0+1)/PIXELS_PER_WORD)
	}
}

// DrawFilledRectangle fills the closed rectangle spanned by two corners
func (c *Canvas) DrawFilledRectangle(x0, y0, x1, y1 float64, color uint8) {
	if math.IsNaN(x0) || math.IsNaN(y0) || math.IsNaN(x1) || math.IsNaN(y1) {
		return
	}
	ax, ay := clampPixel(x0, c.width), clampPixel(y0, c.height)
	bx, by := clampPixel(x1, c.width), clampPixel(y1, c.height)
	if bx < ax {
		ax, bx = bx, ax
	}
	if by < ay {
		ay, by = by, ay
	}

	ay = max(ay, 0)
	by = min(by, c.height-1)
	for y := ay; y <= by; y++ {
		c.hspan(ax, bx, y, color)
	}
	c.port.SetWriteMask(WRMASK_ALL)
}

// DrawFilledTriangle fills a triangle scanline by scanline, interpolating the
// long edge against the two short edges. Spans include both end pixels.
// Edges are evaluated in float so far-off vertices keep their slopes.
func (c *Canvas) DrawFilledTriangle(x1, y1, x2, y2, x3, y3 float64, color uint8) {
	if !finite(x1, y1, x2, y2, x3, y3) {
		return
	}
	type vertex struct{ x, y float64 }
	v := [3]vertex{
		{math.Round(x1), math.Round(y1)},
		{math.Round(x2), math.Round(y2)},
		{math.Round(x3), math.Round(y3)},
	}
	if v[1].y < v[0].y {
		v[0], v[1] = v[1], v[0]
	}
	if v[2].y < v[0].y {
		v[0], v[2] = v[2], v[0]
	}
	if v[2].y < v[1].y {
		v[1], v[2] = v[2], v[1]
	}
	a, b, t := v[0], v[1], v[2]

	top := max(a.y, 0)
	bottom := min(t.y, float64(c.height-1))
	if top > bottom {
		return
	}

	if a.y == t.y {
		lo := clampPixel(min(a.x, b.x, t.x), c.width)
		hi := clampPixel(max(a.x, b.x, t.x), c.width)
		c.hspan(lo, hi, int(a.y), color)
		c.port.SetWriteMask(WRMASK_ALL)
		return
	}

	edgeX := func(p, q vertex, y float64) int {
		if q.y == p.y {
			return clampPixel(p.x, c.width)
		}
		return clampPixel(p.x+(q.x-p.x)*(y-p.y)/(q.y-p.y), c.width)
	}

	for y := int(top); y <= int(bottom); y++ {
		fy := float64(y)
		long := edgeX(a, t, fy)
		var short int
		if fy < b.y {
			short = edgeX(a, b, fy)
		} else {
			short = edgeX(b, t, fy)
		}
		if short < long {
			c.hspan(short, long, y, color)
		} else {
			c.hspan(long, short, y, color)
		}
	}
	c.port.SetWriteMask(WRMASK_ALL)
}
