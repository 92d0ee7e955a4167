package main

import (
	"math"
	"testing"
)

func assertWriteMaskRestored(t *testing.T, r *drawTestRig) {
	t.Helper()
	if got := r.port.ReadRegister(XM_SYS_CTRL) & SYS_CTRL_WRMASK; got != WRMASK_ALL {
		t.Fatalf("expected write mask 0x%X after drawing, got 0x%X", WRMASK_ALL, got)
	}
}

// litPixels returns the coordinates with a non-zero color inside w x h
func litPixels(r *drawTestRig, w, h int) map[[2]int]uint8 {
	lit := make(map[[2]int]uint8)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c := r.drawPixel(x, y); c != 0 {
				lit[[2]int{x, y}] = c
			}
		}
	}
	return lit
}

func TestCanvas_SetPixelPacksTwoPixelsPerWord(t *testing.T) {
	r := newDrawTestRig(t)
	c := r.engine.Canvas()
	c.SetPixel(10, 5, 0x12)
	c.SetPixel(11, 5, 0x34)

	addr := BUFFER_B_ADDR + uint16(5*DEFAULT_SCREEN_WIDTH/2+5)
	if got := r.chip.PeekVRAM(addr); got != 0x1234 {
		t.Fatalf("expected word 0x1234, got 0x%04X", got)
	}
	if got := c.ReadPixel(11, 5); got != 0x34 {
		t.Fatalf("expected pixel 0x34, got 0x%02X", got)
	}
	assertWriteMaskRestored(t, r)
}

func TestCanvas_SetPixelOutsideIsDropped(t *testing.T) {
	r := newDrawTestRig(t)
	c := r.engine.Canvas()
	_, before := r.port.Stats()
	c.SetPixel(-1, 0, 9)
	c.SetPixel(0, -1, 9)
	c.SetPixel(DEFAULT_SCREEN_WIDTH, 0, 9)
	c.SetPixel(0, DEFAULT_SCREEN_HEIGHT, 9)
	if _, after := r.port.Stats(); after != before {
		t.Fatalf("expected no writes for outside pixels, got %d", after-before)
	}
	if got := c.ReadPixel(-1, -1); got != 0 {
		t.Fatalf("expected outside read 0, got %d", got)
	}
}

func TestCanvas_ClearFillsBuffer(t *testing.T) {
	r := newDrawTestRig(t)
	r.engine.Canvas().Clear(7)
	for _, p := range [][2]int{{0, 0}, {DEFAULT_SCREEN_WIDTH - 1, DEFAULT_SCREEN_HEIGHT - 1}, {123, 45}} {
		if got := r.drawPixel(p[0], p[1]); got != 7 {
			t.Fatalf("expected 7 at %v, got %d", p, got)
		}
	}
	if got := r.pixelAt(BUFFER_A_ADDR, 0, 0); got != 0 {
		t.Fatalf("expected visible buffer untouched, got %d", got)
	}
}

func TestCanvas_HorizontalLineEndpoints(t *testing.T) {
	r := newDrawTestRig(t)
	r.engine.Canvas().DrawLine(5, 10, 9, 10, 3)
	for x := 5; x <= 9; x++ {
		if got := r.drawPixel(x, 10); got != 3 {
			t.Fatalf("expected pixel (%d,10) set, got %d", x, got)
		}
	}
	if r.drawPixel(4, 10) != 0 || r.drawPixel(10, 10) != 0 {
		t.Fatal("expected line to stop at its endpoints")
	}
	assertWriteMaskRestored(t, r)
}

func TestCanvas_LineReverseCoversSamePixels(t *testing.T) {
	r := newDrawTestRig(t)
	c := r.engine.Canvas()

	c.DrawLine(3, 4, 40, 17, 7)
	forward := litPixels(r, 48, 24)
	c.Clear(0)
	c.DrawLine(40, 17, 3, 4, 7)
	reverse := litPixels(r, 48, 24)

	if len(forward) != len(reverse) {
		t.Fatalf("expected %d pixels both ways, got %d reversed", len(forward), len(reverse))
	}
	for p := range forward {
		if _, ok := reverse[p]; !ok {
			t.Fatalf("pixel %v missing from reversed line", p)
		}
	}
	if _, ok := forward[[2]int{3, 4}]; !ok {
		t.Fatal("expected start point lit")
	}
	if _, ok := forward[[2]int{40, 17}]; !ok {
		t.Fatal("expected end point lit")
	}
}

func TestCanvas_LineClipsPerPixel(t *testing.T) {
	r := newDrawTestRig(t)
	r.engine.Canvas().DrawLine(-10, 0, 10, 0, 2)
	for x := 0; x <= 10; x++ {
		if got := r.drawPixel(x, 0); got != 2 {
			t.Fatalf("expected pixel (%d,0) set, got %d", x, got)
		}
	}
	if got := r.drawPixel(11, 0); got != 0 {
		t.Fatalf("expected pixel (11,0) clear, got %d", got)
	}
}

func TestCanvas_RectangleOddEdges(t *testing.T) {
	r := newDrawTestRig(t)
	r.engine.Canvas().DrawFilledRectangle(6, 1, 3, 2, 2)
	for y := 1; y <= 2; y++ {
		for x := 3; x <= 6; x++ {
			if got := r.drawPixel(x, y); got != 2 {
				t.Fatalf("expected pixel (%d,%d) set, got %d", x, y, got)
			}
		}
		if r.drawPixel(2, y) != 0 || r.drawPixel(7, y) != 0 {
			t.Fatalf("expected neighbours of row %d untouched", y)
		}
	}
	assertWriteMaskRestored(t, r)
}

func TestCanvas_RectangleClipsToCanvas(t *testing.T) {
	r := newDrawTestRig(t)
	r.engine.Canvas().DrawFilledRectangle(-5, -5, 4, 3, 9)
	if got := r.drawPixel(0, 0); got != 9 {
		t.Fatalf("expected (0,0) set, got %d", got)
	}
	if got := r.drawPixel(4, 3); got != 9 {
		t.Fatalf("expected (4,3) set, got %d", got)
	}
	if r.drawPixel(5, 0) != 0 || r.drawPixel(0, 4) != 0 {
		t.Fatal("expected fill to stop at the far corner")
	}
}

func TestCanvas_RectangleHugeCoordinates(t *testing.T) {
	r := newDrawTestRig(t)
	r.engine.Canvas().DrawFilledRectangle(-1e12, -1e12, 1e12, 1e12, 4)
	if got := r.drawPixel(DEFAULT_SCREEN_WIDTH-1, DEFAULT_SCREEN_HEIGHT-1); got != 4 {
		t.Fatalf("expected whole canvas filled, got %d at bottom right", got)
	}
}

func TestCanvas_TriangleFill(t *testing.T) {
	r := newDrawTestRig(t)
	r.engine.Canvas().DrawFilledTriangle(10, 10, 30, 10, 10, 30, 4)

	for _, p := range [][2]int{{10, 10}, {30, 10}, {10, 30}, {12, 12}, {20, 20}} {
		if got := r.drawPixel(p[0], p[1]); got != 4 {
			t.Fatalf("expected %v inside triangle, got %d", p, got)
		}
	}
	for _, p := range [][2]int{{21, 20}, {29, 29}, {9, 20}, {10, 31}} {
		if got := r.drawPixel(p[0], p[1]); got != 0 {
			t.Fatalf("expected %v outside triangle, got %d", p, got)
		}
	}
	assertWriteMaskRestored(t, r)
}

func TestCanvas_DegenerateTriangleIsSpan(t *testing.T) {
	r := newDrawTestRig(t)
	r.engine.Canvas().DrawFilledTriangle(5, 50, 15, 50, 9, 50, 6)
	for x := 5; x <= 15; x++ {
		if got := r.drawPixel(x, 50); got != 6 {
			t.Fatalf("expected (%d,50) set, got %d", x, got)
		}
	}
	if r.drawPixel(4, 50) != 0 || r.drawPixel(16, 50) != 0 || r.drawPixel(10, 49) != 0 {
		t.Fatal("expected only the span to be drawn")
	}
}

func TestCanvas_NaNCoordinatesDoNotPanic(t *testing.T) {
	r := newDrawTestRig(t)
	c := r.engine.Canvas()
	nan := math.NaN()
	c.DrawLine(nan, 0, 10, 10, 1)
	c.DrawFilledRectangle(nan, nan, 5, 5, 1)
	c.DrawFilledTriangle(nan, 0, 10, nan, 20, 20, 1)
	c.DrawFilledTriangle(math.Inf(1), 0, 10, 10, math.Inf(-1), 20, 1)
	assertWriteMaskRestored(t, r)
}

func TestCanvas_LineFarEndpointKeepsSlope(t *testing.T) {
	r := newDrawTestRig(t)
	r.engine.Canvas().DrawLine(0, 0, 100000, 50000, 7)
	for _, p := range [][2]int{{0, 0}, {100, 50}, {200, 100}} {
		if got := r.drawPixel(p[0], p[1]); got != 7 {
			t.Fatalf("expected %v on the line, got %d", p, got)
		}
	}
	if got := r.drawPixel(100, 100); got != 0 {
		t.Fatalf("expected (100,100) off the line, got %d", got)
	}
	assertWriteMaskRestored(t, r)
}

func TestCanvas_LineFarStartClipsAlongLine(t *testing.T) {
	r := newDrawTestRig(t)
	r.engine.Canvas().DrawLine(-99990, -49995, 10, 5, 3)
	for _, p := range [][2]int{{0, 0}, {4, 2}, {10, 5}} {
		if got := r.drawPixel(p[0], p[1]); got != 3 {
			t.Fatalf("expected %v on the line, got %d", p, got)
		}
	}
	if got := r.drawPixel(0, 5); got != 0 {
		t.Fatalf("expected (0,5) off the line, got %d", got)
	}
}

func TestCanvas_LineOutsideCanvasDrawsNothing(t *testing.T) {
	r := newDrawTestRig(t)
	r.engine.Canvas().DrawLine(-50, -10, 400, -10, 5)
	if lit := litPixels(r, DEFAULT_SCREEN_WIDTH, 2); len(lit) != 0 {
		t.Fatalf("expected no pixels, got %d", len(lit))
	}
}

func TestCanvas_TriangleFarVertexKeepsEdges(t *testing.T) {
	r := newDrawTestRig(t)
	r.engine.Canvas().DrawFilledTriangle(0, 0, 0, 100, 100000, 50000, 9)
	for _, p := range [][2]int{{80, 50}, {100, 50}, {250, 199}} {
		if got := r.drawPixel(p[0], p[1]); got != 9 {
			t.Fatalf("expected %v inside triangle, got %d", p, got)
		}
	}
	for _, p := range [][2]int{{101, 50}, {150, 199}} {
		if got := r.drawPixel(p[0], p[1]); got != 0 {
			t.Fatalf("expected %v outside triangle, got %d", p, got)
		}
	}
	assertWriteMaskRestored(t, r)
}

func TestClampPixel(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{1.4, 1},
		{1.5, 2},
		{-0.6, -1},
		{-1.5, -1},
		{319.4, 319},
		{1e20, 320},
		{-1e20, -1},
		{math.Inf(1), 320},
	}
	for _, tc := range cases {
		if got := clampPixel(tc.in, 320); got != tc.want {
			t.Fatalf("clampPixel(%v): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}
