package main

import (
	"testing"
)

func TestDrawText_UsesColorIndex(t *testing.T) {
	r := newDrawTestRig(t)
	r.engine.DrawText(10, 20, "A", 9)

	lit := 0
	for y := 10; y <= 22; y++ {
		for x := 8; x <= 20; x++ {
			switch c := r.drawPixel(x, y); c {
			case 0:
			case 9:
				lit++
			default:
				t.Fatalf("unexpected color %d at (%d,%d)", c, x, y)
			}
		}
	}
	if lit == 0 {
		t.Fatal("expected glyph pixels near the baseline")
	}
	assertWriteMaskRestored(t, r)
}

func TestDrawText_ClipsAtEdges(t *testing.T) {
	r := newDrawTestRig(t)
	r.engine.DrawText(-3, 2, "WWW", 4)
	r.engine.DrawText(DEFAULT_SCREEN_WIDTH-2, DEFAULT_SCREEN_HEIGHT+3, "WWW", 4)
	assertWriteMaskRestored(t, r)
}

func TestTextWidth_GrowsWithText(t *testing.T) {
	if TextWidth("") != 0 {
		t.Fatalf("expected empty width 0, got %d", TextWidth(""))
	}
	one, two := TextWidth("AB"), TextWidth("ABCD")
	if one <= 0 || two <= one {
		t.Fatalf("expected widths to grow, got %d and %d", one, two)
	}
}
