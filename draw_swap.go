// draw_swap.go - Double buffering synchronised to vertical blank

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
draw_swap.go - Frame/Swap Controller

Two framebuffers alternate between "visible" and "draw target". The copper
list loaded by Init letterboxes the 320x200 bitmap (blank above line 40 and
below line 440) and, at line 480, moves the address of the buffer to show
next into PA_DISP_ADDR. The display latches PA_DISP_ADDR at the start of
each frame.

Present arms a flip by rewriting the data word of that move in copper
memory. With vsync it then polls PA_DISP_ADDR until the copper has executed
the move, which happens inside vertical blank, so the old visible buffer is
no longer being scanned when drawing resumes into it.
*/

package main

import (
	"fmt"
)

// SwapState tracks a Present call
type SwapState int

const (
	SwapIdle       SwapState = iota // Drawing into the target buffer
	SwapArmed                       // Copper move rewritten, flip pending
	SwapPresenting                  // Waiting for the copper to execute the move
)

func (s SwapState) String() string {
	switch s {
	case SwapIdle:
		return "idle"
	case SwapArmed:
		return "armed"
	case SwapPresenting:
		return "presenting"
	}
	return fmt.Sprintf("SwapState(%d)", int(s))
}

const (
	VBLANK_LINE = VID_VSIZE
)

// SwapController owns the two framebuffers and the flip copper list
type SwapController struct {
	engine *DrawEngine
	port   *XMPort
	canvas *Canvas

	copper   CopperList
	dispMove int

	buffers [2]uint16
	visible int
	state   SwapState

	flips    uint64
	presents uint64
	polls    uint64
}

func newSwapController(e *DrawEngine) *SwapController {
	return &SwapController{
		engine:  e,
		port:    e.port,
		canvas:  e.canvas,
		buffers: [2]uint16{BUFFER_A_ADDR, BUFFER_B_ADDR},
	}
}

// BuildSwapCopperList returns the letterbox and flip display list
func BuildSwapCopperList(showAddr uint16) CopperList {
	return CopperList{
		CopWaitV(DISPLAY_TOP_LINE),
		CopMoveR(GFX_BITMAP_8BPP2X, XR_PA_GFX_CTRL),
		CopWaitV(DISPLAY_BOTTOM_LINE),
		CopMoveR(GFX_BLANK_2X, XR_PA_GFX_CTRL),
		CopWaitV(VBLANK_LINE),
		CopMoveR(showAddr, XR_PA_DISP_ADDR),
		CopEnd(),
	}
}

// Init loads the copper list, shows buffer A and enables the copper.
// Drawing goes to buffer B, or to A when double buffering is off.
func (s *SwapController) Init() error {
	s.visible = 0
	s.state = SwapIdle
	s.copper = BuildSwapCopperList(s.buffers[s.visible])
	s.dispMove = s.copper.IndexOfMove(XR_PA_DISP_ADDR)

	if err := LoadCopperList(s.port.XR(), s.copper); err != nil {
		return fmt.Errorf("xosera: swap init: %w", err)
	}
	s.port.XRSet(XR_PA_DISP_ADDR, s.buffers[s.visible])
	s.canvas.SetBase(s.DrawBuffer())
	s.engine.EnableCopper(true)
	return nil
}

// CopperList returns the display list as loaded, with the current show address
func (s *SwapController) CopperList() CopperList {
	cl := make(CopperList, len(s.copper))
	copy(cl, s.copper)
	return cl
}

// DrawBuffer returns the VRAM address drawing currently goes to
func (s *SwapController) DrawBuffer() uint16 {
	if !s.engine.cfg.DoubleBuffer {
		return s.buffers[s.visible]
	}
	return s.buffers[1-s.visible]
}

// VisibleBuffer returns the VRAM address being displayed
func (s *SwapController) VisibleBuffer() uint16 {
	return s.buffers[s.visible]
}

// State returns the swap state
func (s *SwapController) State() SwapState {
	return s.state
}

// Flips returns the number of flips confirmed by a vsync Present
func (s *SwapController) Flips() uint64 {
	return s.flips
}

// Presents returns the number of Present calls that toggled buffers
func (s *SwapController) Presents() uint64 {
	return s.presents
}

// Clear erases the draw target to the configured background
func (s *SwapController) Clear() {
	s.canvas.SetBase(s.DrawBuffer())
	s.canvas.Clear(s.engine.cfg.Background)
}

// Present makes the draw target visible. With vsync it returns once the copper
// has switched PA_DISP_ADDR during vertical blank.
func (s *SwapController) Present(vsync bool) error {
	if !s.engine.cfg.DoubleBuffer {
		if vsync {
			return s.WaitVBlank()
		}
		return nil
	}

	next := 1 - s.visible
	target := s.buffers[next]

	s.state = SwapArmed
	s.copper[s.dispMove] = CopMoveR(target, XR_PA_DISP_ADDR)
	s.port.XRSet(s.copper.DataWordAddr(s.dispMove), target)

	if vsync {
		s.state = SwapPresenting
		err := s.pollUntil("vsync", func() bool {
			return s.port.XRGet(XR_PA_DISP_ADDR) == target &&
				s.port.XRGet(XR_SCANLINE)&SCANLINE_VBLANK != 0
		})
		if err != nil {
			s.state = SwapIdle
			return err
		}
		s.flips++
	}

	s.visible = next
	s.presents++
	s.canvas.SetBase(s.DrawBuffer())
	s.state = SwapIdle
	runtimeStatus.setSwap(s.flips, s.presents)
	return nil
}

// WaitVBlank waits for the start of the next vertical blank
func (s *SwapController) WaitVBlank() error {
	inBlank := func() bool {
		return s.port.XRGet(XR_SCANLINE)&SCANLINE_VBLANK != 0
	}
	if err := s.pollUntil("vblank", func() bool { return !inBlank() }); err != nil {
		return err
	}
	return s.pollUntil("vblank", inBlank)
}

// pollUntil polls cond, bounded by VSyncTimeoutMs of TIMER time and by a
// stalled TIMER.
func (s *SwapController) pollUntil(op string, cond func() bool) error {
	limit := s.engine.cfg.VSyncTimeoutMs * TIMER_TICKS_PER_MS
	last := s.port.ReadRegister(XM_TIMER)
	elapsed, stall, polls := 0, 0, 0

	for {
		polls++
		s.polls++
		if cond() {
			return nil
		}
		now := s.port.ReadRegister(XM_TIMER)
		if now == last {
			stall++
			if stall >= s.port.StallPolls {
				return deviceUnavailable(op, polls)
			}
			continue
		}
		elapsed += int(now - last)
		last = now
		stall = 0
		if elapsed > limit {
			return deviceUnavailable(op, polls)
		}
	}
}

// -----------------------------------------------------------------------------
// Engine shortcuts
// -----------------------------------------------------------------------------

// Clear erases the draw target
func (e *DrawEngine) Clear() {
	e.swap.Clear()
}

// Present flips the draw target to the display
func (e *DrawEngine) Present(vsync bool) error {
	return e.swap.Present(vsync)
}
