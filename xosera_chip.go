// xosera_chip.go - Register level Xosera display coprocessor simulation

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
xosera_chip.go - Xosera Video Coprocessor Simulation

This module implements the register interface of the Xosera FPGA video
coprocessor closely enough to run the draw engine end to end on a host:
- 16 direct XM registers with auto-incrementing VRAM and XR windows
- 64K words of VRAM with the SYS_CTRL nibble write mask
- XR registers, 256 entry 0x0RGB color memory, tile memory, copper memory
- Playfield A scanout: 8/4/1-bpp bitmap and 1-bpp tiled text, H/V repeat
- 640x480 monitor timing with a beam that advances in lockstep with the CPU
- 1/10 ms TIMER derived from the pixel clock
- FPGA reconfigure through SYS_CTRL with a boot period during which the
  register handshake fails

Signal Flow:
1. CPU reads or writes an XM register (HandleRead/HandleWrite)
2. The access is charged accessCycles pixel clocks and the beam advances
3. The copper runs against the new beam position (xosera_copper.go)
4. Each finished visible scanline is rendered through color memory
5. At the end of the frame the RGBA image is handed to the VideoOutput
*/

package main

import (
	"sync"
	"time"
)

const (
	XOSERA_BOOT_MS = 80 // reconfigure time during which the chip ignores the bus
)

// XoseraChip simulates an Xosera video coprocessor behind its XM registers
type XoseraChip struct {
	mutex sync.Mutex

	// XM register state
	xrAddr  uint16
	rdIncr  uint16
	rdAddr  uint16
	wrIncr  uint16
	wrAddr  uint16
	rwIncr  uint16
	rwAddr  uint16
	sysCtrl uint16
	unused  [2]uint16

	// Memories
	vram   [VRAM_WORDS]uint16
	xr     [XR_REG_COUNT]uint16
	color  [XR_COLOR_SIZE]uint16
	tile   [XR_TILE_SIZE]uint16
	copper [XR_COPPER_SIZE]uint16

	// Beam
	cycles       uint64
	hPos         int
	vPos         int
	frameCount   uint64
	accessCycles int
	bootCycles   uint64
	configNum    int

	// Copper
	copperPC     int
	copperHalted bool

	// Playfield A scanout
	lineStart uint16
	lineCount int

	// Frame buffers (RGBA, VID_HSIZE x VID_VSIZE)
	backBuffer  []byte
	frontBuffer []byte

	output    VideoOutput
	realtime  bool
	lastPace  time.Time
	listeners []func(frame uint64)
}

// NewXoseraChip creates a chip in its power-on state
func NewXoseraChip() *XoseraChip {
	c := &XoseraChip{
		accessCycles: DEFAULT_ACCESS_CYCLES,
		backBuffer:   make([]byte, VID_HSIZE*VID_VSIZE*4),
		frontBuffer:  make([]byte, VID_HSIZE*VID_VSIZE*4),
	}
	c.resetState()
	return c
}

// resetState restores power-on register and memory contents (caller holds lock)
func (c *XoseraChip) resetState() {
	c.xrAddr, c.rdIncr, c.rdAddr = 0, 0, 0
	c.wrIncr, c.wrAddr, c.rwIncr, c.rwAddr = 0, 0, 0, 0
	c.sysCtrl = SYS_CTRL_RESET_MASK
	c.unused = [2]uint16{}
	clear(c.vram[:])
	clear(c.xr[:])
	clear(c.color[:])
	clear(c.copper[:])

	c.xr[XR_PA_GFX_CTRL] = 0x0000 // 1-bpp text, no repeat
	c.xr[XR_PA_TILE_CTRL] = 0x000F
	c.xr[XR_PA_LINE_LEN] = VID_HSIZE / 8
	c.xr[XR_PB_GFX_CTRL] = GFX_CTRL_BLANK
	c.xr[XR_VID_RIGHT] = VID_HSIZE

	copy(c.color[:len(defaultColors)], defaultColors[:])
	c.tile = tileFont8x16

	c.copperPC = 0
	c.copperHalted = true
	c.lineStart = 0
	c.lineCount = 0
}

// SetAccessCycles sets how many pixel clocks each register access consumes
func (c *XoseraChip) SetAccessCycles(n int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if n < 1 {
		n = 1
	}
	c.accessCycles = n
}

// SetRealtime paces completed frames at the monitor refresh rate
func (c *XoseraChip) SetRealtime(enabled bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.realtime = enabled
	c.lastPace = time.Now()
}

// AttachOutput sends each completed frame to a video backend
func (c *XoseraChip) AttachOutput(out VideoOutput) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.output = out
}

// AddFrameListener registers a callback invoked after each completed frame.
// Callbacks run on the CPU goroutine without the chip lock held.
func (c *XoseraChip) AddFrameListener(fn func(frame uint64)) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.listeners = append(c.listeners, fn)
}

// HandleRead handles XM register reads
func (c *XoseraChip) HandleRead(reg uint8) uint16 {
	c.mutex.Lock()
	value := c.readXM(reg & 0x0F)
	frames := c.advance(uint64(c.accessCycles))
	c.mutex.Unlock()

	c.afterFrames(frames)
	return value
}

// HandleWrite handles XM register writes
func (c *XoseraChip) HandleWrite(reg uint8, value uint16) {
	c.mutex.Lock()
	c.writeXM(reg&0x0F, value)
	frames := c.advance(uint64(c.accessCycles))
	c.mutex.Unlock()

	c.afterFrames(frames)
}

func (c *XoseraChip) readXM(reg uint8) uint16 {
	if reg == XM_TIMER {
		return c.timer()
	}
	if c.bootCycles > 0 {
		return 0
	}

	switch reg {
	case XM_XR_ADDR:
		return c.xrAddr
	case XM_XR_DATA:
		return c.readXR(c.xrAddr)
	case XM_RD_INCR:
		return c.rdIncr
	case XM_RD_ADDR:
		return c.rdAddr
	case XM_WR_INCR:
		return c.wrIncr
	case XM_WR_ADDR:
		return c.wrAddr
	case XM_DATA, XM_DATA_2:
		value := c.vram[c.rdAddr]
		c.rdAddr += c.rdIncr
		return value
	case XM_SYS_CTRL:
		return c.sysCtrl
	case XM_UNUSED_A, XM_UNUSED_B:
		return c.unused[reg-XM_UNUSED_A]
	case XM_RW_INCR:
		return c.rwIncr
	case XM_RW_ADDR:
		return c.rwAddr
	case XM_RW_DATA, XM_RW_DATA_2:
		value := c.vram[c.rwAddr]
		c.rwAddr += c.rwIncr
		return value
	}
	return 0
}

func (c *XoseraChip) writeXM(reg uint8, value uint16) {
	if c.bootCycles > 0 {
		return
	}

	switch reg {
	case XM_XR_ADDR:
		c.xrAddr = value
	case XM_XR_DATA:
		c.writeXR(c.xrAddr, value)
		c.xrAddr++
	case XM_RD_INCR:
		c.rdIncr = value
	case XM_RD_ADDR:
		c.rdAddr = value
	case XM_WR_INCR:
		c.wrIncr = value
	case XM_WR_ADDR:
		c.wrAddr = value
	case XM_DATA, XM_DATA_2:
		c.writeVRAM(c.wrAddr, value)
		c.wrAddr += c.wrIncr
	case XM_SYS_CTRL:
		if value&SYS_CTRL_REBOOT != 0 {
			c.reboot(int(value>>SYS_CTRL_CONFIG_SH) & 3)
			return
		}
		c.sysCtrl = value & SYS_CTRL_SAVE_MASK
	case XM_TIMER:
		// Read-only
	case XM_UNUSED_A, XM_UNUSED_B:
		c.unused[reg-XM_UNUSED_A] = value
	case XM_RW_INCR:
		c.rwIncr = value
	case XM_RW_ADDR:
		c.rwAddr = value
	case XM_RW_DATA, XM_RW_DATA_2:
		c.writeVRAM(c.rwAddr, value)
		c.rwAddr += c.rwIncr
	}
}

// writeVRAM stores a word honoring the SYS_CTRL nibble write mask
func (c *XoseraChip) writeVRAM(addr uint16, value uint16) {
	mask := nibbleMask(c.sysCtrl & SYS_CTRL_WRMASK)
	c.vram[addr] = c.vram[addr]&^mask | value&mask
}

// nibbleMask expands a 4-bit nibble enable into a 16-bit bit mask
func nibbleMask(nibbles uint16) uint16 {
	var mask uint16
	for i := 0; i < 4; i++ {
		if nibbles&(1<<i) != 0 {
			mask |= 0xF << (4 * i)
		}
	}
	return mask
}

func (c *XoseraChip) reboot(config int) {
	c.resetState()
	c.configNum = config
	c.bootCycles = uint64(XOSERA_BOOT_MS) * VID_PIXEL_CLOCK / 1000
}

func (c *XoseraChip) readXR(addr uint16) uint16 {
	switch {
	case addr < XR_REG_COUNT:
		switch addr {
		case XR_SCANLINE:
			return c.scanline()
		case XR_VERSION:
			return XOSERA_VERSION
		case XR_GITHASH_H:
			return uint16(XOSERA_GITHASH >> 16)
		case XR_GITHASH_L:
			return uint16(XOSERA_GITHASH & 0xFFFF)
		case XR_VID_HSIZE:
			return VID_HSIZE
		case XR_VID_VSIZE:
			return VID_VSIZE
		case XR_VID_VFREQ:
			return VID_VFREQ_BCD
		}
		return c.xr[addr]
	case addr >= XR_COLOR_ADDR && addr < XR_COLOR_ADDR+XR_COLOR_SIZE:
		return c.color[addr-XR_COLOR_ADDR]
	case addr >= XR_TILE_ADDR && addr < XR_TILE_ADDR+XR_TILE_SIZE:
		return c.tile[addr-XR_TILE_ADDR]
	case addr >= XR_COPPER_ADDR && addr < XR_COPPER_ADDR+XR_COPPER_SIZE:
		return c.copper[addr-XR_COPPER_ADDR]
	}
	return 0
}

func (c *XoseraChip) writeXR(addr uint16, value uint16) {
	switch {
	case addr < XR_REG_COUNT:
		switch addr {
		case XR_SCANLINE, XR_VERSION, XR_GITHASH_H, XR_GITHASH_L,
			XR_VID_HSIZE, XR_VID_VSIZE, XR_VID_VFREQ:
			// Read-only
			return
		case XR_PA_LINE_ADDR:
			c.lineStart = value
			c.lineCount = 0
		case XR_COPP_CTRL:
			if value&COPP_CTRL_ENABLE == 0 {
				c.copperHalted = true
			}
		}
		c.xr[addr] = value
	case addr >= XR_COLOR_ADDR && addr < XR_COLOR_ADDR+XR_COLOR_SIZE:
		c.color[addr-XR_COLOR_ADDR] = value & 0x0FFF
	case addr >= XR_TILE_ADDR && addr < XR_TILE_ADDR+XR_TILE_SIZE:
		c.tile[addr-XR_TILE_ADDR] = value
	case addr >= XR_COPPER_ADDR && addr < XR_COPPER_ADDR+XR_COPPER_SIZE:
		c.copper[addr-XR_COPPER_ADDR] = value
	}
}

// timer returns the free running 1/10 ms counter
func (c *XoseraChip) timer() uint16 {
	return uint16(c.cycles * (1000 * TIMER_TICKS_PER_MS) / VID_PIXEL_CLOCK)
}

func (c *XoseraChip) scanline() uint16 {
	value := uint16(c.vPos) & SCANLINE_MASK
	if c.vPos >= VID_VSIZE {
		value |= SCANLINE_VBLANK
	}
	if c.hPos >= VID_HSIZE {
		value |= SCANLINE_HBLANK
	}
	return value
}

// advance moves the beam forward, running the copper and rendering each
// finished scanline. Returns the number of frames completed.
func (c *XoseraChip) advance(n uint64) int {
	frames := 0
	c.cycles += n
	if c.bootCycles > 0 {
		if n >= c.bootCycles {
			c.bootCycles = 0
		} else {
			c.bootCycles -= n
		}
	}

	for n > 0 {
		step := uint64(VID_HTOTAL - c.hPos)
		if n < step {
			c.hPos += int(n)
			c.runCopper()
			return frames
		}
		n -= step

		if c.vPos < VID_VSIZE {
			c.renderScanline(c.vPos)
		}
		c.hPos = 0
		c.vPos++
		if c.vPos >= VID_VTOTAL {
			c.finishFrame()
			frames++
		}
		c.runCopper()
	}
	return frames
}

// finishFrame swaps the frame buffers and restarts the copper and scanout
func (c *XoseraChip) finishFrame() {
	c.backBuffer, c.frontBuffer = c.frontBuffer, c.backBuffer
	c.frameCount++
	c.vPos = 0
	c.startFrame()
}

func (c *XoseraChip) startFrame() {
	c.copperPC = 0
	c.copperHalted = c.xr[XR_COPP_CTRL]&COPP_CTRL_ENABLE == 0
	c.lineStart = c.xr[XR_PA_DISP_ADDR]
	c.lineCount = 0
}

func (c *XoseraChip) afterFrames(frames int) {
	if frames == 0 {
		return
	}

	c.mutex.Lock()
	out := c.output
	frame := c.frontBuffer
	count := c.frameCount
	listeners := c.listeners
	realtime := c.realtime
	c.mutex.Unlock()

	if out != nil && out.IsStarted() {
		_ = out.UpdateFrame(frame)
	}
	for _, fn := range listeners {
		fn(count)
	}
	if realtime {
		c.pace()
	}
}

// pace sleeps until one refresh period has passed since the previous frame
func (c *XoseraChip) pace() {
	period := time.Second / VID_REFRESH_HZ
	c.mutex.Lock()
	last := c.lastPace
	c.mutex.Unlock()

	if elapsed := time.Since(last); elapsed < period {
		time.Sleep(period - elapsed)
	}

	c.mutex.Lock()
	c.lastPace = time.Now()
	c.mutex.Unlock()
}

// renderScanline draws native line y of playfield A through color memory
func (c *XoseraChip) renderScanline(y int) {
	row := c.backBuffer[y*VID_HSIZE*4 : (y+1)*VID_HSIZE*4]
	gfx := c.xr[XR_PA_GFX_CTRL]

	if gfx&GFX_CTRL_BLANK != 0 {
		border := c.color[c.xr[XR_VID_CTRL]&0xFF]
		for x := 0; x < VID_HSIZE; x++ {
			putRGB(row, x, border)
		}
		return
	}

	vRepeat := int(gfx&GFX_CTRL_V_MASK) + 1
	hRepeat := int((gfx&GFX_CTRL_H_MASK)>>GFX_CTRL_H_SH) + 1
	bpp := int(gfx&GFX_CTRL_BPP_MASK) >> GFX_CTRL_BPP_SH
	colorBase := gfx >> 8
	logical := c.lineCount / vRepeat
	lineLen := c.xr[XR_PA_LINE_LEN]

	if gfx&GFX_CTRL_BITMAP != 0 {
		addr := c.lineStart + uint16(logical)*lineLen
		for x := 0; x < VID_HSIZE; x++ {
			lx := x / hRepeat
			var index uint16
			switch bpp {
			case GFX_BPP_8:
				word := c.vram[addr+uint16(lx/2)]
				index = word >> 8
				if lx&1 != 0 {
					index = word & 0xFF
				}
			case GFX_BPP_4:
				word := c.vram[addr+uint16(lx/4)]
				index = word >> (12 - 4*uint(lx&3)) & 0xF
			default:
				word := c.vram[addr+uint16(lx/8)]
				index = word >> 8 & 0xF
				if word&(0x80>>uint(lx&7)) == 0 {
					index = word >> 12
				}
			}
			putRGB(row, x, c.color[(index^colorBase)&0xFF])
		}
	} else {
		tileHeight := int(c.xr[XR_PA_TILE_CTRL]&0xF) + 1
		glyphRow := logical % tileHeight
		addr := c.lineStart + uint16(logical/tileHeight)*lineLen
		for x := 0; x < VID_HSIZE; x++ {
			lx := x / hRepeat
			word := c.vram[addr+uint16(lx/8)]
			index := word >> 12
			if bpp == GFX_BPP_1 {
				bits := c.glyphRow(word&0xFF, glyphRow, tileHeight)
				if bits&(0x80>>uint(lx&7)) != 0 {
					index = word >> 8 & 0xF
				}
			}
			putRGB(row, x, c.color[(index^colorBase)&0xFF])
		}
	}

	c.lineCount++
}

// glyphRow fetches one 8 pixel row of a glyph; tile memory packs two rows per word
func (c *XoseraChip) glyphRow(char uint16, row int, tileHeight int) uint16 {
	wordsPerGlyph := (tileHeight + 1) / 2
	idx := int(char)*wordsPerGlyph + row/2
	if idx >= len(c.tile) {
		return 0
	}
	word := c.tile[idx]
	if row&1 == 0 {
		return word >> 8
	}
	return word & 0xFF
}

// putRGB expands a 0x0RGB color word into an RGBA pixel
func putRGB(row []byte, x int, rgb uint16) {
	i := x * 4
	row[i+0] = uint8(rgb>>8&0xF) * 17
	row[i+1] = uint8(rgb>>4&0xF) * 17
	row[i+2] = uint8(rgb&0xF) * 17
	row[i+3] = 255
}

// -----------------------------------------------------------------------------
// Inspection (does not advance the beam)
// -----------------------------------------------------------------------------

// Snapshot returns a copy of the most recently completed frame
func (c *XoseraChip) Snapshot() FrameSnapshot {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	buf := make([]byte, len(c.frontBuffer))
	copy(buf, c.frontBuffer)
	palette := make([]uint32, XR_COLOR_A_SIZE)
	for i := range palette {
		palette[i] = uint32(c.color[i])
	}
	return FrameSnapshot{
		Buffer:    buf,
		Palette:   palette,
		Width:     VID_HSIZE,
		Height:    VID_VSIZE,
		Format:    PixelFormatRGBA,
		Timestamp: time.Now(),
	}
}

// FrameCount returns the number of completed frames since power-on
func (c *XoseraChip) FrameCount() uint64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.frameCount
}

// BeamPosition returns the current horizontal and vertical beam position
func (c *XoseraChip) BeamPosition() (int, int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.hPos, c.vPos
}

// PeekVRAM reads a VRAM word without side effects
func (c *XoseraChip) PeekVRAM(addr uint16) uint16 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.vram[addr]
}

// PeekXR reads an XR register or memory word without side effects
func (c *XoseraChip) PeekXR(addr uint16) uint16 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.readXR(addr)
}

// ConfigNumber reports the FPGA configuration selected by the last reboot
func (c *XoseraChip) ConfigNumber() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.configNum
}

// RunFramesForTest advances the beam by whole frames without bus traffic
func (c *XoseraChip) RunFramesForTest(n int) {
	c.mutex.Lock()
	frames := c.advance(uint64(n) * VID_HTOTAL * VID_VTOTAL)
	c.mutex.Unlock()
	c.afterFrames(frames)
}

// RunCyclesForTest advances the beam by n pixel clocks
func (c *XoseraChip) RunCyclesForTest(n uint64) {
	c.mutex.Lock()
	frames := c.advance(n)
	c.mutex.Unlock()
	c.afterFrames(frames)
}
