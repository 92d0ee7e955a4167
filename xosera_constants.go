// xosera_constants.go - Xosera register map for Xosera Draw

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

// Xosera Main Registers (XM registers, directly CPU accessible, 16-bit words)
const (
	XM_XR_ADDR   = 0x0 // (R /W+) XR register number/address for XM_XR_DATA read/write access
	XM_XR_DATA   = 0x1 // (R /W+) read/write XR register/memory at XM_XR_ADDR (XM_XR_ADDR incr. on write)
	XM_RD_INCR   = 0x2 // (R /W ) increment value for XM_RD_ADDR read from XM_DATA/XM_DATA_2
	XM_RD_ADDR   = 0x3 // (R /W+) VRAM address for reading from VRAM when XM_DATA/XM_DATA_2 is read
	XM_WR_INCR   = 0x4 // (R /W ) increment value for XM_WR_ADDR on write to XM_DATA/XM_DATA_2
	XM_WR_ADDR   = 0x5 // (R /W ) VRAM address for writing to VRAM when XM_DATA/XM_DATA_2 is written
	XM_DATA      = 0x6 // (R+/W+) read/write VRAM word at XM_RD_ADDR/XM_WR_ADDR (and add increment)
	XM_DATA_2    = 0x7 // (R+/W+) 2nd XM_DATA (to allow for 32-bit read/write access)
	XM_SYS_CTRL  = 0x8 // (R /W+) busy status, FPGA reconfig, write nibble mask
	XM_TIMER     = 0x9 // (RO   ) 1/10th millisecond timer
	XM_UNUSED_A  = 0xA // (R /W ) unused direct register 0xA
	XM_UNUSED_B  = 0xB // (R /W ) unused direct register 0xB
	XM_RW_INCR   = 0xC // (R /W ) XM_RW_ADDR increment value on read/write of XM_RW_DATA/XM_RW_DATA_2
	XM_RW_ADDR   = 0xD // (R /W+) read/write address for VRAM access from XM_RW_DATA/XM_RW_DATA_2
	XM_RW_DATA   = 0xE // (R+/W+) read/write VRAM word at XM_RW_ADDR (and add XM_RW_INCR)
	XM_RW_DATA_2 = 0xF // (R+/W+) 2nd XM_RW_DATA (to allow for 32-bit read/write access)

	XM_REG_COUNT = 16
)

// SYS_CTRL bits
const (
	SYS_CTRL_REBOOT     = 0x8000 // reboot FPGA to config in bits [14:13]
	SYS_CTRL_CONFIG_SH  = 13
	SYS_CTRL_BUSY       = 0x0080 // (RO) blitter/memory busy
	SYS_CTRL_WRMASK     = 0x000F // VRAM write nibble mask, bit 3 = bits [15:12]
	SYS_CTRL_SAVE_MASK  = 0x0F0F
	SYS_CTRL_RESET_MASK = 0x000F
)

// XR register regions
const (
	XR_CONFIG_REGS   = 0x0000 // 0x0000-0x000F config/copper registers
	XR_PA_REGS       = 0x0010 // 0x0010-0x0017 playfield A video registers
	XR_PB_REGS       = 0x0018 // 0x0018-0x001F playfield B video registers
	XR_REG_COUNT     = 0x0020
	XR_COLOR_ADDR    = 0x8000 // (R/W) 0x8000-0x81FF 2 x A & B color lookup memory
	XR_COLOR_SIZE    = 0x0200
	XR_COLOR_A_ADDR  = 0x8000 // (R/W) 0x8000-0x80FF A 256 entry color lookup memory (0xARGB)
	XR_COLOR_A_SIZE  = 0x0100
	XR_COLOR_B_ADDR  = 0x8100 // (R/W) 0x8100-0x81FF B 256 entry color lookup memory (0xARGB)
	XR_TILE_ADDR     = 0xA000 // (R/W) 0xA000-0xB3FF tile glyph/tile map memory
	XR_TILE_SIZE     = 0x1400
	XR_COPPER_ADDR   = 0xC000 // (R/W) 0xC000-0xC7FF copper program memory (32-bit instructions)
	XR_COPPER_SIZE   = 0x0800
	XR_UNUSED_ADDR   = 0xE000
	VRAM_WORDS       = 0x10000
	COPPER_MAX_INSTR = XR_COPPER_SIZE / 2
)

// Video config / copper XR registers
const (
	XR_VID_CTRL  = 0x00 // (R /W) display control and border color index
	XR_COPP_CTRL = 0x01 // (R /W) display synchronized coprocessor control
	XR_VID_LEFT  = 0x06 // (R /W) left edge of active display window
	XR_VID_RIGHT = 0x07 // (R /W) right edge of active display window
	XR_SCANLINE  = 0x08 // (RO  ) [15] in V blank, [14] in H blank [10:0] V scanline
	XR_VERSION   = 0x0A // (RO  ) feature bits [15:8] and version code [7:0]
	XR_GITHASH_H = 0x0B // (RO  ) high 16 bits of build identifier
	XR_GITHASH_L = 0x0C // (RO  ) low 16 bits of build identifier
	XR_VID_HSIZE = 0x0D // (RO  ) native pixel width of monitor mode
	XR_VID_VSIZE = 0x0E // (RO  ) native pixel height of monitor mode
	XR_VID_VFREQ = 0x0F // (RO  ) refresh in BCD 1/100th Hz (0x5997 = 59.97 Hz)
)

// Playfield A/B control XR registers
const (
	XR_PA_GFX_CTRL  = 0x10 // playfield A graphics control
	XR_PA_TILE_CTRL = 0x11 // playfield A tile control
	XR_PA_DISP_ADDR = 0x12 // playfield A display VRAM start address
	XR_PA_LINE_LEN  = 0x13 // playfield A display line width in words
	XR_PA_HV_SCROLL = 0x14 // playfield A horizontal and vertical fine scroll
	XR_PA_LINE_ADDR = 0x15 // playfield A scanline start address

	XR_PB_GFX_CTRL  = 0x18
	XR_PB_TILE_CTRL = 0x19
	XR_PB_DISP_ADDR = 0x1A
	XR_PB_LINE_LEN  = 0x1B
	XR_PB_HV_SCROLL = 0x1C
	XR_PB_LINE_ADDR = 0x1D
)

// GFX_CTRL fields: [15:8] color base, [7] blank, [6] bitmap, [5:4] bpp, [3:2] H repeat, [1:0] V repeat
const (
	GFX_CTRL_BLANK    = 0x0080
	GFX_CTRL_BITMAP   = 0x0040
	GFX_CTRL_BPP_SH   = 4
	GFX_CTRL_BPP_MASK = 0x0030
	GFX_CTRL_H_SH     = 2
	GFX_CTRL_H_MASK   = 0x000C
	GFX_CTRL_V_MASK   = 0x0003

	GFX_BPP_1 = 0
	GFX_BPP_4 = 1
	GFX_BPP_8 = 2

	GFX_TEXT_2X       = 0x0005 // tiled 1-bpp text, H x2, V x2
	GFX_BITMAP_8BPP2X = 0x0065 // bitmap 8-bpp, H x2, V x2
	GFX_BLANK_2X      = 0x00D5 // blanked, H x2, V x2
)

// COPP_CTRL bits
const (
	COPP_CTRL_ENABLE = 0x8000
)

// Copper instruction encoding (32-bit, stored high word first)
//
//	WAIT   0x0VVV_HHHx  x: 0=HV, 1=H only, 2=V only, 3=end of frame
//	MOVER  0x9RRR_DDDD  write DDDD to XR register RR
//	MOVEP  0xAIII_RGBB  write 0x0RGB to color entry II
const (
	copperOpWait  = 0x0
	copperOpMoveR = 0x9
	copperOpMoveP = 0xA

	copperOpShift    = 28
	copperVShift     = 16
	copperHShift     = 4
	copperPosMask    = 0x7FF
	copperWaitHV     = 0x0
	copperWaitH      = 0x1
	copperWaitV      = 0x2
	copperWaitF      = 0x3
	copperWaitMask   = 0x3
	copperRegShift   = 16
	copperRegMask    = 0xFF
	copperValueMask  = 0xFFFF
	copperMaxPerStep = 64
)

// 640x480 monitor mode timing
const (
	VID_HSIZE       = 640
	VID_VSIZE       = 480
	VID_HTOTAL      = 800
	VID_VTOTAL      = 525
	VID_VFREQ_BCD   = 0x5997
	VID_PIXEL_CLOCK = 25_125_000
	VID_REFRESH_HZ  = 60

	SCANLINE_VBLANK = 0x8000
	SCANLINE_HBLANK = 0x4000
	SCANLINE_MASK   = 0x07FF
)

const (
	XOSERA_VERSION     = 0x0030
	XOSERA_GITHASH     = 0x58445257 // "XDRW"
	SYNC_PROBE_PATTERN = 0xF5FA
	TIMER_TICKS_PER_MS = 10

	// bus cycles charged per register access, in pixel clocks
	DEFAULT_ACCESS_CYCLES = 10
)
