// xosera_port.go - Host side register port and handshake for Xosera Draw

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
	"io"
)

const (
	DEFAULT_SYNC_RETRIES    = 250
	DEFAULT_SYNC_DELAY_MS   = 10
	DEFAULT_DELAY_STALL     = 20000 // timer polls without a tick before giving up
	XOSERA_CONFIG_MAX       = 3
	XOSERA_CONFIG_DEFAULT   = 0
	XOSERA_CONFIG_UNCHANGED = -1
)

// RegisterHandler is the bus side of a device with 16 word registers
type RegisterHandler interface {
	HandleRead(reg uint8) uint16
	HandleWrite(reg uint8, value uint16)
}

// RegisterPort is the CPU side view of the XM register file
type RegisterPort interface {
	ReadRegister(reg uint8) uint16
	WriteRegister(reg uint8, value uint16)
}

// IndirectRegisterPort is an address/data window into a device memory space
type IndirectRegisterPort interface {
	Seek(addr uint16)
	Write(value uint16)
	WriteAutoIncrement(values []uint16)
	Read() uint16
}

var xmRegNames = [XM_REG_COUNT]string{
	"XR_ADDR", "XR_DATA", "RD_INCR", "RD_ADDR",
	"WR_INCR", "WR_ADDR", "DATA", "DATA_2",
	"SYS_CTRL", "TIMER", "UNUSED_A", "UNUSED_B",
	"RW_INCR", "RW_ADDR", "RW_DATA", "RW_DATA_2",
}

// XMPort drives a RegisterHandler and adds the Xosera handshake, timer delay
// and shadowed write increment / write mask.
type XMPort struct {
	dev   RegisterHandler
	trace io.Writer

	SyncRetries int
	SyncDelayMs int
	StallPolls  int

	synced bool

	// Shadows of write-only-in-practice state, valid after first write
	wrIncr      uint16
	wrIncrValid bool
	wrMask      uint16
	wrMaskValid bool

	reads  uint64
	writes uint64

	xr   *XRWindow
	vram *VRAMWindow
}

// NewXMPort wraps a device register file
func NewXMPort(dev RegisterHandler) *XMPort {
	p := &XMPort{
		dev:         dev,
		SyncRetries: DEFAULT_SYNC_RETRIES,
		SyncDelayMs: DEFAULT_SYNC_DELAY_MS,
		StallPolls:  DEFAULT_DELAY_STALL,
	}
	p.xr = &XRWindow{port: p}
	p.vram = &VRAMWindow{port: p}
	return p
}

// SetTrace logs every register access to w (nil disables)
func (p *XMPort) SetTrace(w io.Writer) {
	p.trace = w
}

// ReadRegister implements RegisterPort
func (p *XMPort) ReadRegister(reg uint8) uint16 {
	value := p.dev.HandleRead(reg & 0x0F)
	p.reads++
	if p.trace != nil {
		fmt.Fprintf(p.trace, "xosera: R %-9s -> 0x%04X\n", xmRegNames[reg&0x0F], value)
	}
	return value
}

// WriteRegister implements RegisterPort
func (p *XMPort) WriteRegister(reg uint8, value uint16) {
	reg &= 0x0F
	switch reg {
	case XM_WR_INCR:
		p.wrIncr, p.wrIncrValid = value, true
	case XM_SYS_CTRL:
		if value&SYS_CTRL_REBOOT != 0 {
			p.invalidate()
		} else {
			p.wrMask, p.wrMaskValid = value&SYS_CTRL_WRMASK, true
		}
	}
	p.dev.HandleWrite(reg, value)
	p.writes++
	if p.trace != nil {
		fmt.Fprintf(p.trace, "xosera: W %-9s <- 0x%04X\n", xmRegNames[reg], value)
	}
}

func (p *XMPort) invalidate() {
	p.wrIncrValid = false
	p.wrMaskValid = false
	p.synced = false
}

// SetWriteIncrement sets WR_INCR, skipping the bus write when unchanged
func (p *XMPort) SetWriteIncrement(incr uint16) {
	if p.wrIncrValid && p.wrIncr == incr {
		return
	}
	p.WriteRegister(XM_WR_INCR, incr)
}

// SetWriteMask sets the SYS_CTRL VRAM nibble write mask
func (p *XMPort) SetWriteMask(nibbles uint16) {
	nibbles &= SYS_CTRL_WRMASK
	if p.wrMaskValid && p.wrMask == nibbles {
		return
	}
	p.WriteRegister(XM_SYS_CTRL, nibbles)
}

// XRGet reads an XR register or memory word
func (p *XMPort) XRGet(addr uint16) uint16 {
	p.WriteRegister(XM_XR_ADDR, addr)
	return p.ReadRegister(XM_XR_DATA)
}

// XRSet writes an XR register or memory word
func (p *XMPort) XRSet(addr uint16, value uint16) {
	p.WriteRegister(XM_XR_ADDR, addr)
	p.WriteRegister(XM_XR_DATA, value)
}

// XR returns the XR space window
func (p *XMPort) XR() *XRWindow {
	return p.xr
}

// VRAM returns the VRAM window
func (p *XMPort) VRAM() *VRAMWindow {
	return p.vram
}

// Stats returns the number of register reads and writes issued
func (p *XMPort) Stats() (reads, writes uint64) {
	return p.reads, p.writes
}

// Synced reports whether the last handshake succeeded
func (p *XMPort) Synced() bool {
	return p.synced
}

// ReadyCheck performs the RD_INCR round-trip handshake and restores RD_INCR
func (p *XMPort) ReadyCheck() bool {
	orig := p.ReadRegister(XM_RD_INCR)
	probe := orig ^ SYNC_PROBE_PATTERN
	p.WriteRegister(XM_RD_INCR, probe)
	ok := p.ReadRegister(XM_RD_INCR) == probe
	p.WriteRegister(XM_RD_INCR, orig)
	p.synced = ok
	return ok
}

// WaitSync retries ReadyCheck, delaying between attempts
func (p *XMPort) WaitSync() error {
	for attempt := 1; attempt <= p.SyncRetries; attempt++ {
		if p.ReadyCheck() {
			return nil
		}
		// A stalled timer is the expected state of an absent device
		_ = p.delayTicks(p.SyncDelayMs * TIMER_TICKS_PER_MS)
	}
	return deviceUnavailable("sync", p.SyncRetries)
}

// Reconfigure reboots the FPGA into configuration n (0-3) and waits for it
func (p *XMPort) Reconfigure(n int) error {
	if n < 0 || n > XOSERA_CONFIG_MAX {
		return fmt.Errorf("xosera: reconfigure: config %d out of range 0-%d", n, XOSERA_CONFIG_MAX)
	}
	saved := p.ReadRegister(XM_SYS_CTRL)
	p.WriteRegister(XM_SYS_CTRL, SYS_CTRL_REBOOT|uint16(n)<<SYS_CTRL_CONFIG_SH)
	if err := p.WaitSync(); err != nil {
		return &DeviceError{Op: "reconfigure", Err: err}
	}
	p.WriteRegister(XM_SYS_CTRL, saved&SYS_CTRL_SAVE_MASK)
	return nil
}

// Delay blocks for ms milliseconds of device time using the TIMER register
func (p *XMPort) Delay(ms int) error {
	if ms <= 0 {
		return nil
	}
	return p.delayTicks(ms * TIMER_TICKS_PER_MS)
}

func (p *XMPort) delayTicks(ticks int) error {
	last := p.ReadRegister(XM_TIMER)
	elapsed := 0
	stall := 0
	polls := 0
	for elapsed < ticks {
		now := p.ReadRegister(XM_TIMER)
		polls++
		if now == last {
			stall++
			if stall >= p.StallPolls {
				return deviceUnavailable("delay", polls)
			}
			continue
		}
		elapsed += int(now - last)
		last = now
		stall = 0
	}
	return nil
}

// -----------------------------------------------------------------------------
// Indirect windows
// -----------------------------------------------------------------------------

// XRWindow addresses XR registers and memories through XR_ADDR/XR_DATA.
// XR_ADDR increments on each write to XR_DATA.
type XRWindow struct {
	port *XMPort
}

func (w *XRWindow) Seek(addr uint16) {
	w.port.WriteRegister(XM_XR_ADDR, addr)
}

func (w *XRWindow) Write(value uint16) {
	w.port.WriteRegister(XM_XR_DATA, value)
}

func (w *XRWindow) WriteAutoIncrement(values []uint16) {
	for _, v := range values {
		w.port.WriteRegister(XM_XR_DATA, v)
	}
}

func (w *XRWindow) Read() uint16 {
	return w.port.ReadRegister(XM_XR_DATA)
}

// VRAMWindow addresses VRAM through WR_ADDR/WR_INCR/DATA for writes and
// RD_ADDR/RD_INCR/DATA for reads.
type VRAMWindow struct {
	port *XMPort
}

// Seek positions both the read and the write address
func (w *VRAMWindow) Seek(addr uint16) {
	w.port.WriteRegister(XM_WR_ADDR, addr)
	w.port.WriteRegister(XM_RD_ADDR, addr)
}

// SeekWrite positions only the write address
func (w *VRAMWindow) SeekWrite(addr uint16) {
	w.port.WriteRegister(XM_WR_ADDR, addr)
}

// SeekRead positions only the read address
func (w *VRAMWindow) SeekRead(addr uint16) {
	w.port.WriteRegister(XM_RD_ADDR, addr)
}

func (w *VRAMWindow) Write(value uint16) {
	w.port.WriteRegister(XM_DATA, value)
}

// WriteAutoIncrement streams words with WR_INCR=1
func (w *VRAMWindow) WriteAutoIncrement(values []uint16) {
	w.port.SetWriteIncrement(1)
	for _, v := range values {
		w.port.WriteRegister(XM_DATA, v)
	}
}

// Fill writes count copies of value with WR_INCR=1
func (w *VRAMWindow) Fill(value uint16, count int) {
	w.port.SetWriteIncrement(1)
	for i := 0; i < count; i++ {
		w.port.WriteRegister(XM_DATA, value)
	}
}

// Read returns the word at RD_ADDR; RD_ADDR advances by RD_INCR
func (w *VRAMWindow) Read() uint16 {
	return w.port.ReadRegister(XM_DATA)
}

// SetReadIncrement sets RD_INCR
func (w *VRAMWindow) SetReadIncrement(incr uint16) {
	w.port.WriteRegister(XM_RD_INCR, incr)
}
