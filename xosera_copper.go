// xosera_copper.go - Copper (display list coprocessor) for Xosera Draw

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

// CopperInstruction is one 32-bit copper word pair (high word first in memory)
type CopperInstruction uint32

// CopWaitHV waits until the beam reaches line v at or after pixel h
func CopWaitHV(h, v int) CopperInstruction {
	return CopperInstruction(uint32(v&copperPosMask)<<copperVShift | uint32(h&copperPosMask)<<copperHShift | copperWaitHV)
}

// CopWaitH waits until the beam reaches pixel h on any line
func CopWaitH(h int) CopperInstruction {
	return CopperInstruction(uint32(h&copperPosMask)<<copperHShift | copperWaitH)
}

// CopWaitV waits until the beam reaches line v
func CopWaitV(v int) CopperInstruction {
	return CopperInstruction(uint32(v&copperPosMask)<<copperVShift | copperWaitV)
}

// CopEnd halts the copper until the next frame
func CopEnd() CopperInstruction {
	return CopperInstruction(copperWaitF)
}

// CopMoveR writes value to an XR register
func CopMoveR(value uint16, xreg uint16) CopperInstruction {
	return CopperInstruction(copperOpMoveR<<copperOpShift | uint32(xreg&copperRegMask)<<copperRegShift | uint32(value))
}

// CopMoveP writes a 0x0RGB value to a color table entry
func CopMoveP(rgb uint16, index uint8) CopperInstruction {
	return CopperInstruction(copperOpMoveP<<copperOpShift | uint32(index)<<copperRegShift | uint32(rgb&0x0FFF))
}

func (ci CopperInstruction) op() uint32 {
	return uint32(ci) >> copperOpShift
}

func (ci CopperInstruction) waitKind() uint32 {
	return uint32(ci) & copperWaitMask
}

func (ci CopperInstruction) waitH() int {
	return int(uint32(ci)>>copperHShift) & copperPosMask
}

func (ci CopperInstruction) waitV() int {
	return int(uint32(ci)>>copperVShift) & copperPosMask
}

func (ci CopperInstruction) moveReg() uint16 {
	return uint16(uint32(ci)>>copperRegShift) & copperRegMask
}

func (ci CopperInstruction) moveValue() uint16 {
	return uint16(uint32(ci) & copperValueMask)
}

// IsEnd reports whether the instruction halts the copper for the frame
func (ci CopperInstruction) IsEnd() bool {
	return ci.op() == copperOpWait && ci.waitKind() == copperWaitF
}

func (ci CopperInstruction) String() string {
	switch ci.op() {
	case copperOpWait:
		switch ci.waitKind() {
		case copperWaitHV:
			return fmt.Sprintf("WAIT_HV(%d,%d)", ci.waitH(), ci.waitV())
		case copperWaitH:
			return fmt.Sprintf("WAIT_H(%d)", ci.waitH())
		case copperWaitV:
			return fmt.Sprintf("WAIT_V(%d)", ci.waitV())
		}
		return "END"
	case copperOpMoveR:
		return fmt.Sprintf("MOVER(0x%04X,0x%02X)", ci.moveValue(), ci.moveReg())
	case copperOpMoveP:
		return fmt.Sprintf("MOVEP(0x%03X,%d)", ci.moveValue(), ci.moveReg())
	}
	return fmt.Sprintf("DATA(0x%08X)", uint32(ci))
}

// runCopper executes copper instructions until one blocks (caller holds lock)
func (c *XoseraChip) runCopper() {
	if c.copperHalted {
		return
	}

	for i := 0; i < copperMaxPerStep; i++ {
		if c.copperPC >= COPPER_MAX_INSTR {
			c.copperHalted = true
			return
		}
		ci := CopperInstruction(uint32(c.copper[c.copperPC*2])<<16 | uint32(c.copper[c.copperPC*2+1]))

		switch ci.op() {
		case copperOpWait:
			switch ci.waitKind() {
			case copperWaitF:
				c.copperHalted = true
				return
			case copperWaitV:
				if c.vPos < ci.waitV() {
					return
				}
			case copperWaitH:
				if c.hPos < ci.waitH() {
					return
				}
			case copperWaitHV:
				if c.vPos < ci.waitV() || (c.vPos == ci.waitV() && c.hPos < ci.waitH()) {
					return
				}
			}
		case copperOpMoveR:
			c.writeXR(ci.moveReg(), ci.moveValue())
		case copperOpMoveP:
			c.color[ci.moveReg()] = ci.moveValue() & 0x0FFF
		default:
			// Unknown opcode is skipped
		}
		c.copperPC++
	}
}

// CopperList is an ordered display list executed once per frame
type CopperList []CopperInstruction

// copperWritableRegs are the XR registers a display list may change
var copperWritableRegs = map[uint16]bool{
	XR_VID_CTRL:     true,
	XR_PA_GFX_CTRL:  true,
	XR_PA_DISP_ADDR: true,
	XR_PA_LINE_ADDR: true,
}

// Validate checks that wait points strictly increase within the frame and
// that moves only touch buffer selection and blanking registers.
func (cl CopperList) Validate() error {
	if len(cl) == 0 {
		return fmt.Errorf("copper list is empty")
	}
	if len(cl) > COPPER_MAX_INSTR {
		return fmt.Errorf("copper list has %d instructions, limit %d", len(cl), COPPER_MAX_INSTR)
	}

	lastPos := -1
	for i, ci := range cl {
		switch ci.op() {
		case copperOpWait:
			var pos int
			switch ci.waitKind() {
			case copperWaitF:
				if i != len(cl)-1 {
					return fmt.Errorf("copper END at %d is not the last instruction", i)
				}
				return nil
			case copperWaitV:
				pos = ci.waitV() * VID_HTOTAL
			case copperWaitHV:
				pos = ci.waitV()*VID_HTOTAL + ci.waitH()
			case copperWaitH:
				return fmt.Errorf("copper %s at %d repeats every line", ci, i)
			}
			if ci.waitV() >= VID_VTOTAL {
				return fmt.Errorf("copper %s at %d is past the end of the frame", ci, i)
			}
			if pos <= lastPos {
				return fmt.Errorf("copper %s at %d does not advance the beam", ci, i)
			}
			lastPos = pos
		case copperOpMoveR:
			if !copperWritableRegs[ci.moveReg()] {
				return fmt.Errorf("copper %s at %d writes a protected register", ci, i)
			}
		case copperOpMoveP:
		default:
			return fmt.Errorf("copper instruction 0x%08X at %d is not recognised", uint32(ci), i)
		}
	}
	return fmt.Errorf("copper list is not terminated by END")
}

// Words returns the list as 16-bit copper memory words, high word first
func (cl CopperList) Words() []uint16 {
	words := make([]uint16, 0, len(cl)*2)
	for _, ci := range cl {
		words = append(words, uint16(uint32(ci)>>16), uint16(uint32(ci)))
	}
	return words
}

// DataWordAddr returns the XR address of the low (data) word of instruction i
func (cl CopperList) DataWordAddr(i int) uint16 {
	return XR_COPPER_ADDR + uint16(i*2+1)
}

// IndexOfMove returns the first MOVER targeting xreg, or -1
func (cl CopperList) IndexOfMove(xreg uint16) int {
	for i, ci := range cl {
		if ci.op() == copperOpMoveR && ci.moveReg() == xreg {
			return i
		}
	}
	return -1
}

// LoadCopperList validates a list and streams it into copper memory
func LoadCopperList(xr IndirectRegisterPort, cl CopperList) error {
	if err := cl.Validate(); err != nil {
		return err
	}
	xr.Seek(XR_COPPER_ADDR)
	xr.WriteAutoIncrement(cl.Words())
	return nil
}
