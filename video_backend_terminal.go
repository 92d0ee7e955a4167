// video_backend_terminal.go - ANSI terminal preview output for Xosera Draw

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
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	TERMINAL_FPS          = 10
	TERMINAL_DEFAULT_COLS = 80
	TERMINAL_DEFAULT_ROWS = 24
)

// TerminalVideoOutput draws frames into a truecolor terminal with half block
// characters, two pixel rows per text row.
type TerminalVideoOutput struct {
	mu         sync.Mutex
	out        io.Writer
	fd         int
	isTerminal bool
	started    bool
	config     DisplayConfig
	frameCount uint64
	lastDraw   time.Time
	buf        bytes.Buffer
}

// NewTerminalVideoOutput writes to out, or stdout when out is nil
func NewTerminalVideoOutput(out io.Writer) *TerminalVideoOutput {
	t := &TerminalVideoOutput{out: out, fd: -1, config: DefaultDisplayConfig()}
	if out == nil {
		t.out = os.Stdout
		t.fd = int(os.Stdout.Fd())
		t.isTerminal = term.IsTerminal(t.fd)
	}
	return t
}

// gridSize returns the text grid used for the preview
func (t *TerminalVideoOutput) gridSize() (cols, rows int) {
	if t.isTerminal {
		if w, h, err := term.GetSize(t.fd); err == nil && w > 0 && h > 1 {
			return w, h - 1
		}
	}
	return TERMINAL_DEFAULT_COLS, TERMINAL_DEFAULT_ROWS - 1
}

func (t *TerminalVideoOutput) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return nil
	}
	t.started = true
	_, err := io.WriteString(t.out, "\x1b[?25l\x1b[2J")
	return err
}

func (t *TerminalVideoOutput) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started {
		return nil
	}
	t.started = false
	_, err := io.WriteString(t.out, "\x1b[0m\x1b[?25h\n")
	return err
}

func (t *TerminalVideoOutput) Close() error {
	return t.Stop()
}

func (t *TerminalVideoOutput) IsStarted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}

func (t *TerminalVideoOutput) SetDisplayConfig(config DisplayConfig) error {
	t.mu.Lock()
	t.config = config
	t.mu.Unlock()
	return nil
}

func (t *TerminalVideoOutput) GetDisplayConfig() DisplayConfig {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.config
}

// UpdateFrame redraws the preview at most TERMINAL_FPS times a second
func (t *TerminalVideoOutput) UpdateFrame(buffer []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frameCount++
	if !t.started || time.Since(t.lastDraw) < time.Second/TERMINAL_FPS {
		return nil
	}
	t.lastDraw = time.Now()

	cols, rows := t.gridSize()
	t.buf.Reset()
	renderANSI(&t.buf, buffer, t.config.Width, t.config.Height, cols, rows)
	if _, err := t.out.Write(t.buf.Bytes()); err != nil {
		return &VideoError{Operation: "terminal update", Details: "write failed", Err: err}
	}
	return nil
}

func (t *TerminalVideoOutput) WaitForVSync() error {
	return nil
}

func (t *TerminalVideoOutput) GetFrameCount() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frameCount
}

func (t *TerminalVideoOutput) GetRefreshRate() int {
	return TERMINAL_FPS
}

// renderANSI scales an RGBA frame into cols x rows half block cells, keeping
// the pixel aspect ratio.
func renderANSI(dst *bytes.Buffer, frame []byte, width, height, cols, rows int) {
	if width <= 0 || height <= 0 || len(frame) < width*height*4 {
		return
	}
	step := max((width+cols-1)/cols, (height+2*rows-1)/(2*rows), 1)
	outCols := width / step
	outRows := height / (2 * step)

	sample := func(x, y int) (byte, byte, byte) {
		i := (y*width + x) * 4
		return frame[i], frame[i+1], frame[i+2]
	}

	dst.WriteString("\x1b[H")
	for row := 0; row < outRows; row++ {
		for col := 0; col < outCols; col++ {
			x := col * step
			tr, tg, tb := sample(x, 2*row*step)
			br, bg, bb := sample(x, (2*row+1)*step)
			writeANSIColor(dst, 38, tr, tg, tb)
			writeANSIColor(dst, 48, br, bg, bb)
			dst.WriteString("▀")
		}
		dst.WriteString("\x1b[0m\n")
	}
	fmt.Fprintf(dst, "\x1b[0mframe %dx%d scale 1/%d", width, height, step)
}

func writeANSIColor(dst *bytes.Buffer, layer int, r, g, b byte) {
	dst.WriteString("\x1b[")
	dst.WriteString(strconv.Itoa(layer))
	dst.WriteString(";2;")
	dst.WriteString(strconv.Itoa(int(r)))
	dst.WriteByte(';')
	dst.WriteString(strconv.Itoa(int(g)))
	dst.WriteByte(';')
	dst.WriteString(strconv.Itoa(int(b)))
	dst.WriteByte('m')
}
