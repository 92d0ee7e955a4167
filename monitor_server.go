// monitor_server.go - HTTP/WebSocket monitor for the Xosera simulator

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
monitor_server.go - Remote Monitor

Serves the simulated chip's state to a browser or script:

	GET /health           liveness
	GET /api/status       frame count, beam, copper and demo phase as JSON
	GET /api/frame.png    the last completed 640x480 frame
	GET /api/vram/{addr}  one VRAM word
	GET /api/xr/{addr}    one XR register or memory word
	GET /ws               frame events, one JSON message per completed frame

Reads go through the chip's Peek methods and never advance the beam.
*/

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	MONITOR_CLIENT_QUEUE  = 16
	MONITOR_WRITE_TIMEOUT = 2 * time.Second
)

// MonitorStatus is the /api/status document
type MonitorStatus struct {
	Frame       uint64 `json:"frame"`
	BeamH       int    `json:"beam_h"`
	BeamV       int    `json:"beam_v"`
	Config      int    `json:"config"`
	Copper      bool   `json:"copper"`
	DisplayAddr uint16 `json:"display_addr"`
	Phase       string `json:"phase"`
	Flips       uint64 `json:"flips"`
	Presents    uint64 `json:"presents"`
	Clients     int    `json:"clients"`
	Uptime      string `json:"uptime"`
}

// FrameEvent is pushed to WebSocket clients
type FrameEvent struct {
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Frame uint64 `json:"frame"`
	Phase string `json:"phase,omitempty"`
}

type monitorClient struct {
	id   string
	send chan []byte
}

// MonitorServer exposes a running XoseraChip over HTTP
type MonitorServer struct {
	chip     *XoseraChip
	upgrader websocket.Upgrader
	started  time.Time
	server   *http.Server

	mu      sync.Mutex
	clients map[string]*monitorClient
}

// NewMonitorServer creates a monitor and subscribes it to chip frames
func NewMonitorServer(chip *XoseraChip) *MonitorServer {
	m := &MonitorServer{
		chip: chip,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		started: time.Now(),
		clients: make(map[string]*monitorClient),
	}
	chip.AddFrameListener(m.onFrame)
	return m
}

// Handler returns the monitor routes
func (m *MonitorServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api", func(sub chi.Router) {
		sub.Get("/status", m.handleStatus)
		sub.Get("/frame.png", m.handleFrame)
		sub.Get("/vram/{addr}", m.handlePeek(m.chip.PeekVRAM))
		sub.Get("/xr/{addr}", m.handlePeek(m.chip.PeekXR))
	})
	r.Get("/ws", m.handleWS)
	return r
}

// Start listens on addr in the background
func (m *MonitorServer) Start(addr string) error {
	m.server = &http.Server{Addr: addr, Handler: m.Handler()}
	errCh := make(chan error, 1)
	go func() {
		if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	select {
	case err := <-errCh:
		return fmt.Errorf("monitor: %w", err)
	case <-time.After(50 * time.Millisecond):
		fmt.Printf("monitor: listening on %s\n", addr)
		return nil
	}
}

// Shutdown stops the HTTP server and drops all clients
func (m *MonitorServer) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	for id, c := range m.clients {
		delete(m.clients, id)
		close(c.send)
	}
	m.mu.Unlock()
	if m.server == nil {
		return nil
	}
	return m.server.Shutdown(ctx)
}

// Status gathers the current chip and harness state
func (m *MonitorServer) Status() MonitorStatus {
	h, v := m.chip.BeamPosition()
	m.mu.Lock()
	clients := len(m.clients)
	m.mu.Unlock()
	rs := runtimeStatus.snapshot()
	return MonitorStatus{
		Frame:       m.chip.FrameCount(),
		BeamH:       h,
		BeamV:       v,
		Config:      m.chip.ConfigNumber(),
		Copper:      m.chip.PeekXR(XR_COPP_CTRL)&COPP_CTRL_ENABLE != 0,
		DisplayAddr: m.chip.PeekXR(XR_PA_DISP_ADDR),
		Phase:       rs.phase,
		Flips:       rs.flips,
		Presents:    rs.presents,
		Clients:     clients,
		Uptime:      time.Since(m.started).Truncate(time.Second).String(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (m *MonitorServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, m.Status())
}

func (m *MonitorServer) handleFrame(w http.ResponseWriter, r *http.Request) {
	snap := m.chip.Snapshot()
	img := &image.RGBA{
		Pix:    snap.Buffer,
		Stride: snap.Width * 4,
		Rect:   image.Rect(0, 0, snap.Width, snap.Height),
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (m *MonitorServer) handlePeek(peek func(uint16) uint16) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addr, err := parseUint16Flag(chi.URLParam(r, "addr"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]uint16{"addr": addr, "value": peek(addr)})
	}
}

func (m *MonitorServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &monitorClient{id: uuid.New().String(), send: make(chan []byte, MONITOR_CLIENT_QUEUE)}
	hello, _ := json.Marshal(FrameEvent{Type: "hello", ID: c.id, Frame: m.chip.FrameCount()})
	c.send <- hello

	m.mu.Lock()
	m.clients[c.id] = c
	m.mu.Unlock()

	go func() {
		defer conn.Close()
		for msg := range c.send {
			_ = conn.SetWriteDeadline(time.Now().Add(MONITOR_WRITE_TIMEOUT))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				m.drop(c.id)
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			m.drop(c.id)
			return
		}
	}
}

func (m *MonitorServer) drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.clients[id]; ok {
		delete(m.clients, id)
		close(c.send)
	}
}

// onFrame fans a frame event out to clients; slow clients miss events
func (m *MonitorServer) onFrame(frame uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.clients) == 0 {
		return
	}
	msg, err := json.Marshal(FrameEvent{Type: "frame", Frame: frame, Phase: runtimeStatus.snapshot().phase})
	if err != nil {
		return
	}
	for _, c := range m.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
}
