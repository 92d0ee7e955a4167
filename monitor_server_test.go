package main

import (
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newMonitorTestServer(t *testing.T) (*XoseraChip, *MonitorServer, *httptest.Server) {
	t.Helper()
	chip := NewXoseraChip()
	m := NewMonitorServer(chip)
	srv := httptest.NewServer(m.Handler())
	t.Cleanup(func() {
		_ = m.Shutdown(context.Background())
		srv.Close()
	})
	return chip, m, srv
}

func getJSON(t *testing.T, url string, wantStatus int, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: expected status %d, got %d", url, wantStatus, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("GET %s: decode: %v", url, err)
	}
}

func TestMonitorServer_Health(t *testing.T) {
	_, _, srv := newMonitorTestServer(t)
	var body map[string]string
	getJSON(t, srv.URL+"/health", http.StatusOK, &body)
	if body["status"] != "ok" {
		t.Fatalf("expected status ok, got %v", body)
	}
}

func TestMonitorServer_Status(t *testing.T) {
	chip, _, srv := newMonitorTestServer(t)
	chip.RunFramesForTest(2)
	runtimeStatus.setPhase(PhaseLines)
	t.Cleanup(func() { runtimeStatus.setPhase("") })

	var st MonitorStatus
	getJSON(t, srv.URL+"/api/status", http.StatusOK, &st)
	if st.Frame != 2 {
		t.Fatalf("expected frame 2, got %d", st.Frame)
	}
	if st.Phase != PhaseLines {
		t.Fatalf("expected phase %q, got %q", PhaseLines, st.Phase)
	}
	if st.Copper {
		t.Fatal("expected copper off on a fresh chip")
	}
}

func TestMonitorServer_Peek(t *testing.T) {
	chip, _, srv := newMonitorTestServer(t)
	chip.HandleWrite(XM_WR_ADDR, 0x0040)
	chip.HandleWrite(XM_DATA, 0xCAFE)

	var word map[string]uint16
	getJSON(t, srv.URL+"/api/vram/0x40", http.StatusOK, &word)
	if word["addr"] != 0x40 || word["value"] != 0xCAFE {
		t.Fatalf("expected 0x40 = 0xCAFE, got %v", word)
	}

	getJSON(t, srv.URL+"/api/xr/0x000D", http.StatusOK, &word)
	if word["value"] != VID_HSIZE {
		t.Fatalf("expected hsize %d, got %v", VID_HSIZE, word)
	}

	var bad map[string]string
	getJSON(t, srv.URL+"/api/vram/zzz", http.StatusBadRequest, &bad)
	if bad["error"] == "" {
		t.Fatal("expected an error message")
	}
}

func TestMonitorServer_FramePNG(t *testing.T) {
	_, _, srv := newMonitorTestServer(t)
	resp, err := http.Get(srv.URL + "/api/frame.png")
	if err != nil {
		t.Fatalf("GET frame: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %q", ct)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != VID_HSIZE || b.Dy() != VID_VSIZE {
		t.Fatalf("expected %dx%d, got %v", VID_HSIZE, VID_VSIZE, b)
	}
}

func TestMonitorServer_CORS(t *testing.T) {
	_, _, srv := newMonitorTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	req.Header.Set("Origin", "http://example.com")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard CORS origin, got %q", got)
	}
}

func TestMonitorServer_WebSocketFrames(t *testing.T) {
	chip, m, srv := newMonitorTestServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var hello FrameEvent
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if hello.Type != "hello" || hello.ID == "" {
		t.Fatalf("expected hello with an id, got %+v", hello)
	}

	deadline := time.Now().Add(2 * time.Second)
	for m.Status().Clients == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	chip.RunFramesForTest(1)

	var ev FrameEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if ev.Type != "frame" || ev.Frame != 1 {
		t.Fatalf("expected frame event 1, got %+v", ev)
	}
}
