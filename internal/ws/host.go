// Package ws bridges the animation to the page. The page opens a control
// socket and reports scroll, pointer, viewport and visibility; finished
// frames stream back on the frames socket for the canvas to blit.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	diag "github.com/coreman2200/latticebg/internal/diagnostics"
	"github.com/coreman2200/latticebg/internal/render"
)

// Control is what the page drives. Events carry raw page units; the
// application normalizes them.
type Control interface {
	ScrollEvent(y, docHeight, viewportH float64)
	PointerEvent(x, y, w, h float64)
	ViewportEvent(w, h int, dpr float64)
	SetVisible(visible bool)
}

// frameInterval throttles the stream; browsers interpolate fine at 20Hz and
// base64 RGBA frames are heavy.
const frameInterval = 50 * time.Millisecond

type Host struct {
	mu          sync.RWMutex
	ctrl        Control
	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool
	frameID     uint64
	lastSend    time.Time
	startTime   time.Time
	FPS         int
}

func NewHost(ctrl Control, fps int) *Host {
	return &Host{
		ctrl:        ctrl,
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
		startTime:   time.Now(),
		FPS:         fps,
	}
}

// Write implements driver.Driver; the frame fans out to every canvas client.
func (h *Host) Write(f *render.Frame) error {
	h.mu.Lock()
	h.frameID++
	id := h.frameID
	if len(h.clients) == 0 || time.Since(h.lastSend) < frameInterval {
		h.mu.Unlock()
		return nil
	}
	h.lastSend = time.Now()
	h.mu.Unlock()

	type frame struct {
		T       int64  `json:"t"`
		FrameID uint64 `json:"frame_id"`
		W       int    `json:"w"`
		H       int    `json:"h"`
		RGBA    []byte `json:"rgba"`
	}
	b, _ := json.Marshal(frame{T: time.Now().UnixNano(), FrameID: id, W: f.W, H: f.H, RGBA: f.Pix})

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write frame")
		}
	}
	return nil
}

func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.Close()
	}
	for c := range h.diagClients {
		c.Close()
	}
	h.clients = map[*websocket.Conn]bool{}
	h.diagClients = map[*websocket.Conn]bool{}
	return nil
}

func (h *Host) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Host) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.diagClients[conn] = true
	h.mu.Unlock()
	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.diagClients, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Host) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg map[string]any
		if err := json.Unmarshal(data, &msg); err != nil {
			h.PushDiag(diag.Diagnostic{Severity: diag.Warn, Code: "CONTROL.BADJSON", Summary: "Unparseable control message"})
			continue
		}
		h.applyControl(msg)
	}
}

func (h *Host) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	resp := map[string]any{
		"frame_id": h.frameID,
		"uptime_s": time.Since(h.startTime).Seconds(),
		"fps":      h.FPS,
		"clients":  len(h.clients),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *Host) applyControl(msg map[string]any) {
	if v, ok := msg["scroll"].(map[string]any); ok {
		y, _ := v["y"].(float64)
		doc, _ := v["docHeight"].(float64)
		vh, _ := v["viewportHeight"].(float64)
		h.ctrl.ScrollEvent(y, doc, vh)
	}
	if v, ok := msg["pointer"].(map[string]any); ok {
		x, _ := v["x"].(float64)
		y, _ := v["y"].(float64)
		pw, _ := v["w"].(float64)
		ph, _ := v["h"].(float64)
		h.ctrl.PointerEvent(x, y, pw, ph)
	}
	if v, ok := msg["viewport"].(map[string]any); ok {
		w, _ := v["w"].(float64)
		ht, _ := v["h"].(float64)
		dpr, ok2 := v["dpr"].(float64)
		if !ok2 || dpr <= 0 {
			dpr = 1
		}
		h.ctrl.ViewportEvent(int(w), int(ht), dpr)
	}
	if v, ok := msg["visible"].(bool); ok {
		h.ctrl.SetVisible(v)
	}
}

// PushDiag fans a diagnostic out to every /diag subscriber.
func (h *Host) PushDiag(d diag.Diagnostic) {
	b, _ := json.Marshal(d)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.diagClients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		_ = c.WriteMessage(websocket.TextMessage, b)
	}
}
