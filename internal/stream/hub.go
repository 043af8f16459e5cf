// Package stream serves a live forest over websocket connections.
//
// A single goroutine (Run) owns the forest. Clients receive JSON frames after
// every generation and may send Control messages back; controls are queued to
// the owning goroutine so the engine is never touched concurrently.
package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"forest-sim/internal/core"
	"forest-sim/internal/sims/forest"
	"forest-sim/internal/telemetry"
)

// ErrUnknownControl is returned for control messages the hub cannot apply.
var ErrUnknownControl = errors.New("unknown control")

const (
	sendBuffer   = 4
	writeTimeout = 5 * time.Second
)

// Frame is one broadcast snapshot. Cells holds one state byte per cell in
// row-major order and is base64 encoded on the wire.
type Frame struct {
	Generation uint64           `json:"generation"`
	Width      int              `json:"width"`
	Height     int              `json:"height"`
	Paused     bool             `json:"paused"`
	Cells      []uint8          `json:"cells"`
	Census     telemetry.Record `json:"census"`
	Params     forest.Params    `json:"params"`
}

// Control is a client request applied between generations.
//
// Ops: "set" (Key, Value), "ignite" (X, Y), "clear", "pause", "resume",
// "step" and "reset" (Value is the seed, 0 returns to the construction seed).
type Control struct {
	Op    string  `json:"op"`
	Key   string  `json:"key,omitempty"`
	Value float64 `json:"value,omitempty"`
	X     int     `json:"x,omitempty"`
	Y     int     `json:"y,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan Frame
}

// Hub couples a forest to its websocket subscribers.
type Hub struct {
	forest   *forest.Forest
	clock    *core.FixedStep
	logger   *slog.Logger
	upgrader websocket.Upgrader

	register   chan *client
	unregister chan *client
	controls   chan Control
	done       chan struct{}

	mu      sync.Mutex
	clients map[*client]struct{}

	paused bool
}

// NewHub creates a hub advancing f at tps external ticks per second.
func NewHub(f *forest.Forest, tps int, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		forest: f,
		clock:  core.NewFixedStep(tps),
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		register:   make(chan *client),
		unregister: make(chan *client),
		controls:   make(chan Control, 16),
		done:       make(chan struct{}),
		clients:    make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and subscribes the connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	c := &client{conn: conn, send: make(chan Frame, sendBuffer)}

	select {
	case h.register <- c:
	case <-r.Context().Done():
		conn.Close()
		return
	case <-h.done:
		conn.Close()
		return
	}
	h.logger.Info("client connected", "remote", conn.RemoteAddr().String())

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) readLoop(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()
	for {
		var ctl Control
		if err := c.conn.ReadJSON(&ctl); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("client read failed", "error", err)
			}
			return
		}
		select {
		case h.controls <- ctl:
		case <-h.done:
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	for frame := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteJSON(frame); err != nil {
			h.logger.Warn("client write failed", "error", err)
			c.conn.Close()
			for range c.send {
			}
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Run drives the forest until ctx is cancelled. It must be running for
// ServeHTTP to accept connections and may be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	ticker := time.NewTicker(h.clock.Interval())
	defer ticker.Stop()
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			h.mu.Unlock()
			h.deliver(c, h.frame())
		case c := <-h.unregister:
			h.drop(c)
		case ctl := <-h.controls:
			if err := h.Apply(ctl); err != nil {
				h.logger.Warn("control rejected", "op", ctl.Op, "key", ctl.Key, "error", err)
				continue
			}
			h.broadcast()
		case <-ticker.C:
			if h.paused {
				h.clock.Due()
				continue
			}
			advanced := false
			for n := h.clock.Due(); n > 0; n-- {
				if h.forest.Tick() {
					advanced = true
				}
			}
			if advanced {
				h.broadcast()
			}
		}
	}
}

// Apply executes one control against the forest. It is only safe on the
// goroutine running Run, or before Run starts.
func (h *Hub) Apply(ctl Control) error {
	switch ctl.Op {
	case "set":
		if h.forest.SetFloatParameter(ctl.Key, ctl.Value) {
			return nil
		}
		if h.forest.SetIntParameter(ctl.Key, int(ctl.Value)) {
			return nil
		}
		return fmt.Errorf("%w: parameter %q", ErrUnknownControl, ctl.Key)
	case "ignite":
		if !h.forest.Ignite(ctl.X, ctl.Y) {
			return fmt.Errorf("ignite (%d,%d): outside %dx%d grid", ctl.X, ctl.Y, h.forest.Size().W, h.forest.Size().H)
		}
	case "clear":
		h.forest.Clear()
	case "pause":
		h.paused = true
	case "resume":
		h.paused = false
	case "step":
		h.forest.Step()
	case "reset":
		h.forest.Reset(int64(ctl.Value))
	default:
		return fmt.Errorf("%w: op %q", ErrUnknownControl, ctl.Op)
	}
	return nil
}

// Clients reports the number of connected subscribers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) frame() Frame {
	size := h.forest.Size()
	cells := make([]uint8, len(h.forest.Cells()))
	copy(cells, h.forest.Cells())
	return Frame{
		Generation: h.forest.Generation(),
		Width:      size.W,
		Height:     size.H,
		Paused:     h.paused,
		Cells:      cells,
		Census:     telemetry.FromCensus(h.forest.Census()),
		Params:     h.forest.Params(),
	}
}

func (h *Hub) broadcast() {
	frame := h.frame()
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.deliverLocked(c, frame)
	}
}

func (h *Hub) deliver(c *client, frame Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deliverLocked(c, frame)
}

// deliverLocked skips the frame for clients whose buffer is full.
func (h *Hub) deliverLocked(c *client, frame Frame) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- frame:
	default:
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.logger.Info("client disconnected", "remote", c.conn.RemoteAddr().String())
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
