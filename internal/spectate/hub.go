package spectate

import (
	"context"
	"io"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/invaders/internal/loop/world"
)

// Stream tuning.
const (
	DefaultFPS   = 30
	sendBuffer   = 4 // Frames queued per viewer before frames are dropped
	writeTimeout = 5 * time.Second
)

// Options configures a Hub.
type Options struct {
	FPS    int
	Logger *log.Logger
	Rand   *rand.Rand
}

// Hub plays one demo game and broadcasts every frame as a msgpack encoded
// world.Snapshot over websocket to all connected viewers.
type Hub struct {
	world  *world.World
	pilot  Autopilot
	logger *log.Logger
	fps    int

	upgrader websocket.Upgrader

	mu      sync.Mutex
	viewers map[*viewer]struct{}
	latest  []byte
	closed  bool
}

type viewer struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a hub with a fresh demo world.
func NewHub(opts Options) (*Hub, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}

	worldOpts := []world.Option{world.WithLogger(logger.With("game", "spectate"))}
	if opts.Rand != nil {
		worldOpts = append(worldOpts, world.WithRand(opts.Rand))
	}
	wld, err := world.New(world.DefaultConfig(), worldOpts...)
	if err != nil {
		return nil, err
	}

	return &Hub{
		world:  wld,
		logger: logger,
		fps:    fps,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		viewers: make(map[*viewer]struct{}),
	}, nil
}

// Run steps the demo game at the hub's frame rate until ctx is cancelled,
// then disconnects every viewer.
func (h *Hub) Run(ctx context.Context) error {
	frame := time.Second / time.Duration(h.fps)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	defer h.closeAll()

	frameMs := float64(frame) / float64(time.Millisecond)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			h.step(frameMs)
		}
	}
}

// step advances the demo one frame and broadcasts the result.
func (h *Hub) step(frameMs float64) {
	snap := h.world.Snapshot()
	h.world.Tick(frameMs, h.pilot.Next(&snap))

	snap = h.world.Snapshot()
	data, err := msgpack.Marshal(&snap)
	if err != nil {
		h.logger.Error("encoding snapshot", "err", err)
		return
	}
	h.broadcast(data)
}

// broadcast queues a frame for every viewer. Slow viewers miss frames.
func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = data
	for v := range h.viewers {
		select {
		case v.send <- data:
		default:
		}
	}
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

// ServeHTTP upgrades the request to a websocket and streams frames until
// the viewer disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	v := &viewer{conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.register(v) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		conn.Close()
		return
	}
	h.logger.Info("viewer connected", "remote", r.RemoteAddr, "viewers", h.Viewers())

	go h.writeLoop(v)

	// Viewers never send anything useful; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.unregister(v)
	h.logger.Info("viewer disconnected", "remote", r.RemoteAddr)
}

func (h *Hub) register(v *viewer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.viewers[v] = struct{}{}
	if h.latest != nil {
		v.send <- h.latest
	}
	return true
}

func (h *Hub) unregister(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.viewers[v]; ok {
		delete(h.viewers, v)
		close(v.send)
	}
}

// closeAll stops accepting viewers and ends every write loop.
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for v := range h.viewers {
		delete(h.viewers, v)
		close(v.send)
	}
}

// writeLoop sends queued frames until the send channel closes.
func (h *Hub) writeLoop(v *viewer) {
	defer v.conn.Close()
	for data := range v.send {
		_ = v.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := v.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			return
		}
	}
	_ = v.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
}
