// Package feed streams match snapshots to read-only websocket viewers.
package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"robotchallenge/internal/combat"
)

const writeTimeout = 5 * time.Second

type subscriber struct {
	id   string
	msgs chan []byte
}

// Hub fans snapshots out to every connected viewer. Publish never blocks:
// a viewer whose buffer is full misses that snapshot.
type Hub struct {
	logger *slog.Logger
	buffer int

	// ctx outlives the HTTP server so queued snapshots can still be written
	// during shutdown; stop cancels it when draining takes too long.
	ctx    context.Context
	stop   context.CancelFunc
	active sync.WaitGroup

	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	last   []byte
	closed bool

	dropped atomic.Int64
}

func NewHub(logger *slog.Logger, buffer int) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	if buffer <= 0 {
		buffer = 16
	}
	ctx, stop := context.WithCancel(context.Background())
	return &Hub{
		logger: logger,
		buffer: buffer,
		ctx:    ctx,
		stop:   stop,
		subs:   make(map[*subscriber]struct{}),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to accept viewer", "err", err)
		return
	}
	defer conn.CloseNow()

	// Viewers never send; CloseRead handles control frames and cancels ctx
	// once the peer goes away.
	ctx := conn.CloseRead(h.ctx)

	sub, ok := h.subscribe()
	if !ok {
		conn.Close(websocket.StatusGoingAway, "feed closed")
		return
	}
	defer h.unsubscribe(sub)
	h.logger.DebugContext(ctx, "viewer connected", "viewer", sub.id, "viewers", h.Count())

	for {
		select {
		case <-ctx.Done():
			h.logger.DebugContext(ctx, "viewer left", "viewer", sub.id)
			return
		case msg, open := <-sub.msgs:
			if !open {
				conn.Close(websocket.StatusNormalClosure, "match over")
				return
			}
			if err := h.write(ctx, conn, msg); err != nil {
				h.logger.DebugContext(ctx, "viewer write failed", "viewer", sub.id, "err", err)
				return
			}
		}
	}
}

func (h *Hub) write(ctx context.Context, conn *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, msg)
}

func (h *Hub) subscribe() (*subscriber, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	sub := &subscriber{id: uuid.NewString(), msgs: make(chan []byte, h.buffer)}
	if h.last != nil {
		sub.msgs <- h.last
	}
	h.subs[sub] = struct{}{}
	h.active.Add(1)
	return sub, true
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		h.active.Done()
	}
}

// Publish encodes snap once and queues it for every viewer. Late viewers
// start from the most recent snapshot.
func (h *Hub) Publish(snap combat.Snapshot) error {
	msg, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.last = msg
	for sub := range h.subs {
		select {
		case sub.msgs <- msg:
		default:
			h.dropped.Add(1)
		}
	}
	return nil
}

// Observer adapts the hub to combat.WithObserver, pausing delay after each
// published step so viewers can follow along.
func (h *Hub) Observer(ctx context.Context, delay time.Duration) func(combat.Snapshot) {
	return func(snap combat.Snapshot) {
		if err := h.Publish(snap); err != nil {
			h.logger.WarnContext(ctx, "failed to publish snapshot", "step", snap.Step, "err", err)
		}
		if delay <= 0 {
			return
		}
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
		case <-t.C:
		}
	}
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Dropped reports how many snapshots were skipped for slow viewers.
func (h *Hub) Dropped() int64 { return h.dropped.Load() }

// Close stops accepting viewers and tells every stream to end once its
// queued snapshots are written. Use Drain to wait for that to happen.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		close(sub.msgs)
	}
}

// Drain closes the hub and waits for every viewer stream to finish. If ctx
// ends first the remaining streams are cut off without a close handshake.
func (h *Hub) Drain(ctx context.Context) error {
	h.Close()
	done := make(chan struct{})
	go func() {
		h.active.Wait()
		close(done)
	}()
	select {
	case <-done:
		h.stop()
		return nil
	case <-ctx.Done():
		h.stop()
		<-done
		return ctx.Err()
	}
}
