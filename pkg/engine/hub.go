package engine

import (
	"context"
	"time"

	"pitwall/pkg/telemetry"
)

// Feed is one decoded datagram flowing through the pipeline.
type Feed struct {
	Packet     telemetry.Packet
	ReceivedAt time.Time
}

// Hub fans decoded packets out to any number of consumers: the dashboard,
// the session log, the websocket bridge, the recorder. Publishing never
// blocks; a consumer that cannot keep up misses packets rather than stalling
// the poll loop.
type Hub struct {
	broadcast  chan Feed
	register   chan chan Feed
	unregister chan chan Feed
	clients    map[chan Feed]struct{}
	clientBuf  int
}

type Option func(*Hub)

func WithBroadcastBuffer(size int) Option {
	return func(h *Hub) {
		if size > 0 {
			h.broadcast = make(chan Feed, size)
		}
	}
}

func WithClientBuffer(size int) Option {
	return func(h *Hub) {
		if size > 0 {
			h.clientBuf = size
		}
	}
}

func NewHub(opts ...Option) *Hub {
	h := &Hub{
		broadcast:  make(chan Feed, 256),
		register:   make(chan chan Feed),
		unregister: make(chan chan Feed),
		clients:    make(map[chan Feed]struct{}),
		clientBuf:  128,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for ch := range h.clients {
				close(ch)
			}
			return
		case ch := <-h.register:
			h.clients[ch] = struct{}{}
		case ch := <-h.unregister:
			if _, ok := h.clients[ch]; ok {
				delete(h.clients, ch)
				close(ch)
			}
		case feed := <-h.broadcast:
			for ch := range h.clients {
				select {
				case ch <- feed:
				default:
				}
			}
		}
	}
}

func (h *Hub) Subscribe() chan Feed {
	return h.SubscribeWithBuffer(h.clientBuf)
}

func (h *Hub) SubscribeWithBuffer(size int) chan Feed {
	if size <= 0 {
		size = h.clientBuf
	}
	ch := make(chan Feed, size)
	h.register <- ch
	return ch
}

func (h *Hub) Unsubscribe(ch chan Feed) {
	h.unregister <- ch
}

func (h *Hub) Publish(feed Feed) {
	h.broadcast <- feed
}
