// Package bridge exposes the decoded feed over a websocket so external
// dashboards can watch the same session the terminal renders.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"pitwall/pkg/engine"
	"pitwall/pkg/telemetry"
)

// One channel per packet kind: channel id = packet id + 1 (0 is reserved).
const channelIDOffset = 1

type Config struct {
	WSAddr  string
	Name    string
	Topic   string
	SendBuf int
}

func DefaultConfig() Config {
	return Config{
		WSAddr:  "127.0.0.1:8765",
		Name:    "pitwall",
		Topic:   "pitwall/feed",
		SendBuf: 256,
	}
}

type Server struct {
	cfg     Config
	hub     *engine.Hub
	log     *logrus.Logger
	clients map[*client]struct{}
	mu      sync.RWMutex
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	subs map[uint32]uint64
	mu   sync.RWMutex
	once sync.Once
}

// feedMessage is the JSON body broadcast for every decoded packet.
type feedMessage struct {
	TS         string           `json:"ts"`
	Packet     string           `json:"packet"`
	Frame      uint32           `json:"frame"`
	SessionUID string           `json:"session_uid"`
	Data       telemetry.Packet `json:"data"`
}

func NewServer(cfg Config, hub *engine.Hub, log *logrus.Logger) *Server {
	defaults := DefaultConfig()
	if cfg.WSAddr == "" {
		cfg.WSAddr = defaults.WSAddr
	}
	if cfg.Name == "" {
		cfg.Name = defaults.Name
	}
	if cfg.Topic == "" {
		cfg.Topic = defaults.Topic
	}
	if cfg.SendBuf <= 0 {
		cfg.SendBuf = defaults.SendBuf
	}
	return &Server{
		cfg:     cfg,
		hub:     hub,
		log:     log,
		clients: make(map[*client]struct{}),
	}
}

func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleWS)

	httpServer := &http.Server{
		Addr:    s.cfg.WSAddr,
		Handler: mux,
	}

	sub := s.hub.Subscribe()
	go s.broadcastLoop(ctx, sub)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	s.log.WithField("addr", s.cfg.WSAddr).Info("bridge listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = httpServer.Shutdown(shutdownCtx)
		cancel()
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := newClient(conn, s.cfg.SendBuf)
	s.addClient(c)

	if err := conn.WriteJSON(s.serverInfo()); err != nil {
		c.close()
		s.removeClient(c)
		return
	}
	if err := conn.WriteJSON(s.advertise()); err != nil {
		c.close()
		s.removeClient(c)
		return
	}

	go c.writeLoop()
	c.readLoop(s.supportedChannels())

	c.close()
	s.removeClient(c)
}

func (s *Server) supportedChannels() map[uint64]struct{} {
	channels := make(map[uint64]struct{})
	for id := telemetry.PacketIDMotion; id <= telemetry.PacketIDCarStatus; id++ {
		channels[channelID(id)] = struct{}{}
	}
	return channels
}

func (s *Server) serverInfo() ServerInfoMsg {
	return ServerInfoMsg{
		Op:           OpServerInfo,
		Name:         s.cfg.Name,
		Capabilities: []string{},
		SessionID:    fmt.Sprintf("%d", time.Now().UTC().UnixNano()),
	}
}

func (s *Server) advertise() AdvertiseMsg {
	var channels []Channel
	for id := telemetry.PacketIDMotion; id <= telemetry.PacketIDCarStatus; id++ {
		channels = append(channels, Channel{
			ID:         channelID(id),
			Topic:      s.cfg.Topic + "/" + id.String(),
			Encoding:   "json",
			SchemaName: "pitwall." + id.String(),
		})
	}
	return AdvertiseMsg{Op: OpAdvertise, Channels: channels}
}

func (s *Server) broadcastLoop(ctx context.Context, sub <-chan engine.Feed) {
	for {
		select {
		case <-ctx.Done():
			return
		case feed, ok := <-sub:
			if !ok {
				return
			}
			s.broadcastFeed(feed)
		}
	}
}

func (s *Server) broadcastFeed(feed engine.Feed) {
	ts := feed.ReceivedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	h := feed.Packet.Header()

	msg := feedMessage{
		TS:         ts.UTC().Format(time.RFC3339Nano),
		Packet:     h.PacketID.String(),
		Frame:      h.FrameIdentifier,
		SessionUID: fmt.Sprintf("%016x", h.SessionUID),
		Data:       feed.Packet,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}

	logTime := uint64(ts.UnixNano())
	ch := channelID(h.PacketID)
	for _, c := range s.snapshotClients() {
		for _, subID := range c.subIDsForChannel(ch) {
			c.trySend(encodeMessageData(subID, logTime, payload))
		}
	}
}

func (s *Server) addClient(c *client) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
}

func (s *Server) snapshotClients() []*client {
	s.mu.RLock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.RUnlock()
	return clients
}

func channelID(id telemetry.PacketID) uint64 {
	return uint64(id) + channelIDOffset
}

func newClient(conn *websocket.Conn, sendBuf int) *client {
	if sendBuf <= 0 {
		sendBuf = DefaultConfig().SendBuf
	}
	return &client{
		conn: conn,
		send: make(chan []byte, sendBuf),
		subs: make(map[uint32]uint64),
	}
}

func (c *client) readLoop(supportedChannels map[uint64]struct{}) {
	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var header struct {
			Op string `json:"op"`
		}
		if err := json.Unmarshal(data, &header); err != nil {
			continue
		}

		switch header.Op {
		case OpSubscribe:
			var msg SubscribeMsg
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			for _, sub := range msg.Subscriptions {
				if _, ok := supportedChannels[sub.ChannelID]; ok {
					c.addSub(sub.ID, sub.ChannelID)
				}
			}
		case OpUnsubscribe:
			var msg UnsubscribeMsg
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			for _, id := range msg.SubscriptionIDs {
				c.removeSub(id)
			}
		}
	}
}

func (c *client) writeLoop() {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			c.close()
			return
		}
	}
}

func (c *client) trySend(msg []byte) {
	defer func() {
		_ = recover()
	}()
	select {
	case c.send <- msg:
	default:
	}
}

func (c *client) addSub(id uint32, channelID uint64) {
	c.mu.Lock()
	c.subs[id] = channelID
	c.mu.Unlock()
}

func (c *client) removeSub(id uint32) {
	c.mu.Lock()
	delete(c.subs, id)
	c.mu.Unlock()
}

func (c *client) subIDsForChannel(channelID uint64) []uint32 {
	c.mu.RLock()
	ids := make([]uint32, 0, len(c.subs))
	for id, ch := range c.subs {
		if ch == channelID {
			ids = append(ids, id)
		}
	}
	c.mu.RUnlock()
	return ids
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.send)
		_ = c.conn.Close()
	})
}
