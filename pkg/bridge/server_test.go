package bridge

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"io"
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitwall/pkg/engine"
	"pitwall/pkg/telemetry"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestAdvertiseCoversEveryPacketKind(t *testing.T) {
	srv := NewServer(DefaultConfig(), nil, quietLogger())
	msg := srv.advertise()

	require.Len(t, msg.Channels, 8)
	assert.Equal(t, OpAdvertise, msg.Op)

	seen := make(map[uint64]struct{})
	for _, ch := range msg.Channels {
		seen[ch.ID] = struct{}{}
		assert.Equal(t, "json", ch.Encoding)
		assert.Contains(t, ch.Topic, "pitwall/feed/")
	}
	// Channel ids are packet id + 1; 0 is reserved.
	for id := telemetry.PacketIDMotion; id <= telemetry.PacketIDCarStatus; id++ {
		assert.Contains(t, seen, uint64(id)+1)
	}
}

func TestEncodeMessageDataFraming(t *testing.T) {
	payload := []byte(`{"packet":"event"}`)
	frame := encodeMessageData(7, 1234567890, payload)

	require.Len(t, frame, 13+len(payload))
	assert.Equal(t, uint8(binaryOpMessageData), frame[0])
	assert.Equal(t, uint32(7), binary.LittleEndian.Uint32(frame[1:5]))
	assert.Equal(t, uint64(1234567890), binary.LittleEndian.Uint64(frame[5:13]))
	assert.Equal(t, payload, frame[13:])
}

type session struct {
	hub  *engine.Hub
	conn *websocket.Conn
	adv  AdvertiseMsg
}

func startSession(t *testing.T) *session {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.WSAddr = ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	hub := engine.NewHub()
	go hub.Run(ctx)

	srv := NewServer(cfg, hub, quietLogger())
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(ctx)
	}()

	dialURL := url.URL{Scheme: "ws", Host: cfg.WSAddr, Path: "/"}
	var conn *websocket.Conn
	for i := 0; i < 80; i++ {
		conn, _, err = websocket.DefaultDialer.Dial(dialURL.String(), nil)
		if err == nil {
			break
		}
		time.Sleep(25 * time.Millisecond)
	}
	require.NoError(t, err, "dial bridge websocket")

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case err := <-errCh:
			assert.NoError(t, err)
		case <-time.After(3 * time.Second):
			t.Fatal("timed out waiting for bridge shutdown")
		}
	})

	_, infoRaw, err := readWS(conn)
	require.NoError(t, err)
	var info ServerInfoMsg
	require.NoError(t, json.Unmarshal(infoRaw, &info))
	require.Equal(t, OpServerInfo, info.Op)
	assert.Equal(t, cfg.Name, info.Name)

	_, advRaw, err := readWS(conn)
	require.NoError(t, err)
	s := &session{hub: hub, conn: conn}
	require.NoError(t, json.Unmarshal(advRaw, &s.adv))
	require.Equal(t, OpAdvertise, s.adv.Op)
	return s
}

func readWS(conn *websocket.Conn) (int, []byte, error) {
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	msgType, raw, err := conn.ReadMessage()
	_ = conn.SetReadDeadline(time.Time{})
	return msgType, raw, err
}

func (s *session) channelForTopic(t *testing.T, topic string) Channel {
	t.Helper()
	for _, ch := range s.adv.Channels {
		if ch.Topic == topic {
			return ch
		}
	}
	t.Fatalf("no advertised channel for topic %s", topic)
	return Channel{}
}

func TestBridgeDeliversSubscribedFeed(t *testing.T) {
	s := startSession(t)
	ch := s.channelForTopic(t, "pitwall/feed/event")

	require.NoError(t, s.conn.WriteJSON(SubscribeMsg{
		Op:            OpSubscribe,
		Subscriptions: []Subscription{{ID: 3, ChannelID: ch.ID}},
	}))
	// Subscription handling is async; give the read loop a moment.
	time.Sleep(50 * time.Millisecond)

	feed := engine.Feed{
		Packet: &telemetry.EventPacket{
			Hdr: telemetry.Header{
				FormatVersion:   telemetry.FormatF12019,
				PacketID:        telemetry.PacketIDEvent,
				FrameIdentifier: 88,
			},
			Code: telemetry.EventChequeredFlag,
		},
		ReceivedAt: time.Now(),
	}

	s.hub.Publish(feed)

	var frame []byte
	for frame == nil {
		msgType, raw, err := readWS(s.conn)
		require.NoError(t, err, "no binary frame arrived")
		if msgType == websocket.BinaryMessage {
			frame = raw
		}
	}

	require.GreaterOrEqual(t, len(frame), 13)
	assert.Equal(t, uint8(binaryOpMessageData), frame[0])
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(frame[1:5]))

	var body map[string]any
	require.NoError(t, json.Unmarshal(frame[13:], &body))
	assert.Equal(t, "event", body["packet"])
	assert.Equal(t, float64(88), body["frame"])
}

// A client that never subscribed must not receive feed frames.
func TestBridgeSkipsUnsubscribedClient(t *testing.T) {
	s := startSession(t)

	s.hub.Publish(engine.Feed{
		Packet: &telemetry.EventPacket{
			Hdr:  telemetry.Header{PacketID: telemetry.PacketIDEvent},
			Code: telemetry.EventSessionStarted,
		},
		ReceivedAt: time.Now(),
	})

	_ = s.conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	msgType, _, err := s.conn.ReadMessage()
	if err == nil {
		assert.NotEqual(t, websocket.BinaryMessage, msgType)
	}
}
