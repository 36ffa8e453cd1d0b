// Package publish forwards decoded packets to a NATS subject tree so other
// services (stint analysis, storage) can consume the feed off-box.
package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"

	"pitwall/pkg/engine"
)

type Publisher struct {
	conn          *nats.Conn
	subjectPrefix string
	log           *logrus.Logger
}

// Connect dials the NATS server with unlimited reconnects; subjectPrefix
// roots the per-packet-kind subjects, e.g. "pitwall.feed".
func Connect(url, subjectPrefix string, log *logrus.Logger) (*Publisher, error) {
	options := []nats.Option{
		nats.Name("pitwall"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.WithError(err).Warn("nats disconnected")
		}),
		nats.ReconnectHandler(func(*nats.Conn) {
			log.Info("nats reconnected")
		}),
	}

	conn, err := nats.Connect(url, options...)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	return &Publisher{conn: conn, subjectPrefix: subjectPrefix, log: log}, nil
}

// Consume publishes every feed from the subscription until the context is
// cancelled. Publish failures are logged and skipped; the feed keeps
// flowing.
func (p *Publisher) Consume(ctx context.Context, in <-chan engine.Feed) {
	for {
		select {
		case <-ctx.Done():
			return
		case feed, ok := <-in:
			if !ok {
				return
			}
			if err := p.Publish(feed); err != nil {
				p.log.WithError(err).Warn("publish failed")
			}
		}
	}
}

// Publish sends one packet to <prefix>.<kind>, msgpack-encoded.
func (p *Publisher) Publish(feed engine.Feed) error {
	payload, err := msgpack.Marshal(feed.Packet)
	if err != nil {
		return fmt.Errorf("encode %s packet: %w", feed.Packet.Header().PacketID, err)
	}
	return p.conn.Publish(p.Subject(feed), payload)
}

// Subject maps a feed to its NATS subject.
func (p *Publisher) Subject(feed engine.Feed) string {
	return p.subjectPrefix + "." + feed.Packet.Header().PacketID.String()
}

func (p *Publisher) Close() {
	_ = p.conn.Drain()
}
