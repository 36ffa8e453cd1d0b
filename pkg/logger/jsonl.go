// Package logger writes the decoded feed as one JSON object per line, the
// headless counterpart of the dashboard.
package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"pitwall/pkg/engine"
)

type JSONLWriter struct {
	enc *json.Encoder
}

type jsonRecord struct {
	TS         string `json:"ts"`
	Packet     string `json:"packet"`
	Frame      uint32 `json:"frame"`
	SessionUID string `json:"session_uid"`
	Data       any    `json:"data"`
}

func NewJSONLWriter(w io.Writer) *JSONLWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONLWriter{enc: enc}
}

// Consume drains the subscription until the context is cancelled or the hub
// closes the channel.
func (j *JSONLWriter) Consume(ctx context.Context, in <-chan engine.Feed) {
	for {
		select {
		case <-ctx.Done():
			return
		case feed, ok := <-in:
			if !ok {
				return
			}
			_ = j.Write(feed)
		}
	}
}

// Write emits a single feed entry.
func (j *JSONLWriter) Write(feed engine.Feed) error {
	h := feed.Packet.Header()
	return j.enc.Encode(jsonRecord{
		TS:         feed.ReceivedAt.UTC().Format(time.RFC3339Nano),
		Packet:     h.PacketID.String(),
		Frame:      h.FrameIdentifier,
		SessionUID: formatUID(h.SessionUID),
		Data:       feed.Packet,
	})
}

func formatUID(uid uint64) string {
	return fmt.Sprintf("%016x", uid)
}
