package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitwall/pkg/engine"
	"pitwall/pkg/record"
	"pitwall/pkg/telemetry"
)

func TestRunUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"race"}, &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "unknown command: race")
	assert.Contains(t, stderr.String(), "Usage:")
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--help"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "watch")
	assert.Contains(t, stdout.String(), "replay")
	assert.Empty(t, stderr.String())
}

func TestReplayRequiresFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"replay"}, &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "--file")
}

func TestReplayMissingRecording(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"replay", "--file", filepath.Join(t.TempDir(), "nope.pwr")}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "failed to open recording")
}

func TestReplayWritesJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.pwr")
	file, err := os.Create(path)
	require.NoError(t, err)

	w := record.NewWriter(file)
	at := time.Unix(1566572400, 0).UTC()
	for frame := uint32(0); frame < 3; frame++ {
		require.NoError(t, w.Record(engine.Feed{
			Packet: &telemetry.EventPacket{
				Hdr: telemetry.Header{
					FormatVersion:   telemetry.FormatF12019,
					PacketID:        telemetry.PacketIDEvent,
					FrameIdentifier: frame,
				},
				Code: telemetry.EventDRSEnabled,
			},
			ReceivedAt: at.Add(time.Duration(frame) * time.Second),
		}))
	}
	require.NoError(t, file.Close())

	var stdout, stderr bytes.Buffer
	code := run([]string{"replay", "--file", path}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)

	for i, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line %d", i)
		assert.Equal(t, "event", entry["packet"], "line %d", i)
		assert.Equal(t, float64(i), entry["frame"], "line %d", i)
	}
}

func TestLogRejectsBadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"log", "--no-such-flag"}, &stdout, &stderr)

	assert.Equal(t, 2, code)
}
