package signalsafe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func captureLogger(buf *bytes.Buffer) *Logger {
	return NewLogger(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger_Helpers(t *testing.T) {
	var buf bytes.Buffer
	l := captureLogger(&buf).WithPath("/tmp/dump")
	ctx := context.Background()

	l.LogStart(ctx, []unix.Signal{unix.SIGUSR1, unix.Signal(200)})
	l.LogDump(ctx, unix.SIGUSR1, 3, 64)
	l.LogDrop(ctx, unix.SIGUSR1, DropRateLimited)
	l.LogStop(ctx, 3, nil)
	l.LogStop(ctx, 3, errors.New("boom"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 5)

	assert.Equal(t, "recorder started", lines[0]["msg"])
	assert.Equal(t, []any{"SIGUSR1", "signal 200"}, lines[0]["signals"])
	assert.Equal(t, "/tmp/dump", lines[0]["path"])

	assert.Equal(t, "dump written", lines[1]["msg"])
	assert.Equal(t, "DEBUG", lines[1]["level"])
	assert.InDelta(t, 64, lines[1]["bytes"], 0)

	assert.Equal(t, "dump dropped", lines[2]["msg"])
	assert.Equal(t, "rate_limited", lines[2]["reason"])

	assert.Equal(t, "recorder stopped", lines[3]["msg"])
	assert.Equal(t, "recorder failed", lines[4]["msg"])
	assert.Equal(t, "boom", lines[4]["error"])
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestBasicMetricsCollector(t *testing.T) {
	var m BasicMetricsCollector

	assert.Zero(t, m.GetStats().DumpAvgNanos)

	m.RecordDump(unix.SIGUSR1, 100, 10)
	m.RecordDump(unix.SIGUSR1, 50, 30)
	m.RecordDrop(unix.SIGUSR1, DropRateLimited)
	m.RecordDrop(unix.SIGUSR1, DropBudgetExhausted)
	m.RecordDrop(unix.SIGUSR1, DropBudgetExhausted)

	assert.Equal(t, BasicMetricsStats{
		DumpCount:       2,
		DumpBytes:       150,
		DumpAvgNanos:    20,
		DropRateLimited: 1,
		DropBudget:      2,
	}, m.GetStats())
}
