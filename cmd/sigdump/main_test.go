package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/hupe1980/signalsafe"
	"github.com/hupe1980/signalsafe/file"
	"github.com/hupe1980/signalsafe/format"
)

func TestParseSignals(t *testing.T) {
	sigs, err := parseSignals([]string{"USR1", "sigusr2", "SIGQUIT", "10"})
	require.NoError(t, err)
	assert.Equal(t, []unix.Signal{unix.SIGUSR1, unix.SIGUSR2, unix.SIGQUIT, unix.Signal(10)}, sigs)

	_, err = parseSignals([]string{"NOPE"})
	assert.Error(t, err)

	_, err = parseSignals([]string{"-3"})
	assert.Error(t, err)
}

func writeDump(t *testing.T, messages ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "app.dump")
	f := file.CreateAndOpen(path, file.WriteOnly)
	defer f.Destroy()

	rec, err := signalsafe.NewRecorder(f)
	require.NoError(t, err)

	for _, msg := range messages {
		rec.Record(unix.SIGUSR1, "%", format.String(msg))
	}

	return path
}

func TestDecode_Text(t *testing.T) {
	path := writeDump(t, "first", "second")

	var out bytes.Buffer
	require.NoError(t, decode(&out, path, false))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "1 SIGUSR1 "))
	assert.True(t, strings.HasSuffix(lines[0], " first"))
	assert.True(t, strings.HasPrefix(lines[1], "2 SIGUSR1 "))
	assert.True(t, strings.HasSuffix(lines[1], " second"))
}

func TestDecode_JSON(t *testing.T) {
	path := writeDump(t, "only")

	var out bytes.Buffer
	require.NoError(t, decode(&out, path, true))

	var got decodedRecord
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, uint64(1), got.Seq)
	assert.Equal(t, "SIGUSR1", got.Signal)
	assert.Equal(t, "only", got.Message)
	assert.False(t, got.Truncated)
	assert.NotZero(t, got.Seconds)
}

func TestDecode_MissingFile(t *testing.T) {
	err := decode(&bytes.Buffer{}, filepath.Join(t.TempDir(), "missing"), false)
	assert.ErrorIs(t, err, unix.ENOENT)
}

func decodeJSON(t *testing.T, path string) []decodedRecord {
	t.Helper()

	var out bytes.Buffer
	require.NoError(t, decode(&out, path, true))

	var recs []decodedRecord
	dec := json.NewDecoder(&out)
	for dec.More() {
		var rec decodedRecord
		require.NoError(t, dec.Decode(&rec))
		recs = append(recs, rec)
	}
	return recs
}

func TestRunRecord_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.dump")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runRecord(ctx, recordFlags{
		out:        path,
		signals:    []string{"USR2"},
		maxMessage: signalsafe.DefaultMaxMessageSize,
		heartbeat:  time.Millisecond,
	})
	require.NoError(t, err)

	assert.FileExists(t, path)
	assert.Empty(t, decodeJSON(t, path))
}

func TestRunRecord_Heartbeat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.dump")

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := runRecord(ctx, recordFlags{
		out:        path,
		signals:    []string{"USR2"},
		maxMessage: signalsafe.DefaultMaxMessageSize,
		heartbeat:  20 * time.Millisecond,
	})
	require.NoError(t, err)

	recs := decodeJSON(t, path)
	require.NotEmpty(t, recs)
	for i, rec := range recs {
		assert.Equal(t, uint64(i+1), rec.Seq)
		assert.Equal(t, "0", rec.Signal)
		assert.True(t, strings.HasPrefix(rec.Message, "heartbeat uptime="), rec.Message)
	}
}

func TestRunRecord_InvalidFlags(t *testing.T) {
	dir := t.TempDir()

	err := runRecord(context.Background(), recordFlags{
		out:     filepath.Join(dir, "a.dump"),
		signals: []string{"NOPE"},
	})
	assert.Error(t, err)

	err = runRecord(context.Background(), recordFlags{
		out:        filepath.Join(dir, "b.dump"),
		signals:    []string{"USR2"},
		maxBytes:   1 << 63,
		maxMessage: signalsafe.DefaultMaxMessageSize,
	})
	assert.Error(t, err)

	existing := filepath.Join(dir, "c.dump")
	require.NoError(t, os.WriteFile(existing, nil, 0o600))
	err = runRecord(context.Background(), recordFlags{
		out:        existing,
		signals:    []string{"USR2"},
		maxMessage: signalsafe.DefaultMaxMessageSize,
	})
	assert.ErrorIs(t, err, unix.EEXIST)
}
