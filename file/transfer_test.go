package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"

	"github.com/hupe1980/signalsafe/fatal"
)

// script replays a fixed sequence of attempt results, copying from src for
// successful reads.
type script struct {
	steps []step
	src   []byte
	calls int
}

type step struct {
	n   int
	err error
}

func (s *script) call(_ int, p []byte) (int, error) {
	st := s.steps[s.calls]
	s.calls++
	if st.err != nil {
		return -1, st.err
	}
	n := copy(p[:st.n], s.src)
	s.src = s.src[n:]
	return n, nil
}

func TestReadFull_AccumulatesPartialReads(t *testing.T) {
	s := &script{
		steps: []step{{n: 2}, {err: unix.EINTR}, {n: 1}, {n: 3}},
		src:   []byte("abcdef"),
	}
	buf := make([]byte, 6)

	n := readFull(3, buf, s.call)

	assert.Equal(t, 6, n)
	assert.Equal(t, "abcdef", string(buf))
	assert.Equal(t, 4, s.calls)
}

func TestReadFull_ZeroIsEndOfStream(t *testing.T) {
	s := &script{
		steps: []step{{n: 2}, {err: unix.EINTR}, {n: 0}},
		src:   []byte("ab"),
	}
	buf := make([]byte, 8)

	assert.Equal(t, 2, readFull(3, buf, s.call))
	assert.Equal(t, 3, s.calls)
}

func TestReadFull_EmptyBufferMakesNoCall(t *testing.T) {
	s := &script{}
	assert.Equal(t, 0, readFull(3, nil, s.call))
	assert.Equal(t, 0, s.calls)
}

func TestReadFull_OtherErrorIsFatal(t *testing.T) {
	s := &script{steps: []step{{err: unix.EINTR}, {err: unix.EAGAIN}}}

	assert.PanicsWithValue(t, fatal.Error{Op: fatal.OpRead, Errno: unix.EAGAIN}, func() {
		readFull(3, make([]byte, 1), s.call)
	})
}

func TestWriteFull_RetriesUntilComplete(t *testing.T) {
	var written []byte
	calls := 0
	write := func(_ int, p []byte) (int, error) {
		calls++
		if calls%2 == 1 {
			return -1, unix.EINTR
		}
		n := min(len(p), 3)
		written = append(written, p[:n]...)
		return n, nil
	}

	n := writeFull(3, []byte("0123456789"), write)

	assert.Equal(t, 10, n)
	assert.Equal(t, "0123456789", string(written))
	assert.Equal(t, 8, calls)
}

func TestWriteFull_OtherErrorIsFatal(t *testing.T) {
	write := func(int, []byte) (int, error) { return -1, unix.EPIPE }

	assert.PanicsWithValue(t, fatal.Error{Op: fatal.OpWrite, Errno: unix.EPIPE}, func() {
		writeFull(3, []byte("x"), write)
	})
}
