package clock

import (
	"encoding/binary"
	"time"

	"golang.org/x/sys/unix"

	"github.com/hupe1980/signalsafe/fatal"
)

// ID selects the clock to read.
type ID int32

const (
	Realtime       ID = unix.CLOCK_REALTIME
	Monotonic      ID = unix.CLOCK_MONOTONIC
	ProcessCPUTime ID = unix.CLOCK_PROCESS_CPUTIME_ID
	ThreadCPUTime  ID = unix.CLOCK_THREAD_CPUTIME_ID
)

// EncodedSize is the size of an encoded TimeSpecification.
const EncodedSize = 16

// TimeSpecification is a moment read from a clock.
type TimeSpecification struct {
	Seconds     int64
	Nanoseconds int64
}

// Now reads the clock selected by id. An unsupported clock is fatal.
func Now(id ID) TimeSpecification {
	var ts unix.Timespec

	err := unix.ClockGettime(int32(id), &ts)
	if err != nil {
		fatal.Fail(fatal.OpClock, errnoOf(err))
		return TimeSpecification{}
	}

	return TimeSpecification{Seconds: int64(ts.Sec), Nanoseconds: int64(ts.Nsec)} //nolint:unconvert // field widths vary by platform
}

// Put encodes t into b and returns EncodedSize. b must hold at least
// EncodedSize bytes.
func (t TimeSpecification) Put(b []byte) int {
	_ = b[EncodedSize-1]
	binary.LittleEndian.PutUint64(b[0:8], uint64(t.Seconds))
	binary.LittleEndian.PutUint64(b[8:16], uint64(t.Nanoseconds))
	return EncodedSize
}

// Decode reads a TimeSpecification encoded by Put. b must hold at least
// EncodedSize bytes.
func Decode(b []byte) TimeSpecification {
	_ = b[EncodedSize-1]
	return TimeSpecification{
		Seconds:     int64(binary.LittleEndian.Uint64(b[0:8])),
		Nanoseconds: int64(binary.LittleEndian.Uint64(b[8:16])),
	}
}

// IsZero reports whether t is the zero value.
func (t TimeSpecification) IsZero() bool {
	return t.Seconds == 0 && t.Nanoseconds == 0
}

// Sub returns t-u.
func (t TimeSpecification) Sub(u TimeSpecification) time.Duration {
	return time.Duration(t.Seconds-u.Seconds)*time.Second + time.Duration(t.Nanoseconds-u.Nanoseconds)
}

// Time converts a Realtime reading to a time.Time. Readings from other
// clocks have no meaningful epoch.
func (t TimeSpecification) Time() time.Time {
	return time.Unix(t.Seconds, t.Nanoseconds)
}

func errnoOf(err error) unix.Errno {
	if errno, ok := err.(unix.Errno); ok {
		return errno
	}
	return unix.EINVAL
}
