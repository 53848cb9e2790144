package signalsafe

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"

	"github.com/hupe1980/signalsafe/clock"
	"github.com/hupe1980/signalsafe/fatal"
	"github.com/hupe1980/signalsafe/file"
	"github.com/hupe1980/signalsafe/format"
	"github.com/hupe1980/signalsafe/internal/resource"
	"github.com/hupe1980/signalsafe/memory"
	"github.com/hupe1980/signalsafe/record"
)

// textOverhead bounds the "<sec>.<nsec> seq=<seq> signal=<name> " prefix
// and trailing newline of a Text record.
const textOverhead = 96

// MessageFunc renders the message of a signal-triggered dump into target
// and returns the bytes written. It runs on the write path and must not
// allocate.
type MessageFunc func(target []byte, sig unix.Signal) int

// DefaultMessage writes "pid=<pid> goroutines=<n> signal=<name>".
func DefaultMessage(target []byte, sig unix.Signal) int {
	return format.Format("pid=% goroutines=% signal=%", target,
		format.Int(unix.Getpid()),
		format.Int(runtime.NumGoroutine()),
		signalArg(sig),
	)
}

// Recorder appends diagnostic records to a dump file, either on request
// through Record or whenever one of its signals arrives while Run is
// active.
//
// All buffers are allocated by NewRecorder; formatting and writing a record
// never allocates. Record and Run serialize on a single writer slot, so
// they may be used from different goroutines.
type Recorder struct {
	file *file.File
	opts options
	rc   *resource.Controller

	seq atomic.Uint64
	// msg has one spare byte so truncation can be detected.
	msg []byte
	buf []byte

	signals   chan os.Signal
	done      chan struct{}
	closeOnce sync.Once
	running   atomic.Bool

	// onNotify runs once Run is subscribed to its signals.
	onNotify func()
}

// NewRecorder creates a Recorder writing to f. f stays owned by the caller
// and must outlive the Recorder.
func NewRecorder(f *file.File, optFns ...Option) (*Recorder, error) {
	if f == nil || f.FileDescriptor() == file.InvalidDescriptor {
		return nil, ErrInvalidFile
	}

	o := applyOptions(optFns)

	if len(o.signals) == 0 {
		return nil, ErrNoSignals
	}
	if o.maxMessageSize <= 0 || o.maxMessageSize > record.MaxMessageSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMessageSize, o.maxMessageSize)
	}
	if ferr, failed := fatal.Recover(func() { clock.Now(o.clock) }); failed {
		return nil, fmt.Errorf("clock %d: %w", o.clock, ferr)
	}

	var size int
	switch o.encoding {
	case Binary:
		size = record.Size(o.maxMessageSize)
	case Text:
		size = o.maxMessageSize + textOverhead
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidEncoding, o.encoding)
	}

	if path := f.Path(); path != "" {
		o.logger = o.logger.WithPath(path)
	}

	return &Recorder{
		file: f,
		opts: o,
		rc: resource.NewController(resource.Config{
			DumpsPerSecond: o.dumpsPerSecond,
			Burst:          o.burst,
			MaxBytes:       o.maxBytes,
		}),
		msg:     make([]byte, o.maxMessageSize+1),
		buf:     make([]byte, size),
		signals: make(chan os.Signal, max(8, len(o.signals))),
		done:    make(chan struct{}),
	}, nil
}

// Record formats template with args and appends it to the dump file as one
// record for sig. It returns the bytes written. Messages longer than the
// configured size are truncated. Record ignores the rate limit and byte
// budget, which only govern signal-triggered dumps.
func (r *Recorder) Record(sig unix.Signal, template string, args ...format.Arg) int {
	if err := r.rc.AcquireWrite(context.Background()); err != nil {
		return 0
	}
	defer r.rc.ReleaseWrite()

	n := format.Format(template, r.msg, args...)

	return r.write(r.encode(sig, n))
}

// Seq returns the number of records written so far.
func (r *Recorder) Seq() uint64 {
	return r.seq.Load()
}

// BytesUsed returns the bytes written by signal-triggered dumps.
func (r *Recorder) BytesUsed() int64 {
	return r.rc.Used()
}

// Run records a dump for every configured signal until ctx is done or the
// Recorder is closed. A fatal failure while writing stops Run and is
// returned as an error wrapping fatal.Error.
func (r *Recorder) Run(ctx context.Context) (err error) {
	select {
	case <-r.done:
		return ErrRecorderClosed
	default:
	}

	if !r.running.CompareAndSwap(false, true) {
		return ErrRecorderRunning
	}
	defer r.running.Store(false)

	sigs := make([]os.Signal, len(r.opts.signals))
	for i, sig := range r.opts.signals {
		sigs[i] = sig
	}

	signal.Notify(r.signals, sigs...)
	defer signal.Stop(r.signals)

	if r.onNotify != nil {
		r.onNotify()
	}

	logger := r.opts.logger
	logger.LogStart(ctx, r.opts.signals)
	defer func() {
		logger.LogStop(ctx, r.Seq(), err)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.done:
			return nil
		case s := <-r.signals:
			sig, ok := s.(unix.Signal)
			if !ok {
				continue
			}
			if ferr, failed := fatal.Recover(func() { r.dump(ctx, sig) }); failed {
				return fmt.Errorf("dump %s: %w", signalName(sig), ferr)
			}
		}
	}
}

// Close stops Run. It does not close the dump file.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
	})
	return nil
}

func (r *Recorder) dump(ctx context.Context, sig unix.Signal) {
	if !r.rc.AllowDump() {
		r.drop(ctx, sig, DropRateLimited)
		return
	}

	if err := r.rc.AcquireWrite(ctx); err != nil {
		return
	}
	defer r.rc.ReleaseWrite()

	start := time.Now()

	size := r.encode(sig, r.opts.message(r.msg, sig))
	if !r.rc.ReserveBytes(int64(size)) {
		r.drop(ctx, sig, DropBudgetExhausted)
		return
	}

	n := r.write(size)

	r.opts.metricsCollector.RecordDump(sig, n, time.Since(start))
	r.opts.logger.LogDump(ctx, sig, r.Seq(), n)
}

func (r *Recorder) drop(ctx context.Context, sig unix.Signal, reason DropReason) {
	r.opts.metricsCollector.RecordDrop(sig, reason)
	r.opts.logger.LogDrop(ctx, sig, reason)
}

// encode lays out a record for the first n bytes of r.msg into r.buf and
// returns its size.
func (r *Recorder) encode(sig unix.Signal, n int) int {
	var flags uint8
	if n > r.opts.maxMessageSize {
		n = r.opts.maxMessageSize
		flags |= record.FlagTruncated
	}

	now := clock.Now(r.opts.clock)
	seq := r.seq.Load() + 1

	if r.opts.encoding == Text {
		return encodeText(r.buf, seq, sig, now, r.msg[:n])
	}

	return record.Encode(r.buf, record.Header{
		Seq:    seq,
		Signal: uint32(sig), //nolint:gosec // signal numbers are small and positive
		Flags:  flags,
		Time:   now,
	}, r.msg[:n])
}

func (r *Recorder) write(size int) int {
	n := r.file.Write(r.buf[:size])
	r.seq.Add(1)
	return n
}

// encodeText writes "<sec>.<nsec> seq=<seq> signal=<name> <msg>\n" into dst.
func encodeText(dst []byte, seq uint64, sig unix.Signal, now clock.TimeSpecification, msg []byte) int {
	var nanos [9]byte
	putPadded(nanos[:], uint64(now.Nanoseconds)) //nolint:gosec // clock nanoseconds are in [0, 1e9)

	body := dst[:len(dst)-1]
	n := format.Format("%.% seq=% signal=% ", body,
		format.Int(now.Seconds),
		format.Bytes(nanos[:]),
		format.Uint(seq),
		signalArg(sig),
	)
	n += memory.CopyNoOverlap(msg, body[n:])
	dst[n] = '\n'

	return n + 1
}

// putPadded writes v right-aligned and zero-padded into dst.
func putPadded(dst []byte, v uint64) {
	for i := range dst {
		dst[i] = '0'
	}
	offset := max(0, len(dst)-format.DigitCount(v))
	format.PutUint(dst[offset:], v)
}

func signalArg(sig unix.Signal) format.Arg {
	if name := unix.SignalName(sig); name != "" {
		return format.String(name)
	}
	return format.Int(int(sig))
}

func signalName(sig unix.Signal) string {
	if name := unix.SignalName(sig); name != "" {
		return name
	}
	return "signal " + strconv.Itoa(int(sig))
}
