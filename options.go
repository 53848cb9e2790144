package signalsafe

import (
	"log/slog"

	"golang.org/x/sys/unix"

	"github.com/hupe1980/signalsafe/clock"
)

// DefaultMaxMessageSize is the message capacity of a Recorder unless
// WithMaxMessageSize says otherwise.
const DefaultMaxMessageSize = 1024

// Encoding selects how a Recorder lays out records in the dump file.
type Encoding uint8

const (
	// Binary writes CRC-framed records readable with record.ReadNext.
	Binary Encoding = iota
	// Text writes one human-readable line per record.
	Text
)

func (e Encoding) String() string {
	switch e {
	case Binary:
		return "binary"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	signals          []unix.Signal
	clock            clock.ID
	encoding         Encoding
	message          MessageFunc
	dumpsPerSecond   float64
	burst            int
	maxBytes         int64
	maxMessageSize   int
}

// Option configures a Recorder.
type Option func(*options)

// WithLogger configures structured logging for the recorder.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := signalsafe.NewJSONLogger(slog.LevelInfo)
//	rec, _ := signalsafe.NewRecorder(f, signalsafe.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &signalsafe.BasicMetricsCollector{}
//	rec, _ := signalsafe.NewRecorder(f, signalsafe.WithMetricsCollector(metrics))
//	// ... run ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithSignals sets the signals Run records. Defaults to SIGUSR1.
func WithSignals(signals ...unix.Signal) Option {
	return func(o *options) {
		o.signals = signals
	}
}

// WithClock sets the clock records are stamped with. Defaults to
// clock.Realtime.
func WithClock(id clock.ID) Option {
	return func(o *options) {
		o.clock = id
	}
}

// WithEncoding sets the dump file layout. Defaults to Binary.
func WithEncoding(e Encoding) Option {
	return func(o *options) {
		o.encoding = e
	}
}

// WithMessage sets the function that renders the message of a
// signal-triggered dump. Defaults to DefaultMessage.
func WithMessage(fn MessageFunc) Option {
	return func(o *options) {
		if fn == nil {
			fn = DefaultMessage
		}
		o.message = fn
	}
}

// WithRateLimit limits signal-triggered dumps to perSecond with the given
// burst. A perSecond of 0 disables the limit; a burst of 0 derives one
// from perSecond.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(o *options) {
		o.dumpsPerSecond = perSecond
		o.burst = burst
	}
}

// WithMaxBytes caps the bytes signal-triggered dumps may write in total.
// 0 means unlimited.
func WithMaxBytes(n int64) Option {
	return func(o *options) {
		o.maxBytes = n
	}
}

// WithMaxMessageSize sets the message capacity; longer messages are
// truncated. Must be in (0, record.MaxMessageSize].
func WithMaxMessageSize(n int) Option {
	return func(o *options) {
		o.maxMessageSize = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		signals:          []unix.Signal{unix.SIGUSR1},
		clock:            clock.Realtime,
		encoding:         Binary,
		message:          DefaultMessage,
		maxMessageSize:   DefaultMaxMessageSize,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
