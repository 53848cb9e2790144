package signalsafe

import "errors"

var (
	// ErrNoSignals is returned when a Recorder is configured without signals.
	ErrNoSignals = errors.New("no signals to record")

	// ErrRecorderClosed is returned by Run after Close.
	ErrRecorderClosed = errors.New("recorder closed")

	// ErrRecorderRunning is returned by Run while another Run is active.
	ErrRecorderRunning = errors.New("recorder already running")

	// ErrInvalidFile is returned when the dump file is nil or unset.
	ErrInvalidFile = errors.New("invalid dump file")

	// ErrInvalidMessageSize is returned for a message size outside
	// (0, record.MaxMessageSize].
	ErrInvalidMessageSize = errors.New("invalid message size")

	// ErrInvalidEncoding is returned for an unknown Encoding.
	ErrInvalidEncoding = errors.New("invalid encoding")
)

// DropReason tells why a signal did not produce a dump.
type DropReason uint8

const (
	// DropRateLimited means the dump rate limit was exceeded.
	DropRateLimited DropReason = iota + 1
	// DropBudgetExhausted means the record would exceed the byte budget.
	DropBudgetExhausted
)

func (r DropReason) String() string {
	switch r {
	case DropRateLimited:
		return "rate_limited"
	case DropBudgetExhausted:
		return "budget_exhausted"
	default:
		return "unknown"
	}
}
