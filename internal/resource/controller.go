package resource

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds dump limits.
type Config struct {
	// DumpsPerSecond is the sustained dump rate.
	// If 0, dumps are not rate limited.
	DumpsPerSecond float64

	// Burst is the number of dumps allowed back to back.
	// If 0, defaults to DumpsPerSecond rounded up (at least 1).
	Burst int

	// MaxBytes is the hard limit for bytes written to the dump file.
	// If 0, only tracking is done.
	MaxBytes int64

	// MaxConcurrentWrites is the number of dumps that may write at once.
	// If 0, defaults to 1.
	MaxConcurrentWrites int64
}

// Controller enforces a Config.
type Controller struct {
	cfg Config

	limiter *rate.Limiter // nil if unlimited
	used    atomic.Int64
	writers *semaphore.Weighted
}

// NewController creates a new Controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentWrites <= 0 {
		cfg.MaxConcurrentWrites = 1
	}

	c := &Controller{
		cfg:     cfg,
		writers: semaphore.NewWeighted(cfg.MaxConcurrentWrites),
	}

	if cfg.DumpsPerSecond > 0 {
		if cfg.Burst <= 0 {
			cfg.Burst = max(1, int(math.Ceil(cfg.DumpsPerSecond)))
			c.cfg.Burst = cfg.Burst
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.DumpsPerSecond), cfg.Burst)
	}

	return c
}

// AllowDump reports whether a dump may happen now, consuming a token if so.
func (c *Controller) AllowDump() bool {
	return c.AllowDumpAt(time.Now())
}

// AllowDumpAt is AllowDump at a given instant.
func (c *Controller) AllowDumpAt(now time.Time) bool {
	if c == nil || c.limiter == nil {
		return true
	}
	return c.limiter.AllowN(now, 1)
}

// ReserveBytes attempts to reserve n bytes of the budget.
// Non-blocking; returns false if the budget would be exceeded.
func (c *Controller) ReserveBytes(n int64) bool {
	if c == nil || n <= 0 {
		return true
	}

	for {
		used := c.used.Load()
		if c.cfg.MaxBytes > 0 && used+n > c.cfg.MaxBytes {
			return false
		}
		if c.used.CompareAndSwap(used, used+n) {
			return true
		}
	}
}

// ReleaseBytes returns n reserved bytes that were not written.
func (c *Controller) ReleaseBytes(n int64) {
	if c == nil || n <= 0 {
		return
	}
	c.used.Add(-n)
}

// Used returns the bytes reserved so far.
func (c *Controller) Used() int64 {
	if c == nil {
		return 0
	}
	return c.used.Load()
}

// MaxBytes returns the configured byte budget (0 if unlimited).
func (c *Controller) MaxBytes() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MaxBytes
}

// Burst returns the effective burst (0 if unlimited).
func (c *Controller) Burst() int {
	if c == nil || c.limiter == nil {
		return 0
	}
	return c.cfg.Burst
}

// AcquireWrite reserves a writer slot, blocking while all are busy.
func (c *Controller) AcquireWrite(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.writers.Acquire(ctx, 1)
}

// TryAcquireWrite reserves a writer slot without blocking.
func (c *Controller) TryAcquireWrite() bool {
	if c == nil {
		return true
	}
	return c.writers.TryAcquire(1)
}

// ReleaseWrite releases a writer slot.
func (c *Controller) ReleaseWrite() {
	if c == nil {
		return
	}
	c.writers.Release(1)
}
