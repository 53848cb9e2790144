// Package resource governs how much work signal-triggered dumps may do.
//
// A Controller combines three limits:
//
//   - Rate: a token bucket over dumps, so a signal storm degrades into
//     dropped dumps instead of a process that only writes diagnostics.
//   - Bytes: a fail-fast budget over the total size of the dump file.
//   - Writers: a weighted semaphore over concurrent dump writers.
//
// Example:
//
//	rc := resource.NewController(resource.Config{
//	    DumpsPerSecond: 5,
//	    MaxBytes:       1 << 20,
//	})
//
//	if !rc.AllowDump() || !rc.ReserveBytes(n) {
//	    // dropped
//	}
//
// # Nil Safety
//
// A nil *Controller imposes no limits, so callers can leave it unset.
//
// All Controller methods are safe for concurrent use.
package resource
