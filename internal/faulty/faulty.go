package faulty

import (
	"sync"

	"golang.org/x/sys/unix"
)

// Transfer is a single read(2)- or write(2)-shaped attempt.
type Transfer func(fd int, p []byte) (int, error)

// Fault defines specific failure behavior.
type Fault struct {
	InterruptTimes int        // Leading calls that report EINTR before touching the fd.
	InterruptEvery int        // After the leading interruptions, every Nth call reports EINTR. 0 to disable.
	MaxChunk       int        // Cap on bytes per call (short transfers). 0 for no cap.
	FailAfterBytes int64      // Report Errno once this many bytes were transferred.
	Errno          unix.Errno // Error for FailAfterBytes. 0 disables failures.
}

// NoFault passes every call through unchanged.
var NoFault = Fault{}

// Syscall is a Transfer wrapper that injects the configured Fault.
type Syscall struct {
	next  Transfer
	mu    sync.Mutex
	fault Fault

	calls       int
	interrupts  int
	transferred int64
}

// New wraps next with fault.
func New(next Transfer, fault Fault) *Syscall {
	return &Syscall{next: next, fault: fault}
}

// SetFault replaces the fault for subsequent calls.
func (s *Syscall) SetFault(fault Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fault = fault
}

// Call performs one attempt. Its signature matches Transfer.
func (s *Syscall) Call(fd int, p []byte) (int, error) {
	s.mu.Lock()
	s.calls++
	fault := s.fault

	if s.interrupts < fault.InterruptTimes ||
		(fault.InterruptEvery > 0 && s.calls > fault.InterruptTimes && s.calls%fault.InterruptEvery == 0) {
		s.interrupts++
		s.mu.Unlock()
		return -1, unix.EINTR
	}

	if fault.Errno != 0 && s.transferred >= fault.FailAfterBytes {
		s.mu.Unlock()
		return -1, fault.Errno
	}
	s.mu.Unlock()

	if fault.MaxChunk > 0 && len(p) > fault.MaxChunk {
		p = p[:fault.MaxChunk]
	}

	n, err := s.next(fd, p)
	if n > 0 {
		s.mu.Lock()
		s.transferred += int64(n)
		s.mu.Unlock()
	}
	return n, err
}

// Calls returns the number of attempts made so far.
func (s *Syscall) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Interrupts returns the number of injected EINTRs.
func (s *Syscall) Interrupts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interrupts
}

// Transferred returns the number of bytes the wrapped primitive moved.
func (s *Syscall) Transferred() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transferred
}
