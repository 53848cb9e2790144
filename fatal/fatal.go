package fatal

import (
	"golang.org/x/sys/unix"
)

// Op names the operation that failed.
type Op string

const (
	OpCreate Op = "create"
	OpOpen   Op = "open"
	OpTemp   Op = "create temporary"
	OpRead   Op = "read"
	OpWrite  Op = "write"
	OpSeek   Op = "seek"
	OpClose  Op = "close"
	OpRemove Op = "remove"
	OpClock  Op = "clock_gettime"
	OpFormat Op = "format"
)

// Error is the panic value raised by [Fail].
type Error struct {
	Op    Op
	Errno unix.Errno
}

func (e Error) Error() string {
	if e.Errno == 0 {
		return "signalsafe: fatal " + string(e.Op)
	}
	return "signalsafe: fatal " + string(e.Op) + ": " + e.Errno.Error()
}

// Unwrap exposes the errno so errors.Is(err, unix.ENOENT) works on a
// recovered Error.
func (e Error) Unwrap() error {
	if e.Errno == 0 {
		return nil
	}
	return e.Errno
}

// Fail stops execution by panicking with Error{op, errno}. It never returns.
func Fail(op Op, errno unix.Errno) {
	panic(Error{Op: op, Errno: errno})
}

// Recover runs fn and reports the fatal Error it raised, if any.
// Panics that did not originate from Fail are propagated unchanged.
func Recover(fn func()) (err Error, failed bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		fe, ok := r.(Error)
		if !ok {
			panic(r)
		}
		err, failed = fe, true
	}()

	fn()
	return Error{}, false
}
