package file

import (
	"golang.org/x/sys/unix"

	"github.com/hupe1980/signalsafe/fatal"
)

// transfer is a single read(2) or write(2) attempt.
type transfer func(fd int, p []byte) (int, error)

// Syscall primitives. Tests replace them to inject interruptions, short
// transfers and failures.
var (
	sysRead  transfer = unix.Read
	sysWrite transfer = unix.Write
	sysSeek           = unix.Seek
	sysClose          = unix.Close
)

// readFull calls read until p is full or read reports end of file.
// EINTR is retried; any other error is fatal.
func readFull(fd int, p []byte, read transfer) int {
	total := 0

	for len(p) > 0 {
		n, err := read(fd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			fatal.Fail(fatal.OpRead, errnoOf(err))
			return total
		}
		if n == 0 {
			return total
		}

		p = p[n:]
		total += n
	}

	return total
}

// writeFull calls write until all of p has been written. EINTR is
// retried; any other error is fatal.
func writeFull(fd int, p []byte, write transfer) int {
	total := 0

	for len(p) > 0 {
		n, err := write(fd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			fatal.Fail(fatal.OpWrite, errnoOf(err))
			return total
		}

		p = p[n:]
		total += n
	}

	return total
}
