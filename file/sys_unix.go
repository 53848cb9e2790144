//go:build unix && !linux

package file

import (
	"golang.org/x/sys/unix"

	"github.com/hupe1980/signalsafe/fatal"
)

// Outside Linux the x/sys wrappers are used. They convert the path to a
// string first, which allocates.

func tryOpenPath(path *[PathMax + 1]byte, flags int, mode uint32) (int, unix.Errno) {
	p := unix.ByteSliceToString(path[:])

	for {
		fd, err := unix.Open(p, flags, mode)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return InvalidDescriptor, errnoOf(err)
		}
		return fd, 0
	}
}

func unlinkPath(path *[PathMax + 1]byte) {
	p := unix.ByteSliceToString(path[:])

	for {
		err := unix.Unlink(p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			fatal.Fail(fatal.OpRemove, errnoOf(err))
		}
		return
	}
}

// openTemporary has no O_TMPFILE to use, so the file is created under a
// unique name and unlinked immediately.
func openTemporary(f *File) int {
	return openTemporaryByName(f)
}
