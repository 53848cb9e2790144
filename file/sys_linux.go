//go:build linux

package file

// sys_linux.go passes the NUL-terminated path buffer straight to raw
// openat/unlinkat syscalls so no string conversion or allocation happens.

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/hupe1980/signalsafe/fatal"
)

// atFDCWD is AT_FDCWD (-100) as a uintptr for use with syscall.Syscall6.
const atFDCWD = ^uintptr(0) - 99

// tryOpenPath opens path relative to the working directory, retrying
// EINTR without an upper bound. path must be NUL-terminated.
func tryOpenPath(path *[PathMax + 1]byte, flags int, mode uint32) (int, unix.Errno) {
	for {
		fd, _, errno := syscall.Syscall6(
			syscall.SYS_OPENAT,
			atFDCWD,
			uintptr(unsafe.Pointer(&path[0])),
			uintptr(flags|unix.O_LARGEFILE),
			uintptr(mode),
			0, 0,
		)
		if errno == syscall.EINTR {
			continue
		}
		if errno != 0 {
			return InvalidDescriptor, errno
		}
		return int(fd), 0
	}
}

// unlinkPath removes path, retrying EINTR. Any other error is fatal.
func unlinkPath(path *[PathMax + 1]byte) {
	for {
		_, _, errno := syscall.Syscall(
			syscall.SYS_UNLINKAT,
			atFDCWD,
			uintptr(unsafe.Pointer(&path[0])),
			0,
		)
		if errno == syscall.EINTR {
			continue
		}
		if errno != 0 {
			fatal.Fail(fatal.OpRemove, errno)
		}
		return
	}
}

// openTemporary prefers O_TMPFILE, which never gives the file a name.
// Filesystems without O_TMPFILE support fall back to create-then-unlink.
func openTemporary(f *File) int {
	fd, errno := tryOpenPath(&tempDir, unix.O_TMPFILE|unix.O_RDWR|unix.O_CLOEXEC, createMode)
	switch errno {
	case 0:
		return fd
	case unix.EOPNOTSUPP, unix.EISDIR, unix.EINVAL:
		return openTemporaryByName(f)
	default:
		fatal.Fail(fatal.OpTemp, errno)
		return InvalidDescriptor
	}
}
