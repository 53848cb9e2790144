package file

import (
	"os"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"github.com/hupe1980/signalsafe/fatal"
	"github.com/hupe1980/signalsafe/format"
)

// tempDir is captured once so that creating a temporary file never reads
// the environment.
var (
	tempDir    [PathMax + 1]byte
	tempDirLen int
	tempSeq    atomic.Uint64
)

func init() {
	SetTempDir(os.TempDir())
}

// SetTempDir sets the directory CreateAndOpenTemporary uses. It is not
// signal-safe and must not race with CreateAndOpenTemporary; call it
// during setup. Paths longer than PathMax are fatal.
func SetTempDir(dir string) {
	if len(dir) > PathMax {
		fatal.Fail(fatal.OpTemp, unix.ENAMETOOLONG)
	}
	tempDirLen = copy(tempDir[:PathMax], dir)
	tempDir[tempDirLen] = 0
}

// TempDir returns the directory CreateAndOpenTemporary uses.
func TempDir() string {
	return string(tempDir[:tempDirLen])
}

// openTemporaryByName creates "<tempdir>/signalsafe-<pid>-<seq>"
// exclusively, unlinks it and returns the descriptor. f.path is used as
// scratch space and is empty on return.
func openTemporaryByName(f *File) int {
	pid := unix.Getpid()

	for {
		n := format.Format("%/signalsafe-%-%", f.path[:PathMax],
			format.Bytes(tempDir[:tempDirLen]),
			format.Int(pid),
			format.Uint(tempSeq.Add(1)),
		)
		if n == PathMax {
			f.clearPath()
			fatal.Fail(fatal.OpTemp, unix.ENAMETOOLONG)
			return InvalidDescriptor
		}
		f.path[n] = 0
		f.pathLen = n

		fd, errno := tryOpenPath(&f.path, unix.O_RDWR|unix.O_CREAT|unix.O_EXCL|unix.O_CLOEXEC, createMode)
		if errno == unix.EEXIST {
			continue
		}
		if errno != 0 {
			f.clearPath()
			fatal.Fail(fatal.OpTemp, errno)
			return InvalidDescriptor
		}

		unlinkPath(&f.path)
		f.clearPath()

		return fd
	}
}
