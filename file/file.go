package file

import (
	"io"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/hupe1980/signalsafe/fatal"
	"github.com/hupe1980/signalsafe/memory"
)

// PathMax is the longest path a File can record, excluding the NUL.
const PathMax = 4096

// InvalidDescriptor is reported by FileDescriptor for an unset File.
const InvalidDescriptor = -1

// OffsetInterpretation selects the origin of a Seek.
type OffsetInterpretation int

const (
	Absolute                  OffsetInterpretation = io.SeekStart
	RelativeToCurrentPosition OffsetInterpretation = io.SeekCurrent
	RelativeToEndOfFile       OffsetInterpretation = io.SeekEnd
)

// Permissions is the access mode a file is opened with.
type Permissions int

const (
	ReadOnly  Permissions = unix.O_RDONLY
	WriteOnly Permissions = unix.O_WRONLY
	ReadWrite Permissions = unix.O_RDWR
)

// DestroyAction decides what Destroy does with a live descriptor.
type DestroyAction uint8

const (
	// DestroyClose closes the descriptor.
	DestroyClose DestroyAction = iota
	// DestroyNothing leaves the descriptor open for someone else.
	DestroyNothing
)

// createMode is the on-disk mode of files created by this package.
const createMode = 0o600

// noCopy lets go vet's copylocks check flag copies of File.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// File owns at most one open file descriptor. The zero value is an unset
// File with the DestroyClose action.
type File struct {
	noCopy noCopy

	// handle is the descriptor plus one, so that the zero value is unset.
	handle        int
	destroyAction DestroyAction

	pathLen int
	path    [PathMax + 1]byte
}

// CreateAndOpen returns a new File for a file created at path, which must
// not exist yet.
func CreateAndOpen(path string, perm Permissions) *File {
	f := new(File)
	f.CreateAndOpen(path, perm)
	return f
}

// CreateAndOpenTemporary returns a new File for an unnamed temporary file.
func CreateAndOpenTemporary() *File {
	f := new(File)
	f.CreateAndOpenTemporary()
	return f
}

// OpenExisting returns a new File for the existing file at path.
func OpenExisting(path string, perm Permissions) *File {
	f := new(File)
	f.OpenExisting(path, perm)
	return f
}

// FromFileDescriptor returns a new File owning fd.
func FromFileDescriptor(fd int) *File {
	f := new(File)
	f.Adopt(fd)
	return f
}

// CreateAndOpen destroys whatever f held, then creates the file at path
// exclusively with owner-only permissions and opens it with perm.
func (f *File) CreateAndOpen(path string, perm Permissions) {
	f.Destroy()
	f.openPath(fatal.OpCreate, path, int(perm)|unix.O_CREAT|unix.O_EXCL|unix.O_CLOEXEC, createMode)
}

// CreateAndOpenTemporary destroys whatever f held, then opens a new
// read-write file in the temporary directory that has no name on disk.
// The resulting File has no path.
func (f *File) CreateAndOpenTemporary() {
	f.Destroy()
	f.setDescriptor(openTemporary(f))
}

// OpenExisting destroys whatever f held, then opens the existing file at
// path with perm.
func (f *File) OpenExisting(path string, perm Permissions) {
	f.Destroy()
	f.openPath(fatal.OpOpen, path, int(perm)|unix.O_CLOEXEC, 0)
}

// Adopt destroys whatever f held, then takes ownership of fd without
// validating it. A negative fd leaves f unset.
func (f *File) Adopt(fd int) {
	f.Destroy()
	f.setDescriptor(fd)
}

// Read fills p from the file and returns the number of bytes read, which
// is less than len(p) only at end of file.
func (f *File) Read(p []byte) int {
	return readFull(f.mustDescriptor(fatal.OpRead), p, sysRead)
}

// Write writes all of p to the file and returns len(p).
func (f *File) Write(p []byte) int {
	return writeFull(f.mustDescriptor(fatal.OpWrite), p, sysWrite)
}

// WriteString writes all of s to the file and returns len(s).
func (f *File) WriteString(s string) int {
	return f.Write(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// Seek moves the file offset and returns the new absolute offset.
func (f *File) Seek(offset int64, whence OffsetInterpretation) int64 {
	fd := f.mustDescriptor(fatal.OpSeek)

	for {
		off, err := sysSeek(fd, offset, int(whence))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			fatal.Fail(fatal.OpSeek, errnoOf(err))
			return -1
		}
		return off
	}
}

// Close closes the descriptor. It returns false if f was unset.
func (f *File) Close() bool {
	if f.handle == 0 {
		return false
	}

	fd := f.handle - 1
	f.handle = 0

	// Not retried: Linux releases the descriptor even when close(2)
	// reports EINTR, and a retry could close a reused number.
	err := sysClose(fd)
	if err != nil && err != unix.EINTR {
		fatal.Fail(fatal.OpClose, errnoOf(err))
	}

	return true
}

// Remove unlinks the recorded path and forgets it. The descriptor stays
// open. It returns false if f is unset or has no path.
func (f *File) Remove() bool {
	if f.handle == 0 || f.pathLen == 0 {
		return false
	}

	unlinkPath(&f.path)
	f.clearPath()

	return true
}

// Destroy applies the destroy action and leaves f unset. With DestroyClose
// a failing close is fatal.
func (f *File) Destroy() {
	if f.handle != 0 && f.destroyAction == DestroyClose {
		f.Close()
	}
	f.reset()
}

// MoveFrom destroys whatever f held, then takes over src's descriptor,
// path and destroy action. src is left unset.
func (f *File) MoveFrom(src *File) {
	if f == src {
		return
	}

	f.Destroy()

	f.handle = src.handle
	f.destroyAction = src.destroyAction
	f.pathLen = memory.CopyNoOverlap(src.path[:src.pathLen], f.path[:])
	f.path[f.pathLen] = 0

	src.reset()
}

// FileDescriptor returns the descriptor, or InvalidDescriptor if f is unset.
func (f *File) FileDescriptor() int {
	return f.handle - 1
}

// PathBytes returns the recorded path as a view into f. It is empty for
// temporary and adopted files and after Remove. The view is only valid
// until f is next modified.
func (f *File) PathBytes() []byte {
	return f.path[:f.pathLen:f.pathLen]
}

// Path returns a copy of the recorded path. It allocates, so it is not
// for use on a signal-safe path.
func (f *File) Path() string {
	return string(f.PathBytes())
}

// DestroyAction returns the action Destroy will take.
func (f *File) DestroyAction() DestroyAction {
	return f.destroyAction
}

// SetDestroyAction sets the action Destroy will take.
func (f *File) SetDestroyAction(action DestroyAction) {
	f.destroyAction = action
}

func (f *File) setDescriptor(fd int) {
	if fd < 0 {
		f.handle = 0
		return
	}
	f.handle = fd + 1
}

func (f *File) mustDescriptor(op fatal.Op) int {
	if f.handle == 0 {
		fatal.Fail(op, unix.EBADF)
	}
	return f.handle - 1
}

// openPath records path and opens it. The path is kept only if the open
// succeeds, so a recovered failure leaves f fully unset.
func (f *File) openPath(op fatal.Op, path string, flags int, mode uint32) {
	f.setPath(op, path)

	fd, errno := tryOpenPath(&f.path, flags, mode)
	if errno != 0 {
		f.clearPath()
		fatal.Fail(op, errno)
		return
	}

	f.setDescriptor(fd)
}

func (f *File) setPath(op fatal.Op, path string) {
	if len(path) > PathMax {
		fatal.Fail(op, unix.ENAMETOOLONG)
	}
	if strings.IndexByte(path, 0) >= 0 {
		fatal.Fail(op, unix.EINVAL)
	}

	f.pathLen = copy(f.path[:PathMax], path)
	f.path[f.pathLen] = 0
}

func (f *File) clearPath() {
	f.pathLen = 0
	f.path[0] = 0
}

func (f *File) reset() {
	f.handle = 0
	f.destroyAction = DestroyClose
	f.clearPath()
}

func errnoOf(err error) unix.Errno {
	if errno, ok := err.(unix.Errno); ok {
		return errno
	}
	return unix.EIO
}
