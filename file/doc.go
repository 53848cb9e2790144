// Package file provides File, an owner for a single OS file descriptor
// whose operations are safe to call from code that may itself have
// interrupted arbitrary code: crash reporters, signal-driven dump writers,
// the window between fork and exec.
//
// # Restrictions
//
// Every operation on a File restricts itself to reentrant syscalls
// (openat, read, write, lseek, close, unlinkat) and never allocates on the
// heap, takes a lock or reads mutable process-wide state. The path is kept
// in a fixed buffer inside the File ([PathMax] bytes plus a NUL), so a
// File declared as a local variable needs no allocation at all:
//
//	var f file.File
//	f.CreateAndOpen("/var/crash/dump.bin", file.WriteOnly)
//	defer f.Destroy()
//
//	f.Write(msg)
//
// The package-level constructors ([CreateAndOpen], [OpenExisting], ...)
// return a *File on the heap and are meant for ordinary code.
//
// # Errors
//
// Interrupted syscalls (EINTR) are retried without bound until they
// complete. Under a sustained storm of signals this can delay an
// operation indefinitely.
//
// Any other syscall failure is a contract violation and fails via
// [fatal.Fail]. Only [File.Close] and [File.Remove] report a recoverable
// result, false, and only when there is nothing to do.
//
// # Ownership
//
// A File is the single owner of its descriptor. It must not be copied
// (go vet reports copies); ownership moves with [File.MoveFrom], which
// leaves the source unset. [File.Destroy] applies the destroy action:
// [DestroyClose] (the default) closes the descriptor, [DestroyNothing]
// forgets it so another owner, or an exec'd program, can keep using it.
//
// A File is not safe for concurrent use.
//
// [fatal.Fail]: github.com/hupe1980/signalsafe/fatal#Fail
package file
