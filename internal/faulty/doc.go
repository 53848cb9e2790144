// Package faulty wraps single-attempt read/write primitives to inject
// faults for tests: interruptions (EINTR), short transfers and hard errors.
//
// # Usage
//
//	sc := faulty.New(unix.Read, faulty.Fault{InterruptTimes: 1, MaxChunk: 3})
//	// install sc.Call where the code under test expects a read primitive
//
// Counters ([Syscall.Calls], [Syscall.Interrupts], [Syscall.Transferred])
// let tests assert how the code under test drove the primitive.
package faulty
