// Package format renders diagnostic text into caller-owned buffers without
// allocating, locking or calling into fmt/strconv.
//
// A template is plain text in which every '%' is a placeholder for the next
// argument:
//
//	var buf [64]byte
//	n := format.Format("signal % at %\n", buf[:], format.Int(sig), format.Uint(pc))
//	f.Write(buf[:n])
//
// Arguments are [Arg] values built with [String], [Bytes], [CString],
// [Int] and [Uint]. Arg is a plain struct so passing arguments never boxes
// them into interfaces.
//
// # Truncation
//
// Output is capped at len(target). When the target fills up, rendering
// stops, the bytes written so far are returned, and no further arguments
// are consumed. Truncation is not an error.
//
// # Argument count
//
// Arguments left over once the template is exhausted are ignored. Reaching
// a placeholder with no argument left is a programming error and fails via
// [fatal.Fail].
package format
