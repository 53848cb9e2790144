package format

import "unsafe"

type argKind uint8

const (
	kindText argKind = iota
	kindInt
	kindUint
)

// Signed is the set of signed integer types accepted by [Int].
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of unsigned integer types accepted by [Uint].
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Arg is a single formatting argument.
type Arg struct {
	kind argKind
	bits uint64
	text []byte
}

// String formats s verbatim.
func String(s string) Arg {
	return Arg{kind: kindText, text: unsafe.Slice(unsafe.StringData(s), len(s))}
}

// Bytes formats b verbatim.
func Bytes(b []byte) Arg {
	return Arg{kind: kindText, text: b}
}

// CString formats b up to, not including, its first NUL byte. Without a
// NUL the whole slice is used.
func CString(b []byte) Arg {
	for i, c := range b {
		if c == 0 {
			return Arg{kind: kindText, text: b[:i]}
		}
	}
	return Arg{kind: kindText, text: b}
}

// Int formats v in decimal with a leading '-' when negative.
func Int[T Signed](v T) Arg {
	return Arg{kind: kindInt, bits: uint64(int64(v))}
}

// Uint formats v in decimal.
func Uint[T Unsigned](v T) Arg {
	return Arg{kind: kindUint, bits: uint64(v)}
}
