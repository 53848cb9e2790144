package format

import (
	"math/bits"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/hupe1980/signalsafe/fatal"
	"github.com/hupe1980/signalsafe/memory"
)

// Placeholder marks where the next argument is substituted.
const Placeholder = '%'

// MaxDigits is the length of the longest decimal rendering of a uint64.
const MaxDigits = 20

var pow10 = [MaxDigits]uint64{
	1,
	10,
	100,
	1_000,
	10_000,
	100_000,
	1_000_000,
	10_000_000,
	100_000_000,
	1_000_000_000,
	10_000_000_000,
	100_000_000_000,
	1_000_000_000_000,
	10_000_000_000_000,
	100_000_000_000_000,
	1_000_000_000_000_000,
	10_000_000_000_000_000,
	100_000_000_000_000_000,
	1_000_000_000_000_000_000,
	10_000_000_000_000_000_000,
}

// Format renders template into target, substituting args in order, and
// returns the number of bytes written.
func Format(template string, target []byte, args ...Arg) int {
	written := 0

	for {
		// Literal span up to the next placeholder.
		end := strings.IndexByte(template, Placeholder)
		if end < 0 {
			end = len(template)
		}

		n := memory.CopyNoOverlap(textOf(template[:end]), target)
		written += n
		target = target[n:]

		if end == len(template) || len(target) == 0 {
			return written
		}

		if len(args) == 0 {
			fatal.Fail(fatal.OpFormat, unix.EINVAL)
			return written
		}

		template = template[end+1:]

		n = put(target, args[0])
		written += n
		target = target[n:]
		args = args[1:]
	}
}

func put(target []byte, a Arg) int {
	switch a.kind {
	case kindInt:
		return PutInt(target, int64(a.bits))
	case kindUint:
		return PutUint(target, a.bits)
	default:
		return memory.CopyNoOverlap(a.text, target)
	}
}

// PutInt writes v in decimal into target and returns the bytes written.
// Output is truncated when target is too short.
func PutInt(target []byte, v int64) int {
	if len(target) == 0 {
		return 0
	}

	if v >= 0 {
		return PutUint(target, uint64(v))
	}

	target[0] = '-'

	// Two's complement negation on the unsigned bit pattern, so that
	// math.MinInt64 has a representable magnitude.
	magnitude := ^uint64(v) + 1

	return 1 + PutUint(target[1:], magnitude)
}

// PutUint writes v in decimal into target and returns the bytes written.
// Output is truncated, keeping the most significant digits, when target
// is too short.
func PutUint(target []byte, v uint64) int {
	if len(target) == 0 {
		return 0
	}

	if v == 0 {
		target[0] = '0'
		return 1
	}

	digits := DigitCount(v)
	place := pow10[digits-1]

	n := 0
	for ; n < digits && n < len(target); n++ {
		d := v / place
		target[n] = '0' + byte(d)
		v -= d * place
		place /= 10
	}

	return n
}

// DigitCount returns the number of decimal digits in v (1 for zero).
func DigitCount(v uint64) int {
	// floor(log10(2^bitlen)) via 1233/4096 ≈ log10(2), corrected by one
	// comparison against the table.
	t := (bits.Len64(v) * 1233) >> 12
	if v < pow10[t] {
		if t == 0 {
			return 1
		}
		return t
	}
	return t + 1
}

func textOf(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
