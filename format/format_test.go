package format

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/hupe1980/signalsafe/fatal"
)

func render(t *testing.T, size int, template string, args ...Arg) string {
	t.Helper()
	buf := make([]byte, size)
	n := Format(template, buf, args...)
	require.LessOrEqual(t, n, size)
	return string(buf[:n])
}

func TestFormat_SinglePlaceholder(t *testing.T) {
	tests := []struct {
		name string
		arg  Arg
		want string
	}{
		{"non_zero", Int(42), "format: 42"},
		{"zero", Int(0), "format: 0"},
		{"negative", Int(-7), "format: -7"},
		{"unsigned", Uint(uint32(4294967295)), "format: 4294967295"},
		{"string", String("hello"), "format: hello"},
		{"bytes", Bytes([]byte("raw")), "format: raw"},
		{"cstring", CString([]byte("abc\x00def")), "format: abc"},
		{"cstring_no_nul", CString([]byte("abc")), "format: abc"},
		{"empty_string", String(""), "format: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, 64, "format: %", tt.arg))
		})
	}
}

func TestFormat_ExactSizedTarget(t *testing.T) {
	buf := make([]byte, len("format: 42"))
	n := Format("format: %", buf, Int(42))
	assert.Equal(t, len(buf), n)
	assert.Equal(t, "format: 42", string(buf))
}

func TestFormat_NoPlaceholder(t *testing.T) {
	assert.Equal(t, "plain text", render(t, 64, "plain text"))
	assert.Equal(t, "plain text", render(t, 64, "plain text", Int(1), Int(2)))
}

func TestFormat_TrailingText(t *testing.T) {
	got := render(t, 64, "a=% b=% end", Int(1), String("two"))
	assert.Equal(t, "a=1 b=two end", got)
}

func TestFormat_AdjacentPlaceholders(t *testing.T) {
	assert.Equal(t, "12-3", render(t, 64, "%%%", Int(1), Uint(uint8(2)), Int(int8(-3))))
}

func TestFormat_Truncation(t *testing.T) {
	tests := []struct {
		name string
		size int
		want string
	}{
		{"inside_literal", 4, "valu"},
		{"at_placeholder", 6, "value="},
		{"inside_number", 8, "value=12"},
		{"inside_suffix", 11, "value=12345"},
		{"empty", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.size, "value=% units", Int(12345)))
		})
	}
}

func TestFormat_TruncationDoesNotConsumeMissingArgs(t *testing.T) {
	// The placeholder is never reached, so the missing argument is harmless.
	assert.NotPanics(t, func() {
		assert.Equal(t, "abc", render(t, 3, "abcdef %"))
	})
}

func TestFormat_MissingArgumentIsFatal(t *testing.T) {
	assert.PanicsWithValue(t, fatal.Error{Op: fatal.OpFormat, Errno: unix.EINVAL}, func() {
		Format("% and %", make([]byte, 32), Int(1))
	})
}

func TestFormat_NegativeTruncatedAfterSign(t *testing.T) {
	assert.Equal(t, "x-", render(t, 2, "x%", Int(-99)))
}

func TestPutInt_Extremes(t *testing.T) {
	var buf [MaxDigits + 1]byte

	for _, v := range []int64{math.MinInt64, math.MinInt64 + 1, -1, 0, 1, math.MaxInt64} {
		n := PutInt(buf[:], v)
		assert.Equal(t, strconv.FormatInt(v, 10), string(buf[:n]))
	}

	assert.Equal(t, "-128", string(buf[:PutInt(buf[:], int64(int8(math.MinInt8)))]))
}

func TestPutUint_Extremes(t *testing.T) {
	var buf [MaxDigits]byte

	for _, v := range []uint64{0, 1, 9, 10, 99, 100, 1 << 32, math.MaxUint64 - 1, math.MaxUint64} {
		n := PutUint(buf[:], v)
		assert.Equal(t, strconv.FormatUint(v, 10), string(buf[:n]))
	}
}

func TestPutUint_PowerBoundaries(t *testing.T) {
	var buf [MaxDigits]byte

	for i := 1; i < MaxDigits; i++ {
		p := pow10[i]
		for _, v := range []uint64{p - 1, p, p + 1} {
			n := PutUint(buf[:], v)
			assert.Equal(t, strconv.FormatUint(v, 10), string(buf[:n]), "value %d", v)
			assert.Equal(t, len(strconv.FormatUint(v, 10)), DigitCount(v))
		}
	}
}

func TestPutUint_Truncates(t *testing.T) {
	buf := make([]byte, 3)
	n := PutUint(buf, 987654)
	assert.Equal(t, 3, n)
	assert.Equal(t, "987", string(buf))

	assert.Equal(t, 0, PutUint(nil, 5))
	assert.Equal(t, 0, PutInt(nil, -5))
}

func TestDigitCount(t *testing.T) {
	assert.Equal(t, 1, DigitCount(0))
	assert.Equal(t, 1, DigitCount(9))
	assert.Equal(t, 2, DigitCount(10))
	assert.Equal(t, MaxDigits, DigitCount(math.MaxUint64))
}

func TestFormat_DoesNotAllocate(t *testing.T) {
	var buf [64]byte
	allocs := testing.AllocsPerRun(100, func() {
		Format("sig=% pid=% name=%", buf[:], Int(11), Uint(uint32(4242)), String("worker"))
	})
	assert.Zero(t, allocs)
}
