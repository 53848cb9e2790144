package record

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/hupe1980/signalsafe/clock"
	"github.com/hupe1980/signalsafe/file"
	"github.com/hupe1980/signalsafe/internal/conv"
	"github.com/hupe1980/signalsafe/memory"
)

const (
	// HeaderSize is the encoded size of a record without its message.
	HeaderSize = 40
	// Version is the record format version written by Encode.
	Version = 1
	// MaxMessageSize bounds the message length accepted by Decode.
	MaxMessageSize = 1 << 16
)

// Flags carried in the record header.
const (
	// FlagTruncated marks a message that was cut to fit the encode buffer.
	FlagTruncated uint8 = 1 << iota
)

var magic = [2]byte{'S', 'D'}

var (
	ErrInvalidCRC          = errors.New("invalid record checksum")
	ErrBadMagic            = errors.New("bad record magic")
	ErrIncompatibleVersion = errors.New("incompatible record version")
	ErrShortRecord         = errors.New("short record")
	ErrRecordTooLarge      = errors.New("record too large")
)

func init() {
	// Build the IEEE tables now so Encode never takes the sync.Once slow
	// path from inside a signal handler.
	crc32.ChecksumIEEE(nil)
}

// Header is the fixed part of a record.
type Header struct {
	Seq    uint64
	Signal uint32
	Flags  uint8
	Time   clock.TimeSpecification
}

// Record is a decoded record. Message aliases the decode buffer.
type Record struct {
	Header
	Message []byte
}

// Truncated reports whether the message was cut when it was encoded.
func (r Record) Truncated() bool {
	return r.Flags&FlagTruncated != 0
}

// Size returns the encoded size of a record carrying msgLen message bytes.
func Size(msgLen int) int {
	return HeaderSize + msgLen
}

// Encode writes a record for h and msg into dst and returns the number of
// bytes used. If msg does not fit, it is truncated and FlagTruncated set.
// A dst shorter than HeaderSize encodes nothing and returns 0.
func Encode(dst []byte, h Header, msg []byte) int {
	if len(dst) < HeaderSize {
		return 0
	}

	room := min(len(dst)-HeaderSize, MaxMessageSize)
	if len(msg) > room {
		msg = msg[:room]
		h.Flags |= FlagTruncated
	}

	dst[4] = magic[0]
	dst[5] = magic[1]
	dst[6] = Version
	dst[7] = h.Flags
	binary.LittleEndian.PutUint64(dst[8:], h.Seq)
	binary.LittleEndian.PutUint32(dst[16:], h.Signal)
	h.Time.Put(dst[20:36])
	binary.LittleEndian.PutUint32(dst[36:], uint32(len(msg)))

	n := HeaderSize + memory.CopyNoOverlap(msg, dst[HeaderSize:])

	binary.LittleEndian.PutUint32(dst[0:], crc32.ChecksumIEEE(dst[4:n]))

	return n
}

// Decode parses the record at the start of src and returns it with its
// encoded size.
func Decode(src []byte) (Record, int, error) {
	msgLen, err := messageLength(src)
	if err != nil {
		return Record{}, 0, err
	}

	n := HeaderSize + msgLen
	if len(src) < n {
		return Record{}, 0, fmt.Errorf("%w: need %d bytes, have %d", ErrShortRecord, n, len(src))
	}

	if crc32.ChecksumIEEE(src[4:n]) != binary.LittleEndian.Uint32(src[0:]) {
		return Record{}, 0, ErrInvalidCRC
	}

	return Record{
		Header: Header{
			Seq:    binary.LittleEndian.Uint64(src[8:]),
			Signal: binary.LittleEndian.Uint32(src[16:]),
			Flags:  src[7],
			Time:   clock.Decode(src[20:36]),
		},
		Message: src[HeaderSize:n],
	}, n, nil
}

// ReadNext reads the next record from f into buf and decodes it. It
// returns io.EOF at a clean end of file and io.ErrUnexpectedEOF for a torn
// tail. buf must be able to hold the whole record.
func ReadNext(f *file.File, buf []byte) (Record, error) {
	if len(buf) < HeaderSize {
		return Record{}, fmt.Errorf("%w: buffer of %d bytes cannot hold a header", ErrRecordTooLarge, len(buf))
	}

	got := f.Read(buf[:HeaderSize])
	if got == 0 {
		return Record{}, io.EOF
	}
	if got < HeaderSize {
		return Record{}, io.ErrUnexpectedEOF
	}

	msgLen, err := messageLength(buf)
	if err != nil {
		return Record{}, err
	}

	n := HeaderSize + msgLen
	if n > len(buf) {
		return Record{}, fmt.Errorf("%w: %d bytes exceed buffer of %d", ErrRecordTooLarge, n, len(buf))
	}

	if f.Read(buf[HeaderSize:n]) < msgLen {
		return Record{}, io.ErrUnexpectedEOF
	}

	rec, _, err := Decode(buf[:n])
	return rec, err
}

// messageLength validates the fixed header fields in src and returns the
// message length it declares.
func messageLength(src []byte) (int, error) {
	if len(src) < HeaderSize {
		return 0, fmt.Errorf("%w: %d bytes", ErrShortRecord, len(src))
	}
	if src[4] != magic[0] || src[5] != magic[1] {
		return 0, ErrBadMagic
	}
	if src[6] != Version {
		return 0, fmt.Errorf("%w: %d", ErrIncompatibleVersion, src[6])
	}

	msgLen, err := conv.Uint32ToInt(binary.LittleEndian.Uint32(src[36:]))
	if err != nil {
		return 0, err
	}
	if msgLen > MaxMessageSize {
		return 0, fmt.Errorf("%w: message of %d bytes", ErrRecordTooLarge, msgLen)
	}

	return msgLen, nil
}
