// Package clock reads system clocks without allocating and defines
// TimeSpecification, a fixed-width time value whose encoded form is the
// same on every platform.
//
// The native timespec differs in field width between platforms (32-bit
// tv_sec on some, 32-bit tv_nsec on others), so a value written to disk on
// one machine cannot be read back byte-for-byte on another. A
// TimeSpecification is always two int64 fields and always encodes to
// [EncodedSize] little-endian bytes.
package clock
