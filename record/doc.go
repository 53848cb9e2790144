// Package record defines the binary dump record written by a Recorder.
//
// # Format
//
// All integers are little-endian:
//
//	[CRC32: 4] [Magic "SD": 2] [Version: 1] [Flags: 1] [Seq: 8] [Signal: 4]
//	[Seconds: 8] [Nanoseconds: 8] [Length: 4] [Message: Length]
//
// The CRC32 (IEEE) covers every byte after the CRC field. A dump file is a
// plain concatenation of records with no file header, so a record can be
// appended with a single write and a torn tail is detected by the CRC.
//
// [Encode] is signal-safe: it writes into a caller buffer and never
// allocates. Decoding is for ordinary code and returns errors.
package record
