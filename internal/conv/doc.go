// Package conv provides checked integer conversions.
//
// These functions bound-check a value before narrowing or changing its
// signedness and return ErrOverflow instead of silently wrapping.
//
// Use cases:
//   - Validating lengths read from dump files (record message lengths
//     are stored as uint32 and used as int)
//   - Converting command-line flag values to the types the library
//     expects (an unsigned byte budget into the int64 the resource
//     controller tracks)
//
// They are for ordinary code only. Allocation-free paths convert values
// whose range is fixed by construction with direct casts, since the error
// path would allocate.
package conv
