package file

import "unsafe"

// Integer is the set of fixed-width scalar types ReadValue and WriteValue
// transfer.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// ReadValue reads exactly the size of T bytes, in native byte order, into
// v and returns the number of bytes read.
func ReadValue[T Integer](f *File, v *T) int {
	return f.Read(unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v)))
}

// WriteValue writes the size of T bytes of v, in native byte order, and
// returns the number of bytes written.
func WriteValue[T Integer](f *File, v T) int {
	return f.Write(unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v)))
}
