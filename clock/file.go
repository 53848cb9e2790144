package clock

import "github.com/hupe1980/signalsafe/file"

// Save writes the encoded t to f and returns EncodedSize.
func (t TimeSpecification) Save(f *file.File) int {
	var b [EncodedSize]byte
	t.Put(b[:])
	return f.Write(b[:])
}

// Load reads an encoded TimeSpecification from f. It reports false if the
// file ended first.
func Load(f *file.File) (TimeSpecification, bool) {
	var b [EncodedSize]byte
	if f.Read(b[:]) < EncodedSize {
		return TimeSpecification{}, false
	}
	return Decode(b[:]), true
}
