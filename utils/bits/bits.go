// Package bits packs small unsigned values into a byte stream without byte
// alignment. Values are stored least significant bit first; the first value
// written occupies the low bits of the first byte.
package bits

type (
	// Array holds the packed bytes.
	Array struct {
		Bytes []byte
	}

	// Writer appends bit fields to an Array.
	Writer struct {
		*Array
		bitOffset int // next free bit in the last byte, 0 means a new byte is needed
	}

	// Reader consumes bit fields from an Array.
	Reader struct {
		*Array
		byteOffset int
		bitOffset  int
	}
)

func NewWriter(arr *Array) *Writer {
	return &Writer{Array: arr}
}

func NewReader(arr *Array) *Reader {
	return &Reader{Array: arr}
}

func mask(n int) uint {
	return uint(1)<<uint(n) - 1
}

// Write appends the low n bits of v.
func (w *Writer) Write(n int, v uint) {
	for n > 0 {
		if w.bitOffset == 0 {
			w.Bytes = append(w.Bytes, 0)
		}
		chunk := 8 - w.bitOffset
		if n < chunk {
			chunk = n
		}
		w.Bytes[len(w.Bytes)-1] |= byte((v & mask(chunk)) << uint(w.bitOffset))
		v >>= uint(chunk)
		n -= chunk
		w.bitOffset = (w.bitOffset + chunk) % 8
	}
}

// Read consumes n bits and returns them as an integer. Reading past the end
// panics with an index error.
func (r *Reader) Read(n int) (v uint) {
	shift := 0
	for n > 0 {
		chunk := 8 - r.bitOffset
		if n < chunk {
			chunk = n
		}
		part := (uint(r.Bytes[r.byteOffset]) >> uint(r.bitOffset)) & mask(chunk)
		v |= part << uint(shift)
		shift += chunk
		n -= chunk
		r.bitOffset += chunk
		if r.bitOffset == 8 {
			r.bitOffset = 0
			r.byteOffset++
		}
	}
	return v
}

// View returns the next n bits without consuming them.
func (r *Reader) View(n int) uint {
	cp := *r
	return cp.Read(n)
}

// NonReadBytes counts bytes not fully consumed, including a partially read one.
func (r *Reader) NonReadBytes() int {
	return len(r.Bytes) - r.byteOffset
}

// NonReadBits counts the bits left to read.
func (r *Reader) NonReadBits() int {
	return r.NonReadBytes()*8 - r.bitOffset
}
