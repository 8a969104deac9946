package cser

import (
	"github.com/rony4d/lvt-ledger/utils/bits"
	"github.com/rony4d/lvt-ledger/utils/fast"
)

// Binary layout of an encoded value:
//
//	[ byte stream ][ bit stream ][ len(bit stream) as varint, reversed ]
//
// The trailing length is reversed so a decoder can read it from the end.

// MarshalBinaryAdapter runs marshalCser against a fresh Writer and packs both
// streams into a single slice.
func MarshalBinaryAdapter(marshalCser func(*Writer) error) ([]byte, error) {
	w := NewWriter()
	if err := marshalCser(w); err != nil {
		return nil, err
	}
	return pack(w.BitsW.Array, w.BytesW.Bytes()), nil
}

// UnmarshalBinaryAdapter splits raw into its streams and runs unmarshalCser.
// Truncated input is reported as ErrMalformedEncoding; leftover bytes or
// non-zero padding bits as ErrNonCanonicalEncoding.
func UnmarshalBinaryAdapter(raw []byte, unmarshalCser func(*Reader) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && (e == ErrNonCanonicalEncoding || e == ErrTooLargeAlloc) {
				err = e
				return
			}
			err = ErrMalformedEncoding
		}
	}()

	bbits, bbytes, err := unpack(raw)
	if err != nil {
		return err
	}
	r := &Reader{
		BitsR:  bits.NewReader(bbits),
		BytesR: fast.NewReader(bbytes),
	}
	if err := unmarshalCser(r); err != nil {
		return err
	}

	if r.BitsR.NonReadBytes() > 1 {
		return ErrNonCanonicalEncoding
	}
	if r.BitsR.Read(r.BitsR.NonReadBits()) != 0 {
		return ErrNonCanonicalEncoding
	}
	if !r.BytesR.Empty() {
		return ErrNonCanonicalEncoding
	}
	return nil
}

func pack(bbits *bits.Array, bbytes []byte) []byte {
	out := fast.NewWriter(bbytes)
	out.Write(bbits.Bytes)

	size := fast.NewWriter(make([]byte, 0, 4))
	writeUint64Compact(size, uint64(len(bbits.Bytes)))
	out.Write(reversed(size.Bytes()))
	return out.Bytes()
}

func unpack(raw []byte) (*bits.Array, []byte, error) {
	if len(raw) == 0 {
		return nil, nil, ErrMalformedEncoding
	}
	sizeR := fast.NewReader(reversed(tail(raw, 9)))
	bitsSize := readUint64Compact(sizeR)
	raw = raw[:len(raw)-sizeR.Position()]
	if uint64(len(raw)) < bitsSize {
		return nil, nil, ErrMalformedEncoding
	}
	split := uint64(len(raw)) - bitsSize
	return &bits.Array{Bytes: raw[split:]}, raw[:split], nil
}

func tail(b []byte, n int) []byte {
	if len(b) > n {
		return b[len(b)-n:]
	}
	return b
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
