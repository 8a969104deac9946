package cser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/lvt-ledger/utils/bits"
	"github.com/rony4d/lvt-ledger/utils/fast"
)

func readerOf(w *Writer) *Reader {
	return &Reader{
		BitsR:  bits.NewReader(w.BitsW.Array),
		BytesR: fast.NewReader(w.BytesW.Bytes()),
	}
}

func TestPrimitives(t *testing.T) {
	require := require.New(t)

	u64s := []uint64{0, 1, 0xFF, 0x100, math.MaxUint32, math.MaxUint64}
	i64s := []int64{0, 1, -1, 3600, -86400, math.MinInt64, math.MaxInt64}
	bools := []bool{true, false, true}

	w := NewWriter()
	w.U8(7)
	for _, v := range u64s {
		w.U64(v)
	}
	for _, v := range i64s {
		w.I64(v)
	}
	for _, v := range bools {
		w.Bool(v)
	}
	w.SliceBytes([]byte("SOL/USDC"))
	w.SliceBytes(nil)
	w.FixedBytes([]byte{1, 2, 3})

	r := readerOf(w)
	require.Equal(uint8(7), r.U8())
	for _, v := range u64s {
		require.Equal(v, r.U64())
	}
	for _, v := range i64s {
		require.Equal(v, r.I64())
	}
	for _, v := range bools {
		require.Equal(v, r.Bool())
	}
	require.Equal([]byte("SOL/USDC"), r.SliceBytes(32))
	require.Equal([]byte{}, r.SliceBytes(32))
	fixed := make([]byte, 3)
	r.FixedBytes(fixed)
	require.Equal([]byte{1, 2, 3}, fixed)
	require.True(r.BytesR.Empty())
}

func TestAdapters(t *testing.T) {
	encode := func(w *Writer) error {
		w.U64(1000)
		w.I64(-5)
		w.SliceBytes([]byte("ETH/USDC"))
		return nil
	}

	raw, err := MarshalBinaryAdapter(encode)
	require.NoError(t, err)

	t.Run("roundtrip", func(t *testing.T) {
		var (
			a uint64
			b int64
			c []byte
		)
		err := UnmarshalBinaryAdapter(raw, func(r *Reader) error {
			a, b, c = r.U64(), r.I64(), r.SliceBytes(32)
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, uint64(1000), a)
		require.Equal(t, int64(-5), b)
		require.Equal(t, []byte("ETH/USDC"), c)
	})

	t.Run("unread data", func(t *testing.T) {
		err := UnmarshalBinaryAdapter(raw, func(r *Reader) error {
			r.U64()
			return nil
		})
		require.ErrorIs(t, err, ErrNonCanonicalEncoding)
	})

	t.Run("truncated", func(t *testing.T) {
		err := UnmarshalBinaryAdapter(raw[2:], func(r *Reader) error {
			r.U64()
			r.I64()
			r.SliceBytes(32)
			return nil
		})
		require.Error(t, err)
	})

	t.Run("empty input", func(t *testing.T) {
		err := UnmarshalBinaryAdapter(nil, func(r *Reader) error { return nil })
		require.ErrorIs(t, err, ErrMalformedEncoding)
	})

	t.Run("slice limit", func(t *testing.T) {
		err := UnmarshalBinaryAdapter(raw, func(r *Reader) error {
			r.U64()
			r.I64()
			r.SliceBytes(4)
			return nil
		})
		require.ErrorIs(t, err, ErrTooLargeAlloc)
	})
}

func TestNonMinimalInteger(t *testing.T) {
	// 5 encoded in two bytes: size offset 1 in the bit stream, bytes {5, 0}
	w := NewWriter()
	w.BytesW.Write([]byte{5, 0})
	w.BitsW.Write(3, 1)
	raw := pack(w.BitsW.Array, w.BytesW.Bytes())

	err := UnmarshalBinaryAdapter(raw, func(r *Reader) error {
		r.U64()
		return nil
	})
	require.ErrorIs(t, err, ErrNonCanonicalEncoding)
}

func TestSignedOutOfRange(t *testing.T) {
	decode := func(neg bool, abs uint64) error {
		w := NewWriter()
		w.Bool(neg)
		w.U64(abs)
		raw := pack(w.BitsW.Array, w.BytesW.Bytes())
		return UnmarshalBinaryAdapter(raw, func(r *Reader) error {
			r.I64()
			return nil
		})
	}

	// MinInt64 has a single encoding: negative sign, magnitude 2^63
	require.NoError(t, decode(true, 1<<63))
	require.ErrorIs(t, decode(false, 1<<63), ErrNonCanonicalEncoding)
	require.ErrorIs(t, decode(false, math.MaxUint64), ErrNonCanonicalEncoding)
	require.ErrorIs(t, decode(true, 1<<63+1), ErrNonCanonicalEncoding)
	require.NoError(t, decode(false, math.MaxInt64))
}

func TestCompactLength(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 1 << 20, math.MaxUint64} {
		w := fast.NewWriter(nil)
		writeUint64Compact(w, v)
		require.Equal(t, v, readUint64Compact(fast.NewReader(w.Bytes())))
	}
}
