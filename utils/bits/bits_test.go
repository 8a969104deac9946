package bits

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type word struct {
	bits int
	v    uint
}

func bytesToFit(bits int) int {
	return (bits + 7) / 8
}

func randomWords(r *rand.Rand, maxCount, maxBits int) []word {
	words := make([]word, r.Intn(maxCount))
	for i := range words {
		words[i].bits = 1 + r.Intn(maxBits)
		words[i].v = uint(r.Int63n(int64(1) << uint(words[i].bits)))
	}
	return words
}

func roundTrip(t *testing.T, words []word) {
	arr := Array{Bytes: make([]byte, 0, 16)}
	w := NewWriter(&arr)
	total := 0
	for _, wd := range words {
		w.Write(wd.bits, wd.v)
		total += wd.bits
	}
	require.Len(t, arr.Bytes, bytesToFit(total))

	r := NewReader(&arr)
	read := 0
	for i, wd := range words {
		assert.Equal(t, bytesToFit(total)*8-read, r.NonReadBits(), "word %d", i)
		assert.Equal(t, wd.v, r.View(wd.bits), "view %d", i)
		assert.Equal(t, wd.v, r.Read(wd.bits), "word %d", i)
		read += wd.bits
	}
	assert.Less(t, r.NonReadBits(), 8)
	assert.Equal(t, uint(0), r.Read(r.NonReadBits()), "padding must be zero")
}

func TestWriterLayout(t *testing.T) {
	arr := Array{}
	w := NewWriter(&arr)
	w.Write(1, 1)
	w.Write(3, 0b101)
	w.Write(6, 0b111111)
	// 1 | 101<<1 | 1111<<4 in the first byte, 11 in the second
	require.Equal(t, []byte{0b11111011, 0b11}, arr.Bytes)
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, maxBits := range []int{1, 3, 8, 9, 17, 31} {
		t.Run(fmt.Sprintf("max%d", maxBits), func(t *testing.T) {
			for i := 0; i < 50; i++ {
				roundTrip(t, randomWords(r, 40, maxBits))
			}
		})
	}
}

func TestReadPastEnd(t *testing.T) {
	arr := Array{Bytes: []byte{0xFF}}
	r := NewReader(&arr)
	require.Equal(t, uint(0xFF), r.Read(8))
	require.Equal(t, 0, r.NonReadBytes())
	require.Panics(t, func() { r.Read(1) })
}
