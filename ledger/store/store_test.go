package store

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestTxnOverlay(t *testing.T) {
	require := require.New(t)
	s := OpenMemory()
	defer s.Close()

	tx := s.Begin()
	require.NoError(tx.Put([]byte("a"), []byte{1}))

	// staged value visible to the txn only
	v, ok, err := tx.Get([]byte("a"))
	require.NoError(err)
	require.True(ok)
	require.Equal([]byte{1}, v)

	_, ok, err = s.Get([]byte("a"))
	require.NoError(err)
	require.False(ok)

	require.NoError(tx.Commit())

	v, ok, err = s.Get([]byte("a"))
	require.NoError(err)
	require.True(ok)
	require.Equal([]byte{1}, v)
}

func TestTxnDiscard(t *testing.T) {
	require := require.New(t)
	s := OpenMemory()

	seed := s.Begin()
	require.NoError(seed.Put([]byte("k"), []byte("old")))
	require.NoError(seed.Commit())

	tx := s.Begin()
	require.NoError(tx.Put([]byte("k"), []byte("new")))
	require.NoError(tx.Put([]byte("x"), []byte("y")))
	require.Equal(2, tx.Len())
	tx.Discard()

	v, ok, err := s.Get([]byte("k"))
	require.NoError(err)
	require.True(ok)
	require.Equal([]byte("old"), v)

	ok, err = s.Begin().Has([]byte("x"))
	require.NoError(err)
	require.False(ok)
}

func TestTxnClosed(t *testing.T) {
	s := OpenMemory()
	tx := s.Begin()
	require.NoError(t, tx.Commit())

	require.ErrorIs(t, tx.Commit(), ErrTxnClosed)
	require.ErrorIs(t, tx.Put([]byte("a"), nil), ErrTxnClosed)
	_, _, err := tx.Get([]byte("a"))
	require.ErrorIs(t, err, ErrTxnClosed)
	tx.Discard()
}

func TestPutCopiesValue(t *testing.T) {
	s := OpenMemory()
	tx := s.Begin()
	val := []byte{1, 2, 3}
	require.NoError(t, tx.Put([]byte("a"), val))
	val[0] = 9

	got, _, err := tx.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, got)
}

func TestIterate(t *testing.T) {
	require := require.New(t)
	s := OpenMemory()

	a := common.HexToAddress("0x01")
	b := common.HexToAddress("0x02")

	tx := s.Begin()
	require.NoError(tx.Put(LoanKey(a, 2), []byte("a2")))
	require.NoError(tx.Put(LoanKey(a, 1), []byte("a1")))
	require.NoError(tx.Put(LoanKey(b, 1), []byte("b1")))
	require.NoError(tx.Put(LeaderboardKey(a), []byte("la")))
	require.NoError(tx.Commit())

	var got []string
	require.NoError(s.Iterate(LoanPrefix(a), func(_, v []byte) bool {
		got = append(got, string(v))
		return true
	}))
	require.Equal([]string{"a1", "a2"}, got)

	got = got[:0]
	require.NoError(s.Iterate(LoanPrefix(a), func(_, v []byte) bool {
		got = append(got, string(v))
		return false
	}))
	require.Equal([]string{"a1"}, got)
}

func TestKeysDistinct(t *testing.T) {
	addr := common.HexToAddress("0xabc")
	keys := [][]byte{
		GlobalKey(),
		GovernanceKey(),
		UserKey(addr),
		LPKey(addr),
		LeaderboardKey(addr),
		LoanSeqKey(addr),
		LoanKey(addr, 1),
		TradeKey(1),
	}
	for i := range keys {
		for j := range keys {
			if i != j && bytes.Equal(keys[i], keys[j]) {
				t.Fatalf("keys %d and %d collide: %x", i, j, keys[i])
			}
		}
	}
	require.Equal(t, append([]byte("t"), 0, 0, 0, 0, 0, 0, 0, 7), TradeKey(7))
	require.True(t, bytes.HasPrefix(LoanKey(addr, 3), LoanPrefix(addr)))
}

func TestLevelDB(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	s, err := OpenLevelDB(dir, 16, 16, false)
	require.NoError(err)
	tx := s.Begin()
	require.NoError(tx.Put(GlobalKey(), []byte("state")))
	require.NoError(tx.Commit())
	require.NoError(s.Close())

	ro, err := OpenLevelDB(dir, 16, 16, true)
	require.NoError(err)
	defer ro.Close()

	v, ok, err := ro.Get(GlobalKey())
	require.NoError(err)
	require.True(ok)
	require.Equal([]byte("state"), v)
	require.ErrorIs(ro.Begin().Put(GlobalKey(), nil), ErrReadOnly)
}
