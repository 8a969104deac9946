package ledger

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/lvt-ledger/inter"
)

func TestBorrowCollateralBoundary(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	require.NoError(env.StakeWithLockup(alice, 150, 0))
	res, err := env.BorrowAgainstLVT(alice, 100)
	require.NoError(err)
	require.Equal(uint64(1), res.Seq)
	require.Equal(inter.Loan{
		Borrower:     alice,
		Collateral:   150,
		BorrowAmount: 100,
		InterestRate: 5,
		StartTime:    startTime,
		DueTime:      startTime + 30*86400,
	}, res.Loan)

	require.NoError(env.StakeWithLockup(bob, 149, 0))
	before := env.snapshot(t)
	_, err = env.BorrowAgainstLVT(bob, 100)
	require.ErrorIs(err, ErrInsufficientCollateral)
	require.Equal(before, env.snapshot(t))
}

func TestLoansAccumulate(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	require.NoError(env.StakeWithLockup(alice, 1000, 0))

	for i := uint64(1); i <= 3; i++ {
		env.clock.Advance(time.Hour)
		res, err := env.BorrowAgainstLVT(alice, 100*i)
		require.NoError(err)
		require.Equal(i, res.Seq)
	}
	// stake is not reduced by borrowing
	require.Equal(uint64(1000), env.user(t, alice).StakedAmount)

	loans, err := env.Loans(alice)
	require.NoError(err)
	require.Len(loans, 3)
	for i, l := range loans {
		require.Equal(uint64(100*(i+1)), l.BorrowAmount)
		require.Equal(uint64(1000), l.Collateral)
		require.Equal(startTime+inter.Timestamp(3600*(i+1)), l.StartTime)
	}
	require.NotEqual(loans[0].ID(), loans[1].ID())

	none, err := env.Loans(bob)
	require.NoError(err)
	require.Empty(none)
}

func TestBorrowRejects(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.BorrowAgainstLVT(alice, 1)
	require.ErrorIs(t, err, ErrAccountNotFound)

	require.NoError(t, env.StakeWithLockup(alice, math.MaxUint64, 0))
	_, err = env.BorrowAgainstLVT(alice, math.MaxUint64)
	require.ErrorIs(t, err, ErrArithmeticOverflow)

	// zero borrow needs no collateral
	env.open(t, bob)
	_, err = env.BorrowAgainstLVT(bob, 0)
	require.NoError(t, err)

	// due time overflow
	env.clock.Set(math.MaxInt64 - 10)
	_, err = env.BorrowAgainstLVT(alice, 1)
	require.ErrorIs(t, err, ErrArithmeticOverflow)
}
