package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/lvt-ledger/lvt/genesis"
)

func TestAdjustFeeDynamically(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	env.open(t, alice)

	env.clock.Advance(time.Minute)
	require.NoError(env.AdjustFeeDynamically())
	g := env.global(t)
	require.Equal(uint64(1100), g.FeeRate)
	require.Equal(startTime+60, g.LastFeeUpdate)

	_, err := env.RecordTrade(alice, plainTrade(1_000_000))
	require.NoError(err)
	require.NoError(env.AdjustFeeDynamically())
	require.Equal(uint64(1000), env.global(t).FeeRate)

	// no lower bound other than zero
	for i := 0; i < 10; i++ {
		require.NoError(env.AdjustFeeDynamically())
	}
	require.Zero(env.global(t).FeeRate)

	before := env.snapshot(t)
	err = env.AdjustFeeDynamically()
	require.ErrorIs(err, ErrArithmeticUnderflow)
	require.Equal(before, env.snapshot(t))
}

func TestAutoAdjustFee(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	require.NoError(env.AutoAdjustFee(1001))
	require.Equal(uint64(1050), env.global(t).FeeRate)
	require.NoError(env.AutoAdjustFee(1000))
	require.Equal(uint64(1000), env.global(t).FeeRate)

	// drifts below the voted minimum without complaint
	for i := 0; i < 20; i++ {
		require.NoError(env.AutoAdjustFee(0))
	}
	require.Zero(env.global(t).FeeRate)
	require.ErrorIs(env.AutoAdjustFee(0), ErrArithmeticUnderflow)

	// and above the voted maximum
	for i := 0; i < 120; i++ {
		require.NoError(env.AutoAdjustFee(5000))
	}
	require.Equal(uint64(6000), env.global(t).FeeRate)
}

func TestUpdateFeeStructureByVote(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	err := env.UpdateFeeStructureByVote(2000)
	require.ErrorIs(err, ErrInsufficientVotes)

	require.NoError(env.CastVote(alice))
	require.NoError(env.CastVote(bob))
	require.ErrorIs(env.UpdateFeeStructureByVote(2000), ErrInsufficientVotes)
	require.NoError(env.CastVote(carol))

	v, err := env.Governance()
	require.NoError(err)
	require.Equal(uint64(3), v.VoteCount)
	require.True(v.Met())

	// out of range rates leave fee and votes untouched
	before := env.snapshot(t)
	for _, rate := range []uint64{6000, 499, 5001, 0} {
		require.ErrorIs(env.UpdateFeeStructureByVote(rate), ErrInvalidFeeRate, "rate %d", rate)
	}
	require.Equal(before, env.snapshot(t))

	env.clock.Advance(time.Second)
	require.NoError(env.UpdateFeeStructureByVote(5000))
	g := env.global(t)
	require.Equal(uint64(5000), g.FeeRate)
	require.Equal(startTime+1, g.LastFeeUpdate)
	v, err = env.Governance()
	require.NoError(err)
	require.Zero(v.VoteCount)

	// votes are spent
	require.ErrorIs(env.UpdateFeeStructureByVote(500), ErrInsufficientVotes)
}

func TestVoteBoundsInclusive(t *testing.T) {
	env := newBareEnv()
	require.NoError(t, env.Initialize(genesis.Genesis{Treasury: treasury, RequiredVotes: 1}))

	for _, rate := range []uint64{500, 5000} {
		require.NoError(t, env.CastVote(alice))
		require.NoError(t, env.UpdateFeeStructureByVote(rate))
		require.Equal(t, rate, env.global(t).FeeRate)
	}
}
