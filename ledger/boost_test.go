package ledger

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRewardStrategyBoost(t *testing.T) {
	env := newTestEnv(t)
	env.open(t, alice)

	for _, tt := range []struct {
		strategy StrategyType
		bonus    uint64
	}{
		{MarketMaking, 50},
		{Arbitrage, 100},
		{OptionsHedging, 75},
		{0, 0},
		{4, 0},
		{255, 0},
	} {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			before := env.user(t, alice).AccruedRewards
			require.NoError(t, env.RewardStrategyBoost(alice, tt.strategy))
			require.Equal(t, before+tt.bonus, env.user(t, alice).AccruedRewards)
		})
	}

	require.ErrorIs(t, env.RewardStrategyBoost(bob, Arbitrage), ErrAccountNotFound)
}

func TestRewardStrategyBoostOverflow(t *testing.T) {
	env := newTestEnv(t)
	env.open(t, alice)
	_, err := env.RecordTrade(alice, plainTrade(math.MaxUint64-10))
	require.NoError(t, err)

	require.ErrorIs(t, env.RewardStrategyBoost(alice, MarketMaking), ErrArithmeticOverflow)
	// no-op tags never overflow
	require.NoError(t, env.RewardStrategyBoost(alice, 9))
}

func TestStrategyTypeJSON(t *testing.T) {
	for in, want := range map[string]StrategyType{
		`1`:                 MarketMaking,
		`"arbitrage"`:       Arbitrage,
		`"options_hedging"`: OptionsHedging,
		`7`:                 7,
	} {
		var s StrategyType
		require.NoError(t, json.Unmarshal([]byte(in), &s), in)
		require.Equal(t, want, s)
	}

	var s StrategyType
	require.Error(t, json.Unmarshal([]byte(`"yolo"`), &s))
	require.Error(t, json.Unmarshal([]byte(`300`), &s))
}
