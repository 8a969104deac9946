package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/lvt-ledger/lvt"
)

// StrategyType tags a rewarded trading behaviour.
type StrategyType uint8

const (
	MarketMaking   StrategyType = 1
	Arbitrage      StrategyType = 2
	OptionsHedging StrategyType = 3
)

// Bonus returns the fixed reward for the strategy. Unknown strategies earn
// nothing.
func (s StrategyType) Bonus(rules lvt.BoostRules) uint64 {
	switch s {
	case MarketMaking:
		return rules.MarketMaking
	case Arbitrage:
		return rules.Arbitrage
	case OptionsHedging:
		return rules.OptionsHedging
	default:
		return 0
	}
}

func (s StrategyType) String() string {
	switch s {
	case MarketMaking:
		return "market_making"
	case Arbitrage:
		return "arbitrage"
	case OptionsHedging:
		return "options_hedging"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// UnmarshalJSON accepts either the numeric tag or the strategy name.
func (s *StrategyType) UnmarshalJSON(b []byte) error {
	var n uint8
	if err := json.Unmarshal(b, &n); err == nil {
		*s = StrategyType(n)
		return nil
	}
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	for _, known := range []StrategyType{MarketMaking, Arbitrage, OptionsHedging} {
		if known.String() == name {
			*s = known
			return nil
		}
	}
	return fmt.Errorf("strategy: unknown name %q", name)
}

// RewardStrategyBoost credits the strategy bonus to the caller's accrued
// rewards. An unknown strategy is accepted and changes nothing.
func (p *Processor) RewardStrategyBoost(caller common.Address, strategy StrategyType) error {
	return p.apply(OpRewardStrategyBoost, func(st *state) error {
		if err := st.requireInitialized(); err != nil {
			return err
		}
		u, err := st.loadUser(caller)
		if err != nil {
			return err
		}
		bonus := strategy.Bonus(st.rules.Boosts)
		if bonus == 0 {
			return nil
		}
		if u.AccruedRewards, err = add("accrued_rewards", u.AccruedRewards, bonus); err != nil {
			return err
		}
		return st.putUser(u)
	})
}
