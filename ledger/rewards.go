package ledger

import (
	"github.com/rony4d/lvt-ledger/inter"
	"github.com/rony4d/lvt-ledger/lvt"
)

// TradeReward computes the reward for a trade:
//
//	amount × execution bonus × slippage bonus × liquidity bonus
//
// where each bonus is rules.Bonus when its condition holds and 1 otherwise.
// Rewards of trades above the slippage penalty are halved, truncating.
func TradeReward(rules lvt.RewardRules, t Trade) (uint64, error) {
	bonus := func(cond bool) uint64 {
		if cond {
			return rules.Bonus
		}
		return 1
	}

	reward := t.Amount
	var err error
	for _, b := range []uint64{
		bonus(t.ExecutionDelay < rules.FastExecution),
		bonus(t.Slippage < rules.LowSlippage),
		bonus(t.LiquidityProvided > rules.DeepLiquidity),
	} {
		if reward, err = mul("reward", reward, b); err != nil {
			return 0, err
		}
	}
	if t.Slippage > rules.SlippagePenalty {
		reward /= 2
	}
	return reward, nil
}

// averager derives the new multiplier from the window average.
type averager func(average uint64) (uint64, error)

func plainAverage(average uint64) (uint64, error) {
	return average, nil
}

// marketAdjusted scales the average by the volatility and order book gap
// bonuses, in percent.
func marketAdjusted(rules lvt.RewardRules, volatility, gap uint64) averager {
	return func(average uint64) (uint64, error) {
		volBonus := rules.BonusBase
		if volatility > rules.HighVolatility {
			volBonus = rules.VolatilityBonus
		}
		gapBonus := rules.BonusBase
		if gap > rules.WideGap {
			gapBonus = rules.GapBonus
		}
		m, err := mul("global_reward_multiplier", average, volBonus)
		if err != nil {
			return 0, err
		}
		if m, err = mul("global_reward_multiplier", m, gapBonus); err != nil {
			return 0, err
		}
		return m / (rules.BonusBase * rules.BonusBase), nil
	}
}

// rollWindow adds one reward sample to the rolling window. When the window
// fills up the multiplier is refreshed from the average and the window is
// emptied. Reports whether the window rolled over.
func rollWindow(g *inter.GlobalState, rules lvt.RewardRules, sample uint64, derive averager) (bool, error) {
	var err error
	if g.RewardSum, err = add("reward_sum", g.RewardSum, sample); err != nil {
		return false, err
	}
	if g.RewardCount, err = add("reward_count", g.RewardCount, 1); err != nil {
		return false, err
	}
	if g.RewardCount < rules.WindowSize {
		return false, nil
	}

	multiplier, err := derive(g.RewardSum / g.RewardCount)
	if err != nil {
		return false, err
	}
	g.GlobalRewardMultiplier = multiplier
	g.RewardSum = 0
	g.RewardCount = 0
	return true, nil
}

// UpdateDynamicReward feeds an externally aggregated reward sample into the
// window. On rollover the multiplier is adjusted for market conditions.
func (p *Processor) UpdateDynamicReward(recentReward, volatility, gap uint64) error {
	return p.apply(OpUpdateDynamicReward, func(st *state) error {
		g, err := st.loadGlobal()
		if err != nil {
			return err
		}
		rolled, err := rollWindow(g, st.rules.Rewards, recentReward, marketAdjusted(st.rules.Rewards, volatility, gap))
		if err != nil {
			return err
		}
		if rolled {
			p.log.Info("Reward window rolled over", "multiplier", g.GlobalRewardMultiplier,
				"volatility", volatility, "gap", gap)
		}
		return st.putGlobal(g)
	})
}
