package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/lvt-ledger/inter"
	"github.com/rony4d/lvt-ledger/ledger/store"
)

// Trade carries the parameters of record_trade.
type Trade struct {
	Amount            uint64          `json:"amount"`
	Timestamp         inter.Timestamp `json:"timestamp"`
	Pair              string          `json:"pair"`
	ExecutionDelay    int64           `json:"execution_delay"`
	Slippage          uint64          `json:"slippage"`
	LiquidityProvided uint64          `json:"liquidity_provided"`
	Counterparty      common.Address  `json:"counterparty"`
}

// TradeResult describes a recorded trade.
type TradeResult struct {
	Seq    uint64
	Record inter.TradeRecord
	Reward uint64
}

// RecordTrade books a trade for the caller, pays its reward into the
// caller's accrued rewards and feeds the reward window.
//
// The only wash trading check is that the counterparty differs from the
// caller's own account owner.
func (p *Processor) RecordTrade(caller common.Address, t Trade) (TradeResult, error) {
	var res TradeResult
	err := p.apply(OpRecordTrade, func(st *state) error {
		if len(t.Pair) > inter.MaxTradePairLen {
			return fmt.Errorf("%w: %d bytes", ErrTradePairTooLong, len(t.Pair))
		}
		g, err := st.loadGlobal()
		if err != nil {
			return err
		}
		u, err := st.loadUser(caller)
		if err != nil {
			return err
		}
		if u.Owner == t.Counterparty {
			return ErrWashTradingAttempt
		}

		if g.TotalTrades, err = add("total_trades", g.TotalTrades, 1); err != nil {
			return err
		}
		if g.TotalLiquidity, err = add("total_liquidity", g.TotalLiquidity, t.Amount); err != nil {
			return err
		}
		if u.TradeCount, err = add("trade_count", u.TradeCount, 1); err != nil {
			return err
		}
		if u.CumulativeVolume, err = add("cumulative_volume", u.CumulativeVolume, t.Amount); err != nil {
			return err
		}

		rec := inter.TradeRecord{
			User:              u.Owner,
			TradeAmount:       t.Amount,
			TradeTimestamp:    t.Timestamp,
			TradePair:         t.Pair,
			ExecutionDelay:    t.ExecutionDelay,
			Slippage:          t.Slippage,
			LiquidityProvided: t.LiquidityProvided,
		}

		reward, err := TradeReward(st.rules.Rewards, t)
		if err != nil {
			return err
		}
		if u.AccruedRewards, err = add("accrued_rewards", u.AccruedRewards, reward); err != nil {
			return err
		}
		rolled, err := rollWindow(g, st.rules.Rewards, reward, plainAverage)
		if err != nil {
			return err
		}
		if rolled {
			p.log.Info("Reward window rolled over", "multiplier", g.GlobalRewardMultiplier)
		}
		u.RewardMultiplier = g.GlobalRewardMultiplier

		if err := st.put(store.TradeKey(g.TotalTrades), &rec); err != nil {
			return err
		}
		if err := st.putUser(u); err != nil {
			return err
		}
		if err := st.putGlobal(g); err != nil {
			return err
		}
		res = TradeResult{
			Seq:    g.TotalTrades,
			Record: rec,
			Reward: reward,
		}
		return nil
	})
	if err != nil {
		return TradeResult{}, err
	}
	return res, nil
}
