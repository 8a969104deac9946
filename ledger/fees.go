package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/lvt-ledger/inter"
)

// stepFee moves the fee rate up or down by step. Only the underflow below
// zero is refused; there is no other bound on these paths.
func stepFee(g *inter.GlobalState, up bool, step uint64) (err error) {
	if up {
		g.FeeRate, err = add("fee_rate", g.FeeRate, step)
	} else {
		g.FeeRate, err = sub("fee_rate", g.FeeRate, step)
	}
	return err
}

// AdjustFeeDynamically raises the fee while total liquidity is below the
// threshold and lowers it otherwise. Admin authorization is up to the caller.
func (p *Processor) AdjustFeeDynamically() error {
	return p.apply(OpAdjustFeeDynamically, func(st *state) error {
		g, err := st.loadGlobal()
		if err != nil {
			return err
		}
		rules := st.rules.Fees
		if err := stepFee(g, g.TotalLiquidity < rules.LowLiquidity, rules.LiquidityStep); err != nil {
			return err
		}
		g.LastFeeUpdate = st.now
		p.log.Info("Fee adjusted", "reason", "liquidity", "liquidity", g.TotalLiquidity, "fee", g.FeeRate)
		return st.putGlobal(g)
	})
}

// AutoAdjustFee raises the fee when volatility is high and lowers it
// otherwise.
func (p *Processor) AutoAdjustFee(volatility uint64) error {
	return p.apply(OpAutoAdjustFee, func(st *state) error {
		g, err := st.loadGlobal()
		if err != nil {
			return err
		}
		rules := st.rules.Fees
		if err := stepFee(g, volatility > rules.HighVolatility, rules.VolatilityStep); err != nil {
			return err
		}
		g.LastFeeUpdate = st.now
		p.log.Info("Fee adjusted", "reason", "volatility", "volatility", volatility, "fee", g.FeeRate)
		return st.putGlobal(g)
	})
}

// UpdateFeeStructureByVote sets the fee rate once enough votes were cast.
// The rate must lie in the voted bounds. The vote count resets on success.
func (p *Processor) UpdateFeeStructureByVote(newRate uint64) error {
	return p.apply(OpUpdateFeeStructureByVote, func(st *state) error {
		vote, err := st.loadGovernance()
		if err != nil {
			return err
		}
		if !vote.Met() {
			return fmt.Errorf("%w: %d of %d", ErrInsufficientVotes, vote.VoteCount, vote.RequiredVotes)
		}
		g, err := st.loadGlobal()
		if err != nil {
			return err
		}
		rules := st.rules.Fees
		if newRate < rules.MinVotedRate || newRate > rules.MaxVotedRate {
			return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidFeeRate, newRate, rules.MinVotedRate, rules.MaxVotedRate)
		}
		g.FeeRate = newRate
		g.LastFeeUpdate = st.now
		vote.VoteCount = 0
		if err := st.putGovernance(vote); err != nil {
			return err
		}
		p.log.Info("Fee set by vote", "fee", newRate)
		return st.putGlobal(g)
	})
}

// CastVote counts one vote toward the next fee update. Voter eligibility and
// duplicate votes are checked by the identity layer, not here.
func (p *Processor) CastVote(caller common.Address) error {
	return p.apply(OpCastVote, func(st *state) error {
		vote, err := st.loadGovernance()
		if err != nil {
			return err
		}
		if vote.VoteCount, err = add("vote_count", vote.VoteCount, 1); err != nil {
			return err
		}
		p.log.Debug("Vote cast", "voter", caller, "votes", vote.VoteCount, "required", vote.RequiredVotes)
		return st.putGovernance(vote)
	})
}
