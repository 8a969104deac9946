package ledger

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/lvt-ledger/inter"
	"github.com/rony4d/lvt-ledger/lvt"
)

// TierFor maps a staked amount to its tier: the first tier, scanning from
// the highest threshold down, whose MinStake the amount reaches.
func TierFor(rules lvt.StakingRules, staked uint64) lvt.Tier {
	for _, t := range rules.Tiers {
		if staked >= t.MinStake {
			return t
		}
	}
	return lvt.Tier{}
}

func applyTier(u *inter.UserAccount, rules lvt.StakingRules) {
	t := TierFor(rules, u.StakedAmount)
	u.FeeDiscount = t.FeeDiscount
	u.TradingRebate = t.TradingRebate
}

// StakeWithLockup adds amount to the caller's stake and recomputes the tier.
// A positive lockup sets the lockup end to now + lockup seconds; zero or
// negative leaves it untouched.
func (p *Processor) StakeWithLockup(caller common.Address, amount uint64, lockup int64) error {
	return p.apply(OpStakeWithLockup, func(st *state) error {
		global, err := st.loadGlobal()
		if err != nil {
			return err
		}
		u, err := st.loadOrOpenUser(caller, global)
		if err != nil {
			return err
		}
		if u.StakedAmount, err = add("staked_amount", u.StakedAmount, amount); err != nil {
			return err
		}
		if lockup > 0 {
			if u.LockupEnd, err = addTime("lockup_end", st.now, lockup); err != nil {
				return err
			}
		}
		applyTier(u, st.rules.Staking)
		return st.putUser(u)
	})
}
