package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ClaimRewards zeroes the caller's accrued rewards and returns the amount
// released. The transfer itself is done by whoever holds the treasury.
//
// The caller needs the minimum cumulative volume, and the cooldown must
// have passed since the previous claim.
func (p *Processor) ClaimRewards(caller common.Address) (uint64, error) {
	var claimed uint64
	err := p.apply(OpClaimRewards, func(st *state) error {
		if err := st.requireInitialized(); err != nil {
			return err
		}
		u, err := st.loadUser(caller)
		if err != nil {
			return err
		}
		rules := st.rules.Claims
		if u.CumulativeVolume < rules.MinVolume {
			return fmt.Errorf("%w: volume %d below %d", ErrInsufficientLiquidityForRewards, u.CumulativeVolume, rules.MinVolume)
		}
		since, err := elapsed("claim_cooldown", st.now, u.LastClaimTime)
		if err != nil {
			return err
		}
		if since < rules.Cooldown {
			return fmt.Errorf("%w: %ds of %ds", ErrMinimumHoldingPeriodNotMet, since, rules.Cooldown)
		}
		claimed = u.AccruedRewards
		u.AccruedRewards = 0
		u.LastClaimTime = st.now
		return st.putUser(u)
	})
	if err != nil {
		return 0, err
	}
	return claimed, nil
}
