package ledger

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/lvt-ledger/inter"
	"github.com/rony4d/lvt-ledger/ledger/store"
)

// RecordLiquidityDeposit adds to the caller's LP deposits. The deposit
// timestamp is taken as given.
func (p *Processor) RecordLiquidityDeposit(caller common.Address, amount uint64, at inter.Timestamp) error {
	return p.apply(OpRecordLiquidityDeposit, func(st *state) error {
		if err := st.requireInitialized(); err != nil {
			return err
		}
		lp, err := st.loadLP(caller)
		if err != nil {
			return err
		}
		if lp.TotalDeposit, err = add("total_deposit", lp.TotalDeposit, amount); err != nil {
			return err
		}
		lp.LastDeposit = at
		return st.put(store.LPKey(caller), lp)
	})
}
