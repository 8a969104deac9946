package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/lvt-ledger/inter"
	"github.com/rony4d/lvt-ledger/ledger/store"
)

// LoanResult describes an issued loan.
type LoanResult struct {
	Seq  uint64
	Loan inter.Loan
}

// BorrowAgainstLVT issues a loan if the caller's stake covers the borrowed
// amount at the collateral ratio. The loan snapshots the stake as
// collateral. Loans are never repaid or liquidated here.
func (p *Processor) BorrowAgainstLVT(caller common.Address, amount uint64) (LoanResult, error) {
	var res LoanResult
	err := p.apply(OpBorrowAgainstLVT, func(st *state) error {
		if err := st.requireInitialized(); err != nil {
			return err
		}
		u, err := st.loadUser(caller)
		if err != nil {
			return err
		}
		rules := st.rules.Lending
		required, err := mul("collateral", amount, rules.CollateralRatio)
		if err != nil {
			return err
		}
		required /= 100
		if u.StakedAmount < required {
			return fmt.Errorf("%w: staked %d, need %d", ErrInsufficientCollateral, u.StakedAmount, required)
		}

		due, err := addTime("due_time", st.now, rules.Term)
		if err != nil {
			return err
		}
		loan := inter.Loan{
			Borrower:     u.Owner,
			Collateral:   u.StakedAmount,
			BorrowAmount: amount,
			InterestRate: rules.InterestRate,
			StartTime:    st.now,
			DueTime:      due,
		}
		seq, err := st.nextLoanSeq(caller)
		if err != nil {
			return err
		}
		if err := st.put(store.LoanKey(caller, seq), &loan); err != nil {
			return err
		}
		res = LoanResult{Seq: seq, Loan: loan}
		return nil
	})
	if err != nil {
		return LoanResult{}, err
	}
	return res, nil
}
