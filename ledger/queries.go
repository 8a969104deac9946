package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/lvt-ledger/inter"
	"github.com/rony4d/lvt-ledger/ledger/store"
)

// Queries read committed state only. They don't take the processor lock:
// each record is read whole from the store, and commits are single batches.

func (p *Processor) read(key []byte, rec record) (bool, error) {
	raw, ok, err := p.store.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := rec.UnmarshalBinary(raw); err != nil {
		return false, fmt.Errorf("decode %x: %w", key, err)
	}
	return true, nil
}

func (p *Processor) GlobalState() (inter.GlobalState, error) {
	var g inter.GlobalState
	ok, err := p.read(store.GlobalKey(), &g)
	if err == nil && !ok {
		err = ErrNotInitialized
	}
	return g, err
}

func (p *Processor) Governance() (inter.GovernanceVote, error) {
	var v inter.GovernanceVote
	ok, err := p.read(store.GovernanceKey(), &v)
	if err == nil && !ok {
		err = ErrNotInitialized
	}
	return v, err
}

func (p *Processor) UserAccount(owner common.Address) (inter.UserAccount, error) {
	var u inter.UserAccount
	ok, err := p.read(store.UserKey(owner), &u)
	if err == nil && !ok {
		err = fmt.Errorf("%w: %s", ErrAccountNotFound, owner.Hex())
	}
	return u, err
}

// LPAccount returns the owner's deposits, or an empty account if none were
// recorded.
func (p *Processor) LPAccount(owner common.Address) (inter.LPAccount, error) {
	lp := inter.LPAccount{Owner: owner}
	_, err := p.read(store.LPKey(owner), &lp)
	return lp, err
}

// Leaderboard returns the user's entry, or an empty entry.
func (p *Processor) Leaderboard(user common.Address) (inter.LeaderboardEntry, error) {
	e := inter.LeaderboardEntry{User: user}
	_, err := p.read(store.LeaderboardKey(user), &e)
	return e, err
}

// TradeRecord returns the seq-th recorded trade, counting from 1.
func (p *Processor) TradeRecord(seq uint64) (inter.TradeRecord, bool, error) {
	var t inter.TradeRecord
	ok, err := p.read(store.TradeKey(seq), &t)
	return t, ok, err
}

// Loans returns the borrower's loans in issue order.
func (p *Processor) Loans(borrower common.Address) ([]inter.Loan, error) {
	var (
		loans     []inter.Loan
		decodeErr error
	)
	err := p.store.Iterate(store.LoanPrefix(borrower), func(_, val []byte) bool {
		var l inter.Loan
		if decodeErr = l.UnmarshalBinary(val); decodeErr != nil {
			return false
		}
		loans = append(loans, l)
		return true
	})
	if err != nil {
		return nil, err
	}
	return loans, decodeErr
}
