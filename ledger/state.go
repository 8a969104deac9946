package ledger

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/lvt-ledger/inter"
	"github.com/rony4d/lvt-ledger/ledger/store"
	"github.com/rony4d/lvt-ledger/lvt"
)

type record interface {
	MarshalBinary() ([]byte, error)
	UnmarshalBinary([]byte) error
}

// state is what a transition sees: the staged view of the store, the rules
// and the instant the instruction executes at. Records are loaded as
// private copies and written back whole.
type state struct {
	tx    *store.Txn
	rules lvt.Rules
	now   inter.Timestamp

	// last global state written, published to metrics after commit
	global *inter.GlobalState
}

func (s *state) get(key []byte, rec record) (bool, error) {
	raw, ok, err := s.tx.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := rec.UnmarshalBinary(raw); err != nil {
		return false, fmt.Errorf("decode %x: %w", key, err)
	}
	return true, nil
}

func (s *state) put(key []byte, rec record) error {
	raw, err := rec.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode %x: %w", key, err)
	}
	return s.tx.Put(key, raw)
}

func (s *state) loadGlobal() (*inter.GlobalState, error) {
	g := new(inter.GlobalState)
	ok, err := s.get(store.GlobalKey(), g)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotInitialized
	}
	return g, nil
}

func (s *state) putGlobal(g *inter.GlobalState) error {
	s.global = g
	return s.put(store.GlobalKey(), g)
}

// requireInitialized is for transitions that don't otherwise touch the
// global state.
func (s *state) requireInitialized() error {
	ok, err := s.tx.Has(store.GlobalKey())
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotInitialized
	}
	return nil
}

func (s *state) loadGovernance() (*inter.GovernanceVote, error) {
	v := new(inter.GovernanceVote)
	ok, err := s.get(store.GovernanceKey(), v)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotInitialized
	}
	return v, nil
}

func (s *state) putGovernance(v *inter.GovernanceVote) error {
	return s.put(store.GovernanceKey(), v)
}

func (s *state) loadUser(owner common.Address) (*inter.UserAccount, error) {
	u := new(inter.UserAccount)
	ok, err := s.get(store.UserKey(owner), u)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, owner.Hex())
	}
	return u, nil
}

// loadOrOpenUser creates the account on first interaction.
func (s *state) loadOrOpenUser(owner common.Address, g *inter.GlobalState) (*inter.UserAccount, error) {
	u, err := s.loadUser(owner)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}
	return newUserAccount(owner, false, g), nil
}

func (s *state) putUser(u *inter.UserAccount) error {
	return s.put(store.UserKey(u.Owner), u)
}

func (s *state) loadLP(owner common.Address) (*inter.LPAccount, error) {
	lp := &inter.LPAccount{Owner: owner}
	if _, err := s.get(store.LPKey(owner), lp); err != nil {
		return nil, err
	}
	return lp, nil
}

func (s *state) loadLeaderboard(user common.Address) (*inter.LeaderboardEntry, error) {
	e := &inter.LeaderboardEntry{User: user}
	if _, err := s.get(store.LeaderboardKey(user), e); err != nil {
		return nil, err
	}
	return e, nil
}

// nextLoanSeq bumps and returns the borrower's loan counter. Sequences
// start at 1.
func (s *state) nextLoanSeq(borrower common.Address) (uint64, error) {
	key := store.LoanSeqKey(borrower)
	raw, ok, err := s.tx.Get(key)
	if err != nil {
		return 0, err
	}
	var seq uint64
	if ok {
		seq = bigendian.BytesToUint64(raw)
	}
	seq, err = add("loan_seq", seq, 1)
	if err != nil {
		return 0, err
	}
	return seq, s.tx.Put(key, bigendian.Uint64ToBytes(seq))
}

func newUserAccount(owner common.Address, institutional bool, g *inter.GlobalState) *inter.UserAccount {
	return &inter.UserAccount{
		Owner:            owner,
		RewardMultiplier: g.GlobalRewardMultiplier,
		IsInstitutional:  institutional,
	}
}
