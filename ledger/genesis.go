package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/lvt-ledger/inter"
	"github.com/rony4d/lvt-ledger/ledger/store"
	"github.com/rony4d/lvt-ledger/lvt/genesis"
)

// Initialize writes the global state and governance singletons, then opens
// the genesis accounts with their stake and tier.
func (p *Processor) Initialize(g genesis.Genesis) error {
	return p.apply(OpInitialize, func(st *state) error {
		if err := g.Validate(); err != nil {
			return err
		}
		ok, err := st.tx.Has(store.GlobalKey())
		if err != nil {
			return err
		}
		if ok {
			return ErrAlreadyInitialized
		}

		global := &inter.GlobalState{
			FeeRate:                st.rules.Fees.InitialRate,
			LastFeeUpdate:          st.now,
			Treasury:               g.Treasury,
			GlobalRewardMultiplier: st.rules.Rewards.InitialMultiplier,
		}
		if err := st.putGlobal(global); err != nil {
			return err
		}
		vote := &inter.GovernanceVote{
			RequiredVotes: g.Votes(st.rules),
		}
		if err := st.putGovernance(vote); err != nil {
			return err
		}

		for _, acc := range g.Accounts {
			u := newUserAccount(acc.Address, acc.Institutional, global)
			u.StakedAmount = acc.Stake
			applyTier(u, st.rules.Staking)
			if err := st.putUser(u); err != nil {
				return fmt.Errorf("genesis account %s: %w", acc.Address.Hex(), err)
			}
		}
		p.log.Info("Ledger initialized", "network", st.rules.Name, "treasury", g.Treasury,
			"accounts", len(g.Accounts), "required_votes", vote.RequiredVotes)
		return nil
	})
}

// OpenAccount creates the caller's account with zero balances.
func (p *Processor) OpenAccount(caller common.Address, institutional bool) error {
	return p.apply(OpOpenAccount, func(st *state) error {
		global, err := st.loadGlobal()
		if err != nil {
			return err
		}
		ok, err := st.tx.Has(store.UserKey(caller))
		if err != nil {
			return err
		}
		if ok {
			return fmt.Errorf("%w: %s", ErrAccountExists, caller.Hex())
		}
		return st.putUser(newUserAccount(caller, institutional, global))
	})
}
