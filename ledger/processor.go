// Package ledger implements the LVT state transitions: trades and rewards,
// fees and governance, staking tiers, claims, boosts, liquidity tracking,
// the leaderboard and collateralized loans.
//
// Every instruction runs through Processor.apply. It stages all record
// writes in a store.Txn and commits them in one batch only if the whole
// transition succeeded, so a failed instruction leaves no trace. Instructions
// are serialized by the processor; there is no concurrency inside one.
package ledger

import (
	"sync"

	"github.com/ethereum/go-ethereum/log"

	"github.com/rony4d/lvt-ledger/ledger/store"
	"github.com/rony4d/lvt-ledger/lvt"
)

// Processor applies instructions to a record store.
type Processor struct {
	mu sync.Mutex

	store   *store.Store
	rules   lvt.Rules
	clock   Clock
	delays  DelaySource
	metrics *Metrics
	log     log.Logger
}

// Option customizes a Processor.
type Option func(*Processor)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(p *Processor) { p.clock = c }
}

// WithDelaySource replaces the clock-modulus delay used by
// BatchProcessTrades.
func WithDelaySource(d DelaySource) Option {
	return func(p *Processor) { p.delays = d }
}

func WithMetrics(m *Metrics) Option {
	return func(p *Processor) { p.metrics = m }
}

func WithLogger(l log.Logger) Option {
	return func(p *Processor) { p.log = l }
}

// New creates a processor over s governed by rules.
func New(s *store.Store, rules lvt.Rules, opts ...Option) *Processor {
	p := &Processor{
		store: s,
		rules: rules.Copy(),
		clock: SystemClock{},
		delays: ClockModulus{
			Modulus: rules.Batching.DelayModulus,
		},
		log: log.New("module", "ledger"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Rules returns a copy of the processor's rules.
func (p *Processor) Rules() lvt.Rules {
	return p.rules.Copy()
}

// apply runs fn as one atomic transition.
func (p *Processor) apply(op Op, fn func(*state) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	tx := p.store.Begin()
	st := &state{
		tx:    tx,
		rules: p.rules,
		now:   p.clock.Now(),
	}

	err := fn(st)
	if err != nil {
		tx.Discard()
	} else {
		writes := tx.Len()
		if err = tx.Commit(); err == nil {
			p.metrics.publish(st.global)
			p.log.Debug("Instruction applied", "op", op, "writes", writes, "now", st.now)
		}
	}
	if err != nil {
		p.log.Debug("Instruction rejected", "op", op, "err", err)
	}
	p.metrics.observe(op, err)
	return err
}
