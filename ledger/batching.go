package ledger

import (
	"fmt"

	"github.com/rony4d/lvt-ledger/inter"
)

// DelaySource picks the advisory delay for BatchProcessTrades.
type DelaySource interface {
	Delay(now inter.Timestamp) int64
}

// ClockModulus derives the delay as now mod Modulus. It is fully
// predictable and only advisory.
type ClockModulus struct {
	Modulus int64
}

func (c ClockModulus) Delay(now inter.Timestamp) int64 {
	if c.Modulus <= 0 {
		return 0
	}
	d := now.Unix() % c.Modulus
	if d < 0 {
		d += c.Modulus
	}
	return d
}

// FixedDelay always returns itself.
type FixedDelay int64

func (f FixedDelay) Delay(inter.Timestamp) int64 {
	return int64(f)
}

// BatchTradingOrdersWithDelay validates a requested batching delay and
// echoes it back. No state changes.
func (p *Processor) BatchTradingOrdersWithDelay(delay int64) (int64, error) {
	err := p.apply(OpBatchTradingOrdersWithDelay, func(st *state) error {
		if err := st.requireInitialized(); err != nil {
			return err
		}
		if delay <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidDelay, delay)
		}
		p.log.Info("Batch orders delayed", "delay", delay)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return delay, nil
}

// BatchProcessTrades stamps the last fee update with now plus the delay
// from the processor's DelaySource and returns that delay.
func (p *Processor) BatchProcessTrades() (int64, error) {
	var delay int64
	err := p.apply(OpBatchProcessTrades, func(st *state) error {
		g, err := st.loadGlobal()
		if err != nil {
			return err
		}
		delay = p.delays.Delay(st.now)
		if g.LastFeeUpdate, err = addTime("last_fee_update", st.now, delay); err != nil {
			return err
		}
		p.log.Info("Trades batched", "delay", delay)
		return st.putGlobal(g)
	})
	if err != nil {
		return 0, err
	}
	return delay, nil
}
