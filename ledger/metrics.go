package ledger

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rony4d/lvt-ledger/inter"
)

// Metrics exported by a Processor:
//   - lvt_instructions_total{op,result}   applied (ok) and rejected (error) instructions
//   - lvt_fee_rate                        fee rate after the last committed change
//   - lvt_global_reward_multiplier        current global reward multiplier
//   - lvt_total_trades                    trades recorded so far
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	instructions *prometheus.CounterVec
	feeRate      prometheus.Gauge
	multiplier   prometheus.Gauge
	totalTrades  prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg, if given.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		instructions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lvt_instructions_total",
				Help: "Instructions processed, by op and result",
			},
			[]string{"op", "result"},
		),
		feeRate: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "lvt_fee_rate",
				Help: "Current protocol fee rate",
			},
		),
		multiplier: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "lvt_global_reward_multiplier",
				Help: "Global reward multiplier derived from the last completed window",
			},
		),
		totalTrades: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "lvt_total_trades",
				Help: "Total recorded trades",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.instructions, m.feeRate, m.multiplier, m.totalTrades)
	}
	return m
}

func (m *Metrics) observe(op Op, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.instructions.WithLabelValues(string(op), result).Inc()
}

func (m *Metrics) publish(g *inter.GlobalState) {
	if m == nil || g == nil {
		return
	}
	m.feeRate.Set(float64(g.FeeRate))
	m.multiplier.Set(float64(g.GlobalRewardMultiplier))
	m.totalTrades.Set(float64(g.TotalTrades))
}
