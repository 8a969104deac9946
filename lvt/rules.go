// Package lvt defines the protocol parameters of the Liquidity Velocity Token
// ledger.
//
// Rules bundle every constant the state transitions depend on: staking tiers,
// reward formula bonuses, the rolling reward window, fee adjustment steps and
// governance bounds, claim gates, lending terms and strategy boosts. MainNet
// values are the canonical protocol constants; the other networks only differ
// in identification.
package lvt

import (
	"encoding/json"
	"time"
)

// Network identification constants
const (
	MainNetworkID uint64 = 0x1f7
	TestNetworkID uint64 = 0x1f8
	FakeNetworkID uint64 = 0x1f9
)

// Rules describes the complete parameter set for an LVT deployment.
//
// Copy must deep-copy every reference field (currently Staking.Tiers).
type Rules struct {
	Name      string
	NetworkID uint64

	Staking    StakingRules
	Rewards    RewardRules
	Fees       FeeRules
	Governance GovernanceRules
	Claims     ClaimRules
	Lending    LendingRules
	Boosts     BoostRules
	Batching   BatchingRules
}

// Tier is one staking bracket. A stake of at least MinStake earns the
// discount and rebate.
type Tier struct {
	MinStake      uint64
	FeeDiscount   uint64
	TradingRebate uint64
}

// StakingRules lists tiers from the highest MinStake to the lowest. The last
// tier must start at zero.
type StakingRules struct {
	Tiers []Tier
}

// RewardRules parameterise the per-trade reward formula and the rolling
// window that refreshes the global multiplier.
type RewardRules struct {
	// WindowSize is the number of samples averaged into the multiplier.
	WindowSize        uint64
	InitialMultiplier uint64

	// A trade earns Bonus for each of: ExecutionDelay below FastExecution,
	// Slippage below LowSlippage, LiquidityProvided above DeepLiquidity.
	Bonus         uint64
	FastExecution int64
	LowSlippage   uint64
	DeepLiquidity uint64

	// Rewards of trades with slippage above SlippagePenalty are halved.
	SlippagePenalty uint64

	// Market adjustments applied on window completion by externally
	// reported samples, in percent (BonusBase = 100%).
	HighVolatility  uint64
	VolatilityBonus uint64
	WideGap         uint64
	GapBonus        uint64
	BonusBase       uint64
}

// FeeRules drive the three fee entry points. Only the vote-gated path
// enforces [MinVotedRate, MaxVotedRate]; the automatic paths only refuse to
// go below zero.
type FeeRules struct {
	InitialRate uint64

	LowLiquidity  uint64
	LiquidityStep uint64

	HighVolatility uint64
	VolatilityStep uint64

	MinVotedRate uint64
	MaxVotedRate uint64
}

// GovernanceRules hold the default vote threshold used at initialization
// when the genesis does not specify one.
type GovernanceRules struct {
	RequiredVotes uint64
}

// ClaimRules gate reward claims.
type ClaimRules struct {
	MinVolume uint64
	Cooldown  int64 // seconds
}

// LendingRules configure loans against stake.
type LendingRules struct {
	CollateralRatio uint64 // percent of the borrowed amount
	InterestRate    uint64
	Term            int64 // seconds
}

// BoostRules are the fixed reward bonuses per strategy.
type BoostRules struct {
	MarketMaking   uint64
	Arbitrage      uint64
	OptionsHedging uint64
}

// BatchingRules configure the advisory execution delay.
type BatchingRules struct {
	DelayModulus int64
}

// MainNetRules returns the canonical protocol parameters.
func MainNetRules() Rules {
	return Rules{
		Name:       "main",
		NetworkID:  MainNetworkID,
		Staking:    DefaultStakingRules(),
		Rewards:    DefaultRewardRules(),
		Fees:       DefaultFeeRules(),
		Governance: GovernanceRules{RequiredVotes: 3},
		Claims:     DefaultClaimRules(),
		Lending:    DefaultLendingRules(),
		Boosts:     DefaultBoostRules(),
		Batching:   BatchingRules{DelayModulus: 10},
	}
}

// TestNetRules mirrors mainnet under a different network ID.
func TestNetRules() Rules {
	r := MainNetRules()
	r.Name = "test"
	r.NetworkID = TestNetworkID
	return r
}

// FakeNetRules is meant for local development: a single vote passes a fee
// proposal so one operator can drive governance.
func FakeNetRules() Rules {
	r := MainNetRules()
	r.Name = "fake"
	r.NetworkID = FakeNetworkID
	r.Governance.RequiredVotes = 1
	return r
}

// RulesByName resolves a network name as accepted on the command line.
func RulesByName(name string) (Rules, bool) {
	switch name {
	case "main", "mainnet":
		return MainNetRules(), true
	case "test", "testnet":
		return TestNetRules(), true
	case "fake", "fakenet":
		return FakeNetRules(), true
	}
	return Rules{}, false
}

func DefaultStakingRules() StakingRules {
	return StakingRules{
		Tiers: []Tier{
			{MinStake: 50_000, FeeDiscount: 30, TradingRebate: 10}, // pro
			{MinStake: 5_000, FeeDiscount: 20, TradingRebate: 5},   // advanced
			{MinStake: 500, FeeDiscount: 10, TradingRebate: 0},     // basic
			{MinStake: 0, FeeDiscount: 0, TradingRebate: 0},
		},
	}
}

func DefaultRewardRules() RewardRules {
	return RewardRules{
		WindowSize:        50,
		InitialMultiplier: 1,
		Bonus:             10,
		FastExecution:     100,
		LowSlippage:       50,
		DeepLiquidity:     1000,
		SlippagePenalty:   300, // 3% in basis points
		HighVolatility:    1000,
		VolatilityBonus:   110,
		WideGap:           500,
		GapBonus:          105,
		BonusBase:         100,
	}
}

func DefaultFeeRules() FeeRules {
	return FeeRules{
		InitialRate:    1000,
		LowLiquidity:   1_000_000,
		LiquidityStep:  100,
		HighVolatility: 1000,
		VolatilityStep: 50,
		MinVotedRate:   500,
		MaxVotedRate:   5000,
	}
}

func DefaultClaimRules() ClaimRules {
	return ClaimRules{
		MinVolume: 100,
		Cooldown:  int64(time.Hour / time.Second),
	}
}

func DefaultLendingRules() LendingRules {
	return LendingRules{
		CollateralRatio: 150,
		InterestRate:    5,
		Term:            int64(30 * 24 * time.Hour / time.Second),
	}
}

func DefaultBoostRules() BoostRules {
	return BoostRules{
		MarketMaking:   50,
		Arbitrage:      100,
		OptionsHedging: 75,
	}
}

// Copy creates a deep copy of Rules.
func (r Rules) Copy() Rules {
	cp := r
	cp.Staking.Tiers = make([]Tier, len(r.Staking.Tiers))
	copy(cp.Staking.Tiers, r.Staking.Tiers)
	return cp
}

// String returns a JSON representation for logs and config dumps.
func (r Rules) String() string {
	b, _ := json.Marshal(&r)
	return string(b)
}
