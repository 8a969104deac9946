// Package inter defines the durable ledger records of the LVT protocol and
// their canonical binary layout.
//
// Records are plain values. Transitions load them from the store, mutate a
// local copy and write the whole record back, so a record value never
// aliases store memory.
package inter

import (
	"github.com/ethereum/go-ethereum/common"
)

// MaxTradePairLen bounds TradeRecord.TradePair in bytes.
const MaxTradePairLen = 32

// GlobalState is the protocol-wide singleton.
type GlobalState struct {
	TotalTrades    uint64         `json:"total_trades"`
	TotalLiquidity uint64         `json:"total_liquidity"`
	FeeRate        uint64         `json:"fee_rate"`
	LastFeeUpdate  Timestamp      `json:"last_fee_update"`
	Treasury       common.Address `json:"treasury"`

	// Rolling reward window. RewardCount stays below the window size at rest.
	RewardSum              uint64 `json:"reward_sum"`
	RewardCount            uint64 `json:"reward_count"`
	GlobalRewardMultiplier uint64 `json:"global_reward_multiplier"`
}

// UserAccount holds one trader's stake, rewards and tier.
type UserAccount struct {
	Owner            common.Address `json:"owner"`
	StakedAmount     uint64         `json:"staked_amount"`
	AccruedRewards   uint64         `json:"accrued_rewards"`
	RewardMultiplier uint64         `json:"reward_multiplier"` // global multiplier snapshot at the last trade
	TradeCount       uint64         `json:"trade_count"`
	CumulativeVolume uint64         `json:"cumulative_volume"`
	FeeDiscount      uint64         `json:"fee_discount"`
	LockupEnd        Timestamp      `json:"lockup_end"`
	IsInstitutional  bool           `json:"is_institutional"`
	LastClaimTime    Timestamp      `json:"last_claim_time"`
	TradingRebate    uint64         `json:"trading_rebate"`
}

// TradeRecord is written once per trade and never modified.
type TradeRecord struct {
	User              common.Address `json:"user"`
	TradeAmount       uint64         `json:"trade_amount"`
	TradeTimestamp    Timestamp      `json:"trade_timestamp"`
	TradePair         string         `json:"trade_pair"`
	ExecutionDelay    int64          `json:"execution_delay"`
	Slippage          uint64         `json:"slippage"`
	LiquidityProvided uint64         `json:"liquidity_provided"`
}

// LPAccount tracks a liquidity provider's deposits.
type LPAccount struct {
	Owner        common.Address `json:"owner"`
	TotalDeposit uint64         `json:"total_deposit"`
	LastDeposit  Timestamp      `json:"last_deposit"`
}

// GovernanceVote gates fee updates. VoteCount is reset after every
// successful gated update.
type GovernanceVote struct {
	VoteCount     uint64 `json:"vote_count"`
	RequiredVotes uint64 `json:"required_votes"`
}

// Met reports whether enough votes were cast.
func (g GovernanceVote) Met() bool {
	return g.VoteCount >= g.RequiredVotes
}

// LeaderboardEntry accumulates a trader's reported volume and trade count.
type LeaderboardEntry struct {
	User        common.Address `json:"user"`
	TradeVolume uint64         `json:"trade_volume"`
	TradeCount  uint64         `json:"trade_count"`
	LastUpdate  Timestamp      `json:"last_update"`
}

// Loan is issued against staked collateral and never modified.
type Loan struct {
	Borrower     common.Address `json:"borrower"`
	Collateral   uint64         `json:"collateral"` // staked amount at issuance
	BorrowAmount uint64         `json:"borrow_amount"`
	InterestRate uint64         `json:"interest_rate"`
	StartTime    Timestamp      `json:"start_time"`
	DueTime      Timestamp      `json:"due_time"`
}
