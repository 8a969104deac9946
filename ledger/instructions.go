package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/lvt-ledger/inter"
	"github.com/rony4d/lvt-ledger/lvt/genesis"
)

// Op names an instruction.
type Op string

const (
	OpInitialize                  Op = "initialize"
	OpOpenAccount                 Op = "open_account"
	OpRecordTrade                 Op = "record_trade"
	OpRecordLiquidityDeposit      Op = "record_liquidity_deposit"
	OpStakeWithLockup             Op = "stake_with_lockup"
	OpClaimRewards                Op = "claim_rewards"
	OpAdjustFeeDynamically        Op = "adjust_fee_dynamically"
	OpAutoAdjustFee               Op = "auto_adjust_fee"
	OpBatchTradingOrdersWithDelay Op = "batch_trading_orders_with_delay"
	OpUpdateFeeStructureByVote    Op = "update_fee_structure_by_vote"
	OpCastVote                    Op = "cast_vote"
	OpUpdateDynamicReward         Op = "update_dynamic_reward"
	OpUpdateLeaderboard           Op = "update_leaderboard"
	OpRewardStrategyBoost         Op = "reward_strategy_boost"
	OpBatchProcessTrades          Op = "batch_process_trades"
	OpBorrowAgainstLVT            Op = "borrow_against_lvt"
)

// Instruction is the wire envelope of one call. Caller is taken as already
// verified.
type Instruction struct {
	ID     string          `json:"id,omitempty"`
	Op     Op              `json:"op"`
	Caller common.Address  `json:"caller"`
	Args   json.RawMessage `json:"args,omitempty"`
}

// DecodeInstruction parses a JSON envelope. Arguments are decoded later, by
// Execute.
func DecodeInstruction(data []byte) (Instruction, error) {
	var in Instruction
	if err := json.Unmarshal(data, &in); err != nil {
		return Instruction{}, fmt.Errorf("decode instruction: %w", err)
	}
	if _, ok := handlers[in.Op]; !ok {
		return in, fmt.Errorf("%w: %q", ErrUnknownInstruction, in.Op)
	}
	return in, nil
}

// TradeReceipt reports a recorded trade.
type TradeReceipt struct {
	Seq    uint64            `json:"seq"`
	ID     string            `json:"id"`
	Reward uint64            `json:"reward"`
	Record inter.TradeRecord `json:"record"`
}

// LoanReceipt reports an issued loan.
type LoanReceipt struct {
	Seq  uint64     `json:"seq"`
	ID   string     `json:"id"`
	Loan inter.Loan `json:"loan"`
}

// Receipt is the outcome of one instruction.
type Receipt struct {
	ID      string        `json:"id,omitempty"`
	Op      Op            `json:"op"`
	OK      bool          `json:"ok"`
	Error   string        `json:"error,omitempty"`
	Trade   *TradeReceipt `json:"trade,omitempty"`
	Loan    *LoanReceipt  `json:"loan,omitempty"`
	Delay   *int64        `json:"delay,omitempty"`
	Claimed *uint64       `json:"claimed,omitempty"`

	err error
}

// Err returns the failure behind a rejected receipt, for errors.Is.
func (r Receipt) Err() error {
	return r.err
}

// Rejected builds the receipt of an instruction that failed with err.
func Rejected(in Instruction, err error) Receipt {
	return Receipt{ID: in.ID, Op: in.Op, Error: err.Error(), err: err}
}

// Execute decodes the arguments and applies the instruction. Failures are
// reported in the receipt.
func (p *Processor) Execute(in Instruction) Receipt {
	h, ok := handlers[in.Op]
	if !ok {
		return Rejected(in, fmt.Errorf("%w: %q", ErrUnknownInstruction, in.Op))
	}
	r := Receipt{ID: in.ID, Op: in.Op}
	if err := h(p, in, &r); err != nil {
		return Rejected(in, err)
	}
	r.OK = true
	return r
}

func decodeArgs(raw json.RawMessage, v interface{}) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode args: %w", err)
	}
	return nil
}

type handler func(p *Processor, in Instruction, r *Receipt) error

var handlers map[Op]handler

func init() {
	handlers = map[Op]handler{
		OpInitialize: func(p *Processor, in Instruction, _ *Receipt) error {
			var args struct {
				Treasury      common.Address `json:"treasury"`
				RequiredVotes uint64         `json:"required_votes"`
			}
			if err := decodeArgs(in.Args, &args); err != nil {
				return err
			}
			return p.Initialize(genesis.Genesis{
				Treasury:      args.Treasury,
				RequiredVotes: args.RequiredVotes,
			})
		},
		OpOpenAccount: func(p *Processor, in Instruction, _ *Receipt) error {
			var args struct {
				Institutional bool `json:"institutional"`
			}
			if err := decodeArgs(in.Args, &args); err != nil {
				return err
			}
			return p.OpenAccount(in.Caller, args.Institutional)
		},
		OpRecordTrade: func(p *Processor, in Instruction, r *Receipt) error {
			var t Trade
			if err := decodeArgs(in.Args, &t); err != nil {
				return err
			}
			res, err := p.RecordTrade(in.Caller, t)
			if err != nil {
				return err
			}
			r.Trade = &TradeReceipt{
				Seq:    res.Seq,
				ID:     res.Record.ID().Hex(),
				Reward: res.Reward,
				Record: res.Record,
			}
			return nil
		},
		OpRecordLiquidityDeposit: func(p *Processor, in Instruction, _ *Receipt) error {
			var args struct {
				Amount    uint64          `json:"amount"`
				Timestamp inter.Timestamp `json:"timestamp"`
			}
			if err := decodeArgs(in.Args, &args); err != nil {
				return err
			}
			return p.RecordLiquidityDeposit(in.Caller, args.Amount, args.Timestamp)
		},
		OpStakeWithLockup: func(p *Processor, in Instruction, _ *Receipt) error {
			var args struct {
				Amount         uint64 `json:"amount"`
				LockupDuration int64  `json:"lockup_duration"`
			}
			if err := decodeArgs(in.Args, &args); err != nil {
				return err
			}
			return p.StakeWithLockup(in.Caller, args.Amount, args.LockupDuration)
		},
		OpClaimRewards: func(p *Processor, in Instruction, r *Receipt) error {
			claimed, err := p.ClaimRewards(in.Caller)
			if err != nil {
				return err
			}
			r.Claimed = &claimed
			return nil
		},
		OpAdjustFeeDynamically: func(p *Processor, _ Instruction, _ *Receipt) error {
			return p.AdjustFeeDynamically()
		},
		OpAutoAdjustFee: func(p *Processor, in Instruction, _ *Receipt) error {
			var args struct {
				Volatility uint64 `json:"volatility"`
			}
			if err := decodeArgs(in.Args, &args); err != nil {
				return err
			}
			return p.AutoAdjustFee(args.Volatility)
		},
		OpBatchTradingOrdersWithDelay: func(p *Processor, in Instruction, r *Receipt) error {
			var args struct {
				Delay int64 `json:"delay"`
			}
			if err := decodeArgs(in.Args, &args); err != nil {
				return err
			}
			delay, err := p.BatchTradingOrdersWithDelay(args.Delay)
			if err != nil {
				return err
			}
			r.Delay = &delay
			return nil
		},
		OpUpdateFeeStructureByVote: func(p *Processor, in Instruction, _ *Receipt) error {
			var args struct {
				NewFeeRate uint64 `json:"new_fee_rate"`
			}
			if err := decodeArgs(in.Args, &args); err != nil {
				return err
			}
			return p.UpdateFeeStructureByVote(args.NewFeeRate)
		},
		OpCastVote: func(p *Processor, in Instruction, _ *Receipt) error {
			return p.CastVote(in.Caller)
		},
		OpUpdateDynamicReward: func(p *Processor, in Instruction, _ *Receipt) error {
			var args struct {
				RecentReward uint64 `json:"recent_reward"`
				Volatility   uint64 `json:"volatility"`
				Gap          uint64 `json:"gap"`
			}
			if err := decodeArgs(in.Args, &args); err != nil {
				return err
			}
			return p.UpdateDynamicReward(args.RecentReward, args.Volatility, args.Gap)
		},
		OpUpdateLeaderboard: func(p *Processor, in Instruction, _ *Receipt) error {
			var args struct {
				Volume uint64 `json:"volume"`
				Count  uint64 `json:"count"`
			}
			if err := decodeArgs(in.Args, &args); err != nil {
				return err
			}
			return p.UpdateLeaderboard(in.Caller, args.Volume, args.Count)
		},
		OpRewardStrategyBoost: func(p *Processor, in Instruction, _ *Receipt) error {
			var args struct {
				Strategy StrategyType `json:"strategy"`
			}
			if err := decodeArgs(in.Args, &args); err != nil {
				return err
			}
			return p.RewardStrategyBoost(in.Caller, args.Strategy)
		},
		OpBatchProcessTrades: func(p *Processor, _ Instruction, r *Receipt) error {
			delay, err := p.BatchProcessTrades()
			if err != nil {
				return err
			}
			r.Delay = &delay
			return nil
		},
		OpBorrowAgainstLVT: func(p *Processor, in Instruction, r *Receipt) error {
			var args struct {
				Amount uint64 `json:"amount"`
			}
			if err := decodeArgs(in.Args, &args); err != nil {
				return err
			}
			res, err := p.BorrowAgainstLVT(in.Caller, args.Amount)
			if err != nil {
				return err
			}
			r.Loan = &LoanReceipt{
				Seq:  res.Seq,
				ID:   res.Loan.ID().Hex(),
				Loan: res.Loan,
			}
			return nil
		},
	}
}

// Ops lists every known instruction name, sorted.
func Ops() []Op {
	ops := make([]Op, 0, len(handlers))
	for op := range handlers {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}
