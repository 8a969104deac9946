package ledger

import "errors"

// Instruction failures. Every one aborts the transition; nothing it staged
// is committed.
var (
	ErrWashTradingAttempt              = errors.New("wash trading attempt")
	ErrInsufficientLiquidityForRewards = errors.New("insufficient liquidity for rewards")
	ErrMinimumHoldingPeriodNotMet      = errors.New("minimum holding period not met")
	ErrInvalidDelay                    = errors.New("invalid delay")
	ErrInsufficientVotes               = errors.New("insufficient votes")
	ErrInvalidFeeRate                  = errors.New("invalid fee rate")
	ErrInsufficientCollateral          = errors.New("insufficient collateral")
	ErrArithmeticOverflow              = errors.New("arithmetic overflow")
	ErrArithmeticUnderflow             = errors.New("arithmetic underflow")

	ErrNotInitialized     = errors.New("protocol not initialized")
	ErrAlreadyInitialized = errors.New("protocol already initialized")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrTradePairTooLong   = errors.New("trade pair too long")
	ErrUnknownInstruction = errors.New("unknown instruction")
)
