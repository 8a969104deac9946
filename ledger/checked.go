package ledger

import (
	"fmt"
	gomath "math"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/rony4d/lvt-ledger/inter"
)

// Checked arithmetic. The field name is attached to the error so a failed
// transition says which accumulator would have wrapped.

func add(field string, a, b uint64) (uint64, error) {
	r, overflow := math.SafeAdd(a, b)
	if overflow {
		return 0, fmt.Errorf("%s: %w", field, ErrArithmeticOverflow)
	}
	return r, nil
}

func sub(field string, a, b uint64) (uint64, error) {
	r, underflow := math.SafeSub(a, b)
	if underflow {
		return 0, fmt.Errorf("%s: %w", field, ErrArithmeticUnderflow)
	}
	return r, nil
}

func mul(field string, a, b uint64) (uint64, error) {
	r, overflow := math.SafeMul(a, b)
	if overflow {
		return 0, fmt.Errorf("%s: %w", field, ErrArithmeticOverflow)
	}
	return r, nil
}

// addTime returns t + d seconds.
func addTime(field string, t inter.Timestamp, d int64) (inter.Timestamp, error) {
	a := t.Unix()
	switch {
	case d > 0 && a > gomath.MaxInt64-d:
		return 0, fmt.Errorf("%s: %w", field, ErrArithmeticOverflow)
	case d < 0 && a < gomath.MinInt64-d:
		return 0, fmt.Errorf("%s: %w", field, ErrArithmeticUnderflow)
	}
	return inter.Timestamp(a + d), nil
}

// elapsed returns now - since in seconds.
func elapsed(field string, now, since inter.Timestamp) (int64, error) {
	a, b := now.Unix(), since.Unix()
	switch {
	case b < 0 && a > gomath.MaxInt64+b:
		return 0, fmt.Errorf("%s: %w", field, ErrArithmeticOverflow)
	case b > 0 && a < gomath.MinInt64+b:
		return 0, fmt.Errorf("%s: %w", field, ErrArithmeticUnderflow)
	}
	return a - b, nil
}
