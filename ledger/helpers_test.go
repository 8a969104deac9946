package ledger

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/lvt-ledger/inter"
	"github.com/rony4d/lvt-ledger/ledger/store"
	"github.com/rony4d/lvt-ledger/lvt"
	"github.com/rony4d/lvt-ledger/lvt/genesis"
)

const startTime = inter.Timestamp(1_700_000_000)

var (
	treasury = common.HexToAddress("0x7ea5")
	alice    = common.HexToAddress("0xa11ce")
	bob      = common.HexToAddress("0xb0b")
	carol    = common.HexToAddress("0xca201")
)

type testEnv struct {
	*Processor
	clock *ManualClock
	store *store.Store
}

// newTestEnv returns an initialized mainnet processor over a memory store
// and a manual clock at startTime.
func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	env := newBareEnv(opts...)
	require.NoError(t, env.Initialize(genesis.Genesis{Treasury: treasury}))
	return env
}

func newBareEnv(opts ...Option) *testEnv {
	s := store.OpenMemory()
	clock := NewManualClock(startTime)
	opts = append([]Option{WithClock(clock)}, opts...)
	return &testEnv{
		Processor: New(s, lvt.MainNetRules(), opts...),
		clock:     clock,
		store:     s,
	}
}

func (e *testEnv) open(t *testing.T, who ...common.Address) {
	t.Helper()
	for _, addr := range who {
		require.NoError(t, e.OpenAccount(addr, false))
	}
}

func (e *testEnv) user(t *testing.T, who common.Address) inter.UserAccount {
	t.Helper()
	u, err := e.UserAccount(who)
	require.NoError(t, err)
	return u
}

func (e *testEnv) global(t *testing.T) inter.GlobalState {
	t.Helper()
	g, err := e.GlobalState()
	require.NoError(t, err)
	return g
}

// snapshot dumps every committed key so tests can prove a failed
// instruction left no trace.
func (e *testEnv) snapshot(t *testing.T) map[string]string {
	t.Helper()
	out := make(map[string]string)
	require.NoError(t, e.store.Iterate(nil, func(k, v []byte) bool {
		out[string(k)] = string(v)
		return true
	}))
	return out
}

// fullBonusTrade earns every bonus: reward = amount × 1000.
func fullBonusTrade(amount uint64) Trade {
	return Trade{
		Amount:            amount,
		Timestamp:         startTime,
		Pair:              "LVT/USDC",
		ExecutionDelay:    50,
		Slippage:          10,
		LiquidityProvided: 2000,
		Counterparty:      bob,
	}
}

// plainTrade earns no bonus: reward = amount.
func plainTrade(amount uint64) Trade {
	return Trade{
		Amount:            amount,
		Timestamp:         startTime,
		Pair:              "LVT/USDC",
		ExecutionDelay:    500,
		Slippage:          100,
		LiquidityProvided: 10,
		Counterparty:      bob,
	}
}
