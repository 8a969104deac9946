package store

import (
	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/common"
)

// Record key prefixes, one byte per kind.
var (
	globalKey     = []byte("g")
	governanceKey = []byte("v")
	userPrefix    = []byte("u")
	lpPrefix      = []byte("p")
	leaderPrefix  = []byte("l")
	tradePrefix   = []byte("t")
	loanPrefix    = []byte("n")
	loanSeqPrefix = []byte("s")
)

func join(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	key := make([]byte, 0, n)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

func GlobalKey() []byte     { return join(globalKey) }
func GovernanceKey() []byte { return join(governanceKey) }

func UserKey(owner common.Address) []byte       { return join(userPrefix, owner.Bytes()) }
func LPKey(owner common.Address) []byte         { return join(lpPrefix, owner.Bytes()) }
func LeaderboardKey(user common.Address) []byte { return join(leaderPrefix, user.Bytes()) }
func LoanSeqKey(borrower common.Address) []byte { return join(loanSeqPrefix, borrower.Bytes()) }
func LoanPrefix(borrower common.Address) []byte { return join(loanPrefix, borrower.Bytes()) }
func LeaderboardPrefix() []byte                 { return join(leaderPrefix) }

// TradeKey addresses a trade by its global sequence number.
func TradeKey(seq uint64) []byte {
	return join(tradePrefix, bigendian.Uint64ToBytes(seq))
}

// LoanKey addresses the seq-th loan of a borrower.
func LoanKey(borrower common.Address, seq uint64) []byte {
	return join(loanPrefix, borrower.Bytes(), bigendian.Uint64ToBytes(seq))
}
