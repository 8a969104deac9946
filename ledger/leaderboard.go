package ledger

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/lvt-ledger/inter"
	"github.com/rony4d/lvt-ledger/ledger/store"
)

// UpdateLeaderboard accumulates reported volume and trade count for the
// caller and stamps the entry with the current time.
func (p *Processor) UpdateLeaderboard(caller common.Address, volume, count uint64) error {
	return p.apply(OpUpdateLeaderboard, func(st *state) error {
		if err := st.requireInitialized(); err != nil {
			return err
		}
		e, err := st.loadLeaderboard(caller)
		if err != nil {
			return err
		}
		if e.TradeVolume, err = add("trade_volume", e.TradeVolume, volume); err != nil {
			return err
		}
		if e.TradeCount, err = add("trade_count", e.TradeCount, count); err != nil {
			return err
		}
		e.LastUpdate = st.now
		return st.put(store.LeaderboardKey(caller), e)
	})
}

// TopTraders returns up to n leaderboard entries ranked by volume, then
// trade count, then address. n <= 0 returns every entry.
func (p *Processor) TopTraders(n int) ([]inter.LeaderboardEntry, error) {
	var entries []inter.LeaderboardEntry
	var decodeErr error
	err := p.store.Iterate(store.LeaderboardPrefix(), func(_, val []byte) bool {
		var e inter.LeaderboardEntry
		if decodeErr = e.UnmarshalBinary(val); decodeErr != nil {
			return false
		}
		entries = append(entries, e)
		return true
	})
	if err != nil {
		return nil, err
	}
	if decodeErr != nil {
		return nil, decodeErr
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.TradeVolume != b.TradeVolume {
			return a.TradeVolume > b.TradeVolume
		}
		if a.TradeCount != b.TradeCount {
			return a.TradeCount > b.TradeCount
		}
		return bytes.Compare(a.User.Bytes(), b.User.Bytes()) < 0
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}
