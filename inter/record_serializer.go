package inter

import (
	"errors"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/rony4d/lvt-ledger/utils/cser"
)

// Every record starts with a layout version byte. Fields follow in
// declaration order; reordering them breaks persisted state.
const recordVersion uint8 = 1

var (
	ErrUnknownVersion     = errors.New("unknown record layout version")
	ErrSerMalformedRecord = errors.New("serialization of malformed record")
)

func writeHeader(w *cser.Writer) {
	w.U8(recordVersion)
}

func readHeader(r *cser.Reader) error {
	if v := r.U8(); v != recordVersion {
		return ErrUnknownVersion
	}
	return nil
}

func writeAddress(w *cser.Writer, a common.Address) {
	w.FixedBytes(a.Bytes())
}

func readAddress(r *cser.Reader) (a common.Address) {
	r.FixedBytes(a[:])
	return a
}

func writeTime(w *cser.Writer, t Timestamp) {
	w.I64(int64(t))
}

func readTime(r *cser.Reader) Timestamp {
	return Timestamp(r.I64())
}

// GlobalState

func (s *GlobalState) MarshalCSER(w *cser.Writer) error {
	writeHeader(w)
	w.U64(s.TotalTrades)
	w.U64(s.TotalLiquidity)
	w.U64(s.FeeRate)
	writeTime(w, s.LastFeeUpdate)
	writeAddress(w, s.Treasury)
	w.U64(s.RewardSum)
	w.U64(s.RewardCount)
	w.U64(s.GlobalRewardMultiplier)
	return nil
}

func (s *GlobalState) UnmarshalCSER(r *cser.Reader) error {
	if err := readHeader(r); err != nil {
		return err
	}
	s.TotalTrades = r.U64()
	s.TotalLiquidity = r.U64()
	s.FeeRate = r.U64()
	s.LastFeeUpdate = readTime(r)
	s.Treasury = readAddress(r)
	s.RewardSum = r.U64()
	s.RewardCount = r.U64()
	s.GlobalRewardMultiplier = r.U64()
	return nil
}

func (s *GlobalState) MarshalBinary() ([]byte, error) {
	return cser.MarshalBinaryAdapter(s.MarshalCSER)
}

func (s *GlobalState) UnmarshalBinary(raw []byte) error {
	return cser.UnmarshalBinaryAdapter(raw, s.UnmarshalCSER)
}

// UserAccount

func (u *UserAccount) MarshalCSER(w *cser.Writer) error {
	writeHeader(w)
	writeAddress(w, u.Owner)
	w.U64(u.StakedAmount)
	w.U64(u.AccruedRewards)
	w.U64(u.RewardMultiplier)
	w.U64(u.TradeCount)
	w.U64(u.CumulativeVolume)
	w.U64(u.FeeDiscount)
	writeTime(w, u.LockupEnd)
	w.Bool(u.IsInstitutional)
	writeTime(w, u.LastClaimTime)
	w.U64(u.TradingRebate)
	return nil
}

func (u *UserAccount) UnmarshalCSER(r *cser.Reader) error {
	if err := readHeader(r); err != nil {
		return err
	}
	u.Owner = readAddress(r)
	u.StakedAmount = r.U64()
	u.AccruedRewards = r.U64()
	u.RewardMultiplier = r.U64()
	u.TradeCount = r.U64()
	u.CumulativeVolume = r.U64()
	u.FeeDiscount = r.U64()
	u.LockupEnd = readTime(r)
	u.IsInstitutional = r.Bool()
	u.LastClaimTime = readTime(r)
	u.TradingRebate = r.U64()
	return nil
}

func (u *UserAccount) MarshalBinary() ([]byte, error) {
	return cser.MarshalBinaryAdapter(u.MarshalCSER)
}

func (u *UserAccount) UnmarshalBinary(raw []byte) error {
	return cser.UnmarshalBinaryAdapter(raw, u.UnmarshalCSER)
}

// TradeRecord

func (t *TradeRecord) MarshalCSER(w *cser.Writer) error {
	if len(t.TradePair) > MaxTradePairLen {
		return ErrSerMalformedRecord
	}
	writeHeader(w)
	writeAddress(w, t.User)
	w.U64(t.TradeAmount)
	writeTime(w, t.TradeTimestamp)
	w.SliceBytes([]byte(t.TradePair))
	w.I64(t.ExecutionDelay)
	w.U64(t.Slippage)
	w.U64(t.LiquidityProvided)
	return nil
}

func (t *TradeRecord) UnmarshalCSER(r *cser.Reader) error {
	if err := readHeader(r); err != nil {
		return err
	}
	t.User = readAddress(r)
	t.TradeAmount = r.U64()
	t.TradeTimestamp = readTime(r)
	t.TradePair = string(r.SliceBytes(MaxTradePairLen))
	t.ExecutionDelay = r.I64()
	t.Slippage = r.U64()
	t.LiquidityProvided = r.U64()
	return nil
}

func (t *TradeRecord) MarshalBinary() ([]byte, error) {
	return cser.MarshalBinaryAdapter(t.MarshalCSER)
}

func (t *TradeRecord) UnmarshalBinary(raw []byte) error {
	return cser.UnmarshalBinaryAdapter(raw, t.UnmarshalCSER)
}

// ID is the Keccak-256 of the record's binary form.
func (t *TradeRecord) ID() hash.Hash {
	return recordID(t.MarshalBinary())
}

// LPAccount

func (p *LPAccount) MarshalCSER(w *cser.Writer) error {
	writeHeader(w)
	writeAddress(w, p.Owner)
	w.U64(p.TotalDeposit)
	writeTime(w, p.LastDeposit)
	return nil
}

func (p *LPAccount) UnmarshalCSER(r *cser.Reader) error {
	if err := readHeader(r); err != nil {
		return err
	}
	p.Owner = readAddress(r)
	p.TotalDeposit = r.U64()
	p.LastDeposit = readTime(r)
	return nil
}

func (p *LPAccount) MarshalBinary() ([]byte, error) {
	return cser.MarshalBinaryAdapter(p.MarshalCSER)
}

func (p *LPAccount) UnmarshalBinary(raw []byte) error {
	return cser.UnmarshalBinaryAdapter(raw, p.UnmarshalCSER)
}

// GovernanceVote

func (g *GovernanceVote) MarshalCSER(w *cser.Writer) error {
	writeHeader(w)
	w.U64(g.VoteCount)
	w.U64(g.RequiredVotes)
	return nil
}

func (g *GovernanceVote) UnmarshalCSER(r *cser.Reader) error {
	if err := readHeader(r); err != nil {
		return err
	}
	g.VoteCount = r.U64()
	g.RequiredVotes = r.U64()
	return nil
}

func (g *GovernanceVote) MarshalBinary() ([]byte, error) {
	return cser.MarshalBinaryAdapter(g.MarshalCSER)
}

func (g *GovernanceVote) UnmarshalBinary(raw []byte) error {
	return cser.UnmarshalBinaryAdapter(raw, g.UnmarshalCSER)
}

// LeaderboardEntry

func (l *LeaderboardEntry) MarshalCSER(w *cser.Writer) error {
	writeHeader(w)
	writeAddress(w, l.User)
	w.U64(l.TradeVolume)
	w.U64(l.TradeCount)
	writeTime(w, l.LastUpdate)
	return nil
}

func (l *LeaderboardEntry) UnmarshalCSER(r *cser.Reader) error {
	if err := readHeader(r); err != nil {
		return err
	}
	l.User = readAddress(r)
	l.TradeVolume = r.U64()
	l.TradeCount = r.U64()
	l.LastUpdate = readTime(r)
	return nil
}

func (l *LeaderboardEntry) MarshalBinary() ([]byte, error) {
	return cser.MarshalBinaryAdapter(l.MarshalCSER)
}

func (l *LeaderboardEntry) UnmarshalBinary(raw []byte) error {
	return cser.UnmarshalBinaryAdapter(raw, l.UnmarshalCSER)
}

// Loan

func (l *Loan) MarshalCSER(w *cser.Writer) error {
	writeHeader(w)
	writeAddress(w, l.Borrower)
	w.U64(l.Collateral)
	w.U64(l.BorrowAmount)
	w.U64(l.InterestRate)
	writeTime(w, l.StartTime)
	writeTime(w, l.DueTime)
	return nil
}

func (l *Loan) UnmarshalCSER(r *cser.Reader) error {
	if err := readHeader(r); err != nil {
		return err
	}
	l.Borrower = readAddress(r)
	l.Collateral = r.U64()
	l.BorrowAmount = r.U64()
	l.InterestRate = r.U64()
	l.StartTime = readTime(r)
	l.DueTime = readTime(r)
	return nil
}

func (l *Loan) MarshalBinary() ([]byte, error) {
	return cser.MarshalBinaryAdapter(l.MarshalCSER)
}

func (l *Loan) UnmarshalBinary(raw []byte) error {
	return cser.UnmarshalBinaryAdapter(raw, l.UnmarshalCSER)
}

// ID is the Keccak-256 of the loan's binary form.
func (l *Loan) ID() hash.Hash {
	return recordID(l.MarshalBinary())
}

func recordID(b []byte, err error) hash.Hash {
	if err != nil {
		panic("can't hash: " + err.Error())
	}
	return hash.Hash(crypto.Keccak256Hash(b))
}
