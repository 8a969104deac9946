// Package genesis describes the initial ledger state written by initialize:
// the treasury account, the governance vote threshold and an optional set
// of pre-staked accounts.
//
// A genesis is either loaded from a YAML file or generated for fake networks
// from deterministic keys.
package genesis

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"gopkg.in/yaml.v3"

	"github.com/rony4d/lvt-ledger/lvt"
)

var (
	ErrInvalidAddress   = errors.New("genesis: invalid address")
	ErrDuplicateAccount = errors.New("genesis: duplicate account")
)

// Account is a pre-opened user account.
type Account struct {
	Address       common.Address
	Stake         uint64
	Institutional bool
}

// Genesis is the initial state of a ledger.
type Genesis struct {
	Treasury common.Address
	// RequiredVotes of zero falls back to the network rules.
	RequiredVotes uint64
	Accounts      []Account
}

// file is the on-disk YAML representation.
type file struct {
	Treasury      string        `yaml:"treasury"`
	RequiredVotes uint64        `yaml:"required_votes"`
	Accounts      []fileAccount `yaml:"accounts"`
}

type fileAccount struct {
	Address       string `yaml:"address"`
	Stake         uint64 `yaml:"stake"`
	Institutional bool   `yaml:"institutional"`
}

// Load reads and validates a YAML genesis file.
func Load(path string) (Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, fmt.Errorf("read genesis file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML genesis.
func Parse(data []byte) (Genesis, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Genesis{}, fmt.Errorf("parse genesis: %w", err)
	}
	return f.genesis()
}

// UnmarshalYAML lets a genesis be embedded in other YAML documents, such as
// the operator config file.
func (g *Genesis) UnmarshalYAML(value *yaml.Node) error {
	var f file
	if err := value.Decode(&f); err != nil {
		return err
	}
	parsed, err := f.genesis()
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

func (f file) genesis() (Genesis, error) {
	treasury, err := parseAddress("treasury", f.Treasury)
	if err != nil {
		return Genesis{}, err
	}
	g := Genesis{
		Treasury:      treasury,
		RequiredVotes: f.RequiredVotes,
	}
	for i, acc := range f.Accounts {
		addr, err := parseAddress(fmt.Sprintf("accounts[%d]", i), acc.Address)
		if err != nil {
			return Genesis{}, err
		}
		g.Accounts = append(g.Accounts, Account{
			Address:       addr,
			Stake:         acc.Stake,
			Institutional: acc.Institutional,
		})
	}
	return g, g.Validate()
}

// Marshal encodes g as YAML, the inverse of Parse.
func (g Genesis) Marshal() ([]byte, error) {
	f := file{
		Treasury:      g.Treasury.Hex(),
		RequiredVotes: g.RequiredVotes,
	}
	for _, acc := range g.Accounts {
		f.Accounts = append(f.Accounts, fileAccount{
			Address:       acc.Address.Hex(),
			Stake:         acc.Stake,
			Institutional: acc.Institutional,
		})
	}
	return yaml.Marshal(&f)
}

// Validate rejects duplicate accounts.
func (g Genesis) Validate() error {
	seen := make(map[common.Address]struct{}, len(g.Accounts))
	for _, acc := range g.Accounts {
		if _, ok := seen[acc.Address]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateAccount, acc.Address.Hex())
		}
		seen[acc.Address] = struct{}{}
	}
	return nil
}

// Votes returns the governance threshold, defaulting to the rules.
func (g Genesis) Votes(rules lvt.Rules) uint64 {
	if g.RequiredVotes == 0 {
		return rules.Governance.RequiredVotes
	}
	return g.RequiredVotes
}

func parseAddress(field, s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %s %q", ErrInvalidAddress, field, s)
	}
	return common.HexToAddress(s), nil
}

// FakeKey returns a deterministic private key for fake networks and tests.
// Same n, same key.
func FakeKey(n uint64) *ecdsa.PrivateKey {
	seed := crypto.Keccak256([]byte("lvt-fakenet"), bigendian.Uint64ToBytes(n))
	key, err := crypto.ToECDSA(seed)
	if err != nil {
		panic(err)
	}
	return key
}

// FakeAddress is the address of FakeKey(n).
func FakeAddress(n uint64) common.Address {
	return crypto.PubkeyToAddress(FakeKey(n).PublicKey)
}

// FakeGenesis uses FakeAddress(0) as treasury and opens accounts
// FakeAddress(1..accounts), each with the given stake.
func FakeGenesis(accounts int, stake uint64) Genesis {
	g := Genesis{
		Treasury: FakeAddress(0),
	}
	for i := 1; i <= accounts; i++ {
		g.Accounts = append(g.Accounts, Account{
			Address: FakeAddress(uint64(i)),
			Stake:   stake,
		})
	}
	return g
}
