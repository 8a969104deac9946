package genesis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rony4d/lvt-ledger/lvt"
)

const sample = `
treasury: "0x00000000000000000000000000000000000000aa"
required_votes: 2
accounts:
  - address: "0x0000000000000000000000000000000000000001"
    stake: 50000
  - address: "0x0000000000000000000000000000000000000002"
    stake: 10
    institutional: true
`

func TestParse(t *testing.T) {
	require := require.New(t)

	g, err := Parse([]byte(sample))
	require.NoError(err)
	require.Equal(common.HexToAddress("0xaa"), g.Treasury)
	require.Equal(uint64(2), g.RequiredVotes)
	require.Len(g.Accounts, 2)
	require.Equal(uint64(50000), g.Accounts[0].Stake)
	require.True(g.Accounts[1].Institutional)

	// round trip through Marshal
	b, err := g.Marshal()
	require.NoError(err)
	again, err := Parse(b)
	require.NoError(err)
	require.Equal(g, again)
}

func TestParseErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"bad treasury": `treasury: "0x12"`,
		"bad account":  "treasury: \"0x00000000000000000000000000000000000000aa\"\naccounts:\n  - address: nope\n",
		"duplicate": "treasury: \"0x00000000000000000000000000000000000000aa\"\naccounts:\n" +
			"  - address: \"0x0000000000000000000000000000000000000001\"\n" +
			"  - address: \"0x0000000000000000000000000000000000000001\"\n",
		"not yaml": "treasury: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
		})
	}

	_, err := Parse([]byte(`treasury: "0x12"`))
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestEmbedded(t *testing.T) {
	var doc struct {
		Network string   `yaml:"network"`
		Genesis *Genesis `yaml:"genesis"`
	}
	embedded := "network: fake\ngenesis:\n" + indent(sample)
	require.NoError(t, yaml.Unmarshal([]byte(embedded), &doc))
	require.NotNil(t, doc.Genesis)
	require.Len(t, doc.Genesis.Accounts, 2)

	err := yaml.Unmarshal([]byte("genesis:\n  treasury: nope\n"), &doc)
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func indent(s string) string {
	var out string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		out += "  " + line + "\n"
	}
	return out
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0600))

	g, err := Load(path)
	require.NoError(t, err)
	require.Len(t, g.Accounts, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestVotes(t *testing.T) {
	rules := lvt.MainNetRules()
	require.Equal(t, rules.Governance.RequiredVotes, Genesis{}.Votes(rules))
	require.Equal(t, uint64(7), Genesis{RequiredVotes: 7}.Votes(rules))
}

func TestFakeGenesis(t *testing.T) {
	require := require.New(t)

	require.Equal(FakeAddress(3), FakeAddress(3))
	require.NotEqual(FakeAddress(1), FakeAddress(2))

	g := FakeGenesis(3, 500)
	require.Equal(FakeAddress(0), g.Treasury)
	require.Len(g.Accounts, 3)
	for i, acc := range g.Accounts {
		require.Equal(FakeAddress(uint64(i+1)), acc.Address)
		require.Equal(uint64(500), acc.Stake)
	}
	require.NoError(g.Validate())
}
