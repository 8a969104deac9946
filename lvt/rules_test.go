package lvt

import (
	"encoding/json"
	"testing"
)

// TestNetworkConstants verifies that network ID constants are distinct and stable.
func TestNetworkConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant uint64
		want     uint64
	}{
		{"MainNetworkID", MainNetworkID, 0x1f7},
		{"TestNetworkID", TestNetworkID, 0x1f8},
		{"FakeNetworkID", FakeNetworkID, 0x1f9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.want {
				t.Errorf("%s = %#x, want %#x", tt.name, tt.constant, tt.want)
			}
		})
	}
}

func TestMainNetRules(t *testing.T) {
	r := MainNetRules()

	if r.Name != "main" || r.NetworkID != MainNetworkID {
		t.Fatalf("unexpected identification %q/%d", r.Name, r.NetworkID)
	}
	if r.Fees.InitialRate != 1000 {
		t.Errorf("InitialRate = %d, want 1000", r.Fees.InitialRate)
	}
	if r.Rewards.InitialMultiplier != 1 {
		t.Errorf("InitialMultiplier = %d, want 1", r.Rewards.InitialMultiplier)
	}
	if r.Rewards.WindowSize != 50 {
		t.Errorf("WindowSize = %d, want 50", r.Rewards.WindowSize)
	}
	if r.Fees.MinVotedRate != 500 || r.Fees.MaxVotedRate != 5000 {
		t.Errorf("voted fee bounds = [%d, %d], want [500, 5000]", r.Fees.MinVotedRate, r.Fees.MaxVotedRate)
	}
	if r.Claims.Cooldown != 3600 {
		t.Errorf("Cooldown = %d, want 3600", r.Claims.Cooldown)
	}
	if r.Lending.Term != 30*86400 {
		t.Errorf("Term = %d, want %d", r.Lending.Term, 30*86400)
	}
	if r.Lending.CollateralRatio != 150 || r.Lending.InterestRate != 5 {
		t.Errorf("lending = %+v", r.Lending)
	}
	if r.Governance.RequiredVotes != 3 {
		t.Errorf("RequiredVotes = %d, want 3", r.Governance.RequiredVotes)
	}
	if r.Batching.DelayModulus != 10 {
		t.Errorf("DelayModulus = %d, want 10", r.Batching.DelayModulus)
	}
}

func TestDefaultStakingRules(t *testing.T) {
	tiers := DefaultStakingRules().Tiers
	want := []Tier{
		{50_000, 30, 10},
		{5_000, 20, 5},
		{500, 10, 0},
		{0, 0, 0},
	}
	if len(tiers) != len(want) {
		t.Fatalf("got %d tiers, want %d", len(tiers), len(want))
	}
	for i := range want {
		if tiers[i] != want[i] {
			t.Errorf("tier %d = %+v, want %+v", i, tiers[i], want[i])
		}
	}
	if tiers[len(tiers)-1].MinStake != 0 {
		t.Error("last tier must start at zero")
	}
}

func TestDefaultBoostRules(t *testing.T) {
	b := DefaultBoostRules()
	if b.MarketMaking != 50 || b.Arbitrage != 100 || b.OptionsHedging != 75 {
		t.Errorf("boosts = %+v", b)
	}
}

func TestNetworksShareEconomy(t *testing.T) {
	main := MainNetRules()
	for _, r := range []Rules{TestNetRules(), FakeNetRules()} {
		if r.NetworkID == main.NetworkID {
			t.Errorf("%s reuses mainnet network ID", r.Name)
		}
		if r.Fees != main.Fees || r.Rewards != main.Rewards || r.Lending != main.Lending {
			t.Errorf("%s economy differs from mainnet", r.Name)
		}
	}
	if FakeNetRules().Governance.RequiredVotes != 1 {
		t.Error("fakenet should pass proposals with a single vote")
	}
}

func TestRulesByName(t *testing.T) {
	tests := []struct {
		name string
		want uint64
		ok   bool
	}{
		{"main", MainNetworkID, true},
		{"mainnet", MainNetworkID, true},
		{"test", TestNetworkID, true},
		{"fakenet", FakeNetworkID, true},
		{"devnet", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := RulesByName(tt.name)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if r.NetworkID != tt.want {
				t.Errorf("NetworkID = %#x, want %#x", r.NetworkID, tt.want)
			}
		})
	}
}

// TestRulesCopy verifies that Copy does not share the tier slice.
func TestRulesCopy(t *testing.T) {
	original := MainNetRules()
	copied := original.Copy()

	copied.Staking.Tiers[0].FeeDiscount = 99
	if original.Staking.Tiers[0].FeeDiscount != 30 {
		t.Errorf("modifying copy changed original: %d", original.Staking.Tiers[0].FeeDiscount)
	}
}

// TestRulesString verifies that String returns valid JSON.
func TestRulesString(t *testing.T) {
	rules := MainNetRules()
	jsonStr := rules.String()

	var decoded Rules
	if err := json.Unmarshal([]byte(jsonStr), &decoded); err != nil {
		t.Fatalf("String() returned invalid JSON: %v\nJSON: %s", err, jsonStr)
	}
	if decoded.NetworkID != rules.NetworkID || len(decoded.Staking.Tiers) != len(rules.Staking.Tiers) {
		t.Errorf("decoded rules differ: %s", jsonStr)
	}
}
