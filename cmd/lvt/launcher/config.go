// This file maps the CLI context and config file onto the launcher config.

package launcher

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/rony4d/lvt-ledger/integration"
	"github.com/rony4d/lvt-ledger/lvt"
	"github.com/rony4d/lvt-ledger/lvt/genesis"
)

// Config aggregates everything the launcher needs to open a ledger.
type Config struct {
	DataDir string        `yaml:"datadir"`
	Network NetworkConfig `yaml:"network"`
	Store   StoreConfig   `yaml:"store"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
	// Genesis is the optional embedded genesis used by init.
	Genesis *genesis.Genesis `yaml:"genesis"`
}

type NetworkConfig struct {
	Name string `yaml:"name"`
	// FakeAccounts is the number of deterministic accounts in a fake genesis.
	FakeAccounts int    `yaml:"fake_accounts"`
	FakeStake    uint64 `yaml:"fake_stake"`
}

type StoreConfig struct {
	Preset  string `yaml:"preset"`
	Backend string `yaml:"backend"`
	CacheMB int    `yaml:"cache"`
	Handles int    `yaml:"handles"`
}

type MetricsConfig struct {
	Enable bool   `yaml:"enable"`
	Addr   string `yaml:"addr"`
	Port   int    `yaml:"port"`
}

type LoggingConfig struct {
	Verbosity int    `yaml:"verbosity"`
	Format    string `yaml:"format"`
	Color     bool   `yaml:"color"`
}

// Rules resolves the network name to its economic rules.
func (c Config) Rules() (lvt.Rules, error) {
	r, ok := lvt.RulesByName(c.Network.Name)
	if !ok {
		return r, fmt.Errorf("unknown network %q (valid: main, test, fake)", c.Network.Name)
	}
	return r, nil
}

// FakeNet reports whether the fake network rules are selected.
func (c Config) FakeNet() bool {
	r, err := c.Rules()
	return err == nil && r.NetworkID == lvt.FakeNetworkID
}

// Preset returns the store parameters, with the named preset applied on top
// of the explicit values.
func (c Config) Preset() (integration.PresetConfig, error) {
	p := integration.PresetConfig{
		Name:          "custom",
		Backend:       c.Store.Backend,
		CacheMB:       c.Store.CacheMB,
		Handles:       c.Store.Handles,
		EnableMetrics: c.Metrics.Enable,
	}
	if c.Store.Preset == "" {
		return p, nil
	}
	preset, err := integration.GetPresetByName(c.Store.Preset)
	if err != nil {
		return p, err
	}
	integration.ApplyPreset(&p, preset)
	p.EnableMetrics = p.EnableMetrics || c.Metrics.Enable
	return p, nil
}

func defaultConfig() Config {
	d := DefaultConfig()
	return Config{
		DataDir: resolvePath(d.DataDir),
		Network: NetworkConfig{
			Name:      d.Network,
			FakeStake: d.Genesis.FakeStake,
		},
		Store: StoreConfig{
			Backend: d.Store.Backend,
			CacheMB: d.Store.CacheMB,
			Handles: d.Store.Handles,
		},
		Metrics: MetricsConfig{
			Addr: d.Metrics.Addr,
			Port: d.Metrics.Port,
		},
		Logging: LoggingConfig{
			Verbosity: d.Logging.Verbosity,
			Format:    d.Logging.Format,
			Color:     d.Logging.Color,
		},
	}
}

// MakeAllConfigs merges defaults, the optional config file, then CLI flag
// overrides into a single config, and makes sure the data directory exists.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if file := ctx.GlobalString("config"); file != "" {
		if err := loadConfigFile(file, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	}

	applyCLIOverrides(ctx, &cfg)

	if _, err := cfg.Rules(); err != nil {
		return cfg, err
	}
	if _, err := cfg.Preset(); err != nil {
		return cfg, err
	}
	if err := ensureDir(cfg.DataDir); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return err
	}
	if cfg.DataDir != "" {
		cfg.DataDir = resolvePathFrom(filepath.Dir(path), cfg.DataDir)
	}
	return nil
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) {
	if ctx.GlobalIsSet("datadir") {
		cfg.DataDir = resolvePath(ctx.GlobalString("datadir"))
	}

	if ctx.GlobalIsSet("network") {
		cfg.Network.Name = ctx.GlobalString("network")
	}
	if ctx.GlobalIsSet("fakenet") {
		cfg.Network.Name = "fake"
		cfg.Network.FakeAccounts = ctx.GlobalInt("fakenet")
	}

	if ctx.GlobalIsSet("db.preset") {
		cfg.Store.Preset = ctx.GlobalString("db.preset")
	}
	if ctx.GlobalIsSet("db.backend") {
		cfg.Store.Backend = ctx.GlobalString("db.backend")
	}
	if ctx.GlobalIsSet("cache") {
		cfg.Store.CacheMB = ctx.GlobalInt("cache")
	}
	if ctx.GlobalIsSet("handles") {
		cfg.Store.Handles = ctx.GlobalInt("handles")
	}

	if ctx.GlobalBool("metrics") {
		cfg.Metrics.Enable = true
	}
	if ctx.GlobalIsSet("metrics.addr") {
		cfg.Metrics.Addr = ctx.GlobalString("metrics.addr")
	}
	if ctx.GlobalIsSet("metrics.port") {
		cfg.Metrics.Port = ctx.GlobalInt("metrics.port")
	}

	if ctx.GlobalIsSet("log.format") {
		cfg.Logging.Format = ctx.GlobalString("log.format")
	}
	if ctx.GlobalIsSet("log.verbosity") {
		cfg.Logging.Verbosity = ctx.GlobalInt("log.verbosity")
	}
	if ctx.GlobalIsSet("log.color") {
		cfg.Logging.Color = ctx.GlobalBool("log.color")
	}
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create datadir %s: %w", dir, err)
	}
	return nil
}

func resolvePath(p string) string {
	return resolvePathFrom(GuessWorkDir(), p)
}

// resolvePathFrom expands ~ and anchors relative paths at base.
func resolvePathFrom(base, p string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
