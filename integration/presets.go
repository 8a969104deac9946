// Package integration assembles the ledger runtime: it turns a named store
// preset into an open record store and a processor.
//
// Presets bundle the store backend with its cache sizing so operators can
// pick a profile instead of tuning every knob:
//
//	memory  - throwaway in-memory store, for tests and dry runs
//	lite    - small LevelDB caches, for laptops and CI
//	full    - large LevelDB caches with metrics, for long-running operators
package integration

import (
	"fmt"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rony4d/lvt-ledger/ledger"
	"github.com/rony4d/lvt-ledger/ledger/store"
	"github.com/rony4d/lvt-ledger/lvt"
)

const (
	BackendMemory  = "memory"
	BackendLevelDB = "leveldb"
)

// PresetConfig captures the store parameters that vary across profiles.
type PresetConfig struct {
	Name          string `yaml:"name"`
	Backend       string `yaml:"backend"`
	CacheMB       int    `yaml:"cache"`
	Handles       int    `yaml:"handles"`
	EnableMetrics bool   `yaml:"metrics"`
}

func DefaultPreset() PresetConfig {
	return PresetConfig{
		Name:    "default",
		Backend: BackendLevelDB,
		CacheMB: 64,
		Handles: 256,
	}
}

func MemoryPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "memory"
	cfg.Backend = BackendMemory
	cfg.CacheMB = 0
	cfg.Handles = 0
	return cfg
}

// LitePreset keeps LevelDB's footprint small.
func LitePreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "lite"
	cfg.CacheMB = 16
	cfg.Handles = 64
	return cfg
}

// FullPreset is sized for an operator that keeps the ledger open for long
// instruction streams.
func FullPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "full"
	cfg.CacheMB = 1024
	cfg.Handles = 1024
	cfg.EnableMetrics = true
	return cfg
}

// GetPresetByName looks a preset up by the name used on the command line.
func GetPresetByName(name string) (PresetConfig, error) {
	switch name {
	case "memory":
		return MemoryPreset(), nil
	case "lite":
		return LitePreset(), nil
	case "full":
		return FullPreset(), nil
	case "default":
		return DefaultPreset(), nil
	default:
		return PresetConfig{}, fmt.Errorf("unknown preset: %q (valid: memory, lite, full, default)", name)
	}
}

// ApplyPreset overlays preset onto target. Zero sizes and an empty backend
// in the preset leave the target's values alone.
func ApplyPreset(target *PresetConfig, preset PresetConfig) {
	if preset.Backend != "" {
		target.Backend = preset.Backend
	}
	if preset.CacheMB > 0 {
		target.CacheMB = preset.CacheMB
	}
	if preset.Handles > 0 {
		target.Handles = preset.Handles
	}
	target.EnableMetrics = preset.EnableMetrics
	if preset.Name != "" {
		target.Name = preset.Name
	}
}

// OpenStore opens the record store described by cfg. LevelDB stores live
// under datadir/ledger.
func OpenStore(cfg PresetConfig, datadir string, readonly bool) (*store.Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return store.OpenMemory(), nil
	case BackendLevelDB, "":
		dir := filepath.Join(datadir, "ledger")
		log.Debug("Opening ledger store", "dir", dir, "cache", cfg.CacheMB, "handles", cfg.Handles, "readonly", readonly)
		return store.OpenLevelDB(dir, cfg.CacheMB, cfg.Handles, readonly)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// MakeProcessor wires a processor over s. A non-nil registerer receives the
// ledger metrics.
func MakeProcessor(s *store.Store, rules lvt.Rules, reg prometheus.Registerer, opts ...ledger.Option) *ledger.Processor {
	if reg != nil {
		opts = append(opts, ledger.WithMetrics(ledger.NewMetrics(reg)))
	}
	return ledger.New(s, rules, opts...)
}
