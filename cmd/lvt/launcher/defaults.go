package launcher

// Defaults holds the launcher's built-in values. Config files and flags
// override them in that order.
type Defaults struct {
	DataDir string
	Network string
	Store   struct {
		Backend string
		CacheMB int
		Handles int
	}
	Metrics struct {
		Addr string
		Port int
	}
	Logging struct {
		Verbosity int
		Format    string
		Color     bool
	}
	Genesis struct {
		FakeStake uint64
	}
}

// DefaultConfig returns a Defaults instance populated with the values used
// when no config file is supplied.
func DefaultConfig() Defaults {
	var d Defaults

	d.DataDir = "~/.lvt"
	d.Network = "main"

	d.Store.Backend = "leveldb"
	d.Store.CacheMB = 64
	d.Store.Handles = 256

	d.Metrics.Addr = "127.0.0.1"
	d.Metrics.Port = 6060

	d.Logging.Verbosity = 3
	d.Logging.Format = "text"
	d.Logging.Color = false

	d.Genesis.FakeStake = 50_000

	return d
}
