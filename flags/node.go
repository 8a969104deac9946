package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// StoreFlags configure the record store.
func StoreFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "db.preset",
			Usage: "Store preset (memory|lite|full|default)",
		},
		cli.StringFlag{
			Name:  "db.backend",
			Usage: "Store backend (memory|leveldb)",
		},
		cli.IntFlag{
			Name:  "cache",
			Usage: "Megabytes of memory allocated to the LevelDB cache",
		},
		cli.IntFlag{
			Name:  "handles",
			Usage: "Number of open file handles LevelDB may use",
		},
	}
}

// Command-local flags.
var (
	GenesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "YAML genesis file (defaults to the config file's genesis section)",
	}
	InitFlag = cli.BoolFlag{
		Name:  "init",
		Usage: "Initialize the ledger from the genesis before applying",
	}
	TopFlag = cli.IntFlag{
		Name:  "n",
		Usage: "Number of leaderboard entries to print (0 prints all)",
		Value: 10,
	}
)
