package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// NetworkFlags select the economic rules the ledger runs under.
func NetworkFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "network",
			Usage: "Network rules to apply (main|test|fake)",
			Value: "main",
		},
		cli.IntFlag{
			Name:  "fakenet",
			Usage: "Use fake network rules with N deterministic genesis accounts",
		},
	}
}
