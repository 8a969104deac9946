package launcher

import (
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/lvt-ledger/flags"
)

// NewApp builds the lvt command line application.
func NewApp() *cli.App {
	app := flags.NewApp("LVT trading ledger operator")
	app.Commands = []cli.Command{
		{
			Name:      "init",
			Usage:     "Initialize the ledger from a genesis",
			ArgsUsage: " ",
			Flags:     []cli.Flag{flags.GenesisFlag},
			Action:    initAction,
		},
		{
			Name:      "apply",
			Usage:     "Apply JSON-lines instructions and print one receipt per line",
			ArgsUsage: "[file|-]",
			Flags:     []cli.Flag{flags.InitFlag, flags.GenesisFlag},
			Action:    applyAction,
		},
		{
			Name:      "show",
			Usage:     "Print a ledger record as JSON",
			ArgsUsage: "<global|governance|user|lp|leaderboard|loans|trade> [address|seq]",
			Action:    showAction,
		},
		{
			Name:   "top",
			Usage:  "Print the leaderboard",
			Flags:  []cli.Flag{flags.TopFlag},
			Action: topAction,
		},
	}
	return app
}

// Launch runs the application with the given arguments.
func Launch(args []string) error {
	return NewApp().Run(args)
}
