package main

import (
	"fmt"
	"os"

	"github.com/rony4d/lvt-ledger/cmd/lvt/launcher"
)

func main() {
	if err := launcher.Launch(os.Args); err != nil {
		// Report the issue to stderr so receipts on stdout stay parseable
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
