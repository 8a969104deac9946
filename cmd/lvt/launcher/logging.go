package launcher

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/log"
)

// setupLogger installs the root log handler described by cfg.
func setupLogger(cfg LoggingConfig, w io.Writer) error {
	var format log.Format
	switch cfg.Format {
	case "", "text":
		format = log.TerminalFormat(cfg.Color)
	case "json":
		format = log.JSONFormat()
	default:
		return fmt.Errorf("unknown log format %q (valid: text, json)", cfg.Format)
	}
	log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(cfg.Verbosity), log.StreamHandler(w, format)))
	return nil
}
