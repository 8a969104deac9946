package launcher

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/lvt-ledger/flags"
	"github.com/rony4d/lvt-ledger/integration"
	"github.com/rony4d/lvt-ledger/ledger"
	"github.com/rony4d/lvt-ledger/ledger/store"
	"github.com/rony4d/lvt-ledger/lvt/genesis"
)

// stdin is swapped out by tests.
var stdin io.Reader = os.Stdin

const maxInstructionSize = 4 * 1024 * 1024

var errNoGenesis = errors.New("no genesis: pass --genesis, add a genesis section to the config or use --fakenet")

// node is an opened ledger.
type node struct {
	cfg   Config
	store *store.Store
	proc  *ledger.Processor
	reg   *prometheus.Registry
}

func openNode(ctx *cli.Context, readonly bool) (*node, error) {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return nil, err
	}
	if err := setupLogger(cfg.Logging, ctx.App.ErrWriter); err != nil {
		return nil, err
	}
	rules, err := cfg.Rules()
	if err != nil {
		return nil, err
	}
	preset, err := cfg.Preset()
	if err != nil {
		return nil, err
	}
	s, err := integration.OpenStore(preset, cfg.DataDir, readonly)
	if err != nil {
		return nil, err
	}
	n := &node{cfg: cfg, store: s}
	var reg prometheus.Registerer
	if preset.EnableMetrics && !readonly {
		n.reg = prometheus.NewRegistry()
		reg = n.reg
	}
	n.proc = integration.MakeProcessor(s, rules, reg)
	log.Debug("Ledger opened", "network", rules.Name, "backend", preset.Backend, "datadir", cfg.DataDir)
	return n, nil
}

func (n *node) Close() {
	if err := n.store.Close(); err != nil {
		log.Error("Failed to close store", "err", err)
	}
}

// genesis picks the genesis for init: an explicit file, then the config
// file's section, then a fake genesis on fake networks.
func (n *node) genesis(path string) (genesis.Genesis, error) {
	switch {
	case path != "":
		return genesis.Load(path)
	case n.cfg.Genesis != nil:
		return *n.cfg.Genesis, nil
	case n.cfg.FakeNet():
		return genesis.FakeGenesis(n.cfg.Network.FakeAccounts, n.cfg.Network.FakeStake), nil
	default:
		return genesis.Genesis{}, errNoGenesis
	}
}

func (n *node) initialize(path string) error {
	g, err := n.genesis(path)
	if err != nil {
		return err
	}
	return n.proc.Initialize(g)
}

func initAction(ctx *cli.Context) error {
	n, err := openNode(ctx, false)
	if err != nil {
		return err
	}
	defer n.Close()

	if err := n.initialize(ctx.String(flags.GenesisFlag.Name)); err != nil {
		return err
	}
	g, err := n.proc.GlobalState()
	if err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, g)
}

func applyAction(ctx *cli.Context) error {
	in := stdin
	if path := ctx.Args().First(); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	n, err := openNode(ctx, false)
	if err != nil {
		return err
	}
	defer n.Close()

	if ctx.Bool(flags.InitFlag.Name) {
		if err := n.initialize(ctx.String(flags.GenesisFlag.Name)); err != nil {
			return err
		}
	}
	if n.reg != nil {
		srv, err := startMetricsServer(n.cfg.Metrics, n.reg)
		if err != nil {
			return err
		}
		defer srv.Stop()
	}

	applied, failed, err := applyStream(n.proc, in, ctx.App.Writer)
	log.Info("Instructions applied", "ok", applied, "failed", failed)
	return err
}

// applyStream executes one instruction per input line and writes one
// receipt per line. Blank lines and lines starting with # are skipped. A
// failing instruction does not stop the stream.
func applyStream(p *ledger.Processor, r io.Reader, w io.Writer) (applied, failed int, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxInstructionSize)
	enc := json.NewEncoder(w)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		in, err := ledger.DecodeInstruction(line)
		if in.ID == "" {
			in.ID = uuid.New().String()
		}
		var receipt ledger.Receipt
		if err != nil {
			receipt = ledger.Rejected(in, err)
		} else {
			receipt = p.Execute(in)
		}
		if receipt.OK {
			applied++
		} else {
			failed++
			log.Debug("Instruction rejected", "id", receipt.ID, "op", receipt.Op, "err", receipt.Error)
		}
		if err := enc.Encode(receipt); err != nil {
			return applied, failed, err
		}
	}
	return applied, failed, sc.Err()
}

func showAction(ctx *cli.Context) error {
	what := ctx.Args().First()
	if what == "" {
		return errors.New("show: missing record kind")
	}
	arg := ctx.Args().Get(1)

	n, err := openNode(ctx, true)
	if err != nil {
		return err
	}
	defer n.Close()

	rec, err := show(n.proc, what, arg)
	if err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, rec)
}

func show(p *ledger.Processor, what, arg string) (interface{}, error) {
	switch what {
	case "global":
		return p.GlobalState()
	case "governance":
		return p.Governance()
	case "trade":
		seq, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("show trade: bad sequence %q", arg)
		}
		rec, ok, err := p.TradeRecord(seq)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("show trade: no trade #%d", seq)
		}
		return rec, nil
	}

	if !common.IsHexAddress(arg) {
		return nil, fmt.Errorf("show %s: invalid address %q", what, arg)
	}
	addr := common.HexToAddress(arg)
	switch what {
	case "user":
		return p.UserAccount(addr)
	case "lp":
		return p.LPAccount(addr)
	case "leaderboard":
		return p.Leaderboard(addr)
	case "loans":
		return p.Loans(addr)
	default:
		return nil, fmt.Errorf("show: unknown record kind %q", what)
	}
}

func topAction(ctx *cli.Context) error {
	n, err := openNode(ctx, true)
	if err != nil {
		return err
	}
	defer n.Close()

	top, err := n.proc.TopTraders(ctx.Int(flags.TopFlag.Name))
	if err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, top)
}

func printJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
