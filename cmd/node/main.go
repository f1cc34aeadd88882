package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/novachain/nova-go/pkg/config"
	"github.com/novachain/nova-go/pkg/core"
	"github.com/novachain/nova-go/pkg/core/block"
	"github.com/novachain/nova-go/pkg/core/storage"
	"github.com/novachain/nova-go/pkg/io"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

func main() {
	ctl := cli.NewApp()
	ctl.Name = "nova-go"
	ctl.Usage = "a Nova blockchain node"
	ctl.Version = config.Version

	ctl.Commands = []cli.Command{
		{
			Name:   "node",
			Usage:  "start a Nova node",
			Action: startNode,
			Flags:  commonFlags(),
		},
		{
			Name:  "db",
			Usage: "database manipulations",
			Subcommands: []cli.Command{
				{
					Name:   "restore",
					Usage:  "restore blocks from a chain dump file",
					Action: restoreDB,
					Flags: append(commonFlags(), cli.StringFlag{
						Name:  "in, i",
						Usage: "input file (stdin if not given)",
					}),
				},
			},
		},
	}

	if err := ctl.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "config-path",
			Usage: "path to the directory with the configuration files",
			Value: "./config",
		},
		cli.BoolFlag{
			Name:  "privnet, p",
			Usage: "use private network configuration",
		},
		cli.BoolFlag{
			Name:  "mainnet, m",
			Usage: "use mainnet network configuration",
		},
		cli.BoolFlag{
			Name:  "testnet, t",
			Usage: "use testnet network configuration",
		},
	}
}

func getConfigFromContext(ctx *cli.Context) (config.Config, error) {
	var net = config.ModePrivNet
	if ctx.Bool("testnet") {
		net = config.ModeTestNet
	}
	if ctx.Bool("mainnet") {
		net = config.ModeMainNet
	}
	return config.Load(ctx.String("config-path"), net)
}

func newBlockchain(cfg config.Config, log *zap.Logger) (*core.Blockchain, error) {
	store, err := storage.NewStore(cfg.ApplicationConfiguration.DBConfiguration)
	if err != nil {
		return nil, fmt.Errorf("could not initialize storage: %w", err)
	}
	chain, err := core.NewBlockchain(store, cfg.ProtocolConfiguration, log)
	if err != nil {
		return nil, fmt.Errorf("could not initialize blockchain: %w", err)
	}
	return chain, nil
}

func startNode(ctx *cli.Context) error {
	cfg, err := getConfigFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	log, err := zap.NewProduction()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = log.Sync() }()

	chain, err := newBlockchain(cfg, log)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer chain.Close()

	log.Info("node started",
		zap.Uint32("blockHeight", chain.BlockHeight()),
		zap.Uint32("headerHeight", chain.HeaderHeight()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info("shutting down")
	return nil
}

func restoreDB(ctx *cli.Context) error {
	cfg, err := getConfigFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	log, err := zap.NewProduction()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = log.Sync() }()

	inStream := os.Stdin
	if in := ctx.String("in"); in != "" {
		inStream, err = os.Open(in)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer inStream.Close()
	}

	chain, err := newBlockchain(cfg, log)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer chain.Close()

	reader := io.NewBinReaderFromIO(inStream)
	count := reader.ReadU32LE()
	if reader.Err != nil {
		return cli.NewExitError(reader.Err, 1)
	}

	const batchSize = 500
	blocks := make([]*block.Block, 0, batchSize)
	for i := uint32(0); i < count; i++ {
		bytes := reader.ReadVarBytes()
		if reader.Err != nil {
			return cli.NewExitError(reader.Err, 1)
		}
		b := &block.Block{}
		r := io.NewBinReaderFromBuf(bytes)
		b.DecodeBinary(r)
		if r.Err != nil {
			return cli.NewExitError(r.Err, 1)
		}
		blocks = append(blocks, b)
		if len(blocks) == batchSize || i == count-1 {
			if err := chain.Import(blocks); err != nil {
				return cli.NewExitError(fmt.Errorf("import failed at block %d: %w", b.Index, err), 1)
			}
			blocks = blocks[:0]
		}
	}
	log.Info("chain dump restored", zap.Uint32("blocks", count), zap.Uint32("blockHeight", chain.BlockHeight()))
	return nil
}
