// The mapbench command fills the hash maps with sequentially keyed
// entries, checks every value and clears them, reporting how long
// each phase took and how often the backing storage grew.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	os.Exit(main1())
}

func main1() int {
	cfg, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintf(os.Stderr, "mapbench: %v\n", err)
		return 2
	}
	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mapbench: cannot create logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	results, err := run(cfg, logger)
	for _, r := range results {
		fmt.Println(r)
	}
	if err != nil {
		logger.Error("benchmark failed", zap.Error(err))
		return 1
	}
	return 0
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zcfg.Build()
}
