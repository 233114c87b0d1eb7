// Command mesisim replays a memory-access trace through the mesi
// coherence simulator and prints the resulting per-core and aggregate
// statistics.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/kal667/mesisim/mesi"
	"github.com/kal667/mesisim/report"
	"github.com/kal667/mesisim/trace"
	"github.com/urfave/cli"
)

// process exit codes, one per distinct failure kind
const (
	exitOK            = 0
	exitConfigError   = 2
	exitTraceError    = 3
	exitInvariantFail = 4
)

func main() {
	app := cli.NewApp()
	app.Name = "mesisim"
	app.Usage = "trace-driven multi-core MESI cache coherence simulator"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config", Usage: "path to a JSON or YAML geometry config"},
		cli.IntFlag{Name: "num-cores", Usage: "override num_cores"},
		cli.IntFlag{Name: "cache-size", Usage: "override cache_size_bytes"},
		cli.IntFlag{Name: "block-size", Usage: "override block_size_bytes"},
		cli.IntFlag{Name: "assoc", Usage: "override associativity"},
		cli.StringFlag{Name: "trace", Usage: "path to the access trace; defaults to stdin"},
		cli.BoolFlag{Name: "json", Usage: "emit the report as JSON instead of a table"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		glog.Errorf("mesisim: %v", err)
		os.Exit(exitCodeFor(err))
	}
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	sim, err := mesi.NewSimulator(cfg)
	if err != nil {
		return err
	}
	defer sim.Close()

	src, closeSrc, err := traceSource(c)
	if err != nil {
		return err
	}
	defer closeSrc()

	if err := replay(context.Background(), sim, src); err != nil {
		return err
	}
	sim.Flush()

	rep := report.Build(sim)
	if c.Bool("json") {
		b, err := rep.MarshalJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(b))
		return nil
	}
	return rep.WriteTable(os.Stdout)
}

// loadConfig resolves the simulator geometry from --config, with any
// individually-specified flags overriding the loaded (or default)
// values.
func loadConfig(c *cli.Context) (mesi.Config, error) {
	cfg := mesi.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := mesi.LoadConfig(path)
		if err != nil {
			return mesi.Config{}, err
		}
		cfg = loaded
	}
	if v := c.Int("num-cores"); v != 0 {
		cfg.NumCores = v
	}
	if v := c.Int("cache-size"); v != 0 {
		cfg.CacheSizeBytes = v
	}
	if v := c.Int("block-size"); v != 0 {
		cfg.BlockSizeBytes = v
	}
	if v := c.Int("assoc"); v != 0 {
		cfg.Associativity = v
	}
	return cfg, nil
}

// traceSource opens --trace, or falls back to stdin.
func traceSource(c *cli.Context) (io.Reader, func(), error) {
	path := c.String("trace")
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// replay drains src through tr and into sim, one access at a time,
// honoring ctx cancellation between events.
func replay(ctx context.Context, sim *mesi.Simulator, src io.Reader) error {
	tr := trace.NewReader(src)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ev, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := sim.PerformAccess(ev.Core, ev.Addr, ev.Op); err != nil {
			return err
		}
	}
}

func exitCodeFor(err error) int {
	var cfgErr *mesi.ConfigError
	var invErr *mesi.InvariantError
	var decErr *trace.DecodeError
	switch {
	case errors.As(err, &cfgErr):
		return exitConfigError
	case errors.As(err, &invErr):
		return exitInvariantFail
	case errors.As(err, &decErr):
		return exitTraceError
	default:
		return exitConfigError
	}
}
