// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ezrec/wordstack/config"
	"github.com/ezrec/wordstack/metrics"
	"github.com/ezrec/wordstack/translate"
)

type CLI struct {
	Config  string `help:"wordstack.toml configuration file." short:"c" type:"existingfile"`
	Locale  string `help:"Locale for messages (BCP 47 tag)."`
	Metrics string `help:"Write Prometheus text metrics to this file on exit." type:"path"`

	Run     runCmd     `cmd:"" help:"Run a Starlark script against the stack."`
	Eval    evalCmd    `cmd:"" help:"Evaluate an arithmetic s-expression on the stack."`
	Defines definesCmd `cmd:"" help:"List the constants predeclared for scripts."`
}

func main() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("wordstack"),
		kong.Description("Bounded word stack workbench"),
		kong.UsageOnError(),
	)

	err := run(ctx, &cli)
	ctx.FatalIfErrorf(err)
}

func run(ctx *kong.Context, cli *CLI) (err error) {
	if cli.Locale != "" {
		translate.SetLocale(cli.Locale)
	}

	cfg := config.Default()
	if cli.Config != "" {
		cfg, err = config.Load(cli.Config)
		if err != nil {
			return
		}
	}

	logger, err := cfg.Logger()
	if err != nil {
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	s, pool, err := cfg.Open(logger)
	if err != nil {
		return
	}
	defer func() {
		err = multierr.Append(err, s.Release())
	}()

	env := &Env{Stack: s, Pool: pool, Logger: logger}
	err = ctx.Run(env)

	if cli.Metrics != "" {
		c := metrics.NewCollector()
		c.Add("main", s)
		reg := prometheus.NewRegistry()
		reg.MustRegister(c)
		err = multierr.Append(err, prometheus.WriteToTextfile(cli.Metrics, reg))
	}

	logger.Debug("stack usage",
		zap.Int("high_water", s.HighWater()),
		zap.Int("capacity", s.Cap()),
		zap.Int("pool_used", pool.Used()))

	return
}
