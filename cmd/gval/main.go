package main

import (
	"os"

	"github.com/lthibault/log"
	"github.com/urfave/cli/v2"

	"github.com/wetware/gval"
	"github.com/wetware/gval/internal/cmd/array"
	"github.com/wetware/gval/internal/cmd/convert"
	"github.com/wetware/gval/internal/cmd/gen"
	"github.com/wetware/gval/internal/cmd/soak"
	"github.com/wetware/gval/internal/cmd/types"
	ctxutil "github.com/wetware/gval/internal/util/ctx"
)

var flags = []cli.Flag{
	// Logging
	&cli.StringFlag{
		Name:    "logfmt",
		Aliases: []string{"f"},
		Usage:   "`format` logs as auto, text, json or none",
		Value:   "auto",
		EnvVars: []string{"GVAL_LOGFMT"},
	},
	&cli.StringFlag{
		Name:    "loglvl",
		Usage:   "set logging `level` to trace, debug, info, warn, error or fatal",
		Value:   "info",
		EnvVars: []string{"GVAL_LOGLVL"},
	},
	&cli.BoolFlag{
		Name:    "trace",
		Usage:   "log everything, overriding --loglvl",
		EnvVars: []string{"GVAL_TRACE"},
		Hidden:  true,
	},
	// Statsd
	&cli.StringFlag{
		Name:        "metrics",
		Aliases:     []string{"statsd"},
		Usage:       "send metrics to udp `host:port`",
		EnvVars:     []string{"GVAL_METRICS", "GVAL_STATSD"},
		DefaultText: "disabled",
	},
	// Misc.
	&cli.BoolFlag{
		Name:    "prettyprint",
		Aliases: []string{"pp"},
		Usage:   "pretty-print JSON output",
		Hidden:  true,
	},
}

var commands = []*cli.Command{
	types.Command(),
	convert.Command(),
	array.Command(),
	gen.Command(),
	soak.Command(),
}

func main() {
	run(&cli.App{
		Name:                 "gval",
		Usage:                "inspect and convert dynamically typed values",
		UsageText:            "gval [global options] command [command options] [arguments...]",
		Version:              gval.Version,
		EnableBashCompletion: true,
		Flags:                flags,
		Commands:             commands,
		Before:               before(),
		Metadata: map[string]interface{}{
			"version": gval.Version,
		},
	})
}

func before() cli.BeforeFunc {
	return func(c *cli.Context) error {
		c.Context = ctxutil.WithLifetime(c.Context)
		return nil
	}
}

func run(app *cli.App) {
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
