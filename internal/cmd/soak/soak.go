package soak

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/wetware/gval/internal/runtime"
	runtimeutil "github.com/wetware/gval/internal/util/runtime"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "soak",
		Usage: "exercise the type system from concurrent workers",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:    "duration",
				Aliases: []string{"d"},
				Usage:   "run for `duration`",
				Value:   time.Second * 10,
				EnvVars: []string{"GVAL_SOAK_DURATION"},
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"n"},
				Usage:   "number of concurrent workers",
				Value:   4,
				EnvVars: []string{"GVAL_SOAK_WORKERS"},
			},
		},
		Action: soak(),
	}
}

func soak() cli.ActionFunc {
	return func(c *cli.Context) error {
		t0 := time.Now()

		res, err := runtime.Serve(runtimeutil.New(c))
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(c.App.Writer, "%d workers, %d ops in %s\n",
			len(res.Workers),
			res.Ops(),
			time.Since(t0).Round(time.Millisecond))
		return err
	}
}
