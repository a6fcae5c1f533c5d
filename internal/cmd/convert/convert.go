package convert

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/wetware/gval/internal/cmd"
	logutil "github.com/wetware/gval/internal/util/log"
	"github.com/wetware/gval/value"

	_ "github.com/wetware/gval/structs"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Aliases:   []string{"conv"},
		Usage:     "convert a literal from one type to another",
		ArgsUsage: "<literal>",
		Flags: []cli.Flag{
			cmd.ManifestFlag(),
			&cli.StringFlag{
				Name:    "from",
				Aliases: []string{"f"},
				Usage:   "parse the literal as `type`",
				Value:   "gchararray",
			},
			&cli.StringFlag{
				Name:     "to",
				Aliases:  []string{"t"},
				Usage:    "convert to `type`",
				Required: true,
			},
		},
		Before: cmd.RegisterManifests(),
		Action: convert(),
	}
}

func convert() cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() != 1 {
			return errors.New("expected exactly one literal")
		}

		from, err := cmd.LookupType(c.String("from"))
		if err != nil {
			return err
		}

		to, err := cmd.LookupType(c.String("to"))
		if err != nil {
			return err
		}

		v, err := cmd.Parse(from, c.Args().First())
		if err != nil {
			return err
		}
		defer v.Unset()

		if !v.CanTransformTo(to) {
			return fmt.Errorf("no conversion from %s to %s", from, to)
		}

		out, err := v.TransformTo(to)
		if err != nil {
			return errors.Wrapf(err, "convert %s", v)
		}
		defer out.Unset()

		logutil.New(c).
			WithField("from", from).
			WithField("to", to).
			Debug("converted")

		_, err = fmt.Fprintln(c.App.Writer, render(out))
		return err
	}
}

// render the datum alone when it reads as a string.
func render(v *value.Value) string {
	if s, err := v.ToString(); err == nil {
		return s
	}

	return v.String()
}
