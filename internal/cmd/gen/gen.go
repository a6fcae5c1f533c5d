package gen

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	logutil "github.com/wetware/gval/internal/util/log"
	"github.com/wetware/gval/manifest"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:      "gen",
		Usage:     "generate Go bindings for a type manifest",
		ArgsUsage: "<manifest.yaml>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "package",
				Aliases: []string{"p"},
				Usage:   "override the manifest's Go `package`",
			},
			&cli.PathFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write source to `path`",
				DefaultText: "stdout",
			},
		},
		Action: gen(),
	}
}

func gen() cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() != 1 {
			return errors.New("expected exactly one manifest")
		}

		m, err := manifest.LoadFile(c.Args().First())
		if err != nil {
			return err
		}

		if c.IsSet("package") {
			m.Package = c.String("package")
		}

		var buf bytes.Buffer
		if err = m.Generate(&buf); err != nil {
			return errors.Wrap(err, "generate")
		}

		path := c.Path("output")
		if path == "" {
			_, err = buf.WriteTo(c.App.Writer)
			return err
		}

		if err = os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return err
		}

		logutil.New(c).
			WithField("types", len(m.Types)).
			WithField("path", path).
			Info("wrote bindings")

		return nil
	}
}
