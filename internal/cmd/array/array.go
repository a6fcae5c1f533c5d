package array

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/wetware/gval/gtype"
	"github.com/wetware/gval/internal/cmd"
	"github.com/wetware/gval/value"

	_ "github.com/wetware/gval/structs"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:      "array",
		Usage:     "build a value array and edit it",
		ArgsUsage: "[item...]",
		Description: `Items are parsed as --type, or inferred as gint, gdouble,
gboolean or gchararray when no type is given.  Operations are
applied in order:

   append:ITEM      prepend:ITEM      insert:I=ITEM
   replace:I=ITEM   remove:I          swap:I,J
   pop-front        pop-back          clear`,
		Flags: []cli.Flag{
			cmd.ManifestFlag(),
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "parse items as `type`",
			},
			&cli.StringSliceFlag{
				Name:    "op",
				Aliases: []string{"o"},
				Usage:   "apply `operation` to the array",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "print the array after each operation",
			},
		},
		Before: cmd.RegisterManifests(),
		Action: run(),
	}
}

func run() cli.ActionFunc {
	return func(c *cli.Context) error {
		p, err := parser(c.String("type"))
		if err != nil {
			return err
		}

		a := value.NewArrayCap(c.NArg())
		defer a.Clear()

		for _, item := range c.Args().Slice() {
			v, err := p(item)
			if err != nil {
				return err
			}

			a.Append(v)
			v.Unset()
		}

		for _, op := range c.StringSlice("op") {
			if err = Apply(a, op, p); err != nil {
				return errors.Wrap(err, op)
			}

			if c.Bool("verbose") {
				fmt.Fprintf(c.App.ErrWriter, "%-16s %s\n", op, a)
			}
		}

		_, err = fmt.Fprintln(c.App.Writer, a)
		return err
	}
}

// Parser reads an item literal.
type Parser func(string) (*value.Value, error)

func parser(typename string) (Parser, error) {
	if typename == "" {
		return Infer, nil
	}

	t, err := cmd.LookupType(typename)
	if err != nil {
		return nil, err
	}

	return func(lit string) (*value.Value, error) {
		return cmd.Parse(t, lit)
	}, nil
}

// Infer the type of an untyped literal.
func Infer(lit string) (*value.Value, error) {
	if n, err := strconv.ParseInt(lit, 10, 32); err == nil {
		return value.Create(int32(n))
	}

	if f, err := strconv.ParseFloat(lit, 64); err == nil {
		return value.Create(f)
	}

	if b, err := strconv.ParseBool(lit); err == nil {
		return value.Create(b)
	}

	return cmd.Parse(gtype.String, lit)
}

// Apply a single operation to a.
func Apply(a *value.ValueArray, op string, p Parser) error {
	name, arg, _ := strings.Cut(op, ":")

	switch name {
	case "append", "prepend":
		v, err := p(arg)
		if err != nil {
			return err
		}
		defer v.Unset()

		if name == "append" {
			a.Append(v)
		} else {
			a.Prepend(v)
		}
		return nil

	case "insert", "replace":
		i, lit, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("expected %s:I=ITEM", name)
		}

		n, err := strconv.Atoi(i)
		if err != nil {
			return err
		}

		v, err := p(lit)
		if err != nil {
			return err
		}
		defer v.Unset()

		if name == "insert" {
			return a.Insert(n, v)
		}
		return a.Replace(n, v)

	case "remove":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return err
		}
		return a.RemoveAt(n)

	case "swap":
		i, j, ok := strings.Cut(arg, ",")
		if !ok {
			return fmt.Errorf("expected swap:I,J")
		}

		x, err := strconv.Atoi(i)
		if err != nil {
			return err
		}

		y, err := strconv.Atoi(j)
		if err != nil {
			return err
		}
		return a.Swap(x, y)

	case "pop-front":
		return a.PopFront()

	case "pop-back":
		return a.PopBack()

	case "clear":
		a.Clear()
		return nil
	}

	return fmt.Errorf("unknown operation %q", name)
}
