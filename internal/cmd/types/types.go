package types

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/wetware/gval/gtype"
	"github.com/wetware/gval/internal/cmd"
	"github.com/wetware/gval/value"

	_ "github.com/wetware/gval/structs"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:      "types",
		Usage:     "list registered types",
		ArgsUsage: "[name...]",
		Flags: []cli.Flag{
			cmd.ManifestFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print types as json",
			},
		},
		Before: cmd.RegisterManifests(),
		Action: list(),
	}
}

// Info describes a registered type.
type Info struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Parent      string   `json:"parent,omitempty"`
	Fundamental string   `json:"fundamental"`
	Interfaces  []string `json:"interfaces,omitempty"`
	ValueType   bool     `json:"value_type"`
	Handler     string   `json:"handler,omitempty"`
}

// Describe t.  The handler is the type whose entry in the default
// registry serves t.
func Describe(t gtype.Type) Info {
	info := Info{
		ID:          uint64(t),
		Name:        t.Name(),
		Parent:      t.Parent().Name(),
		Fundamental: t.Fundamental().Name(),
		ValueType:   t.IsValueType(),
	}

	for _, iface := range t.Interfaces() {
		info.Interfaces = append(info.Interfaces, iface.Name())
	}

	if _, at, err := value.DefaultRegistry().Resolve(t); err == nil {
		info.Handler = at.Name()
	}

	return info
}

func list() cli.ActionFunc {
	return func(c *cli.Context) error {
		ts, err := selected(c.Args().Slice())
		if err != nil {
			return err
		}

		infos := make([]Info, len(ts))
		for i, t := range ts {
			infos[i] = Describe(t)
		}

		if c.Bool("json") {
			enc := json.NewEncoder(c.App.Writer)
			if c.Bool("prettyprint") {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(infos)
		}

		return table(c.App.Writer, infos)
	}
}

func selected(names []string) ([]gtype.Type, error) {
	if len(names) == 0 {
		return gtype.Types(), nil
	}

	ts := make([]gtype.Type, len(names))
	for i, name := range names {
		t, err := cmd.LookupType(name)
		if err != nil {
			return nil, err
		}
		ts[i] = t
	}

	return ts, nil
}

func table(w io.Writer, infos []Info) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPARENT\tFUNDAMENTAL\tVALUE\tHANDLER")

	for _, info := range infos {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\t%s\n",
			info.ID,
			info.Name,
			dash(info.Parent),
			info.Fundamental,
			info.ValueType,
			dash(info.Handler))
	}

	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}
