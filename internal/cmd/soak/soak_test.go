package soak_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/wetware/gval/internal/cmd/soak"
)

func TestCommand(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := &cli.App{
		Writer:    &out,
		ErrWriter: io.Discard,
		Commands:  []*cli.Command{soak.Command()},
	}

	err := app.Run([]string{"gval", "soak", "-d", "100ms", "-n", "2"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "2 workers")

	err = app.Run([]string{"gval", "soak", "-d", "100ms", "-n", "0"})
	assert.ErrorContains(t, err, "invalid worker count")
}
