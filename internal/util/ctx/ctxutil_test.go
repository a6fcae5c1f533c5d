package ctxutil_test

import (
	"context"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	ctxutil "github.com/wetware/gval/internal/util/ctx"
)

func TestWithSignals_parent(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithCancel(context.Background())
	ctx := ctxutil.WithSignals(parent, syscall.SIGUSR2)
	assert.NoError(t, ctx.Err())

	cancel()
	<-ctx.Done()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.Nil(t, ctxutil.Signal(ctx))
}

func TestWithSignals_signal(t *testing.T) {
	ctx := ctxutil.WithSignals(context.Background(), syscall.SIGUSR1)

	assert.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGUSR1))
	<-ctx.Done()

	assert.ErrorContains(t, ctx.Err(), "signal received")
	assert.Equal(t, syscall.SIGUSR1, ctxutil.Signal(ctx))
}
