package ctxutil

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/pkg/errors"
)

// WithLifetime returns a context that expires when the process receives
// SIGINT or SIGTERM.
func WithLifetime(ctx context.Context) context.Context {
	return WithSignals(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// WithSignals returns a context that expires when the process receives any of the
// specified signals.  Its Err reports the signal.
func WithSignals(ctx context.Context, sigs ...os.Signal) context.Context {
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, sigs...)

	sctx := &sigctx{
		cq:      make(chan struct{}),
		Context: ctx,
	}

	go func() {
		defer signal.Stop(sigch)

		select {
		case sig := <-sigch:
			sctx.expire(sig, errors.Errorf("signal received: %s", sig))
		case <-ctx.Done():
			sctx.expire(nil, ctx.Err())
		}
	}()

	return sctx
}

// Signal returns the signal that expired ctx, if any.
func Signal(ctx context.Context) os.Signal {
	if sctx, ok := ctx.(*sigctx); ok {
		sctx.mu.RLock()
		defer sctx.mu.RUnlock()

		return sctx.sig
	}

	return nil
}

type sigctx struct {
	mu  sync.RWMutex
	sig os.Signal
	err error

	cq chan struct{}
	context.Context
}

func (ctx *sigctx) expire(sig os.Signal, err error) {
	ctx.mu.Lock()
	ctx.sig, ctx.err = sig, err
	ctx.mu.Unlock()

	close(ctx.cq)
}

func (ctx *sigctx) Done() <-chan struct{} {
	return ctx.cq
}

func (ctx *sigctx) Err() (err error) {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()

	return ctx.err
}
