package runtimeutil

import (
	"context"
	"time"

	"github.com/lthibault/log"
	"github.com/urfave/cli/v2"

	"github.com/wetware/gval"
	"github.com/wetware/gval/internal/runtime"
	logutil "github.com/wetware/gval/internal/util/log"
	statsdutil "github.com/wetware/gval/internal/util/statsd"
)

func New(c *cli.Context) runtime.Env {
	logging := logutil.New(c)
	metrics := statsdutil.New(c, logging)

	return env{
		flags:   c,
		logging: logging,
		metrics: metrics,
	}
}

type env struct {
	flags
	logging log.Logger
	metrics gval.Metrics
}

func (env env) Context() context.Context {
	return env.flags.(*cli.Context).Context
}

func (env env) Log() log.Logger {
	return env.logging
}

func (env env) Metrics() gval.Metrics {
	return env.metrics
}

type flags interface {
	Bool(string) bool
	IsSet(string) bool
	Int(string) int
	String(string) string
	Duration(string) time.Duration
}
