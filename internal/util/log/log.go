// Package logutil contains shared utilities for configuring loggers from a cli context.
package logutil

import (
	"os"

	"github.com/lthibault/log"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/wetware/gval"
)

// New logger from a cli context
func New(c *cli.Context) log.Logger {
	if logger := get(c); logger != nil {
		return logger
	}

	return bind(c)
}

// WithLevel returns a log.Option that configures a logger's level.
func WithLevel(c *cli.Context) (opt log.Option) {
	var level = log.FatalLevel
	defer func() {
		opt = log.WithLevel(level)
	}()

	if c.Bool("trace") {
		level = log.TraceLevel
		return
	}

	if c.String("logfmt") == "none" {
		return
	}

	switch c.String("loglvl") {
	case "trace", "t":
		level = log.TraceLevel
	case "debug", "d":
		level = log.DebugLevel
	case "info", "i":
		level = log.InfoLevel
	case "warn", "warning", "w":
		level = log.WarnLevel
	case "error", "err", "e":
		level = log.ErrorLevel
	case "fatal", "f":
		level = log.FatalLevel
	default:
		level = log.InfoLevel
	}

	return
}

// WithFormat returns an option that configures a logger's format.
// The "auto" format selects text when stderr is a terminal, and json
// otherwise.
func WithFormat(c *cli.Context) log.Option {
	var fmt logrus.Formatter

	switch Format(c.String("logfmt"), isTerminal(c)) {
	case "none":
	case "json":
		fmt = &logrus.JSONFormatter{PrettyPrint: c.Bool("prettyprint")}
	default:
		fmt = new(logrus.TextFormatter)
	}

	return log.WithFormatter(fmt)
}

// Format resolves the "auto" log format.
func Format(logfmt string, tty bool) string {
	if logfmt != "auto" {
		return logfmt
	}

	if tty {
		return "text"
	}

	return "json"
}

func isTerminal(c *cli.Context) bool {
	if f, ok := c.App.ErrWriter.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}

	return c.App.ErrWriter == nil && term.IsTerminal(int(os.Stderr.Fd()))
}

func withErrWriter(c *cli.Context) log.Option {
	if c.App.ErrWriter == nil {
		return log.WithWriter(os.Stderr)
	}

	return log.WithWriter(c.App.ErrWriter)
}

// key with random component to avoid collision
const key = "gval.util.log:q7#Lw)9|t^Rk2!vB"

// Bind a global logger instance to the CLI context.
// Future calls to New will return this cached logger.
func bind(c *cli.Context) log.Logger {
	logger := log.New(
		WithLevel(c),
		WithFormat(c),
		withErrWriter(c)).
		WithField("version", gval.Version)

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]interface{})
	}

	c.App.Metadata[key] = func() log.Logger {
		return logger
	}

	return logger
}

func get(c *cli.Context) log.Logger {
	if logger, ok := c.App.Metadata[key].(func() log.Logger); ok {
		return logger()
	}

	return nil
}
