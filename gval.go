//go:generate mockgen -source=gval.go -destination=test/gval.go -package=test_gval

// Package gval is the root of a dynamically-typed value library.  The
// work happens in subpackages: gtype holds the type system, value the
// Value container, its handler registry and ValueArray, structs a few
// boxed value types, and manifest the YAML type declarations.
package gval

import "time"

const Version = "0.1.0"

// Metrics is a statsd-style sink for counters and timings.
type Metrics interface {
	Incr(bucket string)
	Decr(bucket string)
	Count(bucket string, n any)
	Gauge(bucket string, value any)
	Duration(bucket string, d time.Duration)
	Histogram(bucket string, value any)
	WithPrefix(prefix string) Metrics
	Flush()
}
