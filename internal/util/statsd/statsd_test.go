package statsdutil_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/lthibault/log"
	"github.com/stretchr/testify/assert"

	"github.com/wetware/gval"
	statsdutil "github.com/wetware/gval/internal/util/statsd"
)

type env map[string]string

func (e env) IsSet(key string) bool {
	_, ok := e[key]
	return ok
}

func (e env) String(key string) string { return e[key] }

func TestNew(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	m := statsdutil.New(env{}, log.New(log.WithWriter(&buf)))
	assert.IsType(t, statsdutil.Metrics{}, m, "muted client should still be usable")

	// muted clients never touch the network
	m.Incr("ops")
	m.Duration("latency", time.Millisecond)
	m.WithPrefix("worker.").Gauge("depth", 3)
	m.Flush()

	assert.Empty(t, buf.String())
}

func TestNop(t *testing.T) {
	t.Parallel()

	var m gval.Metrics = statsdutil.Nop{}
	assert.Equal(t, statsdutil.Nop{}, m.WithPrefix("x."))
}
