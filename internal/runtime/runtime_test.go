package runtime_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/lthibault/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wetware/gval"
	"github.com/wetware/gval/internal/runtime"
	statsdutil "github.com/wetware/gval/internal/util/statsd"
	test_gval "github.com/wetware/gval/test"
)

func TestWorker(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	prefixed := test_gval.NewMockMetrics(ctrl)
	prefixed.EXPECT().
		Incr("ops").
		MinTimes(4)
	prefixed.EXPECT().
		Duration("op", gomock.Any()).
		MinTimes(4)
	prefixed.EXPECT().
		Incr("errors").
		Times(0)

	metrics := test_gval.NewMockMetrics(ctrl)
	metrics.EXPECT().
		WithPrefix("worker.0.").
		Return(prefixed).
		Times(1)

	w, err := runtime.NewWorker(uuid.New(), 0, log.New(log.WithWriter(io.Discard)), metrics)
	require.NoError(t, err)
	assert.Equal(t, "worker-0", w.String())

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*100)
	defer cancel()

	err = w.Serve(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, w.Ops(), uint64(4), "should cycle through every operation")
	assert.Zero(t, w.Errs())
}

type env struct {
	ctx     context.Context
	flags   map[string]int
	dur     time.Duration
	metrics gval.Metrics
}

func (e env) Context() context.Context      { return e.ctx }
func (e env) Log() log.Logger               { return log.New(log.WithWriter(io.Discard)) }
func (e env) Metrics() gval.Metrics         { return e.metrics }
func (e env) Duration(string) time.Duration { return e.dur }
func (e env) Int(name string) int           { return e.flags[name] }

func TestServe(t *testing.T) {
	t.Parallel()

	res, err := runtime.Serve(env{
		ctx:     context.Background(),
		flags:   map[string]int{"workers": 3},
		dur:     time.Millisecond * 200,
		metrics: statsdutil.Nop{},
	})
	require.NoError(t, err)
	require.Len(t, res.Workers, 3)
	assert.NotZero(t, res.Ops())

	for _, w := range res.Workers {
		assert.NotZero(t, w.Ops(), "%s made no progress", w)
	}
}

func TestServe_noWorkers(t *testing.T) {
	t.Parallel()

	_, err := runtime.Serve(env{
		ctx:     context.Background(),
		flags:   map[string]int{"workers": 0},
		metrics: statsdutil.Nop{},
	})
	assert.ErrorContains(t, err, "invalid worker count")
}
