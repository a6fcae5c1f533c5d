package runtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lthibault/log"
	"github.com/thejerf/suture/v4"
	"go.uber.org/fx"

	"github.com/wetware/gval"
	serviceutil "github.com/wetware/gval/internal/util/service"
)

/****************************************************************************
 *                                                                          *
 *  runtime.go is responsible for managing the lifetimes of soak workers.   *
 *                                                                          *
 ****************************************************************************/

// Env supplies the soak application's dependencies.
type Env interface {
	Context() context.Context
	Log() log.Logger
	Metrics() gval.Metrics
	Duration(string) time.Duration
	Int(string) int
}

// Serve runs the soak application until the "duration" flag elapses or
// the environment's context expires, and returns the aggregate result.
func Serve(env Env) (res Result, err error) {
	var app = fx.New(fx.NopLogger,
		fx.Provide(
			func() Env { return env },
			supervisor,
			workers),
		fx.Invoke(bind),
		fx.Populate(&res.Workers))

	if err = start(env, app); err != nil {
		return
	}

	select {
	case <-time.After(env.Duration("duration")):
	case <-env.Context().Done():
	case <-app.Done():
	}

	if err = shutdown(app); err == nil {
		err = res.Err()
	}

	return
}

func start(env Env, app *fx.App) error {
	ctx, cancel := context.WithTimeout(env.Context(), time.Second*15)
	defer cancel()

	return app.Start(ctx)
}

func shutdown(app *fx.App) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()

	if err = app.Stop(ctx); errors.Is(err, context.Canceled) {
		err = nil
	}

	return
}

// Result of a soak run.
type Result struct {
	Workers []*Worker
}

// Ops is the number of operations completed by all workers.
func (r Result) Ops() (n uint64) {
	for _, w := range r.Workers {
		n += w.Ops()
	}
	return
}

// Err reports the first worker that encountered errors.
func (r Result) Err() error {
	for _, w := range r.Workers {
		if n := w.Errs(); n > 0 {
			return fmt.Errorf("%s: %d errors", w, n)
		}
	}

	return nil
}

// Config declares dependencies that are dynamically resolved at
// runtime.
type Config struct {
	fx.In

	Lifecycle fx.Lifecycle

	Env        Env
	Supervisor *suture.Supervisor
	Workers    []*Worker
}

func bind(config Config) {
	ctx, cancel := context.WithCancel(config.Env.Context()) // cancelled by stop hook

	for _, w := range config.Workers {
		config.Supervisor.Add(w)
	}

	var cherr <-chan error

	config.Lifecycle.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			cherr = config.Supervisor.ServeBackground(ctx) // NOTE: application context

			config.Env.Log().
				WithField("workers", len(config.Workers)).
				Info("soak started")

			return nil
		},
		OnStop: func(ctx context.Context) (err error) {
			cancel()

			// Wait for the supervisor to shut down gracefully.
			select {
			case err = <-cherr:
				if errors.Is(err, context.Canceled) {
					err = nil
				}

			case <-ctx.Done():
				return fmt.Errorf("shutdown: %w", ctx.Err())
			}

			var ops uint64
			for _, w := range config.Workers {
				ops += w.Ops()
			}

			config.Env.Metrics().Flush()
			config.Env.Log().
				WithField("ops", ops).
				Info("soak stopped")

			return
		},
	})
}

//
// Dependency declarations
//

func supervisor(env Env) *suture.Supervisor {
	return serviceutil.New("soak", env.Log(), env.Metrics())
}

func workers(env Env) ([]*Worker, error) {
	n := env.Int("workers")
	if n <= 0 {
		return nil, fmt.Errorf("invalid worker count: %d", n)
	}

	run := uuid.New()
	ws := make([]*Worker, n)
	for i := range ws {
		w, err := NewWorker(run, i, env.Log(), env.Metrics())
		if err != nil {
			return nil, err
		}

		ws[i] = w
	}

	return ws, nil
}
