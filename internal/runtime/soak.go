package runtime

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lthibault/log"
	"go.uber.org/atomic"

	"github.com/wetware/gval"
	"github.com/wetware/gval/gtype"
	"github.com/wetware/gval/value"
)

// Worker exercises the default registry from its own goroutine.  Each
// worker owns a type derived from gtype.Int, so that workers can mask
// and restore handlers without affecting one another.
type Worker struct {
	ID   int
	Type gtype.Type

	log     log.Logger
	metrics gval.Metrics
	ops     atomic.Uint64
	errs    atomic.Uint64
}

// NewWorker registers the worker's type, named after the run and id.
func NewWorker(run uuid.UUID, id int, log log.Logger, m gval.Metrics) (*Worker, error) {
	t, err := gtype.Register(fmt.Sprintf("GvalSoak-%s-%d", run, id), gtype.Int)
	if err != nil {
		return nil, err
	}

	w := &Worker{
		ID:      id,
		Type:    t,
		metrics: m.WithPrefix(fmt.Sprintf("worker.%d.", id)),
	}
	w.log = log.WithField("worker", w.String())

	return w, nil
}

func (w *Worker) String() string {
	return "worker-" + strconv.Itoa(w.ID)
}

// Ops returns the number of completed operations.
func (w *Worker) Ops() uint64 { return w.ops.Load() }

// Errs returns the number of failed operations.
func (w *Worker) Errs() uint64 { return w.errs.Load() }

// Serve runs operations until ctx expires.  A failed operation stops the
// worker with an error, and the supervisor restarts it.
func (w *Worker) Serve(ctx context.Context) error {
	w.log.Debug("started")

	for i := 0; ctx.Err() == nil; i++ {
		t0 := time.Now()

		if err := w.step(i); err != nil {
			w.errs.Inc()
			w.metrics.Incr("errors")
			return fmt.Errorf("step %d: %w", i, err)
		}

		w.ops.Inc()
		w.metrics.Incr("ops")
		w.metrics.Duration("op", time.Since(t0))
	}

	return ctx.Err()
}

func (w *Worker) step(i int) error {
	switch i % 4 {
	case 0:
		return w.roundTrip(int32(i))
	case 1:
		return w.transform(int32(i))
	case 2:
		return w.array(i)
	default:
		return w.mask()
	}
}

func (w *Worker) roundTrip(n int32) error {
	v, err := value.New(w.Type)
	if err != nil {
		return err
	}

	if err = v.SetData(w.Type, n); err != nil {
		return err
	}

	got, err := value.Get[int32](v)
	if err == nil && got != n {
		err = fmt.Errorf("round trip: want %d, got %d", n, got)
	}

	return err
}

func (w *Worker) transform(n int32) error {
	v, err := value.Create(float64(n))
	if err != nil {
		return err
	}

	out, err := v.TransformTo(w.Type)
	if err != nil {
		return err
	}

	s, err := out.ToString()
	if err == nil && s != strconv.Itoa(int(n)) {
		err = fmt.Errorf("transform: want %d, got %s", n, s)
	}

	return err
}

func (w *Worker) array(i int) error {
	a := value.NewArray()
	for j := 0; j < 8; j++ {
		a.Append(value.MustCreate(int32(i + j)))
	}

	if err := a.Swap(0, 7); err != nil {
		return err
	}

	first, err := a.First()
	if err != nil {
		return err
	}

	n, err := first.ToInt()
	if err == nil && n != int32(i+7) {
		err = fmt.Errorf("array: want %d, got %d", i+7, n)
	}

	return err
}

// mask installs an empty handler for the worker's type, which must hide
// the handler inherited from gtype.Int until it is released.
func (w *Worker) mask() error {
	v, err := value.New(w.Type)
	if err != nil {
		return err
	}

	release := value.DefaultRegistry().Scoped(w.Type, value.VTable{})
	err = v.SetData(w.Type, int32(1))
	release()

	if !errors.Is(err, value.ErrUnregisteredType) {
		return fmt.Errorf("mask: expected %v, got %v", value.ErrUnregisteredType, err)
	}

	return v.SetData(w.Type, int32(1))
}
