package serviceutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lthibault/log"
	"github.com/thejerf/suture/v4"

	"github.com/wetware/gval"
)

// New supervisor whose events are logged and counted.
func New(name string, log log.Logger, m gval.Metrics) *suture.Supervisor {
	return suture.New(name, suture.Spec{
		EventHook: NewEventHook(log, m),
	})
}

func NewEventHook(logger log.Logger, m gval.Metrics) suture.EventHook {
	return func(e suture.Event) {
		switch ev := e.(type) {
		case suture.EventBackoff:
			m.Incr("supervisor.backoff")
			logger.WithFields(ev.Map()).Debugf("%s suspended", ev.SupervisorName)

		case suture.EventResume:
			logger.
				WithField("parent", ev.SupervisorName).
				Infof("%s resumed", ev.SupervisorName)

		case suture.EventServiceTerminate:
			m.Incr("supervisor.restarts")
			logger.With(Exception{
				Value:        ev.Err,
				Parent:       ev.SupervisorName,
				Restart:      ev.Restarting,
				Backpressure: ev.CurrentFailures / ev.FailureThreshold,
			}).
				Warnf("encountered exception in %s", ev.ServiceName)

		case suture.EventServicePanic:
			m.Incr("supervisor.panics")
			logger.With(Exception{
				Value:        ev.PanicMsg,
				Parent:       ev.SupervisorName,
				Restart:      ev.Restarting,
				Backpressure: ev.CurrentFailures / ev.FailureThreshold,
			}).
				Warnf("unhandled exception in %s", ev.ServiceName)

			logger.Debug(ev.Stacktrace)

		case suture.EventStopTimeout:
			logger.
				WithField("parent", ev.SupervisorName).
				Errorf("%s failed to stop in time", ev.ServiceName)
		}
	}
}

// Exception is thrown asynchronously from services.
type Exception struct {
	Value        interface{} `json:"value"`
	Parent       string      `json:"parent"`
	Restart      bool        `json:"restart"`
	Backpressure float64     `json:"backpressure"`
}

func (e Exception) GoString() string {
	return fmt.Sprintf(strings.TrimSpace(`
Exception{
	Value:       "%#v",
	Parent:      "%s",
	Restart:      %t,
	Backpressure: %.2f,
}`),
		e.Value,
		strconv.Quote(e.Parent),
		e.Restart,
		e.Backpressure)
}

func (e Exception) Loggable() map[string]interface{} {
	return map[string]interface{}{
		"value":        e.Value,
		"parent":       e.Parent,
		"restart":      e.Restart,
		"backpressure": e.Backpressure,
	}
}
