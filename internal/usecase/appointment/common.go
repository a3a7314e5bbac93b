package appointment

import (
	"errors"
	"time"

	domain "github.com/rehabflow/care-scheduler/internal/domain/appointment"
	"github.com/rehabflow/care-scheduler/internal/httperr"
	"github.com/rehabflow/care-scheduler/internal/metrics"
)

// Clock returns the current instant; use cases read time only through it.
type Clock func() time.Time

func systemClock(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

func mapNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return err
}

func observe(m *metrics.SchedulingMetrics, op string, err error) {
	switch code, ok := httperr.AsBusiness(err); {
	case err == nil:
		m.ObserveMutation(op, "ok")
	case ok:
		m.ObserveMutation(op, code)
	default:
		m.ObserveMutation(op, "error")
	}
}
