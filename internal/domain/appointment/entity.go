package appointment

import (
	"time"

	"github.com/rehabflow/care-scheduler/internal/httperr"
	"github.com/rehabflow/care-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// maxAppointmentSpan bounds how far back an overlap scan has to look.
const maxAppointmentSpan = 24 * time.Hour

// Validate checks the invariants every stored appointment holds.
func Validate(ap *models.Appointment) error {
	if !ap.EndTime.After(ap.StartTime) || ap.EndTime.Sub(ap.StartTime) > maxAppointmentSpan {
		return httperr.ErrBusiness(httperr.CodeInvalidRange)
	}
	if !Status(ap.Status).Valid() {
		return httperr.ErrBusiness(httperr.CodeInvalidStat)
	}
	return nil
}

// Overlaps uses half-open intervals, so back-to-back slots do not collide.
func Overlaps(a, b *models.Appointment) bool {
	return a.StartTime.Before(b.EndTime) && a.EndTime.After(b.StartTime)
}
