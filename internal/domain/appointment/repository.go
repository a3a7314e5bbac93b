package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/rehabflow/care-scheduler/internal/models"
)

// ErrNotFound is returned by repositories when no row matches the id.
var ErrNotFound = errors.New("appointment: not found")

// Repository is the appointment store. List results keep insertion order.
type Repository interface {
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		clinicianID string,
	) ([]models.Appointment, error)

	// ListAppointmentsForPeriod returns appointments with start in [start, end).
	ListAppointmentsForPeriod(
		ctx context.Context,
		clinicianID string,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// UpdateAppointment replaces the row with ap.ID, or returns ErrNotFound.
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
