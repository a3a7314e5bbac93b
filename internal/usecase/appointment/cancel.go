package appointment

import (
	"context"
	"fmt"

	"github.com/rehabflow/care-scheduler/internal/audit"
	domain "github.com/rehabflow/care-scheduler/internal/domain/appointment"
	"github.com/rehabflow/care-scheduler/internal/httperr"
	"github.com/rehabflow/care-scheduler/internal/metrics"
	"github.com/rehabflow/care-scheduler/internal/models"
)

type CancelAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.SchedulingMetrics
	now     Clock
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.SchedulingMetrics,
	now Clock,
) *CancelAppointment {
	return &CancelAppointment{
		repo:    repo,
		audit:   audit,
		metrics: metrics,
		now:     systemClock(now),
	}
}

// Execute cancels appointmentID. A non-empty clinicianID restricts the
// lookup to that clinician's appointments.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actorID string,
	clinicianID string,
	appointmentID string,
) (ap *models.Appointment, err error) {
	defer func() { observe(uc.metrics, "cancel", err) }()

	ap, err = getOwned(ctx, uc.repo, clinicianID, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(ap, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", mapNotFound(err))
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	return ap, nil
}

func getOwned(
	ctx context.Context,
	repo domain.Repository,
	clinicianID string,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if clinicianID != "" && ap.ClinicianID != clinicianID {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return ap, nil
}
