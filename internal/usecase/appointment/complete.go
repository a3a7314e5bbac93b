package appointment

import (
	"context"
	"fmt"

	"github.com/rehabflow/care-scheduler/internal/audit"
	domain "github.com/rehabflow/care-scheduler/internal/domain/appointment"
	"github.com/rehabflow/care-scheduler/internal/metrics"
	"github.com/rehabflow/care-scheduler/internal/models"
)

type CompleteAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.SchedulingMetrics
	now     Clock
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.SchedulingMetrics,
	now Clock,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:    repo,
		audit:   audit,
		metrics: metrics,
		now:     systemClock(now),
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actorID string,
	clinicianID string,
	appointmentID string,
) (ap *models.Appointment, err error) {
	defer func() { observe(uc.metrics, "complete", err) }()

	ap, err = getOwned(ctx, uc.repo, clinicianID, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Complete(ap, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, fmt.Errorf("complete appointment: %w", mapNotFound(err))
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	return ap, nil
}
