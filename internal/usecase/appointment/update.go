package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/rehabflow/care-scheduler/internal/audit"
	domain "github.com/rehabflow/care-scheduler/internal/domain/appointment"
	"github.com/rehabflow/care-scheduler/internal/metrics"
	"github.com/rehabflow/care-scheduler/internal/models"
)

// UpdateAppointmentInput is the full replacement for appointment ID.
// Scope restricts the lookup to one clinician's appointments; an empty
// ClinicianID keeps the current owner.
type UpdateAppointmentInput struct {
	ActorID string
	Scope   string

	ID          string
	PatientID   string
	ClinicianID string

	Start  time.Time
	End    time.Time
	Status string

	Type  string
	Title string
	Notes string
}

type UpdateAppointment struct {
	repo    domain.Repository
	policy  domain.OverlapPolicy
	audit   *audit.Dispatcher
	metrics *metrics.SchedulingMetrics
	now     Clock
}

func NewUpdateAppointment(
	repo domain.Repository,
	policy domain.OverlapPolicy,
	audit *audit.Dispatcher,
	metrics *metrics.SchedulingMetrics,
	now Clock,
) *UpdateAppointment {
	if policy == nil {
		policy = domain.AllowOverlap{}
	}
	return &UpdateAppointment{
		repo:    repo,
		policy:  policy,
		audit:   audit,
		metrics: metrics,
		now:     systemClock(now),
	}
}

// Execute is a strict update: an unknown id is reported as
// appointment_not_found and nothing is written.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (ap *models.Appointment, err error) {
	defer func() { observe(uc.metrics, "update", err) }()

	current, err := getOwned(ctx, uc.repo, in.Scope, in.ID)
	if err != nil {
		return nil, err
	}

	clinicianID := in.ClinicianID
	if clinicianID == "" {
		clinicianID = current.ClinicianID
	}

	ap = &models.Appointment{
		ID:          current.ID,
		PatientID:   in.PatientID,
		ClinicianID: clinicianID,
		StartTime:   in.Start,
		EndTime:     in.End,
		Status:      current.Status,
		Type:        in.Type,
		Title:       in.Title,
		Notes:       in.Notes,
		CancelledAt: current.CancelledAt,
		CompletedAt: current.CompletedAt,
		CreatedAt:   current.CreatedAt,
	}

	if err := uc.applyStatus(ap, domain.Status(in.Status)); err != nil {
		return nil, err
	}

	if err := domain.Validate(ap); err != nil {
		return nil, err
	}

	if err := uc.policy.Check(ctx, uc.repo, ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		if mapped := mapNotFound(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.ActorID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{
			"previous_start":  current.StartTime,
			"start":           ap.StartTime,
			"previous_status": current.Status,
			"status":          ap.Status,
			"clinician_id":    ap.ClinicianID,
		},
	})

	return ap, nil
}

// applyStatus moves ap to next. Cancelling and completing go through the
// domain actions so their timestamps and preconditions hold.
func (uc *UpdateAppointment) applyStatus(ap *models.Appointment, next domain.Status) error {
	if next == "" || next == domain.Status(ap.Status) {
		return nil
	}
	switch next {
	case domain.StatusCancelled:
		return domain.Cancel(ap, uc.now())
	case domain.StatusCompleted:
		return domain.Complete(ap, uc.now())
	}
	ap.Status = string(next)
	return nil
}
