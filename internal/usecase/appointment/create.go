package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rehabflow/care-scheduler/internal/audit"
	domain "github.com/rehabflow/care-scheduler/internal/domain/appointment"
	"github.com/rehabflow/care-scheduler/internal/metrics"
	"github.com/rehabflow/care-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ActorID string

	PatientID   string
	ClinicianID string

	Start time.Time
	End   time.Time

	Type  string
	Title string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	policy  domain.OverlapPolicy
	audit   *audit.Dispatcher
	metrics *metrics.SchedulingMetrics
	newID   func() string
}

func NewCreateAppointment(
	repo domain.Repository,
	policy domain.OverlapPolicy,
	audit *audit.Dispatcher,
	metrics *metrics.SchedulingMetrics,
) *CreateAppointment {
	if policy == nil {
		policy = domain.AllowOverlap{}
	}
	return &CreateAppointment{
		repo:    repo,
		policy:  policy,
		audit:   audit,
		metrics: metrics,
		newID:   uuid.NewString,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (ap *models.Appointment, err error) {
	defer func() { observe(uc.metrics, "create", err) }()

	ap = &models.Appointment{
		ID:          uc.newID(),
		PatientID:   in.PatientID,
		ClinicianID: in.ClinicianID,
		StartTime:   in.Start,
		EndTime:     in.End,
		Status:      string(domain.InitialStatus()),
		Type:        in.Type,
		Title:       in.Title,
		Notes:       in.Notes,
	}

	if err := domain.Validate(ap); err != nil {
		return nil, err
	}

	if err := uc.policy.Check(ctx, uc.repo, ap); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{
			"start": ap.StartTime,
			"end":   ap.EndTime,
		},
	})

	return ap, nil
}
