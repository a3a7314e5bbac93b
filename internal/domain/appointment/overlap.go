package appointment

import (
	"context"
	"fmt"

	"github.com/rehabflow/care-scheduler/internal/httperr"
	"github.com/rehabflow/care-scheduler/internal/models"
)

// OverlapPolicy decides whether candidate may be stored next to the
// clinician's existing appointments.
type OverlapPolicy interface {
	Check(ctx context.Context, repo Repository, candidate *models.Appointment) error
}

// AllowOverlap permits double booking.
type AllowOverlap struct{}

func (AllowOverlap) Check(context.Context, Repository, *models.Appointment) error {
	return nil
}

// RejectOverlap refuses a scheduled candidate that intersects another
// scheduled appointment of the same clinician.
type RejectOverlap struct{}

func (RejectOverlap) Check(ctx context.Context, repo Repository, candidate *models.Appointment) error {
	if Status(candidate.Status) != StatusScheduled {
		return nil
	}

	existing, err := repo.ListAppointmentsForPeriod(
		ctx,
		candidate.ClinicianID,
		candidate.StartTime.Add(-maxAppointmentSpan),
		candidate.EndTime,
	)
	if err != nil {
		return fmt.Errorf("overlap check: %w", err)
	}

	for i := range existing {
		other := &existing[i]
		if other.ID == candidate.ID || Status(other.Status) != StatusScheduled {
			continue
		}
		if Overlaps(candidate, other) {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}
	}
	return nil
}

// PolicyByName maps the OVERLAP_POLICY setting to a policy.
func PolicyByName(name string) (OverlapPolicy, error) {
	switch name {
	case "", "allow":
		return AllowOverlap{}, nil
	case "reject":
		return RejectOverlap{}, nil
	}
	return nil, fmt.Errorf("unknown overlap policy %q", name)
}
