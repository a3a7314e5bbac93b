package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/rehabflow/care-scheduler/internal/domain/appointment"
	"github.com/rehabflow/care-scheduler/internal/domain/calendar"
	"github.com/rehabflow/care-scheduler/internal/dto"
	"github.com/rehabflow/care-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	loc *time.Location,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
		loc:  loc,
	}
}

// Execute returns the day-detail list: every status, ordered by start.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	clinicianID string,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	start := timezone.Midnight(date, uc.loc)
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		clinicianID,
		start,
		end,
	)
	if err != nil {
		return nil, fmt.Errorf("list appointments for %s: %w", calendar.DayKey(start), err)
	}

	idx := calendar.NewIndex(appointments, uc.loc)
	return dto.FromAppointments(idx.Detail(start)), nil
}
