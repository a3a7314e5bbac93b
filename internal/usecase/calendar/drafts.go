package calendar

import (
	"context"
	"errors"
	"time"

	domain "github.com/rehabflow/care-scheduler/internal/domain/appointment"
	cal "github.com/rehabflow/care-scheduler/internal/domain/calendar"
	"github.com/rehabflow/care-scheduler/internal/httperr"
)

// NewAppointmentDraft opens the create form for day, the selection, or today.
func (s *Session) NewAppointmentDraft(
	ctx context.Context,
	userID string,
	clinicianID string,
	day *time.Time,
) (cal.Draft, error) {

	st, err := s.load(ctx, userID)
	if err != nil {
		return cal.Draft{}, err
	}

	if day != nil {
		d := day.In(s.loc)
		day = &d
	}

	draft := st.RequestNewAppointment(day, s.today())
	draft.ClinicianID = clinicianID
	return draft, nil
}

// EditAppointmentDraft opens the edit form for appointmentID.
func (s *Session) EditAppointmentDraft(
	ctx context.Context,
	clinicianID string,
	appointmentID string,
) (cal.Draft, error) {

	ap, err := s.repo.GetAppointment(ctx, appointmentID)
	if errors.Is(err, domain.ErrNotFound) {
		return cal.Draft{}, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	if err != nil {
		return cal.Draft{}, err
	}
	if clinicianID != "" && ap.ClinicianID != clinicianID {
		return cal.Draft{}, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	ap.StartTime = ap.StartTime.In(s.loc)
	ap.EndTime = ap.EndTime.In(s.loc)
	return cal.RequestEditAppointment(*ap), nil
}
