package calendar

import (
	"time"

	"github.com/rehabflow/care-scheduler/internal/httperr"
	"github.com/rehabflow/care-scheduler/internal/models"
)

// State is the month a user is looking at and the day they picked.
// Transitions return a new State; the zero value is not meaningful, use NewState.
type State struct {
	ViewingMonth time.Time  `json:"viewing_month"`
	SelectedDate *time.Time `json:"selected_date,omitempty"`
}

func NewState(now time.Time) State {
	today := startOfDay(now)
	return State{
		ViewingMonth: StartOfMonth(now),
		SelectedDate: &today,
	}
}

// NavigateMonth moves one month back or forward. The selection stays put.
func (s State) NavigateMonth(delta int) (State, error) {
	if delta != 1 && delta != -1 {
		return s, httperr.ErrBusiness(httperr.CodeInvalidDelta)
	}
	s.ViewingMonth = StartOfMonth(s.ViewingMonth).AddDate(0, delta, 0)
	return s, nil
}

func (s State) JumpToToday(now time.Time) State {
	return NewState(now)
}

// SelectDay selects d and pulls the viewed month along when d lies outside it,
// keeping the day picker and the main grid in sync.
func (s State) SelectDay(d time.Time) State {
	day := startOfDay(d)
	s.SelectedDate = &day
	if !SameMonth(day, s.ViewingMonth) {
		s.ViewingMonth = StartOfMonth(day)
	}
	return s
}

// Contains reports whether d is one of the cells of the viewed month's grid.
func (s State) Contains(d time.Time) bool {
	grid := MonthGrid(s.ViewingMonth)
	return !d.Before(grid[0]) && d.Before(grid[len(grid)-1].AddDate(0, 0, 1))
}

const (
	DraftCreate = "create"
	DraftEdit   = "edit"
)

// Draft pre-fills the appointment form.
type Draft struct {
	Mode          string     `json:"mode"`
	Date          string     `json:"date"`
	AppointmentID string     `json:"appointment_id,omitempty"`
	PatientID     string     `json:"patient_id,omitempty"`
	ClinicianID   string     `json:"clinician_id,omitempty"`
	Start         *time.Time `json:"start,omitempty"`
	End           *time.Time `json:"end,omitempty"`
	Status        string     `json:"status,omitempty"`
	Type          string     `json:"type,omitempty"`
	Title         string     `json:"title,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// RequestNewAppointment picks the form date from d, then the selection, then today.
func (s State) RequestNewAppointment(d *time.Time, now time.Time) Draft {
	day := startOfDay(now)
	switch {
	case d != nil:
		day = startOfDay(*d)
	case s.SelectedDate != nil:
		day = startOfDay(*s.SelectedDate)
	}
	return Draft{Mode: DraftCreate, Date: DayKey(day)}
}

func RequestEditAppointment(ap models.Appointment) Draft {
	start, end := ap.StartTime, ap.EndTime
	return Draft{
		Mode:          DraftEdit,
		Date:          DayKey(start),
		AppointmentID: ap.ID,
		PatientID:     ap.PatientID,
		ClinicianID:   ap.ClinicianID,
		Start:         &start,
		End:           &end,
		Status:        ap.Status,
		Type:          ap.Type,
		Title:         ap.Title,
		Notes:         ap.Notes,
	}
}

// In re-anchors s to loc. Decoded states carry fixed offsets only.
func (s State) In(loc *time.Location) State {
	s.ViewingMonth = StartOfMonth(s.ViewingMonth.In(loc))
	if s.SelectedDate != nil {
		day := startOfDay(s.SelectedDate.In(loc))
		s.SelectedDate = &day
	}
	return s
}
