package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rehabflow/care-scheduler/internal/httperr"
	"github.com/rehabflow/care-scheduler/internal/models"
)

var now = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func TestNewState(t *testing.T) {
	s := NewState(now)

	assert.Equal(t, date(2024, 3, 1), s.ViewingMonth)
	require.NotNil(t, s.SelectedDate)
	assert.Equal(t, date(2024, 3, 15), *s.SelectedDate)
}

func TestNavigateMonthKeepsSelection(t *testing.T) {
	s := NewState(now)

	next, err := s.NavigateMonth(1)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 4, 1), next.ViewingMonth)
	assert.Equal(t, date(2024, 3, 15), *next.SelectedDate)

	prev, err := s.NavigateMonth(-1)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 1), prev.ViewingMonth)

	// original value untouched
	assert.Equal(t, date(2024, 3, 1), s.ViewingMonth)
}

func TestNavigateMonthAcrossYear(t *testing.T) {
	s := NewState(time.Date(2024, 12, 31, 9, 0, 0, 0, time.UTC))
	next, err := s.NavigateMonth(1)
	require.NoError(t, err)
	assert.Equal(t, date(2025, 1, 1), next.ViewingMonth)
}

func TestNavigateMonthRejectsOtherDeltas(t *testing.T) {
	s := NewState(now)
	for _, d := range []int{0, 2, -3} {
		_, err := s.NavigateMonth(d)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidDelta), "delta %d", d)
	}
}

func TestJumpToToday(t *testing.T) {
	s := NewState(now).SelectDay(date(2023, 7, 4))
	s, _ = s.NavigateMonth(-1)

	s = s.JumpToToday(now)
	assert.Equal(t, date(2024, 3, 1), s.ViewingMonth)
	assert.Equal(t, date(2024, 3, 15), *s.SelectedDate)
}

func TestSelectDay(t *testing.T) {
	s := NewState(now)

	inMonth := s.SelectDay(time.Date(2024, 3, 20, 18, 0, 0, 0, time.UTC))
	assert.Equal(t, date(2024, 3, 20), *inMonth.SelectedDate)
	assert.Equal(t, date(2024, 3, 1), inMonth.ViewingMonth)

	outside := s.SelectDay(date(2024, 5, 2))
	assert.Equal(t, date(2024, 5, 2), *outside.SelectedDate)
	assert.Equal(t, date(2024, 5, 1), outside.ViewingMonth)
	assert.True(t, outside.Contains(date(2024, 5, 2)))
}

func TestSelectDayAlwaysYieldsDay(t *testing.T) {
	s := NewState(now)
	for d := date(2023, 1, 1); d.Before(date(2025, 1, 1)); d = d.AddDate(0, 0, 11) {
		s = s.SelectDay(d)
		assert.Equal(t, d, *s.SelectedDate)
		assert.True(t, s.Contains(d), DayKey(d))
	}
}

func TestStateContainsPadding(t *testing.T) {
	s := NewState(now)
	assert.True(t, s.Contains(date(2024, 2, 26)))
	assert.True(t, s.Contains(date(2024, 3, 31)))
	assert.False(t, s.Contains(date(2024, 2, 25)))
	assert.False(t, s.Contains(date(2024, 4, 1)))
}

func TestRequestNewAppointmentPrecedence(t *testing.T) {
	s := NewState(now).SelectDay(date(2024, 3, 20))

	explicit := date(2024, 3, 22)
	assert.Equal(t, "2024-03-22", s.RequestNewAppointment(&explicit, now).Date)
	assert.Equal(t, "2024-03-20", s.RequestNewAppointment(nil, now).Date)

	s.SelectedDate = nil
	d := s.RequestNewAppointment(nil, now)
	assert.Equal(t, "2024-03-15", d.Date)
	assert.Equal(t, DraftCreate, d.Mode)
}

func TestRequestEditAppointment(t *testing.T) {
	ap := models.Appointment{
		ID:          "ap-1",
		PatientID:   "p-1",
		ClinicianID: "c-1",
		StartTime:   time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2024, 3, 15, 10, 45, 0, 0, time.UTC),
		Status:      "scheduled",
		Type:        "Follow-up",
		Title:       "Knee rehab",
	}

	d := RequestEditAppointment(ap)
	assert.Equal(t, DraftEdit, d.Mode)
	assert.Equal(t, "2024-03-15", d.Date)
	assert.Equal(t, "ap-1", d.AppointmentID)
	assert.Equal(t, ap.EndTime, *d.End)
	assert.Equal(t, "Follow-up", d.Type)
	assert.Equal(t, "Knee rehab", d.Title)
}

func TestStateSurvivesJSONRoundTripIntoZone(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	s := NewState(time.Date(2024, 3, 15, 9, 0, 0, 0, berlin))
	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded State
	require.NoError(t, json.Unmarshal(raw, &decoded))
	decoded = decoded.In(berlin)

	assert.Equal(t, berlin, decoded.ViewingMonth.Location())
	assert.Equal(t, 15, decoded.SelectedDate.Day())
	next, _ := decoded.NavigateMonth(1)
	assert.Equal(t, time.April, next.ViewingMonth.Month())
}
