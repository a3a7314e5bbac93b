package calendar

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cal "github.com/rehabflow/care-scheduler/internal/domain/calendar"
	"github.com/rehabflow/care-scheduler/internal/httperr"
	"github.com/rehabflow/care-scheduler/internal/infra/repository"
	"github.com/rehabflow/care-scheduler/internal/infra/session"
	"github.com/rehabflow/care-scheduler/internal/models"
	"github.com/rehabflow/care-scheduler/internal/suggest"
)

var today = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func seed(t *testing.T, repo *repository.AppointmentMemoryRepository, id, clinician string, start time.Time, status string) {
	t.Helper()
	require.NoError(t, repo.CreateAppointment(context.Background(), &models.Appointment{
		ID:          id,
		ClinicianID: clinician,
		PatientID:   "p-1",
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		Status:      status,
	}))
}

func newSession(repo *repository.AppointmentMemoryRepository, src suggest.Source, log zerolog.Logger) *Session {
	return NewSession(Options{
		Repo:      repo,
		States:    session.NewMemoryStore(),
		Suggested: src,
		Location:  time.UTC,
		Now:       func() time.Time { return today },
		Logger:    log,
	})
}

func cell(t *testing.T, v cal.MonthView, day string) cal.Cell {
	t.Helper()
	for _, c := range v.Cells {
		if c.Date == day {
			return c
		}
	}
	t.Fatalf("no cell %s in %s", day, v.Month)
	return cal.Cell{}
}

func TestInitialViewIsTodayInCurrentMonth(t *testing.T) {
	repo := repository.NewAppointmentMemoryRepository()
	seed(t, repo, "a", "c-1", time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), "scheduled")
	seed(t, repo, "other", "c-2", time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC), "scheduled")
	// padding days of the grid are loaded too
	seed(t, repo, "feb", "c-1", time.Date(2024, 2, 27, 10, 0, 0, 0, time.UTC), "scheduled")

	s := newSession(repo, suggest.StaticSource{Dates: []string{"2024-03-20"}}, zerolog.Nop())
	v, err := s.View(context.Background(), "u-1", "c-1")
	require.NoError(t, err)

	assert.Equal(t, "2024-03", v.Month)
	assert.Equal(t, "2024-03-15", v.SelectedDate)
	assert.Len(t, v.Cells, 35)

	c := cell(t, v, "2024-03-15")
	assert.True(t, c.IsToday)
	require.Len(t, c.Appointments, 1)
	assert.Equal(t, "a", c.Appointments[0].ID)

	assert.Len(t, cell(t, v, "2024-02-27").Appointments, 1)
	assert.True(t, cell(t, v, "2024-03-20").IsSuggestedSlot)
	require.Len(t, v.Detail, 1)
}

func TestTransitionsPersistPerUser(t *testing.T) {
	ctx := context.Background()
	s := newSession(repository.NewAppointmentMemoryRepository(), nil, zerolog.Nop())

	v, err := s.NavigateMonth(ctx, "u-1", "c-1", 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-04", v.Month)
	assert.Equal(t, "2024-03-15", v.SelectedDate)

	v, err = s.View(ctx, "u-1", "c-1")
	require.NoError(t, err)
	assert.Equal(t, "2024-04", v.Month)

	other, err := s.View(ctx, "u-2", "c-1")
	require.NoError(t, err)
	assert.Equal(t, "2024-03", other.Month)

	v, err = s.SelectDay(ctx, "u-1", "c-1", time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2024-06", v.Month)
	assert.Equal(t, "2024-06-03", v.SelectedDate)

	v, err = s.JumpToToday(ctx, "u-1", "c-1")
	require.NoError(t, err)
	assert.Equal(t, "2024-03", v.Month)
	assert.Equal(t, "2024-03-15", v.SelectedDate)
}

func TestInvalidTransitionsDoNotSave(t *testing.T) {
	ctx := context.Background()
	s := newSession(repository.NewAppointmentMemoryRepository(), nil, zerolog.Nop())

	_, err := s.NavigateMonth(ctx, "u-1", "c-1", 3)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidDelta))

	_, err = s.SelectDay(ctx, "u-1", "c-1", time.Time{})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidDate))

	v, err := s.View(ctx, "u-1", "c-1")
	require.NoError(t, err)
	assert.Equal(t, "2024-03", v.Month)
}

func TestDetailFollowsSelectionAcrossMonths(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewAppointmentMemoryRepository()
	seed(t, repo, "a", "c-1", time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), "scheduled")
	seed(t, repo, "b", "c-1", time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC), "cancelled")
	seed(t, repo, "other", "c-2", time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), "scheduled")
	s := newSession(repo, nil, zerolog.Nop())

	v, err := s.View(ctx, "u-1", "c-1")
	require.NoError(t, err)
	require.Len(t, v.Detail, 2)

	v, err = s.NavigateMonth(ctx, "u-1", "c-1", 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-04", v.Month)
	assert.Equal(t, "2024-03-15", v.SelectedDate)
	require.Len(t, v.Detail, 2)
	assert.Equal(t, "b", v.Detail[0].ID)
	assert.Equal(t, "a", v.Detail[1].ID)
	for _, c := range v.Cells {
		assert.Empty(t, c.Appointments, c.Date)
	}

	_, err = s.NavigateMonth(ctx, "u-1", "c-1", -1)
	require.NoError(t, err)
	v, err = s.NavigateMonth(ctx, "u-1", "c-1", -1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02", v.Month)
	assert.Len(t, v.Detail, 2)
}

type brokenSource struct{}

func (brokenSource) Suggest(context.Context, string, time.Time) ([]string, error) {
	return nil, errors.New("model overloaded")
}

func TestFailingSuggestionsStillRender(t *testing.T) {
	var buf bytes.Buffer
	s := newSession(repository.NewAppointmentMemoryRepository(), brokenSource{}, zerolog.New(&buf))

	v, err := s.View(context.Background(), "u-1", "c-1")
	require.NoError(t, err)
	for _, c := range v.Cells {
		assert.False(t, c.IsSuggestedSlot)
	}
	assert.Contains(t, buf.String(), "model overloaded")
}

func TestDrafts(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewAppointmentMemoryRepository()
	seed(t, repo, "a", "c-1", time.Date(2024, 3, 18, 10, 0, 0, 0, time.UTC), "scheduled")
	s := newSession(repo, nil, zerolog.Nop())

	d, err := s.NewAppointmentDraft(ctx, "u-1", "c-1", nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", d.Date)
	assert.Equal(t, "c-1", d.ClinicianID)

	_, err = s.SelectDay(ctx, "u-1", "c-1", time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	d, err = s.NewAppointmentDraft(ctx, "u-1", "c-1", nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-21", d.Date)

	explicit := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
	d, err = s.NewAppointmentDraft(ctx, "u-1", "c-1", &explicit)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-25", d.Date)

	edit, err := s.EditAppointmentDraft(ctx, "c-1", "a")
	require.NoError(t, err)
	assert.Equal(t, cal.DraftEdit, edit.Mode)
	assert.Equal(t, "2024-03-18", edit.Date)

	_, err = s.EditAppointmentDraft(ctx, "c-2", "a")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
	_, err = s.EditAppointmentDraft(ctx, "c-1", "missing")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}
