package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/rehabflow/care-scheduler/internal/domain/appointment"
	cal "github.com/rehabflow/care-scheduler/internal/domain/calendar"
	"github.com/rehabflow/care-scheduler/internal/httperr"
	"github.com/rehabflow/care-scheduler/internal/metrics"
	"github.com/rehabflow/care-scheduler/internal/suggest"
	"github.com/rehabflow/care-scheduler/internal/timezone"
)

// StateStore keeps one cal.State per user between requests.
type StateStore interface {
	Load(ctx context.Context, userID string) (cal.State, bool, error)
	Save(ctx context.Context, userID string, st cal.State) error
}

// Session drives the calendar state machine for a user and renders the
// resulting month view. It reads appointments; it never writes them.
type Session struct {
	repo      domain.Repository
	states    StateStore
	suggested suggest.Source
	loc       *time.Location
	now       func() time.Time
	metrics   *metrics.SchedulingMetrics
	log       zerolog.Logger
}

type Options struct {
	Repo      domain.Repository
	States    StateStore
	Suggested suggest.Source
	Location  *time.Location
	Now       func() time.Time
	Metrics   *metrics.SchedulingMetrics
	Logger    zerolog.Logger
}

func NewSession(opts Options) *Session {
	s := &Session{
		repo:      opts.Repo,
		states:    opts.States,
		suggested: opts.Suggested,
		loc:       opts.Location,
		now:       opts.Now,
		metrics:   opts.Metrics,
		log:       opts.Logger,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.suggested == nil {
		s.suggested = suggest.StaticSource{}
	}
	return s
}

func (s *Session) today() time.Time {
	return s.now().In(s.loc)
}

func (s *Session) load(ctx context.Context, userID string) (cal.State, error) {
	st, ok, err := s.states.Load(ctx, userID)
	if err != nil {
		return cal.State{}, err
	}
	if !ok {
		return cal.NewState(s.today()), nil
	}
	return st.In(s.loc), nil
}

func (s *Session) apply(
	ctx context.Context,
	userID string,
	clinicianID string,
	transition func(cal.State) (cal.State, error),
) (cal.MonthView, error) {

	st, err := s.load(ctx, userID)
	if err != nil {
		return cal.MonthView{}, err
	}

	if transition != nil {
		if st, err = transition(st); err != nil {
			return cal.MonthView{}, err
		}
		if err := s.states.Save(ctx, userID, st); err != nil {
			return cal.MonthView{}, err
		}
	}

	return s.render(ctx, st, clinicianID)
}

func (s *Session) render(ctx context.Context, st cal.State, clinicianID string) (cal.MonthView, error) {
	grid := cal.MonthGrid(st.ViewingMonth)
	from := grid[0]
	to := grid[len(grid)-1].AddDate(0, 0, 1)

	appts, err := s.repo.ListAppointmentsForPeriod(ctx, clinicianID, from, to)
	if err != nil {
		return cal.MonthView{}, fmt.Errorf("calendar appointments: %w", err)
	}

	// the detail panel follows the selection even when it is off the grid
	if st.SelectedDate != nil && !st.Contains(*st.SelectedDate) {
		day := timezone.Midnight(*st.SelectedDate, s.loc)
		extra, err := s.repo.ListAppointmentsForPeriod(ctx, clinicianID, day, day.AddDate(0, 0, 1))
		if err != nil {
			return cal.MonthView{}, fmt.Errorf("selected day appointments: %w", err)
		}
		appts = append(appts, extra...)
	}

	// suggestions only decorate the grid; a failing source renders without them
	dates, err := s.suggested.Suggest(ctx, clinicianID, st.ViewingMonth)
	if err != nil {
		s.log.Warn().Err(err).Str("clinician_id", clinicianID).Msg("suggested availability unavailable")
		dates = nil
	}

	view := cal.BuildView(
		st,
		cal.NewIndex(appts, s.loc),
		cal.ParseSuggestedSet(dates, s.loc),
		s.today(),
	)
	s.metrics.ObserveView()
	return view, nil
}

// View renders the user's current state without changing it.
func (s *Session) View(ctx context.Context, userID, clinicianID string) (cal.MonthView, error) {
	return s.apply(ctx, userID, clinicianID, nil)
}

func (s *Session) NavigateMonth(ctx context.Context, userID, clinicianID string, delta int) (cal.MonthView, error) {
	return s.apply(ctx, userID, clinicianID, func(st cal.State) (cal.State, error) {
		return st.NavigateMonth(delta)
	})
}

func (s *Session) JumpToToday(ctx context.Context, userID, clinicianID string) (cal.MonthView, error) {
	return s.apply(ctx, userID, clinicianID, func(st cal.State) (cal.State, error) {
		return st.JumpToToday(s.today()), nil
	})
}

func (s *Session) SelectDay(ctx context.Context, userID, clinicianID string, day time.Time) (cal.MonthView, error) {
	if day.IsZero() {
		return cal.MonthView{}, httperr.ErrBusiness(httperr.CodeInvalidDate)
	}
	return s.apply(ctx, userID, clinicianID, func(st cal.State) (cal.State, error) {
		return st.SelectDay(day.In(s.loc)), nil
	})
}
