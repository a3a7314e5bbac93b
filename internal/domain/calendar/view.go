package calendar

import (
	"time"

	"github.com/rehabflow/care-scheduler/internal/models"
)

type Cell struct {
	Date            string               `json:"date"`
	Appointments    []models.Appointment `json:"appointments"`
	More            int                  `json:"more"`
	IsToday         bool                 `json:"is_today"`
	IsSelected      bool                 `json:"is_selected"`
	IsCurrentMonth  bool                 `json:"is_current_month"`
	IsSuggestedSlot bool                 `json:"is_suggested_slot"`
	Tooltip         string               `json:"tooltip,omitempty"`
}

type MonthView struct {
	Month        string               `json:"month"`
	SelectedDate string               `json:"selected_date,omitempty"`
	Cells        []Cell               `json:"cells"`
	Detail       []models.Appointment `json:"detail"`
}

// BuildView renders s against idx. All dates are interpreted in the
// location of s.ViewingMonth.
func BuildView(s State, idx *Index, suggested SuggestedSet, now time.Time) MonthView {
	loc := s.ViewingMonth.Location()
	today := now.In(loc)

	view := MonthView{
		Month:  s.ViewingMonth.Format("2006-01"),
		Detail: []models.Appointment{},
	}

	var selected time.Time
	hasSelection := s.SelectedDate != nil
	if hasSelection {
		selected = s.SelectedDate.In(loc)
		view.SelectedDate = DayKey(selected)
		view.Detail = idx.Detail(selected)
	}

	for _, day := range MonthGrid(s.ViewingMonth) {
		badges, more := idx.Badges(day)
		if badges == nil {
			badges = []models.Appointment{}
		}
		view.Cells = append(view.Cells, Cell{
			Date:            DayKey(day),
			Appointments:    badges,
			More:            more,
			IsToday:         SameDay(day, today),
			IsSelected:      hasSelection && SameDay(day, selected),
			IsCurrentMonth:  SameMonth(day, s.ViewingMonth),
			IsSuggestedSlot: suggested.Contains(day),
			Tooltip:         suggested.Tooltip(day),
		})
	}
	return view
}
