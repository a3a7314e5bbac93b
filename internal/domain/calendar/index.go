package calendar

import (
	"sort"
	"time"

	domain "github.com/rehabflow/care-scheduler/internal/domain/appointment"
	"github.com/rehabflow/care-scheduler/internal/models"
)

// MaxBadges is how many appointments a grid cell shows before "+N more".
const MaxBadges = 3

// Index groups a snapshot of appointments by the calendar day of their
// start in loc. Rebuild it whenever the collection changes.
type Index struct {
	loc   *time.Location
	byDay map[string][]models.Appointment
}

func NewIndex(appts []models.Appointment, loc *time.Location) *Index {
	if loc == nil {
		loc = time.UTC
	}
	idx := &Index{
		loc:   loc,
		byDay: make(map[string][]models.Appointment),
	}
	for _, ap := range appts {
		key := DayKey(ap.StartTime.In(loc))
		idx.byDay[key] = append(idx.byDay[key], ap)
	}
	return idx
}

func (i *Index) key(d time.Time) string {
	return DayKey(d.In(i.loc))
}

// ForDay is every appointment starting on d, any status, input order.
func (i *Index) ForDay(d time.Time) []models.Appointment {
	return i.byDay[i.key(d)]
}

// ForGrid is the scheduled appointments starting on d, input order.
func (i *Index) ForGrid(d time.Time) []models.Appointment {
	all := i.byDay[i.key(d)]
	out := make([]models.Appointment, 0, len(all))
	for _, ap := range all {
		if domain.Status(ap.Status) == domain.StatusScheduled {
			out = append(out, ap)
		}
	}
	return out
}

// Badges truncates ForGrid(d) to MaxBadges and reports how many were cut.
func (i *Index) Badges(d time.Time) ([]models.Appointment, int) {
	grid := i.ForGrid(d)
	if len(grid) <= MaxBadges {
		return grid, 0
	}
	return grid[:MaxBadges], len(grid) - MaxBadges
}

// Detail is ForDay(d) ordered by start; ties keep input order.
func (i *Index) Detail(d time.Time) []models.Appointment {
	day := i.ForDay(d)
	out := make([]models.Appointment, len(day))
	copy(out, day)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].StartTime.Before(out[b].StartTime)
	})
	return out
}

// OnDay is the linear-scan equivalent of Index.ForDay.
func OnDay(appts []models.Appointment, d time.Time, loc *time.Location) []models.Appointment {
	if loc == nil {
		loc = time.UTC
	}
	target := d.In(loc)
	var out []models.Appointment
	for _, ap := range appts {
		if SameDay(ap.StartTime.In(loc), target) {
			out = append(out, ap)
		}
	}
	return out
}
