package handlers

import (
	"strconv"
	"time"

	"github.com/rehabflow/care-scheduler/internal/timezone"
)

func parseDate(loc *time.Location, dateStr string) (time.Time, error) {
	return timezone.ParseDate(dateStr, loc)
}

// parseYearMonth accepts years 2000-2100 and months 1-12.
func parseYearMonth(yearStr, monthStr string) (int, int, bool) {
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}
