package calendar

import "time"

const SuggestedTooltip = "AI Suggested Availability"

// SuggestedSet marks days an external source proposed as open slots.
type SuggestedSet map[string]struct{}

func NewSuggestedSet(days ...time.Time) SuggestedSet {
	s := make(SuggestedSet, len(days))
	for _, d := range days {
		s[DayKey(d)] = struct{}{}
	}
	return s
}

// ParseSuggestedSet accepts ISO dates; malformed entries are skipped.
func ParseSuggestedSet(dates []string, loc *time.Location) SuggestedSet {
	s := make(SuggestedSet, len(dates))
	for _, raw := range dates {
		d, err := time.ParseInLocation(dayKeyLayout, raw, loc)
		if err != nil {
			continue
		}
		s[DayKey(d)] = struct{}{}
	}
	return s
}

func (s SuggestedSet) Contains(d time.Time) bool {
	_, ok := s[DayKey(d)]
	return ok
}

func (s SuggestedSet) Tooltip(d time.Time) string {
	if s.Contains(d) {
		return SuggestedTooltip
	}
	return ""
}
