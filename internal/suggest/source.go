// Package suggest supplies the dates an external assistant proposes as
// open availability for a clinician's month.
package suggest

import (
	"context"
	"time"
)

// Source returns ISO dates ("2006-01-02") inside month for clinicianID.
type Source interface {
	Suggest(ctx context.Context, clinicianID string, month time.Time) ([]string, error)
}

// StaticSource serves a fixed list, filtered to the requested month.
type StaticSource struct {
	Dates []string
}

func (s StaticSource) Suggest(_ context.Context, _ string, month time.Time) ([]string, error) {
	return inMonth(s.Dates, month), nil
}

func inMonth(dates []string, month time.Time) []string {
	prefix := month.Format("2006-01") + "-"
	out := []string{}
	for _, d := range dates {
		if len(d) == len("2006-01-02") && d[:len(prefix)] == prefix {
			if _, err := time.Parse("2006-01-02", d); err == nil {
				out = append(out, d)
			}
		}
	}
	return out
}
