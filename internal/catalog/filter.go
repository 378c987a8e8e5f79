// Package catalog selects the events a participant sees on the dashboard.
package catalog

import (
	"strings"

	"eventhub/internal/domain"
)

// Filter is the set of optional criteria applied by Apply.
type Filter = domain.EventFilter

// Apply returns the events that satisfy every active criterion of f, in input order.
// The result is never nil. Apply has no side effects and is safe for concurrent use.
func Apply(events []*domain.Event, f Filter) []*domain.Event {
	search := strings.ToLower(f.Search)
	want := make(map[string]struct{}, len(f.Topics))
	for _, t := range f.Topics {
		want[t] = struct{}{}
	}

	out := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if e == nil {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(e.Name), search) {
			continue
		}
		if len(want) > 0 && !intersects(e.Topics, want) {
			continue
		}
		if f.Level != nil && e.Level != *f.Level {
			continue
		}
		if f.Fees != nil && e.Fees != *f.Fees {
			continue
		}
		if f.ActivityPoints != nil && e.ActivityPoints != *f.ActivityPoints {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Active reports whether any criterion of f is enabled.
func Active(f Filter) bool {
	return f.Search != "" || len(f.Topics) > 0 || f.Level != nil || f.Fees != nil || f.ActivityPoints != nil
}

func intersects(topics []string, want map[string]struct{}) bool {
	for _, t := range topics {
		if _, ok := want[t]; ok {
			return true
		}
	}
	return false
}
