package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"eventhub/internal/domain"
)

// All is the query value that disables a single-choice criterion.
const All = "All"

// ParseFilter builds a Filter from dashboard query parameters:
// search, topic (repeatable or comma-separated), level, fees and activity_points.
// Absent, empty or "All" values disable the criterion.
func ParseFilter(q url.Values) (Filter, error) {
	f := Filter{Search: q.Get("search")}

	seen := make(map[string]struct{})
	for _, raw := range q["topic"] {
		for _, t := range domain.ParseTopics(raw) {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			f.Topics = append(f.Topics, t)
		}
	}

	if s, ok := enabled(q.Get("level")); ok {
		l, valid := domain.ParseLevel(s)
		if !valid {
			return Filter{}, fmt.Errorf("%w: unknown level %q", domain.ErrInvalidInput, s)
		}
		f.Level = &l
	}
	if s, ok := enabled(q.Get("fees")); ok {
		fee, valid := domain.ParseFeeCategory(s)
		if !valid {
			return Filter{}, fmt.Errorf("%w: unknown fees %q", domain.ErrInvalidInput, s)
		}
		f.Fees = &fee
	}
	if s, ok := enabled(q.Get("activity_points")); ok {
		p, valid := domain.ParsePointsTier(s)
		if !valid {
			return Filter{}, fmt.Errorf("%w: unknown activity_points %q", domain.ErrInvalidInput, s)
		}
		f.ActivityPoints = &p
	}
	return f, nil
}

func enabled(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, All) {
		return "", false
	}
	return v, true
}
