package domain

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// Level is the difficulty level of an event.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Levels lists every valid Level in display order.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// ParseLevel returns the Level for s, or false when s is not a known level.
func ParseLevel(s string) (Level, bool) {
	for _, l := range Levels {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// FeeCategory tells whether registration is free or paid.
type FeeCategory string

const (
	FeeFree FeeCategory = "Free"
	FeePaid FeeCategory = "Paid"
)

// FeeCategories lists every valid FeeCategory in display order.
var FeeCategories = []FeeCategory{FeeFree, FeePaid}

// ParseFeeCategory returns the FeeCategory for s, or false when s is not known.
func ParseFeeCategory(s string) (FeeCategory, bool) {
	for _, f := range FeeCategories {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// PointsTier is the activity-points reward attached to an event.
type PointsTier int

// PointsTiers lists every valid tier in ascending order.
var PointsTiers = []PointsTier{0, 5, 10, 20}

// ParsePointsTier parses the canonical string form ("0", "5", "10", "20").
func ParsePointsTier(s string) (PointsTier, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	for _, p := range PointsTiers {
		if int(p) == n {
			return p, true
		}
	}
	return 0, false
}

// Valid reports whether p is one of PointsTiers.
func (p PointsTier) Valid() bool {
	for _, t := range PointsTiers {
		if t == p {
			return true
		}
	}
	return false
}

func (p PointsTier) String() string {
	return strconv.Itoa(int(p))
}

// Topics is the fixed topic vocabulary offered for events, interests and filters.
var Topics = []string{
	"AI/ML", "Web Dev", "App Dev", "Cybersecurity", "Robotics",
	"Data Science", "Music", "Dance", "Drama", "Photography",
}

// IsKnownTopic reports whether t is in Topics.
func IsKnownTopic(t string) bool {
	for _, v := range Topics {
		if v == t {
			return true
		}
	}
	return false
}

// ParseTopics splits a stored comma-joined topic field. Blank items are dropped, so an
// empty or malformed field yields an empty set.
func ParseTopics(raw string) []string {
	out := []string{}
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// JoinTopics is the storage form of a topic set.
func JoinTopics(topics []string) string {
	return strings.Join(topics, ",")
}

// Event represents a university event owned by one organiser.
// swagger:model Event
type Event struct {
	ID               int64       `json:"id"`
	Organiser        string      `json:"organiser"`
	Name             string      `json:"name"`
	Date             string      `json:"date"`
	Time             string      `json:"time"`
	Venue            string      `json:"venue"`
	Poster           string      `json:"poster"`
	Description      string      `json:"description"`
	Fees             FeeCategory `json:"fees"`
	RegistrationLink string      `json:"registration_link"`
	Level            Level       `json:"level"`
	Topics           []string    `json:"topics"`
	ActivityPoints   PointsTier  `json:"activity_points"`
	CreatedAt        time.Time   `json:"created_at"`
}

// EventDetail is what the event page shows: the event plus its organiser's branding.
// Organiser is nil when the organiser has no profile.
// swagger:model EventDetail
type EventDetail struct {
	Event           *Event            `json:"event"`
	Organiser       *OrganiserProfile `json:"organiser"`
	DescriptionHTML string            `json:"description_html"`
}

// OrganiserDashboard is the organiser's home page: profile and own events.
// swagger:model OrganiserDashboard
type OrganiserDashboard struct {
	Profile *OrganiserProfile `json:"profile"`
	Events  []*Event          `json:"events"`
}

// EventFilter selects events for the participant dashboard. Every criterion is
// optional; a zero value disables it. Active criteria are combined with AND.
type EventFilter struct {
	Search         string
	Topics         []string
	Level          *Level
	Fees           *FeeCategory
	ActivityPoints *PointsTier
}

// EventRepository defines the interface for event storage. Lists are in ascending id order.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	ListByOrganiser(ctx context.Context, organiser string) ([]*Event, error)
	ListAll(ctx context.Context) ([]*Event, error)
}

// EventCache holds the full event list between writes. GetAll reports a miss with ok == false and
// returns the cache generation current at the time of the read. SetAll stores a list read at that
// generation and is a no-op once Invalidate has moved the generation on, so a list read before a
// write is never installed after it.
type EventCache interface {
	GetAll(ctx context.Context) (events []*Event, gen int64, ok bool, err error)
	SetAll(ctx context.Context, gen int64, events []*Event) error
	Invalidate(ctx context.Context) error
}

// DescriptionRenderer turns free-text descriptions into safe HTML.
type DescriptionRenderer interface {
	Render(text string) (string, error)
}

// EventService defines event creation and the read paths behind the dashboards and event page.
type EventService interface {
	CreateEvent(ctx context.Context, organiser string, event *Event) error
	GetEventDetail(ctx context.Context, id int64) (*EventDetail, error)
	OrganiserDashboard(ctx context.Context, organiser string) (*OrganiserDashboard, error)
	ListAll(ctx context.Context) ([]*Event, error)
	Browse(ctx context.Context, filter EventFilter) ([]*Event, error)
}
