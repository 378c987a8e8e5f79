package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"eventhub/internal/catalog"
	"eventhub/internal/domain"
)

const dateLayout = "2006-01-02"

var timeLayouts = []string{"15:04", "15:04:05"}

type eventService struct {
	eventRepo      domain.EventRepository
	organiserRepo  domain.OrganiserRepository
	cache          domain.EventCache
	renderer       domain.DescriptionRenderer
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewEventService creates an EventService. cache and renderer are optional.
func NewEventService(
	eventRepo domain.EventRepository,
	organiserRepo domain.OrganiserRepository,
	cache domain.EventCache,
	renderer domain.DescriptionRenderer,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		organiserRepo:  organiserRepo,
		cache:          cache,
		renderer:       renderer,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, organiser string, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if organiser == "" {
		return fmt.Errorf("event organiser is required")
	}
	if err := normalizeEvent(event); err != nil {
		return err
	}
	event.Organiser = organiser
	event.CreatedAt = time.Now()

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("create event: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.WarnContext(ctx, "event cache invalidate failed", "error", err)
		}
	}
	return nil
}

// normalizeEvent trims the form fields and rejects blanks, unknown enum values and malformed
// date, time or link.
func normalizeEvent(e *domain.Event) error {
	e.Name = strings.TrimSpace(e.Name)
	e.Date = strings.TrimSpace(e.Date)
	e.Time = strings.TrimSpace(e.Time)
	e.Venue = strings.TrimSpace(e.Venue)
	e.Poster = strings.TrimSpace(e.Poster)
	e.RegistrationLink = strings.TrimSpace(e.RegistrationLink)
	if err := domain.RequireFields(
		"name", e.Name,
		"date", e.Date,
		"time", e.Time,
		"venue", e.Venue,
		"registration_link", e.RegistrationLink,
	); err != nil {
		return err
	}

	if _, err := time.Parse(dateLayout, e.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if !validTime(e.Time) {
		return fmt.Errorf("%w: time must be HH:MM", domain.ErrInvalidInput)
	}
	if !validLink(e.RegistrationLink) {
		return fmt.Errorf("%w: registration link must be an http(s) URL", domain.ErrInvalidInput)
	}
	if _, ok := domain.ParseLevel(string(e.Level)); !ok {
		return fmt.Errorf("%w: unknown level %q", domain.ErrInvalidInput, e.Level)
	}
	if _, ok := domain.ParseFeeCategory(string(e.Fees)); !ok {
		return fmt.Errorf("%w: unknown fees %q", domain.ErrInvalidInput, e.Fees)
	}
	if !e.ActivityPoints.Valid() {
		return fmt.Errorf("%w: activity points must be one of 0, 5, 10, 20", domain.ErrInvalidInput)
	}
	topics, err := validateTopics(e.Topics)
	if err != nil {
		return err
	}
	e.Topics = topics
	return nil
}

func validTime(s string) bool {
	for _, layout := range timeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func validLink(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (s *eventService) GetEventDetail(ctx context.Context, id int64) (*domain.EventDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	profile, err := s.profileOrNil(ctx, event.Organiser)
	if err != nil {
		return nil, err
	}

	detail := &domain.EventDetail{Event: event, Organiser: profile}
	if s.renderer != nil {
		detail.DescriptionHTML, err = s.renderer.Render(event.Description)
		if err != nil {
			return nil, fmt.Errorf("render event description: %w", err)
		}
	}
	if err := renderProfile(s.renderer, profile); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *eventService) OrganiserDashboard(ctx context.Context, organiser string) (*domain.OrganiserDashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := s.profileOrNil(ctx, organiser)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListByOrganiser(ctx, organiser)
	if err != nil {
		return nil, fmt.Errorf("list organiser events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return &domain.OrganiserDashboard{Profile: profile, Events: events}, nil
}

// profileOrNil treats a missing organiser profile as absent branding rather than an error.
func (s *eventService) profileOrNil(ctx context.Context, organiser string) (*domain.OrganiserProfile, error) {
	profile, err := s.organiserRepo.GetByUsername(ctx, organiser)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organiser: %w", err)
	}
	return profile, nil
}

func (s *eventService) ListAll(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.listAll(ctx)
}

// listAll reads through the cache. The generation is taken before the store read so that a
// creation landing in between makes the fill a no-op.
func (s *eventService) listAll(ctx context.Context) ([]*domain.Event, error) {
	var (
		gen  int64
		fill bool
	)
	if s.cache != nil {
		events, g, ok, err := s.cache.GetAll(ctx)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "event cache read failed", "error", err)
		case ok:
			return events, nil
		default:
			gen, fill = g, true
		}
	}

	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	if fill {
		if err := s.cache.SetAll(ctx, gen, events); err != nil {
			s.logger.WarnContext(ctx, "event cache write failed", "error", err)
		}
	}
	return events, nil
}

func (s *eventService) Browse(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Apply(events, filter), nil
}
