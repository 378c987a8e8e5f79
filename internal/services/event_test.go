package services

import (
	"context"
	"errors"
	"testing"

	"eventhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() *domain.Event {
	return &domain.Event{
		Name:             "AI Summit",
		Date:             "2026-03-14",
		Time:             "10:00",
		Venue:            "Main Hall",
		Description:      "Talks on **LLMs**",
		Fees:             domain.FeeFree,
		RegistrationLink: "https://forms.example.com/ai",
		Level:            domain.LevelBeginner,
		Topics:           []string{"AI/ML"},
		ActivityPoints:   10,
	}
}

type eventFixture struct {
	events     *fakeEventRepo
	organisers *fakeOrganiserRepo
	cache      *fakeEventCache
	svc        domain.EventService
}

func newEventFixture(withCache bool) *eventFixture {
	f := &eventFixture{
		events:     newFakeEventRepo(),
		organisers: newFakeOrganiserRepo(newFakeUserRepo()),
	}
	var cache domain.EventCache
	if withCache {
		f.cache = &fakeEventCache{}
		cache = f.cache
	}
	f.svc = NewEventService(f.events, f.organisers, cache, fakeRenderer{}, discardLogger(), testTimeout)
	return f
}

func TestEventService_CreateEvent(t *testing.T) {
	f := newEventFixture(true)
	ev := validEvent()
	ev.Name = "  AI Summit "
	ev.Topics = []string{"AI/ML", "AI/ML", " Robotics"}

	require.NoError(t, f.svc.CreateEvent(context.Background(), "RoboClub", ev))
	assert.Equal(t, int64(1), ev.ID)
	assert.Equal(t, "RoboClub", ev.Organiser)
	assert.Equal(t, "AI Summit", ev.Name)
	assert.Equal(t, []string{"AI/ML", "Robotics"}, ev.Topics)
	assert.False(t, ev.CreatedAt.IsZero())
	assert.Equal(t, 1, f.cache.invalidated)

	second := validEvent()
	require.NoError(t, f.svc.CreateEvent(context.Background(), "RoboClub", second))
	assert.Equal(t, int64(2), second.ID, "ids are unique and ascending")
}

func TestEventService_CreateEvent_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Event)
		wantErr error
	}{
		{"missing name", func(e *domain.Event) { e.Name = "" }, domain.ErrMissingRequiredField},
		{"missing link", func(e *domain.Event) { e.RegistrationLink = " " }, domain.ErrMissingRequiredField},
		{"bad date", func(e *domain.Event) { e.Date = "14/03/2026" }, domain.ErrInvalidInput},
		{"bad time", func(e *domain.Event) { e.Time = "10am" }, domain.ErrInvalidInput},
		{"link without scheme", func(e *domain.Event) { e.RegistrationLink = "forms.example.com" }, domain.ErrInvalidInput},
		{"ftp link", func(e *domain.Event) { e.RegistrationLink = "ftp://example.com/x" }, domain.ErrInvalidInput},
		{"unknown level", func(e *domain.Event) { e.Level = "Expert" }, domain.ErrInvalidInput},
		{"unknown fees", func(e *domain.Event) { e.Fees = "" }, domain.ErrInvalidInput},
		{"bad points", func(e *domain.Event) { e.ActivityPoints = 7 }, domain.ErrInvalidInput},
		{"unknown topic", func(e *domain.Event) { e.Topics = []string{"Knitting"} }, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEventFixture(true)
			ev := validEvent()
			tt.mutate(ev)

			err := f.svc.CreateEvent(context.Background(), "RoboClub", ev)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.events.byID)
			assert.Zero(t, f.cache.invalidated)
		})
	}
}

func TestEventService_CreateEvent_AcceptsSeconds(t *testing.T) {
	f := newEventFixture(false)
	ev := validEvent()
	ev.Time = "18:30:00"
	ev.Poster = ""
	assert.NoError(t, f.svc.CreateEvent(context.Background(), "RoboClub", ev))
}

func TestEventService_GetEventDetail(t *testing.T) {
	f := newEventFixture(false)
	ev := validEvent()
	require.NoError(t, f.svc.CreateEvent(context.Background(), "RoboClub", ev))
	f.organisers.profiles["RoboClub"] = &domain.OrganiserProfile{Username: "RoboClub", College: "MIT", Description: "robots"}

	detail, err := f.svc.GetEventDetail(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev, detail.Event)
	require.NotNil(t, detail.Organiser)
	assert.Equal(t, "MIT", detail.Organiser.College)
	assert.Equal(t, "<p>robots</p>", detail.Organiser.DescriptionHTML)
	assert.Equal(t, "<p>Talks on **LLMs**</p>", detail.DescriptionHTML)
}

func TestEventService_GetEventDetail_NoProfile(t *testing.T) {
	f := newEventFixture(false)
	ev := validEvent()
	require.NoError(t, f.svc.CreateEvent(context.Background(), "Ghost", ev))

	detail, err := f.svc.GetEventDetail(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Organiser)
}

func TestEventService_GetEventDetail_NotFound(t *testing.T) {
	f := newEventFixture(false)
	_, err := f.svc.GetEventDetail(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventService_OrganiserDashboard(t *testing.T) {
	f := newEventFixture(false)
	require.NoError(t, f.svc.CreateEvent(context.Background(), "RoboClub", validEvent()))
	require.NoError(t, f.svc.CreateEvent(context.Background(), "DanceSoc", validEvent()))
	require.NoError(t, f.svc.CreateEvent(context.Background(), "RoboClub", validEvent()))
	f.organisers.profiles["RoboClub"] = &domain.OrganiserProfile{Username: "RoboClub"}

	dash, err := f.svc.OrganiserDashboard(context.Background(), "RoboClub")
	require.NoError(t, err)
	require.NotNil(t, dash.Profile)
	require.Len(t, dash.Events, 2)
	assert.Equal(t, int64(1), dash.Events[0].ID)
	assert.Equal(t, int64(3), dash.Events[1].ID)

	empty, err := f.svc.OrganiserDashboard(context.Background(), "Nobody")
	require.NoError(t, err)
	assert.Nil(t, empty.Profile)
	assert.NotNil(t, empty.Events)
	assert.Empty(t, empty.Events)
}

func TestEventService_ListAll_UsesCache(t *testing.T) {
	f := newEventFixture(true)
	require.NoError(t, f.svc.CreateEvent(context.Background(), "RoboClub", validEvent()))

	first, err := f.svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, f.events.listCalls)

	_, err = f.svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, f.events.listCalls, "second read served from cache")

	require.NoError(t, f.svc.CreateEvent(context.Background(), "RoboClub", validEvent()))
	after, err := f.svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, after, 2, "creation invalidates the cached list")
	assert.Equal(t, 2, f.events.listCalls)
}

func TestEventService_Browse_CreateDuringCacheFill(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture(true)
	f.events.afterList = func() {
		require.NoError(t, f.svc.CreateEvent(ctx, "RoboClub", validEvent()))
	}

	first, err := f.svc.Browse(ctx, domain.EventFilter{})
	require.NoError(t, err)
	assert.Empty(t, first, "snapshot was taken before the creation")

	second, err := f.svc.Browse(ctx, domain.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, second, 1, "the pre-creation list must not be cached")
	assert.Equal(t, 2, f.events.listCalls)

	third, err := f.svc.Browse(ctx, domain.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, third, 1)
	assert.Equal(t, 2, f.events.listCalls, "fresh list is cached")
}

func TestEventService_ListAll_CacheFailureFallsBack(t *testing.T) {
	f := newEventFixture(true)
	require.NoError(t, f.svc.CreateEvent(context.Background(), "RoboClub", validEvent()))
	f.cache.getErr = errors.New("redis down")

	events, err := f.svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestEventService_ListAll_StoreError(t *testing.T) {
	f := newEventFixture(false)
	f.events.listErr = errors.New("db down")
	_, err := f.svc.ListAll(context.Background())
	assert.Error(t, err)
}

func TestEventService_Browse(t *testing.T) {
	f := newEventFixture(true)
	ai := validEvent()
	dance := validEvent()
	dance.Name, dance.Level, dance.Fees, dance.Topics, dance.ActivityPoints = "Dance Fest", domain.LevelAdvanced, domain.FeePaid, []string{"Dance"}, 5
	require.NoError(t, f.svc.CreateEvent(context.Background(), "RoboClub", ai))
	require.NoError(t, f.svc.CreateEvent(context.Background(), "DanceSoc", dance))

	all, err := f.svc.Browse(context.Background(), domain.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := f.svc.Browse(context.Background(), domain.EventFilter{Topics: []string{"AI/ML"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "AI Summit", got[0].Name)

	paid := domain.FeePaid
	got, err = f.svc.Browse(context.Background(), domain.EventFilter{Search: "fest", Fees: &paid})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dance Fest", got[0].Name)

	got, err = f.svc.Browse(context.Background(), domain.EventFilter{Search: "nothing matches"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
