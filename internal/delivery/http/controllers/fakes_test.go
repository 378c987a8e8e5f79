package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func withIdentity(r *http.Request, username string, role domain.Role) *http.Request {
	return r.WithContext(middleware.SetIdentity(r.Context(), middleware.Identity{Username: username, Role: role}))
}

// decodeEnvelope decodes the response envelope and, when dest is non-nil, the data field into dest.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	if dest != nil && envelope.Data != nil {
		b, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(b, dest))
	}
	return envelope
}

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	user            *domain.User
	profile         *domain.OrganiserProfile
	token           string
	err             error
	lastParticipant domain.ParticipantRegistration
	lastOrganiser   domain.OrganiserRegistration
	lastRole        domain.Role
}

func (f *fakeAuthService) RegisterParticipant(ctx context.Context, reg domain.ParticipantRegistration) (*domain.User, error) {
	f.lastParticipant = reg
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAuthService) RegisterOrganiser(ctx context.Context, reg domain.OrganiserRegistration) (*domain.User, *domain.OrganiserProfile, error) {
	f.lastOrganiser = reg
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.user, f.profile, nil
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string, role domain.Role) (string, *domain.User, error) {
	f.lastRole = role
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.user, nil
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	created     *domain.Event
	createdBy   string
	createErr   error
	detail      *domain.EventDetail
	detailErr   error
	dashboard   *domain.OrganiserDashboard
	browse      []*domain.Event
	browseErr   error
	lastFilter  domain.EventFilter
	lastEventID int64
}

func (f *fakeEventService) CreateEvent(ctx context.Context, organiser string, event *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = 7
	event.Organiser = organiser
	f.created, f.createdBy = event, organiser
	return nil
}

func (f *fakeEventService) GetEventDetail(ctx context.Context, id int64) (*domain.EventDetail, error) {
	f.lastEventID = id
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.detail, nil
}

func (f *fakeEventService) OrganiserDashboard(ctx context.Context, organiser string) (*domain.OrganiserDashboard, error) {
	return f.dashboard, nil
}

func (f *fakeEventService) ListAll(ctx context.Context) ([]*domain.Event, error) {
	return f.browse, f.browseErr
}

func (f *fakeEventService) Browse(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	f.lastFilter = filter
	return f.browse, f.browseErr
}

// fakeCertificateService implements domain.CertificateService for handler tests.
type fakeCertificateService struct {
	certs []*domain.Certificate
	err   error
}

func (f *fakeCertificateService) Issue(ctx context.Context, organiser string, eventID int64, participant, file string) (*domain.Certificate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Certificate{EventID: eventID, Participant: participant, File: file}, nil
}

func (f *fakeCertificateService) ListMine(ctx context.Context, participant string) ([]*domain.Certificate, error) {
	return f.certs, f.err
}

func (f *fakeCertificateService) ListForEvent(ctx context.Context, organiser string, eventID int64) ([]*domain.Certificate, error) {
	return f.certs, f.err
}

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	user       *domain.User
	userErr    error
	profile    *domain.OrganiserProfile
	profileErr error
}

func (f *fakeUserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return f.user, f.userErr
}

func (f *fakeUserService) GetOrganiserProfile(ctx context.Context, username string) (*domain.OrganiserProfile, error) {
	return f.profile, f.profileErr
}
