package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"eventhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	users      *fakeUserRepo
	organisers *fakeOrganiserRepo
	emails     *fakeEmailService
	tokens     *fakeTokenIssuer
	svc        domain.AuthService
}

func newAuthFixture() *authFixture {
	users := newFakeUserRepo()
	f := &authFixture{
		users:      users,
		organisers: newFakeOrganiserRepo(users),
		emails:     &fakeEmailService{},
		tokens:     &fakeTokenIssuer{},
	}
	f.svc = NewAuthService(f.users, f.organisers, fakePasswordHasher{}, f.tokens, time.Hour, f.emails, discardLogger(), testTimeout)
	return f
}

func validParticipant() domain.ParticipantRegistration {
	return domain.ParticipantRegistration{
		Name:      "Alice",
		College:   "MIT",
		Username:  "alice",
		Password:  "secret",
		Interests: []string{"AI/ML", "Music"},
	}
}

func validOrganiser() domain.OrganiserRegistration {
	return domain.OrganiserRegistration{
		College:     "MIT",
		ClubName:    "RoboClub",
		Description: "We build robots",
		Password:    "secret",
	}
}

func TestAuthService_RegisterParticipant(t *testing.T) {
	f := newAuthFixture()
	reg := validParticipant()
	reg.Username = "  alice "
	reg.Interests = []string{"AI/ML", " Music", "AI/ML", ""}

	user, err := f.svc.RegisterParticipant(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, domain.RoleParticipant, user.Role)
	assert.Equal(t, []string{"AI/ML", "Music"}, user.Interests)
	assert.Equal(t, "salt:secret", user.PasswordHash)
	assert.Empty(t, f.emails.sent, "no email given, no welcome mail")

	stored, err := f.users.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "MIT", stored.College)
}

func TestAuthService_RegisterParticipant_Validation(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*domain.ParticipantRegistration)
		wantErr    error
		wantFields []string
	}{
		{
			name:       "missing name and password",
			mutate:     func(r *domain.ParticipantRegistration) { r.Name, r.Password = "", "" },
			wantErr:    domain.ErrMissingRequiredField,
			wantFields: []string{"name", "password"},
		},
		{
			name:       "blank username",
			mutate:     func(r *domain.ParticipantRegistration) { r.Username = "   " },
			wantErr:    domain.ErrMissingRequiredField,
			wantFields: []string{"username"},
		},
		{
			name:    "unknown interest",
			mutate:  func(r *domain.ParticipantRegistration) { r.Interests = []string{"Knitting"} },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "bad email",
			mutate:  func(r *domain.ParticipantRegistration) { r.Email = "not-an-email" },
			wantErr: domain.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			reg := validParticipant()
			tt.mutate(&reg)

			user, err := f.svc.RegisterParticipant(context.Background(), reg)
			require.Error(t, err)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantFields != nil {
				var mf *domain.MissingFieldError
				require.True(t, errors.As(err, &mf))
				assert.Equal(t, tt.wantFields, mf.Fields)
			}
			assert.Empty(t, f.users.byUsername, "nothing is written on a rejected form")
		})
	}
}

func TestAuthService_RegisterParticipant_Duplicate(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.RegisterParticipant(context.Background(), validParticipant())
	require.NoError(t, err)

	_, err = f.svc.RegisterParticipant(context.Background(), validParticipant())
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)

	// Organiser club names share the username space.
	reg := validOrganiser()
	reg.ClubName = "alice"
	_, _, err = f.svc.RegisterOrganiser(context.Background(), reg)
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
}

func TestAuthService_RegisterParticipant_LostPreCheckRace(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.RegisterParticipant(context.Background(), validParticipant())
	require.NoError(t, err)

	f.users.hideExists = true
	_, err = f.svc.RegisterParticipant(context.Background(), validParticipant())
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername, "store constraint still rejects the second write")
}

func TestAuthService_ConcurrentRegistrationSameUsername(t *testing.T) {
	f := newAuthFixture()
	f.users.hideExists = true

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.RegisterParticipant(context.Background(), validParticipant())
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrDuplicateUsername):
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)
}

func TestAuthService_RegisterParticipant_StoreError(t *testing.T) {
	f := newAuthFixture()
	f.users.createErr = errors.New("connection reset")

	_, err := f.svc.RegisterParticipant(context.Background(), validParticipant())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicateUsername)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestAuthService_WelcomeEmail(t *testing.T) {
	f := newAuthFixture()
	reg := validParticipant()
	reg.Email = "Alice@Example.com"

	user, err := f.svc.RegisterParticipant(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	require.Len(t, f.emails.sent, 1)
	assert.Equal(t, "alice", f.emails.sent[0].Username)
	assert.Equal(t, domain.RoleParticipant, f.emails.sent[0].Role)

	f.emails.err = errors.New("ses down")
	reg.Username = "bob"
	_, err = f.svc.RegisterParticipant(context.Background(), reg)
	assert.NoError(t, err, "email failure does not fail registration")
}

func TestAuthService_RegisterOrganiser(t *testing.T) {
	f := newAuthFixture()
	reg := validOrganiser()
	reg.ProfilePicture = "uploads/profile_pics/abc.png"

	user, profile, err := f.svc.RegisterOrganiser(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, "RoboClub", user.Username)
	assert.Equal(t, domain.RoleOrganiser, user.Role)
	assert.Empty(t, user.Interests)
	assert.Equal(t, &domain.OrganiserProfile{
		Username:       "RoboClub",
		College:        "MIT",
		Description:    "We build robots",
		ProfilePicture: "uploads/profile_pics/abc.png",
	}, profile)

	stored, err := f.organisers.GetByUsername(context.Background(), "RoboClub")
	require.NoError(t, err)
	assert.Equal(t, "We build robots", stored.Description)
}

func TestAuthService_RegisterOrganiser_Missing(t *testing.T) {
	f := newAuthFixture()
	reg := validOrganiser()
	reg.Description = ""
	reg.ClubName = " "

	_, _, err := f.svc.RegisterOrganiser(context.Background(), reg)
	var mf *domain.MissingFieldError
	require.True(t, errors.As(err, &mf))
	assert.Equal(t, []string{"club_name", "description"}, mf.Fields)
	assert.Empty(t, f.organisers.profiles)
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.RegisterParticipant(context.Background(), validParticipant())
	require.NoError(t, err)

	token, user, err := f.svc.Login(context.Background(), "alice", "secret", domain.RoleParticipant)
	require.NoError(t, err)
	assert.Equal(t, "token-alice-participant", token)
	assert.Equal(t, "alice", user.Username)

	tests := []struct {
		name     string
		username string
		password string
		role     domain.Role
	}{
		{"wrong password", "alice", "nope", domain.RoleParticipant},
		{"wrong role", "alice", "secret", domain.RoleOrganiser},
		{"unknown user", "bob", "secret", domain.RoleParticipant},
		{"empty fields", "", "", domain.RoleParticipant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, user, err := f.svc.Login(context.Background(), tt.username, tt.password, tt.role)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
			assert.Empty(t, token)
			assert.Nil(t, user)
		})
	}
}

func TestAuthService_Login_StoreError(t *testing.T) {
	f := newAuthFixture()
	f.users.getErr = errors.New("db down")

	_, _, err := f.svc.Login(context.Background(), "alice", "secret", domain.RoleParticipant)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_TokenError(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.RegisterParticipant(context.Background(), validParticipant())
	require.NoError(t, err)
	f.tokens.err = errors.New("sign failed")

	_, _, err = f.svc.Login(context.Background(), "alice", "secret", domain.RoleParticipant)
	assert.Error(t, err)
}
