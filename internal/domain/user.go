package domain

import (
	"context"
	"errors"
	"time"
)

// ErrUserNotFound is returned when no user has the requested username.
var ErrUserNotFound = errors.New("user not found")

// Role is the account type chosen at registration and at login.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleOrganiser   Role = "organiser"
)

// ParseRole returns the Role for s, or false when s is not a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleParticipant, RoleOrganiser:
		return Role(s), true
	}
	return "", false
}

// User represents a registered account. Organisers use their club name as username.
// swagger:model User
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	College      string    `json:"college"`
	Email        string    `json:"email,omitempty"`
	Interests    []string  `json:"interests"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser returns a new User with the given fields and no credentials set.
func NewUser(username string, role Role, name, college, email string, interests []string, createdAt time.Time) *User {
	if interests == nil {
		interests = []string{}
	}
	return &User{
		Username:  username,
		Role:      role,
		Name:      name,
		College:   college,
		Email:     email,
		Interests: interests,
		CreatedAt: createdAt,
	}
}

// OrganiserProfile is the public branding of an organiser shown on event pages.
// swagger:model OrganiserProfile
type OrganiserProfile struct {
	Username        string `json:"username"`
	College         string `json:"college"`
	Description     string `json:"description"`
	DescriptionHTML string `json:"description_html,omitempty"`
	ProfilePicture  string `json:"profile_picture"`
}

// ParticipantRegistration holds the participant sign-up form.
type ParticipantRegistration struct {
	Name      string
	College   string
	Username  string
	Password  string
	Email     string
	Interests []string
}

// OrganiserRegistration holds the organiser sign-up form. ClubName becomes the username.
type OrganiserRegistration struct {
	College        string
	ClubName       string
	Description    string
	ProfilePicture string
	Password       string
	Email          string
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(username string, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated username and role.
type TokenVerifier interface {
	Verify(token string) (username string, role Role, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// OrganiserRepository stores organiser profiles.
type OrganiserRepository interface {
	// CreateWithUser inserts the organiser's user row and profile row in one transaction.
	CreateWithUser(ctx context.Context, user *User, profile *OrganiserProfile) error
	GetByUsername(ctx context.Context, username string) (*OrganiserProfile, error)
}

// AuthService covers registration and login.
type AuthService interface {
	RegisterParticipant(ctx context.Context, reg ParticipantRegistration) (*User, error)
	RegisterOrganiser(ctx context.Context, reg OrganiserRegistration) (*User, *OrganiserProfile, error)
	// Login returns ErrInvalidCredentials on any mismatch of username, password or role.
	Login(ctx context.Context, username, password string, role Role) (token string, user *User, err error)
}

// UserService exposes read access to accounts and organiser profiles.
type UserService interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetOrganiserProfile(ctx context.Context, username string) (*OrganiserProfile, error)
}
