package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"eventhub/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	userRepo       domain.UserRepository
	organiserRepo  domain.OrganiserRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	tokenExpiry    time.Duration
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewAuthService creates an AuthService. emailService may be nil, in which case no welcome email is sent.
func NewAuthService(
	userRepo domain.UserRepository,
	organiserRepo domain.OrganiserRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	tokenExpiry time.Duration,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AuthService {
	return &authService{
		userRepo:       userRepo,
		organiserRepo:  organiserRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		tokenExpiry:    tokenExpiry,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *authService) RegisterParticipant(ctx context.Context, reg domain.ParticipantRegistration) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	username := strings.TrimSpace(reg.Username)
	if err := domain.RequireFields(
		"name", reg.Name,
		"college", reg.College,
		"username", username,
		"password", reg.Password,
	); err != nil {
		return nil, err
	}
	email, err := normalizeEmail(reg.Email)
	if err != nil {
		return nil, err
	}
	interests, err := validateTopics(reg.Interests)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUsernameFree(ctx, username); err != nil {
		return nil, err
	}

	user := domain.NewUser(username, domain.RoleParticipant, strings.TrimSpace(reg.Name), strings.TrimSpace(reg.College), email, interests, time.Now())
	if err := s.setPassword(user, reg.Password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.sendWelcome(ctx, user)
	return user, nil
}

func (s *authService) RegisterOrganiser(ctx context.Context, reg domain.OrganiserRegistration) (*domain.User, *domain.OrganiserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	club := strings.TrimSpace(reg.ClubName)
	if err := domain.RequireFields(
		"college", reg.College,
		"club_name", club,
		"description", reg.Description,
		"password", reg.Password,
	); err != nil {
		return nil, nil, err
	}
	email, err := normalizeEmail(reg.Email)
	if err != nil {
		return nil, nil, err
	}
	if err := s.ensureUsernameFree(ctx, club); err != nil {
		return nil, nil, err
	}

	college := strings.TrimSpace(reg.College)
	user := domain.NewUser(club, domain.RoleOrganiser, club, college, email, nil, time.Now())
	if err := s.setPassword(user, reg.Password); err != nil {
		return nil, nil, err
	}
	profile := &domain.OrganiserProfile{
		Username:       club,
		College:        college,
		Description:    strings.TrimSpace(reg.Description),
		ProfilePicture: strings.TrimSpace(reg.ProfilePicture),
	}
	if err := s.organiserRepo.CreateWithUser(ctx, user, profile); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("failed to create organiser: %w", err)
	}

	s.sendWelcome(ctx, user)
	return user, profile, nil
}

func (s *authService) Login(ctx context.Context, username, password string, role domain.Role) (string, *domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if user.Role != role {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenIssuer.Issue(user.Username, user.Role, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}

func (s *authService) ensureUsernameFree(ctx context.Context, username string) error {
	exists, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return domain.ErrDuplicateUsername
	}
	return nil
}

func (s *authService) setPassword(user *domain.User, password string) error {
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Salt = salt
	user.PasswordHash = hash
	return nil
}

// sendWelcome never fails the registration; delivery problems are only logged.
func (s *authService) sendWelcome(ctx context.Context, user *domain.User) {
	if s.emailService == nil || user.Email == "" {
		return
	}
	data := &domain.WelcomeMessageEmailData{
		Email:    user.Email,
		Name:     user.Name,
		Username: user.Username,
		Role:     user.Role,
	}
	if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "welcome email failed", "username", user.Username, "error", err)
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", nil
	}
	if !emailRegexp.MatchString(email) {
		return "", fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	return email, nil
}

// validateTopics trims and dedupes topics, rejecting anything outside the vocabulary.
func validateTopics(topics []string) ([]string, error) {
	out := make([]string, 0, len(topics))
	seen := make(map[string]bool, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		if !domain.IsKnownTopic(t) {
			return nil, fmt.Errorf("%w: unknown topic %q", domain.ErrInvalidInput, t)
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}
