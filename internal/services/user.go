package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventhub/internal/domain"
)

type userService struct {
	userRepo       domain.UserRepository
	organiserRepo  domain.OrganiserRepository
	renderer       domain.DescriptionRenderer
	contextTimeout time.Duration
}

// NewUserService creates a UserService. renderer may be nil, in which case profiles carry no HTML description.
func NewUserService(userRepo domain.UserRepository, organiserRepo domain.OrganiserRepository, renderer domain.DescriptionRenderer, timeout time.Duration) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		organiserRepo:  organiserRepo,
		renderer:       renderer,
		contextTimeout: timeout,
	}
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) GetOrganiserProfile(ctx context.Context, username string) (*domain.OrganiserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := s.organiserRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get organiser: %w", err)
	}
	if err := renderProfile(s.renderer, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func renderProfile(r domain.DescriptionRenderer, p *domain.OrganiserProfile) error {
	if r == nil || p == nil {
		return nil
	}
	html, err := r.Render(p.Description)
	if err != nil {
		return fmt.Errorf("render organiser description: %w", err)
	}
	p.DescriptionHTML = html
	return nil
}
