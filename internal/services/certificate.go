package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventhub/internal/domain"
)

type certificateService struct {
	certRepo       domain.CertificateRepository
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	contextTimeout time.Duration
}

// NewCertificateService creates a CertificateService.
func NewCertificateService(certRepo domain.CertificateRepository, eventRepo domain.EventRepository, userRepo domain.UserRepository, timeout time.Duration) domain.CertificateService {
	return &certificateService{
		certRepo:       certRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		contextTimeout: timeout,
	}
}

func (s *certificateService) Issue(ctx context.Context, organiser string, eventID int64, participant, file string) (*domain.Certificate, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	participant = strings.TrimSpace(participant)
	file = strings.TrimSpace(file)
	if err := domain.RequireFields("participant", participant, "file", file); err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, organiser, eventID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, participant)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: participant %q", domain.ErrNotFound, participant)
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	if user.Role != domain.RoleParticipant {
		return nil, fmt.Errorf("%w: %q is not a participant", domain.ErrInvalidInput, participant)
	}

	cert := &domain.Certificate{
		EventID:     eventID,
		Participant: participant,
		File:        file,
		CreatedAt:   time.Now(),
	}
	if err := s.certRepo.Create(ctx, cert); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create certificate: %w", err)
	}
	return cert, nil
}

func (s *certificateService) ListMine(ctx context.Context, participant string) ([]*domain.Certificate, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	certs, err := s.certRepo.ListByParticipant(ctx, participant)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	if certs == nil {
		certs = []*domain.Certificate{}
	}
	return certs, nil
}

func (s *certificateService) ListForEvent(ctx context.Context, organiser string, eventID int64) ([]*domain.Certificate, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireOwner(ctx, organiser, eventID); err != nil {
		return nil, err
	}
	certs, err := s.certRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	if certs == nil {
		certs = []*domain.Certificate{}
	}
	return certs, nil
}

func (s *certificateService) requireOwner(ctx context.Context, organiser string, eventID int64) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.Organiser != organiser {
		return domain.ErrForbidden
	}
	return nil
}
