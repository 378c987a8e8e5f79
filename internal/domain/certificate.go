package domain

import (
	"context"
	"time"
)

// Certificate links a participant to a certificate file for an event.
// swagger:model Certificate
type Certificate struct {
	EventID     int64     `json:"event_id"`
	Participant string    `json:"participant"`
	File        string    `json:"file"`
	CreatedAt   time.Time `json:"created_at"`
}

// CertificateRepository defines storage for certificates.
type CertificateRepository interface {
	Create(ctx context.Context, cert *Certificate) error
	ListByParticipant(ctx context.Context, participant string) ([]*Certificate, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*Certificate, error)
}

// CertificateService issues and lists certificates.
type CertificateService interface {
	// Issue attaches a certificate to a participant. Only the event's organiser may issue.
	Issue(ctx context.Context, organiser string, eventID int64, participant, file string) (*Certificate, error)
	ListMine(ctx context.Context, participant string) ([]*Certificate, error)
	ListForEvent(ctx context.Context, organiser string, eventID int64) ([]*Certificate, error)
}
