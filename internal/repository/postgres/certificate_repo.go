package postgres

import (
	"context"
	"database/sql"

	"eventhub/internal/domain"
)

type certificateRepository struct {
	DB *sql.DB
}

func NewCertificateRepository(db *sql.DB) domain.CertificateRepository {
	return &certificateRepository{
		DB: db,
	}
}

func (r *certificateRepository) Create(ctx context.Context, c *domain.Certificate) error {
	query := `
		INSERT INTO certificates (event_id, participant, file, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, c.EventID, c.Participant, c.File, c.CreatedAt)
	if err != nil {
		if hasPQCode(err, pqForeignKeyViolation) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *certificateRepository) ListByParticipant(ctx context.Context, participant string) ([]*domain.Certificate, error) {
	query := `
		SELECT event_id, participant, file, created_at
		FROM certificates
		WHERE participant = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, participant)
}

func (r *certificateRepository) ListByEvent(ctx context.Context, eventID int64) ([]*domain.Certificate, error) {
	query := `
		SELECT event_id, participant, file, created_at
		FROM certificates
		WHERE event_id = $1
		ORDER BY participant
	`
	return r.list(ctx, query, eventID)
}

func (r *certificateRepository) list(ctx context.Context, query string, arg any) ([]*domain.Certificate, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var certs []*domain.Certificate
	for rows.Next() {
		c := &domain.Certificate{}
		if err := rows.Scan(&c.EventID, &c.Participant, &c.File, &c.CreatedAt); err != nil {
			return nil, err
		}
		certs = append(certs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if certs == nil {
		certs = []*domain.Certificate{}
	}
	return certs, nil
}
