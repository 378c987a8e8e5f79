package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventhub/internal/domain"
)

type organiserRepository struct {
	DB *sql.DB
}

// NewOrganiserRepository returns a domain.OrganiserRepository implemented with Postgres.
func NewOrganiserRepository(db *sql.DB) domain.OrganiserRepository {
	return &organiserRepository{DB: db}
}

func (r *organiserRepository) CreateWithUser(ctx context.Context, u *domain.User, p *domain.OrganiserProfile) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertUser(ctx, tx, u); err != nil {
		return err
	}
	query := `
		INSERT INTO organisers (username, college, description, profile_pic)
		VALUES ($1, $2, $3, $4)
	`
	_, err = tx.ExecContext(ctx, query, p.Username, p.College, p.Description,
		sql.NullString{String: p.ProfilePicture, Valid: p.ProfilePicture != ""})
	if err != nil {
		if hasPQCode(err, pqUniqueViolation) {
			return domain.ErrDuplicateUsername
		}
		return err
	}
	return tx.Commit()
}

func (r *organiserRepository) GetByUsername(ctx context.Context, username string) (*domain.OrganiserProfile, error) {
	query := `
		SELECT username, college, description, profile_pic
		FROM organisers
		WHERE username = $1
	`
	p := &domain.OrganiserProfile{}
	var pic sql.NullString
	err := r.DB.QueryRowContext(ctx, query, username).Scan(&p.Username, &p.College, &p.Description, &pic)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.ProfilePicture = pic.String
	return p, nil
}
