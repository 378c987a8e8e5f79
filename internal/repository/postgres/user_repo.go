package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventhub/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

const insertUserQuery = `
	INSERT INTO users (username, password_hash, salt, role, name, college, email, interests, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertUser(ctx context.Context, db execer, u *domain.User) error {
	_, err := db.ExecContext(ctx, insertUserQuery,
		u.Username, u.PasswordHash, u.Salt, string(u.Role), u.Name, u.College,
		sql.NullString{String: u.Email, Valid: u.Email != ""},
		domain.JoinTopics(u.Interests), u.CreatedAt,
	)
	if err != nil {
		if hasPQCode(err, pqUniqueViolation) {
			return domain.ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	return insertUser(ctx, r.DB, u)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT username, password_hash, salt, role, name, college, email, interests, created_at
		FROM users
		WHERE username = $1
	`
	u := &domain.User{}
	var role string
	var email sql.NullString
	var interests string
	err := r.DB.QueryRowContext(ctx, query, username).Scan(
		&u.Username, &u.PasswordHash, &u.Salt, &role, &u.Name, &u.College, &email, &interests, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	u.Role = domain.Role(role)
	u.Email = email.String
	u.Interests = domain.ParseTopics(interests)
	return u, nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
