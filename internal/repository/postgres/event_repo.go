package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventhub/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `id, organiser, name, date, time, venue, poster, description, fees, reg_link, level, topics, activity_points, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(s rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var poster, desc, topics sql.NullString
	var fees, level string
	var points int
	if err := s.Scan(
		&e.ID, &e.Organiser, &e.Name, &e.Date, &e.Time, &e.Venue, &poster, &desc,
		&fees, &e.RegistrationLink, &level, &topics, &points, &e.CreatedAt,
	); err != nil {
		return nil, err
	}
	e.Poster = poster.String
	e.Description = desc.String
	e.Fees = domain.FeeCategory(fees)
	e.Level = domain.Level(level)
	e.Topics = domain.ParseTopics(topics.String)
	e.ActivityPoints = domain.PointsTier(points)
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (organiser, name, date, time, venue, poster, description, fees, reg_link, level, topics, activity_points, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Organiser, e.Name, e.Date, e.Time, e.Venue, e.Poster, e.Description,
		string(e.Fees), e.RegistrationLink, string(e.Level), domain.JoinTopics(e.Topics), int(e.ActivityPoints), e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		if hasPQCode(err, pqForeignKeyViolation) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListByOrganiser(ctx context.Context, organiser string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE organiser = $1 ORDER BY id`
	return r.list(ctx, query, organiser)
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY id`
	return r.list(ctx, query)
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
