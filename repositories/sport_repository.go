package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/campuscup/intramurals/models"
)

var ErrSportNotFound = errors.New("sport not found")

type SportRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Sport, error)
}

type postgresSportRepository struct {
	db *sql.DB
}

func NewPostgresSportRepository(db *sql.DB) SportRepository {
	return &postgresSportRepository{db: db}
}

func (r *postgresSportRepository) GetBySlug(ctx context.Context, slug string) (*models.Sport, error) {
	query := `
		SELECT id, slug, name, points_for_win, rating_k
		FROM sports
		WHERE slug = $1`

	var s models.Sport
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&s.ID, &s.Slug, &s.Name, &s.PointsForWin, &s.RatingK,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}
	return &s, nil
}
