package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/campuscup/intramurals/models"
)

var ErrRatingNotFound = errors.New("rating record not found")

type RatingRepository interface {
	GetBySportAndTeam(ctx context.Context, exec SQLExecutor, sportID int, team string) (*models.RatingRecord, error)
	// GetOrCreate заводит запись со стартовым рейтингом, если команда
	// ещё не играла в этом виде спорта.
	GetOrCreate(ctx context.Context, exec SQLExecutor, sportID int, team string) (*models.RatingRecord, error)
	UpdateValue(ctx context.Context, exec SQLExecutor, id int, rating float64) error
}

type postgresRatingRepository struct {
	db *sql.DB
}

func NewPostgresRatingRepository(db *sql.DB) RatingRepository {
	return &postgresRatingRepository{db: db}
}

func (r *postgresRatingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRatingRepository) GetBySportAndTeam(ctx context.Context, exec SQLExecutor, sportID int, team string) (*models.RatingRecord, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, sport_id, team, rating, updated_at
		FROM ratings
		WHERE sport_id = $1 AND team = $2`

	var rec models.RatingRecord
	err := executor.QueryRowContext(ctx, query, sportID, team).Scan(
		&rec.ID, &rec.SportID, &rec.Team, &rec.Rating, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *postgresRatingRepository) GetOrCreate(ctx context.Context, exec SQLExecutor, sportID int, team string) (*models.RatingRecord, error) {
	executor := r.getExecutor(exec)
	rec, err := r.GetBySportAndTeam(ctx, executor, sportID, team)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrRatingNotFound) {
		return nil, fmt.Errorf("failed to get rating for %q (sport %d): %w", team, sportID, err)
	}

	newRec := &models.RatingRecord{
		SportID:   sportID,
		Team:      team,
		Rating:    models.InitialRating,
		UpdatedAt: time.Now(),
	}
	query := `
		INSERT INTO ratings (sport_id, team, rating, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := executor.QueryRowContext(ctx, query,
		newRec.SportID, newRec.Team, newRec.Rating, newRec.UpdatedAt,
	).Scan(&newRec.ID); err != nil {
		return nil, fmt.Errorf("failed to create rating for %q (sport %d): %w", team, sportID, err)
	}
	return newRec, nil
}

func (r *postgresRatingRepository) UpdateValue(ctx context.Context, exec SQLExecutor, id int, rating float64) error {
	executor := r.getExecutor(exec)
	query := `UPDATE ratings SET rating = $1, updated_at = NOW() WHERE id = $2`

	result, err := executor.ExecContext(ctx, query, rating, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRatingNotFound)
}
