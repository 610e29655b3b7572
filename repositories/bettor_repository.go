package repositories

import (
	"context"
	"database/sql"
)

type BettorRepository interface {
	// Credit начисляет игроку сезонные очки и угаданные прогнозы.
	// Upsert: первая выплата в сезоне создаёт запись.
	Credit(ctx context.Context, exec SQLExecutor, userID, year int, points float64, correct int) error
}

type postgresBettorRepository struct {
	db *sql.DB
}

func NewPostgresBettorRepository(db *sql.DB) BettorRepository {
	return &postgresBettorRepository{db: db}
}

func (r *postgresBettorRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresBettorRepository) Credit(ctx context.Context, exec SQLExecutor, userID, year int, points float64, correct int) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO bettors (user_id, year, points, correct_predictions, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, year) DO UPDATE SET
			points = bettors.points + EXCLUDED.points,
			correct_predictions = bettors.correct_predictions + EXCLUDED.correct_predictions,
			updated_at = NOW()`

	_, err := executor.ExecContext(ctx, query, userID, year, points, correct)
	return err
}
