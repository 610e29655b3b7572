package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/campuscup/intramurals/models"
)

var (
	ErrWagerNotFound = errors.New("wager not found")
	// ErrWagerAlreadySettled возвращается из SetResult, если нога уже
	// была рассчитана: страж won IS NULL не пропустил запись.
	ErrWagerAlreadySettled = errors.New("wager already settled")
)

type WagerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, wager *models.Wager) error
	// ListPendingByMatch возвращает все нерассчитанные ноги,
	// ссылающиеся на матч, независимо от экспресса-владельца.
	ListPendingByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.Wager, error)
	// SetResult помечает ногу рассчитанной. WHERE won IS NULL делает
	// запись идемпотентной: повторный расчёт той же ноги не пройдёт.
	SetResult(ctx context.Context, exec SQLExecutor, id int, won bool) error
}

type postgresWagerRepository struct {
	db *sql.DB
}

func NewPostgresWagerRepository(db *sql.DB) WagerRepository {
	return &postgresWagerRepository{db: db}
}

func (r *postgresWagerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresWagerRepository) Create(ctx context.Context, exec SQLExecutor, wager *models.Wager) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO wagers (parlay_id, owner_id, year, match_id, option, odds)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return executor.QueryRowContext(ctx, query,
		wager.ParlayID, wager.OwnerID, wager.Year, wager.MatchID, wager.Option, wager.Odds,
	).Scan(&wager.ID, &wager.CreatedAt)
}

func (r *postgresWagerRepository) ListPendingByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.Wager, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, parlay_id, owner_id, year, match_id, option, odds, won, created_at
		FROM wagers
		WHERE match_id = $1 AND won IS NULL
		ORDER BY id ASC`

	rows, err := executor.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wagers := make([]*models.Wager, 0)
	for rows.Next() {
		var w models.Wager
		if err := rows.Scan(
			&w.ID, &w.ParlayID, &w.OwnerID, &w.Year, &w.MatchID,
			&w.Option, &w.Odds, &w.Won, &w.CreatedAt,
		); err != nil {
			return nil, err
		}
		wagers = append(wagers, &w)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return wagers, nil
}

func (r *postgresWagerRepository) SetResult(ctx context.Context, exec SQLExecutor, id int, won bool) error {
	executor := r.getExecutor(exec)
	query := `UPDATE wagers SET won = $1 WHERE id = $2 AND won IS NULL`

	result, err := executor.ExecContext(ctx, query, won, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrWagerAlreadySettled)
}
