package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/campuscup/intramurals/models"
)

var ErrParlayNotFound = errors.New("parlay not found")

type ParlayRepository interface {
	Create(ctx context.Context, exec SQLExecutor, parlay *models.Parlay) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Parlay, error)
	// UpdateSettlement перезаписывает счётчики расчёта и итог.
	// Вызывается только внутри транзакции ноги: чтение и запись
	// счётчиков в одной атомарной единице не дают двум ногам
	// задвоить current_cashed или выплату.
	UpdateSettlement(ctx context.Context, exec SQLExecutor, parlay *models.Parlay) error
}

type postgresParlayRepository struct {
	db *sql.DB
}

func NewPostgresParlayRepository(db *sql.DB) ParlayRepository {
	return &postgresParlayRepository{db: db}
}

func (r *postgresParlayRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresParlayRepository) Create(ctx context.Context, exec SQLExecutor, parlay *models.Parlay) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO parlays (owner_id, year, stake, total_odds, leg_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return executor.QueryRowContext(ctx, query,
		parlay.OwnerID, parlay.Year, parlay.Stake, parlay.TotalOdds, parlay.LegCount,
	).Scan(&parlay.ID, &parlay.CreatedAt)
}

func (r *postgresParlayRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Parlay, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, owner_id, year, stake, total_odds, leg_count,
		       current_cashed, lost_legs, settled, won, payout, created_at
		FROM parlays
		WHERE id = $1`

	var p models.Parlay
	err := executor.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.OwnerID, &p.Year, &p.Stake, &p.TotalOdds, &p.LegCount,
		&p.CurrentCashed, &p.LostLegs, &p.Settled, &p.Won, &p.Payout, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParlayNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresParlayRepository) UpdateSettlement(ctx context.Context, exec SQLExecutor, parlay *models.Parlay) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE parlays SET
			current_cashed = $1, lost_legs = $2, settled = $3, won = $4, payout = $5
		WHERE id = $6`

	result, err := executor.ExecContext(ctx, query,
		parlay.CurrentCashed, parlay.LostLegs, parlay.Settled, parlay.Won, parlay.Payout,
		parlay.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrParlayNotFound)
}
