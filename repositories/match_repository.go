package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/campuscup/intramurals/models"
	"github.com/campuscup/intramurals/scoring"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	// ErrMatchAlreadySettled возвращается из SetResult, если страж
	// winner IS NULL не пропустил запись: матч уже подсчитан.
	ErrMatchAlreadySettled = errors.New("match already settled")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	// SetResult записывает победителя, счёт и флаги неявок одной
	// охраняемой командой: страж WHERE winner IS NULL делает пару
	// "проверить и записать" атомарной и закрывает гонку двух
	// конкурирующих подсчётов одного матча.
	SetResult(ctx context.Context, exec SQLExecutor, id int, winner string, homeScore, awayScore int, homeForfeit, awayForfeit bool) error
	// SetBracketSide заполняет одну сторону нижестоящего матча сетки
	// командой-победителем и её посевом.
	SetBracketSide(ctx context.Context, exec SQLExecutor, id int, homeSide bool, team string, seed *int) error
	UpdateOdds(ctx context.Context, exec SQLExecutor, id int, odds scoring.Odds) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches
			(year, sport_id, type, home_team, away_team, home_seed, away_seed,
			 next_match_id, bracket_slot, home_odds, away_odds, draw_odds, default_odds, match_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at`

	return executor.QueryRowContext(ctx, query,
		match.Year, match.SportID, match.Type, match.HomeTeam, match.AwayTeam,
		match.HomeSeed, match.AwaySeed, match.NextMatchID, match.BracketSlot,
		match.HomeOdds, match.AwayOdds, match.DrawOdds, match.DefaultOdds,
		match.MatchTime,
	).Scan(&match.ID, &match.CreatedAt)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, year, sport_id, type, home_team, away_team, home_seed, away_seed,
		       home_score, away_score, home_forfeit, away_forfeit, winner,
		       next_match_id, bracket_slot, home_odds, away_odds, draw_odds, default_odds,
		       match_time, created_at
		FROM matches
		WHERE id = $1`

	match := &models.Match{}
	err := executor.QueryRowContext(ctx, query, id).Scan(
		&match.ID, &match.Year, &match.SportID, &match.Type,
		&match.HomeTeam, &match.AwayTeam, &match.HomeSeed, &match.AwaySeed,
		&match.HomeScore, &match.AwayScore, &match.HomeForfeit, &match.AwayForfeit,
		&match.Winner, &match.NextMatchID, &match.BracketSlot,
		&match.HomeOdds, &match.AwayOdds, &match.DrawOdds, &match.DefaultOdds,
		&match.MatchTime, &match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) SetResult(ctx context.Context, exec SQLExecutor, id int, winner string, homeScore, awayScore int, homeForfeit, awayForfeit bool) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches
		SET winner = $1, home_score = $2, away_score = $3, home_forfeit = $4, away_forfeit = $5
		WHERE id = $6 AND winner IS NULL`

	result, err := executor.ExecContext(ctx, query, winner, homeScore, awayScore, homeForfeit, awayForfeit, id)
	if err != nil {
		return err
	}
	// Существование матча проверено до записи, поэтому ноль строк
	// здесь означает именно сработавший страж.
	return checkAffectedRows(result, ErrMatchAlreadySettled)
}

func (r *postgresMatchRepository) SetBracketSide(ctx context.Context, exec SQLExecutor, id int, homeSide bool, team string, seed *int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE matches SET away_team = $1, away_seed = $2 WHERE id = $3`
	if homeSide {
		query = `UPDATE matches SET home_team = $1, home_seed = $2 WHERE id = $3`
	}

	result, err := executor.ExecContext(ctx, query, team, seed, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateOdds(ctx context.Context, exec SQLExecutor, id int, odds scoring.Odds) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches
		SET home_odds = $1, away_odds = $2, draw_odds = $3, default_odds = $4
		WHERE id = $5`

	result, err := executor.ExecContext(ctx, query, odds.Home, odds.Away, odds.Draw, odds.Default, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
