package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/campuscup/intramurals/models"
)

var ErrTeamSeasonNotFound = errors.New("team season record not found")

type TeamSeasonRepository interface {
	Create(ctx context.Context, exec SQLExecutor, record *models.TeamSeasonRecord) error
	GetByYearAndTeam(ctx context.Context, exec SQLExecutor, year int, team string) (*models.TeamSeasonRecord, error)
	GetOrCreate(ctx context.Context, exec SQLExecutor, year int, team string) (*models.TeamSeasonRecord, error)
	// Update перезаписывает аддитивные счётчики записи.
	Update(ctx context.Context, exec SQLExecutor, record *models.TeamSeasonRecord) error
	// UpdateRank перезаписывает только поля рангов одной командой,
	// атомарно относительно записи.
	UpdateRank(ctx context.Context, exec SQLExecutor, id int, rank, previousRank int, lastRankDate string) error
	ListByYear(ctx context.Context, exec SQLExecutor, year int) ([]*models.TeamSeasonRecord, error)
}

type postgresTeamSeasonRepository struct {
	db *sql.DB
}

func NewPostgresTeamSeasonRepository(db *sql.DB) TeamSeasonRepository {
	return &postgresTeamSeasonRepository{db: db}
}

func (r *postgresTeamSeasonRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamSeasonRepository) Create(ctx context.Context, exec SQLExecutor, record *models.TeamSeasonRecord) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO team_seasons
			(year, team, games, wins, losses, ties, forfeits, points,
			 rank, previous_rank, last_rank_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now()
	}
	return executor.QueryRowContext(ctx, query,
		record.Year, record.Team, record.Games, record.Wins, record.Losses,
		record.Ties, record.Forfeits, record.Points,
		record.Rank, record.PreviousRank, record.LastRankDate, record.UpdatedAt,
	).Scan(&record.ID)
}

func (r *postgresTeamSeasonRepository) scanRecord(rowScanner interface{ Scan(...interface{}) error }) (*models.TeamSeasonRecord, error) {
	var rec models.TeamSeasonRecord
	err := rowScanner.Scan(
		&rec.ID, &rec.Year, &rec.Team, &rec.Games, &rec.Wins, &rec.Losses,
		&rec.Ties, &rec.Forfeits, &rec.Points,
		&rec.Rank, &rec.PreviousRank, &rec.LastRankDate, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamSeasonNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *postgresTeamSeasonRepository) GetByYearAndTeam(ctx context.Context, exec SQLExecutor, year int, team string) (*models.TeamSeasonRecord, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, year, team, games, wins, losses, ties, forfeits, points,
		       rank, previous_rank, last_rank_date, updated_at
		FROM team_seasons
		WHERE year = $1 AND team = $2`
	row := executor.QueryRowContext(ctx, query, year, team)
	return r.scanRecord(row)
}

func (r *postgresTeamSeasonRepository) GetOrCreate(ctx context.Context, exec SQLExecutor, year int, team string) (*models.TeamSeasonRecord, error) {
	executor := r.getExecutor(exec)
	record, err := r.GetByYearAndTeam(ctx, executor, year, team)
	if err != nil {
		if errors.Is(err, ErrTeamSeasonNotFound) {
			newRecord := &models.TeamSeasonRecord{
				Year:      year,
				Team:      team,
				UpdatedAt: time.Now(),
			}
			if createErr := r.Create(ctx, executor, newRecord); createErr != nil {
				return nil, fmt.Errorf("failed to create season record for %q (%d): %w", team, year, createErr)
			}
			return newRecord, nil
		}
		return nil, fmt.Errorf("failed to get season record for %q (%d): %w", team, year, err)
	}
	return record, nil
}

func (r *postgresTeamSeasonRepository) Update(ctx context.Context, exec SQLExecutor, record *models.TeamSeasonRecord) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE team_seasons SET
			games = $1, wins = $2, losses = $3, ties = $4, forfeits = $5,
			points = $6, updated_at = NOW()
		WHERE id = $7`

	result, err := executor.ExecContext(ctx, query,
		record.Games, record.Wins, record.Losses, record.Ties, record.Forfeits,
		record.Points, record.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamSeasonNotFound)
}

func (r *postgresTeamSeasonRepository) UpdateRank(ctx context.Context, exec SQLExecutor, id int, rank, previousRank int, lastRankDate string) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE team_seasons SET rank = $1, previous_rank = $2, last_rank_date = $3
		WHERE id = $4`

	result, err := executor.ExecContext(ctx, query, rank, previousRank, lastRankDate, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamSeasonNotFound)
}

func (r *postgresTeamSeasonRepository) ListByYear(ctx context.Context, exec SQLExecutor, year int) ([]*models.TeamSeasonRecord, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, year, team, games, wins, losses, ties, forfeits, points,
		       rank, previous_rank, last_rank_date, updated_at
		FROM team_seasons
		WHERE year = $1
		ORDER BY points DESC, wins DESC, team ASC`

	rows, err := executor.QueryContext(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*models.TeamSeasonRecord, 0)
	for rows.Next() {
		rec, errScan := r.scanRecord(rows)
		if errScan != nil {
			return nil, errScan
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
