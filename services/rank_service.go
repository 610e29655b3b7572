package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/campuscup/intramurals/models"
	"github.com/campuscup/intramurals/repositories"
)

// rankDateLayout - календарная дата границы дня в локальной зоне
// сервера. Смена даты переносит текущий ранг в previous_rank, что даёт
// стабильный внутри дня сигнал движения для стрелок в таблице.
const rankDateLayout = "2006-01-02"

// RankService пересортировывает все сезонные записи по очкам (при
// равенстве - по победам) и проставляет ранги. Намеренно O(участников)
// на каждый подсчёт: один результат может переупорядочить всю таблицу.
type RankService interface {
	Recalculate(ctx context.Context, year int) ([]models.LeaderboardEntry, error)
	Leaderboard(ctx context.Context, year int) ([]models.LeaderboardEntry, error)
}

type rankService struct {
	teams  repositories.TeamSeasonRepository
	cache  LeaderboardCache
	logger *slog.Logger
	// переопределяется в тестах
	now func() time.Time
}

func NewRankService(teams repositories.TeamSeasonRepository, cache LeaderboardCache, logger *slog.Logger) RankService {
	return &rankService{teams: teams, cache: cache, logger: logger, now: time.Now}
}

func (s *rankService) Recalculate(ctx context.Context, year int) ([]models.LeaderboardEntry, error) {
	records, err := s.teams.ListByYear(ctx, nil, year)
	if err != nil {
		return nil, fmt.Errorf("rank: list season records: %w", err)
	}

	sortSeasonRecords(records)
	today := s.now().Format(rankDateLayout)

	entries := make([]models.LeaderboardEntry, 0, len(records))
	for i, rec := range records {
		rank := i + 1
		previous := rec.PreviousRank
		if rec.LastRankDate != today && rec.Rank > 0 {
			// Граница дня пройдена: вчерашний ранг становится опорным.
			previous = rec.Rank
		}

		// Кросс-записной транзакции не требуется: каждая запись
		// обновляется независимой атомарной командой.
		if err := s.teams.UpdateRank(ctx, nil, rec.ID, rank, previous, today); err != nil {
			return nil, fmt.Errorf("rank: update record %d: %w", rec.ID, err)
		}

		entries = append(entries, leaderboardEntry(rec, rank, previous))
	}

	if s.cache != nil {
		if err := s.cache.Store(ctx, year, entries); err != nil {
			s.logger.WarnContext(ctx, "rank: leaderboard cache store failed",
				slog.Int("year", year), slog.Any("error", err))
		}
	}
	return entries, nil
}

// Leaderboard отдаёт таблицу сезона: из кэша, а при промахе - из
// хранилища по сохранённым рангам, без записи.
func (s *rankService) Leaderboard(ctx context.Context, year int) ([]models.LeaderboardEntry, error) {
	if s.cache != nil {
		if entries, err := s.cache.Fetch(ctx, year); err == nil {
			return entries, nil
		}
	}

	records, err := s.teams.ListByYear(ctx, nil, year)
	if err != nil {
		return nil, fmt.Errorf("rank: list season records: %w", err)
	}
	sortSeasonRecords(records)

	entries := make([]models.LeaderboardEntry, 0, len(records))
	for i, rec := range records {
		entries = append(entries, leaderboardEntry(rec, i+1, rec.PreviousRank))
	}
	return entries, nil
}

// Сортировка - очки по убыванию, затем победы, стабильная в остальном.
func sortSeasonRecords(records []*models.TeamSeasonRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Points != records[j].Points {
			return records[i].Points > records[j].Points
		}
		return records[i].Wins > records[j].Wins
	})
}

func leaderboardEntry(rec *models.TeamSeasonRecord, rank, previous int) models.LeaderboardEntry {
	movement := 0
	if previous > 0 {
		movement = previous - rank
	}
	return models.LeaderboardEntry{
		Rank:     rank,
		Team:     rec.Team,
		Points:   rec.Points,
		Wins:     rec.Wins,
		Losses:   rec.Losses,
		Ties:     rec.Ties,
		Games:    rec.Games,
		Movement: movement,
	}
}
