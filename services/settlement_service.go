package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/campuscup/intramurals/db"
	"github.com/campuscup/intramurals/models"
	"github.com/campuscup/intramurals/repositories"
	"github.com/campuscup/intramurals/scoring"
)

// ScoreSubmission - провалидированная заявка арбитра на подсчёт.
// Указатели различают "поле не передано" и нулевое значение.
type ScoreSubmission struct {
	Year        int    `json:"year"`
	Sport       string `json:"sport"`
	HomeScore   *int   `json:"home_score"`
	AwayScore   *int   `json:"away_score"`
	HomeForfeit *bool  `json:"home_forfeit"`
	AwayForfeit *bool  `json:"away_forfeit"`
}

// SettlementResult - подтверждение успешного подсчёта.
type SettlementResult struct {
	MatchID       int    `json:"match_id"`
	Winner        string `json:"winner"`
	Outcome       string `json:"outcome"`
	WagersSettled int    `json:"wagers_settled"`
	ParlaysClosed int    `json:"parlays_closed"`
}

// SettlementService - координатор подсчёта матча. Стадии идут в
// фиксированном порядке: исход -> [победитель + очки] одной
// транзакцией -> рейтинги (best-effort) -> сетка (best-effort) ->
// ранги -> расчёт ставок -> рассылка (best-effort). Весь фан-аут
// известен на этапе проектирования, это не конвейер с плагинами.
type SettlementService interface {
	SettleMatch(ctx context.Context, matchID int, sub ScoreSubmission) (*SettlementResult, error)
}

type settlementService struct {
	tx      TxRunner
	sports  repositories.SportRepository
	matches repositories.MatchRepository
	ledger  StandingsLedger
	ratings RatingService
	bracket BracketService
	ranks   RankService
	wagers  WagerService
	hub     Broadcaster
	logger  *slog.Logger
}

func NewSettlementService(
	tx TxRunner,
	sports repositories.SportRepository,
	matches repositories.MatchRepository,
	ledger StandingsLedger,
	ratings RatingService,
	bracket BracketService,
	ranks RankService,
	wagers WagerService,
	hub Broadcaster,
	logger *slog.Logger,
) SettlementService {
	return &settlementService{
		tx:      tx,
		sports:  sports,
		matches: matches,
		ledger:  ledger,
		ratings: ratings,
		bracket: bracket,
		ranks:   ranks,
		wagers:  wagers,
		hub:     hub,
		logger:  logger,
	}
}

func (s *settlementService) SettleMatch(ctx context.Context, matchID int, sub ScoreSubmission) (*SettlementResult, error) {
	homeScore, awayScore, homeForfeit, awayForfeit, err := validateSubmission(sub)
	if err != nil {
		return nil, err
	}

	sport, err := s.sports.GetBySlug(ctx, sub.Sport)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrSportNotFound, sub.Sport)
		}
		return nil, fmt.Errorf("resolve sport %q: %w", sub.Sport, err)
	}

	match, err := s.matches.GetByID(ctx, nil, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrMatchNotFound, matchID)
		}
		return nil, fmt.Errorf("load match %d: %w", matchID, err)
	}
	if match.Settled() {
		return nil, fmt.Errorf("%w: %d", ErrMatchAlreadyScored, matchID)
	}
	if match.Type == models.MatchTypeBye {
		return nil, fmt.Errorf("%w: %d", ErrByeNotScorable, matchID)
	}

	outcome := scoring.Resolve(homeScore, awayScore, homeForfeit, awayForfeit)
	winner := winnerLabel(outcome, match)

	// Критическая стадия: запись победителя и проведение очков -
	// одна атомарная единица. Страж winner IS NULL внутри SetResult
	// отбивает конкурирующий подсчёт уже после нашей проверки выше.
	err = s.tx.RunSerializable(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matches.SetResult(ctx, exec, matchID, winner, homeScore, awayScore, homeForfeit, awayForfeit); err != nil {
			return err
		}
		return s.ledger.Apply(ctx, exec, match, outcome, sport.PointsForWin)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrMatchAlreadySettled) {
			return nil, fmt.Errorf("%w: %d", ErrMatchAlreadyScored, matchID)
		}
		if errors.Is(err, db.ErrTxRetriesExceeded) {
			return nil, fmt.Errorf("%w: standings", ErrTxConflict)
		}
		return nil, fmt.Errorf("settle match %d: %w", matchID, err)
	}

	// Best-effort стадии: сбой логируется и не меняет итог операции -
	// победитель и очки уже зафиксированы.
	if err := s.ratings.ApplyOutcome(ctx, match, outcome, sport); err != nil {
		s.logger.ErrorContext(ctx, "settlement: rating update failed",
			slog.Int("match_id", matchID), slog.Any("error", err))
	}
	if err := s.bracket.PropagateWinner(ctx, match, outcome); err != nil {
		s.logger.ErrorContext(ctx, "settlement: bracket propagation failed",
			slog.Int("match_id", matchID), slog.Any("error", err))
	}

	entries, err := s.ranks.Recalculate(ctx, match.Year)
	if err != nil {
		if errors.Is(err, db.ErrTxRetriesExceeded) {
			return nil, fmt.Errorf("%w: ranks", ErrTxConflict)
		}
		return nil, fmt.Errorf("recalculate ranks for %d: %w", match.Year, err)
	}

	legs, closed, err := s.wagers.SettleWagersForMatch(ctx, matchID, winner)
	if err != nil {
		if errors.Is(err, db.ErrTxRetriesExceeded) {
			return nil, fmt.Errorf("%w: wagers", ErrTxConflict)
		}
		return nil, fmt.Errorf("settle wagers for match %d: %w", matchID, err)
	}

	if s.hub != nil {
		room := fmt.Sprintf("season_%d", match.Year)
		s.hub.BroadcastToRoom(room, map[string]interface{}{
			"type": "MATCH_SETTLED",
			"payload": map[string]interface{}{
				"match_id":    matchID,
				"winner":      winner,
				"outcome":     outcome.String(),
				"leaderboard": entries,
			},
		})
	}

	return &SettlementResult{
		MatchID:       matchID,
		Winner:        winner,
		Outcome:       outcome.String(),
		WagersSettled: legs,
		ParlaysClosed: closed,
	}, nil
}

// validateSubmission проверяет типизацию сырых полей до каких-либо
// записей. Счёт обязателен, если сторона не сдалась неявкой; при
// неявке отсутствующий счёт считается нулевым.
func validateSubmission(sub ScoreSubmission) (homeScore, awayScore int, homeForfeit, awayForfeit bool, err error) {
	if sub.HomeForfeit == nil || sub.AwayForfeit == nil {
		return 0, 0, false, false, ErrForfeitRequired
	}
	homeForfeit = *sub.HomeForfeit
	awayForfeit = *sub.AwayForfeit

	if sub.HomeScore == nil && !homeForfeit {
		return 0, 0, false, false, fmt.Errorf("%w: home score", ErrScoreRequired)
	}
	if sub.AwayScore == nil && !awayForfeit {
		return 0, 0, false, false, fmt.Errorf("%w: away score", ErrScoreRequired)
	}
	if sub.HomeScore != nil {
		homeScore = *sub.HomeScore
	}
	if sub.AwayScore != nil {
		awayScore = *sub.AwayScore
	}
	if homeScore < 0 || awayScore < 0 {
		return 0, 0, false, false, ErrScoreNegative
	}
	return homeScore, awayScore, homeForfeit, awayForfeit, nil
}

// winnerLabel переводит исход в строку поля winner: имя команды либо
// синтетические Draw / Default.
func winnerLabel(o scoring.Outcome, match *models.Match) string {
	switch o.Kind {
	case scoring.OutcomeDraw:
		return models.WinnerDraw
	case scoring.OutcomeDoubleForfeit:
		return models.WinnerDefault
	default:
		if o.Winner == scoring.SideAway {
			return match.AwayTeam
		}
		return match.HomeTeam
	}
}
