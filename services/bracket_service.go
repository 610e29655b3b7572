package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campuscup/intramurals/models"
	"github.com/campuscup/intramurals/repositories"
	"github.com/campuscup/intramurals/scoring"
)

// BracketService продвигает победителя матча плей-офф в нижестоящий
// слот сетки и, когда пара нижестоящего матча сформирована, считает
// для неё коэффициенты. Стадия best-effort относительно подсчёта.
type BracketService interface {
	PropagateWinner(ctx context.Context, match *models.Match, outcome scoring.Outcome) error
}

type bracketService struct {
	tx      TxRunner
	matches repositories.MatchRepository
	ratings repositories.RatingRepository
	logger  *slog.Logger
}

func NewBracketService(tx TxRunner, matches repositories.MatchRepository, ratings repositories.RatingRepository, logger *slog.Logger) BracketService {
	return &bracketService{tx: tx, matches: matches, ratings: ratings, logger: logger}
}

func (s *bracketService) PropagateWinner(ctx context.Context, match *models.Match, outcome scoring.Outcome) error {
	// Продвижение только для раундов плей-офф: финалу некуда двигаться,
	// bye не играется, а ничья и Default не дают команду-победителя.
	if match.Type != models.MatchTypePlayoff || !outcome.Definitive() {
		return nil
	}
	if match.NextMatchID == nil || match.BracketSlot == nil {
		return fmt.Errorf("bracket: playoff match %d has no next match linkage", match.ID)
	}

	winnerTeam := match.HomeTeam
	winnerSeed := match.HomeSeed
	if outcome.Winner == scoring.SideAway {
		winnerTeam = match.AwayTeam
		winnerSeed = match.AwaySeed
	}

	// Чётность слота выбирает сторону нижестоящего матча:
	// нечётный слот заполняет гостевую, чётный - домашнюю.
	homeSide := *match.BracketSlot%2 == 0

	return s.tx.RunSerializable(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matches.SetBracketSide(ctx, exec, *match.NextMatchID, homeSide, winnerTeam, winnerSeed); err != nil {
			return fmt.Errorf("bracket: advance winner to match %d: %w", *match.NextMatchID, err)
		}

		next, err := s.matches.GetByID(ctx, exec, *match.NextMatchID)
		if err != nil {
			return fmt.Errorf("bracket: reload match %d: %w", *match.NextMatchID, err)
		}
		if next.HomeTeam == models.TeamTBD || next.AwayTeam == models.TeamTBD {
			return nil // пара ещё не сформирована
		}

		// Пара известна - считаем коэффициенты и дописываем их тем же
		// заходом. Сбой расчёта не должен помешать продвижению:
		// логируем и коммитим без коэффициентов.
		odds, oddsErr := s.pairOdds(ctx, exec, next)
		if oddsErr != nil {
			s.logger.WarnContext(ctx, "bracket: odds computation failed, advancing without odds",
				slog.Int("match_id", next.ID), slog.Any("error", oddsErr))
			return nil
		}
		if err := s.matches.UpdateOdds(ctx, exec, next.ID, odds); err != nil {
			s.logger.WarnContext(ctx, "bracket: odds write failed, advancing without odds",
				slog.Int("match_id", next.ID), slog.Any("error", err))
		}
		return nil
	})
}

func (s *bracketService) pairOdds(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) (scoring.Odds, error) {
	home, err := s.ratings.GetOrCreate(ctx, exec, match.SportID, match.HomeTeam)
	if err != nil {
		return scoring.Odds{}, err
	}
	away, err := s.ratings.GetOrCreate(ctx, exec, match.SportID, match.AwayTeam)
	if err != nil {
		return scoring.Odds{}, err
	}
	return scoring.ComputeOdds(home.Rating, away.Rating), nil
}
