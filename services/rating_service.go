package services

import (
	"context"
	"fmt"

	"github.com/campuscup/intramurals/models"
	"github.com/campuscup/intramurals/repositories"
	"github.com/campuscup/intramurals/scoring"
)

// RatingService обновляет рейтинги силы обеих команд по исходу матча.
// Стадия best-effort: её ошибка логируется координатором и не
// откатывает уже зафиксированные победителя и очки.
type RatingService interface {
	ApplyOutcome(ctx context.Context, match *models.Match, outcome scoring.Outcome, sport *models.Sport) error
}

type ratingService struct {
	tx      TxRunner
	ratings repositories.RatingRepository
}

func NewRatingService(tx TxRunner, ratings repositories.RatingRepository) RatingService {
	return &ratingService{tx: tx, ratings: ratings}
}

func (s *ratingService) ApplyOutcome(ctx context.Context, match *models.Match, outcome scoring.Outcome, sport *models.Sport) error {
	if outcome.Kind == scoring.OutcomeDoubleForfeit {
		// Несостоявшийся матч ничего не говорит о силе команд.
		return nil
	}

	return s.tx.RunSerializable(ctx, func(exec repositories.SQLExecutor) error {
		home, err := s.ratings.GetOrCreate(ctx, exec, sport.ID, match.HomeTeam)
		if err != nil {
			return fmt.Errorf("rating: home record: %w", err)
		}
		away, err := s.ratings.GetOrCreate(ctx, exec, sport.ID, match.AwayTeam)
		if err != nil {
			return fmt.Errorf("rating: away record: %w", err)
		}

		newHome, newAway := scoring.UpdateRatings(home.Rating, away.Rating, sport.RatingK, outcome)

		if err := s.ratings.UpdateValue(ctx, exec, home.ID, newHome); err != nil {
			return fmt.Errorf("rating: update home: %w", err)
		}
		if err := s.ratings.UpdateValue(ctx, exec, away.ID, newAway); err != nil {
			return fmt.Errorf("rating: update away: %w", err)
		}
		return nil
	})
}
