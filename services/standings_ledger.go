package services

import (
	"context"
	"fmt"

	"github.com/campuscup/intramurals/models"
	"github.com/campuscup/intramurals/repositories"
	"github.com/campuscup/intramurals/scoring"
)

// StandingsLedger применяет дельты очков и счётчиков исхода к двум
// сезонным записям участников. Вызывается координатором внутри той же
// транзакции, что и запись победителя: сбой между ними не может
// оставить матч "подсчитанным" без проведённых очков и наоборот.
type StandingsLedger interface {
	Apply(ctx context.Context, exec repositories.SQLExecutor, match *models.Match, outcome scoring.Outcome, pointsForWin int) error
}

type standingsLedger struct {
	teams repositories.TeamSeasonRepository
}

func NewStandingsLedger(teams repositories.TeamSeasonRepository) StandingsLedger {
	return &standingsLedger{teams: teams}
}

func (l *standingsLedger) Apply(ctx context.Context, exec repositories.SQLExecutor, match *models.Match, outcome scoring.Outcome, pointsForWin int) error {
	home, err := l.teams.GetOrCreate(ctx, exec, match.Year, match.HomeTeam)
	if err != nil {
		return fmt.Errorf("ledger: home record: %w", err)
	}
	away, err := l.teams.GetOrCreate(ctx, exec, match.Year, match.AwayTeam)
	if err != nil {
		return fmt.Errorf("ledger: away record: %w", err)
	}

	applyOutcomeDeltas(home, away, outcome, pointsForWin)

	if err := l.teams.Update(ctx, exec, home); err != nil {
		return fmt.Errorf("ledger: update home record: %w", err)
	}
	if err := l.teams.Update(ctx, exec, away); err != nil {
		return fmt.Errorf("ledger: update away record: %w", err)
	}
	return nil
}

// applyOutcomeDeltas - фиксированные дельты пяти форм исхода.
// Инвариант сохранения: games каждой стороны увеличивается ровно на
// единицу за подсчёт, какой бы ни была ветка.
func applyOutcomeDeltas(home, away *models.TeamSeasonRecord, o scoring.Outcome, pointsForWin int) {
	home.Games++
	away.Games++

	switch o.Kind {
	case scoring.OutcomeDraw:
		// Ничья делит очки за победу пополам.
		home.Ties++
		away.Ties++
		home.Points += pointsForWin / 2
		away.Points += pointsForWin / 2

	case scoring.OutcomeDoubleForfeit:
		// Обе стороны не явились: по половине очков, неявка обеим,
		// победа не засчитывается никому.
		home.Forfeits++
		away.Forfeits++
		home.Points += pointsForWin / 2
		away.Points += pointsForWin / 2

	case scoring.OutcomeSingleForfeit:
		winner, loser := home, away
		if o.Winner == scoring.SideAway {
			winner, loser = away, home
		}
		winner.Wins++
		winner.Points += pointsForWin
		loser.Losses++
		loser.Forfeits++

	default: // scoring.OutcomeDecided
		winner, loser := home, away
		if o.Winner == scoring.SideAway {
			winner, loser = away, home
		}
		winner.Wins++
		winner.Points += pointsForWin
		loser.Losses++
	}
}
