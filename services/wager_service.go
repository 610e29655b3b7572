package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/campuscup/intramurals/models"
	"github.com/campuscup/intramurals/repositories"
	"golang.org/x/sync/errgroup"
)

const defaultWagerWorkers = 8

// ParlayLegRequest - одна нога заявки на ставку.
type ParlayLegRequest struct {
	MatchID int    `json:"match_id"`
	Option  string `json:"option"`
}

// ParlayRequest - заявка на одиночную или экспресс-ставку.
type ParlayRequest struct {
	Year  int                `json:"year"`
	Stake float64            `json:"stake"`
	Legs  []ParlayLegRequest `json:"legs"`
}

// WagerService рассчитывает все ожидающие ноги по подсчитанному матчу
// и размещает новые ставки. Каждая нога рассчитывается в собственной
// атомарной единице: чтение счётчиков экспресса и запись результата
// ноги идут одной транзакцией, поэтому конкурирующие ноги одного
// экспресса не задваивают current_cashed и выплату.
type WagerService interface {
	// SettleWagersForMatch возвращает число рассчитанных ног и число
	// закрытых этим расчётом экспрессов.
	SettleWagersForMatch(ctx context.Context, matchID int, winner string) (legs int, parlays int, err error)
	PlaceParlay(ctx context.Context, ownerID int, req ParlayRequest) (*models.Parlay, error)
}

type wagerService struct {
	tx      TxRunner
	wagers  repositories.WagerRepository
	parlays repositories.ParlayRepository
	bettors repositories.BettorRepository
	matches repositories.MatchRepository
	workers int
	logger  *slog.Logger
}

func NewWagerService(
	tx TxRunner,
	wagers repositories.WagerRepository,
	parlays repositories.ParlayRepository,
	bettors repositories.BettorRepository,
	matches repositories.MatchRepository,
	workers int,
	logger *slog.Logger,
) WagerService {
	if workers <= 0 {
		workers = defaultWagerWorkers
	}
	return &wagerService{
		tx:      tx,
		wagers:  wagers,
		parlays: parlays,
		bettors: bettors,
		matches: matches,
		workers: workers,
		logger:  logger,
	}
}

func (s *wagerService) SettleWagersForMatch(ctx context.Context, matchID int, winner string) (int, int, error) {
	pending, err := s.wagers.ListPendingByMatch(ctx, nil, matchID)
	if err != nil {
		return 0, 0, fmt.Errorf("wagers: list pending for match %d: %w", matchID, err)
	}
	if len(pending) == 0 {
		return 0, 0, nil
	}

	var (
		mu          sync.Mutex
		legsSettled int
		parlaysDone int
	)

	// Ограниченный фан-аут: порядок ног не важен, но вызов обязан
	// дождаться всех - либо все ноги обработаны, либо он падает.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, leg := range pending {
		leg := leg
		g.Go(func() error {
			closed, err := s.settleLeg(gctx, leg, winner)
			if err != nil {
				if errors.Is(err, repositories.ErrWagerAlreadySettled) {
					// Нога успела рассчитаться конкурентно - не наша.
					return nil
				}
				return fmt.Errorf("wagers: settle leg %d: %w", leg.ID, err)
			}
			mu.Lock()
			legsSettled++
			if closed {
				parlaysDone++
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return legsSettled, parlaysDone, err
	}
	return legsSettled, parlaysDone, nil
}

// settleLeg - одна атомарная единица на ногу. Сообщает, закрыла ли
// эта нога свой экспресс.
func (s *wagerService) settleLeg(ctx context.Context, leg *models.Wager, winner string) (bool, error) {
	// Выбор сравнивается со строкой победителя: имена команд и
	// синтетические Draw/Default - равноправные варианты.
	legWon := leg.Option == winner
	closedParlay := false

	err := s.tx.RunSerializable(ctx, func(exec repositories.SQLExecutor) error {
		closedParlay = false

		if err := s.wagers.SetResult(ctx, exec, leg.ID, legWon); err != nil {
			return err
		}

		parlay, err := s.parlays.GetByID(ctx, exec, leg.ParlayID)
		if err != nil {
			return err
		}

		parlay.CurrentCashed++
		if !legWon {
			parlay.LostLegs++
		}

		// Выплату выполняет ровно одна нога: та, что довела
		// current_cashed до leg_count внутри своей транзакции.
		if parlay.CurrentCashed == parlay.LegCount && !parlay.Settled {
			parlay.Settled = true
			parlay.Won = parlay.LostLegs == 0
			if parlay.Won {
				parlay.Payout = round2(parlay.Stake * parlay.TotalOdds)
			} else {
				parlay.Payout = 0
			}
			if parlay.Payout > 0 {
				if err := s.bettors.Credit(ctx, exec, parlay.OwnerID, parlay.Year, parlay.Payout, 1); err != nil {
					return fmt.Errorf("credit bettor %d: %w", parlay.OwnerID, err)
				}
			}
			closedParlay = true
		}

		return s.parlays.UpdateSettlement(ctx, exec, parlay)
	})
	return closedParlay, err
}

func (s *wagerService) PlaceParlay(ctx context.Context, ownerID int, req ParlayRequest) (*models.Parlay, error) {
	if req.Stake <= 0 {
		return nil, ErrWagerStakeInvalid
	}
	if len(req.Legs) == 0 {
		return nil, ErrWagerNoLegs
	}

	parlay := &models.Parlay{
		OwnerID:   ownerID,
		Year:      req.Year,
		Stake:     req.Stake,
		TotalOdds: 1.0,
		LegCount:  len(req.Legs),
	}

	err := s.tx.RunSerializable(ctx, func(exec repositories.SQLExecutor) error {
		legs := make([]*models.Wager, 0, len(req.Legs))
		total := 1.0

		for _, legReq := range req.Legs {
			match, err := s.matches.GetByID(ctx, exec, legReq.MatchID)
			if err != nil {
				if errors.Is(err, repositories.ErrMatchNotFound) {
					return fmt.Errorf("%w: match %d", ErrMatchNotFound, legReq.MatchID)
				}
				return err
			}
			if match.Settled() {
				return fmt.Errorf("%w: match %d", ErrWagerMatchScored, legReq.MatchID)
			}

			odds, err := optionOdds(match, legReq.Option)
			if err != nil {
				return err
			}
			total *= odds

			legs = append(legs, &models.Wager{
				OwnerID: ownerID,
				Year:    req.Year,
				MatchID: legReq.MatchID,
				Option:  legReq.Option,
				Odds:    odds,
			})
		}

		parlay.TotalOdds = round2(total)
		if err := s.parlays.Create(ctx, exec, parlay); err != nil {
			return fmt.Errorf("create parlay: %w", err)
		}
		for _, leg := range legs {
			leg.ParlayID = parlay.ID
			if err := s.wagers.Create(ctx, exec, leg); err != nil {
				return fmt.Errorf("create wager leg: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return parlay, nil
}

// optionOdds фиксирует коэффициент выбранного исхода на момент
// размещения.
func optionOdds(match *models.Match, option string) (float64, error) {
	var odds *float64
	switch option {
	case match.HomeTeam:
		odds = match.HomeOdds
	case match.AwayTeam:
		odds = match.AwayOdds
	case models.WinnerDraw:
		odds = match.DrawOdds
	case models.WinnerDefault:
		odds = match.DefaultOdds
	default:
		return 0, fmt.Errorf("%w: %q on match %d", ErrWagerOptionInvalid, option, match.ID)
	}
	if odds == nil {
		return 0, fmt.Errorf("%w: %q on match %d", ErrWagerOddsMissing, option, match.ID)
	}
	return *odds, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
