package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/campuscup/intramurals/models"
	"github.com/campuscup/intramurals/repositories"
	"github.com/campuscup/intramurals/scoring"
)

// fakeTxRunner - in-memory замена db.SerializableRunner: mutex
// сериализует "транзакции" так же, как это делал бы SERIALIZABLE.
type fakeTxRunner struct {
	mu  sync.Mutex
	err error // если задана, каждая транзакция падает этой ошибкой
}

func (f *fakeTxRunner) RunSerializable(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

type fakeSportRepo struct {
	sports map[string]*models.Sport
}

func (f *fakeSportRepo) GetBySlug(ctx context.Context, slug string) (*models.Sport, error) {
	s, ok := f.sports[slug]
	if !ok {
		return nil, repositories.ErrSportNotFound
	}
	copied := *s
	return &copied, nil
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	matches map[int]*models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[int]*models.Match)}
}

func (f *fakeMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	match.ID = len(f.matches) + 1
	copied := *match
	f.matches[match.ID] = &copied
	return nil
}

func (f *fakeMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMatchRepo) SetResult(ctx context.Context, exec repositories.SQLExecutor, id int, winner string, homeScore, awayScore int, homeForfeit, awayForfeit bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.matches[id]
	if !ok || m.Winner != nil {
		return repositories.ErrMatchAlreadySettled
	}
	m.Winner = &winner
	m.HomeScore = &homeScore
	m.AwayScore = &awayScore
	m.HomeForfeit = homeForfeit
	m.AwayForfeit = awayForfeit
	return nil
}

func (f *fakeMatchRepo) SetBracketSide(ctx context.Context, exec repositories.SQLExecutor, id int, homeSide bool, team string, seed *int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	if homeSide {
		m.HomeTeam = team
		m.HomeSeed = seed
	} else {
		m.AwayTeam = team
		m.AwaySeed = seed
	}
	return nil
}

func (f *fakeMatchRepo) UpdateOdds(ctx context.Context, exec repositories.SQLExecutor, id int, odds scoring.Odds) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	home, away, draw, def := odds.Home, odds.Away, odds.Draw, odds.Default
	m.HomeOdds, m.AwayOdds, m.DrawOdds, m.DefaultOdds = &home, &away, &draw, &def
	return nil
}

type fakeTeamSeasonRepo struct {
	mu   sync.Mutex
	seq  int
	recs map[int]*models.TeamSeasonRecord
}

func newFakeTeamSeasonRepo() *fakeTeamSeasonRepo {
	return &fakeTeamSeasonRepo{recs: make(map[int]*models.TeamSeasonRecord)}
}

func (f *fakeTeamSeasonRepo) find(year int, team string) *models.TeamSeasonRecord {
	for _, rec := range f.recs {
		if rec.Year == year && rec.Team == team {
			return rec
		}
	}
	return nil
}

func (f *fakeTeamSeasonRepo) Create(ctx context.Context, exec repositories.SQLExecutor, record *models.TeamSeasonRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	record.ID = f.seq
	copied := *record
	f.recs[record.ID] = &copied
	return nil
}

func (f *fakeTeamSeasonRepo) GetByYearAndTeam(ctx context.Context, exec repositories.SQLExecutor, year int, team string) (*models.TeamSeasonRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := f.find(year, team)
	if rec == nil {
		return nil, repositories.ErrTeamSeasonNotFound
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeTeamSeasonRepo) GetOrCreate(ctx context.Context, exec repositories.SQLExecutor, year int, team string) (*models.TeamSeasonRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec := f.find(year, team); rec != nil {
		copied := *rec
		return &copied, nil
	}
	f.seq++
	rec := &models.TeamSeasonRecord{ID: f.seq, Year: year, Team: team, UpdatedAt: time.Now()}
	f.recs[rec.ID] = rec
	copied := *rec
	return &copied, nil
}

func (f *fakeTeamSeasonRepo) Update(ctx context.Context, exec repositories.SQLExecutor, record *models.TeamSeasonRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.recs[record.ID]
	if !ok {
		return repositories.ErrTeamSeasonNotFound
	}
	stored.Games = record.Games
	stored.Wins = record.Wins
	stored.Losses = record.Losses
	stored.Ties = record.Ties
	stored.Forfeits = record.Forfeits
	stored.Points = record.Points
	return nil
}

func (f *fakeTeamSeasonRepo) UpdateRank(ctx context.Context, exec repositories.SQLExecutor, id int, rank, previousRank int, lastRankDate string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.recs[id]
	if !ok {
		return repositories.ErrTeamSeasonNotFound
	}
	stored.Rank = rank
	stored.PreviousRank = previousRank
	stored.LastRankDate = lastRankDate
	return nil
}

func (f *fakeTeamSeasonRepo) ListByYear(ctx context.Context, exec repositories.SQLExecutor, year int) ([]*models.TeamSeasonRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.TeamSeasonRecord, 0)
	// Стабильный порядок обхода по ID
	for id := 1; id <= f.seq; id++ {
		rec, ok := f.recs[id]
		if !ok || rec.Year != year {
			continue
		}
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

type fakeRatingRepo struct {
	mu        sync.Mutex
	seq       int
	recs      map[int]*models.RatingRecord
	getErr    error
	updateErr error
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{recs: make(map[int]*models.RatingRecord)}
}

func (f *fakeRatingRepo) find(sportID int, team string) *models.RatingRecord {
	for _, rec := range f.recs {
		if rec.SportID == sportID && rec.Team == team {
			return rec
		}
	}
	return nil
}

func (f *fakeRatingRepo) GetBySportAndTeam(ctx context.Context, exec repositories.SQLExecutor, sportID int, team string) (*models.RatingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	rec := f.find(sportID, team)
	if rec == nil {
		return nil, repositories.ErrRatingNotFound
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeRatingRepo) GetOrCreate(ctx context.Context, exec repositories.SQLExecutor, sportID int, team string) (*models.RatingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if rec := f.find(sportID, team); rec != nil {
		copied := *rec
		return &copied, nil
	}
	f.seq++
	rec := &models.RatingRecord{ID: f.seq, SportID: sportID, Team: team, Rating: models.InitialRating, UpdatedAt: time.Now()}
	f.recs[rec.ID] = rec
	copied := *rec
	return &copied, nil
}

func (f *fakeRatingRepo) UpdateValue(ctx context.Context, exec repositories.SQLExecutor, id int, rating float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	stored, ok := f.recs[id]
	if !ok {
		return repositories.ErrRatingNotFound
	}
	stored.Rating = rating
	return nil
}

type fakeWagerRepo struct {
	mu     sync.Mutex
	seq    int
	wagers map[int]*models.Wager
}

func newFakeWagerRepo() *fakeWagerRepo {
	return &fakeWagerRepo{wagers: make(map[int]*models.Wager)}
}

func (f *fakeWagerRepo) Create(ctx context.Context, exec repositories.SQLExecutor, wager *models.Wager) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	wager.ID = f.seq
	wager.CreatedAt = time.Now()
	copied := *wager
	f.wagers[wager.ID] = &copied
	return nil
}

func (f *fakeWagerRepo) ListPendingByMatch(ctx context.Context, exec repositories.SQLExecutor, matchID int) ([]*models.Wager, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Wager, 0)
	for id := 1; id <= f.seq; id++ {
		w, ok := f.wagers[id]
		if !ok || w.MatchID != matchID || w.Won != nil {
			continue
		}
		copied := *w
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeWagerRepo) SetResult(ctx context.Context, exec repositories.SQLExecutor, id int, won bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wagers[id]
	if !ok || w.Won != nil {
		return repositories.ErrWagerAlreadySettled
	}
	w.Won = &won
	return nil
}

type fakeParlayRepo struct {
	mu      sync.Mutex
	seq     int
	parlays map[int]*models.Parlay
}

func newFakeParlayRepo() *fakeParlayRepo {
	return &fakeParlayRepo{parlays: make(map[int]*models.Parlay)}
}

func (f *fakeParlayRepo) Create(ctx context.Context, exec repositories.SQLExecutor, parlay *models.Parlay) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	parlay.ID = f.seq
	parlay.CreatedAt = time.Now()
	copied := *parlay
	f.parlays[parlay.ID] = &copied
	return nil
}

func (f *fakeParlayRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Parlay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.parlays[id]
	if !ok {
		return nil, repositories.ErrParlayNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeParlayRepo) UpdateSettlement(ctx context.Context, exec repositories.SQLExecutor, parlay *models.Parlay) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.parlays[parlay.ID]
	if !ok {
		return repositories.ErrParlayNotFound
	}
	stored.CurrentCashed = parlay.CurrentCashed
	stored.LostLegs = parlay.LostLegs
	stored.Settled = parlay.Settled
	stored.Won = parlay.Won
	stored.Payout = parlay.Payout
	return nil
}

type fakeBettorRepo struct {
	mu      sync.Mutex
	credits int
	recs    map[string]*models.BettorRecord
}

func newFakeBettorRepo() *fakeBettorRepo {
	return &fakeBettorRepo{recs: make(map[string]*models.BettorRecord)}
}

func (f *fakeBettorRepo) Credit(ctx context.Context, exec repositories.SQLExecutor, userID, year int, points float64, correct int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.credits++
	key := fmt.Sprintf("%d|%d", userID, year)
	rec, ok := f.recs[key]
	if !ok {
		rec = &models.BettorRecord{UserID: userID, Year: year}
		f.recs[key] = rec
	}
	rec.Points += points
	rec.CorrectPredictions += correct
	return nil
}

func (f *fakeBettorRepo) get(userID, year int) *models.BettorRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recs[fmt.Sprintf("%d|%d", userID, year)]
}

// fakeCache запоминает последнюю сохранённую таблицу.
type fakeCache struct {
	mu      sync.Mutex
	stored  map[int][]models.LeaderboardEntry
	fetches int
}

func newFakeCache() *fakeCache {
	return &fakeCache{stored: make(map[int][]models.LeaderboardEntry)}
}

func (f *fakeCache) Store(ctx context.Context, year int, entries []models.LeaderboardEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored[year] = entries
	return nil
}

func (f *fakeCache) Fetch(ctx context.Context, year int) ([]models.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	entries, ok := f.stored[year]
	if !ok {
		return nil, fmt.Errorf("cache miss for year %d", year)
	}
	return entries, nil
}
