package models

import "time"

type MatchType string

const (
	MatchTypeRegular MatchType = "regular"
	MatchTypePlayoff MatchType = "playoff"
	MatchTypeFinal   MatchType = "final"
	MatchTypeBye     MatchType = "bye"
)

// Синтетические значения поля winner, не являющиеся именами команд.
const (
	WinnerDraw    = "Draw"
	WinnerDefault = "Default"
)

// TeamTBD - плейсхолдер стороны матча плей-офф, пока фидер-матч не сыгран.
const TeamTBD = "TBD"

// Match создаётся при составлении расписания и изменяется ровно один раз
// при подсчёте результата. Winner == nil означает, что матч ещё не сыгран;
// это же поле служит идемпотентным стражем подсчёта.
type Match struct {
	ID          int       `json:"id"`
	Year        int       `json:"year"`
	SportID     int       `json:"sport_id"`
	Type        MatchType `json:"type"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	HomeSeed    *int      `json:"home_seed,omitempty"`
	AwaySeed    *int      `json:"away_seed,omitempty"`
	HomeScore   *int      `json:"home_score,omitempty"`
	AwayScore   *int      `json:"away_score,omitempty"`
	HomeForfeit bool      `json:"home_forfeit"`
	AwayForfeit bool      `json:"away_forfeit"`
	Winner      *string   `json:"winner,omitempty"`

	// Связка с сеткой плей-офф: куда продвигается победитель.
	NextMatchID *int `json:"next_match_id,omitempty"`
	BracketSlot *int `json:"bracket_slot,omitempty"`

	// Коэффициенты выплат, рассчитанные для этой пары.
	HomeOdds    *float64 `json:"home_odds,omitempty"`
	AwayOdds    *float64 `json:"away_odds,omitempty"`
	DrawOdds    *float64 `json:"draw_odds,omitempty"`
	DefaultOdds *float64 `json:"default_odds,omitempty"`

	MatchTime time.Time `json:"match_time"`
	CreatedAt time.Time `json:"created_at"`
}

// Settled сообщает, был ли матч уже подсчитан.
func (m *Match) Settled() bool {
	return m != nil && m.Winner != nil
}
