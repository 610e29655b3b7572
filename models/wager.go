package models

import "time"

// Wager - одна нога ставки, привязанная к конкретному матчу.
// Option хранит либо имя команды, либо синтетические WinnerDraw /
// WinnerDefault. Won == nil означает, что нога ещё не рассчитана;
// поле изменяется ровно один раз.
type Wager struct {
	ID        int       `json:"id"`
	ParlayID  int       `json:"parlay_id"`
	OwnerID   int       `json:"owner_id"`
	Year      int       `json:"year"`
	MatchID   int       `json:"match_id"`
	Option    string    `json:"option"`
	Odds      float64   `json:"odds"`
	Won       *bool     `json:"won,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Pending сообщает, ждёт ли нога расчёта.
func (w *Wager) Pending() bool {
	return w != nil && w.Won == nil
}

// Parlay - экспресс-ставка из одной или нескольких ног. Одиночная
// ставка моделируется как экспресс с LegCount == 1, отдельного пути
// кода для неё нет.
//
// Инварианты: CurrentCashed и LostLegs только растут, CurrentCashed
// никогда не превышает LegCount; Settled переходит false -> true ровно
// один раз - в транзакции той ноги, которая довела CurrentCashed до
// LegCount. Выплата начисляется только в этой транзакции.
type Parlay struct {
	ID            int       `json:"id"`
	OwnerID       int       `json:"owner_id"`
	Year          int       `json:"year"`
	Stake         float64   `json:"stake"`
	TotalOdds     float64   `json:"total_odds"` // произведение коэффициентов ног на момент размещения
	LegCount      int       `json:"leg_count"`
	CurrentCashed int       `json:"current_cashed"`
	LostLegs      int       `json:"lost_legs"`
	Settled       bool      `json:"settled"`
	Won           bool      `json:"won"`
	Payout        float64   `json:"payout"`
	CreatedAt     time.Time `json:"created_at"`
}

// Complete - экспресс закрыт, когда рассчитаны все его ноги.
func (p *Parlay) Complete() bool {
	return p != nil && p.CurrentCashed == p.LegCount
}
