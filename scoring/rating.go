package scoring

import "math"

// Ширина логистической кривой ожидания: разница в ratingScale пунктов
// даёт ожидание победы ~0.909.
const ratingScale = 400.0

// Expected возвращает вероятность победы стороны с рейтингом own над
// стороной с рейтингом opp. Монотонна по разнице рейтингов.
func Expected(own, opp float64) float64 {
	return 1.0 / (1.0 + math.Pow(10.0, (opp-own)/ratingScale))
}

// UpdateRatings возвращает новые рейтинги обеих сторон после матча.
// Каждая сторона сдвигается к фактическому результату относительно
// ожидаемого: rating += k * (actual - expected). Ничья двигает обе
// стороны к середине с половинным весом (actual = 0.5). Неявка
// считается победой/поражением; двойная неявка - несостоявшийся матч,
// рейтинги не меняются.
func UpdateRatings(home, away, k float64, o Outcome) (newHome, newAway float64) {
	var actualHome float64
	switch o.Kind {
	case OutcomeDoubleForfeit:
		return home, away
	case OutcomeDraw:
		actualHome = 0.5
	default:
		if o.Winner == SideHome {
			actualHome = 1.0
		} else {
			actualHome = 0.0
		}
	}

	expectedHome := Expected(home, away)
	newHome = home + k*(actualHome-expectedHome)
	newAway = away + k*((1.0-actualHome)-(1.0-expectedHome))
	return newHome, newAway
}
