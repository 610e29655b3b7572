package scoring

import "math"

// Odds - коэффициенты выплат для пары команд. Множитель ставки:
// выплата = ставка * коэффициент выбранного исхода.
type Odds struct {
	Home    float64 `json:"home"`
	Away    float64 `json:"away"`
	Draw    float64 `json:"draw"`
	Default float64 `json:"default"`
}

const (
	// Маржа букмекера: доля вероятности, возвращаемая игрокам.
	oddsMargin = 0.94
	// Доля вероятностной массы, резервируемая под ничью.
	drawShare = 0.10
	// Фиксированный коэффициент на синтетический исход Default
	// (двойная неявка) - событие редкое и от рейтингов не зависит.
	defaultOdds = 10.0

	minOdds = 1.01
	maxOdds = 20.0
)

// ComputeOdds переводит разницу рейтингов пары в коэффициенты выплат.
// Вероятности побед берутся из ожидания Elo, часть массы отдаётся
// ничьей, затем каждая вероятность конвертируется в коэффициент с
// маржой и ограничивается снизу и сверху.
func ComputeOdds(homeRating, awayRating float64) Odds {
	pHome := Expected(homeRating, awayRating) * (1.0 - drawShare)
	pAway := Expected(awayRating, homeRating) * (1.0 - drawShare)

	return Odds{
		Home:    oddsFromProbability(pHome),
		Away:    oddsFromProbability(pAway),
		Draw:    oddsFromProbability(drawShare),
		Default: defaultOdds,
	}
}

func oddsFromProbability(p float64) float64 {
	odds := oddsMargin / p
	if odds < minOdds {
		odds = minOdds
	}
	if odds > maxOdds {
		odds = maxOdds
	}
	// Два знака после запятой, как в купоне.
	return math.Round(odds*100) / 100
}
