// Package scoring содержит чистые функции подсчёта: классификацию
// исхода матча, обновление рейтинга и расчёт коэффициентов. Никаких
// побочных эффектов - весь ввод-вывод живёт в services.
package scoring

// Side указывает сторону матча.
type Side int

const (
	SideNone Side = iota
	SideHome
	SideAway
)

// OutcomeKind - классификация исхода.
type OutcomeKind int

const (
	OutcomeDecided OutcomeKind = iota
	OutcomeDraw
	OutcomeSingleForfeit
	OutcomeDoubleForfeit
)

// Outcome - размеченный исход матча. Winner заполнен для
// OutcomeDecided и OutcomeSingleForfeit, иначе SideNone.
type Outcome struct {
	Kind   OutcomeKind
	Winner Side
}

// Resolve классифицирует исход по сырым очкам и флагам неявки.
// Порядок приоритета фиксирован и важен для всех последующих стадий:
// двойная неявка > одиночная неявка > сравнение счёта > ничья.
// Функция детерминирована и тотальна на валидных входах; валидацию
// сырых полей выполняет координатор до её вызова.
func Resolve(homeScore, awayScore int, homeForfeit, awayForfeit bool) Outcome {
	switch {
	case homeForfeit && awayForfeit:
		return Outcome{Kind: OutcomeDoubleForfeit}
	case homeForfeit:
		return Outcome{Kind: OutcomeSingleForfeit, Winner: SideAway}
	case awayForfeit:
		return Outcome{Kind: OutcomeSingleForfeit, Winner: SideHome}
	case homeScore > awayScore:
		return Outcome{Kind: OutcomeDecided, Winner: SideHome}
	case awayScore > homeScore:
		return Outcome{Kind: OutcomeDecided, Winner: SideAway}
	default:
		return Outcome{Kind: OutcomeDraw}
	}
}

// Definitive сообщает, даёт ли исход победителя-команду (а не ничью
// и не синтетический Default). Только такие исходы продвигаются по сетке.
func (o Outcome) Definitive() bool {
	return o.Kind == OutcomeDecided || o.Kind == OutcomeSingleForfeit
}

// String возвращает человекочитаемое имя исхода для ответов и логов.
func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeDraw:
		return "draw"
	case OutcomeDoubleForfeit:
		return "double_forfeit"
	case OutcomeSingleForfeit:
		return "forfeit"
	default:
		return "decided"
	}
}
