package models

// Sport описывает вид спорта и его параметры подсчёта очков.
// PointsForWin начисляется победителю, ничья делит их пополам.
type Sport struct {
	ID           int     `json:"id"`
	Slug         string  `json:"slug"`
	Name         string  `json:"name"`
	PointsForWin int     `json:"points_for_win"`
	RatingK      float64 `json:"rating_k"`
}
