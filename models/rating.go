package models

import "time"

// Стартовый рейтинг команды в новом виде спорта.
const InitialRating = 1000.0

// RatingRecord - скалярный рейтинг силы команды в рамках одного вида
// спорта. Живёт, пока существует вид спорта, обновляется после каждого
// подсчитанного матча.
type RatingRecord struct {
	ID        int       `json:"id"`
	SportID   int       `json:"sport_id"`
	Team      string    `json:"team"`
	Rating    float64   `json:"rating"`
	UpdatedAt time.Time `json:"updated_at"`
}
