package models

import "time"

// BettorRecord - сезонный счёт игрока в прогнозах: очки, начисленные
// выигравшими экспрессами, и количество угаданных ставок.
type BettorRecord struct {
	ID                 int       `json:"id"`
	UserID             int       `json:"user_id"`
	Year               int       `json:"year"`
	Points             float64   `json:"points"`
	CorrectPredictions int       `json:"correct_predictions"`
	UpdatedAt          time.Time `json:"updated_at"`
}
