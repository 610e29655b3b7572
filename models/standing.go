package models

import "time"

// TeamSeasonRecord - агрегат сезонной статистики команды, одна запись
// на команду на сезон. Счётчики изменяются только аддитивно леджером,
// поля рангов перезаписываются целиком при пересчёте таблицы.
type TeamSeasonRecord struct {
	ID           int    `json:"id"`
	Year         int    `json:"year"`
	Team         string `json:"team"`
	Games        int    `json:"games"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	Ties         int    `json:"ties"`
	Forfeits     int    `json:"forfeits"`
	Points       int    `json:"points"`
	Rank         int    `json:"rank"`
	PreviousRank int    `json:"previous_rank"`
	// Календарная дата последнего пересчёта ранга в формате 2006-01-02,
	// локальная зона сервера. Управляет семантикой previous_rank.
	LastRankDate string    `json:"last_rank_date"`
	UpdatedAt    time.Time `json:"updated_at"`
}
