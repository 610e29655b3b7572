package models

// LeaderboardEntry - производная проекция TeamSeasonRecord для таблицы
// сезона. Не хранится отдельно: собирается пересчётом рангов и кэшируется.
// Movement > 0 означает подъём относительно предыдущего дня.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Team     string `json:"team"`
	Points   int    `json:"points"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Ties     int    `json:"ties"`
	Games    int    `json:"games"`
	Movement int    `json:"movement"`
}
