package services

import (
	"context"

	"github.com/campuscup/intramurals/models"
	"github.com/campuscup/intramurals/repositories"
)

// TxRunner выполняет функцию как одну атомарную, изолированную
// транзакцию хранилища с автоматическим повтором конфликтов записи.
// Продакшен-реализация - db.SerializableRunner; тесты подставляют
// заглушку, вызывающую fn напрямую.
type TxRunner interface {
	RunSerializable(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error
}

// Broadcaster доставляет событие подсчёта подписчикам комнаты сезона.
// Реализуется live.Hub; стадия рассылки - best-effort.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// LeaderboardCache хранит собранную таблицу сезона между пересчётами.
// Реализуется cache.LeaderboardCache поверх Redis; может быть nil,
// тогда таблица каждый раз собирается из хранилища.
type LeaderboardCache interface {
	Store(ctx context.Context, year int, entries []models.LeaderboardEntry) error
	Fetch(ctx context.Context, year int) ([]models.LeaderboardEntry, error)
}
