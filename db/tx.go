package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/campuscup/intramurals/repositories"
	"github.com/lib/pq"
)

// ErrTxRetriesExceeded возвращается, когда сериализуемая транзакция
// исчерпала повторы из-за конфликтов записи.
var ErrTxRetriesExceeded = errors.New("transaction retries exceeded")

const (
	txMaxAttempts = 5
	txBackoffBase = 10 * time.Millisecond
)

// SerializableRunner выполняет функцию внутри SERIALIZABLE-транзакции
// и автоматически повторяет её при конфликте сериализации или дедлоке.
// Это оптимистичная модель: конкурирующие read-modify-write гонки
// разрешаются повтором, а не явными блокировками.
type SerializableRunner struct {
	db *sql.DB
}

func NewSerializableRunner(db *sql.DB) *SerializableRunner {
	return &SerializableRunner{db: db}
}

// RunSerializable выполняет fn атомарно. Ошибка fn откатывает
// транзакцию и возвращается как есть; конфликтные ошибки повторяются
// до txMaxAttempts раз, после чего оборачиваются в ErrTxRetriesExceeded.
func (r *SerializableRunner) RunSerializable(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	var lastErr error

	for attempt := 0; attempt < txMaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(txBackoffBase << attempt):
			}
		}

		tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		if err = fn(tx); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
			}
			if isSerializationFailure(err) {
				lastErr = err
				continue
			}
			return err
		}

		if err = tx.Commit(); err != nil {
			if isSerializationFailure(err) {
				lastErr = err
				continue
			}
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	}

	return fmt.Errorf("%w: %v", ErrTxRetriesExceeded, lastErr)
}

// isSerializationFailure распознаёт коды Postgres 40001
// (serialization_failure) и 40P01 (deadlock_detected).
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}
