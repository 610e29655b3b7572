package services

import "errors"

// Общие ошибки сервисного слоя и их маппинг на HTTP живёт в handlers.
var (
	// Ошибки валидации заявки на подсчёт
	ErrValidationFailed = errors.New("validation failed")
	ErrScoreRequired    = errors.New("home and away scores are required")
	ErrScoreNegative    = errors.New("scores must not be negative")
	ErrForfeitRequired  = errors.New("home and away forfeit flags are required")
	ErrByeNotScorable   = errors.New("bye matches cannot be scored")

	// Ресурс не найден
	ErrMatchNotFound = errors.New("match not found")
	ErrSportNotFound = errors.New("sport not found")

	// Идемпотентный страж подсчёта: поле winner уже заполнено.
	// Это ошибка клиента, а не повод для повтора.
	ErrMatchAlreadyScored = errors.New("match already scored")

	// Критическая стадия исчерпала повторы оптимистичной транзакции.
	ErrTxConflict = errors.New("settlement could not be committed due to storage conflicts")

	// Ошибки размещения ставок
	ErrWagerStakeInvalid  = errors.New("wager stake must be positive")
	ErrWagerNoLegs        = errors.New("wager must contain at least one leg")
	ErrWagerMatchScored   = errors.New("cannot place a wager on a scored match")
	ErrWagerOptionInvalid = errors.New("wager option does not match any outcome of the match")
	ErrWagerOddsMissing   = errors.New("odds are not yet available for the chosen option")
)
