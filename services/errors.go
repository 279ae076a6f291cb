package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed  = errors.New("validation failed")
	ErrUnknownLeague     = errors.New("unknown league")
	ErrMatchdayNotFound  = errors.New("matchday not found")
	ErrMatchdayPlayed    = errors.New("matchday is already played")
	ErrInvalidPrediction = errors.New("prediction must look like \"2-1\"")
	ErrUnknownTeam       = errors.New("unknown team")

	// Внешние зависимости
	ErrScheduleUnavailable = errors.New("league schedule unavailable")
	ErrSnapshotFailed      = errors.New("failed to store snapshot")
)
