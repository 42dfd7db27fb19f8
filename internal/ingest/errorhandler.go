package ingest

import (
	"fmt"
	"log/slog"

	"github.com/org-structure-audit/internal/domain"
)

// RecordError описывает ошибку в конкретной строке файла
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

func malformed(line int, format string, args ...any) *RecordError {
	return &RecordError{
		Line: line,
		Err:  fmt.Errorf("%w: %s", domain.ErrMalformedRecord, fmt.Sprintf(format, args...)),
	}
}

// ErrorHandler решает, что делать с некорректной строкой.
// Ненулевой результат прерывает разбор.
type ErrorHandler interface {
	Handle(err *RecordError) error
}

// ErrorHandlerFunc позволяет использовать функцию как ErrorHandler
type ErrorHandlerFunc func(err *RecordError) error

func (f ErrorHandlerFunc) Handle(err *RecordError) error {
	return f(err)
}

// LogAndContinue пишет предупреждение в лог и пропускает строку
func LogAndContinue(logger *slog.Logger) ErrorHandler {
	return ErrorHandlerFunc(func(err *RecordError) error {
		logger.Warn("skipping employee record",
			slog.Int("line", err.Line),
			slog.Any("error", err.Err),
		)
		return nil
	})
}

// FailFast прерывает разбор на первой некорректной строке
func FailFast() ErrorHandler {
	return ErrorHandlerFunc(func(err *RecordError) error {
		return err
	})
}

// HandlerFor выбирает стратегию по флагу strict
func HandlerFor(strict bool, logger *slog.Logger) ErrorHandler {
	if strict {
		return FailFast()
	}
	return LogAndContinue(logger)
}
