package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Определение бизнес-ошибок
var (
	ErrCEONotFound       = errors.New("no employee without a manager found")
	ErrMultipleRoots     = errors.New("more than one employee without a manager")
	ErrInvalidRange      = errors.New("invalid salary range")
	ErrMalformedRecord   = errors.New("malformed employee record")
	ErrInvalidHeader     = errors.New("invalid csv header")
	ErrDuplicateEmployee = errors.New("duplicate employee id")
)

// MultipleRootsError перечисляет всех сотрудников без руководителя
type MultipleRootsError struct {
	Candidates []Employee
}

func (e *MultipleRootsError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = fmt.Sprintf("%s (id=%d)", c.FullName(), c.ID)
	}
	return fmt.Sprintf("%s: %s", ErrMultipleRoots, strings.Join(names, ", "))
}

func (e *MultipleRootsError) Unwrap() error {
	return ErrMultipleRoots
}
