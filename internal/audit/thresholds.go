package audit

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/org-structure-audit/internal/domain"
)

// DefaultMaxLevel - наибольший допустимый уровень сотрудника (не более 4 руководителей до CEO)
const DefaultMaxLevel = 5

var (
	DefaultLowerCoefficient = decimal.RequireFromString("1.2")
	DefaultUpperCoefficient = decimal.RequireFromString("1.5")

	hundred = decimal.NewFromInt(100)
)

// Thresholds - настройки правил проверки
type Thresholds struct {
	// Lower и Upper задают допустимую полосу зарплаты руководителя
	// относительно средней зарплаты прямых подчинённых.
	Lower decimal.NullDecimal
	Upper decimal.NullDecimal
	// MaxLevel - наибольший уровень без замечания; 0 означает DefaultMaxLevel.
	MaxLevel int
}

// DefaultThresholds возвращает полосу 1.2–1.5 и уровень 5
func DefaultThresholds() Thresholds {
	return Thresholds{
		Lower:    decimal.NewNullDecimal(DefaultLowerCoefficient),
		Upper:    decimal.NewNullDecimal(DefaultUpperCoefficient),
		MaxLevel: DefaultMaxLevel,
	}
}

// ParseThresholds разбирает коэффициенты из строк. Пустая строка означает отсутствие коэффициента.
func ParseThresholds(lower, upper string, maxLevel int) (Thresholds, error) {
	t := Thresholds{MaxLevel: maxLevel}

	var err error
	if t.Lower, err = parseCoefficient("lower", lower); err != nil {
		return Thresholds{}, err
	}
	if t.Upper, err = parseCoefficient("upper", upper); err != nil {
		return Thresholds{}, err
	}
	return t, nil
}

func parseCoefficient(name, value string) (decimal.NullDecimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: %s coefficient %q is not a number", domain.ErrInvalidRange, name, value)
	}
	return decimal.NewNullDecimal(d), nil
}

// Validate проверяет настройки до начала обхода
func (t Thresholds) Validate() error {
	if !t.Lower.Valid || !t.Upper.Valid {
		return fmt.Errorf("%w: coefficient cannot be absent", domain.ErrInvalidRange)
	}
	if t.Lower.Decimal.IsNegative() {
		return fmt.Errorf("%w: lower coefficient cannot be less than 0", domain.ErrInvalidRange)
	}
	if t.Upper.Decimal.IsNegative() {
		return fmt.Errorf("%w: upper coefficient cannot be less than 0", domain.ErrInvalidRange)
	}
	if t.Lower.Decimal.GreaterThan(t.Upper.Decimal) {
		return fmt.Errorf("%w: lower coefficient should not exceed upper coefficient", domain.ErrInvalidRange)
	}
	if t.MaxLevel < 0 {
		return fmt.Errorf("%w: max level cannot be negative", domain.ErrInvalidRange)
	}
	return nil
}

func (t Thresholds) maxLevel() int {
	if t.MaxLevel == 0 {
		return DefaultMaxLevel
	}
	return t.MaxLevel
}

// percentage переводит коэффициент в проценты превышения: 1.2 -> "20"
func percentage(coefficient decimal.Decimal) string {
	return coefficient.Mul(hundred).Sub(hundred).String()
}
