package audit

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/org-structure-audit/internal/domain"
)

func TestParseThresholds(t *testing.T) {
	th, err := ParseThresholds(" 1.1 ", "2", 7)
	require.NoError(t, err)

	assert.True(t, th.Lower.Valid)
	assert.True(t, decimal.RequireFromString("1.1").Equal(th.Lower.Decimal))
	assert.True(t, decimal.NewFromInt(2).Equal(th.Upper.Decimal))
	assert.Equal(t, 7, th.MaxLevel)
	assert.NoError(t, th.Validate())
}

func TestParseThresholds_EmptyMeansAbsent(t *testing.T) {
	th, err := ParseThresholds("", "1.5", 0)
	require.NoError(t, err)

	assert.False(t, th.Lower.Valid)
	assert.ErrorIs(t, th.Validate(), domain.ErrInvalidRange)
}

func TestParseThresholds_NotANumber(t *testing.T) {
	_, err := ParseThresholds("abc", "1.5", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestValidate_NegativeMaxLevel(t *testing.T) {
	th := DefaultThresholds()
	th.MaxLevel = -1
	assert.ErrorIs(t, th.Validate(), domain.ErrInvalidRange)
}

func TestValidate_EqualCoefficients(t *testing.T) {
	th := DefaultThresholds()
	th.Upper = th.Lower
	assert.NoError(t, th.Validate())
}

func TestMaxLevelDefaultsWhenZero(t *testing.T) {
	assert.Equal(t, DefaultMaxLevel, Thresholds{}.maxLevel())
	assert.Equal(t, 3, Thresholds{MaxLevel: 3}.maxLevel())
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, "20", percentage(decimal.RequireFromString("1.2")))
	assert.Equal(t, "50", percentage(decimal.RequireFromString("1.5")))
	assert.Equal(t, "12.5", percentage(decimal.RequireFromString("1.125")))
	assert.Equal(t, "0", percentage(decimal.NewFromInt(1)))
}
