package ingest_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/org-structure-audit/internal/domain"
	"github.com/org-structure-audit/internal/ingest"
)

const multipleEmployees = `Id,firstName,lastName,salary,managerId
123,Joe,Doe,60000,
124,Martin,Chekov,45000,123
125,Bob,Ronstad,47000,123
300,Alice,Hasacat,50000,124

305,Brett,Hardleaf,34000,300`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestParse_SingleEmployee(t *testing.T) {
	input := "Id,firstName,lastName,salary,managerId\n1,Joe,Doe,60000,"

	roster, err := ingest.NewParser(ingest.FailFast()).Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, 1, roster.Len())
	joe, ok := roster.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Joe Doe", joe.FullName())
	assert.Nil(t, joe.ManagerID)
	assert.True(t, decimal.NewFromInt(60000).Equal(joe.Salary))
}

func TestParse_MultipleEmployeesKeepsOrder(t *testing.T) {
	roster, err := ingest.NewParser(ingest.FailFast()).Parse(strings.NewReader(multipleEmployees))
	require.NoError(t, err)

	require.Equal(t, 5, roster.Len())

	var ids []int64
	for _, e := range roster.Employees() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int64{123, 124, 125, 300, 305}, ids)

	martin, _ := roster.Get(124)
	require.NotNil(t, martin.ManagerID)
	assert.Equal(t, int64(123), *martin.ManagerID)
}

func TestParse_FourColumnsWithoutManager(t *testing.T) {
	input := "id,first_name,last_name,salary\n1,Joe,Doe,100.50\n"

	roster, err := ingest.NewParser(ingest.FailFast()).Parse(strings.NewReader(input))
	require.NoError(t, err)

	joe, ok := roster.Get(1)
	require.True(t, ok)
	assert.Equal(t, "100.5", joe.Salary.String())
}

func TestParse_InvalidHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "too few columns", input: "Id,firstName\n1,Joe"},
		{name: "wrong column", input: "Id,name,lastName,salary,managerId\n"},
		{name: "too many columns", input: "Id,firstName,lastName,salary,managerId,extra\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ingest.NewParser(ingest.LogAndContinue(quietLogger())).Parse(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, domain.ErrInvalidHeader)
		})
	}
}

func TestParse_MalformedRecordsFailFast(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{name: "bad id", row: "x,Joe,Doe,100,"},
		{name: "bad salary", row: "1,Joe,Doe,lots,"},
		{name: "negative salary", row: "1,Joe,Doe,-5,"},
		{name: "bad manager", row: "1,Joe,Doe,100,boss"},
		{name: "missing name", row: "1,,Doe,100,"},
		{name: "too few columns", row: "1,Joe,Doe"},
		{name: "too many columns", row: "1,Joe,Doe,100,,extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "Id,firstName,lastName,salary,managerId\n" + tt.row + "\n"
			_, err := ingest.NewParser(ingest.FailFast()).Parse(strings.NewReader(input))
			require.ErrorIs(t, err, domain.ErrMalformedRecord)

			var recErr *ingest.RecordError
			require.True(t, errors.As(err, &recErr))
			assert.Equal(t, 2, recErr.Line)
		})
	}
}

func TestParse_LogAndContinueSkipsBadRows(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	input := "Id,firstName,lastName,salary,managerId\n" +
		"1,Joe,Doe,100,\n" +
		"2,Jane,Doe,oops,1\n" +
		"3,Jack,Doe,80,1\n"

	roster, err := ingest.NewParser(ingest.LogAndContinue(logger)).Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, roster.Len())
	_, ok := roster.Get(2)
	assert.False(t, ok)
	assert.Contains(t, logs.String(), "skipping employee record")
	assert.Contains(t, logs.String(), "line=3")
}

func TestParse_DuplicateID(t *testing.T) {
	input := "Id,firstName,lastName,salary,managerId\n" +
		"1,Joe,Doe,100,\n" +
		"1,Jane,Doe,80,\n"

	_, err := ingest.NewParser(ingest.FailFast()).Parse(strings.NewReader(input))
	assert.ErrorIs(t, err, domain.ErrDuplicateEmployee)

	roster, err := ingest.NewParser(ingest.LogAndContinue(quietLogger())).Parse(strings.NewReader(input))
	require.NoError(t, err)
	joe, _ := roster.Get(1)
	assert.Equal(t, "Joe", joe.FirstName)
}

func TestErrorHandlers(t *testing.T) {
	recErr := &ingest.RecordError{Line: 7, Err: domain.ErrMalformedRecord}

	assert.NoError(t, ingest.LogAndContinue(quietLogger()).Handle(recErr))

	err := ingest.FailFast().Handle(recErr)
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)
	assert.Equal(t, "line 7: malformed employee record", err.Error())

	_, isFailFast := ingest.HandlerFor(true, quietLogger()).Handle(recErr).(*ingest.RecordError)
	assert.True(t, isFailFast)
	assert.NoError(t, ingest.HandlerFor(false, quietLogger()).Handle(recErr))
}
