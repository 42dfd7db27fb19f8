// Package ingest читает сотрудников из CSV.
//
// Ожидаемые колонки: Id,firstName,lastName,salary,managerId. Первая строка -
// заголовок, пустые строки пропускаются, managerId может быть пустым у CEO.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/org-structure-audit/internal/domain"
)

var columns = []string{"id", "firstname", "lastname", "salary", "managerid"}

const requiredColumns = 4

// row - поля строки, проверяемые валидатором
type row struct {
	FirstName string `validate:"required,max=200"`
	LastName  string `validate:"required,max=200"`
}

// Parser разбирает CSV в набор сотрудников
type Parser struct {
	handler  ErrorHandler
	validate *validator.Validate
}

// NewParser создаёт парсер с заданной стратегией обработки ошибок
func NewParser(handler ErrorHandler) *Parser {
	return &Parser{
		handler:  handler,
		validate: validator.New(),
	}
}

// Parse читает весь поток. Ошибка заголовка фатальна всегда,
// ошибки строк передаются в ErrorHandler.
func (p *Parser) Parse(in io.Reader) (*domain.Roster, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", domain.ErrInvalidHeader)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidHeader, err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	roster := domain.NewRoster()
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var recErr *RecordError
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, err
			}
			recErr = malformed(parseErr.Line, "%v", parseErr.Err)
		} else {
			line, _ := reader.FieldPos(0)
			var emp domain.Employee
			emp, recErr = p.parseRecord(line, record)
			if recErr == nil && !roster.Add(emp) {
				recErr = &RecordError{
					Line: line,
					Err:  fmt.Errorf("%w: %d", domain.ErrDuplicateEmployee, emp.ID),
				}
			}
		}

		if recErr != nil {
			if err := p.handler.Handle(recErr); err != nil {
				return nil, err
			}
		}
	}

	return roster, nil
}

func checkHeader(header []string) error {
	if len(header) < requiredColumns || len(header) > len(columns) {
		return fmt.Errorf("%w: expected %d or %d columns, got %d",
			domain.ErrInvalidHeader, requiredColumns, len(columns), len(header))
	}
	for i, name := range header {
		normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", ""))
		if i == 0 {
			normalized = strings.TrimPrefix(normalized, "\ufeff")
		}
		if normalized != columns[i] {
			return fmt.Errorf("%w: column %d is %q, expected %q", domain.ErrInvalidHeader, i+1, name, columns[i])
		}
	}
	return nil
}

func (p *Parser) parseRecord(line int, record []string) (domain.Employee, *RecordError) {
	if len(record) < requiredColumns || len(record) > len(columns) {
		return domain.Employee{}, malformed(line, "expected %d or %d columns, got %d", requiredColumns, len(columns), len(record))
	}
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return domain.Employee{}, malformed(line, "invalid id %q", record[0])
	}

	r := row{FirstName: record[1], LastName: record[2]}
	if err := p.validate.Struct(&r); err != nil {
		return domain.Employee{}, malformed(line, "%v", err)
	}

	salary, err := decimal.NewFromString(record[3])
	if err != nil {
		return domain.Employee{}, malformed(line, "invalid salary %q", record[3])
	}
	if salary.IsNegative() {
		return domain.Employee{}, malformed(line, "negative salary %s", record[3])
	}

	emp := domain.Employee{
		ID:        id,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Salary:    salary,
	}

	if len(record) == len(columns) && record[4] != "" {
		managerID, err := strconv.ParseInt(record[4], 10, 64)
		if err != nil {
			return domain.Employee{}, malformed(line, "invalid manager id %q", record[4])
		}
		emp.ManagerID = &managerID
	}

	return emp, nil
}
