package audit

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/org-structure-audit/internal/domain"
)

// Kind - вид замечания
type Kind string

const (
	KindUnderpaidManager  Kind = "underpaid_manager"
	KindOverpaidManager   Kind = "overpaid_manager"
	KindLongReportingLine Kind = "long_reporting_line"
	KindUnreachable       Kind = "unreachable"
)

const unreachablePrefix = "The following employees are not in the hierarchy:"

// Finding - одно замечание отчёта
type Finding struct {
	Kind Kind
	// Employees - сотрудники, о которых замечание; для KindUnreachable их может быть несколько
	Employees []domain.Employee
	// Delta - отклонение зарплаты от границы полосы, округлённое до копеек
	Delta   decimal.Decimal
	Message string
}

// Result - результат одной проверки
type Result struct {
	Findings []Finding
}

// Lines возвращает текст замечаний в порядке обхода
func (r *Result) Lines() []string {
	lines := make([]string, len(r.Findings))
	for i, f := range r.Findings {
		lines[i] = f.Message
	}
	return lines
}

// Count возвращает число замечаний заданного вида
func (r *Result) Count(kind Kind) int {
	n := 0
	for _, f := range r.Findings {
		if f.Kind == kind {
			n++
		}
	}
	return n
}

func underpaidFinding(manager domain.Employee, pct string, delta decimal.Decimal) Finding {
	return Finding{
		Kind:      KindUnderpaidManager,
		Employees: []domain.Employee{manager},
		Delta:     delta,
		Message: fmt.Sprintf("Manager %s %s salary (%6s) is less than %s%% of subordinates average salary by %6s",
			manager.FirstName, manager.LastName, manager.Salary.StringFixed(2), pct, delta.StringFixed(2)),
	}
}

func overpaidFinding(manager domain.Employee, pct string, delta decimal.Decimal) Finding {
	return Finding{
		Kind:      KindOverpaidManager,
		Employees: []domain.Employee{manager},
		Delta:     delta,
		Message: fmt.Sprintf("Manager %s %s salary (%6s) is more than %s%% of subordinates average salary by %6s",
			manager.FirstName, manager.LastName, manager.Salary.StringFixed(2), pct, delta.StringFixed(2)),
	}
}

func longReportingLineFinding(emp domain.Employee, maxLevel int) Finding {
	return Finding{
		Kind:      KindLongReportingLine,
		Employees: []domain.Employee{emp},
		Message: fmt.Sprintf("Employee (%s %s) has more than %d managers between them and the CEO!",
			emp.FirstName, emp.LastName, maxLevel-1),
	}
}

func unreachableFinding(employees []domain.Employee) Finding {
	names := make([]string, len(employees))
	for i, e := range employees {
		names[i] = e.FullName()
	}
	return Finding{
		Kind:      KindUnreachable,
		Employees: employees,
		Message:   unreachablePrefix + strings.Join(names, ", ") + ".",
	}
}
