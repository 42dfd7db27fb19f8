// Package audit проверяет дерево подчинения: полосу зарплат руководителей,
// длину линий подчинения и достижимость сотрудников от CEO.
package audit

import (
	"github.com/shopspring/decimal"

	"github.com/org-structure-audit/internal/domain"
	"github.com/org-structure-audit/internal/hierarchy"
)

// Evaluate обходит дерево от корня и собирает замечания.
// Ошибка возможна только при неверных настройках; в этом случае обход не выполняется.
func Evaluate(h *hierarchy.Hierarchy, t Thresholds) (*Result, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	result := &Result{}

	root := h.Root()
	if !root.IsManager() {
		return result, nil
	}

	e := &evaluation{
		h:        h,
		lower:    t.Lower.Decimal,
		upper:    t.Upper.Decimal,
		lowerPct: percentage(t.Lower.Decimal),
		upperPct: percentage(t.Upper.Decimal),
		maxLevel: t.maxLevel(),
		visited:  make(map[int64]struct{}, h.Len()),
	}

	result.Findings = e.checkManager(root, 0)

	if unreached := e.unreached(); len(unreached) > 0 {
		result.Findings = append(result.Findings, unreachableFinding(unreached))
	}

	return result, nil
}

// Report возвращает только текст замечаний
func Report(h *hierarchy.Hierarchy, t Thresholds) ([]string, error) {
	r, err := Evaluate(h, t)
	if err != nil {
		return nil, err
	}
	return r.Lines(), nil
}

// evaluation - состояние одного обхода; не переиспользуется между вызовами
type evaluation struct {
	h        *hierarchy.Hierarchy
	lower    decimal.Decimal
	upper    decimal.Decimal
	lowerPct string
	upperPct string
	maxLevel int
	visited  map[int64]struct{}
}

// checkManager проверяет руководителя и рекурсивно его подчинённых.
// Дерево, достижимое от корня, ацикличное: у каждого узла один родитель, а у корня его нет.
func (e *evaluation) checkManager(manager *hierarchy.Node, level int) []Finding {
	if !manager.IsManager() {
		return nil
	}

	subordinates := e.h.Children(manager)
	findings := e.checkSalaryBand(manager.Employee, subordinates)

	e.visited[manager.Employee.ID] = struct{}{}
	for _, sub := range subordinates {
		e.visited[sub.Employee.ID] = struct{}{}
		if sub.IsManager() {
			findings = append(findings, e.checkManager(sub, level+1)...)
		}
		if level+1 > e.maxLevel {
			findings = append(findings, longReportingLineFinding(sub.Employee, e.maxLevel))
		}
	}

	return findings
}

// checkSalaryBand сравнивает зарплату руководителя со средней по прямым подчинённым.
// Сравнение ведётся без деления: salary*n против sum*k, поэтому результат точный.
func (e *evaluation) checkSalaryBand(manager domain.Employee, subordinates []*hierarchy.Node) []Finding {
	sum := decimal.Zero
	for _, sub := range subordinates {
		sum = sum.Add(sub.Employee.Salary)
	}
	count := decimal.NewFromInt(int64(len(subordinates)))
	scaledSalary := manager.Salary.Mul(count)

	var findings []Finding

	if lowerBound := sum.Mul(e.lower); scaledSalary.LessThan(lowerBound) {
		delta := lowerBound.Sub(scaledSalary).DivRound(count, 2)
		findings = append(findings, underpaidFinding(manager, e.lowerPct, delta))
	}
	if upperBound := sum.Mul(e.upper); scaledSalary.GreaterThan(upperBound) {
		delta := scaledSalary.Sub(upperBound).DivRound(count, 2)
		findings = append(findings, overpaidFinding(manager, e.upperPct, delta))
	}

	return findings
}

// unreached возвращает не посещённых сотрудников в порядке загрузки
func (e *evaluation) unreached() []domain.Employee {
	var result []domain.Employee
	for _, n := range e.h.Nodes() {
		if _, ok := e.visited[n.Employee.ID]; !ok {
			result = append(result, n.Employee)
		}
	}
	return result
}
