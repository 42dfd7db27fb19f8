package domain

import (
	"github.com/shopspring/decimal"
)

// Employee представляет запись о сотруднике из входного набора
type Employee struct {
	ID        int64           `json:"id" gorm:"primaryKey;autoIncrement:false"`
	FirstName string          `json:"first_name" gorm:"type:varchar(200);not null"`
	LastName  string          `json:"last_name" gorm:"type:varchar(200);not null"`
	Salary    decimal.Decimal `json:"salary" gorm:"type:numeric;not null"`
	ManagerID *int64          `json:"manager_id" gorm:"index"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// FullName возвращает имя и фамилию через пробел
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// HasManager сообщает, указан ли у сотрудника руководитель
func (e Employee) HasManager() bool {
	return e.ManagerID != nil
}

// Roster - набор сотрудников по id, сохраняющий порядок загрузки
type Roster struct {
	order []int64
	byID  map[int64]Employee
}

// NewRoster создаёт пустой набор
func NewRoster() *Roster {
	return &Roster{byID: make(map[int64]Employee)}
}

// RosterOf собирает набор из списка; при повторе id побеждает первая запись
func RosterOf(employees ...Employee) *Roster {
	r := NewRoster()
	for _, e := range employees {
		r.Add(e)
	}
	return r
}

// Add добавляет сотрудника. Возвращает false, если id уже занят.
func (r *Roster) Add(e Employee) bool {
	if _, ok := r.byID[e.ID]; ok {
		return false
	}
	r.order = append(r.order, e.ID)
	r.byID[e.ID] = e
	return true
}

// Get возвращает сотрудника по id
func (r *Roster) Get(id int64) (Employee, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// Len возвращает число сотрудников
func (r *Roster) Len() int {
	return len(r.order)
}

// Employees возвращает сотрудников в порядке загрузки
func (r *Roster) Employees() []Employee {
	result := make([]Employee, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.byID[id])
	}
	return result
}
