package repository

import (
	"context"

	"github.com/org-structure-audit/internal/domain"
	"gorm.io/gorm"
)

const insertBatchSize = 500

// EmployeeRepository определяет интерфейс хранилища загруженного состава сотрудников
type EmployeeRepository interface {
	List(ctx context.Context) ([]domain.Employee, error)
	ReplaceAll(ctx context.Context, employees []domain.Employee) error
	Count(ctx context.Context) (int64, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// List возвращает всех сотрудников по возрастанию id
func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&employees).Error
	return employees, err
}

// ReplaceAll заменяет весь состав одной транзакцией
func (r *employeeRepository) ReplaceAll(ctx context.Context, employees []domain.Employee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&domain.Employee{}).Error
		if err != nil {
			return err
		}
		if len(employees) == 0 {
			return nil
		}
		return tx.CreateInBatches(employees, insertBatchSize).Error
	})
}

func (r *employeeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Employee{}).Count(&count).Error
	return count, err
}
