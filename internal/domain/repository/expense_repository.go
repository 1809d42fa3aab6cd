package repository

import (
	"time"

	"github.com/tu-usuario/cafeteria-stock/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia de gastos generados por el motor
// (compras de almacén y devoluciones cocina → almacén).
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	List(from, to *time.Time, limit, offset int) ([]*entity.Expense, error)
}
