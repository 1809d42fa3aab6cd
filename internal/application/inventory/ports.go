package inventory

import (
	"context"

	"github.com/tu-usuario/cafeteria-stock/internal/domain/repository"
)

// Repos agrupa los repositorios que participan en una transacción del motor.
// Dentro de TxRunner.Run todos quedan atados a la misma tx de BD.
type Repos struct {
	Products  repository.ProductRepository
	Stock     repository.StockRepository
	Transfers repository.TransferRepository
	Sales     repository.SaleRepository
	Shrinkage repository.ShrinkageRepository
	Expenses  repository.ExpenseRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para el motor de inventario: o se confirman
// todas las mutaciones (débitos, créditos, recálculo del agregado, filas de libro)
// o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
