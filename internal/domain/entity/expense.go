package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conceptos de gasto generados por el motor de inventario.
const (
	ExpenseConceptCompra     = "compra almacén"     // entrada de mercancía
	ExpenseConceptDevolucion = "devolución almacén" // retorno cocina → almacén (consumo realizado)
)

// Expense es un gasto registrado por el motor: cantidad × costo unitario.
type Expense struct {
	ID        string
	ProductID string
	Concept   string
	Amount    decimal.Decimal
	CreatedAt time.Time
}
