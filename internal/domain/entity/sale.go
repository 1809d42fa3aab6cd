package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord registra una venta contra el stock de una ubicación vendedora.
// Price y Total son snapshots al momento de la venta: cambios posteriores del
// precio del producto no alteran ventas ya registradas. La reversión acredita
// exactamente las cantidades/parámetros debitados y destruye el registro.
type SaleRecord struct {
	ID        string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	Location  Location
	CreatedAt time.Time
	Lines     []SaleLine
}

// SaleLine es el desglose por parámetro de una venta.
type SaleLine struct {
	SaleID   string
	Name     string
	Quantity int64
}
