package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest body para POST /api/sales. unit_price omitido toma el precio
// actual del producto como snapshot. location por defecto: cafeteria.
type RecordSaleRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity,omitempty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Location  string           `json:"location,omitempty"`
	Lines     []VariantLineDTO `json:"lines,omitempty"`
}

// SaleResponse salida de una venta registrada.
type SaleResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Total     decimal.Decimal  `json:"total"`
	Location  string           `json:"location"`
	CreatedAt time.Time        `json:"created_at"`
	Lines     []VariantLineDTO `json:"lines,omitempty"`
}
