package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LocationStockResponse saldo de un producto en una ubicación, con desglose por
// parámetro cuando aplica.
type LocationStockResponse struct {
	ProductID string           `json:"product_id"`
	Location  string           `json:"location"`
	Quantity  int64            `json:"quantity"`
	Variants  []VariantLineDTO `json:"variants,omitempty"`
}

// ProductStockResponse saldos de un producto en todas las ubicaciones operativas.
type ProductStockResponse struct {
	ProductID string                  `json:"product_id"`
	Locations []LocationStockResponse `json:"locations"`
}

// ExpenseResponse un gasto registrado por el motor.
type ExpenseResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Concept   string          `json:"concept"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}
