package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo vendible del catálogo.
// Si HasVariants es true, el stock del producto solo tiene sentido como la suma
// de sus líneas de parámetro (tallas, sabores); el producto en sí no lleva stock:
// el saldo vive por ubicación en LocationStock/VariantStock.
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal // precio unitario de venta
	Cost        decimal.Decimal // costo unitario de compra
	HasVariants bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
