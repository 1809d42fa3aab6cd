package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El stock inicial (opcional)
// se coloca en el almacén dentro de la misma transacción de creación.
type CreateProductRequest struct {
	Name            string           `json:"name"`
	Price           decimal.Decimal  `json:"price"`
	Cost            decimal.Decimal  `json:"cost"`
	HasVariants     bool             `json:"has_variants"`
	InitialQuantity int64            `json:"initial_quantity,omitempty"`
	InitialLines    []VariantLineDTO `json:"initial_lines,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto. El stock no se toca por
// aquí: solo vía traslados, ventas, mermas y entradas.
type UpdateProductRequest struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
	Cost  *decimal.Decimal `json:"cost"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	HasVariants bool            `json:"has_variants"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
