package entity

import "time"

// LocationStock es el saldo actual de un producto en una ubicación.
// Para productos sin parámetros Quantity es la única fuente de verdad; para
// productos con parámetros es un cache denormalizado que debe ser igual a la
// suma de sus VariantStock en todo momento observable entre transacciones.
type LocationStock struct {
	ProductID string
	Location  Location
	Quantity  int64
	UpdatedAt time.Time
}

// VariantStock es el saldo de un parámetro (sub-SKU) de un producto en una ubicación.
type VariantStock struct {
	ProductID string
	Location  Location
	Name      string
	Quantity  int64
	UpdatedAt time.Time
}
