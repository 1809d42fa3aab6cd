package repository

import "github.com/tu-usuario/cafeteria-stock/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar saldos por producto+ubicación,
// a nivel agregado y a nivel de parámetro. Usado dentro de transacciones: las variantes
// *ForUpdate bloquean la fila (SELECT FOR UPDATE) para que la verificación de saldo y el
// débito no sean separables por otra transacción concurrente.
type StockRepository interface {
	Get(productID string, loc entity.Location) (*entity.LocationStock, error)
	GetForUpdate(productID string, loc entity.Location) (*entity.LocationStock, error)
	Upsert(stock *entity.LocationStock) error

	GetVariant(productID string, loc entity.Location, name string) (*entity.VariantStock, error)
	GetVariantForUpdate(productID string, loc entity.Location, name string) (*entity.VariantStock, error)
	UpsertVariant(v *entity.VariantStock) error
	ListVariants(productID string, loc entity.Location) ([]*entity.VariantStock, error)
	// SumVariants devuelve la suma de todos los parámetros del producto en la ubicación
	// (0 si no hay filas). Es la base del recálculo del agregado cacheado.
	SumVariants(productID string, loc entity.Location) (int64, error)

	ListByLocation(loc entity.Location) ([]*entity.LocationStock, error)
	DeleteByProduct(productID string) error
}
