package repository

import "github.com/tu-usuario/cafeteria-stock/internal/domain/entity"

// TransferRepository define el puerto del libro de transacciones (append-only).
// Las filas nunca se editan; la única eliminación es el cascade al borrar un producto.
// Todos los listados devuelven las entradas más recientes primero, con sus líneas.
type TransferRepository interface {
	Create(rec *entity.TransferRecord) error
	ListByProduct(productID string, limit, offset int) ([]*entity.TransferRecord, error)
	ListBySource(loc entity.Location, limit, offset int) ([]*entity.TransferRecord, error)
	ListByDestination(loc entity.Location, limit, offset int) ([]*entity.TransferRecord, error)
	ListByKind(kind entity.MovementKind, limit, offset int) ([]*entity.TransferRecord, error)
	DeleteByProduct(productID string) error
}
