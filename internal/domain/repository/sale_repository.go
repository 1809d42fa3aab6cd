package repository

import (
	"time"

	"github.com/tu-usuario/cafeteria-stock/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia de ventas (libro paralelo al de
// transacciones). Una venta es inmutable una vez creada; Delete elimina el registro
// y sus líneas y solo se invoca después de acreditar el stock de vuelta.
type SaleRepository interface {
	Create(sale *entity.SaleRecord) error
	GetByID(id string) (*entity.SaleRecord, error)
	Delete(id string) error
	List(from, to *time.Time, limit, offset int) ([]*entity.SaleRecord, error)
	ListByLocation(loc entity.Location, limit, offset int) ([]*entity.SaleRecord, error)
	DeleteByProduct(productID string) error
}
