package repository

import "github.com/tu-usuario/cafeteria-stock/internal/domain/entity"

// ShrinkageRepository define el puerto de persistencia de mermas.
// Append-only salvo Delete, que solo se invoca tras revertir el débito.
type ShrinkageRepository interface {
	Create(loss *entity.ShrinkageRecord) error
	GetByID(id string) (*entity.ShrinkageRecord, error)
	Delete(id string) error
	List(limit, offset int) ([]*entity.ShrinkageRecord, error)
	DeleteByProduct(productID string) error
}
