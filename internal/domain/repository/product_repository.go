package repository

import "github.com/tu-usuario/cafeteria-stock/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// El producto no lleva stock: los saldos se manejan vía StockRepository.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByName(name string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Product, error)
}
