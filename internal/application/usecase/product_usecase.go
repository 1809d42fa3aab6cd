package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/cafeteria-stock/internal/application/dto"
	"github.com/tu-usuario/cafeteria-stock/internal/application/inventory"
	"github.com/tu-usuario/cafeteria-stock/internal/domain"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/entity"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del catálogo. El stock no se
// modifica por aquí salvo el saldo inicial al crear; después solo vía movimientos.
type ProductUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner inventory.TxRunner, repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo}
}

// Create crea un producto y, si trae saldo inicial, lo coloca en el almacén con su
// fila de entrega en el libro, todo en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.HasVariants && in.InitialQuantity != 0 {
		return nil, domain.ErrInvalidInput
	}
	if !in.HasVariants && len(in.InitialLines) > 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Price:       in.Price,
		Cost:        in.Cost,
		HasVariants: in.HasVariants,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.txRunner.Run(ctx, func(r inventory.Repos) error {
		if err := r.Products.Create(product); err != nil {
			return err
		}
		return uc.placeInitialStock(r, product, in, now)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// placeInitialStock coloca el saldo de apertura en el almacén y deja constancia en
// el libro (entrega proveedor → almacén). Sin saldo inicial no escribe nada.
func (uc *ProductUseCase) placeInitialStock(r inventory.Repos, product *entity.Product, in dto.CreateProductRequest, now time.Time) error {
	var qty int64
	var lines []entity.TransferLine
	if product.HasVariants {
		if len(in.InitialLines) == 0 {
			return nil
		}
		// Mismo contrato que los movimientos: nombres no vacíos, cantidades
		// positivas y sin repetidos, ANTES de la primera escritura. Un nombre
		// repetido pisaría la línea anterior y el agregado (suma de todas las
		// líneas) quedaría divergente del desglose persistido.
		checked := make([]inventory.Line, 0, len(in.InitialLines))
		for _, ln := range in.InitialLines {
			checked = append(checked, inventory.Line{Name: ln.Name, Quantity: ln.Quantity})
		}
		if err := inventory.ValidateLines(checked); err != nil {
			return err
		}
		for _, ln := range in.InitialLines {
			qty += ln.Quantity
			lines = append(lines, entity.TransferLine{Name: ln.Name, Quantity: ln.Quantity})
			if err := r.Stock.UpsertVariant(&entity.VariantStock{
				ProductID: product.ID,
				Location:  entity.LocationAlmacen,
				Name:      ln.Name,
				Quantity:  ln.Quantity,
				UpdatedAt: now,
			}); err != nil {
				return err
			}
		}
	} else {
		if in.InitialQuantity < 0 {
			return domain.ErrInvalidInput
		}
		qty = in.InitialQuantity
	}
	if qty == 0 {
		return nil
	}
	if err := r.Stock.Upsert(&entity.LocationStock{
		ProductID: product.ID,
		Location:  entity.LocationAlmacen,
		Quantity:  qty,
		UpdatedAt: now,
	}); err != nil {
		return err
	}
	return r.Transfers.Create(&entity.TransferRecord{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		Kind:        entity.KindEntrega,
		Quantity:    qty,
		Source:      entity.LocationProveedor,
		Destination: entity.LocationAlmacen,
		CreatedAt:   now,
		Lines:       lines,
	})
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Update actualiza nombre, precio y costo. HasVariants es inmutable: cambiarlo
// dejaría huérfano el desglose existente.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Cost = *in.Cost
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto en cascada: libro de transacciones (líneas y filas),
// ventas, mermas y saldos, y por último el producto, en una sola transacción.
// Es el único lugar donde el libro se borra fuera de los flujos de reversión.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.Run(ctx, func(r inventory.Repos) error {
		if err := r.Transfers.DeleteByProduct(id); err != nil {
			return err
		}
		if err := r.Sales.DeleteByProduct(id); err != nil {
			return err
		}
		if err := r.Shrinkage.DeleteByProduct(id); err != nil {
			return err
		}
		if err := r.Stock.DeleteByProduct(id); err != nil {
			return err
		}
		return r.Products.Delete(id)
	})
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Cost:        p.Cost,
		HasVariants: p.HasVariants,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
