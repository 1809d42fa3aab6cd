package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/cafeteria-stock/internal/domain"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/entity"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/repository"
)

// EntryUseCase registra entradas de mercancía al almacén (compras a proveedor).
// Es la puerta de ingreso de stock al sistema: acredita el almacén, deja una
// entrega proveedor → almacén en el libro y registra el gasto de la compra.
type EntryUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewEntryUseCase construye el caso de uso.
func NewEntryUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *EntryUseCase {
	return &EntryUseCase{txRunner: txRunner, productRepo: productRepo}
}

// EntryInput entrada de compra. Lines para productos con parámetros, Quantity para planos.
type EntryInput struct {
	ProductID string
	Quantity  int64
	Lines     []Line
}

// EntryResult saldo del almacén tras la entrada.
type EntryResult struct {
	Quantity       int64
	AlmacenBalance int64
}

// RegisterEntry acredita el almacén y registra gasto + fila de libro en una sola tx.
func (uc *EntryUseCase) RegisterEntry(ctx context.Context, input EntryInput) (*EntryResult, error) {
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	qty, err := resolveQuantity(product, input.Quantity, input.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var result EntryResult
	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if err := credit(r, product, entity.LocationAlmacen, qty, input.Lines, now); err != nil {
			return err
		}
		rec := &entity.TransferRecord{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			Kind:        entity.KindEntrega,
			Quantity:    qty,
			Source:      entity.LocationProveedor,
			Destination: entity.LocationAlmacen,
			CreatedAt:   now,
			Lines:       toTransferLines(input.Lines),
		}
		if err := r.Transfers.Create(rec); err != nil {
			return err
		}
		if err := recordExpense(r, product, entity.ExpenseConceptCompra, qty, now); err != nil {
			return err
		}
		stock, err := r.Stock.Get(product.ID, entity.LocationAlmacen)
		if err != nil {
			return err
		}
		result = EntryResult{Quantity: qty, AlmacenBalance: stock.Quantity}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
