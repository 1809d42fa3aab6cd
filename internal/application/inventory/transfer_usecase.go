package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cafeteria-stock/internal/domain"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/entity"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/repository"
)

// TransferUseCase ejecuta traslados de stock entre ubicaciones operativas de forma
// transaccional, con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// Cada traslado exitoso deja dos filas en el libro de transacciones (baja + entrega)
// con el mismo desglose de parámetros.
type TransferUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner, productRepo: productRepo}
}

// TransferInput entrada para un traslado. Para productos con parámetros se envía
// Lines y Quantity se ignora; para productos planos se envía Quantity.
type TransferInput struct {
	ProductID   string
	Quantity    int64
	Source      entity.Location
	Destination entity.Location
	Lines       []Line
}

// TransferResult saldos agregados tras el traslado.
type TransferResult struct {
	Quantity       int64
	SourceBalance  int64
	DestinationBal int64
}

// Transfer valida y ejecuta un traslado. Todo o nada: verificación de saldo por
// parámetro, débito en origen, crédito en destino, recálculo de agregados y las dos
// filas del libro ocurren en una sola transacción; cualquier fallo la revierte
// completa. El retorno cocina → almacén además registra un gasto cantidad × costo
// (consumo realizado); es la única asimetría entre direcciones.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if !input.Source.Operational() || !input.Destination.Operational() || input.Source == input.Destination {
		return nil, domain.ErrInvalidInput
	}
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
	var result TransferResult
	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if err := debit(r, product, input.Source, qty, input.Lines, now); err != nil {
			return err
		}
		if err := credit(r, product, input.Destination, qty, input.Lines, now); err != nil {
			return err
		}
		if err := appendPair(r, product.ID, qty, input.Source, input.Destination, input.Lines, now); err != nil {
			return err
		}
		// Devolver stock de cocina al almacén materializa el costo de lo consumido.
		if input.Source == entity.LocationCocina && input.Destination == entity.LocationAlmacen {
			if err := recordExpense(r, product, entity.ExpenseConceptDevolucion, qty, now); err != nil {
				return err
			}
		}

		src, err := r.Stock.Get(product.ID, input.Source)
		if err != nil {
			return err
		}
		dst, err := r.Stock.Get(product.ID, input.Destination)
		if err != nil {
			return err
		}
		result = TransferResult{Quantity: qty, SourceBalance: src.Quantity, DestinationBal: dst.Quantity}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// appendPair escribe las dos patas del traslado en el libro: una baja y una entrega,
// ambas con origen, destino y el mismo desglose, con el mismo timestamp.
func appendPair(r Repos, productID string, qty int64, source, dest entity.Location, lines []Line, now time.Time) error {
	for _, kind := range []entity.MovementKind{entity.KindBaja, entity.KindEntrega} {
		rec := &entity.TransferRecord{
			ID:          uuid.New().String(),
			ProductID:   productID,
			Kind:        kind,
			Quantity:    qty,
			Source:      source,
			Destination: dest,
			CreatedAt:   now,
			Lines:       toTransferLines(lines),
		}
		if err := r.Transfers.Create(rec); err != nil {
			return err
		}
	}
	return nil
}

// recordExpense registra un gasto cantidad × costo unitario del producto.
func recordExpense(r Repos, product *entity.Product, concept string, qty int64, now time.Time) error {
	return r.Expenses.Create(&entity.Expense{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Concept:   concept,
		Amount:    product.Cost.Mul(decimal.NewFromInt(qty)),
		CreatedAt: now,
	})
}
