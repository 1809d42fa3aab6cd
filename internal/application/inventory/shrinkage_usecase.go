package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/cafeteria-stock/internal/domain"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/entity"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/repository"
)

// ShrinkageUseCase registra mermas: bajas de stock sin destino. El stock sale del
// sistema; en el libro de transacciones queda una baja con destino en el sentinela
// "merma". La eliminación de una merma revierte el débito antes de borrar.
type ShrinkageUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	fallback    entity.Location // ubicación debitada cuando la merma no trae responsable
}

// NewShrinkageUseCase construye el caso de uso. fallback decide qué stock se debita
// en mermas sin responsable (configurable; por defecto el almacén).
func NewShrinkageUseCase(txRunner TxRunner, productRepo repository.ProductRepository, fallback entity.Location) *ShrinkageUseCase {
	if !fallback.Operational() {
		fallback = entity.LocationAlmacen
	}
	return &ShrinkageUseCase{txRunner: txRunner, productRepo: productRepo, fallback: fallback}
}

// LossInput entrada para registrar una merma. AttributedTo vacío usa el fallback.
type LossInput struct {
	ProductID    string
	Quantity     int64
	AttributedTo entity.Location
	Lines        []Line
}

// RecordLoss debita la ubicación responsable y persiste la merma con su desglose,
// más la baja correspondiente en el libro, todo en una sola tx. Mismas verificaciones
// de saldo que un traslado; sin crédito en ningún destino.
func (uc *ShrinkageUseCase) RecordLoss(ctx context.Context, input LossInput) (*entity.ShrinkageRecord, error) {
	attributed := input.AttributedTo
	if attributed == "" {
		attributed = uc.fallback
	}
	if !attributed.Operational() {
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
	loss := &entity.ShrinkageRecord{
		ID:           uuid.New().String(),
		ProductID:    product.ID,
		Quantity:     qty,
		AttributedTo: attributed,
		CreatedAt:    now,
	}
	for _, ln := range input.Lines {
		loss.Lines = append(loss.Lines, entity.ShrinkageLine{ShrinkageID: loss.ID, Name: ln.Name, Quantity: ln.Quantity})
	}

	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if err := debit(r, product, attributed, qty, input.Lines, now); err != nil {
			return err
		}
		if err := r.Shrinkage.Create(loss); err != nil {
			return err
		}
		rec := &entity.TransferRecord{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			Kind:        entity.KindBaja,
			Quantity:    qty,
			Source:      attributed,
			Destination: entity.LocationMerma,
			CreatedAt:   now,
			Lines:       toTransferLines(input.Lines),
		}
		return r.Transfers.Create(rec)
	})
	if err != nil {
		return nil, err
	}
	return loss, nil
}

// Reverse acredita de vuelta exactamente las cantidades/parámetros debitados por la
// merma (a la misma ubicación responsable) y elimina el registro con sus líneas,
// atómicamente. Un segundo Reverse sobre el mismo id falla con ErrNotFound.
func (uc *ShrinkageUseCase) Reverse(ctx context.Context, lossID string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(r Repos) error {
		loss, err := r.Shrinkage.GetByID(lossID)
		if err != nil {
			return err
		}
		if loss == nil {
			return domain.ErrNotFound
		}
		product, err := r.Products.GetByID(loss.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		lines := make([]Line, 0, len(loss.Lines))
		for _, ln := range loss.Lines {
			lines = append(lines, Line{Name: ln.Name, Quantity: ln.Quantity})
		}
		if err := credit(r, product, loss.AttributedTo, loss.Quantity, lines, now); err != nil {
			return err
		}
		return r.Shrinkage.Delete(loss.ID)
	})
}
