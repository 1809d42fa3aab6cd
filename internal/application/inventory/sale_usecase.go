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

// SaleUseCase registra ventas contra el stock de la ubicación vendedora y sus
// reversiones. Las ventas son un libro paralelo: no escriben en el libro de
// transacciones. El débito usa las mismas primitivas (y verificaciones) que un
// traslado; la reversión acredita exactamente lo debitado y destruye el registro.
type SaleUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, productRepo: productRepo}
}

// SaleInput entrada para registrar una venta. UnitPrice nil toma el precio actual
// del producto como snapshot. Location por defecto es la cafetería.
type SaleInput struct {
	ProductID string
	Quantity  int64
	UnitPrice *decimal.Decimal
	Location  entity.Location
	Lines     []Line
}

// RecordSale debita la ubicación vendedora (ruta plana o por parámetros, con el
// mismo recálculo de agregado) e inserta la venta con snapshot de precio y total,
// todo en una sola tx.
func (uc *SaleUseCase) RecordSale(ctx context.Context, input SaleInput) (*entity.SaleRecord, error) {
	loc := input.Location
	if loc == "" {
		loc = entity.LocationCafeteria
	}
	if !loc.Operational() {
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
	price := product.Price
	if input.UnitPrice != nil {
		if input.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		price = *input.UnitPrice
	}

	now := time.Now()
	sale := buildSale(product.ID, qty, price, loc, input.Lines, now)
	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if err := debit(r, product, loc, qty, input.Lines, now); err != nil {
			return err
		}
		return r.Sales.Create(sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// ReverseSale lee las líneas originales de la venta, acredita exactamente esas
// cantidades a la ubicación vendedora y elimina la venta con sus líneas, en una
// sola tx. Un segundo ReverseSale sobre el mismo id falla con ErrNotFound: no hay
// doble crédito posible.
func (uc *SaleUseCase) ReverseSale(ctx context.Context, saleID string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(r Repos) error {
		return reverseSaleTx(r, saleID, now)
	})
}

// UpdateSale reemplaza una venta: revierte la original y aplica la nueva como un
// débito fresco, dentro de la misma tx, de modo que el libro nunca observa un saldo
// intermedio incorrecto.
func (uc *SaleUseCase) UpdateSale(ctx context.Context, saleID string, input SaleInput) (*entity.SaleRecord, error) {
	loc := input.Location
	if loc == "" {
		loc = entity.LocationCafeteria
	}
	if !loc.Operational() {
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
	price := product.Price
	if input.UnitPrice != nil {
		if input.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		price = *input.UnitPrice
	}

	now := time.Now()
	sale := buildSale(product.ID, qty, price, loc, input.Lines, now)
	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if err := reverseSaleTx(r, saleID, now); err != nil {
			return err
		}
		if err := debit(r, product, loc, qty, input.Lines, now); err != nil {
			return err
		}
		return r.Sales.Create(sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// reverseSaleTx deshace una venta dentro de una tx ya iniciada: crédito exacto y borrado.
func reverseSaleTx(r Repos, saleID string, now time.Time) error {
	sale, err := r.Sales.GetByID(saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	product, err := r.Products.GetByID(sale.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	lines := make([]Line, 0, len(sale.Lines))
	for _, ln := range sale.Lines {
		lines = append(lines, Line{Name: ln.Name, Quantity: ln.Quantity})
	}
	if err := credit(r, product, sale.Location, sale.Quantity, lines, now); err != nil {
		return err
	}
	return r.Sales.Delete(sale.ID)
}

func buildSale(productID string, qty int64, price decimal.Decimal, loc entity.Location, lines []Line, now time.Time) *entity.SaleRecord {
	sale := &entity.SaleRecord{
		ID:        uuid.New().String(),
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: price,
		Total:     price.Mul(decimal.NewFromInt(qty)),
		Location:  loc,
		CreatedAt: now,
	}
	for _, ln := range lines {
		sale.Lines = append(sale.Lines, entity.SaleLine{SaleID: sale.ID, Name: ln.Name, Quantity: ln.Quantity})
	}
	return sale
}
