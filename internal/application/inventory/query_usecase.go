package inventory

import (
	"time"

	"github.com/tu-usuario/cafeteria-stock/internal/application/dto"
	"github.com/tu-usuario/cafeteria-stock/internal/domain"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/entity"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/repository"
)

// QueryUseCase lecturas sobre los libros y los saldos actuales. Usa repositorios
// atados al pool: toda lectura refleja estado confirmado, nunca una tx en vuelo.
type QueryUseCase struct {
	stockRepo     repository.StockRepository
	transferRepo  repository.TransferRepository
	saleRepo      repository.SaleRepository
	shrinkageRepo repository.ShrinkageRepository
	expenseRepo   repository.ExpenseRepository
	productRepo   repository.ProductRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(
	stockRepo repository.StockRepository,
	transferRepo repository.TransferRepository,
	saleRepo repository.SaleRepository,
	shrinkageRepo repository.ShrinkageRepository,
	expenseRepo repository.ExpenseRepository,
	productRepo repository.ProductRepository,
) *QueryUseCase {
	return &QueryUseCase{
		stockRepo:     stockRepo,
		transferRepo:  transferRepo,
		saleRepo:      saleRepo,
		shrinkageRepo: shrinkageRepo,
		expenseRepo:   expenseRepo,
		productRepo:   productRepo,
	}
}

// TransferFilter filtro del libro de transacciones: exactamente uno de los campos.
type TransferFilter struct {
	ProductID   string
	Source      entity.Location      // "desde"
	Destination entity.Location      // "hacia"
	Kind        entity.MovementKind  // "baja" | "entrega"
}

// ListTransfers consulta el libro por producto, por extremo o por tipo,
// siempre de la entrada más reciente a la más antigua.
func (uc *QueryUseCase) ListTransfers(filter TransferFilter, limit, offset int) ([]dto.TransferRecordResponse, error) {
	var (
		recs []*entity.TransferRecord
		err  error
	)
	switch {
	case filter.ProductID != "":
		recs, err = uc.transferRepo.ListByProduct(filter.ProductID, limit, offset)
	case filter.Source != "":
		recs, err = uc.transferRepo.ListBySource(filter.Source, limit, offset)
	case filter.Destination != "":
		recs, err = uc.transferRepo.ListByDestination(filter.Destination, limit, offset)
	case filter.Kind != "":
		if !filter.Kind.Valid() {
			return nil, domain.ErrInvalidInput
		}
		recs, err = uc.transferRepo.ListByKind(filter.Kind, limit, offset)
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransferRecordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toTransferRecordResponse(rec))
	}
	return out, nil
}

// LocationBalances saldos de todos los productos en una ubicación, con desglose.
func (uc *QueryUseCase) LocationBalances(loc entity.Location) ([]dto.LocationStockResponse, error) {
	if !loc.Operational() {
		return nil, domain.ErrInvalidInput
	}
	stocks, err := uc.stockRepo.ListByLocation(loc)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationStockResponse, 0, len(stocks))
	for _, s := range stocks {
		variants, err := uc.stockRepo.ListVariants(s.ProductID, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, toLocationStockResponse(s, variants))
	}
	return out, nil
}

// ProductStock saldos de un producto en las tres ubicaciones operativas.
func (uc *QueryUseCase) ProductStock(productID string) (*dto.ProductStockResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := &dto.ProductStockResponse{ProductID: productID}
	for _, loc := range []entity.Location{entity.LocationAlmacen, entity.LocationCocina, entity.LocationCafeteria} {
		s, err := uc.stockRepo.Get(productID, loc)
		if err != nil {
			return nil, err
		}
		var variants []*entity.VariantStock
		if product.HasVariants {
			variants, err = uc.stockRepo.ListVariants(productID, loc)
			if err != nil {
				return nil, err
			}
		}
		resp.Locations = append(resp.Locations, toLocationStockResponse(s, variants))
	}
	return resp, nil
}

// ListSales ventas en un rango de fechas, más recientes primero.
func (uc *QueryUseCase) ListSales(from, to *time.Time, limit, offset int) ([]dto.SaleResponse, error) {
	sales, err := uc.saleRepo.List(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

// ListLosses mermas registradas, más recientes primero.
func (uc *QueryUseCase) ListLosses(limit, offset int) ([]dto.LossResponse, error) {
	losses, err := uc.shrinkageRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LossResponse, 0, len(losses))
	for _, l := range losses {
		out = append(out, toLossResponse(l))
	}
	return out, nil
}

// ListExpenses gastos del motor en un rango de fechas, más recientes primero.
func (uc *QueryUseCase) ListExpenses(from, to *time.Time, limit, offset int) ([]dto.ExpenseResponse, error) {
	expenses, err := uc.expenseRepo.List(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, dto.ExpenseResponse{
			ID:        e.ID,
			ProductID: e.ProductID,
			Concept:   e.Concept,
			Amount:    e.Amount,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}

// ── conversiones a DTO ───────────────────────────────────────────────────────

func toTransferRecordResponse(rec *entity.TransferRecord) dto.TransferRecordResponse {
	resp := dto.TransferRecordResponse{
		ID:          rec.ID,
		ProductID:   rec.ProductID,
		Kind:        string(rec.Kind),
		Quantity:    rec.Quantity,
		Source:      rec.Source.String(),
		Destination: rec.Destination.String(),
		CreatedAt:   rec.CreatedAt,
	}
	for _, ln := range rec.Lines {
		resp.Lines = append(resp.Lines, dto.VariantLineDTO{Name: ln.Name, Quantity: ln.Quantity})
	}
	return resp
}

func toLocationStockResponse(s *entity.LocationStock, variants []*entity.VariantStock) dto.LocationStockResponse {
	resp := dto.LocationStockResponse{
		ProductID: s.ProductID,
		Location:  s.Location.String(),
		Quantity:  s.Quantity,
	}
	for _, v := range variants {
		resp.Variants = append(resp.Variants, dto.VariantLineDTO{Name: v.Name, Quantity: v.Quantity})
	}
	return resp
}

// ToSaleResponse expone la conversión para los handlers que crean ventas.
func ToSaleResponse(s *entity.SaleRecord) dto.SaleResponse { return toSaleResponse(s) }

func toSaleResponse(s *entity.SaleRecord) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:        s.ID,
		ProductID: s.ProductID,
		Quantity:  s.Quantity,
		UnitPrice: s.UnitPrice,
		Total:     s.Total,
		Location:  s.Location.String(),
		CreatedAt: s.CreatedAt,
	}
	for _, ln := range s.Lines {
		resp.Lines = append(resp.Lines, dto.VariantLineDTO{Name: ln.Name, Quantity: ln.Quantity})
	}
	return resp
}

// ToLossResponse expone la conversión para los handlers que registran mermas.
func ToLossResponse(l *entity.ShrinkageRecord) dto.LossResponse { return toLossResponse(l) }

func toLossResponse(l *entity.ShrinkageRecord) dto.LossResponse {
	resp := dto.LossResponse{
		ID:           l.ID,
		ProductID:    l.ProductID,
		Quantity:     l.Quantity,
		AttributedTo: l.AttributedTo.String(),
		CreatedAt:    l.CreatedAt,
	}
	for _, ln := range l.Lines {
		resp.Lines = append(resp.Lines, dto.VariantLineDTO{Name: ln.Name, Quantity: ln.Quantity})
	}
	return resp
}
