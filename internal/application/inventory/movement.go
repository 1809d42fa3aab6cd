package inventory

import (
	"time"

	"github.com/tu-usuario/cafeteria-stock/internal/domain"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/entity"
)

// Line es una cantidad solicitada para un parámetro concreto de un producto.
type Line struct {
	Name     string
	Quantity int64
}

// ValidateLines verifica que el desglose de parámetros sea utilizable: al menos una
// línea, cantidades positivas, nombres no vacíos y sin repetidos (un nombre repetido
// bloquearía dos veces la misma fila y duplicaría el débito; en un alta set-to-value
// pisaría la línea anterior y dejaría el agregado divergente de la suma).
func ValidateLines(lines []Line) error {
	if len(lines) == 0 {
		return domain.ErrInvalidInput
	}
	seen := make(map[string]struct{}, len(lines))
	for _, ln := range lines {
		if ln.Name == "" || ln.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
		if _, dup := seen[ln.Name]; dup {
			return domain.ErrInvalidInput
		}
		seen[ln.Name] = struct{}{}
	}
	return nil
}

// sumLines devuelve la cantidad agregada de un desglose.
func sumLines(lines []Line) int64 {
	var total int64
	for _, ln := range lines {
		total += ln.Quantity
	}
	return total
}

// toTransferLines convierte el desglose al formato del libro de transacciones.
func toTransferLines(lines []Line) []entity.TransferLine {
	out := make([]entity.TransferLine, 0, len(lines))
	for _, ln := range lines {
		out = append(out, entity.TransferLine{Name: ln.Name, Quantity: ln.Quantity})
	}
	return out
}

// debitFlat bloquea la fila agregada (SELECT FOR UPDATE), verifica saldo y resta.
// La verificación y el débito ocurren bajo el mismo bloqueo: no hay ventana
// check-then-act entre transacciones concurrentes.
func debitFlat(r Repos, productID string, loc entity.Location, qty int64, now time.Time) error {
	stock, err := r.Stock.GetForUpdate(productID, loc)
	if err != nil {
		return err
	}
	if stock.Quantity < qty {
		return &domain.InsufficientStockError{
			ProductID: productID,
			Requested: qty,
			Available: stock.Quantity,
		}
	}
	stock.Quantity -= qty
	stock.UpdatedAt = now
	return r.Stock.Upsert(stock)
}

// creditFlat bloquea la fila agregada y suma (la fila se crea si no existe).
func creditFlat(r Repos, productID string, loc entity.Location, qty int64, now time.Time) error {
	stock, err := r.Stock.GetForUpdate(productID, loc)
	if err != nil {
		return err
	}
	stock.Quantity += qty
	stock.UpdatedAt = now
	return r.Stock.Upsert(stock)
}

// debitVariants resta un desglose de parámetros en una ubicación.
//
// Orden estricto: primero se bloquea la fila agregada y se contrasta contra la suma
// de parámetros (divergencia = ConsistencyError, la operación no continúa); después
// se bloquean y verifican TODAS las líneas solicitadas; solo entonces se escribe.
// Un faltante en cualquier línea aborta sin haber mutado nada: no hay traslados
// parciales. Cierra recalculando el agregado cacheado dentro de la misma tx.
func debitVariants(r Repos, productID string, loc entity.Location, lines []Line, now time.Time) error {
	agg, err := r.Stock.GetForUpdate(productID, loc)
	if err != nil {
		return err
	}
	sum, err := r.Stock.SumVariants(productID, loc)
	if err != nil {
		return err
	}
	if agg.Quantity != sum {
		return &domain.ConsistencyError{
			ProductID:  productID,
			Location:   loc.String(),
			Aggregate:  agg.Quantity,
			VariantSum: sum,
		}
	}

	locked := make([]*entity.VariantStock, 0, len(lines))
	for _, ln := range lines {
		vs, err := r.Stock.GetVariantForUpdate(productID, loc, ln.Name)
		if err != nil {
			return err
		}
		if vs.Quantity < ln.Quantity {
			return &domain.InsufficientStockError{
				ProductID: productID,
				Variant:   ln.Name,
				Requested: ln.Quantity,
				Available: vs.Quantity,
			}
		}
		locked = append(locked, vs)
	}

	for i, ln := range lines {
		vs := locked[i]
		vs.Quantity -= ln.Quantity
		vs.UpdatedAt = now
		if err := r.Stock.UpsertVariant(vs); err != nil {
			return err
		}
	}
	return recomputeAggregate(r, productID, loc, now)
}

// creditVariants suma un desglose de parámetros en una ubicación (la fila del
// parámetro se crea en el primer abono) y recalcula el agregado cacheado.
func creditVariants(r Repos, productID string, loc entity.Location, lines []Line, now time.Time) error {
	for _, ln := range lines {
		vs, err := r.Stock.GetVariantForUpdate(productID, loc, ln.Name)
		if err != nil {
			return err
		}
		vs.Quantity += ln.Quantity
		vs.UpdatedAt = now
		if err := r.Stock.UpsertVariant(vs); err != nil {
			return err
		}
	}
	return recomputeAggregate(r, productID, loc, now)
}

// recomputeAggregate fija el agregado cacheado a la suma actual de parámetros.
// Siempre dentro de la misma tx que mutó las líneas, nunca diferido: así el
// invariante agregado == Σ parámetros es demostrable por operación.
func recomputeAggregate(r Repos, productID string, loc entity.Location, now time.Time) error {
	sum, err := r.Stock.SumVariants(productID, loc)
	if err != nil {
		return err
	}
	stock, err := r.Stock.GetForUpdate(productID, loc)
	if err != nil {
		return err
	}
	stock.Quantity = sum
	stock.UpdatedAt = now
	return r.Stock.Upsert(stock)
}

// debit aplica la ruta de parámetros o la plana según el producto.
func debit(r Repos, product *entity.Product, loc entity.Location, qty int64, lines []Line, now time.Time) error {
	if product.HasVariants {
		return debitVariants(r, product.ID, loc, lines, now)
	}
	return debitFlat(r, product.ID, loc, qty, now)
}

// credit aplica la ruta de parámetros o la plana según el producto.
func credit(r Repos, product *entity.Product, loc entity.Location, qty int64, lines []Line, now time.Time) error {
	if product.HasVariants {
		return creditVariants(r, product.ID, loc, lines, now)
	}
	return creditFlat(r, product.ID, loc, qty, now)
}

// resolveQuantity valida la combinación producto/desglose y devuelve la cantidad
// agregada del movimiento: productos con parámetros exigen desglose (y la cantidad
// es su suma); productos planos lo prohíben.
func resolveQuantity(product *entity.Product, qty int64, lines []Line) (int64, error) {
	if product.HasVariants {
		if err := ValidateLines(lines); err != nil {
			return 0, err
		}
		return sumLines(lines), nil
	}
	if len(lines) > 0 || qty <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return qty, nil
}
