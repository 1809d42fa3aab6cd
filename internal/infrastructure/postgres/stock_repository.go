package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/entity"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// Las variantes *ForUpdate agregan FOR UPDATE para que la verificación de saldo y el
// débito queden bajo el mismo bloqueo de fila.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el saldo agregado de un producto en una ubicación.
// Sin fila devuelve saldo cero (la fila se crea en el primer Upsert).
func (r *StockRepo) Get(productID string, loc entity.Location) (*entity.LocationStock, error) {
	return r.get(productID, loc, false)
}

// GetForUpdate obtiene el saldo agregado y bloquea la fila (SELECT FOR UPDATE).
// Si la fila no existe la materializa con saldo cero y la bloquea.
func (r *StockRepo) GetForUpdate(productID string, loc entity.Location) (*entity.LocationStock, error) {
	return r.get(productID, loc, true)
}

func (r *StockRepo) get(productID string, loc entity.Location, lock bool) (*entity.LocationStock, error) {
	query := `
		SELECT product_id, location, quantity, updated_at
		FROM location_stock WHERE product_id = $1 AND location = $2`
	if lock {
		query += " FOR UPDATE"
	}
	s, err := r.scanStock(query, productID, loc)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}
	if !lock {
		return &entity.LocationStock{ProductID: productID, Location: loc}, nil
	}
	// Una fila inexistente no se puede bloquear: se materializa con saldo cero
	// y se relee FOR UPDATE. Así dos abonos concurrentes al mismo destino nuevo
	// serializan sobre la fila en vez de pisarse con el valor calculado de cada
	// uno sobre una lectura cero.
	_, err = r.q.Exec(context.Background(), `
		INSERT INTO location_stock (product_id, location, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, location) DO NOTHING`, productID, loc)
	if err != nil {
		return nil, fmt.Errorf("init stock row: %w", err)
	}
	s, err = r.scanStock(query, productID, loc)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("lock stock row %s/%s: la fila no se materializó", productID, loc)
	}
	return s, nil
}

func (r *StockRepo) scanStock(query, productID string, loc entity.Location) (*entity.LocationStock, error) {
	var s entity.LocationStock
	err := r.q.QueryRow(context.Background(), query, productID, loc).Scan(
		&s.ProductID, &s.Location, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el saldo agregado (por producto y ubicación).
func (r *StockRepo) Upsert(stock *entity.LocationStock) error {
	query := `
		INSERT INTO location_stock (product_id, location, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, location)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ProductID, stock.Location, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// GetVariant obtiene el saldo de un parámetro. Sin fila devuelve saldo cero.
func (r *StockRepo) GetVariant(productID string, loc entity.Location, name string) (*entity.VariantStock, error) {
	return r.getVariant(productID, loc, name, false)
}

// GetVariantForUpdate obtiene el saldo de un parámetro y bloquea la fila.
// Si la fila no existe la materializa con saldo cero y la bloquea.
func (r *StockRepo) GetVariantForUpdate(productID string, loc entity.Location, name string) (*entity.VariantStock, error) {
	return r.getVariant(productID, loc, name, true)
}

func (r *StockRepo) getVariant(productID string, loc entity.Location, name string, lock bool) (*entity.VariantStock, error) {
	query := `
		SELECT product_id, location, name, quantity, updated_at
		FROM variant_stock WHERE product_id = $1 AND location = $2 AND name = $3`
	if lock {
		query += " FOR UPDATE"
	}
	v, err := r.scanVariant(query, productID, loc, name)
	if err != nil {
		return nil, err
	}
	if v != nil {
		return v, nil
	}
	if !lock {
		return &entity.VariantStock{ProductID: productID, Location: loc, Name: name}, nil
	}
	// Mismo protocolo que el agregado: materializar la fila del parámetro y
	// releer FOR UPDATE antes de mutar.
	_, err = r.q.Exec(context.Background(), `
		INSERT INTO variant_stock (product_id, location, name, quantity, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (product_id, location, name) DO NOTHING`, productID, loc, name)
	if err != nil {
		return nil, fmt.Errorf("init variant stock row: %w", err)
	}
	v, err = r.scanVariant(query, productID, loc, name)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("lock variant stock row %s/%s/%s: la fila no se materializó", productID, loc, name)
	}
	return v, nil
}

func (r *StockRepo) scanVariant(query, productID string, loc entity.Location, name string) (*entity.VariantStock, error) {
	var v entity.VariantStock
	err := r.q.QueryRow(context.Background(), query, productID, loc, name).Scan(
		&v.ProductID, &v.Location, &v.Name, &v.Quantity, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant stock: %w", err)
	}
	return &v, nil
}

// UpsertVariant inserta o actualiza el saldo de un parámetro.
func (r *StockRepo) UpsertVariant(v *entity.VariantStock) error {
	query := `
		INSERT INTO variant_stock (product_id, location, name, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, location, name)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, v.ProductID, v.Location, v.Name, v.Quantity)
	if err != nil {
		return fmt.Errorf("upsert variant stock: %w", err)
	}
	return nil
}

// ListVariants lista los parámetros de un producto en una ubicación.
func (r *StockRepo) ListVariants(productID string, loc entity.Location) ([]*entity.VariantStock, error) {
	query := `
		SELECT product_id, location, name, quantity, updated_at
		FROM variant_stock WHERE product_id = $1 AND location = $2 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, productID, loc)
	if err != nil {
		return nil, fmt.Errorf("list variant stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.VariantStock
	for rows.Next() {
		var v entity.VariantStock
		if err := rows.Scan(&v.ProductID, &v.Location, &v.Name, &v.Quantity, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan variant stock: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// SumVariants suma los parámetros de un producto en una ubicación (0 sin filas).
func (r *StockRepo) SumVariants(productID string, loc entity.Location) (int64, error) {
	var sum int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM variant_stock WHERE product_id = $1 AND location = $2`,
		productID, loc,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum variant stock: %w", err)
	}
	return sum, nil
}

// ListByLocation lista los saldos agregados de una ubicación.
func (r *StockRepo) ListByLocation(loc entity.Location) ([]*entity.LocationStock, error) {
	query := `
		SELECT product_id, location, quantity, updated_at
		FROM location_stock WHERE location = $1 ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, loc)
	if err != nil {
		return nil, fmt.Errorf("list stock by location: %w", err)
	}
	defer rows.Close()
	var list []*entity.LocationStock
	for rows.Next() {
		var s entity.LocationStock
		if err := rows.Scan(&s.ProductID, &s.Location, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// DeleteByProduct elimina todos los saldos (agregados y por parámetro) de un producto.
func (r *StockRepo) DeleteByProduct(productID string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM variant_stock WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete variant stock: %w", err)
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM location_stock WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete location stock: %w", err)
	}
	return nil
}
