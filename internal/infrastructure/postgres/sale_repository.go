package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/entity"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del libro de ventas sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta con su desglose de parámetros.
func (r *SaleRepo) Create(sale *entity.SaleRecord) error {
	query := `
		INSERT INTO sales (id, product_id, quantity, unit_price, total, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ProductID, sale.Quantity, sale.UnitPrice, sale.Total, sale.Location, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, ln := range sale.Lines {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO sale_lines (sale_id, name, quantity) VALUES ($1, $2, $3)`,
			sale.ID, ln.Name, ln.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert sale line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta con sus líneas. Devuelve nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.SaleRecord, error) {
	query := `
		SELECT id, product_id, quantity, unit_price, total, location, created_at
		FROM sales WHERE id = $1`
	var s entity.SaleRecord
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.ProductID, &s.Quantity, &s.UnitPrice, &s.Total, &s.Location, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT sale_id, name, quantity FROM sale_lines WHERE sale_id = $1 ORDER BY name`, id)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ln entity.SaleLine
		if err := rows.Scan(&ln.SaleID, &ln.Name, &ln.Quantity); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		s.Lines = append(s.Lines, ln)
	}
	return &s, rows.Err()
}

// Delete elimina una venta y sus líneas (ON DELETE CASCADE).
func (r *SaleRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// List lista ventas en un rango de fechas, más recientes primero.
func (r *SaleRepo) List(from, to *time.Time, limit, offset int) ([]*entity.SaleRecord, error) {
	query := `
		SELECT id, product_id, quantity, unit_price, total, location, created_at
		FROM sales WHERE 1=1`
	args := []any{}
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.listQuery(query, args...)
}

// ListByLocation lista ventas de una ubicación vendedora, más recientes primero.
func (r *SaleRepo) ListByLocation(loc entity.Location, limit, offset int) ([]*entity.SaleRecord, error) {
	query := `
		SELECT id, product_id, quantity, unit_price, total, location, created_at
		FROM sales WHERE location = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`
	return r.listQuery(query, loc, limit, offset)
}

func (r *SaleRepo) listQuery(query string, args ...any) ([]*entity.SaleRecord, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleRecord
	ids := make([]string, 0)
	for rows.Next() {
		var s entity.SaleRecord
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Quantity, &s.UnitPrice, &s.Total, &s.Location, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	lineRows, err := r.q.Query(context.Background(),
		`SELECT sale_id, name, quantity FROM sale_lines WHERE sale_id = ANY($1) ORDER BY name`, ids)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer lineRows.Close()
	byID := make(map[string]*entity.SaleRecord, len(list))
	for _, s := range list {
		byID[s.ID] = s
	}
	for lineRows.Next() {
		var ln entity.SaleLine
		if err := lineRows.Scan(&ln.SaleID, &ln.Name, &ln.Quantity); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		if s, ok := byID[ln.SaleID]; ok {
			s.Lines = append(s.Lines, ln)
		}
	}
	return list, lineRows.Err()
}

// DeleteByProduct elimina todas las ventas de un producto (cascade al borrar el producto).
func (r *SaleRepo) DeleteByProduct(productID string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete sales: %w", err)
	}
	return nil
}
