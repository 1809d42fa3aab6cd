package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/entity"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/repository"
)

var _ repository.ShrinkageRepository = (*ShrinkageRepo)(nil)

// ShrinkageRepo implementación del libro de mermas sobre PostgreSQL (usable con pool o tx).
type ShrinkageRepo struct {
	q Querier
}

// NewShrinkageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShrinkageRepository(q Querier) *ShrinkageRepo {
	return &ShrinkageRepo{q: q}
}

// Create persiste una merma con su desglose de parámetros.
func (r *ShrinkageRepo) Create(loss *entity.ShrinkageRecord) error {
	query := `
		INSERT INTO shrinkages (id, product_id, quantity, attributed_to, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		loss.ID, loss.ProductID, loss.Quantity, loss.AttributedTo, loss.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shrinkage: %w", err)
	}
	for _, ln := range loss.Lines {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO shrinkage_lines (shrinkage_id, name, quantity) VALUES ($1, $2, $3)`,
			loss.ID, ln.Name, ln.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert shrinkage line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una merma con sus líneas. Devuelve nil si no existe.
func (r *ShrinkageRepo) GetByID(id string) (*entity.ShrinkageRecord, error) {
	query := `
		SELECT id, product_id, quantity, attributed_to, created_at
		FROM shrinkages WHERE id = $1`
	var l entity.ShrinkageRecord
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.ProductID, &l.Quantity, &l.AttributedTo, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shrinkage: %w", err)
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT shrinkage_id, name, quantity FROM shrinkage_lines WHERE shrinkage_id = $1 ORDER BY name`, id)
	if err != nil {
		return nil, fmt.Errorf("list shrinkage lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ln entity.ShrinkageLine
		if err := rows.Scan(&ln.ShrinkageID, &ln.Name, &ln.Quantity); err != nil {
			return nil, fmt.Errorf("scan shrinkage line: %w", err)
		}
		l.Lines = append(l.Lines, ln)
	}
	return &l, rows.Err()
}

// Delete elimina una merma y sus líneas (ON DELETE CASCADE).
func (r *ShrinkageRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM shrinkages WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete shrinkage: %w", err)
	}
	return nil
}

// List lista mermas, más recientes primero.
func (r *ShrinkageRepo) List(limit, offset int) ([]*entity.ShrinkageRecord, error) {
	query := `
		SELECT id, product_id, quantity, attributed_to, created_at
		FROM shrinkages ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list shrinkages: %w", err)
	}
	defer rows.Close()
	var list []*entity.ShrinkageRecord
	ids := make([]string, 0)
	for rows.Next() {
		var l entity.ShrinkageRecord
		if err := rows.Scan(&l.ID, &l.ProductID, &l.Quantity, &l.AttributedTo, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan shrinkage: %w", err)
		}
		list = append(list, &l)
		ids = append(ids, l.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	lineRows, err := r.q.Query(context.Background(),
		`SELECT shrinkage_id, name, quantity FROM shrinkage_lines WHERE shrinkage_id = ANY($1) ORDER BY name`, ids)
	if err != nil {
		return nil, fmt.Errorf("list shrinkage lines: %w", err)
	}
	defer lineRows.Close()
	byID := make(map[string]*entity.ShrinkageRecord, len(list))
	for _, l := range list {
		byID[l.ID] = l
	}
	for lineRows.Next() {
		var ln entity.ShrinkageLine
		if err := lineRows.Scan(&ln.ShrinkageID, &ln.Name, &ln.Quantity); err != nil {
			return nil, fmt.Errorf("scan shrinkage line: %w", err)
		}
		if l, ok := byID[ln.ShrinkageID]; ok {
			l.Lines = append(l.Lines, ln)
		}
	}
	return list, lineRows.Err()
}

// DeleteByProduct elimina todas las mermas de un producto (cascade al borrar el producto).
func (r *ShrinkageRepo) DeleteByProduct(productID string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM shrinkages WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete shrinkages: %w", err)
	}
	return nil
}
