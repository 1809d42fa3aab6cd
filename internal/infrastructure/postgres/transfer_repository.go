package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/cafeteria-stock/internal/domain/entity"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación del libro de transacciones sobre PostgreSQL
// (usable con pool o tx). Append-only: no hay Update.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste una entrada del libro con su desglose de parámetros.
func (r *TransferRepo) Create(rec *entity.TransferRecord) error {
	query := `
		INSERT INTO transfers (id, product_id, kind, quantity, source, destination, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.ProductID, rec.Kind, rec.Quantity, rec.Source, rec.Destination, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	for _, ln := range rec.Lines {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO transfer_lines (transfer_id, name, quantity) VALUES ($1, $2, $3)`,
			rec.ID, ln.Name, ln.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert transfer line: %w", err)
		}
	}
	return nil
}

// ListByProduct lista entradas de un producto, más recientes primero.
func (r *TransferRepo) ListByProduct(productID string, limit, offset int) ([]*entity.TransferRecord, error) {
	return r.list("product_id", productID, limit, offset)
}

// ListBySource lista entradas con origen en una ubicación ("desde"), más recientes primero.
func (r *TransferRepo) ListBySource(loc entity.Location, limit, offset int) ([]*entity.TransferRecord, error) {
	return r.list("source", string(loc), limit, offset)
}

// ListByDestination lista entradas con destino en una ubicación ("hacia"), más recientes primero.
func (r *TransferRepo) ListByDestination(loc entity.Location, limit, offset int) ([]*entity.TransferRecord, error) {
	return r.list("destination", string(loc), limit, offset)
}

// ListByKind lista entradas por tipo de movimiento, más recientes primero.
func (r *TransferRepo) ListByKind(kind entity.MovementKind, limit, offset int) ([]*entity.TransferRecord, error) {
	return r.list("kind", string(kind), limit, offset)
}

func (r *TransferRepo) list(field, value string, limit, offset int) ([]*entity.TransferRecord, error) {
	query := fmt.Sprintf(`
		SELECT id, product_id, kind, quantity, source, destination, created_at
		FROM transfers WHERE %s = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`, field)
	rows, err := r.q.Query(context.Background(), query, value, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransferRecord
	ids := make([]string, 0)
	for rows.Next() {
		var t entity.TransferRecord
		if err := rows.Scan(&t.ID, &t.ProductID, &t.Kind, &t.Quantity, &t.Source, &t.Destination, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, &t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachLines(list, ids); err != nil {
		return nil, err
	}
	return list, nil
}

// attachLines carga en bloque el desglose de todas las entradas listadas.
func (r *TransferRepo) attachLines(list []*entity.TransferRecord, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT transfer_id, name, quantity FROM transfer_lines WHERE transfer_id = ANY($1) ORDER BY name`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("list transfer lines: %w", err)
	}
	defer rows.Close()
	byID := make(map[string]*entity.TransferRecord, len(list))
	for _, t := range list {
		byID[t.ID] = t
	}
	for rows.Next() {
		var ln entity.TransferLine
		if err := rows.Scan(&ln.TransferID, &ln.Name, &ln.Quantity); err != nil {
			return fmt.Errorf("scan transfer line: %w", err)
		}
		if t, ok := byID[ln.TransferID]; ok {
			t.Lines = append(t.Lines, ln)
		}
	}
	return rows.Err()
}

// DeleteByProduct elimina el desglose y las entradas de un producto (cascade al
// borrar el producto; único borrado del libro fuera de las reversiones).
func (r *TransferRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM transfer_lines WHERE transfer_id IN (SELECT id FROM transfers WHERE product_id = $1)`,
		productID,
	)
	if err != nil {
		return fmt.Errorf("delete transfer lines: %w", err)
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM transfers WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete transfers: %w", err)
	}
	return nil
}
