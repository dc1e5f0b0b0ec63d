package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Perecederos-api/internal/domain/entity"
	"github.com/jhoicas/Perecederos-api/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

// InventoryLogRepo implementación del puerto InventoryLogRepository sobre
// PostgreSQL (usable con pool o tx). La tabla es de solo inserción: no hay
// UPDATE ni DELETE.
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

// Append inserta una entrada del registro de salidas.
func (r *InventoryLogRepo) Append(log *entity.InventoryLog) error {
	query := `
		INSERT INTO inventory_logs (id, product_id, batch_id, type, quantity, note, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	note := (*string)(nil)
	if log.Note != "" {
		note = &log.Note
	}
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.ProductID, log.BatchID, log.Type, log.Quantity, note, log.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("append inventory log: %w", err)
	}
	return nil
}

// ListByProduct entradas de un producto, de la más reciente a la más antigua.
func (r *InventoryLogRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryLog, error) {
	query := `
		SELECT id, product_id, batch_id, type, quantity, note, occurred_at
		FROM inventory_logs
		WHERE product_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2 OFFSET $3`
	return r.list(query, productID, limit, offset)
}

// ListByProductAndType entradas de un producto filtradas por motivo.
func (r *InventoryLogRepo) ListByProductAndType(productID, consumeType string, limit, offset int) ([]*entity.InventoryLog, error) {
	query := `
		SELECT id, product_id, batch_id, type, quantity, note, occurred_at
		FROM inventory_logs
		WHERE product_id = $1 AND type = $4
		ORDER BY occurred_at DESC
		LIMIT $2 OFFSET $3`
	return r.list(query, productID, limit, offset, consumeType)
}

func (r *InventoryLogRepo) list(query string, productID string, limit, offset int, extra ...any) ([]*entity.InventoryLog, error) {
	args := append([]any{productID, limit, offset}, extra...)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLog
	for rows.Next() {
		var l entity.InventoryLog
		var note *string
		if err := rows.Scan(&l.ID, &l.ProductID, &l.BatchID, &l.Type,
			&l.Quantity, &note, &l.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan inventory log: %w", err)
		}
		if note != nil {
			l.Note = *note
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
