package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Perecederos-api/internal/domain"
	"github.com/jhoicas/Perecederos-api/internal/domain/entity"
	"github.com/jhoicas/Perecederos-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL
// (usable con pool o tx). El orden FEFO canónico lo fija la consulta:
// expiry_date ASC con desempate estable por created_at.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, product_id, quantity, expiry_date, received_date, last_checked_at, created_at`

// Create persiste un lote nuevo (recepción).
func (r *BatchRepo) Create(batch *entity.Batch) error {
	query := `
		INSERT INTO inventory_batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.ProductID, batch.Quantity, batch.ExpiryDate,
		batch.ReceivedDate, batch.LastCheckedAt, batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM inventory_batches WHERE id = $1`
	var b entity.Batch
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.ProductID, &b.Quantity, &b.ExpiryDate,
		&b.ReceivedDate, &b.LastCheckedAt, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// ListByProduct devuelve los lotes del producto en orden FEFO.
func (r *BatchRepo) ListByProduct(productID string) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM inventory_batches
		WHERE product_id = $1
		ORDER BY expiry_date ASC, created_at ASC`
	return r.listBatches(query, productID)
}

// ListByProductForUpdate igual que ListByProduct pero con SELECT FOR UPDATE:
// dos asignaciones concurrentes del mismo producto se serializan aquí, lo que
// evita lecturas repetidas de la misma cantidad restante (lost update).
func (r *BatchRepo) ListByProductForUpdate(productID string) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM inventory_batches
		WHERE product_id = $1
		ORDER BY expiry_date ASC, created_at ASC
		FOR UPDATE`
	return r.listBatches(query, productID)
}

// ListExpiredWithStock lotes vencidos a baseDate (expiry_date < baseDate) con
// stock restante, bloqueados para el desecho masivo.
func (r *BatchRepo) ListExpiredWithStock(baseDate time.Time) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM inventory_batches
		WHERE expiry_date < $1 AND quantity > 0
		ORDER BY expiry_date ASC, created_at ASC
		FOR UPDATE`
	return r.listBatches(query, baseDate)
}

func (r *BatchRepo) listBatches(query string, args ...any) ([]*entity.Batch, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.ProductID, &b.Quantity, &b.ExpiryDate,
			&b.ReceivedDate, &b.LastCheckedAt, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// ListExpiring lotes con expiry_date <= cutoff, con nombre de producto.
func (r *BatchRepo) ListExpiring(cutoff time.Time) ([]repository.BatchWithProduct, error) {
	query := `
		SELECT b.id, b.product_id, b.quantity, b.expiry_date, b.received_date,
		       b.last_checked_at, b.created_at, p.name
		FROM inventory_batches b
		JOIN products p ON p.id = b.product_id
		WHERE b.expiry_date <= $1
		ORDER BY b.expiry_date ASC, b.created_at ASC`
	return r.listWithProduct(query, cutoff)
}

// AuditCandidatesByExpiry candidatos de revisión por riesgo de vencimiento:
// stock restante y expiry_date <= cutoff.
func (r *BatchRepo) AuditCandidatesByExpiry(cutoff time.Time) ([]repository.BatchWithProduct, error) {
	query := `
		SELECT b.id, b.product_id, b.quantity, b.expiry_date, b.received_date,
		       b.last_checked_at, b.created_at, p.name
		FROM inventory_batches b
		JOIN products p ON p.id = b.product_id
		WHERE b.quantity > 0 AND b.expiry_date <= $1
		ORDER BY b.expiry_date ASC`
	return r.listWithProduct(query, cutoff)
}

// AuditCandidatesByStaleCheck candidatos por revisión vencida: stock restante
// y nunca revisados o con última revisión <= cutoff.
func (r *BatchRepo) AuditCandidatesByStaleCheck(cutoff time.Time) ([]repository.BatchWithProduct, error) {
	query := `
		SELECT b.id, b.product_id, b.quantity, b.expiry_date, b.received_date,
		       b.last_checked_at, b.created_at, p.name
		FROM inventory_batches b
		JOIN products p ON p.id = b.product_id
		WHERE b.quantity > 0 AND (b.last_checked_at IS NULL OR b.last_checked_at <= $1)`
	return r.listWithProduct(query, cutoff)
}

func (r *BatchRepo) listWithProduct(query string, args ...any) ([]repository.BatchWithProduct, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches with product: %w", err)
	}
	defer rows.Close()
	var list []repository.BatchWithProduct
	for rows.Next() {
		var c repository.BatchWithProduct
		if err := rows.Scan(&c.Batch.ID, &c.Batch.ProductID, &c.Batch.Quantity,
			&c.Batch.ExpiryDate, &c.Batch.ReceivedDate, &c.Batch.LastCheckedAt,
			&c.Batch.CreatedAt, &c.ProductName); err != nil {
			return nil, fmt.Errorf("scan batch with product: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// UpdateQuantity persiste la cantidad restante de un lote.
func (r *BatchRepo) UpdateQuantity(batch *entity.Batch) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE inventory_batches SET quantity = $2 WHERE id = $1`,
		batch.ID, batch.Quantity,
	)
	if err != nil {
		return fmt.Errorf("update batch quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateLastChecked fija la marca de última revisión física del lote.
func (r *BatchRepo) UpdateLastChecked(batchID string, ts time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE inventory_batches SET last_checked_at = $2 WHERE id = $1`,
		batchID, ts,
	)
	if err != nil {
		return fmt.Errorf("update batch last_checked_at: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SellableQuantity suma el stock vendible de un producto: lotes con cantidad
// > 0 y vencimiento no anterior a today.
func (r *BatchRepo) SellableQuantity(productID string, today time.Time) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(quantity), 0)
		FROM inventory_batches
		WHERE product_id = $1 AND quantity > 0 AND expiry_date >= $2`,
		productID, today,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sellable quantity: %w", err)
	}
	return total, nil
}

// Summaries resumen de stock vendible por producto. El LEFT JOIN incluye
// productos sin lotes (total 0); el filtro de lote va en el ON para no
// excluirlos.
func (r *BatchRepo) Summaries(status string, today time.Time) ([]repository.ProductStockSummary, error) {
	query := `
		SELECT p.id, p.name, COALESCE(SUM(b.quantity), 0)
		FROM products p
		LEFT JOIN inventory_batches b
			ON b.product_id = p.id AND b.quantity > 0 AND b.expiry_date >= $1
		WHERE p.status = $2
		GROUP BY p.id, p.name
		ORDER BY p.name ASC`
	rows, err := r.q.Query(context.Background(), query, today, status)
	if err != nil {
		return nil, fmt.Errorf("stock summaries: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductStockSummary
	for rows.Next() {
		var s repository.ProductStockSummary
		if err := rows.Scan(&s.ProductID, &s.ProductName, &s.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
