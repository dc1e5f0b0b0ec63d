package repository

import (
	"time"

	"github.com/jhoicas/Perecederos-api/internal/domain/entity"
)

// BatchWithProduct lote acompañado del nombre de su producto
// (lectura con join para respuestas y recomendaciones).
type BatchWithProduct struct {
	Batch       entity.Batch
	ProductName string
}

// ProductStockSummary total vendible por producto (suma de lotes con
// cantidad > 0 y no vencidos). Incluye productos sin lotes con total 0.
type ProductStockSummary struct {
	ProductID     string
	ProductName   string
	TotalQuantity int
}

// BatchRepository define el puerto de persistencia para lotes.
//
// El orden FEFO canónico es expiry_date ascendente con desempate estable por
// orden de creación del lote; todos los listados por producto lo respetan.
type BatchRepository interface {
	Create(batch *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)

	// ListByProduct devuelve los lotes del producto en orden FEFO.
	ListByProduct(productID string) ([]*entity.Batch, error)
	// ListByProductForUpdate igual que ListByProduct pero bloquea las filas
	// (SELECT FOR UPDATE) para serializar asignaciones concurrentes del
	// mismo producto. Solo tiene sentido dentro de una transacción.
	ListByProductForUpdate(productID string) ([]*entity.Batch, error)

	// ListExpiring lotes con expiry_date <= cutoff, con nombre de producto.
	ListExpiring(cutoff time.Time) ([]BatchWithProduct, error)
	// ListExpiredWithStock lotes vencidos (expiry_date < baseDate) con
	// cantidad > 0, bloqueados para update (se usa en el desecho masivo).
	ListExpiredWithStock(baseDate time.Time) ([]*entity.Batch, error)

	// AuditCandidatesByExpiry candidatos de revisión por riesgo de
	// vencimiento: cantidad > 0 y expiry_date <= cutoff.
	AuditCandidatesByExpiry(cutoff time.Time) ([]BatchWithProduct, error)
	// AuditCandidatesByStaleCheck candidatos por revisión vencida:
	// cantidad > 0 y (last_checked_at nulo o <= cutoff).
	AuditCandidatesByStaleCheck(cutoff time.Time) ([]BatchWithProduct, error)

	// UpdateQuantity persiste la cantidad restante de un lote mutado vía
	// Increase/Decrease.
	UpdateQuantity(batch *entity.Batch) error
	// UpdateLastChecked fija la marca de última revisión.
	// Devuelve domain.ErrNotFound si el lote no existe.
	UpdateLastChecked(batchID string, ts time.Time) error

	// SellableQuantity suma la cantidad de lotes con stock y no vencidos a
	// la fecha dada para un producto.
	SellableQuantity(productID string, today time.Time) (int, error)
	// Summaries resumen de stock vendible por producto, filtrado por estado
	// de producto, ordenado por nombre.
	Summaries(status string, today time.Time) ([]ProductStockSummary, error)
}
