package repository

import "github.com/jhoicas/Perecederos-api/internal/domain/entity"

// InventoryLogRepository define el puerto de persistencia para el registro de
// salidas. Solo inserción y lectura: las entradas nunca se modifican.
type InventoryLogRepository interface {
	Append(log *entity.InventoryLog) error
	ListByProduct(productID string, limit, offset int) ([]*entity.InventoryLog, error)
	ListByProductAndType(productID, consumeType string, limit, offset int) ([]*entity.InventoryLog, error)
}
