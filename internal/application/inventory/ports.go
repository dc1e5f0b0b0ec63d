package inventory

import (
	"context"

	"github.com/jhoicas/Perecederos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la visibilidad todo-o-nada del
// motor de asignación: o se confirman todos los descuentos de lotes y sus
// logs, o no se observa ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		logRepo repository.InventoryLogRepository,
	) error) error
}
