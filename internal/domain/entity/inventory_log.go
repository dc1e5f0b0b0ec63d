package entity

import "time"

// Motivos de salida administrativa de inventario.
const (
	ConsumeTypeAdjustment = "ADJUSTMENT" // corrección manual de cantidades
	ConsumeTypeWaste      = "WASTE"      // desecho (vencimiento, etc.)
	ConsumeTypeDamage     = "DAMAGE"     // rotura o deterioro
	ConsumeTypeLoss       = "LOSS"       // pérdida o hurto
)

// ValidConsumeType valida un motivo de salida.
func ValidConsumeType(t string) bool {
	switch t {
	case ConsumeTypeAdjustment, ConsumeTypeWaste, ConsumeTypeDamage, ConsumeTypeLoss:
		return true
	}
	return false
}

// InventoryLog registra una salida de inventario (solo salidas administrativas;
// las ventas se registran en el subsistema de ventas, no aquí). El registro es
// de solo inserción: nunca se modifica ni se borra.
//
// BatchID es opcional: queda nil cuando la salida no puede atribuirse a un
// lote concreto.
type InventoryLog struct {
	ID         string
	ProductID  string
	BatchID    *string
	Type       string
	Quantity   int // siempre positivo (una salida de 5 se guarda como 5)
	Note       string
	OccurredAt time.Time
}
