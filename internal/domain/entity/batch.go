package entity

import (
	"time"

	"github.com/jhoicas/Perecederos-api/internal/domain"
)

// Batch representa un lote de recepción de un producto: cantidad restante,
// fecha de vencimiento y fecha de recepción. Los lotes nunca se eliminan:
// al llegar a cantidad 0 quedan inactivos pero conservan el historial.
//
// LastCheckedAt es la última revisión física del lote; nil significa que
// nunca fue revisado.
type Batch struct {
	ID            string
	ProductID     string
	Quantity      int // restante, nunca negativo
	ExpiryDate    time.Time
	ReceivedDate  time.Time
	LastCheckedAt *time.Time
	CreatedAt     time.Time
}

// Increase suma unidades al lote. La cantidad debe ser positiva.
func (b *Batch) Increase(amount int) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}
	b.Quantity += amount
	return nil
}

// Decrease resta unidades del lote. La cantidad debe ser positiva y no puede
// exceder el restante; es la única vía de descuento para que la cantidad
// nunca sea negativa.
func (b *Batch) Decrease(amount int) error {
	if amount <= 0 || amount > b.Quantity {
		return domain.ErrInvalidInput
	}
	b.Quantity -= amount
	return nil
}

// Expired indica si el lote venció antes de la fecha dada
// (un lote que vence exactamente en baseDate todavía es utilizable).
func (b *Batch) Expired(baseDate time.Time) bool {
	return b.ExpiryDate.Before(baseDate)
}

// MarkChecked registra la revisión física del lote.
func (b *Batch) MarkChecked(ts time.Time) {
	b.LastCheckedAt = &ts
}
