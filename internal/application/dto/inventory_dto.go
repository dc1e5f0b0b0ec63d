package dto

import "time"

// ReceiveRequest entrada de recepción: crea un lote nuevo.
// Las fechas van en formato 2006-01-02; received_date vacío = hoy.
type ReceiveRequest struct {
	ProductID    string `json:"product_id" validate:"required"`
	Quantity     int    `json:"quantity" validate:"min=1"`
	ExpiryDate   string `json:"expiry_date" validate:"required"`
	ReceivedDate string `json:"received_date"`
}

// ConsumeRequest salida administrativa (ajuste, desecho, rotura, pérdida).
type ConsumeRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
	Type      string `json:"type" validate:"required"`
	Note      string `json:"note"`
}

// SaleConsumeRequest salida por venta (FEFO excluyendo lotes vencidos).
// sale_date vacío = hoy.
type SaleConsumeRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
	SaleDate  string `json:"sale_date"`
}

// AllocationLine descuento aplicado a un lote concreto, en orden FEFO.
type AllocationLine struct {
	BatchID    string    `json:"batch_id"`
	ExpiryDate time.Time `json:"expiry_date"`
	Taken      int       `json:"taken"`
}

// ConsumeResponse desglose de una salida: qué lote aportó cuántas unidades.
type ConsumeResponse struct {
	ProductID string           `json:"product_id"`
	Requested int              `json:"requested"`
	Lines     []AllocationLine `json:"lines"`
}

// BatchResponse salida de un lote.
type BatchResponse struct {
	BatchID       string     `json:"batch_id"`
	ProductID     string     `json:"product_id"`
	ProductName   string     `json:"product_name,omitempty"`
	Quantity      int        `json:"quantity"`
	ExpiryDate    time.Time  `json:"expiry_date"`
	ReceivedDate  time.Time  `json:"received_date"`
	LastCheckedAt *time.Time `json:"last_checked_at,omitempty"`
}

// SummaryResponse stock vendible de un producto (lotes con cantidad > 0 y
// no vencidos a hoy).
type SummaryResponse struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	TotalQuantity int    `json:"total_quantity"`
}

// ExpiringBatchResponse lote próximo a vencer o vencido.
// DaysToExpiry se calcula contra la fecha actual y es solo informativo
// (puede ser negativo para lotes ya vencidos); no participa en ningún orden
// contractual más allá de este listado.
type ExpiringBatchResponse struct {
	BatchID      string    `json:"batch_id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Quantity     int       `json:"quantity"`
	ExpiryDate   time.Time `json:"expiry_date"`
	DaysToExpiry int       `json:"days_to_expiry"`
}

// DisposeExpiredResponse resultado del desecho masivo de lotes vencidos.
type DisposeExpiredResponse struct {
	BaseDate              time.Time `json:"base_date"`
	BatchCount            int       `json:"batch_count"`
	TotalDisposedQuantity int       `json:"total_disposed_quantity"`
}

// InventoryLogResponse entrada del registro de salidas.
type InventoryLogResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	BatchID    *string   `json:"batch_id,omitempty"`
	Type       string    `json:"type"`
	Quantity   int       `json:"quantity"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
