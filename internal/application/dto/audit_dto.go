package dto

import "time"

// Motivos de recomendación de revisión física.
const (
	AuditReasonExpired      = "EXPIRED"
	AuditReasonExpiringSoon = "EXPIRING_SOON"
	AuditReasonNeverChecked = "NEVER_CHECKED"
	AuditReasonStaleCheck   = "STALE_CHECK"
)

// AuditRecommendationResponse lote recomendado para revisión física,
// con puntaje de prioridad y motivos.
type AuditRecommendationResponse struct {
	BatchID       string     `json:"batch_id"`
	ProductID     string     `json:"product_id"`
	ProductName   string     `json:"product_name"`
	ExpiryDate    time.Time  `json:"expiry_date"`
	Quantity      int        `json:"quantity"`
	LastCheckedAt *time.Time `json:"last_checked_at,omitempty"`
	Score         int        `json:"score"`
	Reasons       []string   `json:"reasons"`
}
