package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Perecederos-api/internal/application/dto"
	"github.com/jhoicas/Perecederos-api/internal/domain/repository"
	"github.com/jhoicas/Perecederos-api/pkg/metrics"
)

// Puntajes de prioridad de revisión. Un lote puede acumular un motivo de
// vencimiento y uno de revisión, pero nunca los dos sub-motivos de
// vencimiento a la vez.
const (
	scoreExpired      = 100
	scoreExpiringBase = 50
	scoreNeverChecked = 40
	scoreStaleCheck   = 20
)

// ChecklistPDFGenerator puerto para renderizar la lista de revisión como PDF
// imprimible (implementado en infrastructure/pdf con Maroto).
type ChecklistPDFGenerator interface {
	GenerateChecklist(ctx context.Context, baseDate time.Time, recs []dto.AuditRecommendationResponse) ([]byte, error)
}

// AuditUseCase recomendación de revisión física de lotes: combina riesgo de
// vencimiento con antigüedad de la última revisión y devuelve una lista
// priorizada y acotada. Es de solo lectura salvo MarkChecked.
type AuditUseCase struct {
	batchRepo repository.BatchRepository
	pdf       ChecklistPDFGenerator
}

// NewAuditUseCase construye el caso de uso. pdf puede ser nil si no se
// expone el checklist imprimible.
func NewAuditUseCase(batchRepo repository.BatchRepository, pdf ChecklistPDFGenerator) *AuditUseCase {
	return &AuditUseCase{batchRepo: batchRepo, pdf: pdf}
}

// Recommendations genera la lista priorizada de lotes a revisar.
//
// Candidatos (dos consultas independientes, ambas con cantidad > 0):
//   - por vencimiento: expiry <= baseDate + expiringWithinDays;
//   - por revisión: nunca revisados, o última revisión <= ahora − staleAfterDays.
//
// Los dos conjuntos se unen por ID de lote (un lote presente en ambos cuenta
// una sola vez). La clasificación usa baseDate, no "ahora":
//
//	expired      = expiry < baseDate                      → EXPIRED, +100
//	expiringSoon = !expired && díasHastaVencer <= N       → EXPIRING_SOON, +max(0, 50−días)
//	neverChecked = sin última revisión                    → NEVER_CHECKED, +40
//	staleCheck   = días(últimaRevisión, baseDate) >= M    → STALE_CHECK, +20
//
// Un candidato sin ningún motivo se descarta (la unión puede traer lotes que
// quedaron fuera de las ventanas al reclasificar). Orden: puntaje descendente,
// empate por vencimiento ascendente; se trunca a limit después de ordenar.
// limit <= 0 devuelve lista vacía.
func (uc *AuditUseCase) Recommendations(baseDate time.Time, expiringWithinDays, staleAfterDays, limit int) ([]dto.AuditRecommendationResponse, error) {
	if limit <= 0 {
		return []dto.AuditRecommendationResponse{}, nil
	}

	base := dateOnly(baseDate)
	expiryCutoff := base.AddDate(0, 0, expiringWithinDays)
	staleCutoff := time.Now().AddDate(0, 0, -staleAfterDays)

	byExpiry, err := uc.batchRepo.AuditCandidatesByExpiry(expiryCutoff)
	if err != nil {
		return nil, err
	}
	byStale, err := uc.batchRepo.AuditCandidatesByStaleCheck(staleCutoff)
	if err != nil {
		return nil, err
	}

	// Unión por ID de lote: inclusión exactamente una vez sin importar qué
	// consulta lo trajo.
	merged := make(map[string]repository.BatchWithProduct, len(byExpiry)+len(byStale))
	for _, c := range byExpiry {
		merged[c.Batch.ID] = c
	}
	for _, c := range byStale {
		merged[c.Batch.ID] = c
	}

	results := make([]dto.AuditRecommendationResponse, 0, len(merged))
	for _, c := range merged {
		b := c.Batch

		expired := b.Expired(base)
		daysUntilExpiry := daysBetween(base, b.ExpiryDate)
		expiringSoon := !expired && daysUntilExpiry <= expiringWithinDays

		neverChecked := b.LastCheckedAt == nil
		staleCheck := !neverChecked && daysBetween(dateOnly(*b.LastCheckedAt), base) >= staleAfterDays

		var reasons []string
		score := 0

		if expired {
			reasons = append(reasons, dto.AuditReasonExpired)
			score += scoreExpired
		} else if expiringSoon {
			reasons = append(reasons, dto.AuditReasonExpiringSoon)
			if pts := scoreExpiringBase - daysUntilExpiry; pts > 0 {
				score += pts
			}
		}

		if neverChecked {
			reasons = append(reasons, dto.AuditReasonNeverChecked)
			score += scoreNeverChecked
		} else if staleCheck {
			reasons = append(reasons, dto.AuditReasonStaleCheck)
			score += scoreStaleCheck
		}

		if len(reasons) == 0 {
			continue
		}

		results = append(results, dto.AuditRecommendationResponse{
			BatchID:       b.ID,
			ProductID:     b.ProductID,
			ProductName:   c.ProductName,
			ExpiryDate:    b.ExpiryDate,
			Quantity:      b.Quantity,
			LastCheckedAt: b.LastCheckedAt,
			Score:         score,
			Reasons:       reasons,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ExpiryDate.Before(results[j].ExpiryDate)
	})

	if len(results) > limit {
		results = results[:limit]
	}
	metrics.AuditRecommendationsTotal.Add(float64(len(results)))
	return results, nil
}

// MarkChecked marca un lote como revisado físicamente en el instante dado.
// Es el único escritor de la marca de última revisión. Devuelve
// domain.ErrNotFound si el lote no existe.
func (uc *AuditUseCase) MarkChecked(batchID string, ts time.Time) error {
	return uc.batchRepo.UpdateLastChecked(batchID, ts)
}

// ChecklistPDF genera el checklist imprimible de revisión (A4) con la misma
// lista priorizada que Recommendations.
func (uc *AuditUseCase) ChecklistPDF(ctx context.Context, baseDate time.Time, expiringWithinDays, staleAfterDays, limit int) ([]byte, error) {
	recs, err := uc.Recommendations(baseDate, expiringWithinDays, staleAfterDays, limit)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateChecklist(ctx, baseDate, recs)
}
