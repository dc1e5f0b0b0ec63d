package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Perecederos-api/internal/application/dto"
	"github.com/jhoicas/Perecederos-api/internal/application/inventory"
	"github.com/jhoicas/Perecederos-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del recomendador de revisión física: puntajes, unión de candidatos,
// orden, truncado y marca de revisión.
//
// Escenario base (fecha base 2024-06-01, ventana 14 días, revisión 30 días):
//
//	a: venció el 2024-05-20, revisado hace 2 días          → EXPIRED, 100
//	b: vence el 2024-06-10 (9 días), nunca revisado        → EXPIRING_SOON 41 + NEVER_CHECKED 40 = 81
//	c: vence lejos, revisado hace 31 días                  → STALE_CHECK, 20
//	d: vence lejos, revisado hace 7 días                   → sin motivos, se descarta
// ──────────────────────────────────────────────────────────────────────────────

func newAuditScenario(t *testing.T) (*inventory.AuditUseCase, *fakeBatchRepo) {
	t.Helper()
	repo := newFakeBatchRepo()
	repo.productNames["p1"] = "Yogur Natural"

	a := testBatch("a", "p1", 5, "2024-05-20")
	a.MarkChecked(date("2024-05-30"))
	b := testBatch("b", "p1", 3, "2024-06-10")
	c := testBatch("c", "p1", 8, "2024-12-01")
	c.MarkChecked(date("2024-05-01"))
	d := testBatch("d", "p1", 8, "2024-12-01")
	d.MarkChecked(date("2024-05-25"))

	require.NoError(t, repo.Create(a))
	require.NoError(t, repo.Create(b))
	require.NoError(t, repo.Create(c))
	require.NoError(t, repo.Create(d))

	return inventory.NewAuditUseCase(repo, nil), repo
}

func TestRecommendations_PuntajesYOrden(t *testing.T) {
	uc, _ := newAuditScenario(t)

	out, err := uc.Recommendations(date("2024-06-01"), 14, 30, 20)
	require.NoError(t, err)
	require.Len(t, out, 3, "el lote sin motivos debe descartarse")

	assert.Equal(t, "a", out[0].BatchID)
	assert.Equal(t, 100, out[0].Score)
	assert.Equal(t, []string{dto.AuditReasonExpired}, out[0].Reasons)

	assert.Equal(t, "b", out[1].BatchID)
	assert.Equal(t, 81, out[1].Score, "41 por vencer en 9 días + 40 por nunca revisado")
	assert.Equal(t, []string{dto.AuditReasonExpiringSoon, dto.AuditReasonNeverChecked}, out[1].Reasons)

	assert.Equal(t, "c", out[2].BatchID)
	assert.Equal(t, 20, out[2].Score)
	assert.Equal(t, []string{dto.AuditReasonStaleCheck}, out[2].Reasons)
}

// TestRecommendations_CombinaMotivos un lote puede acumular un motivo de
// vencimiento y uno de revisión a la vez.
func TestRecommendations_CombinaMotivos(t *testing.T) {
	repo := newFakeBatchRepo()
	repo.productNames["p1"] = "Queso campesino"
	e := testBatch("e", "p1", 6, "2024-06-03")
	e.MarkChecked(date("2024-04-01"))
	require.NoError(t, repo.Create(e))

	uc := inventory.NewAuditUseCase(repo, nil)
	out, err := uc.Recommendations(date("2024-06-01"), 14, 30, 20)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 68, out[0].Score, "48 por vencer en 2 días + 20 por revisión vencida")
	assert.Equal(t, []string{dto.AuditReasonExpiringSoon, dto.AuditReasonStaleCheck}, out[0].Reasons)
}

// TestRecommendations_LimiteTrunca el truncado ocurre después de ordenar:
// quedan los de mayor puntaje.
func TestRecommendations_LimiteTrunca(t *testing.T) {
	uc, _ := newAuditScenario(t)

	out, err := uc.Recommendations(date("2024-06-01"), 14, 30, 2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].BatchID)
	assert.Equal(t, "b", out[1].BatchID)
}

func TestRecommendations_LimiteCero(t *testing.T) {
	uc, _ := newAuditScenario(t)

	out, err := uc.Recommendations(date("2024-06-01"), 14, 30, 0)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRecommendations_SinCandidatos(t *testing.T) {
	uc := inventory.NewAuditUseCase(newFakeBatchRepo(), nil)
	out, err := uc.Recommendations(date("2024-06-01"), 14, 30, 20)
	require.NoError(t, err)
	assert.Empty(t, out)
}

// TestRecommendations_EmpateOrdenaPorVencimiento a igual puntaje va primero el
// que vence antes.
func TestRecommendations_EmpateOrdenaPorVencimiento(t *testing.T) {
	repo := newFakeBatchRepo()
	repo.productNames["p1"] = "Pan tajado"
	v1 := testBatch("v1", "p1", 2, "2024-05-10")
	v1.MarkChecked(date("2024-05-31"))
	v2 := testBatch("v2", "p1", 2, "2024-04-01")
	v2.MarkChecked(date("2024-05-31"))
	require.NoError(t, repo.Create(v1))
	require.NoError(t, repo.Create(v2))

	uc := inventory.NewAuditUseCase(repo, nil)
	out, err := uc.Recommendations(date("2024-06-01"), 14, 30, 20)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 100, out[0].Score)
	assert.Equal(t, 100, out[1].Score)
	assert.Equal(t, "v2", out[0].BatchID, "vence antes, va primero")
	assert.Equal(t, "v1", out[1].BatchID)
}

// ── marca de revisión ─────────────────────────────────────────────────────────

// TestMarkChecked_ActualizaElLote marcar dos veces deja siempre la última
// marca registrada.
func TestMarkChecked_ActualizaElLote(t *testing.T) {
	uc, repo := newAuditScenario(t)

	ts := time.Now()
	require.NoError(t, uc.MarkChecked("b", ts))

	b, err := repo.GetByID("b")
	require.NoError(t, err)
	require.NotNil(t, b.LastCheckedAt)
	assert.Equal(t, ts, *b.LastCheckedAt)

	ts2 := ts.Add(time.Hour)
	require.NoError(t, uc.MarkChecked("b", ts2))
	b, _ = repo.GetByID("b")
	assert.Equal(t, ts2, *b.LastCheckedAt)
}

func TestMarkChecked_LoteInexistente(t *testing.T) {
	uc, _ := newAuditScenario(t)
	err := uc.MarkChecked("nope", time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── checklist PDF ─────────────────────────────────────────────────────────────

type fakeChecklistGen struct {
	gotBaseDate time.Time
	gotRecs     []dto.AuditRecommendationResponse
}

func (g *fakeChecklistGen) GenerateChecklist(_ context.Context, baseDate time.Time, recs []dto.AuditRecommendationResponse) ([]byte, error) {
	g.gotBaseDate = baseDate
	g.gotRecs = recs
	return []byte("%PDF-1.7"), nil
}

// TestChecklistPDF_DelegaConLaListaPriorizada el PDF recibe exactamente la
// misma lista que devuelve Recommendations.
func TestChecklistPDF_DelegaConLaListaPriorizada(t *testing.T) {
	repo := newFakeBatchRepo()
	repo.productNames["p1"] = "Yogur Natural"
	a := testBatch("a", "p1", 5, "2024-05-20")
	a.MarkChecked(date("2024-05-30"))
	require.NoError(t, repo.Create(a))

	gen := &fakeChecklistGen{}
	uc := inventory.NewAuditUseCase(repo, gen)

	out, err := uc.ChecklistPDF(context.Background(), date("2024-06-01"), 14, 30, 20)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), out)
	require.Len(t, gen.gotRecs, 1)
	assert.Equal(t, "a", gen.gotRecs[0].BatchID)
}
