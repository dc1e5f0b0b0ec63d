package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Perecederos-api/internal/application/dto"
	"github.com/jhoicas/Perecederos-api/internal/application/inventory"
	"github.com/jhoicas/Perecederos-api/internal/domain"
	"github.com/jhoicas/Perecederos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del motor de salidas FEFO: orden de descuento, exclusión de vencidos
// en ventas, todo-o-nada ante faltantes y desecho masivo.
// ──────────────────────────────────────────────────────────────────────────────

// newTestUseCase arma el caso de uso con fakes compartidos y un producto activo.
func newTestUseCase(t *testing.T, batches ...*entity.Batch) (*inventory.UseCase, *fakeBatchRepo, *fakeLogRepo) {
	t.Helper()
	batchRepo := newFakeBatchRepo()
	batchRepo.productNames["p1"] = "Yogur Natural"
	for _, b := range batches {
		require.NoError(t, batchRepo.Create(b))
	}
	logRepo := &fakeLogRepo{}
	productRepo := newFakeProductRepo(testProduct("p1", "Yogur Natural"))
	tx := &fakeTxRunner{batchRepo: batchRepo, logRepo: logRepo}
	return inventory.NewUseCase(tx, productRepo, batchRepo, logRepo), batchRepo, logRepo
}

// TestConsume_OrdenFEFO verifica que la salida descuenta primero del lote que
// vence primero, sin importar el orden de registro.
func TestConsume_OrdenFEFO(t *testing.T) {
	uc, batchRepo, logRepo := newTestUseCase(t,
		testBatch("b1", "p1", 5, "2024-01-10"),
		testBatch("b2", "p1", 3, "2024-01-05"),
		testBatch("b3", "p1", 10, "2024-01-20"),
	)

	out, err := uc.Consume(context.Background(), dto.ConsumeRequest{
		ProductID: "p1",
		Quantity:  6,
		Type:      entity.ConsumeTypeAdjustment,
		Note:      "conteo físico",
	})
	require.NoError(t, err)

	// 3 del lote que vence el 05, 3 del que vence el 10; el del 20 intacto
	require.Len(t, out.Lines, 2)
	assert.Equal(t, "b2", out.Lines[0].BatchID)
	assert.Equal(t, 3, out.Lines[0].Taken)
	assert.Equal(t, "b1", out.Lines[1].BatchID)
	assert.Equal(t, 3, out.Lines[1].Taken)

	assertQuantity(t, batchRepo, "b2", 0)
	assertQuantity(t, batchRepo, "b1", 2)
	assertQuantity(t, batchRepo, "b3", 10)

	// un log por lote afectado, con el motivo del caller
	require.Len(t, logRepo.logs, 2)
	for _, l := range logRepo.logs {
		assert.Equal(t, entity.ConsumeTypeAdjustment, l.Type)
		assert.Equal(t, "conteo físico", l.Note)
	}
}

// TestConsume_IncluyeVencidos las salidas administrativas pueden tocar stock
// vencido (un desecho manual descuenta del lote vencido primero).
func TestConsume_IncluyeVencidos(t *testing.T) {
	uc, batchRepo, _ := newTestUseCase(t,
		testBatch("vencido", "p1", 4, "2020-01-01"),
		testBatch("vigente", "p1", 10, "2030-01-01"),
	)

	out, err := uc.Consume(context.Background(), dto.ConsumeRequest{
		ProductID: "p1", Quantity: 4, Type: entity.ConsumeTypeWaste,
	})
	require.NoError(t, err)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, "vencido", out.Lines[0].BatchID)
	assertQuantity(t, batchRepo, "vigente", 10)
}

// TestConsumeForSale_ExcluyeVencidos una venta nunca descuenta de lotes
// vencidos a la fecha de venta, aunque tengan stock.
func TestConsumeForSale_ExcluyeVencidos(t *testing.T) {
	uc, batchRepo, logRepo := newTestUseCase(t,
		testBatch("b1", "p1", 5, "2024-01-10"),
		testBatch("b2", "p1", 3, "2024-01-05"),
		testBatch("b3", "p1", 10, "2024-01-20"),
	)

	out, err := uc.ConsumeForSale(context.Background(), dto.SaleConsumeRequest{
		ProductID: "p1", Quantity: 6, SaleDate: "2024-01-06",
	})
	require.NoError(t, err)

	// b2 venció el 05: se salta; 5 de b1 y 1 de b3
	require.Len(t, out.Lines, 2)
	assert.Equal(t, "b1", out.Lines[0].BatchID)
	assert.Equal(t, 5, out.Lines[0].Taken)
	assert.Equal(t, "b3", out.Lines[1].BatchID)
	assert.Equal(t, 1, out.Lines[1].Taken)
	assertQuantity(t, batchRepo, "b2", 3)

	// las ventas no escriben en el log de inventario
	assert.Empty(t, logRepo.logs)
}

// TestConsumeForSale_VenceElMismoDia un lote que vence exactamente el día de
// la venta sigue siendo vendible.
func TestConsumeForSale_VenceElMismoDia(t *testing.T) {
	uc, _, _ := newTestUseCase(t,
		testBatch("b2", "p1", 3, "2024-01-05"),
	)

	out, err := uc.ConsumeForSale(context.Background(), dto.SaleConsumeRequest{
		ProductID: "p1", Quantity: 2, SaleDate: "2024-01-05",
	})
	require.NoError(t, err)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, "b2", out.Lines[0].BatchID)
}

// TestConsume_FaltanteTodoONada si el stock no alcanza, ningún lote se
// descuenta y el error detalla lo pedido y lo que faltó.
func TestConsume_FaltanteTodoONada(t *testing.T) {
	uc, batchRepo, logRepo := newTestUseCase(t,
		testBatch("b1", "p1", 5, "2024-01-10"),
		testBatch("b2", "p1", 3, "2024-01-05"),
	)

	_, err := uc.Consume(context.Background(), dto.ConsumeRequest{
		ProductID: "p1", Quantity: 9, Type: entity.ConsumeTypeAdjustment,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var short *domain.InsufficientStockError
	require.True(t, errors.As(err, &short))
	assert.Equal(t, 9, short.Requested)
	assert.Equal(t, 1, short.Shortfall)

	// nada cambió
	assertQuantity(t, batchRepo, "b1", 5)
	assertQuantity(t, batchRepo, "b2", 3)
	assert.Empty(t, logRepo.logs)
}

// ── validaciones de entrada ───────────────────────────────────────────────────

func TestConsume_CantidadInvalida(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	_, err := uc.Consume(context.Background(), dto.ConsumeRequest{
		ProductID: "p1", Quantity: 0, Type: entity.ConsumeTypeWaste,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConsume_MotivoInvalido(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	_, err := uc.Consume(context.Background(), dto.ConsumeRequest{
		ProductID: "p1", Quantity: 1, Type: "SALE",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConsume_ProductoInexistente(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	_, err := uc.Consume(context.Background(), dto.ConsumeRequest{
		ProductID: "nope", Quantity: 1, Type: entity.ConsumeTypeWaste,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── recepción ─────────────────────────────────────────────────────────────────

func TestReceive_CreaLote(t *testing.T) {
	uc, batchRepo, _ := newTestUseCase(t)

	out, err := uc.Receive(dto.ReceiveRequest{
		ProductID:    "p1",
		Quantity:     12,
		ExpiryDate:   "2030-03-15",
		ReceivedDate: "2030-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 12, out.Quantity)
	assert.Equal(t, date("2030-03-15"), out.ExpiryDate)
	assert.Equal(t, date("2030-03-01"), out.ReceivedDate)
	assert.Nil(t, out.LastCheckedAt, "un lote nuevo nunca fue revisado")

	stored, err := batchRepo.GetByID(out.BatchID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 12, stored.Quantity)
}

func TestReceive_VencimientoAnteriorALaRecepcion(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	_, err := uc.Receive(dto.ReceiveRequest{
		ProductID:    "p1",
		Quantity:     5,
		ExpiryDate:   "2030-01-01",
		ReceivedDate: "2030-02-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReceive_CantidadInvalida(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	_, err := uc.Receive(dto.ReceiveRequest{
		ProductID: "p1", Quantity: 0, ExpiryDate: "2030-01-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReceive_ProductoDescatalogado(t *testing.T) {
	batchRepo := newFakeBatchRepo()
	logRepo := &fakeLogRepo{}
	discontinued := testProduct("p9", "Leche entera")
	discontinued.Status = entity.ProductStatusDiscontinued
	productRepo := newFakeProductRepo(discontinued)
	tx := &fakeTxRunner{batchRepo: batchRepo, logRepo: logRepo}
	uc := inventory.NewUseCase(tx, productRepo, batchRepo, logRepo)

	_, err := uc.Receive(dto.ReceiveRequest{
		ProductID: "p9", Quantity: 5, ExpiryDate: "2030-01-01",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ── desecho masivo ────────────────────────────────────────────────────────────

// TestDisposeExpired_DesechaSoloVencidosConStock el desecho masivo deja en 0
// los lotes vencidos con restante, escribe un log WASTE por lote y no toca
// los vigentes ni los ya agotados.
func TestDisposeExpired_DesechaSoloVencidosConStock(t *testing.T) {
	uc, batchRepo, logRepo := newTestUseCase(t,
		testBatch("vencido1", "p1", 4, "2024-01-05"),
		testBatch("vencido2", "p1", 7, "2024-02-01"),
		testBatch("agotado", "p1", 0, "2024-01-01"),
		testBatch("vigente", "p1", 9, "2030-01-01"),
	)

	out, err := uc.DisposeExpired(context.Background(), date("2024-06-01"), "")
	require.NoError(t, err)
	assert.Equal(t, 2, out.BatchCount)
	assert.Equal(t, 11, out.TotalDisposedQuantity)

	assertQuantity(t, batchRepo, "vencido1", 0)
	assertQuantity(t, batchRepo, "vencido2", 0)
	assertQuantity(t, batchRepo, "vigente", 9)

	require.Len(t, logRepo.logs, 2)
	for _, l := range logRepo.logs {
		assert.Equal(t, entity.ConsumeTypeWaste, l.Type)
		assert.NotEmpty(t, l.Note)
	}
}

// ── consultas ─────────────────────────────────────────────────────────────────

// TestExpiringBatches_OrdenPorProximidad los lotes se listan del más próximo a
// vencer al más lejano, incluyendo los ya vencidos con días negativos.
func TestExpiringBatches_OrdenPorProximidad(t *testing.T) {
	uc, _, _ := newTestUseCase(t,
		testBatch("b1", "p1", 5, "2024-03-01"),
		testBatch("b2", "p1", 3, "2024-01-05"),
		testBatch("b3", "p1", 10, "2024-02-10"),
	)

	out, err := uc.ExpiringBatches(date("2024-06-01"))
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "b2", out[0].BatchID)
	assert.Equal(t, "b3", out[1].BatchID)
	assert.Equal(t, "b1", out[2].BatchID)
	assert.Equal(t, "Yogur Natural", out[0].ProductName)
}

// TestSummary_SoloStockVendible el total excluye lotes vencidos y agotados.
func TestSummary_SoloStockVendible(t *testing.T) {
	uc, _, _ := newTestUseCase(t,
		testBatch("vencido", "p1", 4, "2020-01-01"),
		testBatch("agotado", "p1", 0, "2030-01-01"),
		testBatch("vigente", "p1", 9, "2030-01-01"),
	)

	out, err := uc.Summary("p1")
	require.NoError(t, err)
	assert.Equal(t, 9, out.TotalQuantity)
	assert.Equal(t, "Yogur Natural", out.ProductName)
}

func TestSummaries_EstadoInvalido(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	_, err := uc.Summaries("ELIMINADO")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogs_MotivoInvalido(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	_, err := uc.Logs("p1", "SALE", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── helper ────────────────────────────────────────────────────────────────────

func assertQuantity(t *testing.T, repo *fakeBatchRepo, batchID string, want int) {
	t.Helper()
	b, err := repo.GetByID(batchID)
	require.NoError(t, err)
	require.NotNil(t, b, "lote %s debe existir", batchID)
	assert.Equal(t, want, b.Quantity, "cantidad restante del lote %s", batchID)
}
