package inventory_test

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Perecederos-api/internal/domain"
	"github.com/jhoicas/Perecederos-api/internal/domain/entity"
	"github.com/jhoicas/Perecederos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los tests del motor de inventario. Implementan los
// puertos de repositorio completos; el txRunner de prueba ejecuta el callback
// directamente contra los mismos fakes (sin transacción real: el motor corta
// antes de mutar cuando hay faltante, así que el todo-o-nada es observable
// igual).
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeProductRepo) ListByStatus(status string, limit, offset int) ([]*entity.Product, error) {
	all, _ := r.List(limit, offset)
	out := make([]*entity.Product, 0)
	for _, p := range all {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeBatchRepo guarda lotes por ID y conserva el orden de inserción como
// desempate FEFO (equivalente a created_at ASC).
type fakeBatchRepo struct {
	batches      []*entity.Batch
	productNames map[string]string
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{productNames: make(map[string]string)}
}

func (r *fakeBatchRepo) Create(b *entity.Batch) error {
	r.batches = append(r.batches, b)
	return nil
}

func (r *fakeBatchRepo) GetByID(id string) (*entity.Batch, error) {
	for _, b := range r.batches {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

// fefoSorted copia la lista en orden FEFO sin tocar el orden de inserción.
func (r *fakeBatchRepo) fefoSorted(filter func(*entity.Batch) bool) []*entity.Batch {
	out := make([]*entity.Batch, 0, len(r.batches))
	for _, b := range r.batches {
		if filter == nil || filter(b) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpiryDate.Before(out[j].ExpiryDate)
	})
	return out
}

func (r *fakeBatchRepo) ListByProduct(productID string) ([]*entity.Batch, error) {
	return r.fefoSorted(func(b *entity.Batch) bool { return b.ProductID == productID }), nil
}

func (r *fakeBatchRepo) ListByProductForUpdate(productID string) ([]*entity.Batch, error) {
	return r.ListByProduct(productID)
}

func (r *fakeBatchRepo) ListExpiring(cutoff time.Time) ([]repository.BatchWithProduct, error) {
	return r.withNames(r.fefoSorted(func(b *entity.Batch) bool {
		return !b.ExpiryDate.After(cutoff)
	})), nil
}

func (r *fakeBatchRepo) ListExpiredWithStock(baseDate time.Time) ([]*entity.Batch, error) {
	return r.fefoSorted(func(b *entity.Batch) bool {
		return b.ExpiryDate.Before(baseDate) && b.Quantity > 0
	}), nil
}

func (r *fakeBatchRepo) AuditCandidatesByExpiry(cutoff time.Time) ([]repository.BatchWithProduct, error) {
	return r.withNames(r.fefoSorted(func(b *entity.Batch) bool {
		return b.Quantity > 0 && !b.ExpiryDate.After(cutoff)
	})), nil
}

func (r *fakeBatchRepo) AuditCandidatesByStaleCheck(cutoff time.Time) ([]repository.BatchWithProduct, error) {
	return r.withNames(r.fefoSorted(func(b *entity.Batch) bool {
		return b.Quantity > 0 && (b.LastCheckedAt == nil || !b.LastCheckedAt.After(cutoff))
	})), nil
}

func (r *fakeBatchRepo) withNames(batches []*entity.Batch) []repository.BatchWithProduct {
	out := make([]repository.BatchWithProduct, 0, len(batches))
	for _, b := range batches {
		out = append(out, repository.BatchWithProduct{
			Batch:       *b,
			ProductName: r.productNames[b.ProductID],
		})
	}
	return out
}

func (r *fakeBatchRepo) UpdateQuantity(batch *entity.Batch) error {
	for _, b := range r.batches {
		if b.ID == batch.ID {
			b.Quantity = batch.Quantity
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeBatchRepo) UpdateLastChecked(batchID string, ts time.Time) error {
	for _, b := range r.batches {
		if b.ID == batchID {
			b.LastCheckedAt = &ts
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeBatchRepo) SellableQuantity(productID string, today time.Time) (int, error) {
	total := 0
	for _, b := range r.batches {
		if b.ProductID == productID && b.Quantity > 0 && !b.ExpiryDate.Before(today) {
			total += b.Quantity
		}
	}
	return total, nil
}

func (r *fakeBatchRepo) Summaries(status string, today time.Time) ([]repository.ProductStockSummary, error) {
	totals := make(map[string]int)
	for _, b := range r.batches {
		if b.Quantity > 0 && !b.ExpiryDate.Before(today) {
			totals[b.ProductID] += b.Quantity
		}
	}
	out := make([]repository.ProductStockSummary, 0, len(totals))
	for id, total := range totals {
		out = append(out, repository.ProductStockSummary{
			ProductID:     id,
			ProductName:   r.productNames[id],
			TotalQuantity: total,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, nil
}

type fakeLogRepo struct {
	logs []*entity.InventoryLog
}

func (r *fakeLogRepo) Append(l *entity.InventoryLog) error {
	r.logs = append(r.logs, l)
	return nil
}

func (r *fakeLogRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryLog, error) {
	out := make([]*entity.InventoryLog, 0)
	for _, l := range r.logs {
		if l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLogRepo) ListByProductAndType(productID, consumeType string, limit, offset int) ([]*entity.InventoryLog, error) {
	all, _ := r.ListByProduct(productID, limit, offset)
	out := make([]*entity.InventoryLog, 0)
	for _, l := range all {
		if l.Type == consumeType {
			out = append(out, l)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback directamente con los fakes compartidos.
type fakeTxRunner struct {
	batchRepo *fakeBatchRepo
	logRepo   *fakeLogRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	batchRepo repository.BatchRepository,
	logRepo repository.InventoryLogRepository,
) error) error {
	return fn(r.batchRepo, r.logRepo)
}

// ── helpers de construcción ───────────────────────────────────────────────────

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testProduct(id, name string) *entity.Product {
	return &entity.Product{
		ID:      id,
		Name:    name,
		Barcode: "770" + id,
		Status:  entity.ProductStatusActive,
	}
}

func testBatch(id, productID string, qty int, expiry string) *entity.Batch {
	return &entity.Batch{
		ID:           id,
		ProductID:    productID,
		Quantity:     qty,
		ExpiryDate:   date(expiry),
		ReceivedDate: date(expiry).AddDate(0, -1, 0),
		CreatedAt:    time.Now(),
	}
}
