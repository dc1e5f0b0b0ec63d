package inventory

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Perecederos-api/internal/application/dto"
	"github.com/jhoicas/Perecederos-api/internal/domain"
	"github.com/jhoicas/Perecederos-api/internal/domain/entity"
	"github.com/jhoicas/Perecederos-api/internal/domain/repository"
	"github.com/jhoicas/Perecederos-api/pkg/metrics"
)

// UseCase motor de inventario por lotes: recepción, salidas FEFO
// (administrativas y de venta), desecho de vencidos y consultas.
//
// Las salidas corren dentro de una transacción (TxRunner) con bloqueo de
// filas de los lotes del producto, de modo que dos salidas concurrentes del
// mismo producto se serializan y un faltante deja el stock intacto.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	batchRepo   repository.BatchRepository
	logRepo     repository.InventoryLogRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	batchRepo repository.BatchRepository,
	logRepo repository.InventoryLogRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		batchRepo:   batchRepo,
		logRepo:     logRepo,
	}
}

// Receive registra una recepción creando un lote nuevo.
// Un producto descatalogado no admite recepciones. received_date vacío = hoy;
// el vencimiento no puede ser anterior a la recepción (se valida al crear,
// no como invariante permanente: el reloj avanza).
func (uc *UseCase) Receive(in dto.ReceiveRequest) (*dto.BatchResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	expiry, err := parseDate(in.ExpiryDate)
	if err != nil || expiry.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	received, err := parseDate(in.ReceivedDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if received.IsZero() {
		received = dateOnly(time.Now())
	}
	if expiry.Before(received) {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.Discontinued() {
		return nil, domain.ErrConflict
	}

	batch := &entity.Batch{
		ID:           uuid.New().String(),
		ProductID:    product.ID,
		Quantity:     in.Quantity,
		ExpiryDate:   expiry,
		ReceivedDate: received,
		CreatedAt:    time.Now(),
	}
	if err := uc.batchRepo.Create(batch); err != nil {
		return nil, err
	}
	return toBatchResponse(batch, product.Name), nil
}

// Consume salida administrativa: descuenta en orden FEFO sin excluir lotes
// vencidos (un ajuste o desecho puede tocar stock vencido) y deja un registro
// en el log por cada lote afectado, con el motivo y la nota del caller.
//
// Todo-o-nada: si tras recorrer todos los lotes queda faltante, la
// transacción se revierte y ningún descuento es observable.
func (uc *UseCase) Consume(ctx context.Context, in dto.ConsumeRequest) (*dto.ConsumeResponse, error) {
	if in.Quantity <= 0 || !entity.ValidConsumeType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	resp := &dto.ConsumeResponse{ProductID: product.ID, Requested: in.Quantity}
	now := time.Now()

	err = uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, logRepo repository.InventoryLogRepository) error {
		batches, err := batchRepo.ListByProductForUpdate(product.ID)
		if err != nil {
			return err
		}
		takes, shortfall := allocateFEFO(batches, in.Quantity, nil)
		if shortfall > 0 {
			return domain.NewInsufficientStock(in.Quantity, shortfall)
		}
		for _, t := range takes {
			if err := t.batch.Decrease(t.taken); err != nil {
				return err
			}
			if err := batchRepo.UpdateQuantity(t.batch); err != nil {
				return err
			}
			batchID := t.batch.ID
			if err := logRepo.Append(&entity.InventoryLog{
				ID:         uuid.New().String(),
				ProductID:  product.ID,
				BatchID:    &batchID,
				Type:       in.Type,
				Quantity:   t.taken,
				Note:       in.Note,
				OccurredAt: now,
			}); err != nil {
				return err
			}
			resp.Lines = append(resp.Lines, dto.AllocationLine{
				BatchID:    t.batch.ID,
				ExpiryDate: t.batch.ExpiryDate,
				Taken:      t.taken,
			})
		}
		return nil
	})
	if err != nil {
		metrics.AllocationsTotal.WithLabelValues("admin", allocationResult(err)).Inc()
		return nil, err
	}
	metrics.AllocationsTotal.WithLabelValues("admin", "ok").Inc()
	return resp, nil
}

// ConsumeForSale salida por venta: descuenta en orden FEFO excluyendo los
// lotes vencidos a la fecha de venta (un lote que vence ese mismo día sigue
// siendo vendible). No escribe en el log de inventario: la venta se registra
// en el subsistema de ventas, no aquí.
func (uc *UseCase) ConsumeForSale(ctx context.Context, in dto.SaleConsumeRequest) (*dto.ConsumeResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	saleDate, err := parseDate(in.SaleDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if saleDate.IsZero() {
		saleDate = dateOnly(time.Now())
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	resp := &dto.ConsumeResponse{ProductID: product.ID, Requested: in.Quantity}

	err = uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, _ repository.InventoryLogRepository) error {
		batches, err := batchRepo.ListByProductForUpdate(product.ID)
		if err != nil {
			return err
		}
		takes, shortfall := allocateFEFO(batches, in.Quantity, &saleDate)
		if shortfall > 0 {
			return domain.NewInsufficientStock(in.Quantity, shortfall)
		}
		for _, t := range takes {
			if err := t.batch.Decrease(t.taken); err != nil {
				return err
			}
			if err := batchRepo.UpdateQuantity(t.batch); err != nil {
				return err
			}
			resp.Lines = append(resp.Lines, dto.AllocationLine{
				BatchID:    t.batch.ID,
				ExpiryDate: t.batch.ExpiryDate,
				Taken:      t.taken,
			})
		}
		return nil
	})
	if err != nil {
		metrics.AllocationsTotal.WithLabelValues("sale", allocationResult(err)).Inc()
		return nil, err
	}
	metrics.AllocationsTotal.WithLabelValues("sale", "ok").Inc()
	return resp, nil
}

// Batches lista los lotes de un producto en orden FEFO.
func (uc *UseCase) Batches(productID string) ([]dto.BatchResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	batches, err := uc.batchRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, *toBatchResponse(b, product.Name))
	}
	return out, nil
}

// Summary stock vendible de un producto: suma de lotes con cantidad > 0 y
// vencimiento no anterior a hoy (un lote que vence hoy cuenta).
func (uc *UseCase) Summary(productID string) (*dto.SummaryResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	total, err := uc.batchRepo.SellableQuantity(productID, dateOnly(time.Now()))
	if err != nil {
		return nil, err
	}
	return &dto.SummaryResponse{
		ProductID:     product.ID,
		ProductName:   product.Name,
		TotalQuantity: total,
	}, nil
}

// Summaries stock vendible de todos los productos con el estado dado
// (ACTIVE por defecto), incluyendo productos sin lotes con total 0.
func (uc *UseCase) Summaries(status string) ([]dto.SummaryResponse, error) {
	if status == "" {
		status = entity.ProductStatusActive
	}
	if !entity.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.batchRepo.Summaries(status, dateOnly(time.Now()))
	if err != nil {
		return nil, err
	}
	out := make([]dto.SummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SummaryResponse{
			ProductID:     r.ProductID,
			ProductName:   r.ProductName,
			TotalQuantity: r.TotalQuantity,
		})
	}
	return out, nil
}

// ExpiringBatches lotes con vencimiento hasta baseDate inclusive, ordenados
// del más próximo a vencer al más lejano. DaysToExpiry se calcula contra hoy
// y es solo informativo (negativo para los ya vencidos).
func (uc *UseCase) ExpiringBatches(baseDate time.Time) ([]dto.ExpiringBatchResponse, error) {
	rows, err := uc.batchRepo.ListExpiring(dateOnly(baseDate))
	if err != nil {
		return nil, err
	}
	today := dateOnly(time.Now())
	out := make([]dto.ExpiringBatchResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ExpiringBatchResponse{
			BatchID:      r.Batch.ID,
			ProductID:    r.Batch.ProductID,
			ProductName:  r.ProductName,
			Quantity:     r.Batch.Quantity,
			ExpiryDate:   r.Batch.ExpiryDate,
			DaysToExpiry: daysBetween(today, r.Batch.ExpiryDate),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysToExpiry < out[j].DaysToExpiry
	})
	return out, nil
}

// DisposeExpired desecha de una vez todos los lotes vencidos a baseDate
// (vencimiento estrictamente anterior) que aún tengan stock: deja cada lote
// en 0 y escribe un log WASTE por lote. Corre en una sola transacción.
func (uc *UseCase) DisposeExpired(ctx context.Context, baseDate time.Time, note string) (*dto.DisposeExpiredResponse, error) {
	if note == "" {
		note = "desecho masivo por vencimiento"
	}
	base := dateOnly(baseDate)
	resp := &dto.DisposeExpiredResponse{BaseDate: base}
	now := time.Now()

	err := uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, logRepo repository.InventoryLogRepository) error {
		expired, err := batchRepo.ListExpiredWithStock(base)
		if err != nil {
			return err
		}
		for _, b := range expired {
			qty := b.Quantity
			if qty <= 0 {
				continue
			}
			if err := b.Decrease(qty); err != nil {
				return err
			}
			if err := batchRepo.UpdateQuantity(b); err != nil {
				return err
			}
			batchID := b.ID
			if err := logRepo.Append(&entity.InventoryLog{
				ID:         uuid.New().String(),
				ProductID:  b.ProductID,
				BatchID:    &batchID,
				Type:       entity.ConsumeTypeWaste,
				Quantity:   qty,
				Note:       note,
				OccurredAt: now,
			}); err != nil {
				return err
			}
			resp.BatchCount++
			resp.TotalDisposedQuantity += qty
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.DisposedUnitsTotal.Add(float64(resp.TotalDisposedQuantity))
	return resp, nil
}

// Logs registro de salidas de un producto, opcionalmente filtrado por motivo,
// del más reciente al más antiguo.
func (uc *UseCase) Logs(productID, consumeType string, page dto.PageRequest) ([]dto.InventoryLogResponse, error) {
	if consumeType != "" && !entity.ValidConsumeType(consumeType) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()

	var logs []*entity.InventoryLog
	if consumeType == "" {
		logs, err = uc.logRepo.ListByProduct(productID, page.Limit, page.Offset)
	} else {
		logs, err = uc.logRepo.ListByProductAndType(productID, consumeType, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.InventoryLogResponse{
			ID:         l.ID,
			ProductID:  l.ProductID,
			BatchID:    l.BatchID,
			Type:       l.Type,
			Quantity:   l.Quantity,
			Note:       l.Note,
			OccurredAt: l.OccurredAt,
		})
	}
	return out, nil
}

func toBatchResponse(b *entity.Batch, productName string) *dto.BatchResponse {
	return &dto.BatchResponse{
		BatchID:       b.ID,
		ProductID:     b.ProductID,
		ProductName:   productName,
		Quantity:      b.Quantity,
		ExpiryDate:    b.ExpiryDate,
		ReceivedDate:  b.ReceivedDate,
		LastCheckedAt: b.LastCheckedAt,
	}
}

func allocationResult(err error) string {
	if errors.Is(err, domain.ErrInsufficientStock) {
		return "shortage"
	}
	return "error"
}
