package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Perecederos-api/internal/application/dto"
	"github.com/jhoicas/Perecederos-api/internal/application/inventory"
	"github.com/jhoicas/Perecederos-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP del inventario por lotes:
// recepciones, salidas FEFO, desecho de vencidos y consultas.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// baseDateQuery lee base_date (2006-01-02) del query string; vacío = hoy.
func baseDateQuery(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("base_date")
	if raw == "" {
		return time.Now(), nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return d, nil
}

// Receive godoc
// @Summary      Registrar recepción de mercancía
// @Description  Crea un lote nuevo con cantidad, vencimiento y fecha de recepción.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveRequest  true  "product_id, quantity, expiry_date, received_date (opcional)"
// @Success      201  {object}  dto.BatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/receive [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Receive(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Consume godoc
// @Summary      Salida administrativa de inventario
// @Description  Descuenta en orden FEFO sin excluir lotes vencidos y registra
// @Description  un log por lote afectado. Todo-o-nada: un faltante revierte la
// @Description  operación completa.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsumeRequest  true  "product_id, quantity, type (ADJUSTMENT|WASTE|DAMAGE|LOSS), note"
// @Success      200  {object}  dto.ConsumeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "stock insuficiente (incluye requested y shortfall)"
// @Router       /api/inventory/consume [post]
func (h *InventoryHandler) Consume(c *fiber.Ctx) error {
	var in dto.ConsumeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Consume(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ConsumeForSale godoc
// @Summary      Salida de inventario por venta
// @Description  Descuenta en orden FEFO excluyendo lotes vencidos a la fecha
// @Description  de venta. Un lote que vence ese mismo día sigue siendo vendible.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleConsumeRequest  true  "product_id, quantity, sale_date (opcional, default hoy)"
// @Success      200  {object}  dto.ConsumeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "stock insuficiente (incluye requested y shortfall)"
// @Router       /api/inventory/sale [post]
func (h *InventoryHandler) ConsumeForSale(c *fiber.Ctx) error {
	var in dto.SaleConsumeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ConsumeForSale(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Batches godoc
// @Summary      Lotes de un producto
// @Description  Devuelve los lotes en orden FEFO (vencimiento ascendente).
// @Tags         inventory
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}   dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/batches [get]
func (h *InventoryHandler) Batches(c *fiber.Ctx) error {
	out, err := h.uc.Batches(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Stock vendible de un producto
// @Tags         inventory
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summaries godoc
// @Summary      Stock vendible por producto
// @Description  Incluye productos sin lotes con total 0. status default: ACTIVE.
// @Tags         inventory
// @Produce      json
// @Param        status  query  string  false  "ACTIVE | DISCONTINUED | PAUSED"
// @Success      200  {array}   dto.SummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/summaries [get]
func (h *InventoryHandler) Summaries(c *fiber.Ctx) error {
	out, err := h.uc.Summaries(c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Expiring godoc
// @Summary      Lotes por vencer
// @Description  Lotes con vencimiento hasta base_date inclusive, del más
// @Description  próximo a vencer al más lejano.
// @Tags         inventory
// @Produce      json
// @Param        base_date  query  string  false  "Fecha tope 2006-01-02 (default hoy)"
// @Success      200  {array}   dto.ExpiringBatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/expiring [get]
func (h *InventoryHandler) Expiring(c *fiber.Ctx) error {
	baseDate, err := baseDateQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ExpiringBatches(baseDate)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DisposeExpired godoc
// @Summary      Desecho masivo de lotes vencidos
// @Description  Deja en 0 todos los lotes vencidos a base_date con stock y
// @Description  escribe un log WASTE por lote, en una sola transacción.
// @Tags         inventory
// @Produce      json
// @Param        base_date  query  string  false  "Fecha base 2006-01-02 (default hoy)"
// @Param        note       query  string  false  "Nota para los logs"
// @Success      200  {object}  dto.DisposeExpiredResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/dispose-expired [post]
func (h *InventoryHandler) DisposeExpired(c *fiber.Ctx) error {
	baseDate, err := baseDateQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.DisposeExpired(c.Context(), baseDate, c.Query("note"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Logs godoc
// @Summary      Registro de salidas de un producto
// @Tags         inventory
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        type    query  string  false  "ADJUSTMENT | WASTE | DAMAGE | LOSS"
// @Param        limit   query  int     false  "Tamaño de página (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.InventoryLogResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/logs [get]
func (h *InventoryHandler) Logs(c *fiber.Ctx) error {
	out, err := h.uc.Logs(c.Params("id"), c.Query("type"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
