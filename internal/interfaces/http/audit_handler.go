package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Perecederos-api/internal/application/inventory"
)

// AuditDefaults ventanas por defecto de la recomendación de revisión,
// aplicadas cuando el query string no las trae.
type AuditDefaults struct {
	ExpiringWithinDays int
	StaleAfterDays     int
	Limit              int
}

// AuditHandler maneja las peticiones HTTP de la revisión física del inventario.
type AuditHandler struct {
	uc       *inventory.AuditUseCase
	defaults AuditDefaults
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *inventory.AuditUseCase, defaults AuditDefaults) *AuditHandler {
	return &AuditHandler{uc: uc, defaults: defaults}
}

// Recommendations godoc
// @Summary      Lotes recomendados para revisión física
// @Description  Combina riesgo de vencimiento con antigüedad de la última
// @Description  revisión y devuelve una lista priorizada por puntaje.
// @Tags         audit
// @Produce      json
// @Param        base_date            query  string  false  "Fecha base 2006-01-02 (default hoy)"
// @Param        expiring_within_days query  int     false  "Ventana de vencimiento en días (default 14)"
// @Param        stale_after_days     query  int     false  "Antigüedad de revisión en días (default 30)"
// @Param        limit                query  int     false  "Máximo de lotes (default 20)"
// @Success      200  {array}   dto.AuditRecommendationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audit/recommendations [get]
func (h *AuditHandler) Recommendations(c *fiber.Ctx) error {
	baseDate, err := baseDateQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Recommendations(
		baseDate,
		c.QueryInt("expiring_within_days", h.defaults.ExpiringWithinDays),
		c.QueryInt("stale_after_days", h.defaults.StaleAfterDays),
		c.QueryInt("limit", h.defaults.Limit),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkChecked godoc
// @Summary      Marcar lote como revisado
// @Description  Registra la revisión física del lote con el instante actual.
// @Tags         audit
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audit/batches/{id}/check [post]
func (h *AuditHandler) MarkChecked(c *fiber.Ctx) error {
	if err := h.uc.MarkChecked(c.Params("id"), time.Now()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "lote marcado como revisado"})
}

// Checklist godoc
// @Summary      Hoja de revisión imprimible (PDF)
// @Description  Misma lista priorizada que /recommendations, como PDF A4 con
// @Description  casillas para marcar en piso.
// @Tags         audit
// @Produce      application/pdf
// @Param        base_date            query  string  false  "Fecha base 2006-01-02 (default hoy)"
// @Param        expiring_within_days query  int     false  "Ventana de vencimiento en días (default 14)"
// @Param        stale_after_days     query  int     false  "Antigüedad de revisión en días (default 30)"
// @Param        limit                query  int     false  "Máximo de lotes (default 20)"
// @Success      200  {file}    byte
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audit/checklist [get]
func (h *AuditHandler) Checklist(c *fiber.Ctx) error {
	baseDate, err := baseDateQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	pdfBytes, err := h.uc.ChecklistPDF(
		c.Context(),
		baseDate,
		c.QueryInt("expiring_within_days", h.defaults.ExpiringWithinDays),
		c.QueryInt("stale_after_days", h.defaults.StaleAfterDays),
		c.QueryInt("limit", h.defaults.Limit),
	)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="checklist-revision.pdf"`)
	return c.Send(pdfBytes)
}
