package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dvintimilla/andina-api/internal/application/dto"
	"github.com/dvintimilla/andina-api/internal/application/reconcile"
)

// ReconciliationHandler expone el motor de reconciliación: replay del log de
// movimientos contra los saldos vivos, más la exportación del reporte en PDF.
type ReconciliationHandler struct {
	engine   *reconcile.Engine
	renderer reconcile.ReportRenderer
}

// NewReconciliationHandler construye el handler.
func NewReconciliationHandler(engine *reconcile.Engine, renderer reconcile.ReportRenderer) *ReconciliationHandler {
	return &ReconciliationHandler{engine: engine, renderer: renderer}
}

// Run godoc
// @Summary      Correr reconciliación
// @Description  Reconstruye el saldo esperado de cada (producto, ubicación) en el
//
//	alcance dado y lo compara con el registrado. Las diferencias se
//	reportan, nunca se autocorrigen.
//
// @Tags         reconciliation
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Limitar a un producto"
// @Param        location    query  string  false  "Limitar a una ubicación"
// @Success      200  {array}  dto.DiscrepancyReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reconciliation/run [get]
func (h *ReconciliationHandler) Run(c *fiber.Ctx) error {
	out, err := h.engine.Run(c.Context(), reconcile.Scope{
		ProductID: c.Query("product_id"),
		Location:  c.Query("location"),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toDiscrepancyResponses(out))
}

// Discrepancies godoc
// @Summary      Listar solo discrepancias
// @Tags         reconciliation
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Limitar a un producto"
// @Param        location    query  string  false  "Limitar a una ubicación"
// @Success      200  {array}  dto.DiscrepancyReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reconciliation/discrepancies [get]
func (h *ReconciliationHandler) Discrepancies(c *fiber.Ctx) error {
	out, err := h.engine.ListDiscrepancies(c.Context(), reconcile.Scope{
		ProductID: c.Query("product_id"),
		Location:  c.Query("location"),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toDiscrepancyResponses(out))
}

// ExportPDF godoc
// @Summary      Exportar discrepancias en PDF
// @Description  Genera el reporte imprimible para el conteo físico en bodega.
// @Tags         reconciliation
// @Security     Bearer
// @Produce      application/pdf
// @Param        product_id  query  string  false  "Limitar a un producto"
// @Param        location    query  string  false  "Limitar a una ubicación"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reconciliation/discrepancies/pdf [get]
func (h *ReconciliationHandler) ExportPDF(c *fiber.Ctx) error {
	reports, err := h.engine.ListDiscrepancies(c.Context(), reconcile.Scope{
		ProductID: c.Query("product_id"),
		Location:  c.Query("location"),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	asOf := time.Now()
	pdfBytes, err := h.renderer.RenderDiscrepancies(c.Context(), reports, asOf)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_GENERATION", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="discrepancias-%s.pdf"`, asOf.Format("20060102-150405")))
	return c.Send(pdfBytes)
}
