package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvintimilla/andina-api/internal/application/dto"
	"github.com/dvintimilla/andina-api/internal/application/returns"
)

// ReturnHandler maneja el workflow de devoluciones de revendedor.
type ReturnHandler struct {
	uc *returns.UseCase
}

// NewReturnHandler construye el handler.
func NewReturnHandler(uc *returns.UseCase) *ReturnHandler {
	return &ReturnHandler{uc: uc}
}

// Create godoc
// @Summary      Crear devolución
// @Description  La devolución nace PENDING sin efectos de stock ni deuda; todo
//
//	ocurre al aprobar.
//
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReturnRequest  true  "seller_id más líneas"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/returns [post]
func (h *ReturnHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SellerID == "" || len(in.Lines) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "seller_id y al menos una línea son requeridos"})
	}
	lines := make([]returns.LineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, returns.LineInput{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	out, err := h.uc.Create(c.Context(), returns.CreateInput{
		SellerID:  in.SellerID,
		Lines:     lines,
		CreatedBy: GetUserID(c),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReturnResponse(out))
}

// Approve godoc
// @Summary      Aprobar devolución
// @Description  Mueve el stock de la consignación a la bodega destino y reduce la
//
//	deuda del revendedor por el valor de la devolución.
//
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la devolución"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/returns/{id}/approve [post]
func (h *ReturnHandler) Approve(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Approve(c.Context(), id); err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toReturnResponse(out))
}

// Reject godoc
// @Summary      Rechazar devolución
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la devolución"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/returns/{id}/reject [post]
func (h *ReturnHandler) Reject(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Reject(c.Context(), id); err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toReturnResponse(out))
}

// Restore godoc
// @Summary      Deshacer devolución aprobada
// @Description  Aplica los efectos inversos exactos (stock y deuda) y deja una
//
//	marca de reversa; válido una sola vez.
//
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la devolución"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/returns/{id}/restore [post]
func (h *ReturnHandler) Restore(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Restore(c.Context(), id, GetUserID(c)); err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toReturnResponse(out))
}

// GetByID godoc
// @Summary      Obtener devolución por ID
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la devolución"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/returns/{id} [get]
func (h *ReturnHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toReturnResponse(out))
}

// List godoc
// @Summary      Listar devoluciones
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        seller_id  query  string  false  "Filtrar por revendedor"
// @Param        status     query  string  false  "Filtrar por estado"
// @Param        limit      query  int     false  "Límite"   default(50)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.ReturnResponse
// @Router       /api/returns [get]
func (h *ReturnHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	page.DefaultPage()
	rets, err := h.uc.List(c.Query("seller_id"), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.ReturnResponse, 0, len(rets))
	for _, r := range rets {
		out = append(out, toReturnResponse(r))
	}
	return c.JSON(out)
}
