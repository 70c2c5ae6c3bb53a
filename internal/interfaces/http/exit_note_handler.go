package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvintimilla/andina-api/internal/application/dto"
	"github.com/dvintimilla/andina-api/internal/application/transfer"
)

// ExitNoteHandler maneja el workflow de notas de salida (traslados).
type ExitNoteHandler struct {
	uc *transfer.UseCase
}

// NewExitNoteHandler construye el handler.
func NewExitNoteHandler(uc *transfer.UseCase) *ExitNoteHandler {
	return &ExitNoteHandler{uc: uc}
}

// Create godoc
// @Summary      Crear nota de salida
// @Description  Valida cada línea contra la cantidad disponible y descuenta el
//
//	origen de inmediato; el destino solo suma cuando la nota llega.
//
// @Tags         exit-notes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExitNoteRequest  true  "destination o seller_id, más líneas"
// @Success      201   {object}  dto.ExitNoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/exit-notes [post]
func (h *ExitNoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExitNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Lines) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la nota requiere al menos una línea"})
	}
	lines := make([]transfer.LineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, transfer.LineInput{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	out, err := h.uc.Create(c.Context(), transfer.CreateInput{
		Source:      in.Source,
		Destination: in.Destination,
		SellerID:    in.SellerID,
		Lines:       lines,
		CreatedBy:   GetUserID(c),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toExitNoteResponse(out))
}

// UpdateStatus godoc
// @Summary      Transicionar estado de la nota
// @Description  PENDING→IN_TRANSIT→ARRIVED→COMPLETED. Al llegar, el destino
//
//	recibe el stock con el costo actual del producto.
//
// @Tags         exit-notes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la nota"
// @Param        body  body  dto.UpdateExitNoteStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.ExitNoteResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/exit-notes/{id}/status [put]
func (h *ExitNoteHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateExitNoteStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateStatus(c.Context(), id, in.Status); err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toExitNoteResponse(out))
}

// Cancel godoc
// @Summary      Cancelar nota pendiente
// @Description  Solo notas PENDING; restaura el stock al origen y deja una marca
//
//	de reversa en el log.
//
// @Tags         exit-notes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la nota"
// @Success      200  {object}  dto.ExitNoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/exit-notes/{id}/cancel [post]
func (h *ExitNoteHandler) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Cancel(c.Context(), id, GetUserID(c)); err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toExitNoteResponse(out))
}

// GetByID godoc
// @Summary      Obtener nota por ID
// @Tags         exit-notes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la nota"
// @Success      200  {object}  dto.ExitNoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/exit-notes/{id} [get]
func (h *ExitNoteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toExitNoteResponse(out))
}

// List godoc
// @Summary      Listar notas de salida
// @Tags         exit-notes
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        limit   query  int     false  "Límite"   default(50)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.ExitNoteResponse
// @Router       /api/exit-notes [get]
func (h *ExitNoteHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	page.DefaultPage()
	notes, err := h.uc.List(c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.ExitNoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toExitNoteResponse(n))
	}
	return c.JSON(out)
}
