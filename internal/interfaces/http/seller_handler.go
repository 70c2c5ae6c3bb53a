package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvintimilla/andina-api/internal/application/dto"
	"github.com/dvintimilla/andina-api/internal/application/sellers"
)

// SellerHandler maneja el directorio de revendedores.
type SellerHandler struct {
	uc *sellers.UseCase
}

// NewSellerHandler construye el handler.
func NewSellerHandler(uc *sellers.UseCase) *SellerHandler {
	return &SellerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear revendedor
// @Tags         sellers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSellerRequest  true  "name, price_tier (mayorista|minorista)"
// @Success      201   {object}  dto.SellerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sellers [post]
func (h *SellerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSellerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), sellers.CreateInput{Name: in.Name, PriceTier: in.PriceTier})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSellerResponse(out))
}

// GetByID godoc
// @Summary      Obtener revendedor por ID
// @Tags         sellers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del revendedor"
// @Success      200  {object}  dto.SellerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sellers/{id} [get]
func (h *SellerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toSellerResponse(out))
}

// List godoc
// @Summary      Listar revendedores
// @Tags         sellers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(50)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {array}  dto.SellerResponse
// @Router       /api/sellers [get]
func (h *SellerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	page.DefaultPage()
	out, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	res := make([]dto.SellerResponse, 0, len(out))
	for _, s := range out {
		res = append(res, toSellerResponse(s))
	}
	return c.JSON(res)
}

// ConsignmentStock godoc
// @Summary      Stock en consignación del revendedor
// @Tags         sellers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del revendedor"
// @Success      200  {array}  dto.InventoryRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sellers/{id}/stock [get]
func (h *SellerHandler) ConsignmentStock(c *fiber.Ctx) error {
	out, err := h.uc.ConsignmentStock(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toRecordResponses(out))
}
