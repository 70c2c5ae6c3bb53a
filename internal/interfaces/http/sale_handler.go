package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvintimilla/andina-api/internal/application/dto"
	"github.com/dvintimilla/andina-api/internal/application/sales"
)

// SaleHandler maneja ventas a cliente final y su cancelación.
type SaleHandler struct {
	uc *sales.UseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.UseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock de inmediato, validando contra la cantidad
//
//	disponible (no solo la física).
//
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSaleRequest  true  "product_id, location, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterSale(c.Context(), sales.SaleInput{
		ProductID: in.ProductID,
		Location:  in.Location,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		CreatedBy: GetUserID(c),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(out))
}

// Cancel godoc
// @Summary      Cancelar venta
// @Description  Restaura el stock y deja una marca de reversa; una venta solo se
//
//	cancela una vez.
//
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento de venta"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/cancel [post]
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.CancelSale(c.Context(), id, GetUserID(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "venta cancelada"})
}
