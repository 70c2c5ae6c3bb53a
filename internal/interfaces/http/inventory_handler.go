package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvintimilla/andina-api/internal/application/dto"
	"github.com/dvintimilla/andina-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP del Store de inventario:
// entradas, correcciones, overrides y las vistas derivadas de disponibilidad.
type InventoryHandler struct {
	ledger       *inventory.LedgerUseCase
	availability *inventory.AvailabilityService
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, availability *inventory.AvailabilityService) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, availability: availability}
}

// RegisterEntry godoc
// @Summary      Registrar entrada de stock
// @Description  Suma stock en una ubicación y recalcula el costo promedio ponderado.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterEntryRequest  true  "product_id, location, quantity, unit_cost"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/entries [post]
func (h *InventoryHandler) RegisterEntry(c *fiber.Ctx) error {
	var in dto.RegisterEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ledger.RegisterEntry(c.Context(), inventory.EntryInput{
		ProductID: in.ProductID,
		Location:  in.Location,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		UnitPrice: in.UnitPrice,
		CreatedBy: GetUserID(c),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(out))
}

// RegisterCorrection godoc
// @Summary      Registrar corrección manual
// @Description  Ajuste manual con motivo obligatorio; direction es IN o OUT.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterCorrectionRequest  true  "product_id, location, direction, quantity, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/corrections [post]
func (h *InventoryHandler) RegisterCorrection(c *fiber.Ctx) error {
	var in dto.RegisterCorrectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ledger.RegisterCorrection(c.Context(), inventory.CorrectionInput{
		ProductID: in.ProductID,
		Location:  in.Location,
		Direction: in.Direction,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		CreatedBy: GetUserID(c),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(out))
}

// OverrideQuantity godoc
// @Summary      Fijar cantidad por conteo físico
// @Description  Fija la cantidad del registro sin escribir movimiento; la brecha
//
//	resultante la detecta el motor de reconciliación.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OverrideQuantityRequest  true  "product_id, location, new_quantity, reason"
// @Success      200   {object}  dto.InventoryRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/records/override [post]
func (h *InventoryHandler) OverrideQuantity(c *fiber.Ctx) error {
	var in dto.OverrideQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ledger.OverrideQuantity(c.Context(), inventory.OverrideInput{
		ProductID:   in.ProductID,
		Location:    in.Location,
		NewQuantity: in.NewQuantity,
		Reason:      in.Reason,
		CreatedBy:   GetUserID(c),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toRecordResponse(out))
}

// ListRecords godoc
// @Summary      Listar registros de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        location  query  string  false  "Filtrar por ubicación canónica"
// @Param        limit     query  int     false  "Límite"   default(50)
// @Param        offset    query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.InventoryRecordResponse
// @Router       /api/inventory/records [get]
func (h *InventoryHandler) ListRecords(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	page.DefaultPage()
	out, err := h.ledger.ListRecords(c.Query("location"), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toRecordResponses(out))
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true   "ID del producto"
// @Param        limit       query  int     false  "Límite"   default(50)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	page.DefaultPage()
	out, err := h.ledger.ListMovements(productID, page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toMovementResponses(out))
}

// Availability godoc
// @Summary      Disponibilidad de un producto en una ubicación
// @Description  on_hand y available se derivan del comprometido calculado al
//
//	momento de la consulta; nunca se cachean.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true  "ID del producto"
// @Param        location    query  string  true  "Ubicación"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/availability [get]
func (h *InventoryHandler) Availability(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	location := c.Query("location")
	if productID == "" || location == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y location son requeridos"})
	}
	onHand, err := h.availability.OnHand(productID, location)
	if err != nil {
		return respondDomainError(c, err)
	}
	committed, err := h.availability.Committed(productID)
	if err != nil {
		return respondDomainError(c, err)
	}
	available, err := h.availability.Available(productID, location)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.AvailabilityResponse{
		ProductID: productID,
		Location:  location,
		OnHand:    onHand,
		Committed: committed,
		Available: available,
	})
}
