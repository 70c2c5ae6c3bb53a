package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvintimilla/andina-api/internal/application/catalog"
	"github.com/dvintimilla/andina-api/internal/application/dto"
)

// ProductHandler maneja las peticiones HTTP del catálogo (protegido).
type ProductHandler struct {
	uc *catalog.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SKU == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sku y name son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), catalog.CreateInput{
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Cost:        in.Cost,
		SalePrice:   in.SalePrice,
		UnitWeight:  in.UnitWeight,
		UnitVolume:  in.UnitVolume,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(out))
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toProductResponse(out))
}

// List godoc
// @Summary      Listar productos
// @Description  Con sellable=true oculta los hijos absorbidos por un producto consolidado.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        sellable  query  bool  false  "Solo productos vendibles"  default(false)
// @Param        limit     query  int   false  "Límite"                    default(50)
// @Param        offset    query  int   false  "Offset"                    default(0)
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	page.DefaultPage()
	sellable := c.QueryBool("sellable", false)
	out, err := h.uc.List(sellable, page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toProductResponses(out))
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.CreateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), id, catalog.CreateInput{
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Cost:        in.Cost,
		SalePrice:   in.SalePrice,
		UnitWeight:  in.UnitWeight,
		UnitVolume:  in.UnitVolume,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toProductResponse(out))
}

// Consolidate godoc
// @Summary      Consolidar producto
// @Description  Marca el producto como padre consolidado de los hijos dados. Solo
//
//	metadatos de catálogo: los registros de stock de los hijos no se
//	mueven ni se fusionan.
//
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto padre"
// @Param        body  body  dto.ConsolidateRequest  true  "IDs de los hijos"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/consolidate [post]
func (h *ProductHandler) Consolidate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ConsolidateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Consolidate(c.Context(), id, in.ChildIDs)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toProductResponse(out))
}

// Unconsolidate godoc
// @Summary      Desconsolidar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto padre"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/consolidate [delete]
func (h *ProductHandler) Unconsolidate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.Unconsolidate(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toProductResponse(out))
}
