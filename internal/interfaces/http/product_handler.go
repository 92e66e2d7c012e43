package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc *inventory.LedgerUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *inventory.LedgerUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Description  Acepta un objeto JSON columna -> valor; las claves ausentes toman valores por defecto (min_stock = 1).
// @Description  Un valor presente que no se puede convertir (p. ej. current_stock "abc") responde 400.
// @Tags         products
// @Accept       json
// @Produce      json
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in map[string]any
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	product, err := entity.ProductFromMapE(in)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.CreateProduct(c.UserContext(), product); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProductResponse(product))
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un entero positivo")
	}
	product, err := h.uc.GetProduct(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProductResponse(product))
}

// Exists godoc
// @Summary      Verificar si existe un producto
// @Tags         products
// @Param        id   path  int  true  "ID del producto"
// @Success      200
// @Failure      404
// @Router       /api/products/{id} [head]
func (h *ProductHandler) Exists(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	exists, err := h.uc.ProductExists(c.UserContext(), id)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if !exists {
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.SendStatus(fiber.StatusOK)
}

// List godoc
// @Summary      Listar productos (orden por nombre)
// @Tags         products
// @Produce      json
// @Param        status    query  string  false  "Filtrar por estado: out_of_stock, low_stock, normal"
// @Param        q         query  string  false  "Texto contenido en nombre o marca"
// @Param        category  query  string  false  "Categoría exacta"
// @Param        expired   query  bool    false  "Solo productos vencidos"
// @Success      200       {object}  dto.ProductListResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	filter := entity.ProductFilter{
		Search:      c.Query("q"),
		Category:    c.Query("category"),
		Status:      c.Query("status"),
		ExpiredOnly: c.QueryBool("expired", false),
	}
	if err := filter.Validate(); err != nil {
		return badRequest(c, "INVALID_STATUS", "status debe ser out_of_stock, low_stock o normal")
	}
	products, expired, err := h.uc.FindProducts(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, dto.ToProductResponse(p))
	}
	return c.JSON(dto.ProductListResponse{
		Items:   items,
		Total:   len(items),
		Warning: entity.ExpiryWarning(expired),
	})
}

// Update godoc
// @Summary      Actualizar producto (sin stock: se maneja vía movimientos)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un entero positivo")
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	product, err := h.uc.GetProduct(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	in.ApplyTo(product)
	if err := h.uc.UpdateProduct(c.UserContext(), product); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProductResponse(product))
}

// Delete godoc
// @Summary      Eliminar producto y su historial
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.DeleteProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un entero positivo")
	}
	res, err := h.uc.DeleteProduct(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeleteProductResponse{
		ProductID:      res.ProductID,
		ProductName:    res.ProductName,
		HistoryRemoved: res.HistoryRemoved,
	})
}

// History godoc
// @Summary      Historial de un producto (más reciente primero)
// @Tags         products
// @Produce      json
// @Param        id     path   int  true   "ID del producto"
// @Param        limit  query  int  false  "Límite (por defecto HISTORY_LIMIT)"
// @Success      200    {array}   dto.HistoryEntryResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/products/{id}/history [get]
func (h *ProductHandler) History(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un entero positivo")
	}
	if _, err := h.uc.GetProduct(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	entries, err := h.uc.ListHistory(c.UserContext(), id, c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToHistoryResponse(entries))
}

// Statistics godoc
// @Summary      Estadísticas de operaciones de un producto
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.StatisticsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/statistics [get]
func (h *ProductHandler) Statistics(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un entero positivo")
	}
	if _, err := h.uc.GetProduct(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	st, err := h.uc.GetStatistics(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToStatisticsResponse(id, st))
}
