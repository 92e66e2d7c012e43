package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de movimientos, historial y reposición.
type InventoryHandler struct {
	uc            *inventory.LedgerUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, replenishment: replenishment}
}

// RecordMovement godoc
// @Summary      Registrar un cambio de stock ya calculado
// @Description  Fija el stock del producto en stock_after y agrega una entrada al historial en la misma transacción.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockChangeRequest  true  "product_id, operation_type, quantity_change, stock_after, memo"
// @Success      201   {object}  dto.StockChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.StockChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.ProductID <= 0 {
		return badRequest(c, "VALIDATION", "product_id es requerido")
	}
	res, err := h.uc.UpdateStockAndRecordHistory(c.UserContext(), in.StockChange())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToStockChangeResponse(res))
}

// ApplyOperation godoc
// @Summary      Compra, consumo o ajuste de stock
// @Description  purchase suma, use resta (sin bajar de 0), adjust fija el valor.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOperationRequest  true  "product_id, operation, quantity, memo"
// @Success      201   {object}  dto.StockChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/operations [post]
func (h *InventoryHandler) ApplyOperation(c *fiber.Ctx) error {
	var in dto.StockOperationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.ProductID <= 0 {
		return badRequest(c, "VALIDATION", "product_id es requerido")
	}
	res, err := h.uc.ApplyOperation(c.UserContext(), in.ProductID, in.Operation, in.Quantity, in.Memo)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToStockChangeResponse(res))
}

// History godoc
// @Summary      Historial de stock (todos los productos o uno)
// @Tags         inventory
// @Produce      json
// @Param        product_id  query  int  false  "Filtrar por producto"
// @Param        limit       query  int  false  "Límite (por defecto HISTORY_LIMIT)"
// @Success      200  {array}  dto.HistoryEntryResponse
// @Router       /api/inventory/history [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	productID := c.QueryInt("product_id", 0)
	if productID < 0 {
		return badRequest(c, "VALIDATION", "product_id inválido")
	}
	entries, err := h.uc.ListHistory(c.UserContext(), int64(productID), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToHistoryResponse(entries))
}

// GetReplenishmentList godoc
// @Summary      Lista de compras
// @Description  Productos agotados o con stock bajo y la cantidad sugerida para reponer, por urgencia.
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
