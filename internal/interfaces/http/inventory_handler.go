package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse/internal/application/dto"
	"github.com/jhoicas/warehouse/internal/application/usecase"
)

// InventoryHandler consulta de existencias.
type InventoryHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *usecase.WarehouseUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List godoc
// @Summary      Stock por producto
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.StockResponse]
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	stock, err := h.uc.GetInventory(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.StockResponse, 0, len(stock))
	for _, s := range stock {
		items = append(items, dto.StockResponse{ProductID: s.ProductID, Quantity: s.Quantity})
	}
	return c.JSON(dto.NewList(items))
}
