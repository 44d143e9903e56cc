package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse/internal/application/dto"
	"github.com/jhoicas/warehouse/internal/application/usecase"
)

// OrderHandler pedidos: listado, consulta y alta.
type OrderHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.WarehouseUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar pedido
// @Description  Descuenta el stock de cada línea y registra el pedido con la fecha de hoy.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Cliente y líneas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock insuficiente"
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if len(in.Items) == 0 {
		return badRequest(c, "VALIDATION", "el pedido debe tener al menos un producto")
	}
	quantities := make(map[int]int, len(in.Items))
	for _, item := range in.Items {
		if _, dup := quantities[item.ProductID]; dup {
			return badRequest(c, "VALIDATION", fmt.Sprintf("producto repetido en el pedido: %d", item.ProductID))
		}
		quantities[item.ProductID] = item.Quantity
	}
	out, err := h.uc.AddOrder(c.UserContext(), in.CustomerID, quantities)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToOrderResponse(*out))
}

// GetByID godoc
// @Summary      Obtener pedido por ID
// @Tags         orders
// @Produce      json
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un entero positivo")
	}
	out, err := h.uc.GetOrder(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "pedido no encontrado")
	}
	return c.JSON(dto.ToOrderResponse(*out))
}

// List godoc
// @Summary      Listar pedidos por fecha
// @Tags         orders
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.OrderResponse]
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.uc.GetOrders(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, dto.ToOrderResponse(o))
	}
	return c.JSON(dto.NewList(items))
}
