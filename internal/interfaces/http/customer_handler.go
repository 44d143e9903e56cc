package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse/internal/application/dto"
	"github.com/jhoicas/warehouse/internal/application/usecase"
)

// CustomerHandler consultas de clientes (solo lectura).
type CustomerHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.WarehouseUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.CustomerResponse]
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	customers, err := h.uc.GetCustomers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for _, cu := range customers {
		items = append(items, dto.ToCustomerResponse(cu))
	}
	return c.JSON(dto.NewList(items))
}

// GetByID godoc
// @Summary      Obtener cliente por ID
// @Tags         customers
// @Produce      json
// @Param        id   path  int  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un entero positivo")
	}
	out, err := h.uc.GetCustomer(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "cliente no encontrado")
	}
	return c.JSON(dto.ToCustomerResponse(*out))
}
