package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/supplychain/mysupply-api/internal/application/dto"
	"github.com/supplychain/mysupply-api/internal/application/sales"
)

// CustomerOrderHandler maneja las peticiones HTTP para CustomerOrder (protegido).
type CustomerOrderHandler struct {
	uc *sales.CustomerOrderUseCase
}

// NewCustomerOrderHandler construye el handler.
func NewCustomerOrderHandler(uc *sales.CustomerOrderUseCase) *CustomerOrderHandler {
	return &CustomerOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido de cliente (consume stock de productos)
// @Tags         customer-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerOrderRequest  true  "Datos del pedido"
// @Success      201   {object}  dto.CustomerOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock de productos insuficiente"
// @Router       /api/customer-orders [post]
func (h *CustomerOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido por ID (incluye entrega si existe)
// @Tags         customer-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.CustomerOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customer-orders/{id} [get]
func (h *CustomerOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar pedidos de clientes
// @Tags         customer-orders
// @Security     Bearer
// @Produce      json
// @Param        status            query  string  false  "Filtrar por estado"
// @Param        customer_id       query  string  false  "Filtrar por cliente"
// @Param        without_delivery  query  bool    false  "Solo pedidos sin entrega"
// @Param        limit             query  int     false  "Límite"   default(20)
// @Param        offset            query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.CustomerOrderResponse
// @Router       /api/customer-orders [get]
func (h *CustomerOrderHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	if status := c.Query("status"); status != "" {
		out, err := h.uc.ListByStatus(status, limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		out, err := h.uc.ListByCustomer(customerID, limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	if c.QueryBool("without_delivery") {
		out, err := h.uc.ListWithoutDelivery(limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido (LIVREE es terminal)
// @Tags         customer-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.CustomerOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customer-orders/{id}/status [patch]
func (h *CustomerOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pedido (restituye stock; rechazado si fue entregado)
// @Tags         customer-orders
// @Security     Bearer
// @Param        id  path  string  true  "ID del pedido"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customer-orders/{id} [delete]
func (h *CustomerOrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
