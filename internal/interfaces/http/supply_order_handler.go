package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/supplychain/mysupply-api/internal/application/dto"
	"github.com/supplychain/mysupply-api/internal/application/supply"
)

// SupplyOrderHandler maneja las peticiones HTTP para SupplyOrder (protegido).
type SupplyOrderHandler struct {
	uc *supply.SupplyOrderUseCase
}

// NewSupplyOrderHandler construye el handler.
func NewSupplyOrderHandler(uc *supply.SupplyOrderUseCase) *SupplyOrderHandler {
	return &SupplyOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de aprovisionamiento (estado inicial EN_ATTENTE)
// @Tags         supply-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplyOrderRequest  true  "Datos de la orden"
// @Success      201   {object}  dto.SupplyOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse  "Proveedor no autorizado para algún material"
// @Router       /api/supply-orders [post]
func (h *SupplyOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplyOrderRequest
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
// @Summary      Obtener orden de aprovisionamiento por ID
// @Tags         supply-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.SupplyOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supply-orders/{id} [get]
func (h *SupplyOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de aprovisionamiento
// @Tags         supply-orders
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "Filtrar por estado"
// @Param        supplier_id  query  string  false  "Filtrar por proveedor"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.SupplyOrderResponse
// @Router       /api/supply-orders [get]
func (h *SupplyOrderHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	if status := c.Query("status"); status != "" {
		out, err := h.uc.ListByStatus(status, limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	if supplierID := c.Query("supplier_id"); supplierID != "" {
		out, err := h.uc.ListBySupplier(supplierID, limit, offset)
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
// @Summary      Cambiar estado (RECUE incrementa stock de materiales)
// @Tags         supply-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.SupplyOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/supply-orders/{id}/status [patch]
func (h *SupplyOrderHandler) UpdateStatus(c *fiber.Ctx) error {
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
// @Summary      Eliminar orden (rechazado si ya fue recibida)
// @Tags         supply-orders
// @Security     Bearer
// @Param        id  path  string  true  "ID de la orden"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/supply-orders/{id} [delete]
func (h *SupplyOrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
