package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/ordering"
	"github.com/jhoicas/tienda-api/internal/application/receipt"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// OrderHandler maneja las peticiones HTTP de pedidos.
type OrderHandler struct {
	uc      *ordering.OrderUseCase
	receipt *receipt.ReceiptUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *ordering.OrderUseCase, receiptUC *receipt.ReceiptUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, receipt: receiptUC}
}

func viewer(c *fiber.Ctx) ordering.Viewer {
	return ordering.Viewer{UserID: GetUserID(c), Admin: GetRole(c) == entity.RoleAdmin}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Descuenta stock de todas las líneas o de ninguna. Precio y total quedan congelados.
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "productos: [{producto_id, cantidad}]"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /pedidos [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if done, err := bindJSON(c, &in); done {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pedidos
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        cerrado  query  string  false  "true | false"
// @Success      200  {array}   dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /pedidos [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("cerrado"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Mine godoc
// @Summary      Pedidos propios
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        cerrado  query  string  false  "true | false"
// @Success      200  {array}   dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /pedidos/me [get]
func (h *OrderHandler) Mine(c *fiber.Ctx) error {
	out, err := h.uc.GetByUser(c.UserContext(), GetUserID(c), c.Query("cerrado"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ByUser godoc
// @Summary      Pedidos de un usuario
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true   "ID del usuario"
// @Param        cerrado  query  string  false  "true | false"
// @Success      200  {array}   dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /pedidos/usuario/{id} [get]
func (h *OrderHandler) ByUser(c *fiber.Ctx) error {
	out, err := h.uc.GetByUser(c.UserContext(), c.Params("id"), c.Query("cerrado"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ByProduct godoc
// @Summary      Pedidos que contienen un producto
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        codigo   path   string  true   "ID del producto"
// @Param        cerrado  query  string  false  "true | false"
// @Success      200  {array}   dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /pedidos/producto/{codigo} [get]
func (h *OrderHandler) ByProduct(c *fiber.Ctx) error {
	out, err := h.uc.GetByProduct(c.UserContext(), c.Params("codigo"), c.Query("cerrado"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido (dueño o admin)
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true   "ID del pedido"
// @Param        cerrado  query  string  false  "true | false"
// @Success      200  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /pedidos/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"), viewer(c), c.Query("cerrado"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF del pedido (dueño o admin)
// @Tags         pedidos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /pedidos/{id}/comprobante [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.receipt.Download(c.UserContext(), c.Params("id"), viewer(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// Update godoc
// @Summary      Editar pedido (usuario, cerrado, productos)
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /pedidos/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if done, err := bindPatch(c, &in, &in.Patch); done {
		return err
	}
	out, err := h.uc.Edit(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar pedido propio (devuelve stock)
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /pedidos/{id}/cancelar [delete]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Mensaje: "Pedido cancelado"})
}

// Delete godoc
// @Summary      Eliminar pedido (admin, devuelve stock)
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /pedidos/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Mensaje: "Pedido eliminado"})
}
