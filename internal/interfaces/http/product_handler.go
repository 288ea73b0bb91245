package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP del catálogo.
// Las rutas públicas fijan mostrar=true; las de admin toman ?mostrar= de la query.
type ProductHandler struct {
	uc *usecase.CatalogUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.CatalogUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// mostrar devuelve el filtro de visibilidad según la ruta.
func mostrar(c *fiber.Ctx, public bool) string {
	if public {
		return "true"
	}
	return c.Query("mostrar")
}

// List godoc
// @Summary      Listar productos
// @Tags         productos
// @Produce      json
// @Param        mostrar  query  string  false  "true | false (solo admin)"
// @Success      200  {array}   dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /productos [get]
func (h *ProductHandler) List(public bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.uc.List(c.UserContext(), mostrar(c, public))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// GetByID godoc
// @Summary      Obtener producto por ID (cualquier visibilidad)
// @Tags         productos
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /productos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SearchByName godoc
// @Summary      Buscar productos por nombre (subcadena, sin distinguir mayúsculas)
// @Tags         productos
// @Produce      json
// @Param        nombre  path  string  true  "Texto a buscar"
// @Success      200  {array}   dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /productos/nombre/{nombre} [get]
func (h *ProductHandler) SearchByName(public bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.uc.SearchByName(c.UserContext(), c.Params("nombre"), mostrar(c, public))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// SearchByCategory godoc
// @Summary      Productos de una categoría
// @Tags         productos
// @Produce      json
// @Param        categoria  path  string  true  "Categoría"
// @Success      200  {array}   dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /productos/categoria/{categoria} [get]
func (h *ProductHandler) SearchByCategory(public bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.uc.SearchByCategory(c.UserContext(), c.Params("categoria"), mostrar(c, public))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// Featured godoc
// @Summary      Productos destacados
// @Tags         productos
// @Produce      json
// @Success      200  {array}   dto.ProductResponse
// @Router       /productos/destacado [get]
func (h *ProductHandler) Featured(public bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.uc.Featured(c.UserContext(), mostrar(c, public))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// Categories godoc
// @Summary      Categorías distintas
// @Tags         productos
// @Produce      json
// @Success      200  {object}  dto.CategoriesResponse
// @Router       /productos/categoria [get]
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CategoriesResponse{Categorias: out})
}

// Create godoc
// @Summary      Crear producto
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /admin/productos [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if done, err := bindJSON(c, &in); done {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (parcial)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /admin/productos/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if done, err := bindPatch(c, &in, &in.Patch); done {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /admin/productos/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Mensaje: "Producto eliminado"})
}
