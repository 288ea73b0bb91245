package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// errorKinds mapea cada clase de error de dominio a status y código.
var errorKinds = []struct {
	kind   error
	status int
	code   string
}{
	{domain.ErrInsufficientStock, fiber.StatusBadRequest, "INSUFFICIENT_STOCK"},
	{domain.ErrClosedOrder, fiber.StatusBadRequest, "CLOSED_ORDER"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidParameter, fiber.StatusBadRequest, "INVALID_PARAMETER"},
	{domain.ErrInvalidField, fiber.StatusBadRequest, "INVALID_FIELD"},
	{domain.ErrNoChanges, fiber.StatusBadRequest, "NO_CHANGES"},
	{domain.ErrDuplicate, fiber.StatusBadRequest, "DUPLICATE"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrTokenRevoked, fiber.StatusUnauthorized, "TOKEN_REVOKED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// writeError traduce err a la respuesta JSON. Errores sin clase conocida son 500.
func writeError(c *fiber.Ctx, err error) error {
	for _, k := range errorKinds {
		if errors.Is(err, k.kind) {
			return c.Status(k.status).JSON(dto.ErrorResponse{Error: err.Error(), Code: k.code})
		}
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error:   "error interno del servidor",
		Code:    "INTERNAL",
		Detalle: err.Error(),
	})
}

// writeValidation responde 400 con el detalle de cada regla incumplida.
func writeValidation(c *fiber.Ctx, details []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:    "Datos inválidos",
		Code:     "VALIDATION",
		Detalles: details,
	})
}

// ErrorHandler es el fiber.ErrorHandler de la app: errores de Fiber conservan su status.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Error: fe.Message, Code: fiberCode(fe.Code)})
	}
	return writeError(c, err)
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	default:
		return "INTERNAL"
	}
}
