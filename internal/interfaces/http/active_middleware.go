package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// activeChecker es el contrato mínimo para verificar que la cuenta del token siga activa.
// Lo implementa *usecase.AccountUseCase.
type activeChecker interface {
	IsActive(ctx context.Context, userID string) (bool, error)
}

// RequireActiveAccount rechaza tokens de cuentas dadas de baja después de emitirlos.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalUserID).
//
// Comportamiento:
//   - 401 Unauthorized → cuenta inexistente o inactiva.
//   - 500 Internal Server Error → fallo al consultar la cuenta.
func RequireActiveAccount(checker activeChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return unauthorized(c, "UNAUTHORIZED", "user_id no encontrado en el token")
		}
		active, err := checker.IsActive(c.UserContext(), userID)
		if err != nil {
			return writeError(c, fmt.Errorf("verificar cuenta %s: %w", userID, err))
		}
		if !active {
			return unauthorized(c, "ACCOUNT_INACTIVE", "la cuenta no existe o está inactiva")
		}
		return c.Next()
	}
}
