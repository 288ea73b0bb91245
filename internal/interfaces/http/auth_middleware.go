package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// Locals keys para los datos del token en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
	LocalClaims = "claims"
)

// TokenVerifier valida la firma y expiración de un token.
type TokenVerifier interface {
	Parse(tokenString string) (*jwt.Claims, error)
}

// RevocationChecker consulta la lista de tokens revocados.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthMiddleware valida el Bearer Token de acceso, rechaza los revocados y carga
// UserID, Role y los claims en c.Locals.
func AuthMiddleware(verifier TokenVerifier, revocations RevocationChecker) fiber.Handler {
	return authenticate(verifier, revocations, jwt.TypeAccess)
}

// RefreshMiddleware es AuthMiddleware para rutas que exigen un token refresh.
func RefreshMiddleware(verifier TokenVerifier, revocations RevocationChecker) fiber.Handler {
	return authenticate(verifier, revocations, jwt.TypeRefresh)
}

func authenticate(verifier TokenVerifier, revocations RevocationChecker, tokenType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "MISSING_TOKEN", "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized(c, "MISSING_TOKEN", "token vacío")
		}
		claims, err := verifier.Parse(tokenString)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "token inválido o expirado")
		}
		if claims.Type != tokenType {
			return unauthorized(c, "INVALID_TOKEN_TYPE", "se requiere un token de tipo "+tokenType)
		}
		revoked, err := revocations.IsRevoked(c.UserContext(), claims.ID)
		if err != nil {
			return writeError(c, err)
		}
		if revoked {
			return unauthorized(c, "TOKEN_REVOKED", "token revocado")
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Debe ir después de AuthMiddleware.
// Sin claim de rol responde 401; con un rol no permitido, 403.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return unauthorized(c, "MISSING_ROLE", "el token no incluye rol")
		}
		if !allowed[role] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: "acceso denegado para el rol " + role,
				Code:  "FORBIDDEN",
			})
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Error: msg})
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetClaims devuelve los claims del token presentado.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return claims
}
