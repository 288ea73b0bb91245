package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "tienda-api-test"
)

var testTokens = &pkgjwt.Manager{
	Secret:     testJWTSecret,
	Issuer:     testIssuer,
	AccessTTL:  time.Hour,
	RefreshTTL: 24 * time.Hour,
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(blacklist apphttp.RevocationChecker, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testTokens, blacklist),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"role":    apphttp.GetRole(c),
				"user_id": apphttp.GetUserID(c),
			})
		},
	)
	return app
}

// tokenFor genera un JWT del tipo y rol indicados.
func tokenFor(t *testing.T, role, tokenType string) (string, *pkgjwt.Claims) {
	t.Helper()
	tok, claims, err := pkgjwt.Generate(testJWTSecret, testIssuer, testUserID, role, tokenType, time.Hour)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok, claims
}

func accessFor(t *testing.T, role string) string {
	t.Helper()
	h, _ := tokenFor(t, role, pkgjwt.TypeAccess)
	return h
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(memory.NewStore().Blacklist(), entity.RoleAdmin)
	resp := doRequest(t, app, accessFor(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
	assert.Equal(t, testUserID, body["user_id"])
}

func TestRequireRole_ClienteAccedeRutaMultiRol(t *testing.T) {
	app := buildTestApp(memory.NewStore().Blacklist(), entity.RoleAdmin, entity.RoleClient)
	resp := doRequest(t, app, accessFor(t, entity.RoleClient))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_ClienteBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(memory.NewStore().Blacklist(), entity.RoleAdmin)
	resp := doRequest(t, app, accessFor(t, entity.RoleClient))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(memory.NewStore().Blacklist(), entity.RoleAdmin)
	resp := doRequest(t, app, accessFor(t, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(memory.NewStore().Blacklist(), entity.RoleAdmin)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(memory.NewStore().Blacklist(), entity.RoleAdmin)
	resp := doRequest(t, app, "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(memory.NewStore().Blacklist(), entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenRefreshEnRutaDeAcceso_Retorna401(t *testing.T) {
	app := buildTestApp(memory.NewStore().Blacklist(), entity.RoleAdmin)
	header, _ := tokenFor(t, entity.RoleAdmin, pkgjwt.TypeRefresh)
	resp := doRequest(t, app, header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN_TYPE")
}

func TestAuthMiddleware_TokenRevocado_Retorna401(t *testing.T) {
	blacklist := memory.NewStore().Blacklist()
	app := buildTestApp(blacklist, entity.RoleAdmin)
	header, claims := tokenFor(t, entity.RoleAdmin, pkgjwt.TypeAccess)

	resp := doRequest(t, app, header)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, blacklist.Revoke(context.Background(), &entity.RevokedToken{
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}))

	resp = doRequest(t, app, header)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "TOKEN_REVOKED")
}

func TestRefreshMiddleware_RechazaTokenDeAcceso(t *testing.T) {
	app := fiber.New()
	app.Post("/refresh", apphttp.RefreshMiddleware(testTokens, memory.NewStore().Blacklist()), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"typ": apphttp.GetClaims(c).Type})
	})

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.Header.Set("Authorization", accessFor(t, entity.RoleClient))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	header, _ := tokenFor(t, entity.RoleClient, pkgjwt.TypeRefresh)
	req = httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.Header.Set("Authorization", header)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), pkgjwt.TypeRefresh)
}
