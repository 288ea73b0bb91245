package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
)

type fakeChecker struct {
	active bool
	err    error
}

func (f fakeChecker) IsActive(context.Context, string) (bool, error) {
	return f.active, f.err
}

func buildActiveApp(checker fakeChecker) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testTokens, memory.NewStore().Blacklist()),
		apphttp.RequireActiveAccount(checker),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func TestRequireActiveAccount(t *testing.T) {
	tests := []struct {
		name     string
		checker  fakeChecker
		wantCode int
		wantBody string
	}{
		{"cuenta activa", fakeChecker{active: true}, http.StatusOK, ""},
		{"cuenta inactiva", fakeChecker{active: false}, http.StatusUnauthorized, "ACCOUNT_INACTIVE"},
		{"falla la consulta", fakeChecker{err: errors.New("db caída")}, http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, buildActiveApp(tt.checker), accessFor(t, entity.RoleClient))
			defer resp.Body.Close()
			assert.Equal(t, tt.wantCode, resp.StatusCode)
			if tt.wantBody == "" {
				return
			}
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantBody, body.Code)
		})
	}
}
