package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testIssuer = "tienda-api-test"
)

func TestGenerateAndParse_ConRolYTipo(t *testing.T) {
	tok, issued, err := pkgjwt.Generate(testSecret, testIssuer, testUserID, "admin", pkgjwt.TypeAccess, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, pkgjwt.TypeAccess, claims.Type)
	assert.Equal(t, issued.ID, claims.ID)
	assert.NotEmpty(t, claims.ID)
}

func TestGenerate_JTIUnicoPorToken(t *testing.T) {
	_, a, err := pkgjwt.Generate(testSecret, testIssuer, testUserID, "cliente", pkgjwt.TypeAccess, time.Hour)
	require.NoError(t, err)
	_, b, err := pkgjwt.Generate(testSecret, testIssuer, testUserID, "cliente", pkgjwt.TypeAccess, time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestParse_TokenExpirado_RetornaError(t *testing.T) {
	tok, _, err := pkgjwt.Generate(testSecret, testIssuer, testUserID, "admin", pkgjwt.TypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, _, err := pkgjwt.Generate(testSecret, testIssuer, testUserID, "admin", pkgjwt.TypeAccess, time.Hour)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio_RetornaError(t *testing.T) {
	_, _, err := pkgjwt.Generate("", testIssuer, testUserID, "admin", pkgjwt.TypeAccess, time.Hour)
	assert.Error(t, err)
}

func TestManager_IssueParDeTokens(t *testing.T) {
	m := &pkgjwt.Manager{Secret: testSecret, Issuer: testIssuer, AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour}

	pair, err := m.Issue(testUserID, "cliente")
	require.NoError(t, err)

	access, err := m.Parse(pair.Access)
	require.NoError(t, err)
	refresh, err := m.Parse(pair.Refresh)
	require.NoError(t, err)

	assert.Equal(t, pkgjwt.TypeAccess, access.Type)
	assert.Equal(t, pkgjwt.TypeRefresh, refresh.Type)
	assert.Equal(t, "cliente", refresh.Role)
	assert.NotEqual(t, access.ID, refresh.ID)
	assert.True(t, refresh.ExpiresAt.After(access.ExpiresAt.Time))
}
