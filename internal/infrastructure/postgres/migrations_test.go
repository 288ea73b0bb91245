package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatements(t *testing.T) {
	got := splitStatements("CREATE TABLE a (id int);\n\n  CREATE INDEX b ON a (id);\n")
	assert.Equal(t, []string{"CREATE TABLE a (id int)", "CREATE INDEX b ON a (id)"}, got)
}

func TestEmbeddedMigrations(t *testing.T) {
	body, err := migrationFiles.ReadFile("migrations/001_init.sql")
	require.NoError(t, err)
	sql := string(body)
	assert.Contains(t, sql, "ON DELETE SET NULL")
	assert.Contains(t, sql, "CHECK (stock >= 0)")
	assert.Contains(t, sql, "token_blacklist")
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("6f1c2a3e-9b4d-4c5e-8f7a-1b2c3d4e5f60"))
	assert.False(t, validID("abc"))
	assert.False(t, validID(""))
}
