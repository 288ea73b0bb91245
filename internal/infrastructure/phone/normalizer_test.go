package phone

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain"
)

func TestNormalize_InternationalMobile(t *testing.T) {
	n := NewNormalizer("AR")
	got, err := n.Normalize("+54 9 11 2345-6789")
	require.NoError(t, err)
	assert.Equal(t, "+5491123456789", got)
}

func TestNormalize_AlreadyE164(t *testing.T) {
	n := NewNormalizer("ar")
	got, err := n.Normalize("+5491123456789")
	require.NoError(t, err)
	assert.Equal(t, "+5491123456789", got)
}

func TestNormalize_Rejects(t *testing.T) {
	n := NewNormalizer("AR")
	for _, raw := range []string{"", "abc", "123", "+54 11 1234"} {
		_, err := n.Normalize(raw)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "raw=%q", raw)
	}
}
