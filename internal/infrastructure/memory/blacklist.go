package memory

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.TokenBlacklist = (*Blacklist)(nil)

// Blacklist lista de jti revocados; las entradas vencidas se descartan al consultar.
type Blacklist struct {
	s *Store
}

func (b *Blacklist) Revoke(_ context.Context, token *entity.RevokedToken) error {
	defer b.s.writeLock(false)()
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	b.s.data.revoked[token.JTI] = token.ExpiresAt
	return nil
}

func (b *Blacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	exp, ok := b.s.data.revoked[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		delete(b.s.data.revoked, jti)
		return false, nil
	}
	return true, nil
}
