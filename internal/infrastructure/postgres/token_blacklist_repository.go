package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.TokenBlacklist = (*TokenBlacklistRepo)(nil)

// TokenBlacklistRepo lista de tokens revocados sobre la tabla token_blacklist.
type TokenBlacklistRepo struct {
	q Querier
}

// NewTokenBlacklistRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTokenBlacklistRepository(q Querier) *TokenBlacklistRepo {
	return &TokenBlacklistRepo{q: q}
}

// Revoke registra el jti; revocar dos veces el mismo token no es error.
func (r *TokenBlacklistRepo) Revoke(ctx context.Context, token *entity.RevokedToken) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO token_blacklist (jti, expires_at, created_at) VALUES ($1, $2, $3) ON CONFLICT (jti) DO NOTHING`,
		token.JTI, token.ExpiresAt, token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked indica si el jti figura en la lista y aún no venció.
func (r *TokenBlacklistRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM token_blacklist WHERE jti = $1 AND expires_at > now())`, jti,
	).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return revoked, nil
}

// PurgeExpired elimina las entradas vencidas y devuelve cuántas borró.
func (r *TokenBlacklistRepo) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM token_blacklist WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("purge revoked tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
