package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// TokenBlacklist es la lista de credenciales revocadas (por jti).
type TokenBlacklist interface {
	Revoke(ctx context.Context, token *entity.RevokedToken) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
