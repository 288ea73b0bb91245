package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByPhone(ctx context.Context, phone string) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	// List devuelve usuarios; active nil no filtra.
	List(ctx context.Context, active *bool) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
