package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// AuthUseCase casos de uso de autenticación: registro, login, logout y refresh.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	accounts  *usecase.AccountUseCase
	tokens    *jwt.Manager
	blacklist repository.TokenBlacklist
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, accounts *usecase.AccountUseCase, tokens *jwt.Manager, blacklist repository.TokenBlacklist) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, accounts: accounts, tokens: tokens, blacklist: blacklist}
}

// Register crea una cuenta de cliente. El rol nunca viene del cuerpo.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	return uc.accounts.Create(ctx, in)
}

// CheckPassword verifica email/contraseña y emite el par de tokens.
// Cuenta inexistente o inactiva es ErrNotFound aunque la contraseña sea correcta.
func (uc *AuthUseCase) CheckPassword(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.NotFoundf("Usuario con email %s no encontrado o inactivo", email)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	pair, err := uc.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   pair.Access,
		Refresh: pair.Refresh,
		Usuario: *usecase.ToUserResponse(user),
	}, nil
}

// Logout registra el jti del token presentado en la lista de revocados.
func (uc *AuthUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	return uc.revoke(ctx, claims)
}

// Refresh consume un token refresh (queda revocado) y emite un par nuevo.
// El usuario debe seguir activo; el rol se toma de la base, no del token.
func (uc *AuthUseCase) Refresh(ctx context.Context, claims *jwt.Claims) (*dto.TokenPairResponse, error) {
	if claims == nil || claims.Type != jwt.TypeRefresh {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.NotFoundf("Usuario con ID %s no encontrado o inactivo", claims.UserID)
	}
	if err := uc.revoke(ctx, claims); err != nil {
		return nil, err
	}
	pair, err := uc.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairResponse{Token: pair.Access, Refresh: pair.Refresh}, nil
}

func (uc *AuthUseCase) revoke(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ID == "" {
		return domain.ErrUnauthorized
	}
	expires := time.Now()
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	return uc.blacklist.Revoke(ctx, &entity.RevokedToken{
		JTI:       claims.ID,
		ExpiresAt: expires,
		CreatedAt: time.Now(),
	})
}
