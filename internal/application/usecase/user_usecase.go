package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// PhoneNormalizer valida un teléfono y lo devuelve en formato E.164.
type PhoneNormalizer interface {
	Normalize(raw string) (string, error)
}

var (
	selfUserFields  = map[string]bool{"nombre": true, "email": true, "telefono": true, "contrasenia": true}
	adminUserFields = map[string]bool{"nombre": true, "email": true, "telefono": true, "contrasenia": true, "rol": true, "activo": true}
)

// AccountUseCase aplica reglas de negocio para cuentas de usuario.
type AccountUseCase struct {
	repo  repository.UserRepository
	phone PhoneNormalizer
}

// NewAccountUseCase construye el caso de uso con el puerto de persistencia y el normalizador de teléfonos.
func NewAccountUseCase(repo repository.UserRepository, phone PhoneNormalizer) *AccountUseCase {
	return &AccountUseCase{repo: repo, phone: phone}
}

// List lista usuarios filtrando por activos ("", "true", "false").
func (uc *AccountUseCase) List(ctx context.Context, activos string) ([]dto.UserResponse, error) {
	active, err := dto.ParseFlag("activos", activos)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, active)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *ToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *AccountUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFoundf("Usuario con ID %s no encontrado", id)
	}
	return ToUserResponse(user), nil
}

// Create registra un usuario cliente activo. Email, teléfono y nombre son únicos.
func (uc *AccountUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.newUser(ctx, in, entity.RoleClient)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// EnsureAdmin crea la cuenta de administrador o promueve la existente con ese email.
func (uc *AccountUseCase) EnsureAdmin(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, bool, error) {
	existing, err := uc.repo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		existing.Role = entity.RoleAdmin
		existing.Active = true
		existing.UpdatedAt = time.Now()
		if err := uc.repo.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return ToUserResponse(existing), false, nil
	}
	user, err := uc.newUser(ctx, in, entity.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return ToUserResponse(user), true, nil
}

func (uc *AccountUseCase) newUser(ctx context.Context, in dto.CreateUserRequest, role string) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	phone, err := uc.phone.Normalize(in.Phone)
	if err != nil {
		return nil, err
	}
	if err := uc.checkUnique(ctx, "", name, email, phone); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Active:       true,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Update aplica un patch. asAdmin habilita rol y activo; el camino propio solo
// admite nombre, email, telefono y contrasenia.
func (uc *AccountUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest, asAdmin bool) (*dto.UserResponse, error) {
	if len(in.Fields) == 0 {
		return nil, domain.ErrNoChanges
	}
	allowed := selfUserFields
	if asAdmin {
		allowed = adminUserFields
	}
	for _, f := range in.Fields {
		if !allowed[f] {
			return nil, domain.InvalidFieldf("El atributo '%s' no es modificable", f)
		}
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFoundf("Usuario con ID %s no encontrado", id)
	}

	name, email, phone := "", "", ""
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
		if name != user.Name {
			user.Name = name
		} else {
			name = ""
		}
	}
	if in.Email != nil {
		email = normalizeEmail(*in.Email)
		if email != user.Email {
			user.Email = email
		} else {
			email = ""
		}
	}
	if in.Phone != nil {
		phone, err = uc.phone.Normalize(*in.Phone)
		if err != nil {
			return nil, err
		}
		if phone != user.Phone {
			user.Phone = phone
		} else {
			phone = ""
		}
	}
	if err := uc.checkUnique(ctx, user.ID, name, email, phone); err != nil {
		return nil, err
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.Invalidf("Rol inválido: %s", *in.Role)
		}
		user.Role = *in.Role
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Deactivate da de baja lógica al usuario. Falla si no existe o ya está inactivo.
func (uc *AccountUseCase) Deactivate(ctx context.Context, id string) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil || !user.Active {
		return domain.NotFoundf("Usuario con ID %s no encontrado o ya inactivo", id)
	}
	user.Active = false
	user.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, user)
}

// checkUnique verifica que los valores no vacíos no pertenezcan a otra cuenta.
func (uc *AccountUseCase) checkUnique(ctx context.Context, selfID, name, email, phone string) error {
	if email != "" {
		u, err := uc.repo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if u != nil && u.ID != selfID {
			return domain.Duplicatef("El email '%s' ya está registrado", email)
		}
	}
	if phone != "" {
		u, err := uc.repo.GetByPhone(ctx, phone)
		if err != nil {
			return err
		}
		if u != nil && u.ID != selfID {
			return domain.Duplicatef("El teléfono '%s' ya está registrado", phone)
		}
	}
	if name != "" {
		u, err := uc.repo.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if u != nil && u.ID != selfID {
			return domain.Duplicatef("El nombre '%s' ya está registrado", name)
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ToUserResponse convierte la entidad a DTO (sin hash de contraseña).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Active:    u.Active,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// IsActive indica si la cuenta existe y está activa.
func (uc *AccountUseCase) IsActive(ctx context.Context, id string) (bool, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user != nil && user.Active, nil
}
