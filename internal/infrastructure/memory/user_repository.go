package memory

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	s  *Store
	tx bool
}

// Create agrega el usuario; email, teléfono y nombre repetidos son ErrDuplicate.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	defer r.s.writeLock(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.users.rows[user.ID]; ok || r.conflict(user) {
		return domain.ErrDuplicate
	}
	r.s.data.users.put(user.ID, cloneUser(user))
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email }), nil
}

func (r *UserRepo) GetByPhone(_ context.Context, phone string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Phone == phone }), nil
}

func (r *UserRepo) GetByName(_ context.Context, name string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Name == name }), nil
}

func (r *UserRepo) List(_ context.Context, active *bool) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.User, 0)
	r.s.data.users.each(func(u *entity.User) {
		if active == nil || u.Active == *active {
			out = append(out, cloneUser(u))
		}
	})
	return out, nil
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	defer r.s.writeLock(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.users.rows[user.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.conflict(user) {
		return domain.ErrDuplicate
	}
	r.s.data.users.put(user.ID, cloneUser(user))
	return nil
}

func (r *UserRepo) find(match func(*entity.User) bool) *entity.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var found *entity.User
	r.s.data.users.each(func(u *entity.User) {
		if found == nil && match(u) {
			found = cloneUser(u)
		}
	})
	return found
}

// conflict indica si otro usuario ya tiene el email, teléfono o nombre. Requiere mu.
func (r *UserRepo) conflict(user *entity.User) bool {
	clash := false
	r.s.data.users.each(func(u *entity.User) {
		if u.ID != user.ID && (u.Email == user.Email || u.Phone == user.Phone || u.Name == user.Name) {
			clash = true
		}
	})
	return clash
}
