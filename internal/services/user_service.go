package services

import (
	"errors"
	"time"

	"github.com/baharkarakas/storefront/internal/auth"
	"github.com/baharkarakas/storefront/internal/metrics"
	"github.com/baharkarakas/storefront/internal/models"
	"github.com/baharkarakas/storefront/internal/pagination"
	"github.com/baharkarakas/storefront/internal/store"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserFilter struct {
	Role string
}

type UserService struct {
	s *store.Store
}

func NewUserService(s *store.Store) *UserService { return &UserService{s: s} }

func (svc *UserService) List(f UserFilter, page, limit int) pagination.Page[models.User] {
	filtered := []models.User{}
	for _, u := range svc.s.Users() {
		if f.Role != "" && string(u.Role) != f.Role {
			continue
		}
		filtered = append(filtered, u.Sanitized())
	}
	return pagination.Paginate(filtered, page, limit)
}

func (svc *UserService) Get(id string) (models.User, error) {
	u, err := svc.s.FindUser(id)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, ErrUserNotFound
	}
	return u.Sanitized(), err
}

// Profile returns the first user record. Stand-in for "the authenticated
// user" until real session handling exists.
func (svc *UserService) Profile() (models.User, error) {
	users := svc.s.Users()
	if len(users) == 0 {
		return models.User{}, ErrUserNotFound
	}
	return users[0].Sanitized(), nil
}

func (svc *UserService) Create(in models.UserCreate) (models.User, error) {
	now := time.Now().UTC()
	u := models.User{
		Name:      in.Name,
		Email:     in.Email,
		Role:      in.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return models.User{}, err
		}
		u.PasswordHash = hash
	}
	u, err := svc.s.AddUser(u)
	if err == nil {
		metrics.MutationsTotal.WithLabelValues("users", "create").Inc()
	}
	return u.Sanitized(), err
}

func (svc *UserService) Update(id string, patch models.UserPatch) (models.User, error) {
	var hash string
	if patch.Password != nil && *patch.Password != "" {
		h, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return models.User{}, err
		}
		hash = h
	}
	u, err := svc.s.MutateUser(id, func(u *models.User) {
		patch.Apply(u)
		if hash != "" {
			u.PasswordHash = hash
		}
		u.UpdatedAt = time.Now().UTC()
	})
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err == nil {
		metrics.MutationsTotal.WithLabelValues("users", "update").Inc()
	}
	return u.Sanitized(), err
}

func (svc *UserService) Delete(id string) (models.User, error) {
	u, err := svc.s.RemoveUser(id)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err == nil {
		metrics.MutationsTotal.WithLabelValues("users", "delete").Inc()
	}
	return u.Sanitized(), err
}

// Authenticate checks email + password against the stored hash.
func (svc *UserService) Authenticate(email, password string) (models.User, error) {
	u, err := svc.s.FindUserByEmail(email)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}
	if auth.VerifyPassword(password, u.PasswordHash) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return u.Sanitized(), nil
}
