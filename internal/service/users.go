package service

import (
	"context"

	"github.com/projecthelena/roster/internal/db"
)

// UserService is what the HTTP layer needs from the retrieval service.
type UserService interface {
	GetUsers(ctx context.Context) ([]db.User, error)
}

// Users hands the storage result back unchanged. Errors are propagated
// as-is so callers can still match them with errors.Is.
type Users struct {
	loader db.UserLoader
}

func NewUserService(loader db.UserLoader) *Users {
	return &Users{loader: loader}
}

func (s *Users) GetUsers(ctx context.Context) ([]db.User, error) {
	return s.loader.LoadUsers(ctx)
}
