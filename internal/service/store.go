package service

import (
	"context"

	"github.com/authstack/backend/internal/db"
	"github.com/authstack/backend/internal/model"
)

// UserStore is the persistence surface the auth flows need. *db.Postgres is
// the production implementation; tests use an in-memory fake. Not-found and
// unique-violation conditions are recognized through db.IsNoRows and
// db.IsUniqueViolation on the returned error.
type UserStore interface {
	CreateUser(ctx context.Context, email, name, passwordHash string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

var _ UserStore = (*db.Postgres)(nil)
