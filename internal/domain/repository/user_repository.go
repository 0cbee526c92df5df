package repository

import (
	"context"

	"go-doggy-daycare/internal/domain/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByRole(ctx context.Context, role entity.Role) ([]entity.User, error)
	Save(ctx context.Context, user *entity.User) error
}
