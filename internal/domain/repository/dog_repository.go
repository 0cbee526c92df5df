package repository

import (
	"context"

	"go-doggy-daycare/internal/domain/entity"

	"github.com/google/uuid"
)

type DogRepository interface {
	Create(ctx context.Context, dog *entity.Dog) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Dog, error)
	FindAll(ctx context.Context) ([]entity.Dog, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]entity.Dog, error)
	Save(ctx context.Context, dog *entity.Dog) error
	SoftDelete(ctx context.Context, id uuid.UUID) (int64, error)
}
