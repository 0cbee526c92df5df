package repository

import (
	"context"
	"errors"

	"go-doggy-daycare/internal/domain/entity"
	domainRepo "go-doggy-daycare/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type dogRepository struct {
	db *gorm.DB
}

func NewDogRepository(db *gorm.DB) domainRepo.DogRepository {
	return &dogRepository{db: db}
}

func (r *dogRepository) Create(ctx context.Context, dog *entity.Dog) error {
	return r.db.WithContext(ctx).Create(dog).Error
}

func (r *dogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Dog, error) {
	var dog entity.Dog
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted = ?", id, false).
		First(&dog).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dog, nil
}

func (r *dogRepository) FindAll(ctx context.Context) ([]entity.Dog, error) {
	var dogs []entity.Dog
	err := r.db.WithContext(ctx).
		Where("deleted = ?", false).
		Order("name ASC").
		Find(&dogs).Error
	if err != nil {
		return nil, err
	}
	return dogs, nil
}

func (r *dogRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]entity.Dog, error) {
	var dogs []entity.Dog
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND deleted = ?", ownerID, false).
		Order("name ASC").
		Find(&dogs).Error
	if err != nil {
		return nil, err
	}
	return dogs, nil
}

func (r *dogRepository) Save(ctx context.Context, dog *entity.Dog) error {
	return r.db.WithContext(ctx).Save(dog).Error
}

func (r *dogRepository) SoftDelete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Dog{}).
		Where("id = ? AND deleted = ?", id, false).
		Update("deleted", true)
	return result.RowsAffected, result.Error
}
