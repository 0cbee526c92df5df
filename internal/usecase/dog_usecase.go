package usecase

import (
	"context"

	"go-doggy-daycare/internal/converter"
	"go-doggy-daycare/internal/delivery/dto"
	"go-doggy-daycare/internal/domain/entity"
	"go-doggy-daycare/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type DogUsecase interface {
	CreateDog(ctx context.Context, req *dto.CreateDogRequest) (*dto.DogResponse, error)
	GetDog(ctx context.Context, id uuid.UUID) (*dto.DogResponse, error)
	GetAllDogs(ctx context.Context) (*dto.DogListResponse, error)
	GetDogsByOwner(ctx context.Context, ownerID uuid.UUID) (*dto.DogListResponse, error)
	UpdateDog(ctx context.Context, id uuid.UUID, req *dto.UpdateDogRequest) (*dto.DogResponse, error)
	DeleteDog(ctx context.Context, id uuid.UUID) error
}

type dogUsecase struct {
	log      *logrus.Logger
	dogRepo  repository.DogRepository
	userRepo repository.UserRepository
}

func NewDogUsecase(log *logrus.Logger, dogRepo repository.DogRepository, userRepo repository.UserRepository) DogUsecase {
	return &dogUsecase{
		log:      log,
		dogRepo:  dogRepo,
		userRepo: userRepo,
	}
}

func (u *dogUsecase) CreateDog(ctx context.Context, req *dto.CreateDogRequest) (*dto.DogResponse, error) {
	owner, err := u.userRepo.FindByID(ctx, req.OwnerID)
	if err != nil {
		u.log.Warnf("Failed to find owner %s: %+v", req.OwnerID, err)
		return nil, err
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}

	dog := &entity.Dog{
		OwnerID: req.OwnerID,
		Name:    req.Name,
		Age:     req.Age,
		Breed:   req.Breed,
		DogInfo: req.DogInfo,
	}

	if err := u.dogRepo.Create(ctx, dog); err != nil {
		u.log.Warnf("Failed to create dog: %+v", err)
		return nil, err
	}

	u.log.Infof("Dog created: id=%s, name=%s", dog.ID, dog.Name)
	return converter.DogToResponse(dog), nil
}

func (u *dogUsecase) GetDog(ctx context.Context, id uuid.UUID) (*dto.DogResponse, error) {
	dog, err := u.dogRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find dog %s: %+v", id, err)
		return nil, err
	}
	if dog == nil {
		return nil, ErrDogNotFound
	}
	return converter.DogToResponse(dog), nil
}

func (u *dogUsecase) GetAllDogs(ctx context.Context) (*dto.DogListResponse, error) {
	dogs, err := u.dogRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find dogs: %+v", err)
		return nil, err
	}
	return &dto.DogListResponse{
		Dogs:  converter.DogsToResponses(dogs),
		Total: len(dogs),
	}, nil
}

func (u *dogUsecase) GetDogsByOwner(ctx context.Context, ownerID uuid.UUID) (*dto.DogListResponse, error) {
	dogs, err := u.dogRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		u.log.Warnf("Failed to find dogs for owner %s: %+v", ownerID, err)
		return nil, err
	}
	return &dto.DogListResponse{
		Dogs:  converter.DogsToResponses(dogs),
		Total: len(dogs),
	}, nil
}

func (u *dogUsecase) UpdateDog(ctx context.Context, id uuid.UUID, req *dto.UpdateDogRequest) (*dto.DogResponse, error) {
	dog, err := u.dogRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find dog %s: %+v", id, err)
		return nil, err
	}
	if dog == nil {
		return nil, ErrDogNotFound
	}

	if req.Name != nil {
		dog.Name = *req.Name
	}
	if req.Age != nil {
		dog.Age = *req.Age
	}
	if req.Breed != nil {
		dog.Breed = *req.Breed
	}
	if req.DogInfo != nil {
		dog.DogInfo = *req.DogInfo
	}

	if err := u.dogRepo.Save(ctx, dog); err != nil {
		u.log.Warnf("Failed to update dog %s: %+v", id, err)
		return nil, err
	}

	return converter.DogToResponse(dog), nil
}

func (u *dogUsecase) DeleteDog(ctx context.Context, id uuid.UUID) error {
	rows, err := u.dogRepo.SoftDelete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete dog %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrDogNotFound
	}

	u.log.Infof("Dog deleted: id=%s", id)
	return nil
}
