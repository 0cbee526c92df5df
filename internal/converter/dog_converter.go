package converter

import (
	"go-doggy-daycare/internal/delivery/dto"
	"go-doggy-daycare/internal/domain/entity"
)

func DogToResponse(dog *entity.Dog) *dto.DogResponse {
	if dog == nil {
		return nil
	}

	return &dto.DogResponse{
		ID:        dog.ID,
		OwnerID:   dog.OwnerID,
		Name:      dog.Name,
		Age:       dog.Age,
		Breed:     dog.Breed,
		DogInfo:   dog.DogInfo,
		CreatedAt: dog.CreatedAt,
		UpdatedAt: dog.UpdatedAt,
	}
}

func DogsToResponses(dogs []entity.Dog) []dto.DogResponse {
	responses := make([]dto.DogResponse, len(dogs))
	for i := range dogs {
		responses[i] = *DogToResponse(&dogs[i])
	}
	return responses
}
