package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-doggy-daycare/internal/delivery/dto"
	"go-doggy-daycare/internal/usecase"
	"go-doggy-daycare/pkg/response"
	"go-doggy-daycare/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DogHandler struct {
	dogUsecase usecase.DogUsecase
	validator  *validator.CustomValidator
}

func NewDogHandler(dogUsecase usecase.DogUsecase, validator *validator.CustomValidator) *DogHandler {
	return &DogHandler{
		dogUsecase: dogUsecase,
		validator:  validator,
	}
}

func (h *DogHandler) CreateDog(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	dog, err := h.dogUsecase.CreateDog(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			response.NotFound(w, "Owner not found")
			return
		}
		response.InternalServerError(w, "Failed to create dog")
		return
	}

	response.Success(w, http.StatusCreated, "Dog created successfully", dog)
}

func (h *DogHandler) GetDog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid dog ID", nil)
		return
	}

	dog, err := h.dogUsecase.GetDog(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrDogNotFound) {
			response.NotFound(w, "Dog not found")
			return
		}
		response.InternalServerError(w, "Failed to get dog")
		return
	}

	response.Success(w, http.StatusOK, "Dog retrieved successfully", dog)
}

func (h *DogHandler) GetAllDogs(w http.ResponseWriter, r *http.Request) {
	dogs, err := h.dogUsecase.GetAllDogs(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get dogs")
		return
	}

	response.Success(w, http.StatusOK, "Dogs retrieved successfully", dogs)
}

func (h *DogHandler) GetDogsByOwner(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ownerID, err := uuid.Parse(vars["userId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	dogs, err := h.dogUsecase.GetDogsByOwner(r.Context(), ownerID)
	if err != nil {
		response.InternalServerError(w, "Failed to get dogs")
		return
	}

	response.Success(w, http.StatusOK, "Dogs retrieved successfully", dogs)
}

func (h *DogHandler) UpdateDog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid dog ID", nil)
		return
	}

	var req dto.UpdateDogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	dog, err := h.dogUsecase.UpdateDog(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrDogNotFound) {
			response.NotFound(w, "Dog not found")
			return
		}
		response.InternalServerError(w, "Failed to update dog")
		return
	}

	response.Success(w, http.StatusOK, "Dog updated successfully", dog)
}

func (h *DogHandler) DeleteDog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid dog ID", nil)
		return
	}

	if err := h.dogUsecase.DeleteDog(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrDogNotFound) {
			response.NotFound(w, "Dog not found")
			return
		}
		response.InternalServerError(w, "Failed to delete dog")
		return
	}

	response.NoContent(w)
}
