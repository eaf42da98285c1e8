package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"petcareapi/internal/model"
	"petcareapi/internal/repository"
	"petcareapi/internal/storage"
)

// PetInput is the payload for creating a pet profile.
type PetInput struct {
	PetName        string    `json:"petName"`
	Sex            string    `json:"sex"`
	Breed          string    `json:"breed"`
	Weight         float64   `json:"weight"`
	DateOfBirth    time.Time `json:"dateOfBirth"`
	MedicCondition string    `json:"medicCondition"`
	Markings       string    `json:"markings"`
	CoatColor      string    `json:"coatColor"`
	OwnerID        string    `json:"ownerId"`
}

// PetDetails is a pet with its image resolved to a signed URL and, on list
// reads, the owner profile attached.
type PetDetails struct {
	model.Pet
	ImageURL string      `json:"petImageUrl"`
	Owner    *model.User `json:"owner,omitempty"`
}

// PetService defines the pet profile use cases.
type PetService interface {
	// ListByOwner returns the owner's pets with the owner profile resolved.
	ListByOwner(ctx context.Context, ownerID string) ([]PetDetails, error)

	// Create uploads the pet photo and persists the profile.
	Create(ctx context.Context, in PetInput, image *FileUpload) (*PetDetails, error)

	// Update applies a partial update; nil fields are left unchanged.
	Update(ctx context.Context, id string, upd model.PetUpdate) error

	Delete(ctx context.Context, id string) error
}

type petService struct {
	pets  repository.PetRepository
	users repository.UserRepository
	store storage.Storage
}

// NewPetService constructs a new PetService.
func NewPetService(pets repository.PetRepository, users repository.UserRepository, store storage.Storage) PetService {
	return &petService{pets: pets, users: users, store: store}
}

func (s *petService) ListByOwner(ctx context.Context, ownerID string) ([]PetDetails, error) {
	if ownerID == "" {
		return nil, ErrIDRequired
	}
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	pets, err := s.pets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]PetDetails, 0, len(pets))
	for _, p := range pets {
		out = append(out, PetDetails{
			Pet:      p,
			ImageURL: signedURL(ctx, s.store, p.ImagePath),
			Owner:    owner,
		})
	}
	return out, nil
}

func (s *petService) Create(ctx context.Context, in PetInput, image *FileUpload) (*PetDetails, error) {
	if strings.TrimSpace(in.PetName) == "" {
		return nil, fmt.Errorf("%w: petName is required", ErrValidation)
	}
	if in.OwnerID == "" {
		return nil, fmt.Errorf("%w: ownerId is required", ErrValidation)
	}
	// The owner reference must resolve before anything is written.
	if _, err := s.users.FindByID(ctx, in.OwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	key, err := uploadImage(ctx, s.store, "pets", image)
	if err != nil {
		return nil, err
	}

	p := &model.Pet{
		ID:             uuid.New().String(),
		PetName:        in.PetName,
		Sex:            in.Sex,
		Breed:          in.Breed,
		Weight:         in.Weight,
		DateOfBirth:    in.DateOfBirth,
		MedicCondition: in.MedicCondition,
		Markings:       in.Markings,
		CoatColor:      in.CoatColor,
		OwnerID:        in.OwnerID,
		ImagePath:      key,
	}
	stored, err := s.pets.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("save pet: %w", err)
	}
	return &PetDetails{Pet: *stored, ImageURL: signedURL(ctx, s.store, stored.ImagePath)}, nil
}

func (s *petService) Update(ctx context.Context, id string, upd model.PetUpdate) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.pets.Update(ctx, id, upd); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Delete removes the stored photo first, then the profile row.
func (s *petService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	p, err := s.pets.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if p.ImagePath != "" {
		if err := s.store.Delete(ctx, p.ImagePath); err != nil {
			return fmt.Errorf("%w: delete image: %v", ErrUpstream, err)
		}
	}
	return s.pets.Delete(ctx, id)
}
