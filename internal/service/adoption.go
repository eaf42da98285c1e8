package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"petcareapi/internal/model"
	"petcareapi/internal/repository"
	"petcareapi/internal/storage"
)

// AdoptionInput is the payload for creating or editing an adoption listing.
// Contact fields are not part of the input; they are denormalized from the
// lister's profile at write time.
type AdoptionInput struct {
	PetName     string `json:"petName"`
	Sex         string `json:"sex"`
	Breed       string `json:"breed"`
	Age         string `json:"age"`
	Species     string `json:"species"`
	Description string `json:"description"`
	CoatColor   string `json:"coatColor"`
	OwnerID     string `json:"ownerId"`
}

// AdoptionDetails is a listing with every image path exchanged for a signed
// URL, plus the lister's signed profile picture.
type AdoptionDetails struct {
	model.Adoption
	ImageURLs    []string `json:"imageUrls"`
	ListerPicURL string   `json:"listerProfilePicUrl"`
}

// AdoptionService defines the adoption listing use cases.
type AdoptionService interface {
	GetAll(ctx context.Context) ([]AdoptionDetails, error)
	GetByLister(ctx context.Context, userID string) ([]AdoptionDetails, error)
	Get(ctx context.Context, id string) (*AdoptionDetails, error)

	// Create uploads every image and persists the listing with contact
	// fields copied from the lister's profile.
	Create(ctx context.Context, in AdoptionInput, images []FileUpload) (*AdoptionDetails, error)

	// Edit rewrites the listing. Re-submitted image filenames are trimmed at
	// the first underscore before the storage key is derived.
	Edit(ctx context.Context, id string, in AdoptionInput, images []FileUpload) (*AdoptionDetails, error)

	Delete(ctx context.Context, id string) error
}

type adoptionService struct {
	adoptions repository.AdoptionRepository
	users     repository.UserRepository
	store     storage.Storage
}

// NewAdoptionService constructs a new AdoptionService.
func NewAdoptionService(adoptions repository.AdoptionRepository, users repository.UserRepository, store storage.Storage) AdoptionService {
	return &adoptionService{adoptions: adoptions, users: users, store: store}
}

func (s *adoptionService) GetAll(ctx context.Context) ([]AdoptionDetails, error) {
	list, err := s.adoptions.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.detailsList(ctx, list)
}

func (s *adoptionService) GetByLister(ctx context.Context, userID string) ([]AdoptionDetails, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	list, err := s.adoptions.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.detailsList(ctx, list)
}

func (s *adoptionService) Get(ctx context.Context, id string) (*AdoptionDetails, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	a, err := s.adoptions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	d, err := s.details(ctx, a)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *adoptionService) Create(ctx context.Context, in AdoptionInput, images []FileUpload) (*AdoptionDetails, error) {
	a, err := s.buildListing(ctx, in, images, false)
	if err != nil {
		return nil, err
	}
	a.ID = uuid.New().String()

	stored, err := s.adoptions.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("save listing: %w", err)
	}
	return s.details(ctx, stored)
}

func (s *adoptionService) Edit(ctx context.Context, id string, in AdoptionInput, images []FileUpload) (*AdoptionDetails, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	a, err := s.buildListing(ctx, in, images, true)
	if err != nil {
		return nil, err
	}
	if err := s.adoptions.Update(ctx, id, a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes every stored image, then the listing itself.
func (s *adoptionService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	a, err := s.adoptions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	for _, key := range a.ImagePaths {
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("%w: delete image: %v", ErrUpstream, err)
		}
	}
	return s.adoptions.Delete(ctx, id)
}

// buildListing validates the input, resolves the lister for the denormalized
// contact fields and uploads the images. On edits, a re-submitted filename of
// the form "<name>_<suffix>" keeps only the part before the first underscore.
func (s *adoptionService) buildListing(ctx context.Context, in AdoptionInput, images []FileUpload, edit bool) (*model.Adoption, error) {
	if strings.TrimSpace(in.PetName) == "" {
		return nil, fmt.Errorf("%w: petName is required", ErrValidation)
	}
	if in.OwnerID == "" {
		return nil, fmt.Errorf("%w: ownerId is required", ErrValidation)
	}
	lister, err := s.users.FindByID(ctx, in.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	keys := make([]string, 0, len(images))
	for i := range images {
		img := &images[i]
		name := img.Filename
		if edit {
			if idx := strings.IndexByte(name, '_'); idx != -1 {
				name = name[:idx]
			}
		}
		key := path.Join("adoption", name)
		if _, err := s.store.Put(ctx, key, img.Reader, storage.PutObjectOptions{
			Size:        img.Size,
			ContentType: img.ContentType,
			Metadata:    map[string]string{"original-filename": img.Filename},
		}); err != nil {
			return nil, fmt.Errorf("%w: upload image: %v", ErrUpstream, err)
		}
		keys = append(keys, key)
	}

	return &model.Adoption{
		PetName:      in.PetName,
		Sex:          in.Sex,
		Breed:        in.Breed,
		Age:          in.Age,
		Species:      in.Species,
		Description:  in.Description,
		CoatColor:    in.CoatColor,
		ImagePaths:   keys,
		OwnerID:      in.OwnerID,
		ContactName:  lister.UserName,
		ContactPhone: lister.PhoneNumber,
		ContactEmail: lister.Email,
	}, nil
}

func (s *adoptionService) details(ctx context.Context, a *model.Adoption) (*AdoptionDetails, error) {
	urls := make([]string, 0, len(a.ImagePaths))
	for _, key := range a.ImagePaths {
		urls = append(urls, signedURL(ctx, s.store, key))
	}

	var listerPic string
	lister, err := s.users.FindByID(ctx, a.OwnerID)
	switch {
	case err == nil:
		listerPic = signedURL(ctx, s.store, lister.ProfilePicPath)
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound
	default:
		return nil, err
	}

	return &AdoptionDetails{Adoption: *a, ImageURLs: urls, ListerPicURL: listerPic}, nil
}

func (s *adoptionService) detailsList(ctx context.Context, list []model.Adoption) ([]AdoptionDetails, error) {
	out := make([]AdoptionDetails, 0, len(list))
	for i := range list {
		d, err := s.details(ctx, &list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}
