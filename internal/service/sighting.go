package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"petcareapi/internal/model"
	"petcareapi/internal/repository"
	"petcareapi/internal/storage"
)

// SightingInput is the payload for reporting a sighting of a missing pet.
type SightingInput struct {
	MissingID   string    `json:"missingId"`
	ReporterID  string    `json:"reporterId"`
	OccurredAt  time.Time `json:"sightingDateTime"`
	Description string    `json:"sightingDescription"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
}

// SightingDetails is a sighting with the image signed and the reporter
// profile resolved.
type SightingDetails struct {
	model.Sighting
	ImageURL string      `json:"sightingImage"`
	Reporter *model.User `json:"reporterContact,omitempty"`
}

// SightingService defines the sighting use cases. Sightings are immutable.
type SightingService interface {
	// Add uploads the sighting image, inserts the document, and appends its
	// id to the parent report's sighting list.
	Add(ctx context.Context, in SightingInput, image *FileUpload) (*SightingDetails, error)

	GetAll(ctx context.Context) ([]SightingDetails, error)
}

type sightingService struct {
	sightings repository.SightingRepository
	reports   repository.MissingReportRepository
	users     repository.UserRepository
	store     storage.Storage
}

// NewSightingService constructs a new SightingService.
func NewSightingService(
	sightings repository.SightingRepository,
	reports repository.MissingReportRepository,
	users repository.UserRepository,
	store storage.Storage,
) SightingService {
	return &sightingService{sightings: sightings, reports: reports, users: users, store: store}
}

func (s *sightingService) Add(ctx context.Context, in SightingInput, image *FileUpload) (*SightingDetails, error) {
	if in.MissingID == "" {
		return nil, fmt.Errorf("%w: missingId is required", ErrValidation)
	}
	if in.ReporterID == "" {
		return nil, fmt.Errorf("%w: reporterId is required", ErrValidation)
	}
	if _, err := s.reports.FindByID(ctx, in.MissingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	reporter, err := s.users.FindByID(ctx, in.ReporterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	key, err := uploadImage(ctx, s.store, "missing_pet_sighting", image)
	if err != nil {
		return nil, err
	}

	sg := &model.Sighting{
		ID:          uuid.New().String(),
		MissingID:   in.MissingID,
		ReporterID:  in.ReporterID,
		OccurredAt:  in.OccurredAt,
		Description: in.Description,
		ImagePath:   key,
		Location:    model.GeoPoint{Latitude: in.Latitude, Longitude: in.Longitude},
	}
	stored, err := s.sightings.Create(ctx, sg)
	if err != nil {
		return nil, fmt.Errorf("save sighting: %w", err)
	}

	// The append is atomic in the store, so concurrent sightings on the same
	// report never lose entries.
	if err := s.reports.AppendSighting(ctx, in.MissingID, stored.ID); err != nil {
		return nil, fmt.Errorf("link sighting: %w", err)
	}

	return &SightingDetails{
		Sighting: *stored,
		ImageURL: signedURL(ctx, s.store, stored.ImagePath),
		Reporter: reporter,
	}, nil
}

func (s *sightingService) GetAll(ctx context.Context) ([]SightingDetails, error) {
	list, err := s.sightings.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SightingDetails, 0, len(list))
	for i := range list {
		sg := &list[i]
		reporter, err := s.users.FindByID(ctx, sg.ReporterID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		out = append(out, SightingDetails{
			Sighting: *sg,
			ImageURL: signedURL(ctx, s.store, sg.ImagePath),
			Reporter: reporter,
		})
	}
	return out, nil
}
