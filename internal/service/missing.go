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

// MissingInput is the payload for filing a missing-pet report.
type MissingInput struct {
	PetID               string    `json:"petId"`
	OwnerID             string    `json:"ownerId"`
	LastSeenAt          time.Time `json:"lastSeenDateTime"`
	LastSeenDescription string    `json:"lastSeenDescription"`
	Latitude            float64   `json:"latitude"`
	Longitude           float64   `json:"longitude"`
}

// MissingDetails is a report with the pet, owner and sighting documents
// resolved inline and every image path signed.
type MissingDetails struct {
	model.MissingReport
	ImageURL  string            `json:"lastSeenImage"`
	Pet       *model.Pet        `json:"missingPet,omitempty"`
	Owner     *model.User       `json:"owner,omitempty"`
	Sightings []SightingDetails `json:"sightingList"`
}

// MissingService defines the missing-pet report use cases. A pet has at most
// one active report; a found report stays inactive forever.
type MissingService interface {
	// Create files a new report in the Active state. A pet that already has
	// an active report gets ErrActiveReportExists and nothing is written.
	Create(ctx context.Context, in MissingInput, image *FileUpload) (*MissingDetails, error)

	// ListActive returns all currently active reports, fully resolved.
	ListActive(ctx context.Context) ([]MissingDetails, error)

	Get(ctx context.Context, id string) (*MissingDetails, error)

	// MarkFound closes a report. Idempotent.
	MarkFound(ctx context.Context, id string) error
}

type missingService struct {
	reports   repository.MissingReportRepository
	sightings repository.SightingRepository
	pets      repository.PetRepository
	users     repository.UserRepository
	store     storage.Storage
}

// NewMissingService constructs a new MissingService.
func NewMissingService(
	reports repository.MissingReportRepository,
	sightings repository.SightingRepository,
	pets repository.PetRepository,
	users repository.UserRepository,
	store storage.Storage,
) MissingService {
	return &missingService{reports: reports, sightings: sightings, pets: pets, users: users, store: store}
}

func (s *missingService) Create(ctx context.Context, in MissingInput, image *FileUpload) (*MissingDetails, error) {
	if in.PetID == "" {
		return nil, fmt.Errorf("%w: petId is required", ErrValidation)
	}
	if in.OwnerID == "" {
		return nil, fmt.Errorf("%w: ownerId is required", ErrValidation)
	}
	if _, err := s.pets.FindByID(ctx, in.PetID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, in.OwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	key, err := uploadImage(ctx, s.store, "missing_pet_first_sighting", image)
	if err != nil {
		return nil, err
	}

	r := &model.MissingReport{
		ID:                  uuid.New().String(),
		PetID:               in.PetID,
		OwnerID:             in.OwnerID,
		Active:              true,
		LastSeenAt:          in.LastSeenAt,
		LastSeenDescription: in.LastSeenDescription,
		LastSeenImagePath:   key,
		LastSeenLocation:    model.GeoPoint{Latitude: in.Latitude, Longitude: in.Longitude},
		PublishedAt:         time.Now().UTC(),
		SightingIDs:         []string{},
	}
	stored, err := s.reports.CreateActive(ctx, r)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateActiveReport) {
			return nil, ErrActiveReportExists
		}
		return nil, fmt.Errorf("save report: %w", err)
	}
	return s.details(ctx, stored)
}

// ListActive resolves each active report fully; inactive reports are omitted.
func (s *missingService) ListActive(ctx context.Context) ([]MissingDetails, error) {
	list, err := s.reports.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MissingDetails, 0, len(list))
	for i := range list {
		if !list[i].Active {
			continue
		}
		d, err := s.details(ctx, &list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

func (s *missingService) Get(ctx context.Context, id string) (*MissingDetails, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	r, err := s.reports.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.details(ctx, r)
}

func (s *missingService) MarkFound(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.reports.MarkFound(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// details resolves the pet, owner and every referenced sighting. A dangling
// reference is reported as not found instead of a partially filled result.
func (s *missingService) details(ctx context.Context, r *model.MissingReport) (*MissingDetails, error) {
	pet, err := s.pets.FindByID(ctx, r.PetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	owner, err := s.users.FindByID(ctx, r.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	sightings := make([]SightingDetails, 0, len(r.SightingIDs))
	for _, sid := range r.SightingIDs {
		sg, err := s.sightings.FindByID(ctx, sid)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		reporter, err := s.users.FindByID(ctx, sg.ReporterID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		sightings = append(sightings, SightingDetails{
			Sighting: *sg,
			ImageURL: signedURL(ctx, s.store, sg.ImagePath),
			Reporter: reporter,
		})
	}

	return &MissingDetails{
		MissingReport: *r,
		ImageURL:      signedURL(ctx, s.store, r.LastSeenImagePath),
		Pet:           pet,
		Owner:         owner,
		Sightings:     sightings,
	}, nil
}
