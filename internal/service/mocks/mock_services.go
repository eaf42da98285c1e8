package mocks

import (
	"context"

	"petcareapi/internal/model"
	"petcareapi/internal/places"
	"petcareapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, in service.RegisterInput) (*service.UserDetails, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UserDetails), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, idToken string) (*service.UserDetails, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UserDetails), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id string) (*service.UserDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UserDetails), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id string, upd model.UserUpdate, picture *service.FileUpload) (*service.UserDetails, error) {
	args := m.Called(ctx, id, upd, picture)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UserDetails), args.Error(1)
}

func (m *MockUserService) SendPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type MockPetService struct {
	mock.Mock
}

func (m *MockPetService) ListByOwner(ctx context.Context, ownerID string) ([]service.PetDetails, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.PetDetails), args.Error(1)
}

func (m *MockPetService) Create(ctx context.Context, in service.PetInput, image *service.FileUpload) (*service.PetDetails, error) {
	args := m.Called(ctx, in, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PetDetails), args.Error(1)
}

func (m *MockPetService) Update(ctx context.Context, id string, upd model.PetUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

func (m *MockPetService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAdoptionService struct {
	mock.Mock
}

func (m *MockAdoptionService) GetAll(ctx context.Context) ([]service.AdoptionDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.AdoptionDetails), args.Error(1)
}

func (m *MockAdoptionService) GetByLister(ctx context.Context, userID string) ([]service.AdoptionDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.AdoptionDetails), args.Error(1)
}

func (m *MockAdoptionService) Get(ctx context.Context, id string) (*service.AdoptionDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AdoptionDetails), args.Error(1)
}

func (m *MockAdoptionService) Create(ctx context.Context, in service.AdoptionInput, images []service.FileUpload) (*service.AdoptionDetails, error) {
	args := m.Called(ctx, in, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AdoptionDetails), args.Error(1)
}

func (m *MockAdoptionService) Edit(ctx context.Context, id string, in service.AdoptionInput, images []service.FileUpload) (*service.AdoptionDetails, error) {
	args := m.Called(ctx, id, in, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AdoptionDetails), args.Error(1)
}

func (m *MockAdoptionService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockArticleService struct {
	mock.Mock
}

func (m *MockArticleService) GetAll(ctx context.Context) ([]service.ArticleDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ArticleDetails), args.Error(1)
}

func (m *MockArticleService) Get(ctx context.Context, id string) (*service.ArticleDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArticleDetails), args.Error(1)
}

func (m *MockArticleService) GetByPoster(ctx context.Context, posterID string) ([]service.ArticleDetails, error) {
	args := m.Called(ctx, posterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ArticleDetails), args.Error(1)
}

func (m *MockArticleService) Create(ctx context.Context, in service.ArticleInput, thumbnail *service.FileUpload) (*service.ArticleDetails, error) {
	args := m.Called(ctx, in, thumbnail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArticleDetails), args.Error(1)
}

func (m *MockArticleService) Edit(ctx context.Context, id string, upd model.ArticleUpdate, thumbnail *service.FileUpload) (*service.ArticleDetails, error) {
	args := m.Called(ctx, id, upd, thumbnail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArticleDetails), args.Error(1)
}

func (m *MockArticleService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMissingService struct {
	mock.Mock
}

func (m *MockMissingService) Create(ctx context.Context, in service.MissingInput, image *service.FileUpload) (*service.MissingDetails, error) {
	args := m.Called(ctx, in, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MissingDetails), args.Error(1)
}

func (m *MockMissingService) ListActive(ctx context.Context) ([]service.MissingDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.MissingDetails), args.Error(1)
}

func (m *MockMissingService) Get(ctx context.Context, id string) (*service.MissingDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MissingDetails), args.Error(1)
}

func (m *MockMissingService) MarkFound(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSightingService struct {
	mock.Mock
}

func (m *MockSightingService) Add(ctx context.Context, in service.SightingInput, image *service.FileUpload) (*service.SightingDetails, error) {
	args := m.Called(ctx, in, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SightingDetails), args.Error(1)
}

func (m *MockSightingService) GetAll(ctx context.Context) ([]service.SightingDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.SightingDetails), args.Error(1)
}

type MockAmenityService struct {
	mock.Mock
}

func (m *MockAmenityService) SearchNearby(ctx context.Context, lat, lng float64, radius int, keywords []string) ([]places.Place, error) {
	args := m.Called(ctx, lat, lng, radius, keywords)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]places.Place), args.Error(1)
}

func (m *MockAmenityService) SearchByKeyword(ctx context.Context, keyword string, lat, lng float64, radius int, types []string) ([]places.Place, error) {
	args := m.Called(ctx, keyword, lat, lng, radius, types)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]places.Place), args.Error(1)
}

func (m *MockAmenityService) FilterLocations(ctx context.Context, placeIDs []string, minRating *float64, openNowMode string) ([]string, error) {
	args := m.Called(ctx, placeIDs, minRating, openNowMode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
