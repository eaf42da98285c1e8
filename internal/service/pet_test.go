package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"petcareapi/internal/model"
	repoMocks "petcareapi/internal/repository/mocks"
	"petcareapi/internal/storage"
	storeMocks "petcareapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPetService() (*repoMocks.MockPetRepository, *repoMocks.MockUserRepository, *storeMocks.MockStorage, PetService) {
	pets := new(repoMocks.MockPetRepository)
	users := new(repoMocks.MockUserRepository)
	store := new(storeMocks.MockStorage)
	return pets, users, store, NewPetService(pets, users, store)
}

func TestPetService_ListByOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("signs image paths and resolves owner", func(t *testing.T) {
		pets, users, store, svc := newPetService()

		owner := &model.User{ID: "uid-1", UserName: "Rex Owner"}
		users.On("FindByID", ctx, "uid-1").Return(owner, nil)
		pets.On("ListByOwner", ctx, "uid-1").Return([]model.Pet{
			{ID: "pet-1", PetName: "Rex", ImagePath: "pets/rex.png"},
			{ID: "pet-2", PetName: "Pip", ImagePath: ""},
		}, nil)
		store.On("PresignGet", ctx, "pets/rex.png", mock.Anything).Return("https://signed/rex.png", nil)

		got, err := svc.ListByOwner(ctx, "uid-1")
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "https://signed/rex.png", got[0].ImageURL)
		assert.Same(t, owner, got[0].Owner)
		// Empty storage key yields an empty URL, no presign call.
		assert.Equal(t, "", got[1].ImageURL)
		store.AssertNumberOfCalls(t, "PresignGet", 1)
	})

	t.Run("presign failure degrades to empty URL", func(t *testing.T) {
		pets, users, store, svc := newPetService()

		users.On("FindByID", ctx, "uid-1").Return(&model.User{ID: "uid-1"}, nil)
		pets.On("ListByOwner", ctx, "uid-1").Return([]model.Pet{{ID: "pet-1", ImagePath: "pets/x.png"}}, nil)
		store.On("PresignGet", ctx, "pets/x.png", mock.Anything).Return("", errors.New("minio down"))

		got, err := svc.ListByOwner(ctx, "uid-1")
		require.NoError(t, err)
		assert.Equal(t, "", got[0].ImageURL)
	})

	t.Run("unknown owner", func(t *testing.T) {
		_, users, _, svc := newPetService()
		users.On("FindByID", ctx, "ghost").Return(nil, sql.ErrNoRows)

		_, err := svc.ListByOwner(ctx, "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPetService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		pets, users, store, svc := newPetService()

		users.On("FindByID", ctx, "uid-1").Return(&model.User{ID: "uid-1"}, nil)
		store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "pets/") && strings.HasSuffix(key, ".png")
		}), mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
		pets.On("Create", ctx, mock.MatchedBy(func(p *model.Pet) bool {
			return p.ID != "" && p.PetName == "Rex" && p.OwnerID == "uid-1" && p.ImagePath != ""
		})).Return(&model.Pet{ID: "pet-1", PetName: "Rex", ImagePath: "pets/gen.png"}, nil)
		store.On("PresignGet", ctx, "pets/gen.png", mock.Anything).Return("https://signed/gen.png", nil)

		got, err := svc.Create(ctx, PetInput{PetName: "Rex", OwnerID: "uid-1"}, &FileUpload{
			Reader:      strings.NewReader("img"),
			Filename:    "rex.png",
			ContentType: "image/png",
			Size:        3,
		})
		require.NoError(t, err)
		assert.Equal(t, "https://signed/gen.png", got.ImageURL)
		pets.AssertExpectations(t)
	})

	t.Run("unknown owner writes nothing", func(t *testing.T) {
		pets, users, store, svc := newPetService()
		users.On("FindByID", ctx, "ghost").Return(nil, sql.ErrNoRows)

		_, err := svc.Create(ctx, PetInput{PetName: "Rex", OwnerID: "ghost"}, &FileUpload{Reader: strings.NewReader("x"), Filename: "a.png"})
		assert.ErrorIs(t, err, ErrNotFound)
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		pets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing name", func(t *testing.T) {
		_, _, _, svc := newPetService()
		_, err := svc.Create(ctx, PetInput{OwnerID: "uid-1"}, nil)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestPetService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes image then row", func(t *testing.T) {
		pets, _, store, svc := newPetService()

		pets.On("FindByID", ctx, "pet-1").Return(&model.Pet{ID: "pet-1", ImagePath: "pets/x.png"}, nil)
		store.On("Delete", ctx, "pets/x.png").Return(nil)
		pets.On("Delete", ctx, "pet-1").Return(nil)

		require.NoError(t, svc.Delete(ctx, "pet-1"))
		store.AssertExpectations(t)
		pets.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		pets, _, _, svc := newPetService()
		pets.On("FindByID", ctx, "ghost").Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(ctx, "ghost"), ErrNotFound)
	})
}
