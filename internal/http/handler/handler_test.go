package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"petcareapi/internal/model"
	"petcareapi/internal/places"
	"petcareapi/internal/service"
	serviceMocks "petcareapi/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
}

func decodeError(t *testing.T, body io.Reader) errorPayload {
	t.Helper()
	var p errorPayload
	require.NoError(t, json.NewDecoder(body).Decode(&p))
	return p
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := newApp()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp.Body).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := newApp()
	app.Get("/healthz", LivenessProbe())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegister(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserService)
	app := newApp()
	app.Post("/api/auth/register", Register(mockSvc))

	post := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("created", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, service.RegisterInput{
			UserName: "Rex Owner", Email: "rex@example.com", Password: "hunter22",
		}).Return(&service.UserDetails{User: model.User{ID: "uid-1"}}, nil).Once()

		resp := post(`{"userName":"Rex Owner","email":"rex@example.com","password":"hunter22"}`)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, mock.Anything).Return(nil, service.ErrEmailInUse).Once()

		resp := post(`{"userName":"x","email":"taken@example.com","password":"p"}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		payload := decodeError(t, resp.Body)
		assert.Equal(t, "EMAIL_IN_USE", payload.Error.Code)
		assert.Equal(t, "Email already in use", payload.Error.Message)
	})

	t.Run("validation failure", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: email is required", service.ErrValidation)).Once()

		resp := post(`{"userName":"x"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("provider outage is bad gateway", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: lookup email: timeout", service.ErrUpstream)).Once()

		resp := post(`{"userName":"x","email":"a@b.c","password":"p"}`)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}

func TestAddMissing(t *testing.T) {
	mockSvc := new(serviceMocks.MockMissingService)
	app := newApp()
	app.Post("/api/missing/addMissing", AddMissing(mockSvc))

	postForm := func(t *testing.T) *http.Response {
		t.Helper()
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		w.WriteField("petId", "pet-1")
		w.WriteField("ownerId", "uid-1")
		w.WriteField("lastSeenDateTime", "2026-08-30T10:00:00Z")
		w.WriteField("latitude", "1.35")
		w.WriteField("longitude", "103.81")
		fw, err := w.CreateFormFile("lastSeenImage", "seen.png")
		require.NoError(t, err)
		fw.Write([]byte("img"))
		w.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/missing/addMissing", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("created", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.MissingInput) bool {
			return in.PetID == "pet-1" && in.OwnerID == "uid-1" && in.Latitude == 1.35
		}), mock.MatchedBy(func(f *service.FileUpload) bool {
			return f != nil && f.Filename == "seen.png"
		})).Return(&service.MissingDetails{
			MissingReport: model.MissingReport{ID: "rep-1", Active: true},
		}, nil).Once()

		resp := postForm(t)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("second active report is a conflict", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, service.ErrActiveReportExists).Once()

		resp := postForm(t)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "ACTIVE_REPORT_EXISTS", decodeError(t, resp.Body).Error.Code)
	})
}

func TestMarkFound(t *testing.T) {
	mockSvc := new(serviceMocks.MockMissingService)
	app := newApp()
	app.Put("/api/missing/markFound/:missingId", MarkFound(mockSvc))

	t.Run("repeat calls succeed", func(t *testing.T) {
		mockSvc.On("MarkFound", mock.Anything, "rep-1").Return(nil).Times(2)

		for i := 0; i < 2; i++ {
			resp, _ := app.Test(httptest.NewRequest(http.MethodPut, "/api/missing/markFound/rep-1", nil))
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		}
	})

	t.Run("unknown report", func(t *testing.T) {
		mockSvc.On("MarkFound", mock.Anything, "ghost").Return(service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodPut, "/api/missing/markFound/ghost", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAddPet(t *testing.T) {
	mockSvc := new(serviceMocks.MockPetService)
	app := newApp()
	app.Post("/api/pet/addPet", AddPet(mockSvc))

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("petName", "Rex")
	w.WriteField("ownerId", "uid-1")
	w.WriteField("weight", "12.5")
	fw, err := w.CreateFormFile("petImage", "rex.png")
	require.NoError(t, err)
	fw.Write([]byte("img"))
	w.Close()

	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.PetInput) bool {
		return in.PetName == "Rex" && in.OwnerID == "uid-1" && in.Weight == 12.5
	}), mock.MatchedBy(func(f *service.FileUpload) bool {
		return f != nil && f.Filename == "rex.png"
	})).Return(&service.PetDetails{Pet: model.Pet{ID: "pet-1"}}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/pet/addPet", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, _ := app.Test(req)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestGetMissingByID(t *testing.T) {
	mockSvc := new(serviceMocks.MockMissingService)
	app := newApp()
	app.Get("/api/missing/getMissingById/:missingId", GetMissingByID(mockSvc))

	t.Run("resolved report", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "rep-1").Return(&service.MissingDetails{
			MissingReport: model.MissingReport{ID: "rep-1", Active: true},
			Pet:           &model.Pet{ID: "pet-1", PetName: "Rex"},
			Owner:         &model.User{ID: "uid-1", UserName: "Rex Owner"},
		}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/missing/getMissingById/rep-1", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "rep-1", body["id"])
		pet := body["missingPet"].(map[string]any)
		assert.Equal(t, "Rex", pet["petName"])
		owner := body["owner"].(map[string]any)
		assert.Equal(t, "Rex Owner", owner["userName"])
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "ghost").Return(nil, service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/missing/getMissingById/ghost", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestFilterLocations(t *testing.T) {
	mockSvc := new(serviceMocks.MockAmenityService)
	app := newApp()
	app.Get("/api/googlemaps/filterLocations", FilterLocations(mockSvc))

	t.Run("forwards filters", func(t *testing.T) {
		minRating := 4.0
		mockSvc.On("FilterLocations", mock.Anything, []string{"p1", "p2"}, &minRating, "open_now").
			Return([]string{"p1"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet,
			"/api/googlemaps/filterLocations?placeIds=p1,p2&minRating=4&openNow=open_now", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var ids []string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&ids))
		assert.Equal(t, []string{"p1"}, ids)
	})

	t.Run("empty id list", func(t *testing.T) {
		mockSvc.On("FilterLocations", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: placeIds list cannot be empty", service.ErrValidation)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/googlemaps/filterLocations", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetNearbyByTypes(t *testing.T) {
	mockSvc := new(serviceMocks.MockAmenityService)
	app := newApp()
	app.Get("/api/googlemaps/getNearbyByTypes", GetNearbyByTypes(mockSvc))

	t.Run("defaults", func(t *testing.T) {
		mockSvc.On("SearchNearby", mock.Anything, 1.35, 103.81, 1000, []string{"veterinary_care"}).
			Return(nil, service.ErrUpstream).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet,
			"/api/googlemaps/getNearbyByTypes?latitude=1.35&longitude=103.81", nil))
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet,
			"/api/googlemaps/getNearbyByTypes?latitude=abc&longitude=103.81", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSearchLocationByKeyword(t *testing.T) {
	mockSvc := new(serviceMocks.MockAmenityService)
	app := newApp()
	app.Get("/api/googlemaps/searchLocationByKeyword", SearchLocationByKeyword(mockSvc))

	t.Run("forwards keyword with the wide default radius", func(t *testing.T) {
		mockSvc.On("SearchByKeyword", mock.Anything, "dog groomer", 1.35, 103.81, 50000, []string{"pet_store"}).
			Return([]places.Place{{ID: "p1", Name: "Happy Paws"}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet,
			"/api/googlemaps/searchLocationByKeyword?keyword=dog+groomer&latitude=1.35&longitude=103.81&types=pet_store", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got []places.Place
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.Len(t, got, 1)
		assert.Equal(t, "Happy Paws", got[0].Name)
	})

	t.Run("explicit radius wins over the default", func(t *testing.T) {
		mockSvc.On("SearchByKeyword", mock.Anything, "vet", 1.35, 103.81, 2500, []string(nil)).
			Return([]places.Place{}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet,
			"/api/googlemaps/searchLocationByKeyword?keyword=vet&latitude=1.35&longitude=103.81&radius=2500", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing keyword", func(t *testing.T) {
		mockSvc.On("SearchByKeyword", mock.Anything, "", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: keyword is required", service.ErrValidation)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet,
			"/api/googlemaps/searchLocationByKeyword?latitude=1.35&longitude=103.81", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestBodyLimit(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
		BodyLimit:    64,
	})
	mockSvc := new(serviceMocks.MockUserService)
	app.Post("/api/auth/register", Register(mockSvc))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"userName":"`+strings.Repeat("x", 256)+`"}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", decodeError(t, resp.Body).Error.Code)
}
