package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/projecta-dev/projecta-api/internal/dto"
	"github.com/projecta-dev/projecta-api/internal/handler"
	"github.com/projecta-dev/projecta-api/internal/service"
)

type fakeSubmissionService struct {
	response   dto.SubmissionResponse
	err        error
	lastUpdate dto.SubmissionUpdateRequest
	lastID     uint
}

func (s *fakeSubmissionService) List(ctx context.Context, filter dto.SubmissionFilter) ([]dto.SubmissionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []dto.SubmissionResponse{s.response}, nil
}

func (s *fakeSubmissionService) Get(ctx context.Context, id uint) (dto.SubmissionResponse, error) {
	s.lastID = id
	return s.response, s.err
}

func (s *fakeSubmissionService) Create(ctx context.Context, payload dto.SubmissionCreateRequest, file *multipart.FileHeader) (dto.SubmissionResponse, error) {
	return s.response, s.err
}

func (s *fakeSubmissionService) Update(ctx context.Context, id uint, payload dto.SubmissionUpdateRequest) (dto.SubmissionResponse, error) {
	s.lastID = id
	s.lastUpdate = payload
	return s.response, s.err
}

func newSubmissionApp(svc service.SubmissionService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/submissions")
	handler.NewSubmissionHandler(svc, zerolog.New(io.Discard)).Register(group)
	return app
}

func putJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestUpdateSubmissionReturnsEnvelope(t *testing.T) {
	nilai := 88.0
	svc := &fakeSubmissionService{response: dto.SubmissionResponse{
		ID:     1,
		Score:  &nilai,
		Status: "VALIDATED",
	}}
	app := newSubmissionApp(svc)

	resp := putJSON(t, app, "/api/v1/submissions/1", fiber.Map{
		"nilai":       88,
		"feedback":    "Kerja bagus",
		"status":      "VALIDATED",
		"validatedBy": 2,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(1), svc.lastID)
	require.NotNil(t, svc.lastUpdate.Nilai)
	require.Equal(t, 88.0, *svc.lastUpdate.Nilai)

	var payload struct {
		Pengumpulan struct {
			ID     uint     `json:"id"`
			Nilai  *float64 `json:"nilai"`
			Status string   `json:"status"`
		} `json:"pengumpulan"`
	}
	decodeBody(t, resp, &payload)

	require.Equal(t, uint(1), payload.Pengumpulan.ID)
	require.NotNil(t, payload.Pengumpulan.Nilai)
	require.Equal(t, 88.0, *payload.Pengumpulan.Nilai)
	require.Equal(t, "VALIDATED", payload.Pengumpulan.Status)
}

func TestUpdateSubmissionNilaiOutOfRange(t *testing.T) {
	svc := &fakeSubmissionService{err: service.ErrNilaiOutOfRange}
	app := newSubmissionApp(svc)

	resp := putJSON(t, app, "/api/v1/submissions/1", fiber.Map{"nilai": 150})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var payload struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &payload)
	require.Equal(t, "Nilai harus antara 0-100", payload.Error)
}

func TestUpdateSubmissionNotFound(t *testing.T) {
	svc := &fakeSubmissionService{err: service.ErrSubmissionNotFound}
	app := newSubmissionApp(svc)

	resp := putJSON(t, app, "/api/v1/submissions/99", fiber.Map{"nilai": 80})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetSubmission(t *testing.T) {
	svc := &fakeSubmissionService{response: dto.SubmissionResponse{ID: 3, Status: "UNGRADED"}}
	app := newSubmissionApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/submissions/3", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(3), svc.lastID)
}

func TestCreateSubmissionRequiresAuthenticatedStudent(t *testing.T) {
	svc := &fakeSubmissionService{}
	app := newSubmissionApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
