package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
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

type fakeGradingService struct {
	result    dto.QuizSubmissionResult
	err       error
	lastID    uint
	lastInput dto.QuizSubmissionRequest
}

func (s *fakeGradingService) SubmitQuiz(ctx context.Context, assessmentID uint, payload dto.QuizSubmissionRequest) (dto.QuizSubmissionResult, error) {
	s.lastID = assessmentID
	s.lastInput = payload
	return s.result, s.err
}

func (s *fakeGradingService) Result(ctx context.Context, assessmentID, studentID uint) (dto.QuizResultResponse, error) {
	if s.err != nil {
		return dto.QuizResultResponse{}, s.err
	}
	return dto.QuizResultResponse{NilaiID: s.result.NilaiID, StudentID: studentID, AssessmentID: assessmentID, Skor: s.result.Skor}, nil
}

func newQuizApp(svc service.GradingService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/assessments")
	handler.NewQuizHandler(svc, zerolog.New(io.Discard)).Register(group)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func TestSubmitQuizReturnsCreatedEnvelope(t *testing.T) {
	svc := &fakeGradingService{result: dto.QuizSubmissionResult{NilaiID: 4, Skor: 33.33, TotalSkor: 10, TotalBobot: 30}}
	app := newQuizApp(svc)

	resp := postJSON(t, app, "/api/v1/assessments/5/submit-quiz", fiber.Map{
		"studentId": 7,
		"answers":   []fiber.Map{{"questionId": 1, "jawaban": 11}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, uint(5), svc.lastID)
	require.Equal(t, uint(7), svc.lastInput.StudentID)

	var payload struct {
		Success bool `json:"success"`
		Result  struct {
			NilaiID    uint    `json:"nilaiId"`
			Skor       float64 `json:"skor"`
			TotalSkor  int     `json:"totalSkor"`
			TotalBobot int     `json:"totalBobot"`
		} `json:"result"`
	}
	decodeBody(t, resp, &payload)

	require.True(t, payload.Success)
	require.Equal(t, uint(4), payload.Result.NilaiID)
	require.Equal(t, 33.33, payload.Result.Skor)
	require.Equal(t, 10, payload.Result.TotalSkor)
	require.Equal(t, 30, payload.Result.TotalBobot)
}

func TestSubmitQuizAssessmentNotFound(t *testing.T) {
	svc := &fakeGradingService{err: service.ErrAssessmentNotFound}
	app := newQuizApp(svc)

	resp := postJSON(t, app, "/api/v1/assessments/99/submit-quiz", fiber.Map{
		"studentId": 7,
		"answers":   []fiber.Map{{"questionId": 1, "jawaban": 11}},
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var payload struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &payload)
	require.NotEmpty(t, payload.Error)
}

func TestSubmitQuizAlreadySubmitted(t *testing.T) {
	svc := &fakeGradingService{err: service.ErrAlreadySubmitted}
	app := newQuizApp(svc)

	resp := postJSON(t, app, "/api/v1/assessments/5/submit-quiz", fiber.Map{
		"studentId": 7,
		"answers":   []fiber.Map{{"questionId": 1, "jawaban": 11}},
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSubmitQuizMalformedAnswer(t *testing.T) {
	svc := &fakeGradingService{err: &service.MalformedAnswerError{QuestionID: 1, Reason: "jawaban is not an option id"}}
	app := newQuizApp(svc)

	resp := postJSON(t, app, "/api/v1/assessments/5/submit-quiz", fiber.Map{
		"studentId": 7,
		"answers":   []fiber.Map{{"questionId": 1, "jawaban": "abc"}},
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSubmitQuizInvalidAssessmentID(t *testing.T) {
	app := newQuizApp(&fakeGradingService{})

	resp := postJSON(t, app, "/api/v1/assessments/abc/submit-quiz", fiber.Map{
		"studentId": 7,
		"answers":   []fiber.Map{{"questionId": 1, "jawaban": 11}},
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestQuizResultEndpoint(t *testing.T) {
	svc := &fakeGradingService{result: dto.QuizSubmissionResult{NilaiID: 4, Skor: 75}}
	app := newQuizApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments/5/results/7", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                   `json:"success"`
		Data    dto.QuizResultResponse `json:"data"`
	}
	decodeBody(t, resp, &payload)
	require.True(t, payload.Success)
	require.Equal(t, 75.0, payload.Data.Skor)
	require.Equal(t, uint(7), payload.Data.StudentID)
}
