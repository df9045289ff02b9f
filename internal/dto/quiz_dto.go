package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// QuizSubmissionRequest is the payload for submitting quiz answers.
type QuizSubmissionRequest struct {
	StudentID    uint                `json:"studentId" validate:"required,gt=0"`
	Answers      []QuizAnswerRequest `json:"answers" validate:"required,min=1,dive"`
	WaktuMulai   *time.Time          `json:"waktuMulai"`
	WaktuSelesai *time.Time          `json:"waktuSelesai"`
}

// QuizAnswerRequest carries one response. The jawaban payload is untyped on
// the wire; the grader decodes it as an option reference or free text
// depending on the question's declared kind.
type QuizAnswerRequest struct {
	QuestionID uint            `json:"questionId" validate:"required,gt=0"`
	Jawaban    json.RawMessage `json:"jawaban" validate:"required"`
}

// OptionID decodes the jawaban payload as a multiple-choice option reference.
// Both bare numbers and numeric strings are accepted.
func (a QuizAnswerRequest) OptionID() (uint, error) {
	var id uint
	if err := json.Unmarshal(a.Jawaban, &id); err == nil {
		return id, nil
	}

	var text string
	if err := json.Unmarshal(a.Jawaban, &text); err != nil {
		return 0, fmt.Errorf("jawaban for question %d is not an option id", a.QuestionID)
	}

	parsed, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("jawaban for question %d is not an option id", a.QuestionID)
	}

	return uint(parsed), nil
}

// Text decodes the jawaban payload as a free-text response.
func (a QuizAnswerRequest) Text() (string, error) {
	var text string
	if err := json.Unmarshal(a.Jawaban, &text); err != nil {
		return "", fmt.Errorf("jawaban for question %d is not text", a.QuestionID)
	}

	return text, nil
}

// QuizSubmissionResult summarizes one graded quiz submission.
type QuizSubmissionResult struct {
	NilaiID    uint    `json:"nilaiId"`
	Skor       float64 `json:"skor"`
	TotalSkor  int     `json:"totalSkor"`
	TotalBobot int     `json:"totalBobot"`
}

// QuizSubmissionEnvelope is the wire shape of a successful quiz submission.
type QuizSubmissionEnvelope struct {
	Success bool                 `json:"success"`
	Result  QuizSubmissionResult `json:"result"`
}

// QuizAnswerResponse serializes one graded answer.
type QuizAnswerResponse struct {
	QuestionID uint   `json:"question_id"`
	OptionID   *uint  `json:"option_id"`
	Text       string `json:"text,omitempty"`
	IsCorrect  *bool  `json:"is_correct"`
	Points     int    `json:"points"`
}

// QuizResultResponse returns the stored score together with graded answers.
type QuizResultResponse struct {
	NilaiID      uint                 `json:"nilaiId"`
	StudentID    uint                 `json:"studentId"`
	AssessmentID uint                 `json:"assessmentId"`
	Skor         float64              `json:"skor"`
	Answers      []QuizAnswerResponse `json:"answers"`
}
