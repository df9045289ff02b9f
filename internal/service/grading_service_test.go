package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/projecta-dev/projecta-api/internal/dto"
	"github.com/projecta-dev/projecta-api/internal/models"
)

func quizFixture() models.Assessment {
	return models.Assessment{
		ID:    1,
		Title: "Kuis Jaringan",
		Kind:  models.AssessmentKindQuiz,
		Questions: []models.Question{
			{
				ID:     1,
				Weight: 10,
				Kind:   models.QuestionKindMultipleChoice,
				Options: []models.QuestionOption{
					{ID: 11, Text: "TCP", IsCorrect: true},
					{ID: 12, Text: "UDP"},
				},
			},
			{
				ID:     2,
				Weight: 20,
				Kind:   models.QuestionKindMultipleChoice,
				Options: []models.QuestionOption{
					{ID: 21, Text: "HTTP"},
					{ID: 22, Text: "SMTP", IsCorrect: true},
				},
			},
		},
	}
}

func newGradingFixture(assessments ...models.Assessment) (GradingService, *fakeScoreRepo, *fakeActivityRecorder) {
	scores := newFakeScoreRepo()
	activity := &fakeActivityRecorder{}
	svc := NewGradingService(
		newFakeAssessmentRepo(assessments...),
		scores,
		&fakeAnswerRepo{scores: scores},
		validator.New(validator.WithRequiredStructEnabled()),
		activity,
		testLogger(),
	)
	return svc, scores, activity
}

func TestSubmitQuizWeightedScore(t *testing.T) {
	svc, scores, activity := newGradingFixture(quizFixture())

	// First question right, second wrong: 10 of 30 weight earned.
	result, err := svc.SubmitQuiz(context.Background(), 1, dto.QuizSubmissionRequest{
		StudentID: 7,
		Answers: []dto.QuizAnswerRequest{
			{QuestionID: 1, Jawaban: json.RawMessage(`11`)},
			{QuestionID: 2, Jawaban: json.RawMessage(`21`)},
		},
	})
	require.NoError(t, err)

	require.Equal(t, 33.33, result.Skor)
	require.Equal(t, 10, result.TotalSkor)
	require.Equal(t, 30, result.TotalBobot)
	require.NotZero(t, result.NilaiID)

	stored, err := scores.GetByStudentAndAssessment(context.Background(), 7, 1)
	require.NoError(t, err)
	require.Equal(t, 33.33, stored.Value)

	require.Len(t, activity.entries, 1)
	require.Equal(t, "quiz.submitted", activity.entries[0].Action)
}

func TestSubmitQuizPerfectScore(t *testing.T) {
	svc, _, _ := newGradingFixture(quizFixture())

	result, err := svc.SubmitQuiz(context.Background(), 1, dto.QuizSubmissionRequest{
		StudentID: 7,
		Answers: []dto.QuizAnswerRequest{
			{QuestionID: 1, Jawaban: json.RawMessage(`11`)},
			{QuestionID: 2, Jawaban: json.RawMessage(`22`)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 100.0, result.Skor)
	require.Equal(t, 30, result.TotalSkor)
}

func TestSubmitQuizAcceptsStringOptionID(t *testing.T) {
	svc, _, _ := newGradingFixture(quizFixture())

	result, err := svc.SubmitQuiz(context.Background(), 1, dto.QuizSubmissionRequest{
		StudentID: 7,
		Answers: []dto.QuizAnswerRequest{
			{QuestionID: 1, Jawaban: json.RawMessage(`"11"`)},
			{QuestionID: 2, Jawaban: json.RawMessage(`"22"`)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 100.0, result.Skor)
}

func TestSubmitQuizFreeTextEarnsNothingButCounts(t *testing.T) {
	assessment := quizFixture()
	assessment.Questions = append(assessment.Questions, models.Question{
		ID:     3,
		Weight: 30,
		Kind:   models.QuestionKindFreeText,
	})

	svc, scores, _ := newGradingFixture(assessment)

	result, err := svc.SubmitQuiz(context.Background(), 1, dto.QuizSubmissionRequest{
		StudentID: 7,
		Answers: []dto.QuizAnswerRequest{
			{QuestionID: 1, Jawaban: json.RawMessage(`11`)},
			{QuestionID: 2, Jawaban: json.RawMessage(`22`)},
			{QuestionID: 3, Jawaban: json.RawMessage(`"Karena TCP menjamin pengiriman"`)},
		},
	})
	require.NoError(t, err)

	// 30 of 60: the free-text weight stays in the denominator.
	require.Equal(t, 50.0, result.Skor)
	require.Equal(t, 30, result.TotalSkor)
	require.Equal(t, 60, result.TotalBobot)

	answerRepo := &fakeAnswerRepo{scores: scores}
	answers, err := answerRepo.ListByStudentAndAssessment(context.Background(), 7, 1)
	require.NoError(t, err)
	require.Len(t, answers, 3)

	var freeText *models.Answer
	for i := range answers {
		if answers[i].QuestionID == 3 {
			freeText = &answers[i]
		}
	}
	require.NotNil(t, freeText)
	require.Nil(t, freeText.IsCorrect)
	require.Zero(t, freeText.Points)
	require.Equal(t, "Karena TCP menjamin pengiriman", freeText.Text)
}

func TestSubmitQuizZeroTotalWeight(t *testing.T) {
	assessment := models.Assessment{
		ID:   1,
		Kind: models.AssessmentKindQuiz,
		Questions: []models.Question{
			{ID: 1, Weight: 0, Kind: models.QuestionKindFreeText},
		},
	}

	svc, _, _ := newGradingFixture(assessment)

	result, err := svc.SubmitQuiz(context.Background(), 1, dto.QuizSubmissionRequest{
		StudentID: 7,
		Answers: []dto.QuizAnswerRequest{
			{QuestionID: 1, Jawaban: json.RawMessage(`"jawaban"`)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 0.0, result.Skor)
	require.Equal(t, 0, result.TotalBobot)
}

func TestSubmitQuizIgnoresUnknownQuestions(t *testing.T) {
	svc, _, _ := newGradingFixture(quizFixture())

	result, err := svc.SubmitQuiz(context.Background(), 1, dto.QuizSubmissionRequest{
		StudentID: 7,
		Answers: []dto.QuizAnswerRequest{
			{QuestionID: 1, Jawaban: json.RawMessage(`11`)},
			{QuestionID: 2, Jawaban: json.RawMessage(`22`)},
			{QuestionID: 999, Jawaban: json.RawMessage(`5`)},
		},
	})
	require.NoError(t, err)

	// The stray answer neither earns points nor inflates the denominator.
	require.Equal(t, 100.0, result.Skor)
	require.Equal(t, 30, result.TotalBobot)
}

func TestSubmitQuizCountsDuplicateAnswersOnce(t *testing.T) {
	svc, scores, _ := newGradingFixture(quizFixture())

	// Repeating the correct answer must not earn its weight again.
	result, err := svc.SubmitQuiz(context.Background(), 1, dto.QuizSubmissionRequest{
		StudentID: 7,
		Answers: []dto.QuizAnswerRequest{
			{QuestionID: 1, Jawaban: json.RawMessage(`11`)},
			{QuestionID: 1, Jawaban: json.RawMessage(`11`)},
			{QuestionID: 1, Jawaban: json.RawMessage(`11`)},
		},
	})
	require.NoError(t, err)

	require.Equal(t, 33.33, result.Skor)
	require.Equal(t, 10, result.TotalSkor)
	require.Equal(t, 30, result.TotalBobot)

	// One answer row per question, not one per payload entry.
	require.Len(t, scores.answers, 1)
	require.Equal(t, uint(1), scores.answers[0].QuestionID)
}

func TestSubmitQuizDuplicateKeepsFirstAnswer(t *testing.T) {
	svc, scores, _ := newGradingFixture(quizFixture())

	// A wrong first answer stays authoritative even when a correct one for
	// the same question follows.
	result, err := svc.SubmitQuiz(context.Background(), 1, dto.QuizSubmissionRequest{
		StudentID: 7,
		Answers: []dto.QuizAnswerRequest{
			{QuestionID: 1, Jawaban: json.RawMessage(`12`)},
			{QuestionID: 1, Jawaban: json.RawMessage(`11`)},
			{QuestionID: 2, Jawaban: json.RawMessage(`22`)},
		},
	})
	require.NoError(t, err)

	require.Equal(t, 66.67, result.Skor)
	require.Equal(t, 20, result.TotalSkor)

	require.Len(t, scores.answers, 2)
	require.Equal(t, uint(12), *scores.answers[0].OptionID)
	require.False(t, *scores.answers[0].IsCorrect)
}

func TestSubmitQuizMalformedAnswer(t *testing.T) {
	svc, scores, _ := newGradingFixture(quizFixture())

	_, err := svc.SubmitQuiz(context.Background(), 1, dto.QuizSubmissionRequest{
		StudentID: 7,
		Answers: []dto.QuizAnswerRequest{
			{QuestionID: 1, Jawaban: json.RawMessage(`"bukan angka"`)},
		},
	})

	var malformed *MalformedAnswerError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, uint(1), malformed.QuestionID)

	// Nothing persists on a rejected submission.
	_, err = scores.GetByStudentAndAssessment(context.Background(), 7, 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSubmitQuizAlreadySubmitted(t *testing.T) {
	svc, scores, _ := newGradingFixture(quizFixture())
	require.NoError(t, scores.Upsert(context.Background(), &models.Score{StudentID: 7, AssessmentID: 1, Value: 80}))

	_, err := svc.SubmitQuiz(context.Background(), 1, dto.QuizSubmissionRequest{
		StudentID: 7,
		Answers: []dto.QuizAnswerRequest{
			{QuestionID: 1, Jawaban: json.RawMessage(`11`)},
		},
	})
	require.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestSubmitQuizDuplicateRaceMapsToAlreadySubmitted(t *testing.T) {
	svc, scores, _ := newGradingFixture(quizFixture())
	scores.recordErr = gorm.ErrDuplicatedKey

	_, err := svc.SubmitQuiz(context.Background(), 1, dto.QuizSubmissionRequest{
		StudentID: 7,
		Answers: []dto.QuizAnswerRequest{
			{QuestionID: 1, Jawaban: json.RawMessage(`11`)},
		},
	})
	require.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestSubmitQuizAssessmentNotFound(t *testing.T) {
	svc, _, _ := newGradingFixture()

	_, err := svc.SubmitQuiz(context.Background(), 42, dto.QuizSubmissionRequest{
		StudentID: 7,
		Answers: []dto.QuizAnswerRequest{
			{QuestionID: 1, Jawaban: json.RawMessage(`11`)},
		},
	})
	require.ErrorIs(t, err, ErrAssessmentNotFound)
}

func TestSubmitQuizRejectsTaskAssessment(t *testing.T) {
	svc, _, _ := newGradingFixture(models.Assessment{ID: 1, Kind: models.AssessmentKindTask})

	_, err := svc.SubmitQuiz(context.Background(), 1, dto.QuizSubmissionRequest{
		StudentID: 7,
		Answers: []dto.QuizAnswerRequest{
			{QuestionID: 1, Jawaban: json.RawMessage(`11`)},
		},
	})
	require.ErrorIs(t, err, ErrNotQuiz)
}

func TestSubmitQuizValidatesPayload(t *testing.T) {
	svc, _, _ := newGradingFixture(quizFixture())

	_, err := svc.SubmitQuiz(context.Background(), 1, dto.QuizSubmissionRequest{StudentID: 0})
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))
}

func TestResultReturnsStoredAnswers(t *testing.T) {
	svc, _, _ := newGradingFixture(quizFixture())

	submitted, err := svc.SubmitQuiz(context.Background(), 1, dto.QuizSubmissionRequest{
		StudentID: 7,
		Answers: []dto.QuizAnswerRequest{
			{QuestionID: 1, Jawaban: json.RawMessage(`11`)},
			{QuestionID: 2, Jawaban: json.RawMessage(`21`)},
		},
	})
	require.NoError(t, err)

	result, err := svc.Result(context.Background(), 1, 7)
	require.NoError(t, err)
	require.Equal(t, submitted.NilaiID, result.NilaiID)
	require.Equal(t, submitted.Skor, result.Skor)
	require.Len(t, result.Answers, 2)
}

func TestResultNotFound(t *testing.T) {
	svc, _, _ := newGradingFixture(quizFixture())

	_, err := svc.Result(context.Background(), 1, 7)
	require.ErrorIs(t, err, ErrScoreNotFound)
}
