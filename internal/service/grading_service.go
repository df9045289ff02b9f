package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/projecta-dev/projecta-api/internal/dto"
	"github.com/projecta-dev/projecta-api/internal/models"
	"github.com/projecta-dev/projecta-api/internal/repository"
)

// ErrAssessmentNotFound indicates the referenced assessment does not exist.
var ErrAssessmentNotFound = errors.New("assessment not found")

// ErrNotQuiz indicates the assessment does not accept quiz submissions.
var ErrNotQuiz = errors.New("assessment is not a quiz")

// ErrAlreadySubmitted indicates the student already has a score for the quiz.
var ErrAlreadySubmitted = errors.New("quiz already submitted")

// ErrScoreNotFound indicates no score exists for the student and assessment.
var ErrScoreNotFound = errors.New("score not found")

// MalformedAnswerError signals a jawaban payload that cannot be decoded
// against the question's declared kind.
type MalformedAnswerError struct {
	QuestionID uint
	Reason     string
}

func (e *MalformedAnswerError) Error() string {
	return fmt.Sprintf("malformed answer for question %d: %s", e.QuestionID, e.Reason)
}

// GradingService runs the quiz submission workflow: intake validation,
// per-question grading and transactional score aggregation.
type GradingService interface {
	SubmitQuiz(ctx context.Context, assessmentID uint, payload dto.QuizSubmissionRequest) (dto.QuizSubmissionResult, error)
	Result(ctx context.Context, assessmentID, studentID uint) (dto.QuizResultResponse, error)
}

type gradingService struct {
	assessments repository.AssessmentRepository
	scores      repository.ScoreRepository
	answers     repository.AnswerRepository
	validator   *validator.Validate
	activity    ActivityRecorder
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
}

// NewGradingService constructs the grading service.
func NewGradingService(assessmentRepo repository.AssessmentRepository, scoreRepo repository.ScoreRepository, answerRepo repository.AnswerRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) GradingService {
	return &gradingService{
		assessments: assessmentRepo,
		scores:      scoreRepo,
		answers:     answerRepo,
		validator:   validate,
		activity:    activity,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "grading_service").Logger(),
	}
}

func (s *gradingService) SubmitQuiz(ctx context.Context, assessmentID uint, payload dto.QuizSubmissionRequest) (dto.QuizSubmissionResult, error) {
	tracer := otel.Tracer("github.com/projecta-dev/projecta-api/internal/service/grading")
	ctx, span := tracer.Start(ctx, "quiz.submit")
	span.SetAttributes(
		attribute.Int64("quiz.assessment_id", int64(assessmentID)),
		attribute.Int64("quiz.student_id", int64(payload.StudentID)),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.QuizSubmissionResult{}, err
	}

	assessment, err := s.assessments.GetWithQuestions(ctx, assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "assessment_not_found")
			return dto.QuizSubmissionResult{}, ErrAssessmentNotFound
		}
		span.RecordError(err)
		return dto.QuizSubmissionResult{}, err
	}

	if !assessment.IsQuiz() {
		span.SetStatus(codes.Error, "not_a_quiz")
		return dto.QuizSubmissionResult{}, ErrNotQuiz
	}

	if _, err := s.scores.GetByStudentAndAssessment(ctx, payload.StudentID, assessmentID); err == nil {
		span.SetStatus(codes.Error, "already_submitted")
		return dto.QuizSubmissionResult{}, ErrAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		span.RecordError(err)
		return dto.QuizSubmissionResult{}, err
	}

	answers, totalPoints, err := s.gradeAnswers(assessment, payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed_answer")
		return dto.QuizSubmissionResult{}, err
	}

	totalWeight := assessment.TotalWeight()
	final := weightedPercentage(totalPoints, totalWeight)

	score := models.Score{
		StudentID:    payload.StudentID,
		AssessmentID: assessmentID,
	}
	if err := s.scores.RecordQuizResult(ctx, &score, answers, final); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent submission; the unique
			// index on (student_id, assessment_id) is the arbiter.
			span.SetStatus(codes.Error, "already_submitted")
			return dto.QuizSubmissionResult{}, ErrAlreadySubmitted
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist_failed")
		return dto.QuizSubmissionResult{}, err
	}

	if s.activity != nil {
		entityID := assessment.ID
		_, _ = s.activity.Record(ctx, ActivityEntry{
			ActorID:    payload.StudentID,
			ActorRole:  "student",
			Action:     "quiz.submitted",
			EntityType: "assessment",
			EntityID:   &entityID,
			Metadata: map[string]interface{}{
				"score_id": score.ID,
				"skor":     final,
			},
		})
	}

	s.logger.Info().
		Uint("assessment_id", assessmentID).
		Uint("student_id", payload.StudentID).
		Float64("skor", final).
		Msg("quiz graded")

	span.SetAttributes(attribute.Float64("quiz.skor", final))

	return dto.QuizSubmissionResult{
		NilaiID:    score.ID,
		Skor:       final,
		TotalSkor:  totalPoints,
		TotalBobot: totalWeight,
	}, nil
}

// gradeAnswers grades every recognized answer and returns the earned total.
// Answers referencing unknown questions are skipped; every authoritative
// question still counts toward the denominator, so a skip can only lower the
// final score. Each question is graded at most once per submission: repeated
// question IDs in the payload keep the first answer and drop the rest, so a
// duplicated correct answer cannot earn its weight twice.
func (s *gradingService) gradeAnswers(assessment models.Assessment, payload dto.QuizSubmissionRequest) ([]models.Answer, int, error) {
	questions := make(map[uint]models.Question, len(assessment.Questions))
	for _, q := range assessment.Questions {
		questions[q.ID] = q
	}

	answers := make([]models.Answer, 0, len(payload.Answers))
	graded := make(map[uint]struct{}, len(payload.Answers))
	total := 0
	for _, req := range payload.Answers {
		question, ok := questions[req.QuestionID]
		if !ok {
			s.logger.Warn().
				Uint("assessment_id", assessment.ID).
				Uint("question_id", req.QuestionID).
				Msg("answer references unknown question, skipping")
			continue
		}

		if _, seen := graded[req.QuestionID]; seen {
			s.logger.Warn().
				Uint("assessment_id", assessment.ID).
				Uint("question_id", req.QuestionID).
				Msg("duplicate answer for question, keeping the first")
			continue
		}
		graded[req.QuestionID] = struct{}{}

		answer, err := s.gradeAnswer(question, req)
		if err != nil {
			return nil, 0, err
		}

		total += answer.Points
		answers = append(answers, answer)
	}

	return answers, total, nil
}

func (s *gradingService) gradeAnswer(question models.Question, req dto.QuizAnswerRequest) (models.Answer, error) {
	answer := models.Answer{QuestionID: question.ID}

	switch question.Kind {
	case models.QuestionKindMultipleChoice:
		optionID, err := req.OptionID()
		if err != nil {
			return models.Answer{}, &MalformedAnswerError{QuestionID: question.ID, Reason: err.Error()}
		}

		correct := false
		for _, option := range question.Options {
			if option.ID == optionID {
				correct = option.IsCorrect
				break
			}
		}

		answer.OptionID = &optionID
		answer.IsCorrect = &correct
		if correct {
			answer.Points = question.Weight
		}

	case models.QuestionKindFreeText:
		text, err := req.Text()
		if err != nil {
			return models.Answer{}, &MalformedAnswerError{QuestionID: question.ID, Reason: err.Error()}
		}

		// Deferred to a human grader: correctness unknown, zero points for
		// now, full weight already in the denominator.
		answer.Text = s.sanitizer.Sanitize(strings.TrimSpace(text))

	default:
		return models.Answer{}, &MalformedAnswerError{QuestionID: question.ID, Reason: "unknown question kind " + question.Kind}
	}

	return answer, nil
}

func (s *gradingService) Result(ctx context.Context, assessmentID, studentID uint) (dto.QuizResultResponse, error) {
	score, err := s.scores.GetByStudentAndAssessment(ctx, studentID, assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizResultResponse{}, ErrScoreNotFound
		}
		return dto.QuizResultResponse{}, err
	}

	answers, err := s.answers.ListByStudentAndAssessment(ctx, studentID, assessmentID)
	if err != nil {
		return dto.QuizResultResponse{}, err
	}

	response := dto.QuizResultResponse{
		NilaiID:      score.ID,
		StudentID:    studentID,
		AssessmentID: assessmentID,
		Skor:         score.Value,
		Answers:      make([]dto.QuizAnswerResponse, 0, len(answers)),
	}
	for _, answer := range answers {
		response.Answers = append(response.Answers, dto.QuizAnswerResponse{
			QuestionID: answer.QuestionID,
			OptionID:   answer.OptionID,
			Text:       answer.Text,
			IsCorrect:  answer.IsCorrect,
			Points:     answer.Points,
		})
	}

	return response, nil
}

// weightedPercentage normalizes earned points against the total weight of
// every question in the assessment. A zero denominator yields zero.
func weightedPercentage(points, weight int) float64 {
	if weight <= 0 {
		return 0
	}

	return math.Round(float64(points)/float64(weight)*100*100) / 100
}
