package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/projecta-dev/projecta-api/internal/dto"
	"github.com/projecta-dev/projecta-api/internal/models"
	"github.com/projecta-dev/projecta-api/internal/repository"
)

// ErrCourseNotFound indicates the referenced course does not exist.
var ErrCourseNotFound = errors.New("course not found")

// InvalidQuestionError reports a question definition that violates the quiz
// invariants, such as a multiple-choice question without exactly one correct
// option.
type InvalidQuestionError struct {
	Index  int
	Reason string
}

func (e *InvalidQuestionError) Error() string {
	return fmt.Sprintf("question %d: %s", e.Index+1, e.Reason)
}

// AssessmentService exposes assessment management use cases.
type AssessmentService interface {
	List(ctx context.Context, filter dto.AssessmentFilter) ([]dto.AssessmentResponse, int64, error)
	Get(ctx context.Context, id uint, revealCorrect bool) (dto.AssessmentResponse, error)
	Create(ctx context.Context, payload dto.AssessmentCreateRequest) (dto.AssessmentResponse, error)
	Update(ctx context.Context, id uint, payload dto.AssessmentUpdateRequest) (dto.AssessmentResponse, error)
	Delete(ctx context.Context, id uint) error
}

type assessmentService struct {
	assessments repository.AssessmentRepository
	courses     repository.CourseRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewAssessmentService constructs an AssessmentService instance.
func NewAssessmentService(assessmentRepo repository.AssessmentRepository, courseRepo repository.CourseRepository, validate *validator.Validate, logger zerolog.Logger) AssessmentService {
	return &assessmentService{
		assessments: assessmentRepo,
		courses:     courseRepo,
		validator:   validate,
		logger:      logger.With().Str("component", "assessment_service").Logger(),
	}
}

func (s *assessmentService) List(ctx context.Context, filter dto.AssessmentFilter) ([]dto.AssessmentResponse, int64, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, 0, err
	}

	assessments, total, err := s.assessments.List(ctx, repository.AssessmentFilter{
		CourseID: filter.CourseID,
		Kind:     filter.Kind,
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	return dto.NewAssessmentResponseSlice(assessments), total, nil
}

func (s *assessmentService) Get(ctx context.Context, id uint, revealCorrect bool) (dto.AssessmentResponse, error) {
	assessment, err := s.assessments.GetWithQuestions(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssessmentResponse{}, ErrAssessmentNotFound
		}
		return dto.AssessmentResponse{}, err
	}

	return dto.NewAssessmentResponse(assessment, revealCorrect), nil
}

func (s *assessmentService) Create(ctx context.Context, payload dto.AssessmentCreateRequest) (dto.AssessmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssessmentResponse{}, err
	}

	if err := validateQuestionSet(payload); err != nil {
		return dto.AssessmentResponse{}, err
	}

	if _, err := s.courses.GetByID(ctx, payload.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssessmentResponse{}, ErrCourseNotFound
		}
		return dto.AssessmentResponse{}, err
	}

	assessment := models.Assessment{
		CourseID: payload.CourseID,
		Title:    payload.Title,
		Kind:     payload.Kind,
		Deadline: payload.Deadline,
	}
	for _, q := range payload.Questions {
		question := models.Question{
			Prompt: q.Prompt,
			Weight: q.Weight,
			Kind:   q.Kind,
		}
		for _, opt := range q.Options {
			question.Options = append(question.Options, models.QuestionOption{
				Text:      opt.Text,
				IsCorrect: opt.IsCorrect,
			})
		}
		assessment.Questions = append(assessment.Questions, question)
	}

	if err := s.assessments.Create(ctx, &assessment); err != nil {
		return dto.AssessmentResponse{}, err
	}

	created, err := s.assessments.GetWithQuestions(ctx, assessment.ID)
	if err != nil {
		return dto.AssessmentResponse{}, err
	}

	s.logger.Info().Uint("assessment_id", created.ID).Str("kind", created.Kind).Msg("assessment created")

	return dto.NewAssessmentResponse(created, true), nil
}

func (s *assessmentService) Update(ctx context.Context, id uint, payload dto.AssessmentUpdateRequest) (dto.AssessmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssessmentResponse{}, err
	}

	assessment, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssessmentResponse{}, ErrAssessmentNotFound
		}
		return dto.AssessmentResponse{}, err
	}

	if payload.Title != nil {
		assessment.Title = *payload.Title
	}
	if payload.Deadline != nil {
		assessment.Deadline = payload.Deadline
	}

	if err := s.assessments.Update(ctx, &assessment); err != nil {
		return dto.AssessmentResponse{}, err
	}

	return dto.NewAssessmentResponse(assessment, false), nil
}

func (s *assessmentService) Delete(ctx context.Context, id uint) error {
	if err := s.assessments.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssessmentNotFound
		}
		return err
	}

	return nil
}

// validateQuestionSet enforces the quiz invariants at creation time: tasks
// carry no questions, multiple-choice questions have at least two options
// with exactly one marked correct, free-text questions have none.
func validateQuestionSet(payload dto.AssessmentCreateRequest) error {
	if payload.Kind == models.AssessmentKindTask {
		if len(payload.Questions) > 0 {
			return &InvalidQuestionError{Index: 0, Reason: "task assessments cannot have questions"}
		}
		return nil
	}

	if len(payload.Questions) == 0 {
		return &InvalidQuestionError{Index: 0, Reason: "quiz assessments require at least one question"}
	}

	for i, q := range payload.Questions {
		switch q.Kind {
		case models.QuestionKindMultipleChoice:
			if len(q.Options) < 2 {
				return &InvalidQuestionError{Index: i, Reason: "multiple-choice questions require at least two options"}
			}
			correct := 0
			for _, opt := range q.Options {
				if opt.IsCorrect {
					correct++
				}
			}
			if correct != 1 {
				return &InvalidQuestionError{Index: i, Reason: "multiple-choice questions require exactly one correct option"}
			}
		case models.QuestionKindFreeText:
			if len(q.Options) > 0 {
				return &InvalidQuestionError{Index: i, Reason: "free-text questions cannot have options"}
			}
		}
	}

	return nil
}
