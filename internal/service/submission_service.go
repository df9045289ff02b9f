package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/projecta-dev/projecta-api/internal/dto"
	"github.com/projecta-dev/projecta-api/internal/models"
	"github.com/projecta-dev/projecta-api/internal/repository"
)

// ErrSubmissionNotFound indicates a submission could not be found.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrNotTask indicates the assessment does not accept project deliverables.
var ErrNotTask = errors.New("assessment is not a task")

// ErrNilaiOutOfRange indicates a manual grade outside the 0-100 range.
// The message is part of the public contract.
var ErrNilaiOutOfRange = errors.New("Nilai harus antara 0-100")

// FileUploader abstracts uploading binary data and returning a URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// SubmissionService orchestrates project submission intake and the manual
// grading path, including showcase synchronization.
type SubmissionService interface {
	List(ctx context.Context, filter dto.SubmissionFilter) ([]dto.SubmissionResponse, error)
	Get(ctx context.Context, id uint) (dto.SubmissionResponse, error)
	Create(ctx context.Context, payload dto.SubmissionCreateRequest, file *multipart.FileHeader) (dto.SubmissionResponse, error)
	Update(ctx context.Context, id uint, payload dto.SubmissionUpdateRequest) (dto.SubmissionResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assessments repository.AssessmentRepository
	validator   *validator.Validate
	uploader    FileUploader
	activity    ActivityRecorder
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(subRepo repository.SubmissionRepository, assessmentRepo repository.AssessmentRepository, validate *validator.Validate, uploader FileUploader, activity ActivityRecorder, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: subRepo,
		assessments: assessmentRepo,
		validator:   validate,
		uploader:    uploader,
		activity:    activity,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

func (s *submissionService) List(ctx context.Context, filter dto.SubmissionFilter) ([]dto.SubmissionResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	repoFilter := repository.SubmissionFilter{
		AssessmentID: filter.AssessmentID,
		StudentID:    filter.StudentID,
		GroupID:      filter.GroupID,
		Status:       filter.Status,
	}

	submissions, err := s.submissions.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

func (s *submissionService) Get(ctx context.Context, id uint) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) Create(ctx context.Context, payload dto.SubmissionCreateRequest, file *multipart.FileHeader) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	if file == nil {
		return dto.SubmissionResponse{}, fmt.Errorf("submission file is required")
	}

	assessment, err := s.assessments.GetByID(ctx, payload.AssessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrAssessmentNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	if assessment.Kind != models.AssessmentKindTask {
		return dto.SubmissionResponse{}, ErrNotTask
	}

	if assessment.IsPastDeadline(s.now()) {
		return dto.SubmissionResponse{}, fmt.Errorf("assessment deadline has passed")
	}

	if err := validateFileType(file); err != nil {
		return dto.SubmissionResponse{}, err
	}

	reader, err := file.Open()
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	uploadURL, err := s.uploader.Upload(ctx, file.Filename, reader)
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to upload file: %w", err)
	}

	submission := models.Submission{
		AssessmentID: payload.AssessmentID,
		StudentID:    payload.StudentID,
		GroupID:      payload.GroupID,
		FileURL:      uploadURL,
		Notes:        s.sanitizer.Sanitize(payload.Notes),
		Status:       models.SubmissionStatusUngraded,
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	// Reload with associations
	created, err := s.submissions.GetByID(ctx, submission.ID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	if s.activity != nil {
		entityID := created.ID
		_, _ = s.activity.Record(ctx, ActivityEntry{
			ActorID:    payload.StudentID,
			ActorRole:  "student",
			Action:     "submission.created",
			EntityType: "submission",
			EntityID:   &entityID,
			Metadata:   map[string]interface{}{"assessment_id": payload.AssessmentID},
		})
	}

	s.logger.Info().Uint("submission_id", created.ID).Msg("submission created")

	return dto.NewSubmissionResponse(created), nil
}

func (s *submissionService) Update(ctx context.Context, id uint, payload dto.SubmissionUpdateRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	if payload.Nilai != nil && (*payload.Nilai < 0 || *payload.Nilai > 100) {
		return dto.SubmissionResponse{}, ErrNilaiOutOfRange
	}

	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	priorScore := submission.Score

	if payload.Nilai != nil {
		nilai := *payload.Nilai
		submission.Score = &nilai
	}

	if payload.Catatan != nil {
		submission.Notes = s.sanitizer.Sanitize(*payload.Catatan)
	}

	if payload.Feedback != nil {
		submission.Feedback = s.sanitizer.Sanitize(*payload.Feedback)
	}

	if payload.Status != nil {
		submission.Status = *payload.Status
		if submission.IsValidated() {
			validatedAt := s.now()
			submission.ValidatedAt = &validatedAt
			if payload.ValidatedBy != nil {
				submission.ValidatedBy = payload.ValidatedBy
			}
		} else {
			submission.ValidatedAt = nil
			submission.ValidatedBy = nil
		}
	}

	score := s.scoreUpsertFor(submission)
	showcase := s.showcaseFor(submission, payload.Nilai, priorScore)

	if err := s.submissions.ApplyGrading(ctx, &submission, score, showcase); err != nil {
		return dto.SubmissionResponse{}, err
	}

	updated, err := s.submissions.GetByID(ctx, submission.ID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	if s.activity != nil {
		action := "submission.updated"
		if payload.Status != nil && updated.IsValidated() {
			action = "submission.validated"
		}
		actorID := uint(0)
		if updated.ValidatedBy != nil {
			actorID = *updated.ValidatedBy
		}
		entityID := updated.ID
		metadata := map[string]interface{}{"student_id": updated.StudentID}
		if updated.Score != nil {
			metadata["nilai"] = *updated.Score
		}
		_, _ = s.activity.Record(ctx, ActivityEntry{
			ActorID:    actorID,
			ActorRole:  "teacher",
			Action:     action,
			EntityType: "submission",
			EntityID:   &entityID,
			Metadata:   metadata,
		})
	}

	s.logger.Info().
		Uint("submission_id", submission.ID).
		Str("status", updated.Status).
		Msg("submission updated")

	return dto.NewSubmissionResponse(updated), nil
}

// scoreUpsertFor maps a graded submission onto its Score row. Only graded
// submissions touch the score table.
func (s *submissionService) scoreUpsertFor(submission models.Submission) *models.Score {
	if submission.Score == nil {
		return nil
	}

	return &models.Score{
		StudentID:    submission.StudentID,
		AssessmentID: submission.AssessmentID,
		Value:        *submission.Score,
	}
}

// showcaseFor reconciles showcase existence with the submission's validation
// state: validated submissions get an upsert built from current data, all
// others get a delete. The showcase score prefers the incoming nilai and
// falls back to the previously stored one when the new value is absent or
// zero.
func (s *submissionService) showcaseFor(submission models.Submission, nilai, prior *float64) *models.Showcase {
	if !submission.IsValidated() {
		return nil
	}

	title := submission.Assessment.Title
	description := fmt.Sprintf("Karya tervalidasi dari tugas %s", submission.Assessment.Title)
	if courseName := strings.TrimSpace(submission.Assessment.Course.Name); courseName != "" {
		title = fmt.Sprintf("%s - %s", submission.Assessment.Title, courseName)
		description = fmt.Sprintf("Karya tervalidasi dari tugas %s pada kursus %s", submission.Assessment.Title, courseName)
	}

	showcaseScore := 0.0
	if nilai != nil && *nilai > 0 {
		showcaseScore = *nilai
	} else if prior != nil {
		showcaseScore = *prior
	}

	validatedAt := s.now()
	if submission.ValidatedAt != nil {
		validatedAt = *submission.ValidatedAt
	}

	return &models.Showcase{
		SubmissionID: submission.ID,
		Title:        title,
		Description:  description,
		Score:        showcaseScore,
		Public:       true,
		ValidatedAt:  validatedAt,
	}
}

func validateFileType(file *multipart.FileHeader) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return fmt.Errorf("failed to detect file type: %w", err)
	}

	allowed := []string{"application/pdf", "application/zip", "application/x-zip-compressed", "text/plain"}
	for _, a := range allowed {
		if mime.Is(a) {
			return nil
		}
	}

	return fmt.Errorf("unsupported file type: %s", mime.String())
}
