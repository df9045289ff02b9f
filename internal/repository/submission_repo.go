package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/projecta-dev/projecta-api/internal/models"
)

// SubmissionFilter allows narrowing submission queries.
type SubmissionFilter struct {
	AssessmentID *uint
	StudentID    *uint
	GroupID      *uint
	Status       *string
}

// SubmissionRepository defines data operations for project submissions.
type SubmissionRepository interface {
	List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error)
	GetByID(ctx context.Context, id uint) (models.Submission, error)
	Create(ctx context.Context, submission *models.Submission) error
	Update(ctx context.Context, submission *models.Submission) error
	// ApplyGrading commits a teacher grading pass in one transaction: the
	// submission row, the upserted Score and the Showcase follow-up. A nil
	// showcase deletes any existing Showcase for the submission; a nil score
	// leaves the Score table untouched. Status and showcase existence can
	// therefore never diverge.
	ApplyGrading(ctx context.Context, submission *models.Submission, score *models.Score, showcase *models.Showcase) error
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Submission{}).
		Preload("Assessment").
		Preload("Assessment.Course").
		Preload("Student")
}

func (r *submissionRepository) List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error) {
	query := r.baseQuery(ctx)

	if filter.AssessmentID != nil {
		query = query.Where("assessment_id = ?", *filter.AssessmentID)
	}

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}

	if filter.GroupID != nil {
		query = query.Where("group_id = ?", *filter.GroupID)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var submissions []models.Submission
	if err := query.Order("created_at DESC").Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	var submission models.Submission
	if err := r.baseQuery(ctx).First(&submission, id).Error; err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) Update(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}

func (r *submissionRepository) ApplyGrading(ctx context.Context, submission *models.Submission, score *models.Score, showcase *models.Showcase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Assessment", "Student").Save(submission).Error; err != nil {
			return err
		}

		if score != nil {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "student_id"}, {Name: "assessment_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(score).Error; err != nil {
				return err
			}
		}

		if showcase == nil {
			// Idempotent delete: revoking an already-revoked validation is a no-op.
			return tx.Where("submission_id = ?", submission.ID).Delete(&models.Showcase{}).Error
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "submission_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "score", "public", "validated_at", "updated_at"}),
		}).Create(showcase).Error
	})
}
