package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/projecta-dev/projecta-api/internal/models"
)

// AssessmentFilter narrows assessment queries.
type AssessmentFilter struct {
	CourseID *uint
	Kind     string
	Search   string
	Page     int
	PageSize int
}

// AssessmentRepository defines persistence operations for assessments.
type AssessmentRepository interface {
	List(ctx context.Context, filter AssessmentFilter) ([]models.Assessment, int64, error)
	GetByID(ctx context.Context, id uint) (models.Assessment, error)
	// GetWithQuestions loads the assessment together with its full question
	// set and options, so grading never queries per answer.
	GetWithQuestions(ctx context.Context, id uint) (models.Assessment, error)
	ListUpcoming(ctx context.Context, studentID uint, reference time.Time, limit int) ([]models.Assessment, error)
	Create(ctx context.Context, assessment *models.Assessment) error
	Update(ctx context.Context, assessment *models.Assessment) error
	Delete(ctx context.Context, id uint) error
}

type assessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository instantiates a GORM-backed repository.
func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) List(ctx context.Context, filter AssessmentFilter) ([]models.Assessment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Assessment{})

	if filter.CourseID != nil {
		query = query.Where("course_id = ?", *filter.CourseID)
	}

	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(title) LIKE ?", pattern)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var assessments []models.Assessment
	if err := query.Preload("Course").Order("created_at DESC").Find(&assessments).Error; err != nil {
		return nil, 0, err
	}

	return assessments, total, nil
}

func (r *assessmentRepository) GetByID(ctx context.Context, id uint) (models.Assessment, error) {
	var assessment models.Assessment
	if err := r.db.WithContext(ctx).Preload("Course").First(&assessment, id).Error; err != nil {
		return models.Assessment{}, err
	}

	return assessment, nil
}

func (r *assessmentRepository) GetWithQuestions(ctx context.Context, id uint) (models.Assessment, error) {
	var assessment models.Assessment
	if err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Questions").
		Preload("Questions.Options").
		First(&assessment, id).Error; err != nil {
		return models.Assessment{}, err
	}

	return assessment, nil
}

func (r *assessmentRepository) ListUpcoming(ctx context.Context, studentID uint, reference time.Time, limit int) ([]models.Assessment, error) {
	scored := r.db.Model(&models.Score{}).Select("assessment_id").Where("student_id = ?", studentID)
	submitted := r.db.Model(&models.Submission{}).Select("assessment_id").Where("student_id = ?", studentID)

	query := r.db.WithContext(ctx).
		Preload("Course").
		Where("deadline IS NOT NULL AND deadline > ?", reference).
		Where("id NOT IN (?)", scored).
		Where("id NOT IN (?)", submitted).
		Order("deadline ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var assessments []models.Assessment
	if err := query.Find(&assessments).Error; err != nil {
		return nil, err
	}

	return assessments, nil
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	return r.db.WithContext(ctx).Create(assessment).Error
}

func (r *assessmentRepository) Update(ctx context.Context, assessment *models.Assessment) error {
	return r.db.WithContext(ctx).Save(assessment).Error
}

func (r *assessmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Assessment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
