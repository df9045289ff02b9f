package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/projecta-dev/projecta-api/internal/models"
)

// ShowcaseFilter narrows showcase queries.
type ShowcaseFilter struct {
	PublicOnly bool
	Page       int
	PageSize   int
}

// ShowcaseRepository reads showcase records derived from validated submissions.
type ShowcaseRepository interface {
	List(ctx context.Context, filter ShowcaseFilter) ([]models.Showcase, int64, error)
	GetBySubmission(ctx context.Context, submissionID uint) (models.Showcase, error)
}

type showcaseRepository struct {
	db *gorm.DB
}

// NewShowcaseRepository instantiates the repository.
func NewShowcaseRepository(db *gorm.DB) ShowcaseRepository {
	return &showcaseRepository{db: db}
}

func (r *showcaseRepository) List(ctx context.Context, filter ShowcaseFilter) ([]models.Showcase, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Showcase{})

	if filter.PublicOnly {
		query = query.Where("public = ?", true)
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

	var showcases []models.Showcase
	if err := query.Order("validated_at DESC").Find(&showcases).Error; err != nil {
		return nil, 0, err
	}

	return showcases, total, nil
}

func (r *showcaseRepository) GetBySubmission(ctx context.Context, submissionID uint) (models.Showcase, error) {
	var showcase models.Showcase
	if err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		First(&showcase).Error; err != nil {
		return models.Showcase{}, err
	}

	return showcase, nil
}
