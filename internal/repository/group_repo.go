package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/projecta-dev/projecta-api/internal/models"
)

// GroupRepository defines persistence operations for project groups.
type GroupRepository interface {
	ListByCourse(ctx context.Context, courseID uint) ([]models.Group, error)
	GetByID(ctx context.Context, id uint) (models.Group, error)
	Create(ctx context.Context, group *models.Group) error
	Update(ctx context.Context, group *models.Group) error
	ReplaceMembers(ctx context.Context, group *models.Group, members []models.Student) error
	Delete(ctx context.Context, id uint) error
}

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository instantiates a GORM-backed repository.
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) ListByCourse(ctx context.Context, courseID uint) ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.WithContext(ctx).
		Preload("Members").
		Where("course_id = ?", courseID).
		Order("name ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}

	return groups, nil
}

func (r *groupRepository) GetByID(ctx context.Context, id uint) (models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).
		Preload("Members").
		Preload("Course").
		First(&group, id).Error; err != nil {
		return models.Group{}, err
	}

	return group, nil
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepository) Update(ctx context.Context, group *models.Group) error {
	return r.db.WithContext(ctx).Omit("Members", "Course").Save(group).Error
}

func (r *groupRepository) ReplaceMembers(ctx context.Context, group *models.Group, members []models.Student) error {
	return r.db.WithContext(ctx).Model(group).Association("Members").Replace(members)
}

func (r *groupRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Group{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
