package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/projecta-dev/projecta-api/internal/models"
)

// AnswerRepository reads back graded answers.
type AnswerRepository interface {
	ListByStudentAndAssessment(ctx context.Context, studentID, assessmentID uint) ([]models.Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository instantiates the repository.
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) ListByStudentAndAssessment(ctx context.Context, studentID, assessmentID uint) ([]models.Answer, error) {
	var answers []models.Answer
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("assessment_id = ?", assessmentID).
		Order("question_id ASC").
		Find(&answers).Error; err != nil {
		return nil, err
	}

	return answers, nil
}
