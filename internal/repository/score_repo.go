package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/projecta-dev/projecta-api/internal/models"
)

// ScoreRepository persists final scores and the answers backing them.
type ScoreRepository interface {
	GetByStudentAndAssessment(ctx context.Context, studentID, assessmentID uint) (models.Score, error)
	// RecordQuizResult persists a quiz grading pass atomically: the Score row
	// is created with value 0, every Answer row is written, then the Score is
	// updated to the final value. Nothing survives a failed step, so a
	// student can retry after an error without tripping the duplicate guard.
	RecordQuizResult(ctx context.Context, score *models.Score, answers []models.Answer, final float64) error
	// Upsert creates the Score for (student, assessment) or overwrites its
	// value when the row already exists.
	Upsert(ctx context.Context, score *models.Score) error
	ListByAssessment(ctx context.Context, assessmentID uint) ([]models.Score, error)
}

type scoreRepository struct {
	db *gorm.DB
}

// NewScoreRepository instantiates the repository.
func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) GetByStudentAndAssessment(ctx context.Context, studentID, assessmentID uint) (models.Score, error) {
	var score models.Score
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("assessment_id = ?", assessmentID).
		First(&score).Error; err != nil {
		return models.Score{}, err
	}

	return score, nil
}

func (r *scoreRepository) RecordQuizResult(ctx context.Context, score *models.Score, answers []models.Answer, final float64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		score.Value = 0
		if err := tx.Create(score).Error; err != nil {
			return err
		}

		for i := range answers {
			answers[i].StudentID = score.StudentID
			answers[i].AssessmentID = score.AssessmentID
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Score{}).Where("id = ?", score.ID).Update("value", final).Error
	})
	if err != nil {
		return err
	}

	score.Value = final
	return nil
}

func (r *scoreRepository) Upsert(ctx context.Context, score *models.Score) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "assessment_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(score).Error
}

func (r *scoreRepository) ListByAssessment(ctx context.Context, assessmentID uint) ([]models.Score, error) {
	var scores []models.Score
	if err := r.db.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("value DESC").
		Find(&scores).Error; err != nil {
		return nil, err
	}

	return scores, nil
}
