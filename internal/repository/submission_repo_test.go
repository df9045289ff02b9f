package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/projecta-dev/projecta-api/internal/models"
	"github.com/projecta-dev/projecta-api/internal/repository"
)

func seedSubmission(t *testing.T, db *gorm.DB) models.Submission {
	t.Helper()

	student, assessment := seedTaskFixture(t, db)
	submission := models.Submission{
		AssessmentID: assessment.ID,
		StudentID:    student.ID,
		FileURL:      "https://cdn.example.com/karya.pdf",
		Status:       models.SubmissionStatusUngraded,
	}
	require.NoError(t, db.Create(&submission).Error)
	return submission
}

func TestApplyGradingWritesScoreAndShowcaseAtomically(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewSubmissionRepository(db)
	submission := seedSubmission(t, db)

	nilai := 88.0
	validatedAt := time.Now()
	validatedBy := uint(2)
	submission.Score = &nilai
	submission.Status = models.SubmissionStatusValidated
	submission.ValidatedAt = &validatedAt
	submission.ValidatedBy = &validatedBy

	score := &models.Score{StudentID: submission.StudentID, AssessmentID: submission.AssessmentID, Value: nilai}
	showcase := &models.Showcase{
		SubmissionID: submission.ID,
		Title:        "Membangun REST API - Pemrograman Web",
		Score:        nilai,
		Public:       true,
		ValidatedAt:  validatedAt,
	}

	require.NoError(t, repo.ApplyGrading(context.Background(), &submission, score, showcase))

	stored, err := repo.GetByID(context.Background(), submission.ID)
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusValidated, stored.Status)
	require.Equal(t, nilai, *stored.Score)
	require.Equal(t, "Membangun REST API", stored.Assessment.Title)

	var storedScore models.Score
	require.NoError(t, db.Where("student_id = ? AND assessment_id = ?", submission.StudentID, submission.AssessmentID).First(&storedScore).Error)
	require.Equal(t, nilai, storedScore.Value)

	var storedShowcase models.Showcase
	require.NoError(t, db.Where("submission_id = ?", submission.ID).First(&storedShowcase).Error)
	require.Equal(t, nilai, storedShowcase.Score)
}

func TestApplyGradingUpsertsShowcaseBySubmission(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewSubmissionRepository(db)
	submission := seedSubmission(t, db)

	first := &models.Showcase{SubmissionID: submission.ID, Title: "Versi pertama", Score: 70, Public: true, ValidatedAt: time.Now()}
	require.NoError(t, repo.ApplyGrading(context.Background(), &submission, nil, first))

	second := &models.Showcase{SubmissionID: submission.ID, Title: "Versi kedua", Score: 95, Public: true, ValidatedAt: time.Now()}
	require.NoError(t, repo.ApplyGrading(context.Background(), &submission, nil, second))

	var count int64
	require.NoError(t, db.Model(&models.Showcase{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	var stored models.Showcase
	require.NoError(t, db.Where("submission_id = ?", submission.ID).First(&stored).Error)
	require.Equal(t, "Versi kedua", stored.Title)
	require.Equal(t, 95.0, stored.Score)
}

func TestApplyGradingNilShowcaseDeletes(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewSubmissionRepository(db)
	submission := seedSubmission(t, db)

	showcase := &models.Showcase{SubmissionID: submission.ID, Title: "Karya", Score: 80, Public: true, ValidatedAt: time.Now()}
	require.NoError(t, repo.ApplyGrading(context.Background(), &submission, nil, showcase))

	submission.Status = models.SubmissionStatusUngraded
	require.NoError(t, repo.ApplyGrading(context.Background(), &submission, nil, nil))

	var count int64
	require.NoError(t, db.Model(&models.Showcase{}).Count(&count).Error)
	require.Zero(t, count)

	// Revoking again stays a no-op.
	require.NoError(t, repo.ApplyGrading(context.Background(), &submission, nil, nil))
}

func TestListFilters(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewSubmissionRepository(db)
	submission := seedSubmission(t, db)

	other := models.Submission{
		AssessmentID: submission.AssessmentID,
		StudentID:    submission.StudentID + 100,
		Status:       models.SubmissionStatusValidated,
	}
	require.NoError(t, db.Create(&other).Error)

	status := models.SubmissionStatusValidated
	validated, err := repo.List(context.Background(), repository.SubmissionFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, validated, 1)
	require.Equal(t, other.ID, validated[0].ID)

	byStudent, err := repo.List(context.Background(), repository.SubmissionFilter{StudentID: &submission.StudentID})
	require.NoError(t, err)
	require.Len(t, byStudent, 1)
	require.Equal(t, submission.ID, byStudent[0].ID)
}

func TestGetByIDNotFound(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewSubmissionRepository(db)

	_, err := repo.GetByID(context.Background(), 404)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
