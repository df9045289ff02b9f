package repository_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/projecta-dev/projecta-api/internal/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Student{},
		&models.Course{},
		&models.Group{},
		&models.Assessment{},
		&models.Question{},
		&models.QuestionOption{},
		&models.Answer{},
		&models.Score{},
		&models.Submission{},
		&models.Showcase{},
		&models.ActivityLog{},
	))

	return db
}

func seedTaskFixture(t *testing.T, db *gorm.DB) (models.Student, models.Assessment) {
	t.Helper()

	student := models.Student{Name: "Dewi", Email: "dewi@example.com", Class: "XI-1"}
	require.NoError(t, db.Create(&student).Error)

	course := models.Course{Name: "Pemrograman Web"}
	require.NoError(t, db.Create(&course).Error)

	assessment := models.Assessment{CourseID: course.ID, Title: "Membangun REST API", Kind: models.AssessmentKindTask}
	require.NoError(t, db.Create(&assessment).Error)

	return student, assessment
}
