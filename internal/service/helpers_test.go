package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/projecta-dev/projecta-api/internal/dto"
	"github.com/projecta-dev/projecta-api/internal/models"
	"github.com/projecta-dev/projecta-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type fakeAssessmentRepo struct {
	assessments map[uint]models.Assessment
	nextID      uint
}

func newFakeAssessmentRepo(assessments ...models.Assessment) *fakeAssessmentRepo {
	repo := &fakeAssessmentRepo{assessments: map[uint]models.Assessment{}, nextID: 1}
	for _, a := range assessments {
		if a.ID >= repo.nextID {
			repo.nextID = a.ID + 1
		}
		repo.assessments[a.ID] = a
	}
	return repo
}

func (r *fakeAssessmentRepo) List(ctx context.Context, filter repository.AssessmentFilter) ([]models.Assessment, int64, error) {
	out := make([]models.Assessment, 0, len(r.assessments))
	for _, a := range r.assessments {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAssessmentRepo) GetByID(ctx context.Context, id uint) (models.Assessment, error) {
	a, ok := r.assessments[id]
	if !ok {
		return models.Assessment{}, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *fakeAssessmentRepo) GetWithQuestions(ctx context.Context, id uint) (models.Assessment, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeAssessmentRepo) ListUpcoming(ctx context.Context, studentID uint, reference time.Time, limit int) ([]models.Assessment, error) {
	out := make([]models.Assessment, 0)
	for _, a := range r.assessments {
		if a.Deadline != nil && a.Deadline.After(reference) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssessmentRepo) Create(ctx context.Context, assessment *models.Assessment) error {
	assessment.ID = r.nextID
	r.nextID++
	r.assessments[assessment.ID] = *assessment
	return nil
}

func (r *fakeAssessmentRepo) Update(ctx context.Context, assessment *models.Assessment) error {
	if _, ok := r.assessments[assessment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.assessments[assessment.ID] = *assessment
	return nil
}

func (r *fakeAssessmentRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.assessments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.assessments, id)
	return nil
}

type scoreKey struct {
	studentID    uint
	assessmentID uint
}

type fakeScoreRepo struct {
	mu        sync.Mutex
	scores    map[scoreKey]models.Score
	answers   []models.Answer
	nextID    uint
	recordErr error
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{scores: map[scoreKey]models.Score{}, nextID: 1}
}

func (r *fakeScoreRepo) GetByStudentAndAssessment(ctx context.Context, studentID, assessmentID uint) (models.Score, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	score, ok := r.scores[scoreKey{studentID, assessmentID}]
	if !ok {
		return models.Score{}, gorm.ErrRecordNotFound
	}
	return score, nil
}

func (r *fakeScoreRepo) RecordQuizResult(ctx context.Context, score *models.Score, answers []models.Answer, final float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recordErr != nil {
		return r.recordErr
	}

	key := scoreKey{score.StudentID, score.AssessmentID}
	if _, exists := r.scores[key]; exists {
		return gorm.ErrDuplicatedKey
	}

	score.ID = r.nextID
	r.nextID++
	score.Value = final

	for i := range answers {
		answers[i].StudentID = score.StudentID
		answers[i].AssessmentID = score.AssessmentID
	}

	r.scores[key] = *score
	r.answers = append(r.answers, answers...)
	return nil
}

func (r *fakeScoreRepo) Upsert(ctx context.Context, score *models.Score) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := scoreKey{score.StudentID, score.AssessmentID}
	if existing, ok := r.scores[key]; ok {
		score.ID = existing.ID
	} else {
		score.ID = r.nextID
		r.nextID++
	}
	r.scores[key] = *score
	return nil
}

func (r *fakeScoreRepo) ListByAssessment(ctx context.Context, assessmentID uint) ([]models.Score, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Score, 0)
	for key, score := range r.scores {
		if key.assessmentID == assessmentID {
			out = append(out, score)
		}
	}
	return out, nil
}

type fakeAnswerRepo struct {
	scores *fakeScoreRepo
}

func (r *fakeAnswerRepo) ListByStudentAndAssessment(ctx context.Context, studentID, assessmentID uint) ([]models.Answer, error) {
	out := make([]models.Answer, 0)
	for _, answer := range r.scores.answers {
		if answer.StudentID == studentID && answer.AssessmentID == assessmentID {
			out = append(out, answer)
		}
	}
	return out, nil
}

type fakeSubmissionRepo struct {
	submissions map[uint]models.Submission
	showcases   map[uint]models.Showcase
	scores      map[scoreKey]models.Score
	nextID      uint
}

func newFakeSubmissionRepo(submissions ...models.Submission) *fakeSubmissionRepo {
	repo := &fakeSubmissionRepo{
		submissions: map[uint]models.Submission{},
		showcases:   map[uint]models.Showcase{},
		scores:      map[scoreKey]models.Score{},
		nextID:      1,
	}
	for _, s := range submissions {
		if s.ID >= repo.nextID {
			repo.nextID = s.ID + 1
		}
		repo.submissions[s.ID] = s
	}
	return repo
}

func (r *fakeSubmissionRepo) List(ctx context.Context, filter repository.SubmissionFilter) ([]models.Submission, error) {
	out := make([]models.Submission, 0, len(r.submissions))
	for _, s := range r.submissions {
		if filter.AssessmentID != nil && s.AssessmentID != *filter.AssessmentID {
			continue
		}
		if filter.StudentID != nil && s.StudentID != *filter.StudentID {
			continue
		}
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSubmissionRepo) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	s, ok := r.submissions[id]
	if !ok {
		return models.Submission{}, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	submission.ID = r.nextID
	r.nextID++
	r.submissions[submission.ID] = *submission
	return nil
}

func (r *fakeSubmissionRepo) Update(ctx context.Context, submission *models.Submission) error {
	if _, ok := r.submissions[submission.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.submissions[submission.ID] = *submission
	return nil
}

func (r *fakeSubmissionRepo) ApplyGrading(ctx context.Context, submission *models.Submission, score *models.Score, showcase *models.Showcase) error {
	if _, ok := r.submissions[submission.ID]; !ok {
		return gorm.ErrRecordNotFound
	}

	r.submissions[submission.ID] = *submission

	if score != nil {
		r.scores[scoreKey{score.StudentID, score.AssessmentID}] = *score
	}

	if showcase != nil {
		r.showcases[submission.ID] = *showcase
	} else {
		delete(r.showcases, submission.ID)
	}

	return nil
}

type fakeActivityRecorder struct {
	entries []ActivityEntry
}

func (r *fakeActivityRecorder) Record(ctx context.Context, entry ActivityEntry) (dto.ActivityResponse, error) {
	r.entries = append(r.entries, entry)
	return dto.ActivityResponse{}, nil
}

type fakeCourseRepo struct {
	courses map[uint]models.Course
	nextID  uint
}

func newFakeCourseRepo(courses ...models.Course) *fakeCourseRepo {
	repo := &fakeCourseRepo{courses: map[uint]models.Course{}, nextID: 1}
	for _, c := range courses {
		if c.ID >= repo.nextID {
			repo.nextID = c.ID + 1
		}
		repo.courses[c.ID] = c
	}
	return repo
}

func (r *fakeCourseRepo) List(ctx context.Context, filter repository.CourseFilter) ([]models.Course, int64, error) {
	out := make([]models.Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCourseRepo) GetByID(ctx context.Context, id uint) (models.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return models.Course{}, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	course.ID = r.nextID
	r.nextID++
	r.courses[course.ID] = *course
	return nil
}

func (r *fakeCourseRepo) Update(ctx context.Context, course *models.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.courses[course.ID] = *course
	return nil
}

func (r *fakeCourseRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.courses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.courses, id)
	return nil
}
