package store

import (
	"testing"
	"time"

	"learnhub/models"
	courseModels "learnhub/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.Lesson{},
		&courseModels.MCQQuestion{},
		&courseModels.Enrollment{},
		&courseModels.LessonProgress{},
		&courseModels.MCQAttempt{},
		&courseModels.Certificate{},
	))
	return db
}

// seedCourse creates one published course with two 100s lessons, the second
// carrying a two-question quiz, plus an enrollment for a fresh user.
func seedCourse(t *testing.T, db *gorm.DB) (courseModels.Enrollment, []courseModels.Lesson, []courseModels.MCQQuestion) {
	t.Helper()

	user := models.User{Name: "Asha", Email: "asha@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	published := time.Now().Add(-48 * time.Hour)
	course := courseModels.Course{
		Title:       "Go Fundamentals",
		Category:    "programming",
		IsPublished: true,
		PublishedAt: &published,
	}
	require.NoError(t, db.Create(&course).Error)

	lessons := []courseModels.Lesson{
		{CourseID: course.ID, Title: "Intro", OrderIndex: 1, DurationSeconds: 100},
		{CourseID: course.ID, Title: "Types", OrderIndex: 2, DurationSeconds: 100, HasQuiz: true},
	}
	require.NoError(t, db.Create(&lessons).Error)

	questions := []courseModels.MCQQuestion{
		{LessonID: lessons[1].ID, CourseID: course.ID, QuestionText: "q1", CorrectOption: "A"},
		{LessonID: lessons[1].ID, CourseID: course.ID, QuestionText: "q2", CorrectOption: "C"},
	}
	require.NoError(t, db.Create(&questions).Error)

	enrollment := courseModels.Enrollment{UserID: user.ID, CourseID: course.ID}
	require.NoError(t, db.Create(&enrollment).Error)

	return enrollment, lessons, questions
}

func TestRecordWatchSegmentCreatesAndMergesProgress(t *testing.T) {
	db := openTestDB(t)
	s := New(db)
	enrollment, lessons, _ := seedCourse(t, db)

	_, err := s.RecordWatchSegment(enrollment.ID, lessons[0].ID, 0, 30)
	require.NoError(t, err)
	summary, err := s.RecordWatchSegment(enrollment.ID, lessons[0].ID, 20, 60)
	require.NoError(t, err)

	var progress courseModels.LessonProgress
	require.NoError(t, db.Where("enrollment_id = ? AND lesson_id = ?", enrollment.ID, lessons[0].ID).
		First(&progress).Error)

	assert.Equal(t, 60.0, progress.WatchTime)
	assert.Len(t, progress.WatchedRanges, 1)
	assert.True(t, progress.QuizUnlocked)
	assert.False(t, progress.IsCompleted)
	assert.True(t, summary.QuizUnlocked)

	// 60 of 200 course seconds watched.
	assert.Equal(t, 30.0, summary.VideoProgress)
}

func TestRecordWatchSegmentIdempotentReplay(t *testing.T) {
	db := openTestDB(t)
	s := New(db)
	enrollment, lessons, _ := seedCourse(t, db)

	first, err := s.RecordWatchSegment(enrollment.ID, lessons[0].ID, 0, 50)
	require.NoError(t, err)
	replay, err := s.RecordWatchSegment(enrollment.ID, lessons[0].ID, 0, 50)
	require.NoError(t, err)

	assert.Equal(t, first, replay)

	var count int64
	db.Model(&courseModels.LessonProgress{}).Where("enrollment_id = ?", enrollment.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRecordWatchSegmentUnknownLesson(t *testing.T) {
	db := openTestDB(t)
	s := New(db)
	enrollment, _, _ := seedCourse(t, db)

	_, err := s.RecordWatchSegment(enrollment.ID, 9999, 0, 10)
	assert.ErrorIs(t, err, ErrLessonNotFound)

	_, err = s.RecordWatchSegment(9999, 1, 0, 10)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestMasteryProgressionToCertificate(t *testing.T) {
	db := openTestDB(t)
	s := New(db)
	enrollment, lessons, questions := seedCourse(t, db)

	// Watch both lessons end to end.
	_, err := s.RecordWatchSegment(enrollment.ID, lessons[0].ID, 0, 100)
	require.NoError(t, err)
	summary, err := s.RecordWatchSegment(enrollment.ID, lessons[1].ID, 0, 100)
	require.NoError(t, err)

	assert.Equal(t, 100.0, summary.VideoProgress)
	assert.Equal(t, 0.0, summary.QuizScore)
	// 100*0.6 + 0*0.4
	assert.Equal(t, 60.0, summary.MasteryScore)
	assert.False(t, summary.CertificateUnlocked)

	// One of two questions right: quiz 50, mastery 80, certificate unlocks.
	_, summary, err = s.SubmitAnswer(enrollment.ID, questions[0].ID, "A")
	require.NoError(t, err)
	assert.Equal(t, 50.0, summary.QuizScore)
	assert.Equal(t, 80.0, summary.MasteryScore)
	assert.True(t, summary.CertificateUnlocked)

	var refreshed courseModels.Enrollment
	require.NoError(t, db.First(&refreshed, enrollment.ID).Error)
	assert.True(t, refreshed.CertificateUnlocked)
	assert.True(t, refreshed.IsCompleted)
	assert.Equal(t, courseModels.StatusCompleted, refreshed.Status)
	require.NotNil(t, refreshed.CompletedAt)

	var certCount int64
	db.Model(&courseModels.Certificate{}).Where("enrollment_id = ?", enrollment.ID).Count(&certCount)
	assert.Equal(t, int64(1), certCount)
}

func TestCertificateIssuedExactlyOnce(t *testing.T) {
	db := openTestDB(t)
	s := New(db)
	enrollment, lessons, questions := seedCourse(t, db)

	for _, lesson := range lessons {
		_, err := s.RecordWatchSegment(enrollment.ID, lesson.ID, 0, 100)
		require.NoError(t, err)
	}
	_, _, err := s.SubmitAnswer(enrollment.ID, questions[0].ID, "A")
	require.NoError(t, err)
	_, _, err = s.SubmitAnswer(enrollment.ID, questions[1].ID, "C")
	require.NoError(t, err)

	// Repeated recalculations must not mint more certificates.
	_, err = s.RecalculateMastery(enrollment.ID)
	require.NoError(t, err)
	_, err = s.RecalculateMastery(enrollment.ID)
	require.NoError(t, err)

	var certCount int64
	db.Model(&courseModels.Certificate{}).Where("enrollment_id = ?", enrollment.ID).Count(&certCount)
	assert.Equal(t, int64(1), certCount)
}

func TestMasteryLatchSurvivesWorseInputs(t *testing.T) {
	db := openTestDB(t)
	s := New(db)
	enrollment, lessons, questions := seedCourse(t, db)

	for _, lesson := range lessons {
		_, err := s.RecordWatchSegment(enrollment.ID, lesson.ID, 0, 100)
		require.NoError(t, err)
	}
	_, summary, err := s.SubmitAnswer(enrollment.ID, questions[0].ID, "A")
	require.NoError(t, err)
	require.True(t, summary.CertificateUnlocked)
	scoreBefore := summary.MasteryScore

	// Changing the answer to a wrong option lowers the raw quiz score, but
	// the persisted mastery and certificate latch must not regress.
	_, summary, err = s.SubmitAnswer(enrollment.ID, questions[0].ID, "B")
	require.NoError(t, err)

	assert.Equal(t, 0.0, summary.QuizScore)
	assert.GreaterOrEqual(t, summary.MasteryScore, scoreBefore)
	assert.True(t, summary.CertificateUnlocked)
}

func TestSubmitAnswerGradesAndReplaces(t *testing.T) {
	db := openTestDB(t)
	s := New(db)
	enrollment, _, questions := seedCourse(t, db)

	attempt, _, err := s.SubmitAnswer(enrollment.ID, questions[0].ID, "B")
	require.NoError(t, err)
	assert.False(t, attempt.IsCorrect)

	attempt, summary, err := s.SubmitAnswer(enrollment.ID, questions[0].ID, "A")
	require.NoError(t, err)
	assert.True(t, attempt.IsCorrect)
	assert.Equal(t, 50.0, summary.QuizScore)

	var count int64
	db.Model(&courseModels.MCQAttempt{}).Where("enrollment_id = ?", enrollment.ID).Count(&count)
	assert.Equal(t, int64(1), count, "resubmission replaces the attempt row")

	_, _, err = s.SubmitAnswer(enrollment.ID, 9999, "A")
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestRecalculateMasteryReportsAllLessonsCompleted(t *testing.T) {
	db := openTestDB(t)
	s := New(db)
	enrollment, lessons, questions := seedCourse(t, db)

	// One of two lessons done: the flag stays down.
	_, err := s.RecordWatchSegment(enrollment.ID, lessons[0].ID, 0, 100)
	require.NoError(t, err)
	summary, err := s.RecalculateMastery(enrollment.ID)
	require.NoError(t, err)
	assert.False(t, summary.LessonCompleted)

	_, err = s.RecordWatchSegment(enrollment.ID, lessons[1].ID, 0, 100)
	require.NoError(t, err)

	summary, err = s.RecalculateMastery(enrollment.ID)
	require.NoError(t, err)
	assert.True(t, summary.LessonCompleted)

	// Answer submission reports the same course-wide flag.
	_, summary, err = s.SubmitAnswer(enrollment.ID, questions[0].ID, "A")
	require.NoError(t, err)
	assert.True(t, summary.LessonCompleted)
}

func TestZeroDurationCourseTriviallyComplete(t *testing.T) {
	db := openTestDB(t)
	s := New(db)

	user := models.User{Name: "Noor", Email: "noor@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	course := courseModels.Course{Title: "Empty", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)
	enrollment := courseModels.Enrollment{UserID: user.ID, CourseID: course.ID}
	require.NoError(t, db.Create(&enrollment).Error)

	summary, err := s.RecalculateMastery(enrollment.ID)
	require.NoError(t, err)

	assert.Equal(t, 100.0, summary.VideoProgress)
	assert.Equal(t, 100.0, summary.QuizScore)
	assert.Equal(t, 100.0, summary.MasteryScore)
	assert.True(t, summary.CertificateUnlocked)
}
