package store

import (
	"testing"
	"time"

	"learnhub/models"
	courseModels "learnhub/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCatalog(t *testing.T, db *gorm.DB) (models.User, []courseModels.Course) {
	t.Helper()

	user := models.User{Name: "Ravi", Email: "ravi@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	published := time.Now().Add(-24 * time.Hour)
	courses := []courseModels.Course{
		{Title: "Go Fundamentals", Category: "programming", IsPublished: true, PublishedAt: &published},
		{Title: "Concurrent Go", Category: "programming", IsPublished: true, PublishedAt: &published},
		{Title: "SQL for Analysts", Category: "data", IsPublished: true, PublishedAt: &published},
	}
	require.NoError(t, db.Create(&courses).Error)
	return user, courses
}

func TestEnrolledCourseIDs(t *testing.T) {
	db := openTestDB(t)
	s := New(db)
	user, courses := seedCatalog(t, db)

	enrollments := []courseModels.Enrollment{
		{UserID: user.ID, CourseID: courses[0].ID},
		{UserID: user.ID, CourseID: courses[2].ID},
	}
	require.NoError(t, db.Create(&enrollments).Error)

	ids, err := s.EnrolledCourseIDs(user.ID)
	require.NoError(t, err)

	assert.Len(t, ids, 2)
	assert.Contains(t, ids, courses[0].ID)
	assert.Contains(t, ids, courses[2].ID)
	assert.NotContains(t, ids, courses[1].ID)
}

func TestEnrolledCourseIDsSkipsSoftDeleted(t *testing.T) {
	db := openTestDB(t)
	s := New(db)
	user, courses := seedCatalog(t, db)

	enrollment := courseModels.Enrollment{UserID: user.ID, CourseID: courses[0].ID, IsDeleted: true}
	require.NoError(t, db.Create(&enrollment).Error)

	ids, err := s.EnrolledCourseIDs(user.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestPublishedSignalsCountsEnrollmentsAndCompletions(t *testing.T) {
	db := openTestDB(t)
	s := New(db)
	user, courses := seedCatalog(t, db)

	other := models.User{Name: "Lena", Email: "lena@example.com", Password: "x"}
	require.NoError(t, db.Create(&other).Error)

	enrollments := []courseModels.Enrollment{
		{UserID: user.ID, CourseID: courses[0].ID, IsCompleted: true},
		{UserID: other.ID, CourseID: courses[0].ID},
	}
	require.NoError(t, db.Create(&enrollments).Error)

	signals, err := s.PublishedSignals()
	require.NoError(t, err)
	require.Len(t, signals, 3)

	byID := make(map[uint]int, len(signals))
	for i, sig := range signals {
		byID[sig.ID] = i
	}

	first := signals[byID[courses[0].ID]]
	assert.Equal(t, 2, first.EnrollmentCount)
	assert.Equal(t, 50.0, first.CompletionRate)

	second := signals[byID[courses[1].ID]]
	assert.Equal(t, 0, second.EnrollmentCount)
	assert.Equal(t, 0.0, second.CompletionRate)
}
