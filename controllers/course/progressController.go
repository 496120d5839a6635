package controllers

import (
	"errors"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	"learnhub/store"

	"github.com/gofiber/fiber/v2"
)

// RecordWatchSegment folds one player-reported (start, end) interval into the
// lesson's watch state and returns the refreshed mastery summary. Invoked on
// every player progress tick or pause.
func RecordWatchSegment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)
	segment := c.Locals("validatedSegment").(*struct {
		Start float64 `json:"start" validate:"min=0"`
		End   float64 `json:"end" validate:"min=0"`
	})

	s := store.New(database.Database.Db)

	enrollment, err := s.EnrollmentByUserAndCourse(userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	summary, err := s.RecordWatchSegment(enrollment.ID, uint(lessonID), segment.Start, segment.End)
	if errors.Is(err, store.ErrLessonNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record watch segment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Watch segment recorded!", summary)
}

// RecalculateMastery refreshes the enrollment's mastery aggregate. Invoked
// on page load to bring the dashboard up to date.
func RecalculateMastery(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	s := store.New(database.Database.Db)

	enrollment, err := s.EnrollmentByUserAndCourse(userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	summary, err := s.RecalculateMastery(enrollment.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to recalculate mastery!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mastery recalculated!", summary)
}

// GetUserProgress gets the user's per-lesson and aggregate progress in a course
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var lessons []courseModels.Lesson
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&lessons)

	var progressRows []courseModels.LessonProgress
	database.Database.Db.Where("enrollment_id = ?", enrollment.ID).Find(&progressRows)

	progressByLesson := make(map[uint]courseModels.LessonProgress, len(progressRows))
	for _, p := range progressRows {
		progressByLesson[p.LessonID] = p
	}

	type LessonWithProgress struct {
		Lesson       courseModels.Lesson `json:"lesson"`
		WatchTime    float64             `json:"watch_time"`
		MaxPosition  float64             `json:"max_position"`
		QuizUnlocked bool                `json:"quiz_unlocked"`
		IsCompleted  bool                `json:"is_completed"`
	}

	lessonProgress := make([]LessonWithProgress, len(lessons))
	for i, lesson := range lessons {
		entry := LessonWithProgress{Lesson: lesson}
		if p, ok := progressByLesson[lesson.ID]; ok {
			entry.WatchTime = p.WatchTime
			entry.MaxPosition = p.MaxPosition
			entry.QuizUnlocked = p.QuizUnlocked
			entry.IsCompleted = p.IsCompleted
		}
		lessonProgress[i] = entry
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":      enrollment,
		"lesson_progress": lessonProgress,
	})
}
