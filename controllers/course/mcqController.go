package controllers

import (
	"errors"
	"strings"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	"learnhub/store"

	"github.com/gofiber/fiber/v2"
)

// GetLessonQuiz returns the lesson's questions once the learner's coverage
// has unlocked them. Correct options never leave the server.
func GetLessonQuiz(c *fiber.Ctx) error {
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

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var progress courseModels.LessonProgress
	err := database.Database.Db.Where("enrollment_id = ? AND lesson_id = ?", enrollment.ID, lesson.ID).First(&progress).Error
	if err != nil || !progress.QuizUnlocked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Watch at least half the lesson to unlock the quiz!", nil)
	}

	var questions []courseModels.MCQQuestion
	database.Database.Db.Where("lesson_id = ? AND is_deleted = ?", lesson.ID, false).
		Order("order_index asc").Find(&questions)

	var attempts []courseModels.MCQAttempt
	database.Database.Db.Where("enrollment_id = ?", enrollment.ID).Find(&attempts)
	attemptByQuestion := make(map[uint]courseModels.MCQAttempt, len(attempts))
	for _, a := range attempts {
		attemptByQuestion[a.QuestionID] = a
	}

	type QuestionWithAttempt struct {
		courseModels.MCQQuestion
		Attempted      bool   `json:"attempted"`
		SelectedOption string `json:"selected_option,omitempty"`
	}

	result := make([]QuestionWithAttempt, len(questions))
	for i, q := range questions {
		result[i] = QuestionWithAttempt{MCQQuestion: q}
		if a, ok := attemptByQuestion[q.ID]; ok {
			result[i].Attempted = true
			result[i].SelectedOption = a.SelectedOption
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"lesson":    lesson,
		"questions": result,
	})
}

// SubmitMCQAnswer grades an answer and refreshes the enrollment's mastery in
// the same transaction. Resubmitting a question replaces the earlier answer.
func SubmitMCQAnswer(c *fiber.Ctx) error {
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
	questionID := c.Locals("questionID").(int)
	selectedOption := strings.ToUpper(c.Locals("selectedOption").(string))

	s := store.New(database.Database.Db)

	enrollment, err := s.EnrollmentByUserAndCourse(userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	// Quiz gating: the lesson's quiz must be unlocked before answers count.
	var progress courseModels.LessonProgress
	err = database.Database.Db.Where("enrollment_id = ? AND lesson_id = ?", enrollment.ID, lessonID).First(&progress).Error
	if err != nil || !progress.QuizUnlocked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Watch at least half the lesson to unlock the quiz!", nil)
	}

	var question courseModels.MCQQuestion
	if err := database.Database.Db.Where("id = ? AND lesson_id = ? AND is_deleted = ?", questionID, lessonID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	attempt, summary, err := s.SubmitAnswer(enrollment.ID, question.ID, selectedOption)
	if errors.Is(err, store.ErrQuestionNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit answer!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer submitted!", fiber.Map{
		"is_correct":     attempt.IsCorrect,
		"correct_option": question.CorrectOption,
		"explanation":    question.Explanation,
		"mastery":        summary,
	})
}
