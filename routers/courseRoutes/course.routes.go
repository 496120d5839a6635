package courseRoutes

import (
	controllers "learnhub/controllers/course"
	"learnhub/middleware"
	validators "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Course listing and details (published courses)
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.GetCourseDetail(), controllers.GetCourseDetails)
	courseGroup.Post("/:id/like", middleware.JWTMiddleware, validators.LikeCourse(), controllers.LikeCourse)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.EnrollInCourse)

	// Watch-progress tracking
	courseGroup.Post("/:course_id/lesson/:lesson_id/segment", middleware.JWTMiddleware, validators.RecordSegment(), controllers.RecordWatchSegment)
	courseGroup.Post("/:course_id/recalculate", middleware.JWTMiddleware, validators.RecalculateMastery(), controllers.RecalculateMastery)
	courseGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.GetCourseProgress(), controllers.GetUserProgress)

	// Quizzes
	courseGroup.Get("/:course_id/lesson/:lesson_id/quiz", middleware.JWTMiddleware, validators.LessonQuiz(), controllers.GetLessonQuiz)
	courseGroup.Post("/:course_id/lesson/:lesson_id/mcq/:question_id", middleware.JWTMiddleware, validators.SubmitMCQ(), controllers.SubmitMCQAnswer)

	// User enrollments and certificates
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, validators.EnrollmentList(), controllers.GetEnrollments)
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
