package controllers

import (
	"time"

	"learnhub/database"
	"learnhub/middleware"
	courseModels "learnhub/models/course"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// AdminGetStats returns platform engagement counters for the admin dashboard:
// totals plus this-week and this-month enrollment and completion activity,
// and the current trending list.
func AdminGetStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalCourses int64
	db.Model(&courseModels.Course{}).Where("is_published = ? AND is_deleted = ?", true, false).Count(&totalCourses)

	var totalEnrollments int64
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)

	var totalCompletions int64
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ? AND is_completed = ?", false, true).Count(&totalCompletions)

	var certificatesIssued int64
	db.Model(&courseModels.Certificate{}).Where("is_deleted = ?", false).Count(&certificatesIssued)

	weekStart := now.BeginningOfWeek()
	monthStart := now.BeginningOfMonth()

	stats := fiber.Map{
		"total_courses":       totalCourses,
		"total_enrollments":   totalEnrollments,
		"total_completions":   totalCompletions,
		"certificates_issued": certificatesIssued,
		"this_week":           windowStats(weekStart),
		"this_month":          windowStats(monthStart),
		"trending":            utils.Rankings.Trending(5),
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", stats)
}

func windowStats(since time.Time) fiber.Map {
	db := database.Database.Db

	var enrollments int64
	db.Model(&courseModels.Enrollment{}).
		Where("is_deleted = ? AND created_at >= ?", false, since).
		Count(&enrollments)

	var completions int64
	db.Model(&courseModels.Enrollment{}).
		Where("is_deleted = ? AND is_completed = ? AND completed_at >= ?", false, true, since).
		Count(&completions)

	return fiber.Map{
		"enrollments": enrollments,
		"completions": completions,
	}
}
