package controllers

import (
	"learnhub/database"
	"learnhub/engine"
	"learnhub/middleware"
	courseModels "learnhub/models/course"
	"learnhub/store"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
)

// GetTrendingCourses serves the gravity-ranked published courses from the
// ranking cache.
func GetTrendingCourses(c *fiber.Ctx) error {
	limit := c.Locals("rankingLimit").(int)

	trending := utils.Rankings.Trending(limit)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Trending courses fetched successfully!", trending)
}

// GetRecommendedCourses serves per-learner recommendations. Anonymous
// callers and learners with no enrollment history get the top-rated
// popularity fallback.
func GetRecommendedCourses(c *fiber.Ctx) error {
	limit := c.Locals("rankingLimit").(int)

	userID, authenticated := c.Locals("userId").(uint)
	if !authenticated {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Recommended courses fetched successfully!",
			utils.Rankings.TopRated(limit))
	}

	s := store.New(database.Database.Db)

	enrolledCourses, err := s.EnrolledCourses(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch recommendations!", nil)
	}
	if len(enrolledCourses) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Recommended courses fetched successfully!",
			utils.Rankings.TopRated(limit))
	}

	profile := engine.BuildProfile(profileSignals(enrolledCourses))

	enrolled, err := s.EnrolledCourseIDs(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch recommendations!", nil)
	}

	signals, _ := utils.Rankings.Snapshot()
	candidates := make([]engine.CourseSignals, 0, len(signals))
	for _, sig := range signals {
		if _, ok := enrolled[sig.ID]; ok {
			continue
		}
		candidates = append(candidates, sig)
	}

	ranked := engine.Recommend(profile, candidates, limit)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Recommended courses fetched successfully!",
		utils.Rankings.Resolve(ranked))
}

// profileSignals projects enrolled course rows onto the fields the profile
// builder reads.
func profileSignals(courses []courseModels.Course) []engine.CourseSignals {
	signals := make([]engine.CourseSignals, len(courses))
	for i, c := range courses {
		signals[i] = engine.CourseSignals{
			ID:       c.ID,
			Category: c.Category,
			Tags:     c.LearningOutcomes,
		}
	}
	return signals
}
