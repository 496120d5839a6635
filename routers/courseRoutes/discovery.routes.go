package courseRoutes

import (
	controllers "learnhub/controllers/course"
	"learnhub/middleware"
	validators "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupDiscoveryRoutes sets up the ranking surfaces: trending for the
// homepage and per-learner recommendations for the dashboard. Both work
// without a token; recommendations personalize when one is present.
func SetupDiscoveryRoutes(app *fiber.App) {
	discoveryGroup := app.Group("/discovery")

	discoveryGroup.Get("/trending", validators.RankingLimit(), controllers.GetTrendingCourses)
	discoveryGroup.Get("/recommended", middleware.OptionalJWTMiddleware, validators.RankingLimit(), controllers.GetRecommendedCourses)

	adminGroup := app.Group("/admin")
	adminGroup.Get("/stats", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), controllers.AdminGetStats)
}
