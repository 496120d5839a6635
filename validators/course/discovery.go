package courseValidator

import (
	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultRankingLimit = 6
	maxRankingLimit     = 50
)

// RankingLimit validates the optional limit query param for the trending and
// recommendation lists.
func RankingLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		limit := defaultRankingLimit
		if reqData.Limit != nil {
			if *reqData.Limit < 1 || *reqData.Limit > maxRankingLimit {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"limit": "Limit must be between 1 and 50!",
				})
			}
			limit = *reqData.Limit
		}

		c.Locals("rankingLimit", limit)
		return c.Next()
	}
}
