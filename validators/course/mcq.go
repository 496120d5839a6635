package courseValidator

import (
	"learnhub/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SubmitMCQ validates the course/lesson/question path params and the
// selected option (one of A-D, case-insensitive).
func SubmitMCQ() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := positiveParam(c, "course_id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		lessonID, err := positiveParam(c, "lesson_id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}
		questionID, err := positiveParam(c, "question_id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Question ID!", nil)
		}

		reqData := new(struct {
			Option string `json:"option" validate:"required,oneof=A B C D a b c d"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			if _, ok := err.(validator.ValidationErrors); ok {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"option": "Option must be one of A, B, C or D!",
				})
			}
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("lessonID", lessonID)
		c.Locals("questionID", questionID)
		c.Locals("selectedOption", reqData.Option)
		return c.Next()
	}
}
