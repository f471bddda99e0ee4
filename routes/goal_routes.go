package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mentorquest/api/handlers"
	"github.com/mentorquest/api/middleware"
)

func GoalRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	goals := api.Group("/goals", middleware.Protected(), middleware.StudentRequired())
	goals.Get("", handlers.ListMyGoals)
	goals.Post("", handlers.CreateGoal)
	goals.Put("/:goalId", handlers.UpdateGoal)
	goals.Delete("/:goalId", handlers.DeleteGoal)
}
