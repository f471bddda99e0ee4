package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mentorquest/api/handlers"
	"github.com/mentorquest/api/middleware"
)

func StudentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	students := api.Group("/students", middleware.Protected(), middleware.MentorRequired())
	students.Get("", handlers.ListMyStudents)
	students.Post("", handlers.AddStudent)
	students.Delete("/:studentId", handlers.RemoveStudent)
}
