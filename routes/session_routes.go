package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mentorquest/api/handlers"
	"github.com/mentorquest/api/middleware"
)

func SessionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	sessions := api.Group("/sessions", middleware.Protected())
	sessions.Get("", handlers.ListMySessions)

	mentorSessions := api.Group("/sessions", middleware.Protected(), middleware.MentorRequired())
	mentorSessions.Post("", handlers.CreateSession)
	mentorSessions.Post("/:sessionId/complete", handlers.CompleteSession)
	mentorSessions.Delete("/:sessionId", handlers.DeleteSession)
}
