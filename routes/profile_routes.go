package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mentorquest/api/handlers"
	"github.com/mentorquest/api/middleware"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile/me", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Put("", handlers.UpdateProfile)
	profile.Get("/progress", handlers.GetMyProgress)

	api.Get("/leaderboard", handlers.GetLeaderboard)
	api.Get("/users/lookup", middleware.Protected(), handlers.LookupUser)
}
