package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mentorquest/api/handlers"
	"github.com/mentorquest/api/middleware"
)

func AchievementRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	achievements := api.Group("/achievements", middleware.Protected())
	achievements.Get("", handlers.ListAchievements)
	achievements.Get("/me", handlers.GetMyAchievements)

	authored := api.Group("/achievements", middleware.Protected(), middleware.MentorRequired())
	authored.Get("/authored", handlers.ListMyAuthoredAchievements)
	authored.Post("", handlers.CreateAchievement)
	authored.Put("/:achievementId", handlers.UpdateAchievement)
	authored.Delete("/:achievementId", handlers.DeleteAchievement)
	authored.Post("/:achievementId/award", handlers.AwardAchievementManually)
}
