package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mentorquest/api/handlers"
	"github.com/mentorquest/api/middleware"
)

func ShopRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/shop/items", handlers.ListShopItems)

	shop := api.Group("/shop", middleware.Protected())
	shop.Post("/purchase", handlers.PurchaseItem)
	shop.Post("/equip", handlers.EquipEffect)
	shop.Post("/unequip", handlers.UnequipEffect)

	gifts := api.Group("/gifts", middleware.Protected())
	gifts.Get("/me", handlers.ListMyGifts)
	gifts.Get("/tiers", handlers.ListGiftTiers)
	gifts.Post("/:giftId/sell", handlers.SellGift)
}
