package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mentorquest/api/database"
	"github.com/mentorquest/api/models"
	"github.com/mentorquest/api/services"
)

func ListShopItems(c *fiber.Ctx) error {
	query := database.DB.Order("price asc")
	if itemType := c.Query("type"); itemType != "" {
		query = query.Where("type = ?", itemType)
	}

	var items []models.ShopItem
	query.Find(&items)
	return c.JSON(items)
}

type PurchaseRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

func PurchaseItem(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	switch err := services.PurchaseItem(userID, req.ItemID); err {
	case nil:
	case services.ErrItemNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	case services.ErrAlreadyOwned:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Item already owned"})
	case services.ErrInsufficientCoins:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Not enough coins"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete purchase"})
	}

	var user models.User
	database.DB.Preload("Inventory").First(&user, "id = ?", userID)
	return c.JSON(user)
}

type EquipRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

func EquipEffect(c *fiber.Ctx) error {
	return toggleEffect(c, services.EquipEffect)
}

func UnequipEffect(c *fiber.Ctx) error {
	return toggleEffect(c, services.UnequipEffect)
}

func toggleEffect(c *fiber.Ctx, apply func(uuid.UUID, string) error) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req EquipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	switch err := apply(userID, req.ItemID); err {
	case nil:
	case services.ErrNotOwned:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Item not in inventory"})
	case services.ErrNotNameEffect:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only name effects can be equipped"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update equipped effects"})
	}

	var user models.User
	database.DB.Preload("EquippedEffects").First(&user, "id = ?", userID)
	return c.JSON(user.EquippedEffects)
}

func ListMyGifts(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var gifts []models.ReceivedGift
	database.DB.Where("owner_id = ?", userID).Order("received_at desc").Find(&gifts)
	return c.JSON(gifts)
}

func SellGift(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	giftID, err := uuid.Parse(c.Params("giftId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid gift ID"})
	}

	credited, err := services.SellGift(userID, giftID)
	if err != nil {
		if err == services.ErrGiftNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Gift not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to sell gift"})
	}

	return c.JSON(fiber.Map{"credited": credited})
}
