package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mentorquest/api/database"
	"github.com/mentorquest/api/models"
	"github.com/mentorquest/api/services"
	"github.com/mentorquest/api/utils"
)

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Avatar   *string `json:"avatar"`
}

func GetProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var user models.User
	err := database.DB.
		Preload("Achievements").
		Preload("Inventory").
		Preload("EquippedEffects").
		Preload("ReceivedGifts").
		First(&user, "id = ?", userID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(user)
}

func UpdateProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Username != nil && *req.Username != user.Username {
		if !utils.ValidateUsername(*req.Username) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username must be 3-20 characters of letters, numbers, or underscores"})
		}
		var count int64
		database.DB.Model(&models.User{}).
			Where("LOWER(username) = ? AND id != ?", strings.ToLower(*req.Username), user.ID).
			Count(&count)
		if count > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Username already taken"})
		}
		user.Username = *req.Username
	}

	database.DB.Save(&user)

	return c.JSON(user)
}

func GetMyProgress(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var user models.User
	if err := database.DB.Preload("Achievements").First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var completedSessions int64
	database.DB.Model(&models.Session{}).
		Where("student_id = ? AND completed = ?", userID, true).
		Count(&completedSessions)

	return c.JSON(fiber.Map{
		"level":               user.Level,
		"xp":                  user.XP,
		"coins":               user.Coins,
		"xp_into_level":       user.XP % services.XPPerLevel,
		"xp_for_next_level":   services.XPPerLevel,
		"achievements_earned": len(user.Achievements),
		"completed_sessions":  completedSessions,
	})
}
