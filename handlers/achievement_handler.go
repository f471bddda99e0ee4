package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mentorquest/api/database"
	"github.com/mentorquest/api/models"
	"github.com/mentorquest/api/services"
)

type AchievementRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon" validate:"required"`
	XPReward    int    `json:"xp_reward" validate:"gte=0"`
	CoinReward  int    `json:"coin_reward" validate:"gte=0"`
	Rarity      string `json:"rarity" validate:"required,oneof=common rare epic legendary"`
	Type        string `json:"type" validate:"omitempty,oneof=manual xp coins"`
	TargetValue *int   `json:"target_value" validate:"omitempty,gt=0"`
}

// ListAchievements returns the built-in catalog plus every mentor-authored
// achievement. Authored achievements are globally visible to students no
// matter which mentor created them.
func ListAchievements(c *fiber.Ctx) error {
	var achievements []models.Achievement
	database.DB.Order("created_at asc").Find(&achievements)
	return c.JSON(achievements)
}

func ListMyAuthoredAchievements(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	var achievements []models.Achievement
	database.DB.Where("created_by = ?", mentorID).Order("created_at asc").Find(&achievements)
	return c.JSON(achievements)
}

func CreateAchievement(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	var req AchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	achievementType := req.Type
	if achievementType == "" {
		achievementType = models.AchievementTypeManual
	}
	if achievementType != models.AchievementTypeManual && req.TargetValue == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Target value is required for automatic achievements"})
	}
	if achievementType == models.AchievementTypeManual {
		req.TargetValue = nil
	}

	achievement := models.Achievement{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		XPReward:    req.XPReward,
		CoinReward:  req.CoinReward,
		Rarity:      req.Rarity,
		Type:        achievementType,
		TargetValue: req.TargetValue,
		CreatedBy:   &mentorID,
	}

	if err := database.DB.Create(&achievement).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create achievement"})
	}

	if achievement.Type != models.AchievementTypeManual {
		go services.EvaluateAllStudents()
	}

	return c.Status(fiber.StatusCreated).JSON(achievement)
}

func UpdateAchievement(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	achievementID := c.Params("achievementId")
	var achievement models.Achievement
	err := database.DB.Where("id = ? AND created_by = ?", achievementID, mentorID).
		First(&achievement).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Achievement not found"})
	}

	var req AchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	achievementType := req.Type
	if achievementType == "" {
		achievementType = models.AchievementTypeManual
	}
	if achievementType != models.AchievementTypeManual && req.TargetValue == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Target value is required for automatic achievements"})
	}
	if achievementType == models.AchievementTypeManual {
		req.TargetValue = nil
	}

	achievement.Name = req.Name
	achievement.Description = req.Description
	achievement.Icon = req.Icon
	achievement.XPReward = req.XPReward
	achievement.CoinReward = req.CoinReward
	achievement.Rarity = req.Rarity
	achievement.Type = achievementType
	achievement.TargetValue = req.TargetValue
	database.DB.Save(&achievement)

	if achievement.Type != models.AchievementTypeManual {
		go services.EvaluateAllStudents()
	}

	return c.JSON(achievement)
}

// DeleteAchievement removes the definition only. Students who already hold
// the achievement keep the xp and coins it granted; nothing is revoked.
func DeleteAchievement(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	achievementID := c.Params("achievementId")
	result := database.DB.Where("id = ? AND created_by = ?", achievementID, mentorID).
		Delete(&models.Achievement{})

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete achievement"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Achievement not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type AwardRequest struct {
	StudentIDs []string `json:"student_ids" validate:"required,min=1,dive,uuid"`
}

// AwardAchievementManually grants an achievement to the selected students.
// Students who already hold it land in "skipped", so re-running the same
// award is a no-op for them; students not linked to the mentor land in
// "unlinked".
func AwardAchievementManually(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	achievementID, err := uuid.Parse(c.Params("achievementId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid achievement ID"})
	}

	var req AwardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var mentor models.User
	if err := database.DB.Preload("Students").First(&mentor, "id = ?", mentorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	linked := make(map[uuid.UUID]bool, len(mentor.Students))
	for _, student := range mentor.Students {
		linked[student.ID] = true
	}

	awarded := []string{}
	skipped := []string{}
	unlinked := []string{}
	for _, raw := range req.StudentIDs {
		studentID, _ := uuid.Parse(raw)
		if !linked[studentID] {
			unlinked = append(unlinked, raw)
			continue
		}

		ok, err := services.AwardAchievement(studentID, achievementID)
		if err != nil {
			if err == services.ErrAchievementNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Achievement not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to award achievement"})
		}
		if !ok {
			skipped = append(skipped, raw)
			continue
		}

		awarded = append(awarded, raw)
		if err := services.EvaluateAutoAchievements(studentID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to evaluate achievements"})
		}
	}

	return c.JSON(fiber.Map{"awarded": awarded, "skipped": skipped, "unlinked": unlinked})
}

func GetMyAchievements(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var user models.User
	if err := database.DB.Preload("Achievements").First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(user.Achievements)
}

type LeaderboardUser struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
	Avatar   string `json:"avatar"`
}

func GetLeaderboard(c *fiber.Ctx) error {
	var leaderboard []LeaderboardUser

	err := database.DB.Model(&models.User{}).
		Select("name", "username", "level", "xp", "avatar").
		Where("role = ?", models.RoleStudent).
		Order("xp desc").
		Limit(10).
		Find(&leaderboard).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve leaderboard"})
	}

	return c.JSON(leaderboard)
}
