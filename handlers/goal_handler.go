package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mentorquest/api/database"
	"github.com/mentorquest/api/models"
)

type GoalRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	TargetValue int    `json:"target_value" validate:"required,gt=0"`
}

func CreateGoal(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	var req GoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	goal := models.Goal{
		StudentID:   studentID,
		Title:       req.Title,
		Description: req.Description,
		TargetValue: req.TargetValue,
	}

	if err := database.DB.Create(&goal).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create goal"})
	}

	return c.Status(fiber.StatusCreated).JSON(goal)
}

func ListMyGoals(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	var goals []models.Goal
	database.DB.Where("student_id = ?", studentID).Order("created_at desc").Find(&goals)
	return c.JSON(goals)
}

type UpdateGoalRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	TargetValue  *int    `json:"target_value" validate:"omitempty,gt=0"`
	CurrentValue *int    `json:"current_value" validate:"omitempty,gte=0"`
}

func UpdateGoal(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	goalID := c.Params("goalId")
	var goal models.Goal
	err := database.DB.Where("id = ? AND student_id = ?", goalID, studentID).First(&goal).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Goal not found"})
	}

	var req UpdateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.TargetValue != nil {
		goal.TargetValue = *req.TargetValue
	}
	if req.CurrentValue != nil {
		goal.CurrentValue = *req.CurrentValue
	}

	if !goal.Completed && goal.CurrentValue >= goal.TargetValue {
		now := time.Now()
		goal.Completed = true
		goal.CompletedAt = &now
	}

	database.DB.Save(&goal)
	return c.JSON(goal)
}

func DeleteGoal(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	goalID := c.Params("goalId")
	result := database.DB.Where("id = ? AND student_id = ?", goalID, studentID).
		Delete(&models.Goal{})

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete goal"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Goal not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
