package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mentorquest/api/database"
	"github.com/mentorquest/api/models"
	"github.com/mentorquest/api/services"
)

type CreateSessionRequest struct {
	StudentID   string `json:"student_id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ScheduledAt string `json:"scheduled_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Duration    int    `json:"duration" validate:"required,gt=0"`
}

func CreateSession(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	studentID, _ := uuid.Parse(req.StudentID)
	var mentor models.User
	if err := database.DB.Preload("Students").First(&mentor, "id = ?", mentorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	linked := false
	for _, student := range mentor.Students {
		if student.ID == studentID {
			linked = true
			break
		}
	}
	if !linked {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Student is not linked to you"})
	}

	scheduledAt, _ := time.Parse(time.RFC3339, req.ScheduledAt)
	session := models.Session{
		StudentID:       studentID,
		MentorID:        mentorID,
		Title:           req.Title,
		Description:     req.Description,
		ScheduledAt:     scheduledAt,
		DurationMinutes: req.Duration,
	}

	if err := database.DB.Create(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create session"})
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

func ListMySessions(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	role := claims["role"].(string)

	query := database.DB.Order("scheduled_at desc")
	if role == models.RoleMentor {
		query = query.Where("mentor_id = ?", userID)
	} else {
		query = query.Where("student_id = ?", userID)
	}

	var sessions []models.Session
	query.Find(&sessions)
	return c.JSON(sessions)
}

// CompleteSession marks the session done and grants the student the session
// completion xp.
func CompleteSession(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	sessionID := c.Params("sessionId")
	var session models.Session
	err := database.DB.Where("id = ? AND mentor_id = ?", sessionID, mentorID).First(&session).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}
	if session.Completed {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Session is already completed"})
	}

	now := time.Now()
	session.Completed = true
	session.CompletedAt = &now
	if err := database.DB.Save(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete session"})
	}

	go services.AwardRewardsForSessionCompletion(session.StudentID)

	return c.JSON(session)
}

func DeleteSession(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	sessionID := c.Params("sessionId")
	result := database.DB.Where("id = ? AND mentor_id = ? AND completed = ?", sessionID, mentorID, false).
		Delete(&models.Session{})

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete session"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
