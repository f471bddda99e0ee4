package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mentorquest/api/database"
	"github.com/mentorquest/api/models"
	"gorm.io/gorm"
)

type AddStudentRequest struct {
	InviteCode string `json:"invite_code" validate:"required,len=5,numeric"`
}

// AddStudent links a student to the mentor by invite code. "Code not found"
// and "already linked" are distinct failures so the client can show the
// right status.
func AddStudent(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	var req AddStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var student models.User
	err := database.DB.
		Where("invite_code = ? AND role = ?", req.InviteCode, models.RoleStudent).
		First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invalid invite code"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	var mentor models.User
	if err := database.DB.Preload("Students").First(&mentor, "id = ?", mentorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	for _, linked := range mentor.Students {
		if linked.ID == student.ID {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Student is already linked"})
		}
	}

	if err := database.DB.Model(&mentor).Association("Students").Append(&student); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to link student"})
	}

	return c.Status(fiber.StatusCreated).JSON(student)
}

// RemoveStudent drops the link only; the student's own record and history
// are untouched.
func RemoveStudent(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student ID"})
	}

	var mentor models.User
	if err := database.DB.First(&mentor, "id = ?", mentorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	student := models.User{ID: studentID}
	if err := database.DB.Model(&mentor).Association("Students").Delete(&student); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to unlink student"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func ListMyStudents(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	var mentor models.User
	err := database.DB.
		Preload("Students").
		Preload("Students.Achievements").
		First(&mentor, "id = ?", mentorID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(mentor.Students)
}
