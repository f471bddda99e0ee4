package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/mentorquest/api/models"
)

func TestRegisterUser(t *testing.T) {
	db, app := setupTestApp(t)

	status, body := doJSON(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "secret123",
		"role":     "student",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %v)", status, body)
	}
	if body["token"] == "" {
		t.Error("expected a token in the response")
	}

	var user models.User
	if err := db.First(&user, "email = ?", "ada@example.com").Error; err != nil {
		t.Fatalf("registered user not found: %v", err)
	}
	if user.Coins != models.StartingCoins {
		t.Errorf("coins = %d, want %d", user.Coins, models.StartingCoins)
	}
	if user.InviteCode == nil || len(*user.InviteCode) != 5 {
		t.Errorf("invite code = %v, want 5 digits", user.InviteCode)
	}
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	_, app := setupTestApp(t)

	payload := fiber.Map{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "secret123",
		"role":     "student",
	}
	status, body := doJSON(t, app, "POST", "/api/v1/auth/register", "", payload)
	if status != fiber.StatusCreated {
		t.Fatalf("first register: status = %d, want 201 (body %v)", status, body)
	}

	payload["name"] = "Another Ada"
	status, body = doJSON(t, app, "POST", "/api/v1/auth/register", "", payload)
	if status != fiber.StatusConflict {
		t.Fatalf("duplicate register: status = %d, want 409 (body %v)", status, body)
	}
}

func TestLoginUserWrongPassword(t *testing.T) {
	_, app := setupTestApp(t)

	status, _ := doJSON(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "secret123",
		"role":     "student",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("register: status = %d, want 201", status)
	}

	status, _ = doJSON(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	if status != fiber.StatusUnauthorized {
		t.Fatalf("login: status = %d, want 401", status)
	}

	status, body := doJSON(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email":    "ada@example.com",
		"password": "secret123",
	})
	if status != fiber.StatusOK {
		t.Fatalf("login: status = %d, want 200 (body %v)", status, body)
	}
	if body["token"] == "" {
		t.Error("expected a token in the response")
	}
}
