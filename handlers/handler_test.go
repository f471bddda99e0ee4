package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/mentorquest/api/database"
	"github.com/mentorquest/api/models"
	"github.com/mentorquest/api/routes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

// setupTestApp wires a fresh in-memory database into the package-global
// connection and mounts the routes on a fiber app driven through app.Test.
func setupTestApp(t *testing.T) (*gorm.DB, *fiber.App) {
	t.Helper()
	t.Setenv("JWT_SECRET", testJWTSecret)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Achievement{},
		&models.ShopItem{},
		&models.Goal{},
		&models.Session{},
		&models.Message{},
		&models.Conversation{},
		&models.ReceivedGift{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	database.DB = db
	t.Cleanup(func() {
		sqlDB.Close()
		database.DB = nil
	})

	app := fiber.New()
	routes.AuthRoutes(app)
	routes.AchievementRoutes(app)
	return db, app
}

func createTestUser(t *testing.T, db *gorm.DB, name, role string) *models.User {
	t.Helper()

	user := models.User{
		Name:     name,
		Username: fmt.Sprintf("%s%d", name, len(name)*1111),
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed",
		Role:     role,
		Level:    1,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return &user
}

func signTestToken(t *testing.T, user *models.User) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil && resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return resp.StatusCode, decoded
}

func stringSlice(t *testing.T, body map[string]interface{}, key string) []string {
	t.Helper()

	raw, ok := body[key].([]interface{})
	if !ok {
		t.Fatalf("response field %q = %v, want array", key, body[key])
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, v.(string))
	}
	return out
}
