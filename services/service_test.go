package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/mentorquest/api/database"
	"github.com/mentorquest/api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the package-global connection at a fresh in-memory
// database scoped to the running test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, role string, coins int) *models.User {
	t.Helper()

	user := models.User{
		Name:     name,
		Username: fmt.Sprintf("%s%d", name, len(name)*1111),
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed",
		Role:     role,
		Level:    1,
		Coins:    coins,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return &user
}

func createTestAchievement(t *testing.T, db *gorm.DB, name, achType string, target, xp, coins int) *models.Achievement {
	t.Helper()

	achievement := models.Achievement{
		Name:        name,
		Description: "test achievement",
		Icon:        "⭐",
		XPReward:    xp,
		CoinReward:  coins,
		Rarity:      models.RarityCommon,
		Type:        achType,
	}
	if achType != models.AchievementTypeManual {
		achievement.TargetValue = &target
	}
	if err := db.Create(&achievement).Error; err != nil {
		t.Fatalf("failed to create achievement %s: %v", name, err)
	}
	return &achievement
}

func reloadUser(t *testing.T, db *gorm.DB, id uuid.UUID) *models.User {
	t.Helper()

	var user models.User
	if err := db.Preload("Achievements").First(&user, "id = ?", id).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	return &user
}
