package database

import (
	"fmt"
	"log"

	config "github.com/mentorquest/api/configs"
	"github.com/mentorquest/api/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
		TranslateError:                           true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
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
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// Demo accounts shipped with an early build. Purging them is a one-time data
// migration, matched by username or display name since their ids predate the
// uuid scheme.
var legacyUsernames = []string{"alice1234", "bobsmith567", "caroldavis89"}
var legacyNames = []string{"Alice Johnson", "Bob Smith", "Carol Davis"}

func PurgeLegacyAccounts() {
	result := DB.Where("username IN ?", legacyUsernames).
		Or("name IN ?", legacyNames).
		Delete(&models.User{})
	if result.Error != nil {
		log.Printf("🔥 Failed to purge legacy accounts: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("✅ Purged %d legacy seed account(s)", result.RowsAffected)
	}
}
