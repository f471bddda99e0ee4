package services

import (
	"log"

	"github.com/google/uuid"
	"github.com/mentorquest/api/database"
	"github.com/mentorquest/api/models"
	"gorm.io/gorm"
)

const xpForSessionCompletion = 50

// AwardRewardsForSessionCompletion grants the flat session xp to the student
// and re-runs auto achievement evaluation with the new totals.
func AwardRewardsForSessionCompletion(studentID uuid.UUID) {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var student models.User
		if err := tx.First(&student, "id = ?", studentID).Error; err != nil {
			return err
		}

		student.XP += xpForSessionCompletion
		student.Level = LevelForXP(student.XP)
		return tx.Save(&student).Error
	})
	if err != nil {
		log.Printf("🔥 Failed to award session rewards to student %s: %v", studentID, err)
		return
	}

	if err := EvaluateAutoAchievements(studentID); err != nil {
		log.Printf("🔥 Auto achievement evaluation failed for student %s: %v", studentID, err)
	}
	log.Printf("✅ Awarded %d XP to student %s.", xpForSessionCompletion, studentID)
}
