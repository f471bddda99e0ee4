package services

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/mentorquest/api/database"
	"github.com/mentorquest/api/models"
	"github.com/mentorquest/api/websocket"
	"gorm.io/gorm"
)

const XPPerLevel = 500

var (
	ErrStudentNotFound     = errors.New("student not found")
	ErrAchievementNotFound = errors.New("achievement not found")
)

// LevelForXP derives the stored level from xp: one level per 500 xp.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/XPPerLevel + 1
}

// AwardAchievement grants an achievement exactly once per (student,
// achievement) pair, crediting its xp and coin rewards. A student who
// already holds the achievement is left untouched and false is returned.
func AwardAchievement(studentID, achievementID uuid.UUID) (bool, error) {
	awarded := false
	var achievement models.Achievement

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var student models.User
		if err := tx.Preload("Achievements").First(&student, "id = ?", studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}

		for _, held := range student.Achievements {
			if held.ID == achievementID {
				return nil
			}
		}

		if err := tx.First(&achievement, "id = ?", achievementID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAchievementNotFound
			}
			return err
		}

		if err := tx.Model(&student).Association("Achievements").Append(&achievement); err != nil {
			return err
		}

		student.XP += achievement.XPReward
		student.Coins += achievement.CoinReward
		student.Level = LevelForXP(student.XP)
		if err := tx.Save(&student).Error; err != nil {
			return err
		}

		awarded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if awarded {
		websocket.Notify(websocket.EventAchievement, achievement, studentID)
	}
	return awarded, nil
}

// EvaluateAutoAchievements awards every xp/coins achievement whose threshold
// the student currently meets. Awards themselves raise xp and coins, which
// can cross further thresholds, so passes repeat until no new award is made.
// Mentors never earn achievements; for them this is a no-op.
func EvaluateAutoAchievements(studentID uuid.UUID) error {
	for {
		var student models.User
		if err := database.DB.Preload("Achievements").First(&student, "id = ?", studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}
		if student.Role != models.RoleStudent {
			return nil
		}

		var autos []models.Achievement
		err := database.DB.
			Where("type IN ?", []string{models.AchievementTypeXP, models.AchievementTypeCoins}).
			Find(&autos).Error
		if err != nil {
			return err
		}

		held := make(map[uuid.UUID]bool, len(student.Achievements))
		for _, a := range student.Achievements {
			held[a.ID] = true
		}

		progressed := false
		for _, achievement := range autos {
			if held[achievement.ID] || achievement.TargetValue == nil {
				continue
			}

			current := student.XP
			if achievement.Type == models.AchievementTypeCoins {
				current = student.Coins
			}
			if current < *achievement.TargetValue {
				continue
			}

			awarded, err := AwardAchievement(student.ID, achievement.ID)
			if err != nil {
				return err
			}
			progressed = progressed || awarded
		}

		if !progressed {
			return nil
		}
	}
}

// EvaluateAllStudents runs the auto sweep over every student account. Used
// after an auto achievement definition changes and by the periodic job.
func EvaluateAllStudents() {
	var studentIDs []uuid.UUID
	err := database.DB.Model(&models.User{}).
		Where("role = ?", models.RoleStudent).
		Pluck("id", &studentIDs).Error
	if err != nil {
		log.Printf("🔥 Failed to list students for achievement sweep: %v", err)
		return
	}

	for _, id := range studentIDs {
		if err := EvaluateAutoAchievements(id); err != nil {
			log.Printf("🔥 Auto achievement evaluation failed for student %s: %v", id, err)
		}
	}
}
