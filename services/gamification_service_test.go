package services

import (
	"testing"

	"github.com/mentorquest/api/models"
)

func TestAwardRewardsForSessionCompletion(t *testing.T) {
	db := setupTestDB(t)
	student := createTestUser(t, db, "ada", models.RoleStudent, 0)

	AwardRewardsForSessionCompletion(student.ID)

	got := reloadUser(t, db, student.ID)
	if got.XP != xpForSessionCompletion {
		t.Errorf("xp = %d, want %d", got.XP, xpForSessionCompletion)
	}
	if got.Level != 1 {
		t.Errorf("level = %d, want 1", got.Level)
	}
}

func TestSessionCompletionCrossesAutoThreshold(t *testing.T) {
	db := setupTestDB(t)
	student := createTestUser(t, db, "ada", models.RoleStudent, 0)
	createTestAchievement(t, db, "XP Novice", models.AchievementTypeXP, 500, 0, 100)

	if err := db.Model(student).Updates(map[string]interface{}{"xp": 480}).Error; err != nil {
		t.Fatalf("failed to set xp: %v", err)
	}

	AwardRewardsForSessionCompletion(student.ID)

	got := reloadUser(t, db, student.ID)
	if got.XP != 530 {
		t.Errorf("xp = %d, want 530", got.XP)
	}
	if got.Level != 2 {
		t.Errorf("level = %d, want 2", got.Level)
	}
	if len(got.Achievements) != 1 {
		t.Errorf("achievements held = %d, want 1", len(got.Achievements))
	}
	if got.Coins != 100 {
		t.Errorf("coins = %d, want 100 from achievement reward", got.Coins)
	}
}
