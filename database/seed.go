package database

import (
	"log"

	"github.com/mentorquest/api/models"
)

func strPtr(s string) *string { return &s }

// Stock achievements every student can earn. Mentor-authored ones live
// alongside these, tagged with CreatedBy.
var builtinAchievements = []models.Achievement{
	{Name: "First Steps", Description: "Complete your first mentoring session", Icon: "🎯", XPReward: 100, CoinReward: 50, Rarity: models.RarityCommon, Type: models.AchievementTypeManual},
	{Name: "Social Butterfly", Description: "Send your first message in chat", Icon: "🔥", XPReward: 50, CoinReward: 25, Rarity: models.RarityRare, Type: models.AchievementTypeManual},
	{Name: "Style Master", Description: "Purchase your first name effect", Icon: "💎", XPReward: 100, CoinReward: 50, Rarity: models.RarityEpic, Type: models.AchievementTypeManual},
	{Name: "XP Collector", Description: "Reach 1000 XP", Icon: "🏆", XPReward: 200, CoinReward: 100, Rarity: models.RarityEpic, Type: models.AchievementTypeManual},
	{Name: "Chat Master", Description: "Send 100 messages in chat", Icon: "💬", XPReward: 300, CoinReward: 150, Rarity: models.RarityRare, Type: models.AchievementTypeManual},
	{Name: "Goal Achiever", Description: "Complete your first goal", Icon: "🎯", XPReward: 150, CoinReward: 75, Rarity: models.RarityCommon, Type: models.AchievementTypeManual},
	{Name: "Streak Master", Description: "Maintain a 7-day learning streak", Icon: "⚡", XPReward: 400, CoinReward: 200, Rarity: models.RarityEpic, Type: models.AchievementTypeManual},
	{Name: "Mentor Legend", Description: "Successfully mentor 10 students", Icon: "👑", XPReward: 1000, CoinReward: 500, Rarity: models.RarityLegendary, Type: models.AchievementTypeManual},
	{Name: "Knowledge Seeker", Description: "Complete 5 learning sessions", Icon: "📚", XPReward: 250, CoinReward: 125, Rarity: models.RarityRare, Type: models.AchievementTypeManual},
	{Name: "Community Helper", Description: "Help 3 different students in chat", Icon: "🤝", XPReward: 300, CoinReward: 150, Rarity: models.RarityEpic, Type: models.AchievementTypeManual},
}

var catalogItems = []models.ShopItem{
	{ID: "animated_gradient_effect", Name: "Animated Gradient Name", Description: "Add a beautiful animated gradient effect to your name", Price: 50, Type: models.ItemTypeNameEffect, Effect: strPtr("animated-gradient"), Preview: "bg-gradient-to-r from-purple-500 to-pink-500"},
	{ID: "glow_effect", Name: "Glowing Name", Description: "Make your name glow with a radiant aura", Price: 50, Type: models.ItemTypeNameEffect, Effect: strPtr("glow"), Preview: "shadow-lg shadow-blue-400/50"},
	{ID: "rainbow_effect", Name: "Rainbow Name", Description: "Animated rainbow colors cycling through your name", Price: 50, Type: models.ItemTypeNameEffect, Effect: strPtr("rainbow"), Preview: "bg-gradient-to-r from-red-500 via-yellow-500 to-blue-500"},
	{ID: "waving_dots_effect", Name: "Waving Dots", Description: "Subtle animated dots that wave around your name", Price: 75, Type: models.ItemTypeNameEffect, Effect: strPtr("waving-dots"), Preview: "relative"},
	{ID: "badge1", Name: "Star Student Badge", Description: "Show off your stellar performance", Price: 100, Type: models.ItemTypeBadge, Preview: "⭐"},
	{ID: "avatar1", Name: "Premium Avatar Frame", Description: "Golden border for your avatar", Price: 75, Type: models.ItemTypeAvatar, Preview: "gold-border"},
}

// SeedCatalog inserts the built-in achievements and the shop catalog if they
// are not present yet. Safe to run on every startup.
func SeedCatalog() {
	for _, achievement := range builtinAchievements {
		a := achievement
		if err := DB.Where(models.Achievement{Name: a.Name}).FirstOrCreate(&a).Error; err != nil {
			log.Fatalf("🔥 Failed to seed achievement %q: %v", a.Name, err)
		}
	}

	for _, item := range catalogItems {
		it := item
		if err := DB.Where(models.ShopItem{ID: it.ID}).FirstOrCreate(&it).Error; err != nil {
			log.Fatalf("🔥 Failed to seed shop item %q: %v", it.ID, err)
		}
	}

	log.Println("✅ Catalog seeded successfully")
}
