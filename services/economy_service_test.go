package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mentorquest/api/models"
	"gorm.io/gorm"
)

func createTestItem(t *testing.T, db *gorm.DB, id string, price int, itemType string) *models.ShopItem {
	t.Helper()

	item := models.ShopItem{
		ID:          id,
		Name:        id,
		Description: "test item",
		Price:       price,
		Type:        itemType,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to create item %s: %v", id, err)
	}
	return &item
}

func createTestConversation(t *testing.T, db *gorm.DB, a, b uuid.UUID) *models.Conversation {
	t.Helper()

	pa, pb := models.NormalizePair(a, b)
	conversation := models.Conversation{ParticipantA: pa, ParticipantB: pb}
	if err := db.Create(&conversation).Error; err != nil {
		t.Fatalf("failed to create conversation: %v", err)
	}
	return &conversation
}

func TestPurchaseItem(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ada", models.RoleStudent, 500)
	createTestItem(t, db, "glow_effect", 300, models.ItemTypeNameEffect)

	if err := PurchaseItem(user.ID, "glow_effect"); err != nil {
		t.Fatalf("PurchaseItem failed: %v", err)
	}

	var got models.User
	if err := db.Preload("Inventory").First(&got, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if got.Coins != 200 {
		t.Errorf("coins = %d, want 200", got.Coins)
	}
	if len(got.Inventory) != 1 || got.Inventory[0].ID != "glow_effect" {
		t.Errorf("inventory = %v, want [glow_effect]", got.Inventory)
	}
}

func TestPurchaseItemInsufficientCoins(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ada", models.RoleStudent, 100)
	createTestItem(t, db, "glow_effect", 300, models.ItemTypeNameEffect)

	err := PurchaseItem(user.ID, "glow_effect")
	if !errors.Is(err, ErrInsufficientCoins) {
		t.Fatalf("err = %v, want ErrInsufficientCoins", err)
	}

	var got models.User
	if err := db.Preload("Inventory").First(&got, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if got.Coins != 100 {
		t.Errorf("coins = %d after failed purchase, want 100", got.Coins)
	}
	if len(got.Inventory) != 0 {
		t.Errorf("inventory has %d items after failed purchase, want 0", len(got.Inventory))
	}
}

func TestPurchaseItemAlreadyOwned(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ada", models.RoleStudent, 1000)
	createTestItem(t, db, "glow_effect", 300, models.ItemTypeNameEffect)

	if err := PurchaseItem(user.ID, "glow_effect"); err != nil {
		t.Fatalf("first purchase failed: %v", err)
	}
	err := PurchaseItem(user.ID, "glow_effect")
	if !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("err = %v, want ErrAlreadyOwned", err)
	}

	var got models.User
	if err := db.First(&got, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if got.Coins != 700 {
		t.Errorf("coins = %d, want 700 (single debit)", got.Coins)
	}
}

func TestPurchaseItemUnknownItem(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ada", models.RoleStudent, 1000)

	err := PurchaseItem(user.ID, "missing_item")
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("err = %v, want ErrItemNotFound", err)
	}
}

func TestEquipEffect(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ada", models.RoleStudent, 1000)
	createTestItem(t, db, "glow_effect", 300, models.ItemTypeNameEffect)

	if err := PurchaseItem(user.ID, "glow_effect"); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if err := EquipEffect(user.ID, "glow_effect"); err != nil {
		t.Fatalf("EquipEffect failed: %v", err)
	}
	// Equipping again is a no-op, not an error.
	if err := EquipEffect(user.ID, "glow_effect"); err != nil {
		t.Fatalf("re-equip failed: %v", err)
	}

	var got models.User
	if err := db.Preload("EquippedEffects").First(&got, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if len(got.EquippedEffects) != 1 {
		t.Fatalf("equipped effects = %d, want 1", len(got.EquippedEffects))
	}

	if err := UnequipEffect(user.ID, "glow_effect"); err != nil {
		t.Fatalf("UnequipEffect failed: %v", err)
	}
	if err := db.Preload("EquippedEffects").First(&got, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if len(got.EquippedEffects) != 0 {
		t.Errorf("equipped effects = %d after unequip, want 0", len(got.EquippedEffects))
	}
}

func TestEquipEffectRequiresOwnership(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ada", models.RoleStudent, 1000)
	createTestItem(t, db, "glow_effect", 300, models.ItemTypeNameEffect)

	err := EquipEffect(user.ID, "glow_effect")
	if !errors.Is(err, ErrNotOwned) {
		t.Fatalf("err = %v, want ErrNotOwned", err)
	}
}

func TestEquipEffectRejectsNonEffects(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ada", models.RoleStudent, 1000)
	createTestItem(t, db, "badge1", 100, models.ItemTypeBadge)

	if err := PurchaseItem(user.ID, "badge1"); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	err := EquipEffect(user.ID, "badge1")
	if !errors.Is(err, ErrNotNameEffect) {
		t.Fatalf("err = %v, want ErrNotNameEffect", err)
	}
}

func TestSendGiftRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	sender := createTestUser(t, db, "ada", models.RoleStudent, 500)
	recipient := createTestUser(t, db, "grace", models.RoleMentor, 0)
	conversation := createTestConversation(t, db, sender.ID, recipient.ID)

	message, err := SendGift(conversation.ID, sender.ID, 50, "great session!")
	if err != nil {
		t.Fatalf("SendGift failed: %v", err)
	}
	if message.Type != models.MessageTypeGift {
		t.Errorf("message type = %s, want %s", message.Type, models.MessageTypeGift)
	}
	if message.GiftData == nil || message.GiftData.Amount != 50 {
		t.Errorf("gift data = %+v, want amount 50", message.GiftData)
	}

	if got := reloadUser(t, db, sender.ID); got.Coins != 450 {
		t.Errorf("sender coins = %d, want 450", got.Coins)
	}

	var gift models.ReceivedGift
	if err := db.First(&gift, "owner_id = ?", recipient.ID).Error; err != nil {
		t.Fatalf("recipient has no gift record: %v", err)
	}
	if gift.CoinValue != 50 {
		t.Errorf("gift coin value = %d, want 50", gift.CoinValue)
	}
	if gift.Name != "Diamond Gift" || gift.Emoji != "💎" {
		t.Errorf("gift tier = %s %s, want 💎 Diamond Gift", gift.Emoji, gift.Name)
	}
	if gift.FromUserName != "ada" {
		t.Errorf("from user name = %q, want %q", gift.FromUserName, "ada")
	}

	// Selling credits the recipient, conserving the transferred coins.
	credited, err := SellGift(recipient.ID, gift.ID)
	if err != nil {
		t.Fatalf("SellGift failed: %v", err)
	}
	if credited != 50 {
		t.Errorf("credited = %d, want 50", credited)
	}
	if got := reloadUser(t, db, recipient.ID); got.Coins != 50 {
		t.Errorf("recipient coins = %d after sale, want 50", got.Coins)
	}
	err = db.First(&gift, "id = ?", gift.ID).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected sold gift to be deleted, got %v", err)
	}
}

func TestSendGiftSnapshotSurvivesRename(t *testing.T) {
	db := setupTestDB(t)
	sender := createTestUser(t, db, "ada", models.RoleStudent, 500)
	recipient := createTestUser(t, db, "grace", models.RoleMentor, 0)
	conversation := createTestConversation(t, db, sender.ID, recipient.ID)

	if _, err := SendGift(conversation.ID, sender.ID, 10, ""); err != nil {
		t.Fatalf("SendGift failed: %v", err)
	}
	if err := db.Model(sender).Update("name", "Ada Lovelace").Error; err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	var gift models.ReceivedGift
	if err := db.First(&gift, "owner_id = ?", recipient.ID).Error; err != nil {
		t.Fatalf("gift lookup failed: %v", err)
	}
	if gift.FromUserName != "ada" {
		t.Errorf("from user name = %q after rename, want snapshot %q", gift.FromUserName, "ada")
	}
}

func TestSendGiftRejectsInvalidTier(t *testing.T) {
	db := setupTestDB(t)
	sender := createTestUser(t, db, "ada", models.RoleStudent, 500)
	recipient := createTestUser(t, db, "grace", models.RoleMentor, 0)
	conversation := createTestConversation(t, db, sender.ID, recipient.ID)

	for _, amount := range []int{0, -10, 15, 99, 1000} {
		_, err := SendGift(conversation.ID, sender.ID, amount, "")
		if !errors.Is(err, ErrInvalidGiftTier) {
			t.Errorf("SendGift(%d): err = %v, want ErrInvalidGiftTier", amount, err)
		}
	}
	if got := reloadUser(t, db, sender.ID); got.Coins != 500 {
		t.Errorf("sender coins = %d after rejected gifts, want 500", got.Coins)
	}
}

func TestSendGiftInsufficientCoins(t *testing.T) {
	db := setupTestDB(t)
	sender := createTestUser(t, db, "ada", models.RoleStudent, 25)
	recipient := createTestUser(t, db, "grace", models.RoleMentor, 0)
	conversation := createTestConversation(t, db, sender.ID, recipient.ID)

	_, err := SendGift(conversation.ID, sender.ID, 50, "")
	if !errors.Is(err, ErrInsufficientCoins) {
		t.Fatalf("err = %v, want ErrInsufficientCoins", err)
	}
	var gifts int64
	db.Model(&models.ReceivedGift{}).Count(&gifts)
	if gifts != 0 {
		t.Errorf("gift records = %d after failed send, want 0", gifts)
	}
}

func TestSendGiftRequiresParticipation(t *testing.T) {
	db := setupTestDB(t)
	a := createTestUser(t, db, "ada", models.RoleStudent, 500)
	b := createTestUser(t, db, "grace", models.RoleMentor, 500)
	outsider := createTestUser(t, db, "mallory", models.RoleStudent, 500)
	conversation := createTestConversation(t, db, a.ID, b.ID)

	_, err := SendGift(conversation.ID, outsider.ID, 10, "")
	if !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("err = %v, want ErrNotParticipant", err)
	}
}

func TestSellGiftUnknownOrForeign(t *testing.T) {
	db := setupTestDB(t)
	sender := createTestUser(t, db, "ada", models.RoleStudent, 500)
	recipient := createTestUser(t, db, "grace", models.RoleMentor, 0)
	conversation := createTestConversation(t, db, sender.ID, recipient.ID)

	if _, err := SendGift(conversation.ID, sender.ID, 10, ""); err != nil {
		t.Fatalf("SendGift failed: %v", err)
	}
	var gift models.ReceivedGift
	if err := db.First(&gift, "owner_id = ?", recipient.ID).Error; err != nil {
		t.Fatalf("gift lookup failed: %v", err)
	}

	if _, err := SellGift(recipient.ID, uuid.New()); !errors.Is(err, ErrGiftNotFound) {
		t.Errorf("unknown gift: err = %v, want ErrGiftNotFound", err)
	}
	// Only the owner may sell.
	if _, err := SellGift(sender.ID, gift.ID); !errors.Is(err, ErrGiftNotFound) {
		t.Errorf("foreign gift: err = %v, want ErrGiftNotFound", err)
	}
}
