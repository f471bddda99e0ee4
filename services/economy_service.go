package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mentorquest/api/database"
	"github.com/mentorquest/api/models"
	"github.com/mentorquest/api/websocket"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrAlreadyOwned      = errors.New("item already owned")
	ErrInsufficientCoins = errors.New("insufficient coins")
	ErrNotOwned          = errors.New("item not in inventory")
	ErrNotNameEffect     = errors.New("item is not a name effect")
	ErrInvalidGiftTier   = errors.New("invalid gift amount")
	ErrGiftNotFound      = errors.New("gift not found")
)

// GiftTier is a fixed gift denomination. Gifts can only be sent in one of
// these amounts.
type GiftTier struct {
	Amount int    `json:"amount"`
	Emoji  string `json:"emoji"`
	Name   string `json:"name"`
}

var GiftTiers = []GiftTier{
	{Amount: 10, Emoji: "🎁", Name: "Small Gift"},
	{Amount: 25, Emoji: "🌟", Name: "Star Gift"},
	{Amount: 50, Emoji: "💎", Name: "Diamond Gift"},
	{Amount: 100, Emoji: "👑", Name: "Royal Gift"},
	{Amount: 250, Emoji: "🏆", Name: "Trophy Gift"},
	{Amount: 500, Emoji: "🚀", Name: "Rocket Gift"},
}

func tierForAmount(amount int) *GiftTier {
	for i := range GiftTiers {
		if GiftTiers[i].Amount == amount {
			return &GiftTiers[i]
		}
	}
	return nil
}

// PurchaseItem debits the item price and adds the item to the buyer's
// inventory. Owned items cannot be bought again, and a purchase that would
// drive the balance negative leaves the account untouched.
func PurchaseItem(userID uuid.UUID, itemID string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Preload("Inventory").First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		for _, owned := range user.Inventory {
			if owned.ID == itemID {
				return ErrAlreadyOwned
			}
		}

		var item models.ShopItem
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		if user.Coins < item.Price {
			return ErrInsufficientCoins
		}

		if err := tx.Model(&user).Association("Inventory").Append(&item); err != nil {
			return err
		}
		return tx.Model(&user).Update("coins", user.Coins-item.Price).Error
	})
}

// EquipEffect adds an owned name effect to the user's equipped set. Multiple
// effects can be equipped at once; equipping an already-equipped effect is a
// no-op.
func EquipEffect(userID uuid.UUID, itemID string) error {
	user, item, err := ownedNameEffect(userID, itemID)
	if err != nil {
		return err
	}
	for _, equipped := range user.EquippedEffects {
		if equipped.ID == itemID {
			return nil
		}
	}
	return database.DB.Model(user).Association("EquippedEffects").Append(item)
}

// UnequipEffect removes a name effect from the equipped set.
func UnequipEffect(userID uuid.UUID, itemID string) error {
	user, item, err := ownedNameEffect(userID, itemID)
	if err != nil {
		return err
	}
	return database.DB.Model(user).Association("EquippedEffects").Delete(item)
}

func ownedNameEffect(userID uuid.UUID, itemID string) (*models.User, *models.ShopItem, error) {
	var user models.User
	err := database.DB.Preload("Inventory").Preload("EquippedEffects").
		First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	for _, owned := range user.Inventory {
		if owned.ID == itemID {
			if owned.Type != models.ItemTypeNameEffect {
				return nil, nil, ErrNotNameEffect
			}
			return &user, owned, nil
		}
	}
	return nil, nil, ErrNotOwned
}

// SendGift transfers a fixed-denomination gift inside a conversation: the
// sender is debited, the other participant receives a redeemable gift entry
// carrying a snapshot of the sender's name, and a gift message is appended
// to the conversation.
func SendGift(conversationID, senderID uuid.UUID, amount int, note string) (*models.Message, error) {
	tier := tierForAmount(amount)
	if tier == nil {
		return nil, ErrInvalidGiftTier
	}
	note = strings.TrimSpace(note)

	var message models.Message
	var recipientID uuid.UUID

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var conversation models.Conversation
		if err := tx.First(&conversation, "id = ?", conversationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrConversationNotFound
			}
			return err
		}
		if !conversation.HasParticipant(senderID) {
			return ErrNotParticipant
		}
		recipientID = conversation.OtherParticipant(senderID)

		var sender models.User
		if err := tx.First(&sender, "id = ?", senderID).Error; err != nil {
			return err
		}
		if sender.Coins < amount {
			return ErrInsufficientCoins
		}
		if err := tx.Model(&sender).Update("coins", sender.Coins-amount).Error; err != nil {
			return err
		}

		gift := models.ReceivedGift{
			OwnerID:      recipientID,
			GiftType:     strings.ReplaceAll(strings.ToLower(tier.Name), " ", "_"),
			Emoji:        tier.Emoji,
			Name:         tier.Name,
			CoinValue:    amount,
			FromUserID:   sender.ID,
			FromUserName: sender.Name,
			ReceivedAt:   time.Now(),
		}
		if note != "" {
			gift.Message = &note
		}
		if err := tx.Create(&gift).Error; err != nil {
			return err
		}

		content := note
		if content == "" {
			content = "Sent a gift!"
		}
		message = models.Message{
			ConversationID: conversation.ID,
			SenderID:       sender.ID,
			Content:        content,
			Type:           models.MessageTypeGift,
			GiftData:       &models.GiftData{Amount: amount, Message: note},
		}
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Model(&conversation).Update("last_message_id", message.ID).Error
	})
	if err != nil {
		return nil, err
	}

	websocket.Notify(websocket.EventGift, message, recipientID)
	return &message, nil
}

// SellGift converts a received gift back to coins and removes it. The sale
// is irreversible.
func SellGift(ownerID, giftID uuid.UUID) (int, error) {
	credited := 0

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var gift models.ReceivedGift
		err := tx.Where("id = ? AND owner_id = ?", giftID, ownerID).First(&gift).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGiftNotFound
			}
			return err
		}
		if err := tx.Delete(&gift).Error; err != nil {
			return err
		}

		var owner models.User
		if err := tx.First(&owner, "id = ?", ownerID).Error; err != nil {
			return err
		}
		credited = gift.CoinValue
		return tx.Model(&owner).Update("coins", owner.Coins+credited).Error
	})
	if err != nil {
		return 0, err
	}

	if err := EvaluateAutoAchievements(ownerID); err != nil {
		log.Printf("🔥 Auto achievement evaluation failed for user %s: %v", ownerID, err)
	}
	return credited, nil
}
