package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/mentorquest/api/database"
	"github.com/mentorquest/api/models"
	"github.com/mentorquest/api/websocket"
	"gorm.io/gorm"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("not a conversation participant")
	ErrEmptyMessage         = errors.New("message content is empty")
	ErrSelfConversation     = errors.New("cannot start a conversation with yourself")
)

// FindConversation returns the conversation for the unordered pair of users,
// or nil when none exists yet.
func FindConversation(a, b uuid.UUID) (*models.Conversation, error) {
	pa, pb := models.NormalizePair(a, b)

	var conversation models.Conversation
	err := database.DB.Preload("LastMessage").
		Where("participant_a = ? AND participant_b = ?", pa, pb).
		First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conversation, nil
}

// StartConversation reuses the existing conversation for the pair or creates
// a new one. The bool reports whether a conversation was created.
func StartConversation(userID, targetID uuid.UUID) (*models.Conversation, bool, error) {
	if userID == targetID {
		return nil, false, ErrSelfConversation
	}

	existing, err := FindConversation(userID, targetID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	var count int64
	if err := database.DB.Model(&models.User{}).Where("id = ?", targetID).Count(&count).Error; err != nil {
		return nil, false, err
	}
	if count == 0 {
		return nil, false, ErrUserNotFound
	}

	pa, pb := models.NormalizePair(userID, targetID)
	conversation := models.Conversation{ParticipantA: pa, ParticipantB: pb}
	if err := database.DB.Create(&conversation).Error; err != nil {
		return nil, false, err
	}
	return &conversation, true, nil
}

// SendMessage appends a text message and bumps the conversation's last
// message pointer. Empty or whitespace-only content is rejected.
func SendMessage(conversationID, senderID uuid.UUID, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

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

		message = models.Message{
			ConversationID: conversation.ID,
			SenderID:       senderID,
			Content:        content,
			Type:           models.MessageTypeText,
		}
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Model(&conversation).Update("last_message_id", message.ID).Error
	})
	if err != nil {
		return nil, err
	}

	websocket.Notify(websocket.EventMessage, message, recipientID)
	return &message, nil
}

// LookupUser resolves a user by exact handle (with or without a leading @)
// or exact display name, both case-insensitive. No fuzzy matching.
func LookupUser(query string) (*models.User, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	handle := strings.TrimPrefix(q, "@")

	var user models.User
	err := database.DB.
		Where("LOWER(username) = ? OR LOWER(name) = ?", handle, q).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
