package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	config "github.com/mentorquest/api/configs"
	"github.com/mentorquest/api/database"
	"github.com/mentorquest/api/models"
	"github.com/mentorquest/api/services"
	"github.com/mentorquest/api/websocket"
)

func GetUserConversations(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var conversations []models.Conversation
	err := database.DB.Preload("LastMessage").
		Where("participant_a = ? OR participant_b = ?", userID, userID).
		Order("created_at desc").
		Find(&conversations).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch conversations"})
	}

	return c.JSON(conversations)
}

// CreateOrGetConversation resolves the target either by id or by a discovery
// query (@handle or display name) and reuses the conversation for the
// unordered pair when one already exists.
func CreateOrGetConversation(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	type Request struct {
		RecipientID string `json:"recipient_id" validate:"omitempty,uuid"`
		Query       string `json:"query"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var targetID uuid.UUID
	switch {
	case req.RecipientID != "":
		targetID, _ = uuid.Parse(req.RecipientID)
	case req.Query != "":
		target, err := services.LookupUser(req.Query)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		targetID = target.ID
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Recipient or query is required"})
	}

	conversation, created, err := services.StartConversation(userID, targetID)
	if err != nil {
		switch err {
		case services.ErrSelfConversation:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot start a conversation with yourself"})
		case services.ErrUserNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Recipient not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create conversation"})
		}
	}

	if created {
		return c.Status(fiber.StatusCreated).JSON(conversation)
	}
	return c.JSON(conversation)
}

func GetConversationMessages(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	conversationID := c.Params("conversationId")
	var conversation models.Conversation
	if err := database.DB.First(&conversation, "id = ?", conversationID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
	}
	if !conversation.HasParticipant(userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a conversation participant"})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	page, pageSize = clampPage(page, pageSize)
	offset := (page - 1) * pageSize

	var messages []models.Message
	err := database.DB.
		Where("conversation_id = ?", conversationID).
		Order("created_at asc").
		Limit(pageSize).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}

	return c.JSON(messages)
}

// clampPage keeps pagination inputs in range; page is 1-based and the page
// size is capped at 100.
func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func SendMessage(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	conversationID, err := uuid.Parse(c.Params("conversationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid conversation ID"})
	}

	type Request struct {
		Content string `json:"content"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	message, err := services.SendMessage(conversationID, userID, req.Content)
	if err != nil {
		switch err {
		case services.ErrEmptyMessage:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message content is empty"})
		case services.ErrConversationNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
		case services.ErrNotParticipant:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a conversation participant"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send message"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

func SendGift(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	conversationID, err := uuid.Parse(c.Params("conversationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid conversation ID"})
	}

	type Request struct {
		Amount  int    `json:"amount" validate:"required,gt=0"`
		Message string `json:"message"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	message, err := services.SendGift(conversationID, userID, req.Amount, req.Message)
	if err != nil {
		switch err {
		case services.ErrInvalidGiftTier:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Gift amount must be one of the fixed tiers"})
		case services.ErrInsufficientCoins:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Not enough coins"})
		case services.ErrConversationNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
		case services.ErrNotParticipant:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a conversation participant"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send gift"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

func ListGiftTiers(c *fiber.Ctx) error {
	return c.JSON(services.GiftTiers)
}

// LookupUser is the discovery endpoint: exact case-insensitive handle (with
// or without @) or exact display name.
func LookupUser(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Query is required"})
	}

	user, err := services.LookupUser(query)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"id":       user.ID,
		"name":     user.Name,
		"username": user.Username,
		"avatar":   user.Avatar,
		"role":     user.Role,
		"level":    user.Level,
	})
}

func ServeWs(c *websocketcontrib.Conn) {
	type AuthMessage struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	}
	var authMsg AuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := parseToken(authMsg.Token)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		c.Close()
		return
	}

	userID, err := uuid.Parse(claims["user_id"].(string))
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid user ID"})
		c.Close()
		return
	}

	client := &websocket.Client{UserID: userID, Conn: c}
	websocket.Register <- client
	defer func() {
		websocket.Unregister <- client
		c.Close()
	}()

	for {
		var payload struct {
			ConversationID string `json:"conversation_id"`
			Content        string `json:"content"`
		}
		if err := c.ReadJSON(&payload); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("WebSocket closed for client %s: %v", userID, err)
			} else {
				log.Printf("WebSocket read error for client %s: %v", userID, err)
			}
			break
		}

		conversationID, err := uuid.Parse(payload.ConversationID)
		if err != nil {
			_ = c.WriteJSON(fiber.Map{"error": "Invalid conversation ID"})
			continue
		}

		if _, err := services.SendMessage(conversationID, userID, payload.Content); err != nil {
			_ = c.WriteJSON(fiber.Map{"error": err.Error()})
		}
	}
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
