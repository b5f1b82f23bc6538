package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oy2/quicktalk/internal/pkg/chat/application/usecase"
	chat "github.com/oy2/quicktalk/internal/pkg/chat/domain"
)

// respondError maps domain errors to stable HTTP statuses. Anything outside
// the domain taxonomy renders as a generic internal failure so store-layer
// detail never leaks to callers.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrConversationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Conversation not found"})
	case errors.Is(err, chat.ErrReceiverNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Receiver not found"})
	case errors.Is(err, chat.ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "You are not involved in this conversation"})
	case errors.Is(err, chat.ErrEmptyMessage):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Message content is required"})
	case errors.Is(err, chat.ErrSelfConversation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Cannot start a conversation with yourself"})
	case errors.Is(err, usecase.ErrPersistence):
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
	}
}

func messageJSON(m chat.Message) gin.H {
	return gin.H{
		"id":              m.ID,
		"conversation_id": m.ConversationID,
		"user_id":         m.UserID,
		"content":         m.Content,
		"created_at":      m.CreatedAt.Format(chat.MessageTimeLayout),
	}
}

func conversationJSON(conv chat.Conversation, participants []chat.User) gin.H {
	return gin.H{
		"id":         conv.ID,
		"name":       conv.Name,
		"created_at": conv.CreatedAt,
		"users":      participants,
	}
}
