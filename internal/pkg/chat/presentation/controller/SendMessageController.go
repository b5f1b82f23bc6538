package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	nport "github.com/oy2/quicktalk/internal/infrastructure/notify/port"
	"github.com/oy2/quicktalk/internal/pkg/chat/application/usecase"
	repository "github.com/oy2/quicktalk/internal/pkg/chat/persistence/repository/port"
)

// SendMessageController handles the send-message endpoint (one controller
// per endpoint).
type SendMessageController struct {
	UC *usecase.SendMessageUseCase
}

func NewSendMessageController(convs repository.ConversationRepository, msgs repository.MessageRepository, notifier nport.Publisher) *SendMessageController {
	return &SendMessageController{UC: usecase.NewSendMessageUseCase(convs, msgs, notifier)}
}

// sendMessageRequest is the DTO for the HTTP request body. Message is bound
// without "required" so that blank content reaches the domain validation and
// gets the proper validation response.
type sendMessageRequest struct {
	ConversationID int64  `json:"conversation_id" binding:"required"`
	Message        string `json:"message"`
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "conversation_id is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msg, err := h.UC.Execute(ctx, usecase.SendMessageInput{
			ConversationID: req.ConversationID,
			SenderID:       CurrentUserID(c),
			Content:        req.Message,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status":  "success",
			"message": messageJSON(*msg),
		})
	}
}
