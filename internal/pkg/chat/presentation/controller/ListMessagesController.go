package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oy2/quicktalk/internal/pkg/chat/application/usecase"
	repository "github.com/oy2/quicktalk/internal/pkg/chat/persistence/repository/port"
)

// ListMessagesController handles fetching a conversation's messages. The
// fetch marks the conversation read for the requester.
type ListMessagesController struct {
	UC *usecase.ListMessagesUseCase
}

func NewListMessagesController(convs repository.ConversationRepository, msgs repository.MessageRepository) *ListMessagesController {
	return &ListMessagesController{UC: usecase.NewListMessagesUseCase(convs, msgs)}
}

func (h *ListMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID, err := strconv.ParseInt(c.Param("conversationId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "conversationId must be an integer"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msgs, err := h.UC.Execute(ctx, CurrentUserID(c), conversationID)
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]gin.H, 0, len(msgs))
		for _, m := range msgs {
			entry := messageJSON(m.Message)
			entry["user"] = m.Sender
			out = append(out, entry)
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "success",
			"messages": out,
		})
	}
}
